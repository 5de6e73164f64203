package main

import (
	"time"

	"github.com/spf13/cobra"

	"archlens/internal/analysis"
	"archlens/internal/compliance"
	arch "archlens/internal/types/architecture"
)

type frameworkInfo struct {
	ID          arch.Framework `json:"id"`
	DisplayName string         `json:"displayName"`
	Context     string         `json:"context"`
}

func newFrameworksCmd(_ *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "frameworks",
		Short: "List supported architecture frameworks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var out []frameworkInfo
			for _, fw := range arch.Frameworks() {
				out = append(out, frameworkInfo{ID: fw, DisplayName: fw.DisplayName(), Context: analysis.FrameworkContext(fw)})
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

func newComplianceCmd(c *cli) *cobra.Command {
	var framework string
	cmd := &cobra.Command{
		Use:   "compliance",
		Short: "Print the compliance checklist for a framework",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fw := c.cfg.DefaultFramework()
			if framework != "" {
				var err error
				if fw, err = arch.ParseFramework(framework); err != nil {
					return err
				}
			}
			return printJSON(cmd.OutOrStdout(), compliance.BuildReport(fw, time.Now()))
		},
	}
	cmd.Flags().StringVarP(&framework, "framework", "f", "", "TOGAF, Zachman, ISO42001 or Custom")
	return cmd
}
