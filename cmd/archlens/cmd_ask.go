package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	arch "archlens/internal/types/architecture"
)

func newAskCmd(c *cli) *cobra.Command {
	var (
		framework string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "ask <question...>",
		Short: "Ask the strategy coach a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.build(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			if framework != "" {
				fw, err := arch.ParseFramework(framework)
				if err != nil {
					return err
				}
				a.workspace.SetFramework(fw)
			}
			msg, err := a.workspace.Ask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			c.logUsage(a)
			if asJSON {
				return printJSON(cmd.OutOrStdout(), msg)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n(confidence %d%%)\n", msg.Content, msg.Confidence)
			return err
		},
	}
	cmd.Flags().StringVarP(&framework, "framework", "f", "", "TOGAF, Zachman, ISO42001 or Custom")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the reply as JSON")
	return cmd
}
