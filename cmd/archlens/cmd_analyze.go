package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"archlens/internal/llm/middleware"
	arch "archlens/internal/types/architecture"
)

type analyzeOutput struct {
	Analysis     arch.ScenarioAnalysis `json:"analysis"`
	Components   []arch.Component      `json:"components"`
	Capabilities []arch.Capability     `json:"capabilities"`
}

func newAnalyzeCmd(c *cli) *cobra.Command {
	var (
		framework  string
		showPrompt bool
	)
	cmd := &cobra.Command{
		Use:   "analyze [scenario...]",
		Short: "Analyse one scenario and print the normalised architecture",
		Long:  "Analyse a scenario given as arguments, or read from stdin when no arguments are given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := scenarioText(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			fw := c.cfg.DefaultFramework()
			if framework != "" {
				if fw, err = arch.ParseFramework(framework); err != nil {
					return err
				}
			}

			var extra []middleware.Middleware
			if showPrompt {
				extra = append(extra, middleware.WithHook(promptLogger{out: cmd.ErrOrStderr()}))
			}
			a, err := c.build(cmd.Context(), extra...)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.workspace.Analyze(cmd.Context(), scenario, fw)
			if err != nil {
				return err
			}
			c.logger.Info("scenario analysed",
				zap.String("id", res.ID),
				zap.String("framework", string(fw)),
				zap.String("origin", string(res.Origin)))
			st := a.workspace.Store().Snapshot()
			c.logUsage(a)
			return printJSON(cmd.OutOrStdout(), analyzeOutput{
				Analysis:     res,
				Components:   st.Components,
				Capabilities: st.Capabilities,
			})
		},
	}
	cmd.Flags().StringVarP(&framework, "framework", "f", "", "TOGAF, Zachman, ISO42001 or Custom")
	cmd.Flags().BoolVar(&showPrompt, "show-prompt", false, "print prompts and raw responses to stderr")
	return cmd
}

func scenarioText(in io.Reader, args []string) (string, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		b, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("read scenario: %w", err)
		}
		text = strings.TrimSpace(string(b))
	}
	if text == "" {
		return "", fmt.Errorf("scenario is empty")
	}
	return text, nil
}

// promptLogger dumps each exchange with the model.
type promptLogger struct {
	out io.Writer
}

func (p promptLogger) Before(_ context.Context, phase, prompt string) {
	fmt.Fprintf(p.out, "----- %s prompt -----\n%s\n", phase, prompt)
}

func (p promptLogger) After(_ context.Context, phase, response string, err error) {
	if err != nil {
		fmt.Fprintf(p.out, "----- %s error -----\n%v\n", phase, err)
		return
	}
	fmt.Fprintf(p.out, "----- %s response -----\n%s\n", phase, response)
}
