package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fwtranscribe/internal/preflight"
)

type doctorCheck struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Detail   string `json:"detail"`
	Optional bool   `json:"optional"`
}

type doctorReport struct {
	ConfigPath   string        `json:"config_path"`
	ConfigExists bool          `json:"config_exists"`
	Ready        bool          `json:"ready"`
	Checks       []doctorCheck `json:"checks"`
}

func newDoctorCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the interpreter, faster-whisper, cache, and lock setup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			results := preflight.RunAll(cmd.Context(), cfg)
			ready := !preflight.Blocking(results)

			if jsonOutput {
				report := doctorReport{
					ConfigPath:   ctx.configPath,
					ConfigExists: ctx.configExists,
					Ready:        ready,
					Checks:       make([]doctorCheck, 0, len(results)),
				}
				for _, r := range results {
					report.Checks = append(report.Checks, doctorCheck(r))
				}
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				configNote := ctx.configPath
				if !ctx.configExists {
					configNote += " (not found; using defaults)"
				}
				fmt.Fprintln(out, renderStatusLine("Config", statusInfo, configNote, shouldColorize(out)))
				for _, line := range checkLines(results, shouldColorize(out)) {
					fmt.Fprintln(out, line)
				}
			}

			if !ready {
				return errors.New("required dependencies are missing")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
