package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/clark/config"
	"github.com/user/clark/deps"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that the configured mpv and ffmpeg binaries are installed and available.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Checking dependencies...")
		fmt.Fprintln(out)

		errs := deps.CheckAll(cfg.MpvPath, cfg.FfmpegPath)
		missing := make(map[string]*deps.DependencyError, len(errs))
		for _, err := range errs {
			var depErr *deps.DependencyError
			if errors.As(err, &depErr) {
				missing[depErr.Name] = depErr
			}
		}

		for _, d := range []struct{ name, binary string }{
			{"mpv", cfg.MpvPath},
			{"ffmpeg", cfg.FfmpegPath},
		} {
			if depErr, ok := missing[d.binary]; ok {
				fmt.Fprintf(out, "✗ %s (%s): NOT FOUND\n", d.name, d.binary)
				fmt.Fprintf(out, "  Install from: %s\n", depErr.InstallURL)
				continue
			}
			fmt.Fprintf(out, "✓ %s (%s): OK\n", d.name, d.binary)
		}

		fmt.Fprintln(out)
		if len(errs) > 0 {
			return fmt.Errorf("%d missing %s", len(errs), pluralize(len(errs), "dependency", "dependencies"))
		}
		fmt.Fprintln(out, "All dependencies are installed!")
		return nil
	},
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
