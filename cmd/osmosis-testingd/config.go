package main

import (
	"bytes"
	"fmt"
	"os"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/osmosis-labs/osmosis-testing/runner"
)

// appConfig is the data the config template is rendered with.
type appConfig struct {
	RunnerConfig runner.Config
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the runner config file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init [file]",
		Short: "Write the default runner config to a file, or stdout when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bz, err := renderConfig(runner.DefaultConfig())
			if err != nil {
				return err
			}

			if len(args) == 0 {
				_, err = cmd.OutOrStdout().Write(bz)
				return err
			}

			if _, err := os.Stat(args[0]); err == nil {
				return fmt.Errorf("%s already exists", args[0])
			}

			return os.WriteFile(args[0], bz, 0o600)
		},
	})

	return cmd
}

func renderConfig(config runner.Config) ([]byte, error) {
	tmpl, err := template.New("runnerConfigTemplate").Parse(runner.DefaultConfigTemplate)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, appConfig{RunnerConfig: config}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
