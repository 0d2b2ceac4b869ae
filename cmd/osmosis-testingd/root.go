package main

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"cosmossdk.io/log"

	"github.com/osmosis-labs/osmosis-testing/app"
	"github.com/osmosis-labs/osmosis-testing/runner"
	"github.com/osmosis-labs/osmosis-testing/simulator"
)

const (
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
	flagConfig    = "config"
	flagMnemonic  = "mnemonic"
)

// NewRootCmd creates the root command of osmosis-testingd.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:           "osmosis-testingd",
		Short:         "osmosis-testing chain simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// set the default command outputs
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			return initViper(v, cmd)
		},
	}

	rootCmd.PersistentFlags().String(flagLogLevel, zerolog.InfoLevel.String(), "The logging level (trace|debug|info|warn|error|fatal|panic)")
	rootCmd.PersistentFlags().String(flagLogFormat, "plain", "The logging format (json|plain)")
	rootCmd.PersistentFlags().String(flagConfig, "", "Path of a TOML config file holding the [runner] section")

	rootCmd.AddCommand(
		serveCmd(v),
		accountsCmd(v),
		configCmd(),
		mnemonicCmd(),
	)

	return rootCmd
}

// initViper reads envs and the optional config file, then binds the command flags so that
// changed flags take precedence.
func initViper(v *viper.Viper, cmd *cobra.Command) error {
	v.SetEnvPrefix(app.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if configFile := v.GetString(flagConfig); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	}

	return nil
}

// newLogger builds the process logger from the log flags.
func newLogger(v *viper.Viper) (log.Logger, error) {
	level, err := zerolog.ParseLevel(v.GetString(flagLogLevel))
	if err != nil {
		return nil, err
	}

	opts := []log.Option{log.LevelOption(level)}
	if v.GetString(flagLogFormat) == "json" {
		opts = append(opts, log.OutputJSONOption())
	}

	return log.NewLogger(os.Stderr, opts...), nil
}

// loadConfig reads and validates the runner config.
func loadConfig(v *viper.Viper) (runner.Config, error) {
	config := runner.GetConfig(v)
	if err := config.Validate(); err != nil {
		return runner.Config{}, err
	}

	return config, nil
}

// addSimulatorFlags registers the flags shared by commands running an in-process simulator.
func addSimulatorFlags(flags *pflag.FlagSet) {
	flags.String(flagMnemonic, "", "Derive account keys from this mnemonic instead of generating them")
}

// newSimulator builds a simulator matching config.
func newSimulator(v *viper.Viper, config runner.Config, logger log.Logger) *simulator.Simulator {
	opts := []simulator.Option{
		simulator.WithLogger(logger),
		simulator.WithChainID(config.ChainID),
		simulator.WithAddressPrefix(config.AddressPrefix),
	}
	if mnemonic := v.GetString(flagMnemonic); mnemonic != "" {
		opts = append(opts, simulator.WithMnemonic(mnemonic))
	}

	return simulator.New(opts...)
}
