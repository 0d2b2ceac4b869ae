package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"gopkg.in/yaml.v3"

	"cosmossdk.io/log"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/osmosis-labs/osmosis-testing/bridge"
	"github.com/osmosis-labs/osmosis-testing/bridge/remote"
	"github.com/osmosis-labs/osmosis-testing/runner"
)

const (
	flagCount  = "count"
	flagCoins  = "coins"
	flagOutput = "output"
	flagRemote = "remote"
)

// accountOutput is the printed form of an initialised account.
type accountOutput struct {
	Address string `json:"address" yaml:"address"`
	PubKey  string `json:"pub_key" yaml:"pub_key"`
	PrivKey string `json:"priv_key" yaml:"priv_key"`
}

func accountsCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Initialise funded accounts and print their keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(v)
			if err != nil {
				return err
			}
			config, err := loadConfig(v)
			if err != nil {
				return err
			}

			var coins sdk.Coins
			if coinsStr := v.GetString(flagCoins); coinsStr != "" {
				if coins, err = sdk.ParseCoinsNormalized(coinsStr); err != nil {
					return fmt.Errorf("coins: %w", err)
				}
			}

			var b bridge.Bridge
			if addr := v.GetString(flagRemote); addr != "" {
				client, err := remote.Dial(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
				if err != nil {
					return err
				}
				defer client.Close()

				b = client
			} else {
				b = newSimulator(v, config, logger)
			}

			accs, err := initAccounts(b, config, logger, coins, v.GetInt(flagCount))
			if err != nil {
				return err
			}

			return printOutput(cmd.OutOrStdout(), v.GetString(flagOutput), accs)
		},
	}

	cmd.Flags().Int(flagCount, 1, "Number of accounts to initialise")
	cmd.Flags().String(flagCoins, "", "Balance of every account, e.g. 1000uosmo,5uatom (default balance when empty)")
	cmd.Flags().StringP(flagOutput, "o", "json", "Output format (json|yaml)")
	cmd.Flags().String(flagRemote, "", "Address of a running bridge server; an in-process simulator is used when empty")
	addSimulatorFlags(cmd.Flags())
	runner.AddConfigFlags(cmd)

	return cmd
}

func initAccounts(b bridge.Bridge, config runner.Config, logger log.Logger, coins sdk.Coins, n int) ([]accountOutput, error) {
	if n < 1 {
		return nil, fmt.Errorf("count must be positive, got %d", n)
	}

	testApp, err := runner.NewTestApp(b, runner.WithConfig(config), runner.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	accs, err := testApp.InitAccounts(coins, n)
	if err != nil {
		return nil, err
	}

	out := make([]accountOutput, 0, len(accs))
	for _, acc := range accs {
		out = append(out, accountOutput{
			Address: acc.Address(),
			PubKey:  base64.StdEncoding.EncodeToString(acc.PubKey().Bytes()),
			PrivKey: base64.StdEncoding.EncodeToString(acc.PrivKey().Bytes()),
		})
	}

	return out, nil
}

func printOutput(w io.Writer, format string, v any) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		return yaml.NewEncoder(w).Encode(v)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
