package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"gopkg.in/yaml.v3"

	"cosmossdk.io/log"

	"github.com/osmosis-labs/osmosis-testing/bridge/remote"
	"github.com/osmosis-labs/osmosis-testing/runner"
	"github.com/osmosis-labs/osmosis-testing/simulator"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd := NewRootCmd()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestAccountsJSON(t *testing.T) {
	out, err := execute(t, "accounts", "--count", "3", "--coins", "5uatom,1000uosmo", "--log-level", "error")
	require.NoError(t, err)

	var accs []accountOutput
	require.NoError(t, json.Unmarshal([]byte(out), &accs))
	require.Len(t, accs, 3)

	seen := map[string]bool{}
	for _, acc := range accs {
		require.Regexp(t, "^osmo1", acc.Address)
		require.NotEmpty(t, acc.PubKey)
		require.NotEmpty(t, acc.PrivKey)
		seen[acc.Address] = true
	}
	require.Len(t, seen, 3)
}

func TestAccountsYAMLWithPrefix(t *testing.T) {
	out, err := execute(t, "accounts", "-o", "yaml", "--runner.address-prefix", "cosmos", "--log-level", "error")
	require.NoError(t, err)

	var accs []accountOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &accs))
	require.Len(t, accs, 1)
	require.Regexp(t, "^cosmos1", accs[0].Address)
}

func TestAccountsMnemonicIsDeterministic(t *testing.T) {
	mnemonic := "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

	first, err := execute(t, "accounts", "--count", "2", "--mnemonic", mnemonic, "--log-level", "error")
	require.NoError(t, err)
	second, err := execute(t, "accounts", "--count", "2", "--mnemonic", mnemonic, "--log-level", "error")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestAccountsErrors(t *testing.T) {
	_, err := execute(t, "accounts", "--count", "0")
	require.ErrorContains(t, err, "count must be positive")

	_, err = execute(t, "accounts", "--coins", "not coins")
	require.ErrorContains(t, err, "coins")

	_, err = execute(t, "accounts", "-o", "xml", "--log-level", "error")
	require.ErrorContains(t, err, "unknown output format")

	_, err = execute(t, "accounts", "--log-level", "loud")
	require.Error(t, err)

	_, err = execute(t, "accounts", "--runner.gas-adjustment", "0")
	require.ErrorIs(t, err, runner.ErrInvalidConfig)
}

func TestAccountsEnv(t *testing.T) {
	t.Setenv("OSMOSIS_TESTING_RUNNER_ADDRESS_PREFIX", "juno")

	out, err := execute(t, "accounts", "--log-level", "error")
	require.NoError(t, err)

	var accs []accountOutput
	require.NoError(t, json.Unmarshal([]byte(out), &accs))
	require.Regexp(t, "^juno1", accs[0].Address)
}

func TestConfigInit(t *testing.T) {
	out, err := execute(t, "config", "init")
	require.NoError(t, err)
	require.Contains(t, out, "[runner]")

	file := filepath.Join(t.TempDir(), "app.toml")
	_, err = execute(t, "config", "init", file)
	require.NoError(t, err)

	v := viper.New()
	v.SetConfigFile(file)
	require.NoError(t, v.ReadInConfig())
	require.Equal(t, runner.DefaultConfig(), runner.GetConfig(v))

	_, err = execute(t, "config", "init", file)
	require.ErrorContains(t, err, "already exists")
}

func TestAccountsConfigFile(t *testing.T) {
	config := runner.DefaultConfig()
	config.AddressPrefix = "stars"
	bz, err := renderConfig(config)
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "app.toml")
	require.NoError(t, os.WriteFile(file, bz, 0o600))

	out, err := execute(t, "accounts", "--config", file, "--log-level", "error")
	require.NoError(t, err)

	var accs []accountOutput
	require.NoError(t, json.Unmarshal([]byte(out), &accs))
	require.Regexp(t, "^stars1", accs[0].Address)
}

func TestServe(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, lis, remote.NewServer(simulator.New(), log.NewNopLogger()))
	}()

	out, err := execute(t, "accounts", "--count", "2", "--remote", lis.Addr().String(), "--log-level", "error")
	require.NoError(t, err)

	var accs []accountOutput
	require.NoError(t, json.Unmarshal([]byte(out), &accs))
	require.Len(t, accs, 2)

	client, err := remote.Dial(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer client.Close()

	seq, err := client.AccountSequence(1, accs[0].Address)
	require.NoError(t, err)
	require.Equal(t, uint64(0), seq)

	cancel()
	require.NoError(t, <-done)
}

func TestMnemonic(t *testing.T) {
	out, err := execute(t, "mnemonic")
	require.NoError(t, err)

	mnemonic := strings.TrimSpace(out)
	require.Len(t, strings.Fields(mnemonic), 24)

	_, err = execute(t, "accounts", "--mnemonic", mnemonic, "--log-level", "error")
	require.NoError(t, err)
}
