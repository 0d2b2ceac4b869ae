package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/osmosis-labs/osmosis-testing/crypto/hd"
)

func mnemonicCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mnemonic",
		Short: "Print a fresh mnemonic usable with --mnemonic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mnemonic, err := hd.NewMnemonic()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), mnemonic)
			return err
		},
	}
}
