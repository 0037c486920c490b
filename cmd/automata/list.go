package main

import (
	"github.com/aretw0/automata/internal/cli"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the registered automata",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		cli.PrintList(cmd.OutOrStdout(), a.recognizers())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
