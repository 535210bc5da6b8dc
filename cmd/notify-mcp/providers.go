package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func providersCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List the providers enabled by the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, cleanup, err := bootstrap(*envFile)
			if err != nil {
				return err
			}
			defer cleanup()

			names := rt.dispatcher.ProviderNames()
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, "No providers configured. Check your .env file.")
				return nil
			}
			for _, name := range names {
				fmt.Fprintln(out, name)
			}
			return nil
		},
	}
}
