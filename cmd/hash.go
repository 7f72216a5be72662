package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/inference-sim/mwt/mwt"
)

func newHashCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "hash <app-id> [unit-key...]",
		Short: "Print the identity hash of an app id and the seed of each unit key",
		Long: "Prints \"<app-id>\\t<hash>\" and then \"<unit-key>\\t<hash>\\t<seed>\" per unit key.\n" +
			"Use it to check another implementation derives the same seeds.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			appHash, err := mwt.HashID(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\t%d\n", args[0], appHash)
			for _, key := range args[1:] {
				unitHash, err := mwt.HashID(key)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s\t%d\t%d\n", key, unitHash, mwt.ComposeSeed(unitHash, appHash))
			}
			return nil
		},
	}
}
