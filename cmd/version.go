package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

const Version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of envelope_heat_calc",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("envelope_heat_calc v%s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
