package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/minitap"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of minitap",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("minitap version %s\n", strings.TrimSpace(minitap.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
