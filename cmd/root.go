package cmd

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"primos.GO/config"
)

var rootCmd = &cobra.Command{
	Use:   "primos",
	Short: "Primos Informática storefront toolbox",
	Long:  "Catalog, media and scheduler tooling for the Primos Informática storefront.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.LoadEnv()
		config.LoadAppConfig()
	},
	Run: func(cmd *cobra.Command, args []string) {
		figure.NewFigure("primos", "", true).Print()
		_ = cmd.Help()
	},
}

// Execute runs the CLI after applying registered commands.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
