package commands

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/skhandal/doi/pkg/infrastructure/config"
)

// cfg carries environment-derived defaults. Flags that were set
// explicitly always win over it.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "doi",
	Short: "Days-of-inventory reporting for sales and warehouse CSV extracts",
	Long: `doi reconciles a sales export against a warehouse inventory export and
reports days of inventory (DOI) per city, item and product over the last
n distinct order dates.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sliceCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(generateCmd)
}

func initConfig() {
	cfg = config.Load()
}
