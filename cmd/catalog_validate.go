package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"primos.GO/catalog"
)

var validateFile string

var validateCmd = &cobra.Command{
	Use:   "catalog:validate",
	Short: "Parse a catalog CSV and report what the storefront would load",
	Run: func(cmd *cobra.Command, args []string) {
		start := time.Now()

		raw, err := os.ReadFile(validateFile)
		if err != nil {
			fmt.Printf("Failed to read CSV: %v\n", err)
			os.Exit(1)
		}
		text := string(raw)

		lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
		rows := 0
		for _, l := range lines[1:] {
			if strings.TrimSpace(l) != "" {
				rows++
			}
		}

		products := catalog.Parse(text)
		store := catalog.NewStore(0)
		store.Load(products)

		promos := len(store.Promotions())
		outOfStock := 0
		for _, p := range products {
			if !p.InStock() {
				outOfStock++
			}
		}

		fmt.Printf(`
=== Catalog Report ===
CSV rows:       %d
Valid products: %d
Skipped rows:   %d
Categories:     %d (%s)
On promotion:   %d
Out of stock:   %d
Total time:     %s
======================
`, rows, len(products), rows-len(products),
			len(store.Categories()), strings.Join(store.Categories(), ", "),
			promos, outOfStock, time.Since(start).Round(time.Millisecond))

		if len(products) == 0 {
			os.Exit(1)
		}
	},
}

func init() {
	validateCmd.Flags().StringVarP(&validateFile, "file", "f", "data/products.csv", "CSV file path")
	rootCmd.AddCommand(validateCmd)
}
