package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"primos.GO/config"
	"primos.GO/service/media"
)

var (
	resizeSrc     string
	resizeOut     string
	resizeQuality float32
	resizeWorkers int
)

var resizeCmd = &cobra.Command{
	Use:   "media:resize",
	Short: "Generate thumbnail/medium/large webp variants of product images",
	Run: func(cmd *cobra.Command, args []string) {
		start := time.Now()

		out := resizeOut
		if out == "" {
			out = config.AppConfig.MediaDir
		}

		res, err := media.GenerateAll(context.Background(), resizeSrc, out, resizeQuality, resizeWorkers)
		if err != nil {
			fmt.Printf("Resize failed: %v\n", err)
			os.Exit(1)
		}

		for _, s := range res.Skipped {
			fmt.Printf("  [warn] %s\n", s)
		}
		fmt.Printf(`
=== Media Report ===
Source images:  %d
Generated:      %d (x%d variants)
Skipped:        %d
Output dir:     %s
Total time:     %s
====================
`, res.Sources, res.Generated, len(media.Variants), len(res.Skipped), out,
			time.Since(start).Round(time.Millisecond))
	},
}

func init() {
	resizeCmd.Flags().StringVarP(&resizeSrc, "source", "s", "images/raw", "Directory with original images")
	resizeCmd.Flags().StringVarP(&resizeOut, "out", "o", "", "Output directory (default MEDIA_DIR)")
	resizeCmd.Flags().Float32VarP(&resizeQuality, "quality", "q", 80, "webp quality (1-100)")
	resizeCmd.Flags().IntVarP(&resizeWorkers, "workers", "w", 4, "Concurrent conversions")
	rootCmd.AddCommand(resizeCmd)
}
