// Package media generates the product image variants served by the
// storefront: one webp file per size class, named by the slugified source
// filename.
package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"

	"primos.GO/catalog"
)

// Variant is one output size class. Height follows the aspect ratio.
type Variant struct {
	Name  string
	Width int
}

var Variants = []Variant{
	{catalog.VariantThumbnail, 150},
	{catalog.VariantMedium, 400},
	{catalog.VariantLarge, 800},
}

var sourceExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

// IsSource reports whether a filename looks like a convertible image.
func IsSource(name string) bool {
	return sourceExts[strings.ToLower(filepath.Ext(name))]
}

// OutputPath is where a source image's variant lands: the slugified base
// name under the variant directory, always .webp.
func OutputPath(outDir, variant, srcName string) string {
	base := strings.TrimSuffix(filepath.Base(srcName), filepath.Ext(srcName))
	return filepath.Join(outDir, variant, catalog.Slugify(base)+".webp")
}

// Result summarizes one generation run.
type Result struct {
	Sources   int
	Generated int
	Skipped   []string
}

// GenerateAll converts every image in srcDir into all variants under
// outDir, a bounded number at a time. Unreadable sources are skipped and
// reported, not fatal.
func GenerateAll(ctx context.Context, srcDir, outDir string, quality float32, workers int) (*Result, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return nil, fmt.Errorf("media: read source dir: %w", err)
	}
	for _, v := range Variants {
		if err := os.MkdirAll(filepath.Join(outDir, v.Name), 0o755); err != nil {
			return nil, fmt.Errorf("media: create variant dir: %w", err)
		}
	}
	if workers <= 0 {
		workers = 4
	}
	if quality <= 0 || quality > 100 {
		quality = 80
	}

	res := &Result{}
	var mu sync.Mutex
	var skipped []string

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	done := make([]bool, len(entries))

	for i, entry := range entries {
		if entry.IsDir() || !IsSource(entry.Name()) {
			continue
		}
		res.Sources++
		i, name := i, entry.Name()
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := generateOne(filepath.Join(srcDir, name), outDir, name, quality); err != nil {
				mu.Lock()
				skipped = append(skipped, fmt.Sprintf("%s: %v", name, err))
				mu.Unlock()
				return nil
			}
			done[i] = true
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	for _, ok := range done {
		if ok {
			res.Generated++
		}
	}
	res.Skipped = skipped
	return res, nil
}

func generateOne(srcPath, outDir, name string, quality float32) error {
	img, err := imaging.Open(srcPath, imaging.AutoOrientation(true))
	if err != nil {
		return err
	}
	for _, v := range Variants {
		resized := img
		if img.Bounds().Dx() > v.Width {
			resized = imaging.Resize(img, v.Width, 0, imaging.Lanczos)
		}
		out, err := os.Create(OutputPath(outDir, v.Name, name))
		if err != nil {
			return err
		}
		err = webp.Encode(out, resized, &webp.Options{Quality: quality})
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}
	return nil
}
