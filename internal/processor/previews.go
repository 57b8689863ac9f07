// Package processor handles offline processing of the field catalog:
// preview rendering and export to other formats.
package processor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/woozymasta/fieldmap/internal/catalog"
	"github.com/woozymasta/fieldmap/internal/render"

	"github.com/rs/zerolog/log"
)

type job struct {
	Field   catalog.Field
	OutPath string
}

type result struct {
	ID      string
	Written bool
	Skipped bool
	Err     error
}

// Summary counts preview rendering outcomes.
type Summary struct {
	Written int
	Skipped int
	Failed  int
}

// RenderPreviews writes one WebP preview per field into outDir, named by
// PreviewFileName. Existing non-empty files are kept unless force is set.
// Fields sharing a file name are rendered once, for the first occurrence.
func RenderPreviews(fields []catalog.Field, outDir string, size, concurrency int, force bool) Summary {
	if concurrency <= 0 {
		concurrency = 1
	}

	seen := make(map[string]bool, len(fields))
	queue := make([]job, 0, len(fields))
	for _, f := range fields {
		name := PreviewFileName(f.ID)
		if seen[name] {
			log.Debug().Str("field", f.ID).Msg("Duplicate field identifier, preview skipped")
			continue
		}
		seen[name] = true
		queue = append(queue, job{Field: f, OutPath: filepath.Join(outDir, name)})
	}

	jobs := make(chan job, len(queue))
	results := make(chan result, len(queue))

	go func() {
		for _, j := range queue {
			jobs <- j
		}
		close(jobs)
	}()

	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results <- renderOne(j, size, force)
			}
		}()
	}
	wg.Wait()
	close(results)

	var sum Summary
	for res := range results {
		switch {
		case res.Err != nil:
			sum.Failed++
			log.Warn().Err(res.Err).Str("field", res.ID).Msg("Failed to render preview")
		case res.Skipped:
			sum.Skipped++
		case res.Written:
			sum.Written++
		}
	}

	return sum
}

func renderOne(j job, size int, force bool) result {
	res := result{ID: j.Field.ID}

	if !force {
		if info, err := os.Stat(j.OutPath); err == nil && info.Size() > 0 {
			res.Skipped = true
			return res
		}
	}

	img, err := render.FieldPreview(j.Field.Locations.Polygon, size)
	if err != nil {
		res.Err = err
		return res
	}

	if err := os.MkdirAll(filepath.Dir(j.OutPath), 0755); err != nil {
		res.Err = err
		return res
	}

	f, err := os.Create(j.OutPath)
	if err != nil {
		res.Err = err
		return res
	}

	if err := render.EncodeWebP(f, img); err != nil {
		_ = f.Close()
		res.Err = fmt.Errorf("encode %s: %w", j.OutPath, err)
		return res
	}

	if err := f.Close(); err != nil {
		res.Err = err
		return res
	}

	res.Written = true
	return res
}

// PreviewFileName maps a field identifier to a safe file name.
func PreviewFileName(id string) string {
	if id == "" {
		return "_.webp"
	}

	var b strings.Builder
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}

	return b.String() + ".webp"
}
