package main

import (
	"os"
	"path/filepath"

	"github.com/woozymasta/fieldmap/internal/catalog"
	"github.com/woozymasta/fieldmap/internal/config"
	"github.com/woozymasta/fieldmap/internal/logger"
	"github.com/woozymasta/fieldmap/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile  string   `short:"c" long:"config"       env:"CONFIG_FILE"  description:"Path to configuration file" default:"config.yaml"`
	OutDir      string   `short:"o" long:"out"          env:"OUTPUT_DIR"   description:"Output directory" default:"build"`
	Limit       []string `short:"l" long:"limit"        env:"LIMIT_IDS"    description:"Limit processing to specific field identifiers"`
	Concurrency int      `short:"p" long:"concurrency"  env:"CONCURRENCY"  description:"Concurrency" default:"8"`
	Size        int      `short:"s" long:"size"         env:"PREVIEW_SIZE" description:"Preview edge in pixels (overrides config)"`
	PreviewOnly bool     `short:"P" long:"preview-only" description:"Render previews only"`
	ExportOnly  bool     `short:"g" long:"export-only"  description:"Write GeoJSON export only"`
	Force       bool     `short:"f" long:"force"        description:"Force overwrite of existing files"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.Load(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	if opts.Size > 0 {
		cfg.PreviewSize = opts.Size
	}

	doPreviews := true
	doExport := true
	if opts.PreviewOnly && !opts.ExportOnly {
		doExport = false
	} else if opts.ExportOnly && !opts.PreviewOnly {
		doPreviews = false
	}

	fields, err := catalog.NewLoader(cfg.KML.Fields, cfg.KML.Centroids).Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load field catalog")
	}

	// Filter fields if limit is set
	toProcess := fields
	if len(opts.Limit) > 0 {
		reg := catalog.NewRegistry(fields)
		toProcess = make([]catalog.Field, 0, len(opts.Limit))
		seen := make(map[string]bool)

		for _, id := range opts.Limit {
			if seen[id] {
				continue
			}
			seen[id] = true

			if f, ok := reg.ByID(id); ok {
				toProcess = append(toProcess, f)
			} else {
				log.Error().
					Str("id", id).
					Msg("Field specified in --limit not found in catalog")
			}
		}
	}

	log.Info().
		Int("fields_total", len(fields)).
		Int("fields_queued", len(toProcess)).
		Str("out", opts.OutDir).
		Msg("Starting loader")

	if doExport {
		path := filepath.Join(opts.OutDir, "fields.geojson")
		if err := processor.SaveExport(toProcess, processor.FormatGeoJSON, path, opts.Force); err != nil {
			log.Error().Err(err).Str("path", path).Msg("Failed to write GeoJSON export")
		}
	}

	if doPreviews {
		sum := processor.RenderPreviews(
			toProcess,
			filepath.Join(opts.OutDir, "previews"),
			cfg.PreviewSize,
			opts.Concurrency,
			opts.Force)

		log.Info().
			Int("written", sum.Written).
			Int("skipped", sum.Skipped).
			Int("failed", sum.Failed).
			Msg("Previews rendered")
	}

	log.Info().Msg("Loader finished successfully")
}
