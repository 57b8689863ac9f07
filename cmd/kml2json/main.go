package main

import (
	"fmt"
	"os"

	"github.com/woozymasta/fieldmap/internal/catalog"
	"github.com/woozymasta/fieldmap/internal/processor"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Fields    string `short:"i" long:"fields"    description:"KML file with field polygons" required:"true"`
	Centroids string `short:"C" long:"centroids" description:"KML file with field centroids" required:"true"`
	Output    string `short:"o" long:"out"       description:"Output file path. Writes to stdout if empty"`
	Format    string `short:"f" long:"format"    description:"Output format" choice:"json" choice:"yaml" choice:"geojson" default:"geojson"`
	Quiet     bool   `short:"q" long:"quiet"     description:"Only log errors"`
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

	// stdout may carry the result, keep logs on stderr
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if opts.Quiet {
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	}

	fields, err := catalog.NewLoader(opts.Fields, opts.Centroids).Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading fields: %v\n", err)
		os.Exit(1)
	}

	outputData, err := processor.Marshal(fields, opts.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling data: %v\n", err)
		os.Exit(1)
	}

	if opts.Output == "" {
		fmt.Println(string(outputData))
		return
	}

	if err := os.WriteFile(opts.Output, outputData, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Successfully converted %d fields to %s (format: %s)\n", len(fields), opts.Output, opts.Format)
}
