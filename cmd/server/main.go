package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/woozymasta/fieldmap/internal/catalog"
	"github.com/woozymasta/fieldmap/internal/config"
	"github.com/woozymasta/fieldmap/internal/logger"
	"github.com/woozymasta/fieldmap/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string   `short:"c" long:"config"     env:"CONFIG_FILE"    description:"Path to configuration file" default:"config.yaml"`
	Fields     string   `short:"f" long:"fields"     env:"FIELDS_KML"     description:"KML file with field polygons (overrides config)"`
	Centroids  string   `short:"C" long:"centroids"  env:"CENTROIDS_KML"  description:"KML file with field centroids (overrides config)"`
	Addr       string   `short:"a" long:"addr"       env:"LISTEN_ADDRESS" description:"Address to listen on"       default:"0.0.0.0"`
	Port       int      `short:"p" long:"port"       env:"LISTEN_PORT"    description:"Port to listen on"          default:"8080"`
	RateLimit  *float64 `short:"r" long:"rate-limit" env:"RATE_LIMIT"     description:"Requests per second, 0 disables (overrides config)"`
}

func main() {
	// .env only fills variables that are not already set
	_ = godotenv.Load(".env")

	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	// Setup Logging
	opts.Logger.Setup()

	// Load Config
	cfg, err := config.LoadOptional(opts.ConfigFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	opts.apply(cfg)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Load the catalog once; it is read-only from here on
	fields, err := catalog.NewLoader(cfg.KML.Fields, cfg.KML.Centroids).Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load field catalog")
	}

	srvCtx, err := server.NewServerContext(catalog.NewRegistry(fields), cfg.PreviewSize)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	handler := server.RequestLogger(server.RateLimit(srvCtx.Routes(), cfg.RateLimit, cfg.RateBurst))

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().
		Str("addr", listenAddr).
		Int("fields_loaded", srvCtx.Registry.Len()).
		Float64("rate_limit", cfg.RateLimit).
		Msg("Web server started")

	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

// apply overrides config values with those given on the command line or in
// the environment. An explicit rate limit of 0 disables a configured limit.
func (o Options) apply(cfg *config.Config) {
	if o.Fields != "" {
		cfg.KML.Fields = o.Fields
	}
	if o.Centroids != "" {
		cfg.KML.Centroids = o.Centroids
	}
	if o.RateLimit != nil {
		cfg.RateLimit = *o.RateLimit
	}
}
