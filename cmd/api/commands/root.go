package commands

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/georgemunganga/product-manager/internal/config"
	"github.com/georgemunganga/product-manager/internal/database"
	"github.com/georgemunganga/product-manager/internal/logger"
)

var envFile string

// rootCmd serves the API when no subcommand is given.
var rootCmd = &cobra.Command{
	Use:   "api",
	Short: "Product manager API",
	Long: `Product manager keeps a catalog of products together with their images,
customers, tags and per-customer price quotes, and serves it over HTTP.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file to load before reading the environment")
}

// app is what every subcommand starts from.
type app struct {
	cfg *config.Config
	log zerolog.Logger
	db  *sql.DB
}

func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	l := logger.Setup(cfg.LogLevel, cfg.IsDevelopment())

	db, err := database.Open(ctx, database.Options{
		URL:          cfg.DatabaseURL,
		MaxOpenConns: cfg.MaxOpenConns,
		MaxIdleConns: cfg.MaxIdleConns,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	l.Info().Msg("connected to the database")
	return &app{cfg: cfg, log: l, db: db}, nil
}
