package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"fisiocatania_backend/internals/configs"
	database "fisiocatania_backend/internals/databases"
	"fisiocatania_backend/internals/logger"
)

var debugSQL bool

var rootCmd = &cobra.Command{
	Use:   "fisiocatania",
	Short: "Backend of the clinic: status grid, exports, athletes and sessions",
	Long: `fisiocatania serves the medical staff backend.

Without a subcommand it starts the HTTP server (same as "serve").`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugSQL, "debug-sql", false, "Log every SQL statement")
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd, operatorCmd)
}

// bootstrap loads the config, sets up logging and opens the database.
// The returned cleanup closes both.
func bootstrap() (*configs.Config, *gorm.DB, func(), error) {
	cfg, err := configs.LoadEnv()
	if err != nil {
		return nil, nil, nil, err
	}
	logCloser, err := logger.Setup(logger.Options{
		Level:       cfg.Log.Level,
		Dir:         cfg.Log.Dir,
		FileEnabled: cfg.Log.FileEnabled,
		Pretty:      !cfg.IsProduction(),
	})
	if err != nil {
		return nil, nil, nil, err
	}
	db, err := database.Connect(cfg.Database, debugSQL)
	if err != nil {
		_ = logCloser.Close()
		return nil, nil, nil, err
	}
	cleanup := func() {
		database.Close(db)
		closeQuietly(logCloser)
	}
	return cfg, db, cleanup, nil
}

func closeQuietly(c io.Closer) {
	if err := c.Close(); err != nil {
		log.Warn().Err(err).Msg("close")
	}
}
