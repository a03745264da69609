package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"media-review/internal/data/repository"
	"media-review/internal/importer"
	"media-review/pkg/database"
	"media-review/pkg/utils"
)

func main() {
	var (
		dir        string
		skipErrors bool
	)

	rootCmd := &cobra.Command{
		Use:   "import",
		Short: "Load catalog fixtures from CSV files into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := utils.LoadConfig()
			if err != nil {
				return err
			}

			logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
			if err != nil {
				log.Printf("Failed to init logger: %v. Using standard log.", err)
				logger, _ = zap.NewProduction()
			}
			defer logger.Sync()

			// The flag wins over config only when set explicitly.
			if !cmd.Flags().Changed("skip-errors") {
				skipErrors = config.Import.SkipErrors
			}

			db, err := database.InitDB(config.Database)
			if err != nil {
				return err
			}
			defer db.Close()

			repos := repository.NewRepository(db, logger)

			im := importer.New(repos, skipErrors, logger)
			if err := im.Run(cmd.Context(), dir); err != nil {
				logger.Error("Import failed", zap.Error(err))
				return err
			}

			logger.Info("Import finished", zap.String("dir", dir))
			return nil
		},
	}

	rootCmd.Flags().StringVar(&dir, "dir", "data", "directory containing the CSV fixture files")
	rootCmd.Flags().BoolVar(&skipErrors, "skip-errors", true, "log and skip bad records instead of aborting")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
