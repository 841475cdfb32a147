package cmd

import (
	"fmt"
	"os"

	"quake-manager/core/config"
	"quake-manager/core/logger"
	"quake-manager/core/storage"
	"quake-manager/feature/earthquake"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// archiveCmd represents the archive command
var archiveCmd = &cobra.Command{
	Use:   "archive [object]",
	Short: "Print an archived provider payload",
	Long:  `Retrieves a raw upstream payload from the archive bucket (e.g. raw/usgs/20230404T120000.000Z.json) and prints it to stdout.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			fmt.Printf("Failed to load config: %v\n", err)
			os.Exit(1)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			fmt.Printf("Failed to create logger: %v\n", err)
			os.Exit(1)
		}

		if !cfg.Storage.Enabled {
			logg.Fatal("Archive storage is not enabled")
		}

		archive, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		svc := earthquake.NewService(nil, nil, nil, archive, cfg.Storage.Bucket, logg)
		payload, err := svc.RetrieveRaw(cmd.Context(), args[0])
		if err != nil {
			logg.Fatal("Archive retrieval failed", zap.String("object", args[0]), zap.Error(err))
		}
		os.Stdout.Write(payload)
	},
}

func init() {
	RootCmd.AddCommand(archiveCmd)
}
