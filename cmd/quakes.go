package cmd

import (
	"context"
	"fmt"
	"os"

	"quake-manager/core/config"
	"quake-manager/core/database"
	"quake-manager/core/logger"
	"quake-manager/feature/earthquake"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	quakesCountry string
	quakesLimit   int
)

// quakesCmd represents the quakes command
var quakesCmd = &cobra.Command{
	Use:   "quakes [source]",
	Short: "Query recent seismic events from the console",
	Long:  `Queries recent events from USGS, EMSC or the local store (DB) and prints them.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runQuakesQuery(cmd.Context(), args[0])
	},
}

func init() {
	quakesCmd.Flags().StringVarP(&quakesCountry, "country", "c", "", "country filter")
	quakesCmd.Flags().IntVarP(&quakesLimit, "limit", "l", earthquake.DefaultQueryLimit, "maximum results")
	RootCmd.AddCommand(quakesCmd)
}

func runQuakesQuery(ctx context.Context, source string) {
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

	// Connect to Database (Optional)
	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
	} else {
		db = conn
	}

	feat := earthquake.NewFeature(db, cfg.Providers, nil, "", logg)

	events, noData, err := feat.Service().GetEarthquakes(ctx, source, quakesCountry, quakesLimit)
	if err != nil {
		logg.Fatal("Query failed", zap.Error(err))
	}

	if noData != nil {
		fmt.Printf("%s (country: %s)\n", noData.Message, noData.Country)
		if noData.Error != "" {
			fmt.Printf("detail: %s\n", noData.Error)
		}
		return
	}

	fmt.Println("\n--- Recent Seismic Events ---")
	for _, ev := range events {
		fmt.Printf("%-16s M%-5.1f %-10s %s\n", ev.EventID, ev.Magnitude, ev.Country, ev.Location)
	}
	fmt.Println("-----------------------------")
	fmt.Printf("%d event(s)\n", len(events))
}
