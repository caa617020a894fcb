package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/CreativeZee/local-hub-replicator/internal/config"
	"github.com/CreativeZee/local-hub-replicator/internal/database"
	"github.com/CreativeZee/local-hub-replicator/internal/geo"
	"github.com/CreativeZee/local-hub-replicator/internal/logger"
	"github.com/CreativeZee/local-hub-replicator/internal/models"
	"github.com/CreativeZee/local-hub-replicator/internal/seed"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "localhub",
		Short: "Admin tooling for the local hub backend",
	}
	rootCmd.AddCommand(seedCmd(), geocodeCmd(), statsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func withDatabase(run func(*config.Config) error) error {
	cfg := config.Load()
	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		return err
	}
	defer logger.Close()

	if err := database.Initialize(cfg); err != nil {
		return err
	}
	defer database.Close()

	return run(cfg)
}

func seedCmd() *cobra.Command {
	var users, posts int
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with fake neighborhood data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(cfg *config.Config) error {
				opts := seed.DefaultOptions()
				if users > 0 {
					opts.Users = users
				}
				if posts > 0 {
					opts.PostsPerUser = posts
				}
				return seed.Run(database.Get(), opts)
			})
		},
	}
	cmd.Flags().IntVar(&users, "users", 0, "number of accounts to create")
	cmd.Flags().IntVar(&posts, "posts", 0, "posts per account")
	return cmd
}

func geocodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "geocode <address>",
		Short: "Resolve an address through the configured geocoder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger.InitializeForTests()

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			geocoder := geo.NewGeocoder(cfg.GeocoderBaseURL)
			lat, lon, ok := geocoder.Geocode(ctx, args[0])
			if !ok {
				return fmt.Errorf("could not resolve %q", args[0])
			}
			fmt.Printf("%s -> lat=%.6f lon=%.6f\n", args[0], lat, lon)
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print row counts for the main content tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(func(cfg *config.Config) error {
				db := database.Get()
				tables := []struct {
					name  string
					model interface{}
				}{
					{"users", &models.User{}},
					{"posts", &models.Post{}},
					{"marketplace items", &models.MarketplaceItem{}},
					{"events", &models.Event{}},
					{"groups", &models.Group{}},
					{"services", &models.Service{}},
					{"reviews", &models.Review{}},
					{"conversations", &models.Conversation{}},
					{"messages", &models.Message{}},
					{"favorites", &models.Favorite{}},
				}
				for _, t := range tables {
					var count int64
					if err := db.Model(t.model).Count(&count).Error; err != nil {
						return err
					}
					fmt.Printf("%-20s %d\n", t.name, count)
				}
				return nil
			})
		},
	}
}
