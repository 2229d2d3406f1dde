// Package videos implements the 'videos' subcommand.
package videos

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cwhicks/siteingest/internal/conf"
	"github.com/cwhicks/siteingest/internal/datastore"
	"github.com/cwhicks/siteingest/internal/ingest"
	"github.com/cwhicks/siteingest/internal/ytdlp"
)

// Command creates the videos command, which fetches channel metadata
// through yt-dlp and stores classified records in the database.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "videos",
		Short: "Fetch video metadata from a channel",
		Long:  `Fetch video metadata using yt-dlp without downloading any videos, classify each video as short or standard, and store the records in the database.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVideos(settings)
		},
	}

	setupFlags(cmd, settings)

	return cmd
}

// setupFlags configures flags specific to the videos command.
func setupFlags(cmd *cobra.Command, settings *conf.Settings) {
	cmd.Flags().StringVarP(&settings.Videos.ChannelURL, "channel", "c", viper.GetString("videos.channelurl"), "Channel URL to fetch metadata from")
	cmd.Flags().StringVar(&settings.Videos.YtdlpPath, "ytdlp", viper.GetString("videos.ytdlppath"), "Path to the yt-dlp binary")
	cmd.Flags().IntVar(&settings.Videos.CommitInterval, "commit-interval", viper.GetInt("videos.commitinterval"), "Number of records per database flush")
}

func runVideos(settings *conf.Settings) error {
	store := datastore.New(settings)
	if store == nil {
		return fmt.Errorf("no database output enabled in configuration")
	}
	if err := store.Open(); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer store.Close()

	// A pass is cancelled by process termination only.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := ytdlp.NewClient(settings)
	pipeline := ingest.NewVideoPipeline(settings, store, client)

	fmt.Printf("Fetching video metadata from %s\n", settings.Videos.ChannelURL)

	summary, err := pipeline.Run(ctx)
	if err != nil {
		return fmt.Errorf("video pipeline failed: %w", err)
	}

	fmt.Printf("Found %d videos, stored %d", summary.Found, summary.Stored)
	if len(summary.Failed) > 0 {
		fmt.Printf(", %d failed", len(summary.Failed))
	}
	fmt.Println()

	return nil
}
