package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nullpilot/codesweep/internal/config"
	"github.com/nullpilot/codesweep/internal/s3sync"
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Download the dataset from the configured S3 bucket",
	RunE:  runPull,
}

func init() {
	rootCmd.AddCommand(pullCmd)
	pullCmd.Flags().StringVar(&dataDir, "data-dir", "", "dataset directory (default from config)")
}

func runPull(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigFromDir(".")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dir := dataDir
	if dir == "" {
		dir = cfg.Output.DataDir
	}

	client, err := s3sync.NewClient(context.Background(), cfg.S3)
	if err != nil {
		return err
	}

	if err := client.Pull(context.Background(), dir); err != nil {
		return err
	}
	fmt.Printf("Pulled dataset from s3://%s/%s to %s\n", cfg.S3.BucketName, cfg.S3.Prefix, dir)
	return nil
}
