package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nullpilot/codesweep/internal/config"
	"github.com/nullpilot/codesweep/internal/s3sync"
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Upload the dataset to the configured S3 bucket",
	RunE:  runPush,
}

func init() {
	rootCmd.AddCommand(pushCmd)
	pushCmd.Flags().StringVar(&dataDir, "data-dir", "", "dataset directory (default from config)")
}

func runPush(cmd *cobra.Command, args []string) error {
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

	if err := client.Push(context.Background(), dir); err != nil {
		return err
	}
	fmt.Printf("Pushed dataset from %s to s3://%s/%s\n", dir, cfg.S3.BucketName, cfg.S3.Prefix)
	return nil
}
