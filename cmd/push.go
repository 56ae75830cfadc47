package cmd

import (
	"fmt"

	"nb-init/core/config"
	"nb-init/core/document"
	"nb-init/core/logger"
	"nb-init/core/storage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// pushCmd uploads a local seed directory to the document bucket.
var pushCmd = &cobra.Command{
	Use:   "push [dir]",
	Short: "Upload seed documents to the storage bucket",
	Long:  `Uploads every <tag>.yml document of a directory to the configured bucket under the seed prefix, so that "seed --source bucket" can read them.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := interruptible(cmd.Context())
		defer stop()

		cfg, err := config.LoadConfig(configPath,
			config.WithFlag("storage.bucket", cmd.Flags().Lookup("bucket")),
			config.WithFlag("seed.prefix", cmd.Flags().Lookup("prefix")),
		)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logg.Sync()

		dir := cfg.Seed.Dir
		if len(args) == 1 {
			dir = args[0]
		}

		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}

		dst := document.BucketSource{Client: client, Bucket: cfg.Storage.Bucket, Prefix: cfg.Seed.Prefix}
		names, err := document.Publish(ctx, document.DirSource{Dir: dir}, dst)
		for _, name := range names {
			logg.Info("Uploaded document", zap.String("bucket", cfg.Storage.Bucket), zap.String("object", name))
		}
		if err != nil {
			return fmt.Errorf("push failed: %w", err)
		}

		logg.Info("Push completed", zap.String("dir", dir), zap.Int("documents", len(names)))
		return nil
	},
}

func init() {
	pushCmd.Flags().String("bucket", "", "Target bucket")
	pushCmd.Flags().String("prefix", "", "Object prefix within the bucket")
	RootCmd.AddCommand(pushCmd)
}
