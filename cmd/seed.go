package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"nb-init/core/config"
	"nb-init/core/logger"
	"nb-init/core/reconcile"
	"nb-init/feature/seed"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// seedFlags maps config keys to the seed command flags overriding them.
var seedFlags = map[string]string{
	"netbox.url":      "url",
	"netbox.token":    "token",
	"netbox.username": "username",
	"netbox.password": "password",
	"seed.source":     "source",
	"seed.dir":        "dir",
	"seed.prefix":     "prefix",
	"seed.workers":    "workers",
	"seed.dry_run":    "dry-run",
	"seed.strict":     "strict",
	"seed.tags":       "tags",
	"storage.bucket":  "bucket",
}

var seedJSON bool

// seedCmd reconciles the seed documents into NetBox.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the missing NetBox objects declared in the seed documents",
	Long: `Reads <tag>.yml documents from a directory or a bucket and creates every declared
object that NetBox does not have yet, in dependency order. Existing objects are left
untouched.

Examples:
  # Seed from ./seed with a token
  nb-init seed --dir ./seed --url https://netbox.local --token $TOKEN

  # Show what would be created
  nb-init seed --dir ./seed --dry-run

  # Only sites and racks, failing on any bad item
  nb-init seed --tags sites,racks --strict`,
	RunE: runSeed,
}

func init() {
	f := seedCmd.Flags()
	f.String("url", "", "NetBox base URL")
	f.String("token", "", "NetBox API token")
	f.String("username", "", "NetBox username, used to provision a temporary token")
	f.String("password", "", "NetBox password")
	f.String("source", reconcile.SourceDir, "Document source (dir, bucket)")
	f.String("dir", ".", "Directory containing the seed documents")
	f.String("bucket", "", "Bucket containing the seed documents")
	f.String("prefix", "", "Object prefix within the bucket")
	f.Int("workers", 1, "Concurrent records per entity type")
	f.Bool("dry-run", false, "Only look up objects and report what would be created")
	f.Bool("strict", false, "Exit non-zero when any item failed or was skipped")
	f.StringSlice("tags", nil, "Only reconcile these entity types")
	f.BoolVar(&seedJSON, "json", false, "Print the full report as JSON")

	RootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx, stop := interruptible(cmd.Context())
	defer stop()

	opts := make([]config.Option, 0, len(seedFlags))
	for key, name := range seedFlags {
		opts = append(opts, config.WithFlag(key, cmd.Flags().Lookup(name)))
	}
	cfg, err := config.LoadConfig(configPath, opts...)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logg.Sync()

	src, err := newSource(cfg)
	if err != nil {
		return err
	}

	svc := seed.NewService(seed.SessionConnector(cfg.NetBox, logg), src, openJournal(ctx, cfg, logg), cfg.Seed.Options(), logg)
	defer svc.Close()

	report, err := svc.Run(ctx, cfg.Seed.Options())
	if report != nil {
		if printErr := printSeedReport(report); printErr != nil {
			logg.Warn("Failed to print report", zap.Error(printErr))
		}
	}
	if err != nil {
		return fmt.Errorf("seed run aborted: %w", err)
	}

	if cfg.Seed.Strict && report.HasFailures() {
		return fmt.Errorf("strict mode: %d failed, %d skipped", report.Summary.Failed, report.Summary.Skipped)
	}
	return nil
}

func printSeedReport(report *reconcile.Report) error {
	if seedJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	s := report.Summary
	if report.DryRun {
		fmt.Println("\n=== Seed Summary (dry run) ===")
	} else {
		fmt.Println("\n=== Seed Summary ===")
	}
	fmt.Printf("Run ID: %s\n", report.RunID)
	fmt.Printf("Created: %d\n", s.Created)
	fmt.Printf("Present: %d\n", s.Present)
	fmt.Printf("Updated: %d\n", s.Updated)
	if report.DryRun {
		fmt.Printf("Would Create: %d\n", s.WouldCreate)
		fmt.Printf("Would Update: %d\n", s.WouldUpdate)
	}
	fmt.Printf("Skipped: %d\n", s.Skipped)
	fmt.Printf("Failed: %d\n", s.Failed)
	fmt.Printf("Execution Time: %s\n", report.FinishedAt.Sub(report.StartedAt).String())
	return nil
}

// interruptible returns a context cancelled by SIGINT or SIGTERM.
func interruptible(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
