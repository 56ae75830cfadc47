// Package config provides configuration management for nb-init.
//
// It utilizes Viper for loading configuration from command-line flags, environment
// variables (and a .env file), the nb-init.yaml config file and struct tag defaults.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - NetBox: instance URL and credentials (token or username/password)
//   - Seed: document source, worker count, dry run and strict mode
//   - Server: HTTP server settings (port, API key)
//   - Database: run journal connection (sqlite or MySQL)
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//
// Environment variables follow the key path (NETBOX_URL, SEED_WORKERS). The short
// names NB_URL, NB_TOKEN, NB_USER and NB_PASSWORD are accepted too.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".", config.WithFlag("seed.workers", cmd.Flags().Lookup("workers")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.NetBox.URL)
package config
