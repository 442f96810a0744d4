package app

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hondana-dev/hondana/internal/config"
)

func newInitCmd() *cobra.Command {
	var (
		remoteURL  string
		project    string
		collection string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long: `Write a starter config to ~/.config/hondana/config.yml.

Secrets are never written to the file: the store token, identity API
key and view password are read from the environment variables named in
the config (HONDANA_TOKEN, HONDANA_IDENTITY_KEY, HONDANA_VIEW_PASSWORD
by default).`,
		Example: `  # Point hondana at a remote document store
  hondana init --remote https://store.example.com --project hondana`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultPath()
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
			}

			if remoteURL != "" {
				cfg.Remote.BaseURL = remoteURL
			}
			if project != "" {
				cfg.Remote.Project = project
			}
			if collection != "" {
				cfg.Remote.Collection = collection
			}

			if err := config.Save(cfg); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}
			ok("wrote %s", path)
			if cfg.Remote.BaseURL == "" {
				warn("no remote set — hondana will run offline until remote.base_url is configured")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&remoteURL, "remote", "", "Document store base URL")
	cmd.Flags().StringVar(&project, "project", "", "Document store project id")
	cmd.Flags().StringVar(&collection, "collection", "", "Books collection name (default: books)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}
