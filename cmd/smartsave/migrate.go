package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"smartsave-go/internal/app"
	"smartsave-go/internal/config"
	goalsdomain "smartsave-go/internal/domain/goals"
	filerepo "smartsave-go/internal/repository/file"
)

var flagFromFile string

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Prepare the configured store and optionally import a JSON goals file",
	Long: "Opens the configured store, which applies pending SQL migrations for postgres " +
		"and creates the schema for sqlite. With --from-file, goals from a JSON data file " +
		"are copied in, keeping ids and history. The source file is only read.",
	RunE: runMigrate,
}

func init() {
	migrateCmd.Flags().StringVar(&flagFromFile, "from-file", "", "JSON goals file to import")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := app.OpenStore(cfg, log)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if flagFromFile == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "store %q is up to date\n", cfg.Store.Driver)
		return nil
	}
	if cfg.Store.Driver == config.StoreDriverFile && cfg.Store.DataFile == flagFromFile {
		return fmt.Errorf("--from-file is the configured data file")
	}

	source := filerepo.NewGoalsRepository(flagFromFile, "", log)
	items, err := source.Snapshot(cmd.Context())
	if err != nil {
		return fmt.Errorf("read %s: %w", flagFromFile, err)
	}

	service := goalsdomain.NewService(store.Repo, goalsdomain.PaymentConfig{})
	imported, err := service.ImportGoals(cmd.Context(), items)
	if err != nil {
		return err
	}

	log.Info("migrate: import finished", "source", flagFromFile, "read", len(items), "imported", imported)
	fmt.Fprintf(cmd.OutOrStdout(), "imported %d of %d goals into %s\n", imported, len(items), cfg.Store.Driver)
	return nil
}
