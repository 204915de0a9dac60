package main

import (
	"log"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the vacancies table if it does not exist",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}
	pool, _, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	pool.Close()
	log.Printf("[%s] Schema is up to date.", service)
	return nil
}
