package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/lxstatmose/edu-practice-parser/internal/archive"
	"github.com/lxstatmose/edu-practice-parser/internal/export"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write every stored vacancy to a CSV file",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", export.FileName, "Output CSV path")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}
	pool, store, err := openStore(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer pool.Close()

	all, err := archive.New(store).FetchAll(cmd.Context())
	if err != nil {
		return err
	}
	if len(all) == 0 {
		return archive.ErrNothingToExport
	}

	f, err := os.Create(exportOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", exportOut, err)
	}
	if err := export.WriteCSV(f, all); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.Printf("[%s] Exported %d vacancies to %s", service, len(all), exportOut)
	return nil
}
