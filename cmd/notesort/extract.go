package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"notesort/internal/report"
	"notesort/internal/service"
	"notesort/internal/storage/fs"
)

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <backup-file> <output-dir>",
		Short: "Extract every note of a backup into one text file per unique note",
		Args:  cobra.ExactArgs(2),
		RunE:  runExtract,
	}
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Log, os.Stderr)
	backupPath, outDir := args[0], args[1]

	tally := report.NewTally()
	sink := report.Multi{report.NewLogSink(logger), tally}
	ex := service.NewExtractor(fs.New(fs.Options{}), sink, logger)
	res, err := ex.ExtractFile(backupPath, outDir)
	if err != nil {
		return fmt.Errorf("extract %s: %w", backupPath, err)
	}
	logger.Info("extraction finished", "unique", len(res.Notes), "saved", len(res.Saved))
	fmt.Fprint(cmd.OutOrStdout(), report.RenderExtract(tally, outDir))
	return nil
}
