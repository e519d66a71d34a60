package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"notesort/internal/classify"
	"notesort/internal/corpus"
	"notesort/internal/corpus/memory"
	"notesort/internal/report"
	"notesort/internal/service"
	"notesort/internal/similarity/ratio"
	"notesort/internal/storage/fs"
	"notesort/internal/tui"
)

var organizeReview bool

func newOrganizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "organize [source-dir] [fallback-dir]",
		Short: "File extracted texts as duplicates, new versions or new texts",
		Long: `Compares every .txt file of source-dir with the existing library and
 - removes it when an identical text exists (score 100),
 - stores it as the next version next to the closest text (score 40-99),
 - moves it into fallback-dir otherwise.
Both folders default to the configured paths.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runOrganize,
	}
	cmd.Flags().BoolVar(&organizeReview, "review", false, "Browse the outcomes in an interactive view after the run")
	return cmd
}

func runOrganize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	source, fallback := cfg.Paths.SourceDir, cfg.Paths.FallbackDir
	if len(args) > 0 {
		source = args[0]
	}
	if len(args) > 1 {
		fallback = args[1]
	}
	if organizeReview && !isatty.IsTerminal(os.Stdout.Fd()) {
		return errors.New("--review needs an interactive terminal")
	}

	logger := newLogger(cfg.Log, os.Stderr)
	stor := fs.New(fs.Options{})
	tally := report.NewTally()
	sink := report.Multi{report.NewLogSink(logger), tally}

	root := cfg.ResolvedLibraryRoot(source)
	logger.Info("scanning library", "root", root, "source", source, "fallback", fallback)
	scanner := corpus.NewScanner(stor, corpus.Layout{
		Root:              root,
		ProjectTextFolder: cfg.Corpus.ProjectTextFolder,
		RootTextFolder:    cfg.Corpus.RootTextFolder,
		SkipFolders:       cfg.Corpus.SkipFolders,
		ExcludeMarkers:    cfg.Corpus.ExcludeMarkers,
		SourceDir:         source,
	}, sink)
	entries, err := scanner.Scan()
	if err != nil {
		return fmt.Errorf("scan library: %w", err)
	}
	index := memory.NewSnapshot(ratio.New(cfg.Similarity.AutoJunk), entries...)
	logger.Info("library scanned", "texts", index.Len())

	th := classify.Thresholds{Skip: cfg.Thresholds.Skip, Version: cfg.Thresholds.Version}
	outcomes, err := service.NewOrganizer(stor, index, th, sink, logger).Run(source, fallback)
	if err != nil {
		return err
	}
	summary := report.RenderOrganize(tally)
	fmt.Fprint(cmd.OutOrStdout(), summary)

	if organizeReview {
		brief := fmt.Sprintf("skipped %d, versions %d, new %d, failed %d",
			tally.Skipped, tally.Versioned, tally.Added, len(tally.Failures))
		if _, err := tea.NewProgram(tui.New(outcomes, brief, stor), tea.WithAltScreen()).Run(); err != nil {
			return err
		}
	}
	return nil
}
