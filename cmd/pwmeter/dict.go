package main

import (
	"context"
	"fmt"
	"os"

	"github.com/praetorian-inc/pwmeter/pkg/dictionary"
	"github.com/praetorian-inc/pwmeter/pkg/source"
	"github.com/praetorian-inc/pwmeter/pkg/store"
	"github.com/spf13/cobra"
)

var (
	importSourceName string
	exportOutput     string
	mergeOutput      string
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Manage common-password dictionaries",
	Long: `Build and inspect SQLite wordlist databases. A database can be used as a
dictionary with --dictionary sqlite://path/to/words.db.`,
}

var dictImportCmd = &cobra.Command{
	Use:   "import <words.db> <location> [location...]",
	Short: "Import wordlists into a database",
	Long: `Import newline-delimited wordlists into a SQLite database, creating it if
needed. Locations use the same forms as --dictionary. Words are stored
lowercased and trimmed; duplicates are skipped.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runDictImport,
}

var dictStatsCmd = &cobra.Command{
	Use:   "stats <words.db>",
	Short: "Show word counts per source",
	Args:  cobra.ExactArgs(1),
	RunE:  runDictStats,
}

var dictExportCmd = &cobra.Command{
	Use:   "export <words.db>",
	Short: "Write every word to stdout, sorted",
	Args:  cobra.ExactArgs(1),
	RunE:  runDictExport,
}

var dictMergeCmd = &cobra.Command{
	Use:   "merge <source1.db> <source2.db> [source3.db...]",
	Short: "Merge multiple wordlist databases",
	Long: `Merge multiple wordlist databases into a single output database.

Deduplication is automatic; a word keeps the source tag of the first
database that contributed it.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runDictMerge,
}

var dictLookupCmd = &cobra.Command{
	Use:   "lookup <password>",
	Short: "Report whether a password is in the configured dictionaries",
	Args:  cobra.ExactArgs(1),
	RunE:  runDictLookup,
}

func init() {
	dictImportCmd.Flags().StringVar(&importSourceName, "source-name", "", "Tag stored with imported words (default: the location)")
	dictExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to this file instead of stdout")
	dictMergeCmd.Flags().StringVarP(&mergeOutput, "output", "o", "merged.db", "Output database path")

	dictCmd.AddCommand(dictImportCmd)
	dictCmd.AddCommand(dictStatsCmd)
	dictCmd.AddCommand(dictExportCmd)
	dictCmd.AddCommand(dictMergeCmd)
	dictCmd.AddCommand(dictLookupCmd)
	rootCmd.AddCommand(dictCmd)
}

func runDictImport(cmd *cobra.Command, args []string) error {
	db, err := store.New(store.Config{Path: args[0]})
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	opts := currentConfig().SourceOptions()
	opts.Logger = debugLogger(cmd)

	out := cmd.OutOrStdout()
	total := 0
	for _, location := range args[1:] {
		src, err := source.Parse(location, opts)
		if err != nil {
			return err
		}

		name := importSourceName
		if name == "" {
			name = src.Name()
		}

		n, err := importSource(ctx, db, src, name)
		if err != nil {
			return err
		}
		total += n
		fmt.Fprintf(out, "  %s: %d new words\n", name, n)
	}

	count, err := db.Count()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Import complete: %d new, %d total\n", total, count)
	return nil
}

func importSource(ctx context.Context, db store.Store, src dictionary.Source, name string) (int, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", src.Name(), err)
	}
	defer rc.Close()

	n, err := db.Import(ctx, rc, name)
	if err != nil {
		return n, fmt.Errorf("importing %s: %w", src.Name(), err)
	}
	return n, nil
}

func runDictStats(cmd *cobra.Command, args []string) error {
	db, err := openExisting(args[0])
	if err != nil {
		return err
	}
	defer db.Close()

	sources, err := db.Sources()
	if err != nil {
		return err
	}
	count, err := db.Count()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d words\n", args[0], count)
	for _, s := range sources {
		fmt.Fprintf(out, "  %-30s %d\n", s.Source, s.Words)
	}
	return nil
}

func runDictExport(cmd *cobra.Command, args []string) error {
	db, err := openExisting(args[0])
	if err != nil {
		return err
	}
	defer db.Close()

	if exportOutput == "" {
		_, err = db.WriteTo(cmd.OutOrStdout())
		return err
	}

	f, err := os.Create(exportOutput)
	if err != nil {
		return fmt.Errorf("creating %s: %w", exportOutput, err)
	}
	if _, err := db.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", exportOutput, err)
	}
	return f.Close()
}

func runDictMerge(cmd *cobra.Command, args []string) error {
	stats, err := store.Merge(store.MergeConfig{
		SourcePaths: args,
		DestPath:    mergeOutput,
	})
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Merge complete:\n")
	fmt.Fprintf(cmd.OutOrStdout(), "  Sources processed: %d\n", stats.SourcesProcessed)
	fmt.Fprintf(cmd.OutOrStdout(), "  Words merged: %d\n", stats.WordsMerged)
	fmt.Fprintf(cmd.OutOrStdout(), "Output: %s\n", mergeOutput)
	return nil
}

func runDictLookup(cmd *cobra.Command, args []string) error {
	m, err := newMeter(cmd)
	if err != nil {
		return err
	}
	defer m.Close()
	waitForDictionary(cmd, m)

	dict := m.Dictionary()
	if dict.Contains(args[0]) {
		fmt.Fprintf(cmd.OutOrStdout(), "found in dictionary (%d passwords loaded)\n", dict.Len())
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "not found in dictionary (%d passwords loaded)\n", dict.Len())
	}
	return nil
}

// openExisting opens a database that must already exist; store.New would
// silently create an empty one.
func openExisting(path string) (store.Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return store.New(store.Config{Path: path})
}
