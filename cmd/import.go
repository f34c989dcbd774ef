package cmd

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/ayane/osarai/internal/catalog"
	"github.com/ayane/osarai/internal/queue"
)

var importCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Import learned items from a workbook",
	Long: "Import reads an .xlsx workbook where each sheet is a category, column A an\n" +
		"item id and column B an optional learned-at date (YYYY-MM-DD). New items get a\n" +
		"scheduling record and become due immediately; existing items are left alone.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		res, err := catalog.ImportWorkbook(context.Background(), args[0], s.Records, cfg.Settings, time.Now())
		if err != nil {
			return fmt.Errorf("import %s: %w", args[0], err)
		}

		fmt.Printf("Imported %d item(s), %d already known, %d deferred by the daily limit\n",
			res.Created, res.Skipped, res.Deferred)

		cats := make([]queue.Category, 0, len(res.PerCategory))
		for cat := range res.PerCategory {
			cats = append(cats, cat)
		}
		sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
		for _, cat := range cats {
			fmt.Printf("  %s: %d new\n", cat, res.PerCategory[cat])
		}

		for _, rowErr := range res.RowErrors {
			fmt.Println("  skipped row:", rowErr)
		}

		for _, cat := range unexpectedCategories(cats) {
			fmt.Printf("  note: %q is not in your configured categories\n", cat)
		}
		return nil
	},
}

// unexpectedCategories returns the imported categories missing from
// the configured set. Imports still succeed; the note catches typos
// in sheet names.
func unexpectedCategories(imported []queue.Category) []queue.Category {
	known := make(map[queue.Category]bool, len(cfg.DefaultCategories))
	for _, c := range cfg.DefaultCategories {
		known[queue.Category(c)] = true
	}

	var odd []queue.Category
	for _, cat := range imported {
		if !known[cat] {
			odd = append(odd, cat)
		}
	}
	return odd
}
