package cli

import (
	"fmt"
	"sort"

	"github.com/rewired-gh/nlgen/internal/logger"
	"github.com/rewired-gh/nlgen/internal/nlg"
	"github.com/spf13/cobra"
)

func newTemplateCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Inspect and extend the template bank",
	}
	cmd.AddCommand(newTemplateAddCmd(root), newTemplateListCmd(root))
	return cmd
}

func newTemplateAddCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <data-type> <polarity> <level> <text>",
		Short: "Append a template to an existing bucket",
		Long: `Append a template to an existing data-type/polarity/level bucket and save
the bank. The bucket must already exist; buckets are never created implicitly.

Variables go between braces, e.g. "{title} rose by {growth}".

Example:
  nlgen template add peopleCount positive 3 "{title} hit a record {newData}"`,
		Args: cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			polarity := nlg.Polarity(args[1])
			if !polarity.Valid() {
				return fmt.Errorf("unknown polarity %q (want positive, negative, neutral or na)", args[1])
			}
			level, err := nlg.ParseLevel(args[2])
			if err != nil {
				return err
			}

			store := root.store()
			path := root.cfg.Bank.Path
			bank, err := store.LoadBank(path)
			if err != nil {
				return err
			}
			if err := bank.Append(args[0], polarity, level, args[3]); err != nil {
				return err
			}
			if err := store.SaveBank(path, bank); err != nil {
				return err
			}

			logger.Info("Added template to %s/%s/%s in %s", args[0], polarity, level, path)
			fmt.Fprintf(cmd.OutOrStdout(), "Added template to %s/%s/%s\n", args[0], polarity, level)
			return nil
		},
	}
}

func newTemplateListCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list [data-type]",
		Short: "List buckets and template counts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bank, err := root.store().LoadBank(root.cfg.Bank.Path)
			if err != nil {
				return err
			}

			dataTypes := bank.DataTypes()
			if len(args) == 1 {
				if _, ok := bank[args[0]]; !ok {
					return fmt.Errorf("data type %q not found in %s", args[0], root.cfg.Bank.Path)
				}
				dataTypes = []string{args[0]}
			}

			out := cmd.OutOrStdout()
			for _, dataType := range dataTypes {
				for _, row := range bucketRows(bank[dataType]) {
					fmt.Fprintf(out, "%s/%s/%s\t%d\n", dataType, row.polarity, row.level, row.count)
				}
			}
			return nil
		},
	}
}

type bucketRow struct {
	polarity nlg.Polarity
	level    string
	count    int
}

var polarityOrder = map[nlg.Polarity]int{
	nlg.PolarityNA:       0,
	nlg.PolarityNegative: 1,
	nlg.PolarityNeutral:  2,
	nlg.PolarityPositive: 3,
}

// bucketRows orders buckets by polarity and then by level
func bucketRows(polarities map[nlg.Polarity]map[string][]string) []bucketRow {
	var rows []bucketRow
	for polarity, levels := range polarities {
		for level, templates := range levels {
			rows = append(rows, bucketRow{polarity: polarity, level: level, count: len(templates)})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].polarity != rows[j].polarity {
			return polarityOrder[rows[i].polarity] < polarityOrder[rows[j].polarity]
		}
		li, _ := nlg.ParseLevel(rows[i].level)
		lj, _ := nlg.ParseLevel(rows[j].level)
		return li < lj
	})
	return rows
}
