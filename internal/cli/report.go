package cli

import (
	"encoding/json"
	"fmt"

	"github.com/rewired-gh/nlgen/internal/logger"
	"github.com/rewired-gh/nlgen/internal/models"
	"github.com/rewired-gh/nlgen/internal/nlg"
	"github.com/rewired-gh/nlgen/internal/report"
	"github.com/rewired-gh/nlgen/internal/telegram"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type reportOptions struct {
	topK    int
	format  string
	heading string
	notify  bool
	seed    uint64
}

func newReportCmd(root *rootOptions) *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report <observations-file>",
		Short: "Generate sentences for a file of observations",
		Long: `Generate one sentence per observation in a JSON or YAML file and print the
top-K by absolute growth.

Each observation has a title, old and new values, and optional settings and
variables:

  - title: people count
    old: 5
    new: 10
    settings:
      data_type: peopleCount
      sensitiveness: 25
      threshold: 20
    variables:
      actualDim: today

An observation may name its own template bank with "bank: path/to/bank.json";
otherwise bank.path is used. Banks are parsed once and then served from the
cache for bank.cache_ttl.

Observations that fail are logged and skipped. With --notify the ranked
report is also sent to the configured Telegram chat.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, root, opts, args[0])
		},
	}

	cmd.Flags().IntVar(&opts.topK, "top-k", 0, "number of entries to keep (default: report.top_k)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "output format: text, json or yaml")
	cmd.Flags().StringVar(&opts.heading, "heading", "Change report", "heading used for Telegram messages")
	cmd.Flags().BoolVar(&opts.notify, "notify", false, "send the report to Telegram")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for reproducible template choice (0 = random)")
	return cmd
}

func runReport(cmd *cobra.Command, root *rootOptions, opts *reportOptions, path string) error {
	if opts.format != "text" && opts.format != "json" && opts.format != "yaml" {
		return fmt.Errorf("unknown format %q (want text, json or yaml)", opts.format)
	}
	if opts.notify && !root.cfg.Telegram.Enabled {
		return fmt.Errorf("--notify requires telegram.enabled in the configuration")
	}

	store := root.store()
	bank, err := store.LoadBank(root.cfg.Bank.Path)
	if err != nil {
		return err
	}
	observations, err := store.LoadObservations(path)
	if err != nil {
		return err
	}

	builderOpts := []report.Option{report.WithBankLoader(store)}
	if opts.seed != 0 {
		builderOpts = append(builderOpts, report.WithPicker(nlg.NewSeededPicker(opts.seed)))
	}
	builder := report.New(bank, root.cfg.Settings(), builderOpts...)

	entries, genErrors := builder.Generate(observations)
	for _, genErr := range genErrors {
		logger.Warn("Skipping observation: %v", genErr)
	}
	if len(entries) == 0 && len(genErrors) > 0 {
		return fmt.Errorf("no sentences generated: %d of %d observations failed", len(genErrors), len(observations))
	}

	topK := root.cfg.Report.TopK
	if cmd.Flags().Changed("top-k") {
		topK = opts.topK
	}
	ranked := report.Rank(entries, topK)
	logger.Info("Report generated: %d observations, %d entries kept (top_k=%d)", len(observations), len(ranked), topK)

	if err := writeEntries(cmd, opts.format, ranked); err != nil {
		return err
	}

	if opts.notify {
		tg := root.cfg.Telegram
		client, err := telegram.NewClient(tg.BotToken, tg.ChatID, tg.MaxRetries, tg.RetryDelayBase)
		if err != nil {
			return err
		}
		if err := client.Send(cmd.Context(), opts.heading, ranked); err != nil {
			return fmt.Errorf("failed to send Telegram notification: %w", err)
		}
		logger.Info("Sent Telegram notification with %d entries", len(ranked))
	}
	return nil
}

func writeEntries(cmd *cobra.Command, format string, entries []models.Entry) error {
	out := cmd.OutOrStdout()
	switch format {
	case "json":
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling report: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "yaml":
		data, err := yaml.Marshal(entries)
		if err != nil {
			return fmt.Errorf("error marshaling report: %w", err)
		}
		fmt.Fprint(out, string(data))
	default:
		for _, e := range entries {
			fmt.Fprintln(out, e.Sentence)
		}
	}
	return nil
}
