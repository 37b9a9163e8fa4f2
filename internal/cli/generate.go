package cli

import (
	"fmt"

	"github.com/rewired-gh/nlgen/internal/logger"
	"github.com/rewired-gh/nlgen/internal/nlg"
	"github.com/spf13/cobra"
)

type generateOptions struct {
	dataType      string
	sensitiveness float64
	threshold     float64
	precision     int
	vars          map[string]string
	seed          uint64
	explain       bool
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <title> <old> <new>",
		Short: "Generate a sentence for one old/new pair",
		Long: `Generate a sentence describing the change from <old> to <new>.

Settings default to the generator section of the config file. Threshold and
sensitiveness are percentage points; a zero value means "use the default".

Examples:
  nlgen generate "people count" 5 10 --data-type peopleCount --sensitiveness 25 --threshold 20 \
      --var actualDim=today --var lastDim=yesterday
  nlgen generate visitors 120 90 --explain`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, root, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.dataType, "data-type", "", "template group (overrides generator.data_type)")
	cmd.Flags().Float64Var(&opts.sensitiveness, "sensitiveness", 0, "growth per level in percentage points (must be > 0)")
	cmd.Flags().Float64Var(&opts.threshold, "threshold", 0, "largest |growth| still treated as level 0 (must be > 0; 0 means unset and is rejected)")
	cmd.Flags().IntVar(&opts.precision, "precision", 0, "decimal places kept in growth")
	cmd.Flags().StringToStringVar(&opts.vars, "var", nil, "extra template variable name=value (repeatable)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for reproducible template choice (0 = random)")
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "print growth, level and polarity to stderr")
	return cmd
}

func runGenerate(cmd *cobra.Command, root *rootOptions, opts *generateOptions, args []string) error {
	title := args[0]
	oldValue, err := nlg.ParseValue(args[1])
	if err != nil {
		return fmt.Errorf("old value: %w", err)
	}
	newValue, err := nlg.ParseValue(args[2])
	if err != nil {
		return fmt.Errorf("new value: %w", err)
	}

	bank, err := root.store().LoadBank(root.cfg.Bank.Path)
	if err != nil {
		return err
	}

	var genOpts []nlg.Option
	if opts.seed != 0 {
		genOpts = append(genOpts, nlg.WithPicker(nlg.NewSeededPicker(opts.seed)))
	}
	settings, err := opts.settings(cmd, root.cfg.Settings())
	if err != nil {
		return err
	}
	g, err := nlg.New(title, oldValue, newValue, bank, settings, genOpts...)
	if err != nil {
		return err
	}
	if len(opts.vars) > 0 {
		g.AddVariables(stringVars(opts.vars))
	}

	sentence, err := g.Generate()
	if err != nil {
		return err
	}

	c, _ := g.Classification()
	logger.Debug("Generated sentence for %q: growth=%v level=%s polarity=%s", title, c.Growth, c.Level, c.Polarity)
	if opts.explain {
		fmt.Fprintf(cmd.ErrOrStderr(), "growth=%v level=%s polarity=%s data_type=%s\n",
			c.Growth, c.Level, c.Polarity, g.Settings().DataType)
	}

	fmt.Fprintln(cmd.OutOrStdout(), sentence)
	return nil
}

// settings layers explicitly set flags over the configured defaults. A zero
// setting reads as unset downstream, so an explicit zero is refused rather
// than silently replaced.
func (o *generateOptions) settings(cmd *cobra.Command, base nlg.Settings) (nlg.Settings, error) {
	flags := cmd.Flags()
	if flags.Changed("data-type") {
		base.DataType = o.dataType
	}
	if flags.Changed("sensitiveness") {
		if o.sensitiveness == 0 {
			return nlg.Settings{}, fmt.Errorf("%w: --sensitiveness must not be 0", nlg.ErrInvalidInput)
		}
		base.Sensitiveness = o.sensitiveness
	}
	if flags.Changed("threshold") {
		if o.threshold == 0 {
			return nlg.Settings{}, fmt.Errorf("%w: --threshold 0 would fall back to the default; use a small positive value", nlg.ErrInvalidInput)
		}
		base.Threshold = o.threshold
	}
	if flags.Changed("precision") {
		base.Precision = o.precision
	}
	return base, nil
}

func stringVars(in map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
