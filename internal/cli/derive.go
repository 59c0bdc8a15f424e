package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tokentint/pkg/decision"
	"github.com/jmylchreest/tokentint/pkg/derive"
)

type deriveFlags struct {
	states      []string
	minContrast float64
	includeBase bool
	checkA11y   bool
	prefix      string
	format      string
	preview     bool
	stats       bool
}

// deriveDocument is the structured output for one base colour.
type deriveDocument struct {
	Base   string              `json:"base" yaml:"base"`
	Tokens []derive.StateToken `json:"tokens" yaml:"tokens"`
	Errors []string            `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func newDeriveCmd(a *app) *cobra.Command {
	f := &deriveFlags{}

	cmd := &cobra.Command{
		Use:   "derive <hex>...",
		Short: "Derive interaction-state tokens from base colours",
		Long: `Derive interaction-state colour tokens from one or more base colours.

Each state is produced by a perceptual transform of the base colour:
idle keeps it, hover lightens, active darkens, focus adds an accessible
outline colour, disabled halves the chroma and selected adds chroma.
Every token reports a quality score, a confidence and the reason for it.

Examples:
  # Default states for a brand colour
  tokentint derive "#3B82F6"

  # Pick states and include the base token
  tokentint derive --states idle,hover,selected --include-base "#10B981"

  # Attach an accessible text colour to every state
  tokentint derive --check-a11y --min-contrast 7 "#3B82F6"

  # Emit CSS custom properties
  tokentint derive --format css --prefix brand "#3B82F6"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDerive(cmd, a, f, args)
		},
	}

	cmd.Flags().StringSliceVarP(&f.states, "states", "s", nil, "states to derive ("+stateList()+")")
	cmd.Flags().Float64Var(&f.minContrast, "min-contrast", 0, "minimum WCAG ratio for outline and text colours (default from config, 4.5)")
	cmd.Flags().BoolVar(&f.includeBase, "include-base", false, "emit a token for the base colour")
	cmd.Flags().BoolVar(&f.checkA11y, "check-a11y", false, "choose an accessible text colour for every state")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "token name prefix (default from config, color)")
	cmd.Flags().BoolVar(&f.preview, "preview", false, "show colour swatches (default: on when stdout is a terminal)")
	cmd.Flags().BoolVar(&f.stats, "stats", false, "print cache statistics to stderr")
	addFormatFlag(cmd, &f.format, formatCSS)

	return cmd
}

func stateList() string {
	names := make([]string, 0, len(derive.AllStates()))
	for _, s := range derive.AllStates() {
		names = append(names, s.String())
	}
	return strings.Join(names, ", ")
}

// deriveOptions merges config values with the flags the user set.
func deriveOptions(cmd *cobra.Command, a *app, f *deriveFlags) (derive.Options, error) {
	opts, err := a.cfg.DeriveOptions()
	if err != nil {
		return derive.Options{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("states") {
		set, err := derive.ParseStates(f.states)
		if err != nil {
			return derive.Options{}, err
		}
		opts.States = set
	}
	if flags.Changed("min-contrast") {
		opts.MinWCAGRatio = f.minContrast
	}
	if flags.Changed("include-base") {
		opts.IncludeBase = f.includeBase
	}
	if flags.Changed("check-a11y") {
		opts.CheckAccessibility = f.checkA11y
	}
	if flags.Changed("prefix") {
		opts.Prefix = f.prefix
	}
	return opts, opts.Validate()
}

func runDerive(cmd *cobra.Command, a *app, f *deriveFlags, args []string) error {
	if err := checkFormat(f.format, formatCSS); err != nil {
		return err
	}
	opts, err := deriveOptions(cmd, a, f)
	if err != nil {
		return err
	}
	eng, err := a.ready(cmd.Context())
	if err != nil {
		return err
	}

	docs := make([]deriveDocument, 0, len(args))
	results := make([]*derive.Result, 0, len(args))
	var failed []string
	for _, hex := range args {
		res, err := eng.DeriveHex(hex, nil, opts)
		if err != nil {
			return fmt.Errorf("failed to derive %s: %w", hex, err)
		}
		doc := deriveDocument{Base: res.Base.Hex(), Tokens: res.Tokens}
		for _, st := range res.Tokens {
			if st.Err != nil {
				doc.Errors = append(doc.Errors, st.Err.Error())
				failed = append(failed, fmt.Sprintf("%s/%s", doc.Base, st.State))
			}
		}
		docs = append(docs, doc)
		results = append(results, res)
	}

	out := cmd.OutOrStdout()
	switch f.format {
	case formatTable:
		sw := newSwatches(out, previewEnabled(cmd.Flags(), out))
		for i, res := range results {
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%s %s\n\n", sw.block(res.Base), res.Base.CSS())
			fmt.Fprint(out, deriveTable(res, sw))
		}
	case formatCSS:
		writeCSS(out, results)
	default:
		if err := writeStructured(out, f.format, docs); err != nil {
			return err
		}
	}

	if f.stats {
		stats, err := eng.CacheStats()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "cache: %d entries, %d hits, %d misses (%.0f%% hit rate)\n",
			stats.Size, stats.Hits, stats.Misses, stats.HitRate()*100)
	}

	if len(failed) > 0 {
		return fmt.Errorf("%w: %s", derive.ErrStateFailed, strings.Join(failed, ", "))
	}
	return nil
}

func deriveTable(res *derive.Result, sw swatches) string {
	table := NewTable(sw.headers("Token", "State", "Value", "Quality", "Confidence", "Reason"))
	off := len(sw.headers()) // swatch column, if any
	table.AlignRight(off + 3)
	table.AlignRight(off + 4)
	table.SetColumnMaxWidth(off+5, 60)

	add := func(t *decision.EnrichedToken, state string, bgForSample *decision.EnrichedToken) {
		swatch := sw.block(t.Colour)
		if bgForSample != nil {
			swatch = sw.sample(t.Colour, bgForSample.Colour)
		}
		table.AddRow(sw.row(swatch,
			t.Name,
			state,
			t.Value,
			fmt.Sprintf("%.2f", t.Metadata.QualityScore),
			fmt.Sprintf("%.2f", t.Metadata.Confidence),
			t.Metadata.Reason,
		))
	}

	for _, st := range res.Tokens {
		if !st.OK() {
			table.AddRow(sw.row("", "", st.State.String(), "", "", "", "error: "+st.Err.Error()))
			continue
		}
		add(st.Token, st.State.String(), nil)
		if st.Outline != nil {
			add(st.Outline, st.State.String()+" outline", st.Token)
		}
		if st.Text != nil {
			add(st.Text, st.State.String()+" text", st.Token)
		}
	}
	return table.Render()
}

// writeCSS writes the tokens as custom properties.
func writeCSS(w io.Writer, results []*derive.Result) {
	fmt.Fprintln(w, ":root {")
	for _, res := range results {
		for _, st := range res.Tokens {
			if !st.OK() {
				fmt.Fprintf(w, "  /* %s: %s */\n", st.State, st.Err)
				continue
			}
			for _, t := range []*decision.EnrichedToken{st.Token, st.Outline, st.Text} {
				if t != nil {
					fmt.Fprintf(w, "  --%s: %s;\n", t.Name, t.Value)
				}
			}
		}
	}
	fmt.Fprintln(w, "}")
}
