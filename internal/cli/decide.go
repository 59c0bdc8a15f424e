package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tokentint/pkg/colour"
	"github.com/jmylchreest/tokentint/pkg/decision"
)

type decideFlags struct {
	minContrast float64
	format      string
	preview     bool
}

// decideDocument is the structured output for one background.
type decideDocument struct {
	Background string                  `json:"background" yaml:"background"`
	Degraded   bool                    `json:"degraded" yaml:"degraded"`
	Candidate  string                  `json:"candidate" yaml:"candidate"`
	Token      *decision.EnrichedToken `json:"token" yaml:"token"`
}

func newDecideCmd(a *app) *cobra.Command {
	f := &decideFlags{}

	cmd := &cobra.Command{
		Use:   "decide <background>...",
		Short: "Choose accessible text colours for backgrounds",
		Long: `Choose a text colour for each background.

Candidates range from pure black and white to tinted near-neutrals that
carry the background's hue. The candidate with the highest WCAG contrast
that meets the minimum wins. If none meets it, the best one is still
reported but marked degraded, with a low confidence and the reason.

Examples:
  tokentint decide "#3B82F6" "#10B981"
  tokentint decide --min-contrast 7 --format json "#808080"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecide(cmd, a, f, args)
		},
	}

	cmd.Flags().Float64Var(&f.minContrast, "min-contrast", 0, "minimum WCAG ratio (default from config, 4.5)")
	cmd.Flags().BoolVar(&f.preview, "preview", false, "show colour samples (default: on when stdout is a terminal)")
	addFormatFlag(cmd, &f.format)

	return cmd
}

func runDecide(cmd *cobra.Command, a *app, f *decideFlags, args []string) error {
	if err := checkFormat(f.format); err != nil {
		return err
	}
	minRatio := a.cfg.MinWCAGRatio
	if cmd.Flags().Changed("min-contrast") {
		minRatio = f.minContrast
	}
	if err := decision.ValidateMinRatio(minRatio); err != nil {
		return err
	}

	backgrounds := make([]colour.Colour, 0, len(args))
	for _, hex := range args {
		bg, err := colour.FromHex(hex)
		if err != nil {
			return err
		}
		backgrounds = append(backgrounds, bg)
	}

	eng, err := a.ready(cmd.Context())
	if err != nil {
		return err
	}

	decisions := make([]*decision.Decision, 0, len(backgrounds))
	docs := make([]decideDocument, 0, len(backgrounds))
	for _, bg := range backgrounds {
		d, err := eng.DecideTextAt(bg, minRatio)
		if err != nil {
			return fmt.Errorf("failed to decide text colour for %s: %w", bg.Hex(), err)
		}
		decisions = append(decisions, d)
		docs = append(docs, decideDocument{
			Background: bg.Hex(),
			Degraded:   d.Degraded,
			Candidate:  d.Candidate,
			Token:      decision.NewEnrichedToken("text-on-"+bg.Hex()[1:], decision.CategoryForeground, d.Foreground, d.Metadata),
		})
	}

	out := cmd.OutOrStdout()
	if f.format != formatTable {
		return writeStructured(out, f.format, docs)
	}

	sw := newSwatches(out, previewEnabled(cmd.Flags(), out))
	table := NewTable(sw.headers("Background", "Text", "Candidate", "WCAG", "APCA", "AA", "AAA", "Confidence", "Reason"))
	off := len(sw.headers())
	for _, col := range []int{3, 4, 7} {
		table.AlignRight(off + col)
	}
	table.SetColumnMaxWidth(off+8, 60)

	for _, d := range decisions {
		acc := d.Metadata.Accessibility
		table.AddRow(sw.row(sw.sample(d.Foreground, d.Background),
			d.Background.Hex(),
			d.Foreground.Hex(),
			d.Candidate,
			fmt.Sprintf("%.2f", acc.WCAGRatio),
			fmt.Sprintf("%.1f", acc.APCAContrast),
			yesNo(acc.PassesAA),
			yesNo(acc.PassesAAA),
			fmt.Sprintf("%.2f", d.Metadata.Confidence),
			d.Metadata.Reason,
		))
	}
	_, err = fmt.Fprint(out, table.Render())
	return err
}
