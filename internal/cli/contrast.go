package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/tokentint/pkg/colour"
	"github.com/jmylchreest/tokentint/pkg/contrast"
)

// contrastReport is the structured output of the contrast command.
type contrastReport struct {
	Foreground string  `json:"foreground" yaml:"foreground"`
	Background string  `json:"background" yaml:"background"`
	WCAGRatio  float64 `json:"wcagRatio" yaml:"wcagRatio"`
	APCA       float64 `json:"apcaContrast" yaml:"apcaContrast"`
	LargeText  bool    `json:"largeText" yaml:"largeText"`
	PassesAA   bool    `json:"passesAA" yaml:"passesAA"`
	PassesAAA  bool    `json:"passesAAA" yaml:"passesAAA"`
}

func newContrastCmd(a *app) *cobra.Command {
	var (
		large   bool
		format  string
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "contrast <foreground> <background>",
		Short: "Measure contrast between two colours",
		Long: `Measure the WCAG 2.x contrast ratio and the APCA lightness contrast of a
foreground colour on a background colour, and report AA/AAA compliance.

APCA values are signed: positive for dark text on a light background,
negative for light text on a dark background.

Examples:
  tokentint contrast "#6188d8" "#07070e"
  tokentint contrast --large --format json "#767676" "#ffffff"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkFormat(format); err != nil {
				return err
			}
			fg, err := colour.FromHex(args[0])
			if err != nil {
				return err
			}
			bg, err := colour.FromHex(args[1])
			if err != nil {
				return err
			}
			eng, err := a.ready(cmd.Context())
			if err != nil {
				return err
			}
			acc, err := eng.Evaluate(fg, bg)
			if err != nil {
				return err
			}

			report := contrastReport{
				Foreground: fg.Hex(),
				Background: bg.Hex(),
				WCAGRatio:  acc.WCAGRatio,
				APCA:       acc.APCAContrast,
				LargeText:  large,
				PassesAA:   contrast.PassesWCAGAA(fg, bg, large),
				PassesAAA:  contrast.PassesWCAGAAA(fg, bg, large),
			}

			out := cmd.OutOrStdout()
			if format != formatTable {
				return writeStructured(out, format, report)
			}

			sw := newSwatches(out, previewEnabled(cmd.Flags(), out))
			if sample := sw.sample(fg, bg); sample != "" {
				fmt.Fprintf(out, "%s\n\n", sample)
			}
			table := NewTable([]string{"Measure", "Value"})
			table.AddRow([]string{"Foreground", report.Foreground})
			table.AddRow([]string{"Background", report.Background})
			table.AddRow([]string{"WCAG ratio", fmt.Sprintf("%.2f:1", report.WCAGRatio)})
			table.AddRow([]string{"APCA Lc", fmt.Sprintf("%.1f", report.APCA)})
			table.AddRow([]string{"AA", yesNo(report.PassesAA)})
			table.AddRow([]string{"AAA", yesNo(report.PassesAAA)})
			_, err = fmt.Fprint(out, table.Render())
			return err
		},
	}

	cmd.Flags().BoolVar(&large, "large", false, "apply the large-text thresholds")
	cmd.Flags().BoolVar(&preview, "preview", false, "show a text sample (default: on when stdout is a terminal)")
	addFormatFlag(cmd, &format)

	return cmd
}
