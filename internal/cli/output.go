package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/tokentint/pkg/colour"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatCSS   = "css"
)

func addFormatFlag(cmd *cobra.Command, target *string, extra ...string) {
	formats := append([]string{formatTable, formatJSON, formatYAML}, extra...)
	cmd.Flags().StringVarP(target, "format", "f", formatTable, "output format ("+strings.Join(formats, ", ")+")")
}

func checkFormat(format string, allowed ...string) error {
	for _, f := range append([]string{formatTable, formatJSON, formatYAML}, allowed...) {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("unsupported format %q", format)
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// isTerminal reports whether w is a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// previewEnabled resolves --preview: an explicit flag wins, otherwise previews
// are shown only on a terminal.
func previewEnabled(flags *pflag.FlagSet, w io.Writer) bool {
	if flags.Changed("preview") {
		v, _ := flags.GetBool("preview")
		return v
	}
	return isTerminal(w)
}

// swatches renders colour samples. When disabled every method returns "".
type swatches struct {
	enabled  bool
	renderer *lipgloss.Renderer
}

func newSwatches(w io.Writer, enabled bool) swatches {
	r := lipgloss.NewRenderer(w)
	if enabled {
		r.SetColorProfile(termenv.TrueColor)
	}
	return swatches{enabled: enabled, renderer: r}
}

// block renders a solid swatch of c.
func (s swatches) block(c colour.Colour) string {
	if !s.enabled {
		return ""
	}
	return s.renderer.NewStyle().Background(lipgloss.Color(c.Hex())).Render("    ")
}

// sample renders text in fg on bg.
func (s swatches) sample(fg, bg colour.Colour) string {
	if !s.enabled {
		return ""
	}
	return s.renderer.NewStyle().
		Foreground(lipgloss.Color(fg.Hex())).
		Background(lipgloss.Color(bg.Hex())).
		Render(" Aa ")
}

// headers prepends a swatch column when previews are on.
func (s swatches) headers(headers ...string) []string {
	if !s.enabled {
		return headers
	}
	return append([]string{""}, headers...)
}

func (s swatches) row(swatch string, cells ...string) []string {
	if !s.enabled {
		return cells
	}
	return append([]string{swatch}, cells...)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
