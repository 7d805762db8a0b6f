package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"sigs.k8s.io/yaml"

	"github.com/katyella/kubex/internal/constants"
)

// Output formats
const (
	outputTable = "table"
	outputName  = "name"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(constants.ColorBrightCyan)).Bold(true)
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(constants.ColorDarkGray))
)

func validateOutput(format string, allowed ...string) error {
	if slices.Contains(allowed, format) {
		return nil
	}
	return fmt.Errorf("unsupported output format %q (expected one of: %s)", format, strings.Join(allowed, ", "))
}

// renderTable writes rows as aligned columns without borders.
func renderTable(w io.Writer, headers []string, rows [][]string) error {
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.PaddingRight(2)
			}
			return cellStyle
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// printStructured writes v as indented JSON or as YAML.
func printStructured(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		data, err := json.MarshalIndent(v, "", "    ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case outputYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}
