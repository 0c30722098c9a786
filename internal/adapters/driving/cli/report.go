package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/rotfit/internal/core/domain"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatTOML  = "toml"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

func checkFormat(format string) error {
	switch format {
	case formatTable, formatJSON, formatTOML:
		return nil
	default:
		return fmt.Errorf("%w: unknown format %q (want table, json or toml)", domain.ErrInvalidInput, format)
	}
}

// writeReport renders report to the command's output in the given format.
func writeReport(cmd *cobra.Command, report *domain.FitReport, format string) error {
	switch format {
	case formatJSON:
		return outputJSON(cmd, report)
	case formatTOML:
		return outputTOML(cmd, report)
	case formatTable:
		outputReportTable(cmd, report)
		return nil
	default:
		return checkFormat(format)
	}
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputTOML(cmd *cobra.Command, v any) error {
	data, err := toml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal TOML: %w", err)
	}
	cmd.Print(string(data))
	return nil
}

func outputReportTable(cmd *cobra.Command, report *domain.FitReport) {
	styled := isTerminal(cmd.OutOrStdout())

	cmd.Printf("Objective (partial): %.3e\n", report.Objective)
	if res := report.Result; res != nil {
		cmd.Printf("Iterations: %d (%d evaluations, %s)\n", res.Iterations, res.Evaluations, res.Status.Description())
		if !res.Converged {
			warn := fmt.Sprintf("Warning: minimizer stopped before converging (%s)", res.RawStatus)
			if styled {
				warn = warnStyle.Render(warn)
			}
			cmd.Println(warn)
		}
	} else {
		cmd.Println("Evaluated at the given exponents (no fit)")
	}
	if report.RunID != "" {
		cmd.Printf("Run: %s\n", report.RunID)
	}
	cmd.Println()

	base := report.Config.Base
	cmd.Println("Postulates:")
	cmd.Printf("  l₀: %.3e m, t₀: %.3e s, S₀: %.3e, r₀: %.3f, η₀: %.3f\n",
		base.Length, base.Time, base.Entropy, base.EntropyRadius, base.FieldAmplitude)
	cmd.Printf("  log₁₀(κ₀): %.3f, κ₀: %.3e\n", math.Log10(report.Kappa0), report.Kappa0)
	cmd.Println()

	cmd.Println("Exponents:")
	fitted := domain.FittedConstants()
	for i, p := range report.Exponents() {
		if i < domain.NumFixedExponents {
			cmd.Printf("  p%d: %.6f\n", i+1, p)
			continue
		}
		cmd.Printf("  p%d (%s): %.6f\n", i+1, fitted[i-domain.NumFixedExponents].Symbol(), p)
	}
	cmd.Println()

	cmd.Println(comparisonTable(report.Comparisons, styled))
}

// comparisonTable renders predicted against observed values.
// Fitted constants are marked with an asterisk.
func comparisonTable(rows []domain.Comparison, styled bool) string {
	border := lipgloss.ASCIIBorder()
	if styled {
		border = lipgloss.RoundedBorder()
	}

	t := table.New().
		Border(border).
		Headers("Constant", "Pred", "Obs", "Rel error").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow && styled {
				return headerStyle.Inherit(cellStyle)
			}
			return cellStyle
		})

	for _, c := range rows {
		name := c.Name.Symbol()
		if c.Fitted {
			name += " *"
		}
		t.Row(name,
			fmt.Sprintf("%.3e", c.Predicted),
			fmt.Sprintf("%.3e", c.Observed),
			fmt.Sprintf("%+.2e", c.RelError))
	}

	return t.Render()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
