package infra

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/fd1az/reg-voting-power/business/boost/app"
	"github.com/fd1az/reg-voting-power/pkg/ui"
)

// ConsoleReporter renders boosted legs as a table followed by per-owner totals.
type ConsoleReporter struct {
	out io.Writer
}

var _ app.Reporter = (*ConsoleReporter)(nil)

// NewConsoleReporter creates a ConsoleReporter writing to w, or stdout when w is nil.
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	if w == nil {
		w = os.Stdout
	}
	return &ConsoleReporter{out: w}
}

var legHeaders = []string{
	"DEX", "POSITION", "OWNER", "TOKEN", "AMOUNT", "ACTIVE", "EQUIV. REG", "KIND", "MULTIPLIER", "BOOSTED REG",
}

// Report implements app.Reporter.
func (r *ConsoleReporter) Report(_ context.Context, results []app.LegResult) error {
	fmt.Fprintln(r.out, ui.TitleStyle.Render("REG Voting Power"))

	rows := make([][]string, 0, len(results))
	for _, res := range results {
		leg := res.Leg
		rows = append(rows, []string{
			leg.DEX,
			fmt.Sprintf("#%d", leg.PositionID),
			shortAddress(leg.Owner.Hex()),
			leg.Token.Symbol(),
			leg.Amount.ToDecimal().StringFixed(6),
			fmt.Sprintf("%t", leg.IsActive),
			leg.EquivalentREG.StringFixed(6),
			string(res.Kind),
			res.Multiplier.StringFixed(4),
			res.BoostedBalance.StringFixed(6),
		})
	}

	fmt.Fprintln(r.out, ui.RenderTable(legHeaders, rows, func(row, col int) (lipgloss.Style, bool) {
		res := results[row]
		switch col {
		case 5:
			if !res.Leg.IsActive {
				return ui.InactiveValue, true
			}
		case 8:
			switch res.Multiplier.Cmp(decimal.NewFromInt(1)) {
			case 1:
				return ui.BoostedValue, true
			case -1:
				return ui.PenalizedValue, true
			}
		}
		return lipgloss.Style{}, false
	}))

	totals := OwnerTotals(results)
	if len(totals) == 0 {
		fmt.Fprintln(r.out, ui.MutedValue.Render("no positions"))
		return nil
	}

	rows = rows[:0]
	for _, t := range totals {
		rows = append(rows, []string{t.Owner.Hex(), t.EquivalentREG.StringFixed(6), t.BoostedREG.StringFixed(6)})
	}
	_, err := fmt.Fprintln(r.out, ui.RenderTable([]string{"OWNER", "EQUIV. REG", "VOTING POWER"}, rows, nil))
	return err
}

func shortAddress(hex string) string {
	if len(hex) <= 12 {
		return hex
	}
	return hex[:6] + "…" + hex[len(hex)-4:]
}
