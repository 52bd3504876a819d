package report

import (
	"io"
	"strings"

	"walletwatcher/internal/core"
)

// ExportFilename is the fixed name offered for downloaded reports.
const ExportFilename = "wallet_watcher_report.csv"

var csvHeader = []string{"Date", "Description", "Category", "Type", "Amount"}

// dateLayout renders dates the way the en-US locale does (1/2/2006).
const dateLayout = "1/2/2006"

// RenderCSV renders an already filtered and sorted list. The description is
// always quoted with inner quotes doubled; amounts are raw numbers without
// currency symbol or grouping. Rows are separated by "\n" with no trailing
// newline.
func RenderCSV(txs []core.Transaction) string {
	rows := make([]string, 0, len(txs)+1)
	rows = append(rows, strings.Join(csvHeader, ","))
	for _, tx := range txs {
		rows = append(rows, strings.Join([]string{
			tx.Date.Format(dateLayout),
			QuoteField(tx.Description),
			tx.Category,
			string(tx.Type),
			tx.Amount.String(),
		}, ","))
	}
	return strings.Join(rows, "\n")
}

// WriteCSV writes RenderCSV's output to w.
func WriteCSV(w io.Writer, txs []core.Transaction) error {
	_, err := io.WriteString(w, RenderCSV(txs))
	return err
}

// QuoteField wraps s in double quotes, doubling any quote inside it.
func QuoteField(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
