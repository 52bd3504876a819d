// Package assistant builds the question prompt sent to a text generator and
// keeps the message log of one assistant conversation.
package assistant

import (
	"fmt"
	"strings"

	"walletwatcher/internal/core"
)

const noTransactions = "There are no transactions for this period."

// FormatTransaction renders one prompt line, for example
// "EXPENSE: Lunch (Food) - $12.50 on 1/15/2024".
func FormatTransaction(t core.Transaction) string {
	return fmt.Sprintf("%s: %s (%s) - $%s on %s",
		t.Type, t.Description, t.Category, t.Amount.Decimal().StringFixed(2), t.Date.Format("1/2/2006"))
}

// BuildPrompt asks the generator to answer question from the given
// transactions.
func BuildPrompt(txs []core.Transaction, question string) string {
	lines := make([]string, 0, len(txs))
	for _, t := range txs {
		lines = append(lines, FormatTransaction(t))
	}
	data := strings.Join(lines, "\n")
	if data == "" {
		data = noTransactions
	}

	var b strings.Builder
	b.WriteString("Based on the following list of financial transactions, please answer the user's question.\n")
	b.WriteString("Provide a concise and helpful analysis. Do not just list the data back to them.\n\n")
	b.WriteString("Transactions Data:\n")
	b.WriteString(data)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "User's Question: \"%s\"\n", question)
	return b.String()
}
