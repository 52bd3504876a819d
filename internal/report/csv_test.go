package report

import (
	"bytes"
	"testing"
	"time"

	"walletwatcher/internal/core"
)

func TestQuoteField(t *testing.T) {
	if got := QuoteField(`He said "hi"`); got != `"He said ""hi"""` {
		t.Fatalf("got %s", got)
	}
	if got := QuoteField("plain"); got != `"plain"` {
		t.Fatalf("got %s", got)
	}
}

func TestRenderCSV(t *testing.T) {
	txs := []core.Transaction{
		tx("1", core.Expense, 123450, `Dinner, "fancy"`, "Food", time.Date(2024, 3, 5, 12, 0, 0, 0, time.UTC)),
		tx("2", core.Revenue, 1000, "Salary", core.RevenueCategory, time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)),
	}
	want := "Date,Description,Category,Type,Amount\n" +
		`3/5/2024,"Dinner, ""fancy""",Food,EXPENSE,1234.5` + "\n" +
		`12/25/2024,"Salary",Revenue,REVENUE,10`
	if got := RenderCSV(txs); got != want {
		t.Fatalf("got\n%s\nwant\n%s", got, want)
	}
}

func TestWriteCSVHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "Date,Description,Category,Type,Amount" {
		t.Fatalf("got %q", buf.String())
	}
}
