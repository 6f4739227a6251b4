package ledger_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/payflow/internal/ledger"
	"github.com/MrJamesThe3rd/payflow/internal/payroll"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		period string
		want   string
	}{
		{period: "2025-03", want: "SALAIRES MARS 2025"},
		{period: "2024-01", want: "SALAIRES JANVIER 2024"},
		{period: "2024-08", want: "SALAIRES AOÛT 2024"},
		{period: "2023-12", want: "SALAIRES DÉCEMBRE 2023"},
		{period: "not-a-period", want: "SALAIRES not-a-period"},
		{period: "2025-13", want: "SALAIRES 2025-13"},
		{period: "2025-3", want: "SALAIRES 2025-3"},
		{period: "", want: "SALAIRES "},
	}

	for _, tt := range tests {
		t.Run(tt.period, func(t *testing.T) {
			assert.Equal(t, tt.want, ledger.Label(tt.period))
		})
	}
}

func TestBuild(t *testing.T) {
	salaries := ledger.ResolvedAccount{ID: 10, Code: "641100", CompanyID: 3}
	net := ledger.ResolvedAccount{ID: 20, Code: "421000", CompanyID: 3}
	date := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	postings := []ledger.Posting{
		{
			Line:    payroll.Line{AccountCode: "641100", Label: "Salaires", Amount: decimal.RequireFromString("2500.50"), Sense: payroll.SenseDebit},
			Account: salaries,
		},
		{
			Line:    payroll.Line{AccountCode: "421000", Label: "Net à payer", Amount: decimal.RequireFromString("2500.50"), Sense: payroll.SenseCredit},
			Account: net,
		},
	}

	entry := ledger.Build(postings, 5, "2025-03", date, 3)

	assert.Equal(t, int64(5), entry.JournalID)
	assert.Equal(t, "SALAIRES MARS 2025", entry.Label)
	assert.Equal(t, date, entry.Date)
	assert.Equal(t, int64(3), entry.CompanyID)
	require.Len(t, entry.Lines, 2)

	assert.Equal(t, salaries, entry.Lines[0].Account)
	assert.Equal(t, "Salaires", entry.Lines[0].Label)
	assert.True(t, entry.Lines[0].Debit.Equal(decimal.RequireFromString("2500.50")))
	assert.True(t, entry.Lines[0].Credit.IsZero())

	assert.True(t, entry.Lines[1].Debit.IsZero())
	assert.True(t, entry.Lines[1].Credit.Equal(decimal.RequireFromString("2500.50")))

	debit, credit := entry.Totals()
	assert.True(t, debit.Equal(credit))
}

func TestBuild_ExactlyOneSide(t *testing.T) {
	amounts := []string{"0.01", "1", "99.99", "123456.78"}

	for _, a := range amounts {
		for _, sense := range []payroll.Sense{payroll.SenseDebit, payroll.SenseCredit} {
			amount := decimal.RequireFromString(a)
			entry := ledger.Build([]ledger.Posting{{Line: payroll.Line{Amount: amount, Sense: sense}}}, 1, "2025-01", time.Now(), 1)

			line := entry.Lines[0]
			if sense == payroll.SenseDebit {
				assert.True(t, line.Debit.Equal(amount), "debit %s", a)
				assert.True(t, line.Credit.IsZero(), "credit %s", a)
			} else {
				assert.True(t, line.Credit.Equal(amount), "credit %s", a)
				assert.True(t, line.Debit.IsZero(), "debit %s", a)
			}
		}
	}
}

func TestEntry_Values(t *testing.T) {
	entry := ledger.Build([]ledger.Posting{
		{
			Line:    payroll.Line{Label: "URSSAF", Amount: decimal.RequireFromString("550.25"), Sense: payroll.SenseCredit},
			Account: ledger.ResolvedAccount{ID: 30},
		},
	}, 5, "2025-03", time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC), 3)

	values := entry.Values()

	assert.Equal(t, int64(5), values["journal_id"])
	assert.Equal(t, "SALAIRES MARS 2025", values["ref"])
	assert.Equal(t, "2025-03-31", values["date"])
	assert.Equal(t, int64(3), values["company_id"])

	lines, ok := values["line_ids"].([]any)
	require.True(t, ok)
	require.Len(t, lines, 1)

	command, ok := lines[0].([]any)
	require.True(t, ok)
	assert.Equal(t, 0, command[0])
	assert.Equal(t, 0, command[1])
	assert.Equal(t, map[string]any{
		"account_id": int64(30),
		"name":       "URSSAF",
		"debit":      0.0,
		"credit":     550.25,
	}, command[2])
}
