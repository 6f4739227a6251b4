package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/payflow/internal/payroll"
)

// ResolvedAccount is the ERP record an account code maps to within one company.
type ResolvedAccount struct {
	ID        int64
	Code      string
	CompanyID int64
}

// Posting pairs a provider line with the account it was resolved to.
type Posting struct {
	Line    payroll.Line
	Account ResolvedAccount
}

// Line is one journal item. At most one of Debit and Credit is nonzero.
type Line struct {
	Account ResolvedAccount
	Label   string
	Debit   decimal.Decimal
	Credit  decimal.Decimal
}

// Entry is the journal entry submitted to the ERP for one client and period.
type Entry struct {
	JournalID int64
	Label     string
	Date      time.Time
	CompanyID int64
	Lines     []Line
}

var months = [12]string{
	"JANVIER", "FÉVRIER", "MARS", "AVRIL", "MAI", "JUIN",
	"JUILLET", "AOÛT", "SEPTEMBRE", "OCTOBRE", "NOVEMBRE", "DÉCEMBRE",
}

// Label derives the entry label from a YYYY-MM period. Unparseable periods
// are used verbatim.
func Label(period string) string {
	t, err := time.Parse("2006-01", period)
	if err != nil {
		return "SALAIRES " + period
	}

	return fmt.Sprintf("SALAIRES %s %d", months[t.Month()-1], t.Year())
}

// Build assembles the journal entry. It performs no I/O.
func Build(postings []Posting, journalID int64, period string, date time.Time, companyID int64) Entry {
	lines := make([]Line, 0, len(postings))

	for _, p := range postings {
		line := Line{
			Account: p.Account,
			Label:   p.Line.Label,
			Debit:   decimal.Zero,
			Credit:  decimal.Zero,
		}

		switch p.Line.Sense {
		case payroll.SenseDebit:
			line.Debit = p.Line.Amount
		case payroll.SenseCredit:
			line.Credit = p.Line.Amount
		}

		lines = append(lines, line)
	}

	return Entry{
		JournalID: journalID,
		Label:     Label(period),
		Date:      date,
		CompanyID: companyID,
		Lines:     lines,
	}
}

// Totals returns the debit and credit sums of the entry.
func (e Entry) Totals() (decimal.Decimal, decimal.Decimal) {
	debit, credit := decimal.Zero, decimal.Zero

	for _, l := range e.Lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}

	return debit, credit
}

// Values renders the account.move create payload. Lines use the (0, 0, vals)
// one2many creation command.
func (e Entry) Values() map[string]any {
	lines := make([]any, 0, len(e.Lines))

	for _, l := range e.Lines {
		lines = append(lines, []any{0, 0, map[string]any{
			"account_id": l.Account.ID,
			"name":       l.Label,
			"debit":      l.Debit.InexactFloat64(),
			"credit":     l.Credit.InexactFloat64(),
		}})
	}

	return map[string]any{
		"journal_id": e.JournalID,
		"ref":        e.Label,
		"date":       e.Date.Format(time.DateOnly),
		"company_id": e.CompanyID,
		"line_ids":   lines,
	}
}
