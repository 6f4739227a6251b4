package payroll

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sense tells on which side of the ledger a line is booked.
type Sense string

const (
	SenseDebit  Sense = "D"
	SenseCredit Sense = "C"
)

func (s Sense) opposite() Sense {
	if s == SenseDebit {
		return SenseCredit
	}

	return SenseDebit
}

func (s *Sense) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("decoding sense: %w", err)
	}

	switch Sense(raw) {
	case SenseDebit, SenseCredit:
		*s = Sense(raw)
		return nil
	}

	return fmt.Errorf("unknown sense %q", raw)
}

// Export is the accounting-entries payload returned by the payroll provider
// for one organisation and date range.
type Export struct {
	Breaks []*Break `json:"ruptures"`
}

// Break groups entry lines, roughly a sub-journal.
type Break struct {
	Metadata json.RawMessage `json:"-"`
	Lines    []Line          `json:"ecritures"`
}

func (b *Break) UnmarshalJSON(data []byte) error {
	var body struct {
		Lines []Line `json:"ecritures"`
	}

	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}

	b.Lines = body.Lines
	b.Metadata = append(json.RawMessage(nil), data...)

	return nil
}

// Line is one accounting movement. Amount is always a magnitude; the side is
// carried by Sense.
type Line struct {
	AccountCode string          `json:"compte"`
	Label       string          `json:"libelle"`
	Amount      decimal.Decimal `json:"valeur"`
	Sense       Sense           `json:"sens"`
}

func (l *Line) UnmarshalJSON(data []byte) error {
	type plain Line

	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	*l = Line(p)

	if l.Amount.IsNegative() {
		l.Amount = l.Amount.Neg()
		l.Sense = l.Sense.opposite()
	}

	return nil
}

// Extract flattens every break of the export into one ordered slice.
// Missing breaks or line lists count as empty.
func Extract(export *Export) []Line {
	lines := []Line{}

	if export == nil {
		return lines
	}

	for _, b := range export.Breaks {
		if b == nil {
			continue
		}

		lines = append(lines, b.Lines...)
	}

	return lines
}
