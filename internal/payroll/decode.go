package payroll

import (
	"encoding/json"
	"fmt"
	"io"

	enc "github.com/MrJamesThe3rd/payflow/internal/encoding"
)

// Decode reads a provider export saved to disk. The bytes are normalised to
// UTF-8 first since saved exports do not always keep the API's encoding.
func Decode(r io.Reader) (*Export, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read export: %w", err)
	}

	data, err := enc.ToUTF8(raw)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	var export Export
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("decode export: %w", err)
	}

	return &export, nil
}
