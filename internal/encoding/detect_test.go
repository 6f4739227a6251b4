package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"

	"github.com/MrJamesThe3rd/payflow/internal/encoding"
)

func TestToUTF8_UTF8Passthrough(t *testing.T) {
	input := `{"ruptures":[{"ecritures":[{"libelle":"Salaires bruts dûs","compte":"641100"}]}]}`

	got, err := encoding.ToUTF8([]byte(input))
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestToUTF8_Windows1252(t *testing.T) {
	// "Rémunération" in Windows-1252: é = 0xE9.
	latin1 := []byte{'"', 'R', 0xE9, 'm', 'u', 'n', 0xE9, 'r', 'a', 't', 'i', 'o', 'n', '"'}

	got, err := encoding.ToUTF8(latin1)
	require.NoError(t, err)
	assert.Equal(t, `"Rémunération"`, string(got))
}

func TestToUTF8_UTF8BOM(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`{"ruptures":null}`)...)

	got, err := encoding.ToUTF8(input)
	require.NoError(t, err)
	assert.Equal(t, `{"ruptures":null}`, string(got))
}

func TestToUTF8_UTF16LE(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()

	input, err := enc.Bytes([]byte(`{"ruptures":[]}`))
	require.NoError(t, err)

	got, err := encoding.ToUTF8(input)
	require.NoError(t, err)
	assert.Equal(t, `{"ruptures":[]}`, string(got))
}
