package menu

import (
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineTrimsAndReportsEOF(t *testing.T) {
	p, out := script("  Widget  ")

	got, err := p.Line("Name: ")
	require.NoError(t, err)
	assert.Equal(t, "Widget", got)
	assert.Equal(t, "Name: ", out.String())

	_, err = p.Line("Name: ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestIntMalformed(t *testing.T) {
	for _, in := range []string{"", "abc", "1.5", "9999999999999999999999"} {
		p, _ := script(in)
		_, err := p.Int("")
		assert.ErrorIs(t, err, ErrMalformedInput, "%q", in)
	}
}

func TestIntRetryRepromptsUntilValid(t *testing.T) {
	p, out := script("ten", "", "-3")

	got, err := p.IntRetry("Qty: ")
	require.NoError(t, err)
	assert.Equal(t, -3, got)
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid input! Please enter a valid integer."))
	assert.Equal(t, 3, strings.Count(out.String(), "Qty: "))
}

func TestRetryStopsAtEOF(t *testing.T) {
	p, _ := script("abc")
	_, err := p.IntRetry("Qty: ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestDecimal(t *testing.T) {
	p, out := script("9,99", "1234.567")

	got, err := p.DecimalRetry("Price: ")
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("1234.567")))
	assert.Contains(t, out.String(), "Invalid input! Please enter a valid decimal number.")
}

func TestFloatRejectsNonFinite(t *testing.T) {
	for _, in := range []string{"NaN", "Inf", "-inf", "1e400", "x"} {
		p, _ := script(in)
		_, err := p.Float("")
		assert.ErrorIs(t, err, ErrMalformedInput, "%q", in)
	}

	p, out := script("nan", "87.5")
	got, err := p.FloatRetry("Score: ")
	require.NoError(t, err)
	assert.InDelta(t, 87.5, got, 1e-9)
	assert.Contains(t, out.String(), "Invalid input! Please enter a valid number.")
}

func TestNonBlank(t *testing.T) {
	p, out := script("", "   ", "Alice")
	got, err := p.NonBlank("Name: ")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got)
	assert.Equal(t, 3, strings.Count(out.String(), "Name: "))
}

func TestLineDiscardsOversizedLine(t *testing.T) {
	p, out := script(strings.Repeat("x", MaxLineBytes+1), "Widget")

	got, err := p.Line("Name: ")
	require.NoError(t, err)
	assert.Equal(t, "Widget", got)
	assert.Equal(t, "Name: Invalid input! Line is too long.\nName: ", out.String())
}

func TestLineKeepsLongLineWithinLimit(t *testing.T) {
	long := strings.Repeat("y", MaxLineBytes)
	p, _ := script(long)

	got, err := p.Line("")
	require.NoError(t, err)
	assert.Equal(t, long, got)
}

func TestLineOversizedAtEOF(t *testing.T) {
	var out strings.Builder
	p := NewPrompter(strings.NewReader(strings.Repeat("z", 3*MaxLineBytes)), &out)

	_, err := p.Line("")
	assert.ErrorIs(t, err, io.EOF)
	assert.Contains(t, out.String(), "Invalid input! Line is too long.")
}

func TestIntRetryAfterOversizedLine(t *testing.T) {
	p, out := script(strings.Repeat("9", 70000), "5")

	got, err := p.IntRetry("Qty: ")
	require.NoError(t, err)
	assert.Equal(t, 5, got)
	assert.Contains(t, out.String(), "Invalid input! Line is too long.")
}
