package dos33

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// applesoftProgram chains tokenized lines into a program image (without the
// file length header): per line a next-address word, the line number, the
// content bytes, a zero terminator; the chain ends with a zero address.
func applesoftProgram(lines ...[]byte) []byte {
	var out []byte
	addr := 0x801
	for _, content := range lines {
		next := addr + 2 + len(content) + 1
		out = append(out, byte(next&0xFF), byte(next/0x100))
		out = append(out, content...)
		out = append(out, 0x00)
		addr = next
	}
	out = append(out, 0x00, 0x00)
	return out
}

func asLine(number int, body ...byte) []byte {
	return append([]byte{byte(number & 0xFF), byte(number / 0x100)}, body...)
}

func TestApplesoftPrintLiteralSpacing(t *testing.T) {

	// PRINT token followed by the literal characters HI: exactly one space
	// between keyword and literal
	prog := applesoftProgram(asLine(10, 0xBA, 'H', 'I'))

	lines, err := DetokenizeApplesoft(prog)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(lines))
	assert.Equal(t, "10 PRINT HI", lines[0].String())
}

func TestApplesoftTokenAfterVariable(t *testing.T) {

	// FOR I = 1 TO 9: alphanumeric token after an alphanumeric literal needs
	// a separating space on both sides
	prog := applesoftProgram(asLine(10, 0x81, 'I', 0xD0, '1', 0xC1, '9'))

	lines, err := DetokenizeApplesoft(prog)
	assert.NoError(t, err)
	assert.Equal(t, "10 FOR I=1 TO 9", lines[0].String())
}

func TestApplesoftQuoteSuppressesTokens(t *testing.T) {

	// a token byte inside a quoted string is literal text
	prog := applesoftProgram(asLine(20, 0xBA, '"', 'A' | 0x80, '"'))

	lines, err := DetokenizeApplesoft(prog)
	assert.NoError(t, err)
	assert.Equal(t, `20 PRINT "A"`, lines[0].String())
}

func TestApplesoftRemVerbatim(t *testing.T) {

	// after REM the rest of the line is verbatim, token bytes included
	prog := applesoftProgram(asLine(30, 0xB2, ' ', 'H', 'I', 0xBA))

	lines, err := DetokenizeApplesoft(prog)
	assert.NoError(t, err)
	assert.Equal(t, "30 REM HI:", lines[0].String())
}

func TestApplesoftMultipleLines(t *testing.T) {

	prog := applesoftProgram(
		asLine(10, 0xBA, '"', 'H', 'I', '"'),
		asLine(20, 0xAB, '1', '0'),
	)

	lines, err := DetokenizeApplesoft(prog)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(lines))
	assert.Equal(t, `10 PRINT "HI"`, lines[0].String())
	assert.Equal(t, "20 GOTO 10", lines[1].String())
}

func TestApplesoftTruncatedLineHeader(t *testing.T) {

	_, err := DetokenizeApplesoft([]byte{0x10, 0x08, 0x0A})
	assert.True(t, err != nil)
}

// integerLine builds one stored Integer BASIC line: length byte, line
// number, content, end-of-line marker.
func integerLine(number int, body ...byte) []byte {
	out := []byte{0, byte(number & 0xFF), byte(number / 0x100)}
	out = append(out, body...)
	out = append(out, integerEOLMarker)
	out[0] = byte(len(out))
	return out
}

func TestIntegerInlineConstant(t *testing.T) {

	// 0xB1 opens a 3-byte constant: render the little-endian value, not a
	// table lookup
	prog := integerLine(10, 0x61, 0xB1, 0x2A, 0x00)

	lines, err := DetokenizeInteger(prog)
	assert.NoError(t, err)
	assert.Equal(t, "10 PRINT 42", lines[0].String())
}

func TestIntegerNegativeConstantValue(t *testing.T) {

	// the constant payload is a signed 16-bit value
	prog := integerLine(10, 0x61, 0xB0, 0xFF, 0xFF)

	lines, err := DetokenizeInteger(prog)
	assert.NoError(t, err)
	assert.Equal(t, "10 PRINT -1", lines[0].String())
}

func TestIntegerVariableNameDigits(t *testing.T) {

	// X1 = 5: the 0xB1 directly after the variable letter is a digit of the
	// name, not an inline constant
	prog := integerLine(20, 'X'|0x80, 0xB1, 0x71, 0xB5, 0x05, 0x00)

	lines, err := DetokenizeInteger(prog)
	assert.NoError(t, err)
	assert.Equal(t, "20 X1=5", lines[0].String())
}

func TestIntegerQuoteTokens(t *testing.T) {

	// Integer BASIC quotes with dedicated open/close tokens; the quoted
	// characters are stored high-bit set
	prog := integerLine(30, 0x61, integerQuoteStart, 'H'|0x80, 'I'|0x80, integerQuoteEnd)

	lines, err := DetokenizeInteger(prog)
	assert.NoError(t, err)
	assert.Equal(t, `30 PRINT "HI"`, lines[0].String())
}

func TestIntegerControlCharCaret(t *testing.T) {

	// low control codes render as ^X
	prog := integerLine(40, 0x5D, 0x07|0x80)

	lines, err := DetokenizeInteger(prog)
	assert.NoError(t, err)
	assert.Equal(t, "40 REM^G", lines[0].String())
}

func TestIntegerRemVerbatim(t *testing.T) {

	prog := integerLine(50, 0x5D, ' '|0x80, 'O'|0x80, 'K'|0x80)

	lines, err := DetokenizeInteger(prog)
	assert.NoError(t, err)
	assert.Equal(t, "50 REM OK", lines[0].String())
}

func TestIntegerZeroLengthLineEndsProgram(t *testing.T) {

	prog := append(integerLine(10, 0x61, 0xB1, 0x01, 0x00), 0x00, 0xEE)

	lines, err := DetokenizeInteger(prog)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(lines))
}

func TestIntegerBadLineLength(t *testing.T) {

	_, err := DetokenizeInteger([]byte{0xF0, 0x0A, 0x00, 0x01})
	assert.True(t, err != nil)
}

func TestListBasic(t *testing.T) {

	out := ListBasic([]BasicLine{
		{Number: 10, Source: "PRINT 1"},
		{Number: 20, Source: "END"},
	})
	assert.Equal(t, "10 PRINT 1\n20 END\n", out)
}
