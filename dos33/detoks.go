package dos33

import (
	"fmt"
	"strconv"
	"strings"
)

// BasicLine is one detokenized BASIC line.
type BasicLine struct {
	Number int
	Source string
}

func (l BasicLine) String() string {
	return fmt.Sprintf("%d %s", l.Number, l.Source)
}

// dialect parameterizes the detokenizer scan loop. Applesoft and Integer
// BASIC share the spacing and REM/quote state machine; they differ in which
// byte range is "token" (inverted between the two), the token table, the
// end-of-line marker, and the Integer-only extensions (dedicated quote
// tokens, 3-byte inline integer constants, ^X control rendering).
type dialect struct {
	isToken     func(b byte) bool
	tokenText   func(b byte) string
	eol         byte
	remToken    byte
	quoteStart  byte // dedicated quote tokens; 0 when the dialect quotes with a literal '"'
	quoteEnd    byte
	hasIntConst bool
	caretCtrl   bool
}

var applesoftDialect = dialect{
	isToken:   func(b byte) bool { return b >= 0x80 },
	tokenText: func(b byte) string { return ApplesoftTokens[b&0x7F] },
	eol:       0x00,
	remToken:  applesoftRemToken,
}

var integerDialect = dialect{
	isToken:     func(b byte) bool { return b < 0x80 },
	tokenText:   func(b byte) string { return IntegerTokens[b] },
	eol:         integerEOLMarker,
	remToken:    integerRemToken,
	quoteStart:  integerQuoteStart,
	quoteEnd:    integerQuoteEnd,
	hasIntConst: true,
	caretCtrl:   true,
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
}

// isJoiner reports whether a previously emitted character would visually
// merge with an alphanumeric that follows it (FORI instead of FOR I).
func isJoiner(c byte) bool {
	return isAlnum(c) || c == ')' || c == '"'
}

// detokenizeBody renders one line's content bytes, scanning left to right
// until the dialect's end-of-line marker or the end of the buffer. It
// returns the rendered text and the number of bytes consumed, marker
// included.
func (dl dialect) detokenizeBody(data []byte) (string, int) {

	var sb strings.Builder

	var inRem, inQuote bool
	var lastWasToken bool
	var lastEmitted byte

	emit := func(c byte) {
		sb.WriteByte(c)
		lastEmitted = c
		lastWasToken = false
	}

	emitLiteral := func(c byte) {
		if !inRem && !inQuote && lastWasToken && isJoiner(lastEmitted) && (isAlnum(c) || c == '"') {
			sb.WriteByte(' ')
		}
		if dl.caretCtrl && c < 0x20 {
			sb.WriteByte('^')
			emit(c + 0x40)
			return
		}
		emit(c)
	}

	pos := 0
	for pos < len(data) {
		b := data[pos]

		if b == dl.eol {
			return sb.String(), pos + 1
		}

		// dedicated quote tokens (Integer BASIC)
		if !inRem && dl.quoteStart != 0 && (b == dl.quoteStart || b == dl.quoteEnd) {
			emitLiteral('"')
			inQuote = b == dl.quoteStart
			pos++
			continue
		}

		if inRem || inQuote {
			c := ToChar(b)
			emitLiteral(c)
			if inQuote && dl.quoteStart == 0 && c == '"' {
				inQuote = false
			}
			pos++
			continue
		}

		// inline integer constant (Integer BASIC): a 0xB0-0xB9 byte opens a
		// 3-byte constant, except directly after an alphanumeric literal,
		// where it is a digit of a variable name.
		if dl.hasIntConst && b >= 0xB0 && b <= 0xB9 && !(isAlnum(lastEmitted) && !lastWasToken) {
			if pos+3 > len(data) {
				return sb.String(), len(data)
			}
			val := int16(uint16(data[pos+1]) | uint16(data[pos+2])<<8)
			s := strconv.Itoa(int(val))
			if lastWasToken && isJoiner(lastEmitted) {
				sb.WriteByte(' ')
			}
			sb.WriteString(s)
			lastEmitted = s[len(s)-1]
			lastWasToken = false
			pos += 3
			continue
		}

		if dl.isToken(b) {
			tok := dl.tokenText(b)
			if tok == "" {
				// unused table slot
				pos++
				continue
			}
			if isJoiner(lastEmitted) && isAlnum(tok[0]) {
				sb.WriteByte(' ')
			}
			sb.WriteString(tok)
			lastEmitted = tok[len(tok)-1]
			lastWasToken = true
			if b == dl.remToken {
				inRem = true
			}
			pos++
			continue
		}

		// literal 7-bit character
		c := ToChar(b)
		emitLiteral(c)
		if c == '"' && dl.quoteStart == 0 {
			inQuote = !inQuote
		}
		pos++
	}

	return sb.String(), len(data)
}

// DetokenizeApplesoft renders a tokenized Applesoft program (the bytes after
// the file's 2-byte length header) as source lines. Lines are chained by a
// 2-byte next-line address; a zero address ends the program. A chain that
// runs off the buffer mid-header is malformed.
func DetokenizeApplesoft(data []byte) ([]BasicLine, error) {

	var lines []BasicLine

	pos := 0
	for {
		if len(data)-pos < 2 {
			break
		}
		nextAddr := le16(data, pos)
		pos += 2
		if nextAddr == 0 {
			break
		}

		if len(data)-pos < 2 {
			return lines, fmt.Errorf("applesoft line %d header: %w", len(lines), ErrMalformedRecord)
		}
		lineNum := le16(data, pos)
		pos += 2

		body, n := applesoftDialect.detokenizeBody(data[pos:])
		pos += n

		lines = append(lines, BasicLine{Number: lineNum, Source: body})
	}

	return lines, nil
}

// DetokenizeInteger renders a tokenized Integer BASIC program (the bytes
// after the file's 2-byte length header) as source lines. Each line starts
// with its stored length; a zero length or the end of the buffer ends the
// program.
func DetokenizeInteger(data []byte) ([]BasicLine, error) {

	var lines []BasicLine

	pos := 0
	for pos < len(data) {
		lineLen := int(data[pos])
		if lineLen == 0 {
			break
		}
		if lineLen < 4 || pos+lineLen > len(data) {
			return lines, fmt.Errorf("integer line %d length %d: %w", len(lines), lineLen, ErrMalformedRecord)
		}

		lineNum := le16(data, pos+1)
		body, _ := integerDialect.detokenizeBody(data[pos+3 : pos+lineLen])

		lines = append(lines, BasicLine{Number: lineNum, Source: body})
		pos += lineLen
	}

	return lines, nil
}

// ListBasic renders lines the way a LIST would, one per row.
func ListBasic(lines []BasicLine) string {
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
