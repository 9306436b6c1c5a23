package dos33

import "strings"

// ToChar strips the Apple II high bit, leaving the 7-bit character.
func ToChar(b byte) byte { return b & 0x7F }

// DecodeFileName decodes a catalog name field of up to 30 high-ASCII bytes.
// For deleted entries only the first 29 bytes are the name (the last holds
// the relocated original track). The field is space-padded on the right;
// padding is trimmed, but spaces followed by any non-space stay, so embedded
// spaces survive.
func DecodeFileName(raw []byte, deleted bool) string {

	n := len(raw)
	if n > 30 {
		n = 30
	}
	if deleted && n > 29 {
		n = 29
	}

	end := n
	for end > 0 && ToChar(raw[end-1]) == ' ' {
		end--
	}

	out := make([]byte, end)
	for i := 0; i < end; i++ {
		out[i] = ToChar(raw[i])
	}

	return string(out)
}

// DecodeText converts a high-ASCII byte stream to host text. Decoding stops
// at a literal 0x00; carriage returns become '\n'; printable ASCII and tab
// pass through; remaining control bytes are dropped.
func DecodeText(raw []byte) string {

	var sb strings.Builder
	sb.Grow(len(raw))

	for _, v := range raw {
		c := ToChar(v)
		switch {
		case c == 0x00:
			return sb.String()
		case c == 0x0D:
			sb.WriteByte('\n')
		case c == '\t' || (c >= 0x20 && c <= 0x7E):
			sb.WriteByte(c)
		}
	}

	return sb.String()
}
