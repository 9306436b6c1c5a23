package dos33

// ApplesoftTokens maps token byte minus 0x80 to its keyword text. Applesoft
// token bytes have the high bit set; slots past the last keyword (0xEA) are
// unused and decode to nothing.
var ApplesoftTokens = [128]string{
	0x00: "END",
	0x01: "FOR",
	0x02: "NEXT",
	0x03: "DATA",
	0x04: "INPUT",
	0x05: "DEL",
	0x06: "DIM",
	0x07: "READ",
	0x08: "GR",
	0x09: "TEXT",
	0x0A: "PR#",
	0x0B: "IN#",
	0x0C: "CALL",
	0x0D: "PLOT",
	0x0E: "HLIN",
	0x0F: "VLIN",
	0x10: "HGR2",
	0x11: "HGR",
	0x12: "HCOLOR=",
	0x13: "HPLOT",
	0x14: "DRAW",
	0x15: "XDRAW",
	0x16: "HTAB",
	0x17: "HOME",
	0x18: "ROT=",
	0x19: "SCALE=",
	0x1A: "SHLOAD",
	0x1B: "TRACE",
	0x1C: "NOTRACE",
	0x1D: "NORMAL",
	0x1E: "INVERSE",
	0x1F: "FLASH",
	0x20: "COLOR=",
	0x21: "POP",
	0x22: "VTAB",
	0x23: "HIMEM:",
	0x24: "LOMEM:",
	0x25: "ONERR",
	0x26: "RESUME",
	0x27: "RECALL",
	0x28: "STORE",
	0x29: "SPEED=",
	0x2A: "LET",
	0x2B: "GOTO",
	0x2C: "RUN",
	0x2D: "IF",
	0x2E: "RESTORE",
	0x2F: "&",
	0x30: "GOSUB",
	0x31: "RETURN",
	0x32: "REM",
	0x33: "STOP",
	0x34: "ON",
	0x35: "WAIT",
	0x36: "LOAD",
	0x37: "SAVE",
	0x38: "DEF",
	0x39: "POKE",
	0x3A: "PRINT",
	0x3B: "CONT",
	0x3C: "LIST",
	0x3D: "CLEAR",
	0x3E: "GET",
	0x3F: "NEW",
	0x40: "TAB(",
	0x41: "TO",
	0x42: "FN",
	0x43: "SPC(",
	0x44: "THEN",
	0x45: "AT",
	0x46: "NOT",
	0x47: "STEP",
	0x48: "+",
	0x49: "-",
	0x4A: "*",
	0x4B: "/",
	0x4C: "^",
	0x4D: "AND",
	0x4E: "OR",
	0x4F: ">",
	0x50: "=",
	0x51: "<",
	0x52: "SGN",
	0x53: "INT",
	0x54: "ABS",
	0x55: "USR",
	0x56: "FRE",
	0x57: "SCRN(",
	0x58: "PDL",
	0x59: "POS",
	0x5A: "SQR",
	0x5B: "RND",
	0x5C: "LOG",
	0x5D: "EXP",
	0x5E: "COS",
	0x5F: "SIN",
	0x60: "TAN",
	0x61: "ATN",
	0x62: "PEEK",
	0x63: "LEN",
	0x64: "STR$",
	0x65: "VAL",
	0x66: "ASC",
	0x67: "CHR$",
	0x68: "LEFT$",
	0x69: "RIGHT$",
	0x6A: "MID$",
}

// applesoftRemToken is REM; everything after it on a line is verbatim.
const applesoftRemToken = 0xB2

// IntegerTokens maps an Integer BASIC token byte (always below 0x80; the
// literal/token ranges are inverted relative to Applesoft) to its rendered
// text. 0x01 is the end-of-line marker, not a token.
var IntegerTokens = [128]string{
	0x00: "HIMEM:",
	0x02: "_",
	0x03: ":",
	0x04: "LOAD",
	0x05: "SAVE",
	0x06: "CON",
	0x07: "RUN",
	0x08: "RUN",
	0x09: "DEL",
	0x0A: ",",
	0x0B: "NEW",
	0x0C: "CLR",
	0x0D: "AUTO",
	0x0E: ",",
	0x0F: "MAN",
	0x10: "HIMEM:",
	0x11: "LOMEM:",
	0x12: "+",
	0x13: "-",
	0x14: "*",
	0x15: "/",
	0x16: "=",
	0x17: "#",
	0x18: ">=",
	0x19: ">",
	0x1A: "<=",
	0x1B: "<>",
	0x1C: "<",
	0x1D: "AND",
	0x1E: "OR",
	0x1F: "MOD",
	0x20: "^",
	0x21: "+",
	0x22: "(",
	0x23: ",",
	0x24: "THEN",
	0x25: "THEN",
	0x26: ",",
	0x27: ",",
	0x28: "\"",
	0x29: "\"",
	0x2A: "(",
	0x2B: "!",
	0x2C: "!",
	0x2D: "(",
	0x2E: "PEEK",
	0x2F: "RND",
	0x30: "SGN",
	0x31: "ABS",
	0x32: "PDL",
	0x33: "RNDX",
	0x34: "(",
	0x35: "+",
	0x36: "-",
	0x37: "NOT",
	0x38: "(",
	0x39: "=",
	0x3A: "#",
	0x3B: "LEN(",
	0x3C: "ASC(",
	0x3D: "SCRN(",
	0x3E: ",",
	0x3F: "(",
	0x40: "$",
	0x41: "$",
	0x42: "(",
	0x43: ",",
	0x44: ",",
	0x45: ";",
	0x46: ";",
	0x47: ";",
	0x48: ",",
	0x49: ",",
	0x4A: ",",
	0x4B: "TEXT",
	0x4C: "GR",
	0x4D: "CALL",
	0x4E: "DIM",
	0x4F: "DIM",
	0x50: "TAB",
	0x51: "END",
	0x52: "INPUT",
	0x53: "INPUT",
	0x54: "INPUT",
	0x55: "FOR",
	0x56: "=",
	0x57: "TO",
	0x58: "STEP",
	0x59: "NEXT",
	0x5A: ",",
	0x5B: "RETURN",
	0x5C: "GOSUB",
	0x5D: "REM",
	0x5E: "LET",
	0x5F: "GOTO",
	0x60: "IF",
	0x61: "PRINT",
	0x62: "PRINT",
	0x63: "PRINT",
	0x64: "POKE",
	0x65: ",",
	0x66: "COLOR=",
	0x67: "PLOT",
	0x68: ",",
	0x69: "HLIN",
	0x6A: ",",
	0x6B: "AT",
	0x6C: "VLIN",
	0x6D: ",",
	0x6E: "AT",
	0x6F: "VTAB",
	0x70: "=",
	0x71: "=",
	0x72: ")",
	0x73: ")",
	0x74: "LIST",
	0x75: ",",
	0x76: "LIST",
	0x77: "POP",
	0x78: "NODSP",
	0x79: "DSP",
	0x7A: "NOTRACE",
	0x7B: "DSP",
	0x7C: "DSP",
	0x7D: "TRACE",
	0x7E: "PR#",
	0x7F: "IN#",
}

// Integer BASIC structural bytes.
const (
	integerEOLMarker  = 0x01
	integerQuoteStart = 0x28
	integerQuoteEnd   = 0x29
	integerRemToken   = 0x5D
)
