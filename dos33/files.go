package dos33

import "fmt"

// Typed file decoders. Each checks the catalog entry's declared type before
// touching data, materializes the entry's byte stream through the traversal
// engine, then applies the format-specific decode. Decoded records own their
// bytes; nothing aliases the disk image.

// TextFile is a decoded DOS text file.
type TextFile struct {
	Text string
}

// DecodeTextFile decodes a text file's materialized byte stream.
func DecodeTextFile(data []byte) *TextFile {
	return &TextFile{Text: DecodeText(data)}
}

// ReadTextFile reads and decodes a type-T entry.
func (d *DiskImage) ReadTextFile(fd *FileEntry) (*TextFile, error) {
	data, err := d.readTyped(fd, FileTypeTXT)
	if err != nil {
		return nil, err
	}
	return DecodeTextFile(data), nil
}

// BinaryFile is a decoded type-B file: a load address and the raw bytes.
type BinaryFile struct {
	Address int
	Data    []byte
}

// DecodeBinaryFile decodes a binary file's byte stream: 2-byte load address,
// 2-byte length, then payload. A length header overstating the available
// payload is clamped rather than failing; truncated images are common and a
// flat byte run can be reinterpreted safely.
func DecodeBinaryFile(data []byte) (*BinaryFile, error) {

	if len(data) < 4 {
		return nil, fmt.Errorf("binary header: %w", ErrMalformedRecord)
	}

	addr := le16(data, 0)
	length := le16(data, 2)
	if length > len(data)-4 {
		length = len(data) - 4
	}

	out := &BinaryFile{Address: addr, Data: make([]byte, length)}
	copy(out.Data, data[4:4+length])

	return out, nil
}

// ReadBinaryFile reads and decodes a type-B entry.
func (d *DiskImage) ReadBinaryFile(fd *FileEntry) (*BinaryFile, error) {
	data, err := d.readTyped(fd, FileTypeBIN)
	if err != nil {
		return nil, err
	}
	return DecodeBinaryFile(data)
}

// basicPayload checks a BASIC file's 2-byte length header against the
// available bytes. Unlike binary files there is no clamping: a line chain
// cannot be reinterpreted from partial data.
func basicPayload(data []byte) ([]byte, error) {

	if len(data) < 2 {
		return nil, fmt.Errorf("basic header: %w", ErrMalformedRecord)
	}

	length := le16(data, 0)
	if length > len(data)-2 {
		return nil, fmt.Errorf("basic length %d, available %d: %w", length, len(data)-2, ErrLengthMismatch)
	}

	return data[2 : 2+length], nil
}

// ApplesoftBasicFile is a decoded type-A program.
type ApplesoftBasicFile struct {
	Lines []BasicLine
}

func (f *ApplesoftBasicFile) String() string { return ListBasic(f.Lines) }

// DecodeApplesoftBasicFile decodes a tokenized Applesoft file's byte stream.
func DecodeApplesoftBasicFile(data []byte) (*ApplesoftBasicFile, error) {

	payload, err := basicPayload(data)
	if err != nil {
		return nil, err
	}

	lines, err := DetokenizeApplesoft(payload)
	if err != nil {
		return nil, err
	}

	return &ApplesoftBasicFile{Lines: lines}, nil
}

// ReadApplesoftBasicFile reads and decodes a type-A entry.
func (d *DiskImage) ReadApplesoftBasicFile(fd *FileEntry) (*ApplesoftBasicFile, error) {
	data, err := d.readTyped(fd, FileTypeAPP)
	if err != nil {
		return nil, err
	}
	return DecodeApplesoftBasicFile(data)
}

// IntegerBasicFile is a decoded type-I program.
type IntegerBasicFile struct {
	Lines []BasicLine
}

func (f *IntegerBasicFile) String() string { return ListBasic(f.Lines) }

// DecodeIntegerBasicFile decodes a tokenized Integer BASIC file's byte
// stream.
func DecodeIntegerBasicFile(data []byte) (*IntegerBasicFile, error) {

	payload, err := basicPayload(data)
	if err != nil {
		return nil, err
	}

	lines, err := DetokenizeInteger(payload)
	if err != nil {
		return nil, err
	}

	return &IntegerBasicFile{Lines: lines}, nil
}

// ReadIntegerBasicFile reads and decodes a type-I entry.
func (d *DiskImage) ReadIntegerBasicFile(fd *FileEntry) (*IntegerBasicFile, error) {
	data, err := d.readTyped(fd, FileTypeINT)
	if err != nil {
		return nil, err
	}
	return DecodeIntegerBasicFile(data)
}

// RelocationEntry is one relocation dictionary record of a type-R file.
type RelocationEntry struct {
	Flags  byte
	Offset int
	Value  byte
}

// SymbolEntry is one external symbol directory record of a type-R file.
type SymbolEntry struct {
	Name  string
	Flags byte
	Value int
}

// RelocatableFile is a decoded type-R object module: the code image plus its
// relocation dictionary and optional external symbol directory.
type RelocatableFile struct {
	Address     int
	RAMLength   int
	Code        []byte
	Relocations []RelocationEntry
	Symbols     []SymbolEntry
}

// DecodeRelocatableFile decodes a relocatable module's byte stream: a 6-byte
// header (start address, RAM image length, code image length, all LE), the
// code image, a relocation dictionary of 4-byte entries terminated by a zero
// flags byte, then an optional external symbol directory terminated by a
// zero byte. The declared code length must fit the available bytes; there is
// no clamping for this format.
func DecodeRelocatableFile(data []byte) (*RelocatableFile, error) {

	if len(data) < 6 {
		return nil, fmt.Errorf("relocatable header: %w", ErrMalformedRecord)
	}

	out := &RelocatableFile{
		Address:   le16(data, 0),
		RAMLength: le16(data, 2),
	}
	codeLen := le16(data, 4)
	if codeLen > len(data)-6 {
		return nil, fmt.Errorf("relocatable code length %d, available %d: %w", codeLen, len(data)-6, ErrLengthMismatch)
	}
	out.Code = make([]byte, codeLen)
	copy(out.Code, data[6:6+codeLen])

	pos := 6 + codeLen

	// relocation dictionary
	for {
		if pos >= len(data) {
			return nil, fmt.Errorf("relocation dictionary unterminated: %w", ErrMalformedRecord)
		}
		flags := data[pos]
		if flags == 0 {
			pos++
			break
		}
		if pos+4 > len(data) {
			return nil, fmt.Errorf("relocation entry at %d: %w", pos, ErrMalformedRecord)
		}
		out.Relocations = append(out.Relocations, RelocationEntry{
			Flags:  flags,
			Offset: le16(data, pos+1),
			Value:  data[pos+3],
		})
		pos += 4
	}

	// external symbol directory, if anything follows
	for pos < len(data) {
		if data[pos] == 0 {
			break
		}
		name, n, err := readSymbolName(data[pos:])
		if err != nil {
			return nil, err
		}
		pos += n
		if pos+3 > len(data) {
			return nil, fmt.Errorf("symbol %q entry: %w", name, ErrMalformedRecord)
		}
		out.Symbols = append(out.Symbols, SymbolEntry{
			Name:  name,
			Flags: data[pos],
			Value: le16(data, pos+1),
		})
		pos += 3
	}

	return out, nil
}

// readSymbolName decodes a symbol name of 7-bit characters; a set high bit
// marks the final character.
func readSymbolName(data []byte) (string, int, error) {
	for i, b := range data {
		if b&0x80 != 0 {
			name := make([]byte, i+1)
			for j := 0; j <= i; j++ {
				name[j] = ToChar(data[j])
			}
			return string(name), i + 1, nil
		}
	}
	return "", 0, fmt.Errorf("symbol name unterminated: %w", ErrMalformedRecord)
}

// ReadRelocatableFile reads and decodes a type-R entry.
func (d *DiskImage) ReadRelocatableFile(fd *FileEntry) (*RelocatableFile, error) {
	data, err := d.readTyped(fd, FileTypeREL)
	if err != nil {
		return nil, err
	}
	return DecodeRelocatableFile(data)
}

func (d *DiskImage) readTyped(fd *FileEntry, want FileType) ([]byte, error) {
	if fd.Type() != want {
		return nil, fmt.Errorf("%q is %s, not %s: %w", fd.Name(), fd.Type(), want, ErrTypeMismatch)
	}
	return d.ReadFile(fd)
}
