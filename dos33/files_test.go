package dos33

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecodeBinaryFile(t *testing.T) {

	data := []byte{0x00, 0x40, 0x03, 0x00, 0xA9, 0x00, 0x60}

	bin, err := DecodeBinaryFile(data)
	assert.NoError(t, err)
	assert.Equal(t, 0x4000, bin.Address)
	assert.Equal(t, []byte{0xA9, 0x00, 0x60}, bin.Data)
}

func TestDecodeBinaryFileClampsOverstatedLength(t *testing.T) {

	// header claims 0x100 bytes but only 2 follow: clamp, do not fail
	data := []byte{0x00, 0x20, 0x00, 0x01, 0xEA, 0xEA}

	bin, err := DecodeBinaryFile(data)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(bin.Data))
}

func TestDecodeBinaryFileShortHeader(t *testing.T) {

	_, err := DecodeBinaryFile([]byte{0x00, 0x20, 0x01})
	assert.True(t, errors.Is(err, ErrMalformedRecord))
}

func TestDecodeApplesoftBasicFile(t *testing.T) {

	prog := applesoftProgram(asLine(10, 0xBA, '"', 'H', 'I', '"'))
	data := append([]byte{byte(len(prog) & 0xFF), byte(len(prog) / 0x100)}, prog...)

	f, err := DecodeApplesoftBasicFile(data)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(f.Lines))
	assert.Equal(t, `10 PRINT "HI"`+"\n", f.String())
}

func TestDecodeBasicFileLengthMismatchFails(t *testing.T) {

	// header claims more payload than is present: unlike binary files this
	// must fail, not clamp
	data := []byte{0x10, 0x00, 0x01, 0x02}

	_, err := DecodeApplesoftBasicFile(data)
	assert.True(t, errors.Is(err, ErrLengthMismatch))

	_, err = DecodeIntegerBasicFile(data)
	assert.True(t, errors.Is(err, ErrLengthMismatch))
}

func TestDecodeIntegerBasicFile(t *testing.T) {

	prog := integerLine(10, 0x61, 0xB1, 0x2A, 0x00)
	data := append([]byte{byte(len(prog) & 0xFF), byte(len(prog) / 0x100)}, prog...)

	f, err := DecodeIntegerBasicFile(data)
	assert.NoError(t, err)
	assert.Equal(t, "10 PRINT 42\n", f.String())
}

func relFixture() []byte {
	data := []byte{
		0x00, 0x10, // start address $1000
		0x20, 0x00, // RAM image length
		0x04, 0x00, // code image length
		0xA9, 0x01, 0x8D, 0x60, // code image
		0x81, 0x02, 0x00, 0x10, // relocation entry
		0x00, // dictionary terminator
	}
	// symbol DONE: 7-bit chars, high bit set on the final one
	data = append(data, 'D', 'O', 'N', 'E'|0x80)
	data = append(data, 0x01, 0x34, 0x12) // flags + value
	data = append(data, 0x00)             // directory terminator
	return data
}

func TestDecodeRelocatableFile(t *testing.T) {

	rel, err := DecodeRelocatableFile(relFixture())
	assert.NoError(t, err)

	assert.Equal(t, 0x1000, rel.Address)
	assert.Equal(t, 0x20, rel.RAMLength)
	assert.Equal(t, []byte{0xA9, 0x01, 0x8D, 0x60}, rel.Code)

	assert.Equal(t, 1, len(rel.Relocations))
	assert.Equal(t, byte(0x81), rel.Relocations[0].Flags)
	assert.Equal(t, 0x0002, rel.Relocations[0].Offset)
	assert.Equal(t, byte(0x10), rel.Relocations[0].Value)

	assert.Equal(t, 1, len(rel.Symbols))
	assert.Equal(t, "DONE", rel.Symbols[0].Name)
	assert.Equal(t, byte(0x01), rel.Symbols[0].Flags)
	assert.Equal(t, 0x1234, rel.Symbols[0].Value)
}

func TestDecodeRelocatableFileNoSymbols(t *testing.T) {

	data := []byte{
		0x00, 0x08,
		0x02, 0x00,
		0x02, 0x00,
		0xEA, 0x60,
		0x00, // empty relocation dictionary
	}

	rel, err := DecodeRelocatableFile(data)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(rel.Relocations))
	assert.Equal(t, 0, len(rel.Symbols))
}

func TestDecodeRelocatableFileLengthMismatch(t *testing.T) {

	data := []byte{0x00, 0x08, 0x02, 0x00, 0xFF, 0x00, 0xEA}
	_, err := DecodeRelocatableFile(data)
	assert.True(t, errors.Is(err, ErrLengthMismatch))
}

func TestDecodeRelocatableFileUnterminatedDictionary(t *testing.T) {

	data := []byte{0x00, 0x08, 0x02, 0x00, 0x02, 0x00, 0xEA, 0x60}
	_, err := DecodeRelocatableFile(data)
	assert.True(t, errors.Is(err, ErrMalformedRecord))
}

// fileFixtureDisk builds an image holding one file of each decoded type.
func fileFixtureDisk(t *testing.T) *DiskImage {
	t.Helper()

	b := newDiskBuilder()

	write := func(slot int, name string, ft FileType, tsTrack int, payload []byte) {
		sectors := (len(payload)+STD_BYTES_PER_SECTOR-1)/STD_BYTES_PER_SECTOR + 1
		b.catalogEntry(VTOC_TRACK, 15, slot, buildFileEntry(byte(tsTrack), 0, byte(ft), name, sectors))
		var pairs [][2]byte
		for i := 0; i*STD_BYTES_PER_SECTOR < len(payload); i++ {
			pairs = append(pairs, [2]byte{byte(tsTrack), byte(i + 1)})
			copy(b.sector(tsTrack, i+1), payload[i*STD_BYTES_PER_SECTOR:])
		}
		b.tsList(tsTrack, 0, 0, 0, pairs)
	}

	write(0, "NOTES", FileTypeTXT, 19, []byte{'H' | 0x80, 'I' | 0x80, 0x8D, 0x00})

	prog := applesoftProgram(asLine(10, 0xBA, 'H', 'I'))
	write(1, "PROG", FileTypeAPP, 20, append([]byte{byte(len(prog)), byte(len(prog) / 0x100)}, prog...))

	iprog := integerLine(10, 0x61, 0xB1, 0x2A, 0x00)
	write(2, "IPROG", FileTypeINT, 21, append([]byte{byte(len(iprog)), byte(len(iprog) / 0x100)}, iprog...))

	write(3, "LOADER", FileTypeBIN, 22, []byte{0x00, 0x03, 0x02, 0x00, 0x4C, 0x00})

	write(4, "MODULE", FileTypeREL, 23, relFixture())

	return b.image(t)
}

func TestReadTypedFiles(t *testing.T) {

	d := fileFixtureDisk(t)

	fd, err := d.NamedEntry("NOTES")
	assert.NoError(t, err)
	txt, err := d.ReadTextFile(fd)
	assert.NoError(t, err)
	assert.Equal(t, "HI\n", txt.Text)

	fd, err = d.NamedEntry("PROG")
	assert.NoError(t, err)
	bas, err := d.ReadApplesoftBasicFile(fd)
	assert.NoError(t, err)
	assert.Equal(t, "10 PRINT HI\n", bas.String())

	fd, err = d.NamedEntry("IPROG")
	assert.NoError(t, err)
	ib, err := d.ReadIntegerBasicFile(fd)
	assert.NoError(t, err)
	assert.Equal(t, "10 PRINT 42\n", ib.String())

	fd, err = d.NamedEntry("LOADER")
	assert.NoError(t, err)
	bin, err := d.ReadBinaryFile(fd)
	assert.NoError(t, err)
	assert.Equal(t, 0x0300, bin.Address)
	assert.Equal(t, []byte{0x4C, 0x00}, bin.Data)

	fd, err = d.NamedEntry("MODULE")
	assert.NoError(t, err)
	rel, err := d.ReadRelocatableFile(fd)
	assert.NoError(t, err)
	assert.Equal(t, "DONE", rel.Symbols[0].Name)
}

func TestReadTypedFileMismatch(t *testing.T) {

	d := fileFixtureDisk(t)

	fd, err := d.NamedEntry("NOTES")
	assert.NoError(t, err)

	_, err = d.ReadBinaryFile(fd)
	assert.True(t, errors.Is(err, ErrTypeMismatch))
	_, err = d.ReadApplesoftBasicFile(fd)
	assert.True(t, errors.Is(err, ErrTypeMismatch))
	_, err = d.ReadIntegerBasicFile(fd)
	assert.True(t, errors.Is(err, ErrTypeMismatch))
	_, err = d.ReadRelocatableFile(fd)
	assert.True(t, errors.Is(err, ErrTypeMismatch))

	fd, err = d.NamedEntry("LOADER")
	assert.NoError(t, err)
	_, err = d.ReadTextFile(fd)
	assert.True(t, errors.Is(err, ErrTypeMismatch))
}
