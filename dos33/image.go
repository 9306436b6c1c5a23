// Package dos33 is a read-only decoder for the Apple II DOS 3.3 floppy
// filesystem. It turns a flat sector-addressable image into a navigable
// catalog of files, and each file's raw sectors into a typed in-memory
// representation (text, tokenized BASIC, binary, relocatable module).
package dos33

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

const STD_BYTES_PER_SECTOR = 256
const STD_TRACKS_PER_DISK = 35
const STD_SECTORS_PER_TRACK = 16
const STD_SECTORS_PER_TRACK_OLD = 13
const STD_DISK_BYTES = STD_TRACKS_PER_DISK * STD_SECTORS_PER_TRACK * STD_BYTES_PER_SECTOR
const STD_DISK_BYTES_OLD = STD_TRACKS_PER_DISK * STD_SECTORS_PER_TRACK_OLD * STD_BYTES_PER_SECTOR

// VTOC_TRACK is where DOS 3.3 keeps the volume table of contents ($11).
const VTOC_TRACK = 17

// DiskImage is a positioned-read view over a DOS 3.3 disk image. Geometry is
// fixed at construction; every sector access re-reads the backing source, so
// a DiskImage holds no sector cache. The VTOC is the one exception: it is
// read once during construction and immutable thereafter.
type DiskImage struct {
	source     io.ReaderAt
	size       int64
	tracks     int
	sectors    int
	sectorSize int
	vtoc       *VTOC
	closer     io.Closer
	Filename   string
}

// NewDiskImage wraps a positioned-read byte source of the given size.
// The sectors-per-track count is guessed from the size (13 only for an exact
// 13-sector image, 16 otherwise) and confirmed against the VTOC's declared
// field where that field is sane. Undersized images still get at least the
// standard 35 tracks so the VTOC track stays addressable.
func NewDiskImage(source io.ReaderAt, size int64) (*DiskImage, error) {

	d := &DiskImage{
		source:     source,
		size:       size,
		sectorSize: STD_BYTES_PER_SECTOR,
	}
	d.probeGeometry()

	raw, err := d.ReadSector(VTOC_TRACK, 0)
	if err != nil {
		return nil, fmt.Errorf("vtoc: %w", err)
	}
	d.vtoc, err = DecodeVTOC(raw)
	if err != nil {
		return nil, fmt.Errorf("vtoc: %w", err)
	}

	return d, nil
}

// NewDiskImageBytes wraps an in-memory image.
func NewDiskImageBytes(data []byte) (*DiskImage, error) {
	return NewDiskImage(bytes.NewReader(data), int64(len(data)))
}

// OpenDiskImage opens a disk image file. The file stays open for positioned
// reads; Close releases it.
func OpenDiskImage(filename string) (*DiskImage, error) {

	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	d, err := NewDiskImage(f, info.Size())
	if err != nil {
		f.Close()
		return nil, err
	}
	d.closer = f
	d.Filename = filename

	return d, nil
}

func (d *DiskImage) Close() error {
	if d.closer != nil {
		return d.closer.Close()
	}
	return nil
}

// probeGeometry guesses sectors-per-track from the image size, then lets the
// VTOC's declared count override the guess when it reads as 13 or 16. The
// heuristic can misfire on non-standard images; downstream range checks and
// chain guards keep a wrong guess from corrupting reads.
func (d *DiskImage) probeGeometry() {

	d.sectors = STD_SECTORS_PER_TRACK
	if d.size == STD_DISK_BYTES_OLD {
		d.sectors = STD_SECTORS_PER_TRACK_OLD
	}

	offset := int64(VTOC_TRACK * d.sectors * d.sectorSize)
	buf := make([]byte, d.sectorSize)
	if _, err := d.source.ReadAt(buf, offset); err == nil {
		if v, err := DecodeVTOC(buf); err == nil {
			switch v.Sectors() {
			case STD_SECTORS_PER_TRACK, STD_SECTORS_PER_TRACK_OLD:
				d.sectors = v.Sectors()
			}
		}
	}

	d.tracks = int(d.size) / (d.sectors * d.sectorSize)
	if d.tracks < STD_TRACKS_PER_DISK {
		d.tracks = STD_TRACKS_PER_DISK
	}
}

// Tracks reports the number of tracks the image is addressed with.
func (d *DiskImage) Tracks() int { return d.tracks }

// Sectors reports the sectors-per-track count.
func (d *DiskImage) Sectors() int { return d.sectors }

// SectorSize reports the byte size of one sector.
func (d *DiskImage) SectorSize() int { return d.sectorSize }

// VTOC returns the volume table of contents read at construction.
func (d *DiskImage) VTOC() *VTOC { return d.vtoc }

// ReadSectorInto reads one sector into buf, which must hold at least a full
// sector. The read is positional; nothing is cached.
func (d *DiskImage) ReadSectorInto(buf []byte, track, sector int) error {

	if track < 0 || track >= d.tracks {
		return fmt.Errorf("track %d: %w", track, ErrOutOfRange)
	}
	if sector < 0 || sector >= d.sectors {
		return fmt.Errorf("sector %d: %w", sector, ErrOutOfRange)
	}
	if len(buf) < d.sectorSize {
		return fmt.Errorf("buffer %d bytes, want %d: %w", len(buf), d.sectorSize, ErrOutOfRange)
	}

	offset := int64(track*d.sectors+sector) * int64(d.sectorSize)
	if _, err := d.source.ReadAt(buf[:d.sectorSize], offset); err != nil {
		return fmt.Errorf("read T%d S%d: %w", track, sector, err)
	}

	return nil
}

// ReadSector reads one sector and returns exactly sectorSize bytes.
func (d *DiskImage) ReadSector(track, sector int) ([]byte, error) {
	buf := make([]byte, d.sectorSize)
	if err := d.ReadSectorInto(buf, track, sector); err != nil {
		return nil, err
	}
	return buf, nil
}
