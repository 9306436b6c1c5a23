package dos33

import (
	"fmt"
	"strings"
)

// On-disk record sizes. Every decoder demands its exact size; there are no
// partial decodes.
const (
	VTOC_SIZE              = 256
	CATALOG_SECTOR_SIZE    = 256
	FILE_ENTRY_SIZE        = 35
	TRACK_SECTOR_LIST_SIZE = 256
	TRACK_SECTOR_PAIR_SIZE = 2
	FREE_BITMAP_SIZE       = 200
)

// ENTRIES_PER_CATALOG_SECTOR is the number of file descriptive entry slots
// in one catalog sector.
const ENTRIES_PER_CATALOG_SECTOR = 7

// MAX_TS_PAIRS is the number of track/sector pair slots in one T/S list
// sector: (256 - 0x0C) / 2.
const MAX_TS_PAIRS = 122

// First-track-list byte values marking the non-live entry states.
const (
	entryUnusedMarker  = 0x00
	entryDeletedMarker = 0xFF
)

func checkSize(data []byte, want int, what string) error {
	if len(data) != want {
		return fmt.Errorf("%s: got %d bytes, want %d: %w", what, len(data), want, ErrMalformedRecord)
	}
	return nil
}

func le16(data []byte, offset int) int {
	return int(data[offset]) + 256*int(data[offset+1])
}

// VTOC is the volume table of contents, read from track 17 sector 0.
type VTOC struct {
	Data [VTOC_SIZE]byte
}

// DecodeVTOC decodes a VTOC from exactly 256 bytes.
func DecodeVTOC(data []byte) (*VTOC, error) {
	if err := checkSize(data, VTOC_SIZE, "vtoc"); err != nil {
		return nil, err
	}
	v := &VTOC{}
	copy(v.Data[:], data)
	return v, nil
}

// CatalogStart is the location of the first catalog sector.
func (v *VTOC) CatalogStart() (track, sector int) {
	return int(v.Data[0x01]), int(v.Data[0x02])
}

func (v *VTOC) DOSVersion() byte { return v.Data[0x03] }

func (v *VTOC) VolumeID() byte { return v.Data[0x06] }

// MaxTSPairs is the declared number of track/sector pairs per T/S list.
func (v *VTOC) MaxTSPairs() int { return int(v.Data[0x27]) }

func (v *VTOC) Tracks() int { return int(v.Data[0x34]) }

func (v *VTOC) Sectors() int { return int(v.Data[0x35]) }

func (v *VTOC) BytesPerSector() int { return le16(v.Data[:], 0x36) }

// FreeMap copies out the per-track free-sector bitmap (50 tracks, 4 bytes
// each, starting at offset 0x38).
func (v *VTOC) FreeMap() *FreeSectorBitmap {
	m := &FreeSectorBitmap{}
	copy(m.Data[:], v.Data[0x38:0x38+FREE_BITMAP_SIZE])
	return m
}

// FreeSectorBitmap is the VTOC's free-sector map: 4 bytes per track, MSB
// first, so bit 7 of a track's first byte is sector 0. The bit order is
// big-endian even though multi-byte integers elsewhere in the format are
// little-endian; that asymmetry is the original format's.
type FreeSectorBitmap struct {
	Data [FREE_BITMAP_SIZE]byte
}

// DecodeFreeSectorBitmap decodes a bitmap from exactly 200 bytes.
func DecodeFreeSectorBitmap(data []byte) (*FreeSectorBitmap, error) {
	if err := checkSize(data, FREE_BITMAP_SIZE, "free sector bitmap"); err != nil {
		return nil, err
	}
	m := &FreeSectorBitmap{}
	copy(m.Data[:], data)
	return m, nil
}

// IsFree reports whether the given sector is marked free. Tracks beyond the
// 50 the map covers, or sectors beyond its 32 bits per track, are out of
// range.
func (m *FreeSectorBitmap) IsFree(track, sector int) (bool, error) {
	if track < 0 || track >= FREE_BITMAP_SIZE/4 {
		return false, fmt.Errorf("bitmap track %d: %w", track, ErrOutOfRange)
	}
	if sector < 0 || sector >= 32 {
		return false, fmt.Errorf("bitmap sector %d: %w", sector, ErrOutOfRange)
	}
	b := m.Data[track*4+sector/8]
	return b&(1<<uint(7-sector%8)) != 0, nil
}

// CatalogSector holds a forward link to the next catalog sector and seven
// file descriptive entry slots.
type CatalogSector struct {
	Data [CATALOG_SECTOR_SIZE]byte
}

// DecodeCatalogSector decodes a catalog sector from exactly 256 bytes.
func DecodeCatalogSector(data []byte) (*CatalogSector, error) {
	if err := checkSize(data, CATALOG_SECTOR_SIZE, "catalog sector"); err != nil {
		return nil, err
	}
	cs := &CatalogSector{}
	copy(cs.Data[:], data)
	return cs, nil
}

// NextCatalog is the link to the next catalog sector; track 0 ends the
// chain.
func (cs *CatalogSector) NextCatalog() (track, sector int) {
	return int(cs.Data[0x01]), int(cs.Data[0x02])
}

// Entries decodes the seven file descriptive entry slots.
func (cs *CatalogSector) Entries() []*FileEntry {
	out := make([]*FileEntry, 0, ENTRIES_PER_CATALOG_SECTOR)
	for slot := 0; slot < ENTRIES_PER_CATALOG_SECTOR; slot++ {
		pos := 0x0B + FILE_ENTRY_SIZE*slot
		fd, _ := DecodeFileEntry(cs.Data[pos : pos+FILE_ENTRY_SIZE])
		out = append(out, fd)
	}
	return out
}

// FileType is the low seven bits of an entry's type+lock byte.
type FileType byte

const (
	FileTypeTXT FileType = 0x00
	FileTypeINT FileType = 0x01
	FileTypeAPP FileType = 0x02
	FileTypeBIN FileType = 0x04
	FileTypeS   FileType = 0x08
	FileTypeREL FileType = 0x10
	FileTypeA   FileType = 0x20
	FileTypeB   FileType = 0x40
)

var fileTypeMap = map[FileType][2]string{
	FileTypeTXT: {"txt", "ASCII Text"},
	FileTypeINT: {"int", "Integer Basic Program"},
	FileTypeAPP: {"bas", "Applesoft Basic Program"},
	FileTypeBIN: {"bin", "Binary File"},
	FileTypeS:   {"dat", "S File Type"},
	FileTypeREL: {"rel", "Relocatable Object Code"},
	FileTypeA:   {"dat", "A File Type"},
	FileTypeB:   {"dat", "B File Type"},
}

func (ft FileType) String() string {
	if info, ok := fileTypeMap[ft]; ok {
		return info[1]
	}
	return "Unknown"
}

// Ext is the host filename extension used when a file of this type is
// extracted. Types with no specific mapping fall through to "dat".
func (ft FileType) Ext() string {
	if info, ok := fileTypeMap[ft]; ok {
		return info[0]
	}
	return "dat"
}

// Letter is the one-character type tag DOS prints in its catalog listing.
func (ft FileType) Letter() string {
	switch ft {
	case FileTypeTXT:
		return "T"
	case FileTypeINT:
		return "I"
	case FileTypeAPP:
		return "A"
	case FileTypeBIN:
		return "B"
	case FileTypeS:
		return "S"
	case FileTypeREL:
		return "R"
	case FileTypeA:
		return "A"
	case FileTypeB:
		return "B"
	}
	return "?"
}

// FileEntry is one of the seven 35-byte file descriptive entry slots in a
// catalog sector. The first byte keys three mutually exclusive states:
// 0x00 unused (never written), 0xFF deleted (original track relocated into
// the last name byte), anything else live.
type FileEntry struct {
	Data [FILE_ENTRY_SIZE]byte
}

// DecodeFileEntry decodes an entry from exactly 35 bytes.
func DecodeFileEntry(data []byte) (*FileEntry, error) {
	if err := checkSize(data, FILE_ENTRY_SIZE, "file entry"); err != nil {
		return nil, err
	}
	fd := &FileEntry{}
	copy(fd.Data[:], data)
	return fd, nil
}

func (fd *FileEntry) IsUnused() bool { return fd.Data[0x00] == entryUnusedMarker }

func (fd *FileEntry) IsDeleted() bool { return fd.Data[0x00] == entryDeletedMarker }

// IsLive reports whether the entry describes a current, readable file.
func (fd *FileEntry) IsLive() bool { return !fd.IsUnused() && !fd.IsDeleted() }

// TrackSectorListStart is the location of the file's first T/S list sector.
// Meaningless for unused and deleted entries.
func (fd *FileEntry) TrackSectorListStart() (track, sector int) {
	return int(fd.Data[0x00]), int(fd.Data[0x01])
}

func (fd *FileEntry) IsLocked() bool { return fd.Data[0x02]&0x80 != 0 }

func (fd *FileEntry) Type() FileType { return FileType(fd.Data[0x02] & 0x7F) }

// Name decodes the 30-byte high-ASCII name field. For a deleted entry the
// last name byte holds the relocated first track, so only 29 bytes are
// considered.
func (fd *FileEntry) Name() string {
	return DecodeFileName(fd.Data[0x03:0x21], fd.IsDeleted())
}

// NameBytes returns the raw 30-byte name field.
func (fd *FileEntry) NameBytes() []byte { return fd.Data[0x03:0x21] }

// OriginalTrack is the first T/S list track a deleted entry had before
// deletion, recovered from the last name byte. Zero for non-deleted entries.
func (fd *FileEntry) OriginalTrack() int {
	if !fd.IsDeleted() {
		return 0
	}
	return int(fd.Data[0x20])
}

// SectorCount is the file's declared size in sectors, T/S lists included.
func (fd *FileEntry) SectorCount() int { return le16(fd.Data[:], 0x21) }

func (fd *FileEntry) String() string {

	flags := make([]string, 0, 2)
	if fd.IsLocked() {
		flags = append(flags, "locked")
	}
	if fd.IsDeleted() {
		flags = append(flags, "deleted")
	}
	suffix := ""
	if len(flags) > 0 {
		suffix = " (" + strings.Join(flags, ",") + ")"
	}

	return fmt.Sprintf("%s %3d %s%s", fd.Type().Letter(), fd.SectorCount(), fd.Name(), suffix)
}

// TrackSectorPair addresses one data sector of a file. The zero pair means
// "no sector here": a sparse hole inside the file or trailing filler after
// its last sector.
type TrackSectorPair struct {
	Track  byte
	Sector byte
}

// DecodeTrackSectorPair decodes a pair from exactly 2 bytes.
func DecodeTrackSectorPair(data []byte) (TrackSectorPair, error) {
	if err := checkSize(data, TRACK_SECTOR_PAIR_SIZE, "track/sector pair"); err != nil {
		return TrackSectorPair{}, err
	}
	return TrackSectorPair{Track: data[0], Sector: data[1]}, nil
}

func (p TrackSectorPair) IsZero() bool { return p.Track == 0 && p.Sector == 0 }

// TrackSectorList is one sector of a file's track/sector list chain: a
// forward link, the in-file offset of its first data sector, and up to 122
// pairs.
type TrackSectorList struct {
	Data [TRACK_SECTOR_LIST_SIZE]byte
}

// DecodeTrackSectorList decodes a T/S list sector from exactly 256 bytes.
func DecodeTrackSectorList(data []byte) (*TrackSectorList, error) {
	if err := checkSize(data, TRACK_SECTOR_LIST_SIZE, "track/sector list"); err != nil {
		return nil, err
	}
	ts := &TrackSectorList{}
	copy(ts.Data[:], data)
	return ts, nil
}

// NextList is the link to the next T/S list sector; track 0 ends the chain.
func (ts *TrackSectorList) NextList() (track, sector int) {
	return int(ts.Data[0x01]), int(ts.Data[0x02])
}

// SectorOffset is the in-file index of the first data sector this list
// describes.
func (ts *TrackSectorList) SectorOffset() int { return le16(ts.Data[:], 0x05) }

// Pairs decodes all 122 pair slots, trailing zero filler included.
func (ts *TrackSectorList) Pairs() []TrackSectorPair {
	out := make([]TrackSectorPair, 0, MAX_TS_PAIRS)
	for i := 0; i < MAX_TS_PAIRS; i++ {
		pos := 0x0C + 2*i
		out = append(out, TrackSectorPair{Track: ts.Data[pos], Sector: ts.Data[pos+1]})
	}
	return out
}
