package dos33

import (
	"bytes"
	"fmt"
	"io"
)

// Catalog and T/S list chains are linked lists with no length field, and a
// damaged image can loop them back on themselves. Every walk keeps a visited
// set and stops at the first revisited sector, so traversal always
// terminates with whatever was reachable.

func chainKey(track, sector int) int { return 256*track + sector }

// CatalogSectors walks the catalog chain from the VTOC's first-catalog
// pointer and returns the sectors in chain order.
func (d *DiskImage) CatalogSectors() ([]*CatalogSector, error) {

	var out []*CatalogSector

	track, sector := d.vtoc.CatalogStart()
	visited := make(map[int]bool)

	for track != 0 {
		if visited[chainKey(track, sector)] {
			break // circular catalog chain
		}
		visited[chainKey(track, sector)] = true

		raw, err := d.ReadSector(track, sector)
		if err != nil {
			return out, fmt.Errorf("catalog chain: %w", err)
		}
		cs, err := DecodeCatalogSector(raw)
		if err != nil {
			return out, fmt.Errorf("catalog chain: %w", err)
		}

		out = append(out, cs)
		track, sector = cs.NextCatalog()
	}

	return out, nil
}

// Catalog enumerates the file descriptive entries of every catalog sector,
// in slot order. Unused slots are filtered out; deleted entries are kept, so
// callers wanting active files only must check IsDeleted themselves.
func (d *DiskImage) Catalog() ([]*FileEntry, error) {

	sectors, err := d.CatalogSectors()
	if err != nil {
		return nil, err
	}

	var files []*FileEntry
	for _, cs := range sectors {
		for _, fd := range cs.Entries() {
			if fd.IsUnused() {
				continue
			}
			files = append(files, fd)
		}
	}

	return files, nil
}

// NamedEntry finds the live catalog entry with the given decoded name.
func (d *DiskImage) NamedEntry(name string) (*FileEntry, error) {

	files, err := d.Catalog()
	if err != nil {
		return nil, err
	}

	for _, fd := range files {
		if fd.IsLive() && fd.Name() == name {
			return fd, nil
		}
	}

	return nil, fmt.Errorf("no file named %q", name)
}

// TrackSectorLists walks a live entry's T/S list chain and returns the list
// sectors in chain order. Unused and deleted entries are refused.
func (d *DiskImage) TrackSectorLists(fd *FileEntry) ([]*TrackSectorList, error) {

	if !fd.IsLive() {
		return nil, fmt.Errorf("%q: %w", fd.Name(), ErrEntryNotLive)
	}

	var out []*TrackSectorList

	track, sector := fd.TrackSectorListStart()
	visited := make(map[int]bool)

	for track != 0 {
		if visited[chainKey(track, sector)] {
			break // circular T/S list chain
		}
		visited[chainKey(track, sector)] = true

		raw, err := d.ReadSector(track, sector)
		if err != nil {
			return out, fmt.Errorf("t/s list chain: %w", err)
		}
		ts, err := DecodeTrackSectorList(raw)
		if err != nil {
			return out, fmt.Errorf("t/s list chain: %w", err)
		}

		out = append(out, ts)
		track, sector = ts.NextList()
	}

	return out, nil
}

// WriteFileTo materializes a live entry's byte stream into w: the file's
// data sectors in T/S list order, zero-filled where a pair is (0,0), and
// truncated or zero-padded to exactly SectorCount * sector size bytes.
// Output is byte-identical to ReadFile on the same entry.
func (d *DiskImage) WriteFileTo(fd *FileEntry, w io.Writer) (int, error) {

	if !fd.IsLive() {
		return 0, fmt.Errorf("%q: %w", fd.Name(), ErrEntryNotLive)
	}

	total := fd.SectorCount() * d.sectorSize
	remaining := total
	zeros := make([]byte, d.sectorSize)
	buf := make([]byte, d.sectorSize)

	track, sector := fd.TrackSectorListStart()
	visited := make(map[int]bool)

	for track != 0 && remaining > 0 {
		if visited[chainKey(track, sector)] {
			break
		}
		visited[chainKey(track, sector)] = true

		if err := d.ReadSectorInto(buf, track, sector); err != nil {
			return total - remaining, fmt.Errorf("t/s list chain: %w", err)
		}
		ts, err := DecodeTrackSectorList(buf)
		if err != nil {
			return total - remaining, fmt.Errorf("t/s list chain: %w", err)
		}

		for _, pair := range ts.Pairs() {
			if remaining <= 0 {
				break
			}
			n := d.sectorSize
			if remaining < n {
				n = remaining
			}
			if pair.IsZero() {
				// sparse hole (or trailing filler still inside the
				// declared sector count)
				if _, err := w.Write(zeros[:n]); err != nil {
					return total - remaining, err
				}
			} else {
				sec, err := d.ReadSector(int(pair.Track), int(pair.Sector))
				if err != nil {
					return total - remaining, err
				}
				if _, err := w.Write(sec[:n]); err != nil {
					return total - remaining, err
				}
			}
			remaining -= n
		}

		track, sector = ts.NextList()
	}

	// chain shorter than the declared sector count: pad with zeros
	for remaining > 0 {
		n := d.sectorSize
		if remaining < n {
			n = remaining
		}
		if _, err := w.Write(zeros[:n]); err != nil {
			return total - remaining, err
		}
		remaining -= n
	}

	return total, nil
}

// ReadFile materializes a live entry's byte stream into memory.
func (d *DiskImage) ReadFile(fd *FileEntry) ([]byte, error) {

	var buf bytes.Buffer
	buf.Grow(fd.SectorCount() * d.sectorSize)

	if _, err := d.WriteFileTo(fd, &buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
