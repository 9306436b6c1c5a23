package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/paleotronic/a2catalog/dos33"
	"github.com/paleotronic/a2catalog/loggy"
)

func printCatalog(w io.Writer, dsk *dos33.DiskImage, withDeleted bool) error {

	entries, err := dsk.Catalog()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "DISK VOLUME %d\n\n", dsk.VTOC().VolumeID())
	fmt.Fprintf(w, "%2s %1s %3s  %s\n", "RO", "T", "SEC", "NAME")

	for _, fd := range entries {
		if fd.IsDeleted() && !withDeleted {
			continue
		}
		locked := " "
		if fd.IsLocked() {
			locked = "*"
		}
		name := fd.Name()
		if fd.IsDeleted() {
			name += " (deleted)"
		}
		fmt.Fprintf(w, "%2s %1s %3d  %s\n", locked, fd.Type().Letter(), fd.SectorCount(), name)
	}

	return nil
}

func printFreeMap(w io.Writer, dsk *dos33.DiskImage) error {

	fm := dsk.VTOC().FreeMap()

	free := 0
	used := 0
	for t := 0; t < dsk.Tracks(); t++ {
		line := ""
		for s := 0; s < dsk.Sectors(); s++ {
			f, err := fm.IsFree(t, s)
			if err != nil {
				return err
			}
			if f {
				line += "."
				free++
			} else {
				line += "#"
				used++
			}
		}
		fmt.Fprintf(w, "Track %2d: %s\n", t, line)
	}

	fmt.Fprintf(w, "\nUSED: %-20d FREE: %-20d\n", used, free)

	return nil
}

var hostNameRegex = regexp.MustCompile("[^A-Za-z0-9_.,-]")

// hostFilename maps a catalog name to something safe on a host filesystem.
func hostFilename(name string, t dos33.FileType) string {
	base := hostNameRegex.ReplaceAllString(name, "_")
	if base == "" {
		base = "UNNAMED"
	}
	return base + "." + t.Ext()
}

// decodeForExport returns the decoded representation of a file: listings for
// BASIC types, 7-bit text for TXT, the payload after the header for BIN and
// REL, raw sectors for anything else.
func decodeForExport(dsk *dos33.DiskImage, fd *dos33.FileEntry) ([]byte, error) {

	switch fd.Type() {
	case dos33.FileTypeTXT:
		tf, err := dsk.ReadTextFile(fd)
		if err != nil {
			return nil, err
		}
		return []byte(tf.Text), nil
	case dos33.FileTypeAPP:
		bf, err := dsk.ReadApplesoftBasicFile(fd)
		if err != nil {
			return nil, err
		}
		return []byte(bf.String()), nil
	case dos33.FileTypeINT:
		bf, err := dsk.ReadIntegerBasicFile(fd)
		if err != nil {
			return nil, err
		}
		return []byte(bf.String()), nil
	case dos33.FileTypeBIN:
		bf, err := dsk.ReadBinaryFile(fd)
		if err != nil {
			return nil, err
		}
		return bf.Data, nil
	case dos33.FileTypeREL:
		rf, err := dsk.ReadRelocatableFile(fd)
		if err != nil {
			return nil, err
		}
		return rf.Code, nil
	}

	return dsk.ReadFile(fd)
}

func matchName(pattern, name string) bool {
	if pattern == "*" {
		return true
	}
	ok, err := filepath.Match(strings.ToUpper(pattern), name)
	return err == nil && ok
}

func extractFiles(dsk *dos33.DiskImage, pattern, outdir string, raw bool) (int, error) {

	l := loggy.Get(0)

	entries, err := dsk.Catalog()
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(outdir, 0755); err != nil {
		return 0, err
	}

	count := 0
	for _, fd := range entries {
		if !fd.IsLive() || !matchName(pattern, fd.Name()) {
			continue
		}

		var data []byte
		target := filepath.Join(outdir, hostFilename(fd.Name(), fd.Type()))
		if raw {
			data, err = dsk.ReadFile(fd)
			target = filepath.Join(outdir, hostNameRegex.ReplaceAllString(fd.Name(), "_")+".dat")
		} else {
			data, err = decodeForExport(dsk, fd)
		}
		if err != nil {
			if errors.Is(err, dos33.ErrMalformedRecord) || errors.Is(err, dos33.ErrLengthMismatch) {
				l.Errorf("Skipping %s: %v", fd.Name(), err)
				continue
			}
			return count, err
		}
		if err := os.WriteFile(target, data, 0644); err != nil {
			return count, err
		}
		l.Logf("Extracted %s -> %s (%d bytes)", fd.Name(), target, len(data))
		count++
	}

	if count == 0 && pattern != "*" {
		return 0, fmt.Errorf("no files matching %s", pattern)
	}

	return count, nil
}
