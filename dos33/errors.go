package dos33

import "errors"

// Every failure mode surfaces as one of these sentinels, usually wrapped
// with context via fmt.Errorf("...: %w", ...). Callers match with errors.Is.
var (
	// ErrMalformedRecord is returned by the fixed-size record decoders when
	// the supplied slice is not exactly the record's on-disk size, or when a
	// variable-length structure (BASIC line chain, relocation dictionary)
	// ends mid-entry.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrOutOfRange is returned for a track/sector outside the disk
	// geometry, a track outside the free-sector bitmap, or a destination
	// buffer smaller than a sector.
	ErrOutOfRange = errors.New("out of range")

	// ErrTypeMismatch is returned when a typed decoder is invoked against an
	// entry whose declared file type does not match.
	ErrTypeMismatch = errors.New("file type mismatch")

	// ErrEntryNotLive is returned when file data is requested for an unused
	// or deleted catalog entry.
	ErrEntryNotLive = errors.New("entry is unused or deleted")

	// ErrLengthMismatch is returned when a file's internal length header is
	// inconsistent with the bytes actually present. Binary files are exempt
	// (they clamp); BASIC and relocatable files are not.
	ErrLengthMismatch = errors.New("declared length exceeds available data")
)
