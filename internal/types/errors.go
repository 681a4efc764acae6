package types

import (
	"fmt"

	"github.com/simonhull/audiotag/internal/binary"
)

// OutOfBoundsError is returned when attempting to read beyond the available data.
type OutOfBoundsError = binary.OutOfBoundsError

// UnsupportedFormatError is returned when the file is neither FLAC nor MP3.
type UnsupportedFormatError struct {
	Path   string
	Reason string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: unsupported format: %s", e.Path, e.Reason)
}

// CorruptedFileError is returned when the container structure cannot be read:
// a missing magic marker, a missing STREAMINFO block, a Vorbis comment block
// whose length disagrees with its content.
type CorruptedFileError struct {
	Path   string
	Reason string
	Offset int64
	Err    error
}

func (e *CorruptedFileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: corrupted file at offset %d: %s: %v", e.Path, e.Offset, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: corrupted file at offset %d: %s", e.Path, e.Offset, e.Reason)
}

func (e *CorruptedFileError) Unwrap() error {
	return e.Err
}

// Warning represents a non-fatal issue encountered during parsing.
//
// Warnings indicate problems that don't prevent metadata extraction but
// may indicate corrupted or unusual data. Examples include:
//   - A tag walk that stopped at a truncated frame
//   - Invalid encoding in a text frame
//   - A numeric genre outside the ID3v1 table
//
// Warnings are collected in File.Warnings during parsing.
type Warning struct {
	// Stage where the warning occurred
	Stage string // "metadata", "technical", "open"

	// Warning message
	Message string

	// File offset where the issue occurred (0 if not applicable)
	Offset int64
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("%s (at offset %d): %s", w.Stage, w.Offset, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
