package audiotag

import (
	"github.com/simonhull/audiotag/internal/flac"
	"github.com/simonhull/audiotag/internal/types"
)

// OutOfBoundsError is returned when a read would go past the end of the data.
type OutOfBoundsError = types.OutOfBoundsError

// UnsupportedFormatError is returned when the file is neither FLAC nor MP3.
type UnsupportedFormatError = types.UnsupportedFormatError

// CorruptedFileError is returned when a container cannot be read.
type CorruptedFileError = types.CorruptedFileError

// Warning is a non-fatal issue encountered during parsing.
type Warning = types.Warning

// FLAC structural errors, matched with errors.Is against a CorruptedFileError.
var (
	ErrNotFLAC            = flac.ErrNotFLAC
	ErrStreamInfoNotFound = flac.ErrStreamInfoNotFound
)
