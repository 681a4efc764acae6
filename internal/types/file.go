// Package types provides core data structures for audio file metadata.
//
// This package defines the File, Tags, and AudioInfo types that represent
// parsed audio file information for the supported formats.
package types

import (
	"fmt"
	"io"
)

// File represents an opened audio file with parsed metadata.
//
// File provides access to format-agnostic metadata (Tags) and technical
// audio properties (AudioInfo).
//
// Always call Close() when done to release file resources:
//
//	file, err := audiotag.Open("song.flac")
//	if err != nil {
//		return err
//	}
//	defer file.Close()
type File struct {
	Reader_  io.ReaderAt //nolint:revive // Underscore indicates internal/unexported semantics
	Path     string
	Warnings []Warning
	Tags     Tags
	Audio    AudioInfo
	Format   Format
	Size     int64
}

// Warn appends a warning.
func (f *File) Warn(stage string, offset int64, format string, args ...any) {
	f.Warnings = append(f.Warnings, Warning{
		Stage:   stage,
		Message: fmt.Sprintf(format, args...),
		Offset:  offset,
	})
}

// Close releases the underlying reader if it is closable.
func (f *File) Close() error {
	if closer, ok := f.Reader_.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
