// Package vorbis decodes Vorbis comment blocks.
//
// A Vorbis comment block is a vendor string followed by a list of UTF-8
// "KEY=VALUE" strings, each prefixed by a 32-bit little-endian length.
package vorbis

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	bin "github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/types"
)

// Comments is a decoded Vorbis comment block.
type Comments struct {
	Vendor  string
	Entries []string // raw "KEY=VALUE" strings in block order
}

// Decode parses a Vorbis comment block and returns the number of bytes it
// occupied. Trailing bytes after the last comment are not consumed, so the
// caller can compare the count with the length it expected.
func Decode(payload []byte) (Comments, int, error) {
	c := bin.NewCursor(payload)

	vendor, err := readString(c, "vendor string")
	if err != nil {
		return Comments{}, c.Position(), err
	}

	raw, err := c.ReadN(4, "comment count")
	if err != nil {
		return Comments{}, c.Position(), err
	}
	count := binary.LittleEndian.Uint32(raw)

	// Each comment needs at least its 4-byte length.
	if int64(count)*4 > int64(c.Remaining()) {
		return Comments{}, c.Position(), fmt.Errorf("comment count %d exceeds block size", count)
	}

	comments := Comments{Vendor: vendor, Entries: make([]string, 0, count)}
	for i := uint32(0); i < count; i++ {
		entry, err := readString(c, fmt.Sprintf("comment %d", i))
		if err != nil {
			return comments, c.Position(), err
		}
		comments.Entries = append(comments.Entries, entry)
	}

	return comments, c.Position(), nil
}

func readString(c *bin.Cursor, what string) (string, error) {
	raw, err := c.ReadN(4, what+" length")
	if err != nil {
		return "", err
	}
	b, err := c.ReadN(int(binary.LittleEndian.Uint32(raw)), what)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ParseComment splits a "KEY=VALUE" comment and maps it onto file's tags.
//
// Vorbis comment field names are case-insensitive; keys are stored upper-cased
// in the raw tags map.
func ParseComment(comment string, file *types.File) error {
	key, value, ok := strings.Cut(comment, "=")
	if !ok {
		return fmt.Errorf("missing '=' in comment: %s", comment)
	}
	if key == "" {
		return fmt.Errorf("empty field name in comment: %s", comment)
	}

	key = strings.ToUpper(key)
	tags := &file.Tags

	switch key {
	case "TITLE":
		tags.Title = value
	case "ARTIST":
		if tags.Artist == "" {
			tags.Artist = value
		}
		tags.Artists = append(tags.Artists, value)
	case "ALBUM":
		tags.Album = value
	case "ALBUMARTIST":
		tags.AlbumArtist = value
	case "DATE":
		tags.Date = value
		if len(value) >= 4 {
			if year, err := strconv.Atoi(value[:4]); err == nil && year > 0 {
				tags.Year = year
			}
		}
	case "TRACKNUMBER":
		// "3" or "3/12"
		number, total, _ := strings.Cut(value, "/")
		tags.TrackNumber = atoi(number)
		if total != "" {
			tags.TrackTotal = atoi(total)
		}
	case "TRACKTOTAL", "TOTALTRACKS":
		tags.TrackTotal = atoi(value)
	case "DISCNUMBER":
		number, total, _ := strings.Cut(value, "/")
		tags.DiscNumber = atoi(number)
		if total != "" {
			tags.DiscTotal = atoi(total)
		}
	case "DISCTOTAL", "TOTALDISCS":
		tags.DiscTotal = atoi(value)
	case "GENRE":
		tags.Genres = append(tags.Genres, value)
	case "COMPOSER":
		tags.Composers = append(tags.Composers, value)
	case "COMMENT", "DESCRIPTION":
		tags.Comments = append(tags.Comments, value)
	case "LYRICS":
		tags.Lyrics = value
	case "COPYRIGHT":
		tags.Copyright = value
	case "ORGANIZATION", "LABEL", "PUBLISHER":
		tags.Publisher = value
	case "ENCODER", "ENCODED-BY":
		tags.Encoder = value
	}

	tags.Add(key, value)
	return nil
}

// atoi parses a number leniently; anything unparsable yields 0.
func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
