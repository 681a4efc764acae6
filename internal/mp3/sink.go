package mp3

import (
	"strconv"
	"strings"

	"github.com/simonhull/audiotag/internal/types"
)

// tagSink maps decoded ID3v2 fields onto a File. Every value is also kept in
// the raw tags under its ID3v2.3 frame ID.
type tagSink struct {
	file *types.File
}

func (s *tagSink) AddTextField(id, value string) {
	tags := &s.file.Tags
	tags.Add(id, value)

	switch id {
	case "TIT2":
		tags.Title = value
	case "TPE1":
		for _, artist := range splitMulti(value) {
			if tags.Artist == "" {
				tags.Artist = artist
			}
			tags.Artists = types.AppendUnique(tags.Artists, artist)
		}
	case "TALB":
		tags.Album = value
	case "TPE2":
		tags.AlbumArtist = value
	case "TCOM":
		for _, composer := range splitMulti(value) {
			tags.Composers = types.AppendUnique(tags.Composers, composer)
		}
	case "TYER":
		if year, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			tags.Year = year
		}
		if tags.Date == "" {
			tags.Date = value
		}
	case "TDRC":
		tags.Date = value
		if len(value) >= 4 {
			if year, err := strconv.Atoi(value[:4]); err == nil {
				tags.Year = year
			}
		}
	case "TPOS":
		number, total, _ := strings.Cut(value, "/")
		tags.DiscNumber = s.number("TPOS", number)
		if total != "" {
			tags.DiscTotal = s.number("TPOS", total)
		}
	case "TCOP":
		tags.Copyright = value
	case "TPUB":
		tags.Publisher = value
	case "TENC", "TSSE":
		if tags.Encoder == "" {
			tags.Encoder = value
		}
	}
}

func (s *tagSink) AddComment(value string) {
	s.file.Tags.Comments = append(s.file.Tags.Comments, value)
	s.file.Tags.Add("COMM", value)
}

func (s *tagSink) AddGenre(value string) {
	s.file.Tags.Genres = types.AppendUnique(s.file.Tags.Genres, value)
	s.file.Tags.Add("TCON", value)
}

func (s *tagSink) AddTrackNumber(value string) {
	s.file.Tags.TrackNumber = s.number("TRCK", value)
	s.file.Tags.Add("TRCK", value)
}

func (s *tagSink) AddTrackCount(value string) {
	s.file.Tags.TrackTotal = s.number("TRCK", value)
}

// number parses a numeric field, recording a warning when it is not a number.
func (s *tagSink) number(id, value string) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		s.file.Warn("metadata", 0, "%s: invalid number %q", id, value)
		return 0
	}
	return n
}

// splitMulti splits ID3v2.4 NUL-separated multi-value text. Earlier versions
// use " / " by convention, which is left alone.
func splitMulti(value string) []string {
	parts := strings.Split(value, "\x00")
	out := parts[:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
