package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/simonhull/audiotag"
	"github.com/simonhull/audiotag/internal/cliconfig"
)

// fileReport is the JSON shape of one file.
type fileReport struct {
	Path     string              `json:"path"`
	Format   string              `json:"format"`
	Size     int64               `json:"size"`
	Title    string              `json:"title,omitempty"`
	Artist   string              `json:"artist,omitempty"`
	Album    string              `json:"album,omitempty"`
	Genres   []string            `json:"genres,omitempty"`
	Track    int                 `json:"track,omitempty"`
	Tracks   int                 `json:"track_total,omitempty"`
	Year     int                 `json:"year,omitempty"`
	Comments []string            `json:"comments,omitempty"`
	Raw      map[string][]string `json:"raw,omitempty"`
	Audio    audioReport         `json:"audio"`
	Warnings []string            `json:"warnings,omitempty"`
}

type audioReport struct {
	Codec      string  `json:"codec,omitempty"`
	Duration   float64 `json:"duration_seconds"`
	SampleRate int     `json:"sample_rate,omitempty"`
	Channels   int     `json:"channels,omitempty"`
	BitDepth   int     `json:"bit_depth,omitempty"`
	Bitrate    int     `json:"bitrate,omitempty"`
	Lossless   bool    `json:"lossless,omitempty"`
	VBR        bool    `json:"vbr,omitempty"`
}

func newReport(f *audiotag.File) fileReport {
	r := fileReport{
		Path:     f.Path,
		Format:   f.Format.String(),
		Size:     f.Size,
		Title:    f.Tags.Title,
		Artist:   f.Tags.Artist,
		Album:    f.Tags.Album,
		Genres:   f.Tags.Genres,
		Track:    f.Tags.TrackNumber,
		Tracks:   f.Tags.TrackTotal,
		Year:     f.Tags.Year,
		Comments: f.Tags.Comments,
		Audio: audioReport{
			Codec:      f.Audio.Codec,
			Duration:   f.Audio.Duration.Seconds(),
			SampleRate: f.Audio.SampleRate,
			Channels:   f.Audio.Channels,
			BitDepth:   f.Audio.BitDepth,
			Bitrate:    f.Audio.Bitrate,
			Lossless:   f.Audio.Lossless,
			VBR:        f.Audio.VBR,
		},
	}
	if f.Tags.Len() > 0 {
		r.Raw = make(map[string][]string, f.Tags.Len())
		for key, values := range f.Tags.All() {
			r.Raw[key] = values
		}
	}
	for _, w := range f.Warnings {
		r.Warnings = append(r.Warnings, w.String())
	}
	return r
}

// render writes files in the configured output format.
func render(w io.Writer, output string, files ...*audiotag.File) error {
	if output == cliconfig.OutputJSON {
		enc := json.NewEncoder(w)
		for _, f := range files {
			if err := enc.Encode(newReport(f)); err != nil {
				return err
			}
		}
		return nil
	}

	for i, f := range files {
		if i > 0 {
			fmt.Fprintln(w)
		}
		renderText(w, f)
	}
	return nil
}

func renderText(w io.Writer, f *audiotag.File) {
	fmt.Fprintf(w, "%s (%s, %d bytes)\n", f.Path, f.Format, f.Size)

	field := func(name, value string) {
		if value != "" {
			fmt.Fprintf(w, "  %-10s %s\n", name+":", value)
		}
	}
	field("Title", f.Tags.Title)
	field("Artist", f.Tags.Artist)
	field("Album", f.Tags.Album)
	field("Genre", strings.Join(f.Tags.Genres, ", "))
	if f.Tags.TrackNumber > 0 {
		track := fmt.Sprint(f.Tags.TrackNumber)
		if f.Tags.TrackTotal > 0 {
			track += fmt.Sprintf("/%d", f.Tags.TrackTotal)
		}
		field("Track", track)
	}
	if f.Tags.Year > 0 {
		field("Year", fmt.Sprint(f.Tags.Year))
	}
	for _, c := range f.Tags.Comments {
		field("Comment", c)
	}
	field("Audio", f.Audio.String())

	for _, warning := range f.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warning)
	}
}
