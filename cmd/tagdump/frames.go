package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/simonhull/audiotag"
	"github.com/simonhull/audiotag/internal/flac"
	"github.com/simonhull/audiotag/internal/mp3"
)

func newFramesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "frames FILE",
		Short: "Dump ID3v2 frames or FLAC metadata block headers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			stat, err := f.Stat()
			if err != nil {
				return err
			}

			format, err := audiotag.DetectFormat(f, stat.Size(), args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			switch format {
			case audiotag.FormatFLAC:
				return dumpFLAC(w, f, stat.Size())
			default:
				ctx := a.log.WithContext(cmd.Context())
				info, err := mp3.ReadTag(ctx, f, stat.Size(), args[0], &printSink{w: w})
				if err != nil {
					return err
				}
				printTagInfo(w, info)
				return nil
			}
		},
	}
}

func dumpFLAC(w io.Writer, r io.ReaderAt, size int64) error {
	headers, err := flac.Headers(bufio.NewReader(io.NewSectionReader(r, 0, size)))
	if err != nil {
		return err
	}

	offset := int64(len(flac.Magic))
	for _, h := range headers {
		last := ""
		if h.IsLast {
			last = " (last)"
		}
		fmt.Fprintf(w, "%8d  %-14s type=%-3d length=%d%s\n", offset, h.Type, h.RawType, h.Length, last)
		offset += 4 + int64(h.Length)
	}

	info, err := flac.ReadStreamInfo(bufio.NewReader(io.NewSectionReader(r, 0, size)), size)
	if err != nil {
		return err
	}
	if info.Valid {
		fmt.Fprintf(w, "STREAMINFO: rate=%d (raw %d) channels=%d bits=%d samples=%d duration=%ds bitrate=%dkbps\n",
			info.StandardSampleRate, info.SampleRate, info.Channels, info.BitsPerSample,
			info.TotalSamples, info.DurationSeconds, info.BitrateKbps)
	}
	return nil
}

func printTagInfo(w io.Writer, info mp3.TagInfo) {
	if !info.Present {
		fmt.Fprintln(w, "no ID3v2 tag")
		return
	}
	fmt.Fprintf(w, "%s, %d bytes, audio at %d\n", info.Version, info.Size, info.End)
	if info.Compressed {
		fmt.Fprintln(w, "compressed tag, frames not decoded")
		return
	}
	fmt.Fprintf(w, "frames=%d skipped=%d consumed=%d stop=%s\n",
		info.Result.Frames, info.Result.Skipped, info.Result.Consumed, info.Result.Stop)
	for _, fe := range info.Errors {
		fmt.Fprintf(w, "error: %v\n", fe)
	}
}

// printSink writes every decoded field as it arrives.
type printSink struct {
	w io.Writer
}

func (s *printSink) AddTextField(id, value string) { fmt.Fprintf(s.w, "%s  %q\n", id, value) }
func (s *printSink) AddComment(value string)       { fmt.Fprintf(s.w, "COMM  %q\n", value) }
func (s *printSink) AddGenre(value string)         { fmt.Fprintf(s.w, "TCON  %q\n", value) }
func (s *printSink) AddTrackNumber(value string)   { fmt.Fprintf(s.w, "TRCK  number %q\n", value) }
func (s *printSink) AddTrackCount(value string)    { fmt.Fprintf(s.w, "TRCK  count %q\n", value) }
