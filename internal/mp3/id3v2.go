package mp3

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	binutil "github.com/simonhull/audiotag/internal/binary"
	"github.com/simonhull/audiotag/internal/id3"
	"github.com/simonhull/audiotag/internal/types"
)

const (
	id3HeaderSize = 10
	id3FooterSize = 10
)

// Tag header flags.
const (
	flagUnsync         = 0x80
	flagExtendedHeader = 0x40 // compression in ID3v2.2
	flagFooter         = 0x10
)

// tagHeader is the 10-byte header at the start of an ID3v2 tag.
type tagHeader struct {
	Version  id3.Version
	Revision byte
	Flags    byte
	Size     uint32 // tag size excluding header and footer
}

// end returns the offset of the first byte after the tag.
func (h tagHeader) end() int64 {
	end := int64(id3HeaderSize) + int64(h.Size)
	if h.Version == id3.V24 && h.Flags&flagFooter != 0 {
		end += id3FooterSize
	}
	return end
}

// errNoTag is returned when the file does not start with an ID3v2 tag.
var errNoTag = errors.New("no ID3v2 tag")

// readTagHeader reads the ID3v2 header at offset 0.
func readTagHeader(sr *binutil.SafeReader) (tagHeader, error) {
	buf, err := sr.ReadBytes(id3HeaderSize, 0, "ID3v2 header")
	if err != nil {
		return tagHeader{}, errNoTag
	}
	if string(buf[0:3]) != "ID3" {
		return tagHeader{}, errNoTag
	}

	size, _ := binutil.Synchsafe(buf[6:10])
	h := tagHeader{
		Version:  id3.Version(buf[3]),
		Revision: buf[4],
		Flags:    buf[5],
		Size:     size,
	}
	if !h.Version.Valid() {
		return h, &types.UnsupportedFormatError{
			Path:   sr.Path(),
			Reason: fmt.Sprintf("unsupported ID3v2 version: 2.%d", buf[3]),
		}
	}
	return h, nil
}

// TagInfo describes an ID3v2 tag read by ReadTag.
type TagInfo struct {
	Present    bool // false when the file does not start with "ID3"
	Version    id3.Version
	Size       uint32 // declared size, excluding header and footer
	End        int64  // offset of the first byte after the tag
	Compressed bool   // ID3v2.2 compressed tag, frames not decoded
	Clamped    bool   // declared size ran past the end of the file
	Result     id3.Result
	Errors     []*id3.FrameError
}

// ReadTag decodes the ID3v2 tag at the start of r into sink. The logger is
// taken from ctx.
//
// An unsupported version or an unreadable body is returned as an error; the
// returned TagInfo still holds what the header told.
func ReadTag(ctx context.Context, r io.ReaderAt, size int64, path string, sink id3.Sink) (TagInfo, error) {
	sr := binutil.NewSafeReader(r, size, path)

	h, err := readTagHeader(sr)
	if errors.Is(err, errNoTag) {
		return TagInfo{}, nil
	}
	info := TagInfo{Present: true, Version: h.Version, Size: h.Size, End: h.end()}
	if err != nil {
		return info, err
	}

	log := zerolog.Ctx(ctx).With().Stringer("version", h.Version).Uint32("tag_size", h.Size).Logger()

	if h.Version == id3.V22 && h.Flags&flagExtendedHeader != 0 {
		info.Compressed = true
		return info, nil
	}

	// Clamp the body to the file; a short body still yields the frames it holds.
	bodySize := int64(h.Size)
	if avail := sr.Size() - id3HeaderSize; bodySize > avail {
		info.Clamped = true
		bodySize = avail
	}
	if bodySize == 0 {
		return info, nil
	}
	body, err := sr.ReadBytes(int(bodySize), id3HeaderSize, "ID3v2 tag body")
	if err != nil {
		return info, err
	}

	// From v2.4 unsynchronisation is applied per frame.
	if h.Flags&flagUnsync != 0 && h.Version != id3.V24 {
		body = id3.RemoveUnsync(body)
	}

	decoder := id3.NewDecoder(log)
	res, err := decoder.Decode(binutil.NewCursor(body), len(body), h.Version, h.Flags&flagExtendedHeader != 0, sink)
	info.Result = res
	info.Errors = frameErrors(err)

	log.Debug().
		Int("frames", res.Frames).
		Int("skipped", res.Skipped).
		Stringer("stop", res.Stop).
		Msg("decoded ID3v2 tag")

	return info, nil
}

// parseID3v2 decodes the ID3v2 tag at the start of the file into file.Tags.
// It returns the offset where audio data starts (0 without a tag).
// Problems inside the tag body become warnings.
func parseID3v2(ctx context.Context, r io.ReaderAt, size int64, file *types.File) (int64, error) {
	info, err := ReadTag(ctx, r, size, file.Path, &tagSink{file: file})
	if err != nil {
		return info.End, err
	}

	if info.Compressed {
		file.Warn("metadata", 5, "compressed ID3v2.2 tag skipped")
	}
	if info.Clamped {
		file.Warn("metadata", id3HeaderSize, "tag size %d exceeds file size", info.Size)
	}
	for _, fe := range info.Errors {
		file.Warn("metadata", id3HeaderSize+int64(fe.Offset), "%s frame: %v", fe.ID, fe.Err)
	}
	switch info.Result.Stop {
	case id3.StopTruncated, id3.StopBadSize:
		file.Warn("metadata", id3HeaderSize+int64(info.Result.Consumed), "frame walk stopped early: %s", info.Result.Stop)
	}

	return info.End, nil
}

// frameErrors unpacks the joined errors returned by id3.Decoder.Decode.
func frameErrors(err error) []*id3.FrameError {
	if err == nil {
		return nil
	}
	var out []*id3.FrameError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			var fe *id3.FrameError
			if errors.As(e, &fe) {
				out = append(out, fe)
			}
		}
		return out
	}
	var fe *id3.FrameError
	if errors.As(err, &fe) {
		out = append(out, fe)
	}
	return out
}
