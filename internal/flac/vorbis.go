package flac

import (
	"errors"
	"io"

	"github.com/simonhull/audiotag/internal/vorbis"
)

// ReadVorbisComment walks the metadata blocks of r and decodes the first
// VORBIS_COMMENT block. The comment decoder must consume the block exactly;
// anything else is reported as a *LengthMismatchError.
func ReadVorbisComment(r io.Reader) (vorbis.Comments, error) {
	var comments vorbis.Comments
	err := walk(r, func(h BlockHeader, body io.Reader) (bool, error) {
		if h.Type != TypeVorbisComment {
			return false, nil
		}
		payload, err := readBody(h, body)
		if err != nil {
			return true, err
		}

		decoded, n, err := vorbis.Decode(payload)
		if err != nil {
			return true, err
		}
		if n != len(payload) {
			return true, &LengthMismatchError{Type: h.Type, Declared: h.Length, Consumed: n}
		}
		comments = decoded
		return true, nil
	})
	if errors.Is(err, errLastBlock) {
		return vorbis.Comments{}, ErrTagNotFound
	}
	return comments, err
}
