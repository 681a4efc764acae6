package id3

import "fmt"

// Version identifies the ID3v2 revision a tag body was written with.
type Version uint8

const (
	V22 Version = 2 // ID3v2.2: 3-byte frame IDs and sizes, no frame flags
	V23 Version = 3 // ID3v2.3: 4-byte IDs, plain big-endian sizes, 2 flag bytes
	V24 Version = 4 // ID3v2.4: as v2.3 with synchsafe frame sizes
)

// layout describes the frame header shape of a version.
type layout struct {
	idWidth   int
	sizeWidth int
	flagBytes int
	synchsafe bool
}

var layouts = map[Version]layout{
	V22: {idWidth: 3, sizeWidth: 3, flagBytes: 0},
	V23: {idWidth: 4, sizeWidth: 4, flagBytes: 2},
	V24: {idWidth: 4, sizeWidth: 4, flagBytes: 2, synchsafe: true},
}

// headerSize returns the size of a frame header for this layout.
func (l layout) headerSize() int {
	return l.idWidth + l.sizeWidth + l.flagBytes
}

// Valid reports whether v is a supported version.
func (v Version) Valid() bool {
	_, ok := layouts[v]
	return ok
}

func (v Version) String() string {
	return fmt.Sprintf("ID3v2.%d", uint8(v))
}
