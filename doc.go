// Package audiotag reads tags and audio properties from FLAC and MP3 files.
//
// # Quick Start
//
// Reading metadata from an audio file:
//
//	file, err := audiotag.Open("song.flac")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer file.Close()
//
//	fmt.Printf("%s - %s\n", file.Tags.Artist, file.Tags.Title)
//	fmt.Printf("Duration: %s\n", file.Audio.Duration)
//
// # Supported Formats
//
//   - FLAC: STREAMINFO and Vorbis comments
//   - MP3: ID3v2.2, ID3v2.3 and ID3v2.4 text and comment frames, MPEG
//     frame header and Xing/VBRI duration
//
// ID3v2.2 frames are translated to their ID3v2.3 equivalents, so a title is
// always found under "TIT2" whatever version the tag was written with.
//
// # Graceful Degradation
//
// A broken field does not stop a file from opening. Frames that fail to
// decode, tag walks that stop at a truncated frame and numeric genres outside
// the ID3v1 table are recorded in File.Warnings. When a container cannot be
// read at all, Open still returns a File with the detected format and a
// warning, unless WithStrictParsing is set.
//
//	for _, w := range file.Warnings {
//		log.Printf("warning: %s", w)
//	}
//
// # Raw Tags
//
// Every decoded value is kept under its format-specific key:
//
//	for key, values := range file.Tags.All() {
//		fmt.Printf("%s: %v\n", key, values)
//	}
//
// # Concurrency
//
// OpenMany parses files in parallel and returns them in input order:
//
//	files, err := audiotag.OpenMany(ctx, paths, audiotag.WithConcurrency(4))
//
// # Logging
//
// The library is silent by default. Pass a zerolog.Logger with WithLogger to
// see skipped frames, early stops and fallbacks.
package audiotag
