package mp3

import (
	"bytes"
	"context"
	"testing"

	"github.com/simonhull/audiotag/internal/id3"
)

type fieldSink struct {
	fields []string
}

func (s *fieldSink) AddTextField(id, value string) { s.fields = append(s.fields, id+"="+value) }
func (s *fieldSink) AddComment(value string)       { s.fields = append(s.fields, "COMM="+value) }
func (s *fieldSink) AddGenre(value string)         { s.fields = append(s.fields, "TCON="+value) }
func (s *fieldSink) AddTrackNumber(value string)   { s.fields = append(s.fields, "TRCK#="+value) }
func (s *fieldSink) AddTrackCount(value string)    { s.fields = append(s.fields, "TRCK/="+value) }

func TestReadTag(t *testing.T) {
	body := concat(frame23("TIT2", text("A")), frame23("TCON", text("(abc)")), make([]byte, 4))
	data := concat(tag(3, 0, body), mpegFrame())

	sink := &fieldSink{}
	info, err := ReadTag(context.Background(), bytes.NewReader(data), int64(len(data)), "t.mp3", sink)
	if err != nil {
		t.Fatalf("ReadTag() error = %v", err)
	}

	if !info.Present || info.Version != id3.V23 || info.End != int64(10+len(body)) {
		t.Errorf("info = %+v", info)
	}
	if info.Result.Stop != id3.StopPadding || info.Result.Frames != 1 {
		t.Errorf("Result = %+v", info.Result)
	}
	if len(info.Errors) != 1 || info.Errors[0].ID != "TCON" || info.Errors[0].Offset != 12 {
		t.Errorf("Errors = %v", info.Errors)
	}
	if len(sink.fields) != 1 || sink.fields[0] != "TIT2=A" {
		t.Errorf("fields = %q", sink.fields)
	}
}

func TestReadTag_Clamped(t *testing.T) {
	data := tag(3, 0, frame23("TIT2", text("Hello")))
	data[9] += 50 // declare more than the file holds

	sink := &fieldSink{}
	info, err := ReadTag(context.Background(), bytes.NewReader(data), int64(len(data)), "t.mp3", sink)
	if err != nil {
		t.Fatalf("ReadTag() error = %v", err)
	}
	if !info.Clamped {
		t.Error("Clamped = false, want true")
	}
	if len(sink.fields) != 1 {
		t.Errorf("fields = %q", sink.fields)
	}
}

func TestReadTag_V24Footer(t *testing.T) {
	data := tag(4, flagFooter, frame24("TIT2", text("x")))

	info, err := ReadTag(context.Background(), bytes.NewReader(data), int64(len(data)), "t.mp3", &fieldSink{})
	if err != nil {
		t.Fatalf("ReadTag() error = %v", err)
	}
	if want := int64(len(data)) + id3FooterSize; info.End != want {
		t.Errorf("End = %d, want %d", info.End, want)
	}
}

func TestReadTag_NoTag(t *testing.T) {
	data := mpegFrame()
	info, err := ReadTag(context.Background(), bytes.NewReader(data), int64(len(data)), "t.mp3", &fieldSink{})
	if err != nil || info.Present {
		t.Errorf("ReadTag() = %+v, %v", info, err)
	}
}
