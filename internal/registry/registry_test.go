package registry

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/simonhull/audiotag/internal/types"
)

// mockParser implements FormatParser for testing.
type mockParser struct {
	name string
}

func (m *mockParser) Parse(ctx context.Context, r io.ReaderAt, size int64, path string) (*types.File, error) {
	return &types.File{Path: m.name}, nil
}

func TestRegisterAndGet(t *testing.T) {
	// Use a format that's unlikely to conflict with real registrations
	format := types.Format(999)
	parser := &mockParser{name: "test"}

	Register(format, parser)

	got := Get(format)
	if got == nil {
		t.Fatal("Get() returned nil for registered format")
	}

	mp, ok := got.(*mockParser)
	if !ok {
		t.Fatal("Get() returned wrong parser type")
	}
	if mp.name != "test" {
		t.Errorf("Parser name = %q, want %q", mp.name, "test")
	}

	file, err := got.Parse(context.Background(), nil, 0, "x")
	if err != nil || file.Path != "test" {
		t.Errorf("Parse() = %v, %v", file, err)
	}
}

func TestGet_Unregistered(t *testing.T) {
	format := types.Format(998)

	if got := Get(format); got != nil {
		t.Errorf("Get() = %v for unregistered format, want nil", got)
	}
}

func TestRegister_Overwrites(t *testing.T) {
	format := types.Format(997)

	Register(format, &mockParser{name: "first"})
	Register(format, &mockParser{name: "second"})

	mp, ok := Get(format).(*mockParser)
	if !ok {
		t.Fatal("Get() returned wrong parser type")
	}
	if mp.name != "second" {
		t.Errorf("Parser name = %q, want %q (should be overwritten)", mp.name, "second")
	}
}

func TestRegistry_ConcurrentGet(t *testing.T) {
	format := types.Format(996)
	Register(format, &mockParser{name: "shared"})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if Get(format) == nil {
				t.Error("Get() returned nil")
			}
		}()
	}
	wg.Wait()
}
