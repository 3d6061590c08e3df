package fonts

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestDefaultSupports(t *testing.T) {
	f := Default()
	tests := []struct {
		r    rune
		want bool
	}{
		{'A', true},
		{'z', true},
		{' ', true},
		{'é', true},
		{'名', false},
		{'\U0001F34E', false},
	}
	for _, tt := range tests {
		if got := f.Supports(tt.r); got != tt.want {
			t.Errorf("Supports(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestMeasure(t *testing.T) {
	f := DefaultBold()
	short := f.Measure("VS", 40)
	long := f.Measure("VERSUS", 40)
	if short <= 0 || long <= short {
		t.Errorf("Measure widths short=%v long=%v", short, long)
	}
	if big := f.Measure("VS", 80); big <= short {
		t.Errorf("larger size should be wider: %v <= %v", big, short)
	}
	if f.Measure("", 40) != 0 {
		t.Error("empty string should measure 0")
	}
}

func TestMeasureConcurrent(t *testing.T) {
	f := Default()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = f.Measure("Player", float64(10+i%3))
			_ = f.Supports('x')
		}(i)
	}
	wg.Wait()
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "font.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if f.Name() != path {
		t.Errorf("Name() = %q", f.Name())
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.ttf")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Parse("junk", []byte("not a font")); err == nil {
		t.Error("expected error for junk data")
	}
}
