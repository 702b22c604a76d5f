package highscore

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func openTemp(t *testing.T, name string) *File {
	t.Helper()
	f, err := Open(filepath.Join(t.TempDir(), name))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return f
}

func TestLoadMissingFile(t *testing.T) {
	f := openTemp(t, "highscore.txt")

	got, err := f.Load()
	if err != nil {
		t.Fatalf("Load() on missing file returned error: %v", err)
	}
	if got != 0 {
		t.Errorf("Load() = %d, want 0", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	f := openTemp(t, "highscore.txt")

	for _, v := range []int{0, 4, 2048, 123456} {
		if err := f.Save(v); err != nil {
			t.Fatalf("Save(%d) failed: %v", v, err)
		}
		got, err := f.Load()
		if err != nil {
			t.Fatalf("Load() failed: %v", err)
		}
		if got != v {
			t.Errorf("Load() = %d, want %d", got, v)
		}
	}
}

func TestSaveWritesDecimalText(t *testing.T) {
	f := openTemp(t, "highscore.txt")

	if err := f.Save(3172); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	data, err := os.ReadFile(f.Path())
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if string(data) != "3172" {
		t.Errorf("file content = %q, want %q", data, "3172")
	}

	// No temp files left behind
	entries, _ := os.ReadDir(filepath.Dir(f.Path()))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".highscore-") {
			t.Errorf("temp file %s left behind", e.Name())
		}
	}
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "highscore.txt")
	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}

	if err := f.Save(16); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created: %v", err)
	}
}

func TestLoadMalformedContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantErr bool
	}{
		{"garbage", "not a number", 0, true},
		{"negative", "-5", 0, true},
		{"float", "12.5", 0, true},
		{"surrounding whitespace", "  64\n", 64, false},
		{"empty file", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := openTemp(t, "highscore.txt")
			if err := os.WriteFile(f.Path(), []byte(tt.content), 0o600); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}

			got, err := f.Load()
			if (err != nil) != tt.wantErr {
				t.Errorf("Load() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Load() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSaveRejectsNegative(t *testing.T) {
	f := openTemp(t, "highscore.txt")
	if err := f.Save(-1); err == nil {
		t.Error("Save(-1) should fail")
	}
}

func TestSaveIntoUnwritableLocation(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	// Parent "directory" is a regular file, so MkdirAll must fail.
	f, err := Open(filepath.Join(blocker, "highscore.txt"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := f.Save(8); err == nil {
		t.Error("Save() under a regular file should fail")
	}
}

func TestReset(t *testing.T) {
	f := openTemp(t, "highscore.txt")

	if err := f.Reset(); err != nil {
		t.Fatalf("Reset() on missing file failed: %v", err)
	}
	if err := f.Save(512); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
	if err := f.Reset(); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if got, _ := f.Load(); got != 0 {
		t.Errorf("Load() after Reset = %d, want 0", got)
	}
}

func TestConcurrentSave(t *testing.T) {
	f := openTemp(t, "highscore.txt")

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			if err := f.Save(v); err != nil {
				t.Errorf("Save(%d) failed: %v", v, err)
			}
		}(i)
	}
	wg.Wait()

	got, err := f.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got < 1 || got > 20 {
		t.Errorf("Load() = %d, want one of the saved values", got)
	}
}

func TestSaveIfHigher(t *testing.T) {
	f := openTemp(t, "highscore.txt")

	tests := []struct {
		value     int
		wantBest  int
		wantSaved bool
	}{
		{100, 100, true},
		{50, 100, false},
		{100, 100, false},
		{250, 250, true},
	}

	for _, tt := range tests {
		best, saved, err := f.SaveIfHigher(tt.value)
		if err != nil {
			t.Fatalf("SaveIfHigher(%d) failed: %v", tt.value, err)
		}
		if best != tt.wantBest || saved != tt.wantSaved {
			t.Errorf("SaveIfHigher(%d) = (%d, %v), want (%d, %v)", tt.value, best, saved, tt.wantBest, tt.wantSaved)
		}
	}

	if got, _ := f.Load(); got != 250 {
		t.Errorf("Load() = %d, want 250", got)
	}
}

func TestSaveIfHigherReplacesMalformed(t *testing.T) {
	f := openTemp(t, "highscore.txt")
	if err := os.WriteFile(f.Path(), []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	best, saved, err := f.SaveIfHigher(8)
	if err != nil || best != 8 || !saved {
		t.Fatalf("SaveIfHigher(8) = (%d, %v, %v), want (8, true, nil)", best, saved, err)
	}
	if got, err := f.Load(); err != nil || got != 8 {
		t.Errorf("Load() = (%d, %v), want (8, nil)", got, err)
	}
}

func TestConcurrentSaveIfHigherKeepsMaximum(t *testing.T) {
	f := openTemp(t, "highscore.txt")

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			f.SaveIfHigher(v * 10)
		}(i)
	}
	wg.Wait()

	if got, _ := f.Load(); got != 200 {
		t.Errorf("Load() = %d, want the maximum 200", got)
	}
}

func TestOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	f, err := Open("~/.t2048/highscore.txt")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if want := filepath.Join(home, ".t2048", "highscore.txt"); f.Path() != want {
		t.Errorf("Path() = %q, want %q", f.Path(), want)
	}
}
