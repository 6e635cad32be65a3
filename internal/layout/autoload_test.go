package layout

import (
	"os"
	"path/filepath"
	"testing"
)

func writeLayout(t *testing.T, path string, l *Layout) {
	t.Helper()
	if err := Save(l, path); err != nil {
		t.Fatalf("Save(%s): %v", path, err)
	}
}

func TestCandidates(t *testing.T) {
	got := Candidates("/a", "", "/b")
	want := []string{
		filepath.Join("/a", "keyboard.yaml"),
		filepath.Join("/a", "layouts", "keyboard.yaml"),
		filepath.Join("/b", "keyboard.yaml"),
		filepath.Join("/b", "layouts", "keyboard.yaml"),
	}
	if len(got) != len(want) {
		t.Fatalf("Candidates() = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Candidates()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestFindNearbyOrder(t *testing.T) {
	base := t.TempDir()
	cwd := t.TempDir()

	if got := FindNearby(base, cwd); got != "" {
		t.Errorf("FindNearby(empty dirs) = %q", got)
	}

	cwdFile := filepath.Join(cwd, "keyboard.yaml")
	writeLayout(t, cwdFile, Example())
	if got := FindNearby(base, cwd); got != cwdFile {
		t.Errorf("FindNearby = %q, want %q", got, cwdFile)
	}

	baseNested := filepath.Join(base, "layouts", "keyboard.yaml")
	writeLayout(t, baseNested, Example())
	if got := FindNearby(base, cwd); got != baseNested {
		t.Errorf("FindNearby = %q, want base dir candidate %q", got, baseNested)
	}
}

func TestFindNearbyRecursive(t *testing.T) {
	base := t.TempDir()
	deep := filepath.Join(base, "x", "y", "keyboard.yaml")
	writeLayout(t, deep, Example())

	if got := FindNearby(base); got != deep {
		t.Errorf("FindNearby recursive = %q, want %q", got, deep)
	}
}

func TestAutoLoad(t *testing.T) {
	t.Run("nothing found", func(t *testing.T) {
		l, path := AutoLoad(t.TempDir())
		if path != "" || !l.Equal(Default()) {
			t.Errorf("AutoLoad = %q %+v", path, l)
		}
	})

	t.Run("valid layout", func(t *testing.T) {
		dir := t.TempDir()
		want := filepath.Join(dir, "keyboard.yaml")
		writeLayout(t, want, Example())

		l, path := AutoLoad(dir)
		if path != want {
			t.Errorf("path = %q, want %q", path, want)
		}
		if !l.Equal(Example()) {
			t.Errorf("layout = %+v", l)
		}
	})

	t.Run("malformed falls back", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "keyboard.yaml"), []byte("::: not yaml :::\n\t- ["), 0o644); err != nil {
			t.Fatal(err)
		}

		l, path := AutoLoad(dir)
		if path != "" {
			t.Errorf("path = %q, want empty", path)
		}
		if !l.Equal(Default()) {
			t.Errorf("layout = %+v, want Default()", l)
		}

		// The explicit load path surfaces the same failure.
		if _, err := Load(filepath.Join(dir, "keyboard.yaml")); !IsDecodeError(err) {
			t.Errorf("Load() error = %v, want decode error", err)
		}
	})
}
