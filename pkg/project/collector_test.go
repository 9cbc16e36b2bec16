package project

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/surge-sh/surge-go/pkg/errors"
)

// writeTree materializes a project fixture. Keys are slash-relative
// file paths, values their contents.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestCollect(t *testing.T) {
	root := writeTree(t, map[string]string{
		"index.html":     "<h1>hi</h1>",
		"css/style.css":  "body{}",
		"js/app.js":      "console.log(1)",
		"js/vendor/x.js": "x",
	})

	got, err := Collect(root, NewRuleSet())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	want := []string{"css/style.css", "index.html", "js/app.js", "js/vendor/x.js"}
	if !slices.Equal(got, want) {
		t.Errorf("paths = %v, want %v", got, want)
	}
}

func TestCollectSortOrder(t *testing.T) {
	// filepath.WalkDir visits "a/b.txt" before "a.txt"; the result
	// must be ordered by the full relative path instead.
	root := writeTree(t, map[string]string{
		"a/b.txt": "",
		"a.txt":   "",
	})

	got, err := Collect(root, NewRuleSet())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	want := []string{"a.txt", "a/b.txt"}
	if !slices.Equal(got, want) {
		t.Errorf("paths = %v, want %v", got, want)
	}
}

func TestCollectCallerRules(t *testing.T) {
	root := writeTree(t, map[string]string{
		"index.html": "",
		"debug.log":  "",
		"tmp/x.txt":  "",
	})

	got, err := Collect(root, NewRuleSet("*.log", "tmp/"))
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	want := []string{"index.html"}
	if !slices.Equal(got, want) {
		t.Errorf("paths = %v, want %v", got, want)
	}
}

func TestCollectBuiltinExcludes(t *testing.T) {
	root := writeTree(t, map[string]string{
		"index.html":    "",
		".git/config":   "",
		".DS_Store":     "",
		"img/.DS_Store": "",
	})

	got, err := Collect(root, NewRuleSet())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	want := []string{"index.html"}
	if !slices.Equal(got, want) {
		t.Errorf("paths = %v, want %v", got, want)
	}
}

func TestCollectIgnoreFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		".surgeignore": "*.log\ndrafts/\n",
		"index.html":   "",
		"debug.log":    "",
		"drafts/a.md":  "",
	})

	got, err := Collect(root, NewRuleSet())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	// The ignore file excludes its patterns and is itself never
	// part of the result.
	want := []string{"index.html"}
	if !slices.Equal(got, want) {
		t.Errorf("paths = %v, want %v", got, want)
	}
}

func TestCollectNestedIgnoreFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		".surgeignore":     "*.log\n",
		"sub/.surgeignore": "!keep.log\n*.txt\n",
		"root.log":         "",
		"root.txt":         "",
		"sub/keep.log":     "",
		"sub/drop.log":     "",
		"sub/note.txt":     "",
	})

	got, err := Collect(root, NewRuleSet())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	// The nested file re-includes keep.log and excludes *.txt, but
	// only within sub/; root.txt is untouched by it.
	want := []string{"root.txt", "sub/keep.log"}
	if !slices.Equal(got, want) {
		t.Errorf("paths = %v, want %v", got, want)
	}
}

func TestCollectIgnoreFileCRLF(t *testing.T) {
	root := writeTree(t, map[string]string{
		".surgeignore": "*.log\r\n# comment\r\n",
		"a.log":        "",
		"index.html":   "",
	})

	got, err := Collect(root, NewRuleSet())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	want := []string{"index.html"}
	if !slices.Equal(got, want) {
		t.Errorf("paths = %v, want %v", got, want)
	}
}

func TestCollectExcludedDirNotResurrected(t *testing.T) {
	root := writeTree(t, map[string]string{
		"node_modules/pkg/index.js": "",
		"index.html":                "",
	})

	got, err := Collect(root, NewRuleSet("node_modules/", "!node_modules/pkg/index.js"))
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	want := []string{"index.html"}
	if !slices.Equal(got, want) {
		t.Errorf("paths = %v, want %v", got, want)
	}
}

func TestCollectSkipsSymlinks(t *testing.T) {
	root := writeTree(t, map[string]string{
		"real.txt": "data",
	})
	outside := writeTree(t, map[string]string{
		"escape.txt": "outside",
	})

	if err := os.Symlink(filepath.Join(root, "real.txt"), filepath.Join(root, "link.txt")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	if err := os.Symlink(outside, filepath.Join(root, "linkdir")); err != nil {
		t.Fatal(err)
	}

	got, err := Collect(root, NewRuleSet())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	want := []string{"real.txt"}
	if !slices.Equal(got, want) {
		t.Errorf("paths = %v, want %v", got, want)
	}
}

func TestCollectEmptyDir(t *testing.T) {
	got, err := Collect(t.TempDir(), NewRuleSet())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("paths = %v, want empty", got)
	}
}

func TestCollectMissingRoot(t *testing.T) {
	_, err := Collect(filepath.Join(t.TempDir(), "nope"), NewRuleSet())
	if err == nil {
		t.Fatal("expected error for missing root")
	}
	if code := errors.GetCode(err); code != errors.ErrCodeFilesystem {
		t.Errorf("code = %v, want %v", code, errors.ErrCodeFilesystem)
	}
}

func TestCollectRootIsFile(t *testing.T) {
	root := writeTree(t, map[string]string{"file.txt": ""})

	_, err := Collect(filepath.Join(root, "file.txt"), NewRuleSet())
	if err == nil {
		t.Fatal("expected error for non-directory root")
	}
	if code := errors.GetCode(err); code != errors.ErrCodeFilesystem {
		t.Errorf("code = %v, want %v", code, errors.ErrCodeFilesystem)
	}
}

func TestCollectNilRules(t *testing.T) {
	root := writeTree(t, map[string]string{
		"index.html":  "",
		".git/config": "",
	})

	got, err := Collect(root, nil)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	want := []string{"index.html"}
	if !slices.Equal(got, want) {
		t.Errorf("paths = %v, want %v", got, want)
	}
}

func TestCollectRulesReusable(t *testing.T) {
	root := writeTree(t, map[string]string{
		".surgeignore": "*.log\n",
		"a.log":        "",
		"index.html":   "",
	})

	rules := NewRuleSet()
	first, err := Collect(root, rules)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	second, err := Collect(root, rules)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if !slices.Equal(first, second) {
		t.Errorf("runs differ: %v vs %v", first, second)
	}
	// Ignore-file rules must not leak into the caller's set.
	if rules.Excluded("a.log", false) {
		t.Error("caller rule set was mutated by Collect")
	}
}

func TestMeasure(t *testing.T) {
	root := writeTree(t, map[string]string{
		"index.html": "12345",
		"css/a.css":  "123",
		"skip.log":   "xxxxxxxxxx",
	})

	st, err := Measure(root, NewRuleSet("*.log"))
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}

	if st.FileCount != 2 {
		t.Errorf("FileCount = %d, want 2", st.FileCount)
	}
	if st.TotalSize != 8 {
		t.Errorf("TotalSize = %d, want 8", st.TotalSize)
	}
}

func TestMeasureEmptyDir(t *testing.T) {
	st, err := Measure(t.TempDir(), NewRuleSet())
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}
	if st.FileCount != 0 || st.TotalSize != 0 {
		t.Errorf("stats = %+v, want zero", st)
	}
}
