package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func newTestCLI(t *testing.T) *CLI {
	t.Helper()
	c := New(&bytes.Buffer{}, log.InfoLevel)
	c.cfg = DefaultConfig()
	return c
}

func TestRootCommandWiring(t *testing.T) {
	root := newTestCLI(t).RootCommand()

	want := []string{
		"publish", "login", "logout", "whoami", "token", "list",
		"teardown", "rollback", "rollfore", "cutover", "discard",
		"dns", "ssl", "account", "plans", "nuke", "cache", "completion",
	}
	have := map[string]bool{}
	for _, cmd := range root.Commands() {
		have[cmd.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestRootCommandHelp(t *testing.T) {
	root := newTestCLI(t).RootCommand()

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"--help"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute(--help) error = %v", err)
	}
	if !strings.Contains(out.String(), "publish") {
		t.Error("help output should list the publish command")
	}
}

func TestResolveDomainPrecedence(t *testing.T) {
	c := newTestCLI(t)
	dir := t.TempDir()

	// Flag wins over everything.
	c.cfg.Domain = "config.surge.sh"
	if got := c.resolveDomain("flag.surge.sh", dir); got != "flag.surge.sh" {
		t.Errorf("resolveDomain() = %q, flag should win", got)
	}

	// CNAME wins over config.
	if err := os.WriteFile(filepath.Join(dir, "CNAME"), []byte("cname.surge.sh\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := c.resolveDomain("", dir); got != "cname.surge.sh" {
		t.Errorf("resolveDomain() = %q, CNAME should win over config", got)
	}

	// Config wins over generation.
	if got := c.resolveDomain("", t.TempDir()); got != "config.surge.sh" {
		t.Errorf("resolveDomain() = %q, want configured domain", got)
	}

	// With nothing set, a *.surge.sh name is generated.
	c.cfg.Domain = ""
	got := c.resolveDomain("", t.TempDir())
	if !strings.HasSuffix(got, ".surge.sh") || got == ".surge.sh" {
		t.Errorf("resolveDomain() = %q, want a generated *.surge.sh domain", got)
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{999, "999 B"},
		{1024, "1.0 kB"},
		{1536, "1.5 kB"},
		{1048576, "1.0 MB"},
	}
	for _, tt := range tests {
		if got := formatSize(tt.n); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
