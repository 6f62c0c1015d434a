package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/term"

	"pkt.systems/trustdocs"
	"pkt.systems/trustdocs/fixtures"
	"pkt.systems/trustdocs/internal/pdfcheck"
)

func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunGeneratesAllDocuments(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "outputs")
	code, stdout, stderr := runCLI(t, "-o", dir)
	if code != ExitSuccess {
		t.Fatalf("exit %d, stderr: %s", code, stderr)
	}
	if !strings.HasPrefix(stdout, "\nGenerating test PDFs...\n"+strings.Repeat("-", 50)+"\n") {
		t.Fatalf("unexpected progress header:\n%s", stdout)
	}
	for _, name := range fixtures.Names() {
		f, err := fixtures.Load(name)
		if err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
		path := filepath.Join(dir, f.Output)
		if !strings.Contains(stdout, "✓ Created "+path+"\n") {
			t.Fatalf("missing progress line for %s:\n%s", path, stdout)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if err := pdfcheck.Check(data); err != nil {
			t.Fatalf("%s: %v", path, err)
		}
		if title, ok := pdfcheck.Info(data, "Title"); !ok || title != f.Title {
			t.Fatalf("%s: title %q, want %q", path, title, f.Title)
		}
	}
	want := fmt.Sprintf("✓ All PDFs generated successfully in %s/ directory\n\n", dir)
	if !strings.HasSuffix(stdout, want) {
		t.Fatalf("missing completion line:\n%s", stdout)
	}
}

func TestRunIsByteStable(t *testing.T) {
	a := t.TempDir()
	b := t.TempDir()
	if code, _, stderr := runCLI(t, "-o", a, "--only", "notice"); code != ExitSuccess {
		t.Fatalf("first run exit %d: %s", code, stderr)
	}
	if code, _, stderr := runCLI(t, "-o", b, "--only", "notice"); code != ExitSuccess {
		t.Fatalf("second run exit %d: %s", code, stderr)
	}
	f, err := fixtures.Load("notice")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	first, err := os.ReadFile(filepath.Join(a, f.Output))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	second, err := os.ReadFile(filepath.Join(b, f.Output))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("repeated runs produced different bytes")
	}
	for _, key := range []string{"CreationDate", "ModDate"} {
		if got, ok := pdfcheck.Info(first, key); !ok || got != "D:20240315000000" {
			t.Fatalf("%s = %q, want fixed date", key, got)
		}
	}
}

func TestRunOnlySelectsDocuments(t *testing.T) {
	dir := t.TempDir()
	code, stdout, stderr := runCLI(t, "-o", dir, "--only", "notice,trust")
	if code != ExitSuccess {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 files, got %d", len(entries))
	}
	// Generation order follows the fixture list, not the flag.
	trust := strings.Index(stdout, "ILIT")
	notice := strings.Index(stdout, "Crummey")
	if trust < 0 || notice < 0 || trust > notice {
		t.Fatalf("unexpected generation order:\n%s", stdout)
	}
}

func TestRunUnknownDocumentIsUsageError(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	code, _, stderr := runCLI(t, "-o", dir, "--only", "will")
	if code != ExitUsage {
		t.Fatalf("exit %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr, "unknown fixture") || !strings.Contains(stderr, "Available documents:") {
		t.Fatalf("unexpected stderr:\n%s", stderr)
	}
	if _, err := os.Stat(dir); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("output directory created on usage error: %v", err)
	}
}

func TestRunBadFlagIsUsageError(t *testing.T) {
	if code, _, _ := runCLI(t, "--no-such-flag"); code != ExitUsage {
		t.Fatalf("exit %d, want %d", code, ExitUsage)
	}
	if code, _, _ := runCLI(t, "extra"); code != ExitUsage {
		t.Fatalf("positional argument: exit %d, want %d", code, ExitUsage)
	}
}

func TestRunReportsEveryFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	code, stdout, stderr := runCLI(t, "-o", blocker)
	if code != ExitIO {
		t.Fatalf("exit %d, want %d; stderr: %s", code, ExitIO, stderr)
	}
	if n := strings.Count(stderr, "✗ "); n != 3 {
		t.Fatalf("expected 3 failures, got %d:\n%s", n, stderr)
	}
	if !strings.Contains(stderr, "3 of 3 documents failed") {
		t.Fatalf("missing summary:\n%s", stderr)
	}
	if strings.Contains(stdout, "All PDFs generated successfully") {
		t.Fatalf("success line printed on failure")
	}
}

func TestRunFailFastStopsAtFirstFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	code, _, stderr := runCLI(t, "-o", blocker, "--fail-fast")
	if code != ExitIO {
		t.Fatalf("exit %d, want %d", code, ExitIO)
	}
	if n := strings.Count(stderr, "✗ "); n != 1 {
		t.Fatalf("expected 1 failure, got %d:\n%s", n, stderr)
	}
}

func TestRunList(t *testing.T) {
	code, stdout, _ := runCLI(t, "--list")
	if code != ExitSuccess {
		t.Fatalf("exit %d", code)
	}
	for _, name := range fixtures.Names() {
		if !strings.Contains(stdout, "  "+name) {
			t.Fatalf("missing %s in list:\n%s", name, stdout)
		}
	}
}

func TestRunPreview(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	code, stdout, stderr := runCLI(t, "-o", dir, "--preview", "--only", "policy", "-w", "72")
	if code != ExitSuccess {
		t.Fatalf("exit %d: %s", code, stderr)
	}
	if !strings.HasPrefix(stdout, "== policy ==\n") {
		t.Fatalf("unexpected preview header:\n%s", stdout)
	}
	if !strings.Contains(stdout, "MetLife") {
		t.Fatalf("preview missing policy text:\n%s", stdout)
	}
	if _, err := os.Stat(dir); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("preview must not write files: %v", err)
	}
}

func TestExitCodeFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, ExitSuccess},
		{errors.New("boom"), ExitGeneral},
		{fmt.Errorf("x: %w", fixtures.ErrUnknownFixture), ExitUsage},
		{&trustdocs.IOError{Op: "write", Path: "a.pdf", Err: trustdocs.ErrOutputWrite}, ExitIO},
		{trustdocs.NewLayoutError(2, trustdocs.ErrBlockTooTall, "row"), ExitLayout},
		{fmt.Errorf("build: %w", fixtures.ErrUnevenShare), ExitLayout},
		{fmt.Errorf("lookup: %w", trustdocs.ErrUnknownStyle), ExitLayout},
	}
	for _, tc := range cases {
		if got := exitCodeFor(tc.err); got != tc.want {
			t.Fatalf("exitCodeFor(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestExitCodeForAllPrefersIO(t *testing.T) {
	layout := trustdocs.NewLayoutError(0, trustdocs.ErrBlockTooTall, "line")
	io := &trustdocs.IOError{Op: "mkdir", Path: "out", Err: trustdocs.ErrOutputDir}
	if got := exitCodeForAll([]error{layout, io}); got != ExitIO {
		t.Fatalf("got %d, want %d", got, ExitIO)
	}
	if got := exitCodeForAll([]error{errors.New("x"), layout}); got != ExitLayout {
		t.Fatalf("got %d, want %d", got, ExitLayout)
	}
	if got := exitCodeForAll(nil); got != ExitSuccess {
		t.Fatalf("got %d, want %d", got, ExitSuccess)
	}
}

func TestResolveWidth(t *testing.T) {
	if got := resolveWidth(64); got != 64 {
		t.Fatalf("explicit width ignored: %d", got)
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		t.Skip("stdout is a terminal")
	}
	t.Setenv("COLUMNS", "100")
	if got := resolveWidth(0); got != 100 {
		t.Fatalf("COLUMNS ignored: %d", got)
	}
	t.Setenv("COLUMNS", "nope")
	if got := terminalWidth(42); got != 42 {
		t.Fatalf("expected fallback width, got %d", got)
	}
}
