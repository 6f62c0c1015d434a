package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"pkt.systems/trustdocs"
	"pkt.systems/trustdocs/fixtures"
	"pkt.systems/trustdocs/pdf"
	"pkt.systems/version"
)

const (
	defaultOutputDir = "outputs"
	defaultWidth     = 80
	ruleWidth        = 50
)

func init() {
	version.SetDefaultModule("pkt.systems/trustdocs")
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	outputDir      string
	only           []string
	failFast       bool
	preview        bool
	width          int
	noCompress     bool
	list           bool
	showVersion    bool
	regularFont    string
	boldFont       string
	italicFont     string
	boldItalicFont string
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options
	flags := pflag.NewFlagSet("trustdocs", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVarP(&opts.outputDir, "output-dir", "o", defaultOutputDir, "Directory the PDFs are written to")
	flags.StringSliceVar(&opts.only, "only", nil, "Generate only these documents (comma separated)")
	flags.BoolVar(&opts.failFast, "fail-fast", false, "Stop at the first document that fails")
	flags.BoolVar(&opts.preview, "preview", false, "Print plain-text previews instead of writing PDFs")
	flags.IntVarP(&opts.width, "width", "w", 0, "Preview width override (0 uses terminal width if available)")
	flags.BoolVar(&opts.noCompress, "no-compress", false, "Write uncompressed content streams")
	flags.BoolVar(&opts.list, "list", false, "List available documents")
	flags.BoolVar(&opts.showVersion, "version", false, "Print version and exit")
	flags.StringVar(&opts.regularFont, "regular-font", "", "TTF path for regular font")
	flags.StringVar(&opts.boldFont, "bold-font", "", "TTF path for bold font")
	flags.StringVar(&opts.italicFont, "italic-font", "", "TTF path for italic font")
	flags.StringVar(&opts.boldItalicFont, "bold-italic-font", "", "TTF path for bold-italic font")
	flags.Usage = func() {
		fmt.Fprintln(stderr, version.Module(), version.Current())
		fmt.Fprintf(stderr, "Usage: trustdocs [flags]\n")
		fmt.Fprintln(stderr, "\nGenerates the trust agreement, term policy and Crummey notice PDFs.")
		fmt.Fprintln(stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}
	if flags.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %s\n", strings.Join(flags.Args(), " "))
		flags.Usage()
		return ExitUsage
	}
	if opts.showVersion {
		fmt.Fprintln(stdout, version.Module(), version.Current())
		return ExitSuccess
	}
	if opts.list {
		printDocuments(stdout)
		return ExitSuccess
	}

	names, err := selectNames(opts.only)
	if err != nil {
		fmt.Fprintf(stderr, "%v\n\n", err)
		printDocuments(stderr)
		return exitCodeFor(err)
	}
	if opts.preview {
		return preview(names, resolveWidth(opts.width), stdout, stderr)
	}
	return generate(names, opts, stdout, stderr)
}

func printDocuments(w io.Writer) {
	fmt.Fprintln(w, "Available documents:")
	for _, name := range fixtures.Names() {
		f, err := fixtures.Load(name)
		if err != nil {
			fmt.Fprintf(w, "  %-8s (invalid: %v)\n", name, err)
			continue
		}
		fmt.Fprintf(w, "  %-8s %s\n", name, f.Output)
	}
}

// selectNames returns the requested fixtures in generation order.
func selectNames(only []string) ([]string, error) {
	all := fixtures.Names()
	if len(only) == 0 {
		return all, nil
	}
	want := make(map[string]bool, len(only))
	for _, raw := range only {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		found := false
		for _, n := range all {
			if n == name {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %q", fixtures.ErrUnknownFixture, raw)
		}
		want[name] = true
	}
	if len(want) == 0 {
		return nil, fmt.Errorf("%w: --only needs at least one document", errUsage)
	}
	var out []string
	for _, n := range all {
		if want[n] {
			out = append(out, n)
		}
	}
	return out, nil
}

func (o options) pdfConfig(title string) pdf.Config {
	return pdf.Config{
		RegularFont:        o.regularFont,
		BoldFont:           o.boldFont,
		ItalicFont:         o.italicFont,
		BoldItalicFont:     o.boldItalicFont,
		DisableCompression: o.noCompress,
		Title:              title,
	}
}

func buildDocument(name string) (fixtures.Fixture, trustdocs.Document, error) {
	f, err := fixtures.Load(name)
	if err != nil {
		return fixtures.Fixture{}, trustdocs.Document{}, err
	}
	doc, err := f.Build(trustdocs.DefaultStyleSheet())
	if err != nil {
		return fixtures.Fixture{}, trustdocs.Document{}, fmt.Errorf("build %s: %w", name, err)
	}
	return f, doc, nil
}

// generate renders every named document. All documents are attempted unless
// failFast is set; every failure is reported.
func generate(names []string, opts options, stdout, stderr io.Writer) int {
	rule := strings.Repeat("-", ruleWidth)
	fmt.Fprintln(stdout, "\nGenerating test PDFs...")
	fmt.Fprintln(stdout, rule)

	var failures []error
	for _, name := range names {
		path, err := generateOne(name, opts)
		if err != nil {
			fmt.Fprintf(stderr, "✗ %s: %v\n", name, err)
			failures = append(failures, err)
			if opts.failFast {
				break
			}
			continue
		}
		fmt.Fprintf(stdout, "✓ Created %s\n", path)
	}

	fmt.Fprintln(stdout, rule)
	if len(failures) > 0 {
		fmt.Fprintf(stderr, "%d of %d documents failed\n", len(failures), len(names))
		return exitCodeForAll(failures)
	}
	fmt.Fprintf(stdout, "✓ All PDFs generated successfully in %s/ directory\n\n", filepath.Clean(opts.outputDir))
	return ExitSuccess
}

func generateOne(name string, opts options) (string, error) {
	f, doc, err := buildDocument(name)
	if err != nil {
		return "", err
	}
	path := filepath.Join(opts.outputDir, f.Output)
	if _, err := pdf.RenderFile(path, doc, opts.pdfConfig(f.Title)); err != nil {
		return "", fmt.Errorf("render %s: %w", path, err)
	}
	return path, nil
}

func preview(names []string, width int, stdout, stderr io.Writer) int {
	var failures []error
	for i, name := range names {
		_, doc, err := buildDocument(name)
		if err == nil {
			err = doc.Validate()
		}
		if err != nil {
			fmt.Fprintf(stderr, "✗ %s: %v\n", name, err)
			failures = append(failures, err)
			continue
		}
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		fmt.Fprintf(stdout, "== %s ==\n\n", name)
		if err := trustdocs.WriteText(stdout, doc, width); err != nil {
			fmt.Fprintf(stderr, "preview %s: %v\n", name, err)
			failures = append(failures, err)
		}
	}
	return exitCodeForAll(failures)
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	return terminalWidth(defaultWidth)
}

func terminalWidth(fallback int) int {
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return fallback
}
