package pdf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"pkt.systems/trustdocs"
)

// RenderRequest contains inputs for PDF rendering.
type RenderRequest struct {
	Document trustdocs.Document
	Writer   io.Writer
	Config   Config
}

// Result summarises a successful render.
type Result struct {
	Pages  int
	Bytes  int64
	Tables []TableStats
}

// Render lays out the document and writes a PDF to req.Writer. Nothing is
// written when validation or layout fails.
func Render(req RenderRequest) (Result, error) {
	if req.Writer == nil {
		return Result{}, fmt.Errorf("pdf render: writer is nil")
	}
	doc := req.Document
	if err := doc.Validate(); err != nil {
		return Result{}, err
	}
	cfg := DefaultConfig()
	applyConfig(&cfg, req.Config)

	pdf, err := newFpdf(doc.Geometry(), cfg)
	if err != nil {
		return Result{}, err
	}
	fonts := newFontSet(cfg)
	lay := newLayouter(newFpdfMetrics(pdf, fonts), fonts, doc.Geometry())
	if err := lay.layout(doc); err != nil {
		return Result{}, err
	}
	if err := pdf.Error(); err != nil {
		return Result{}, fmt.Errorf("pdf render: measure: %w", err)
	}
	draw(pdf, fonts, lay.pages)
	if err := pdf.Error(); err != nil {
		return Result{}, fmt.Errorf("pdf render: draw: %w", err)
	}

	cw := &countingWriter{w: req.Writer}
	if err := pdf.Output(cw); err != nil {
		return Result{}, fmt.Errorf("pdf render: output: %w", err)
	}
	return Result{Pages: len(lay.pages), Bytes: cw.n, Tables: lay.tables}, nil
}

func newFpdf(geo trustdocs.Geometry, cfg Config) (*gofpdf.Fpdf, error) {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: geo.Size.Width, Ht: geo.Size.Height},
	})
	m := geo.Margins
	pdf.SetMargins(m.Left, m.Top, m.Right)
	pdf.SetAutoPageBreak(false, m.Bottom)
	pdf.SetCompression(!cfg.DisableCompression)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(cfg.CreationDate)
	pdf.SetModificationDate(cfg.CreationDate)
	pdf.SetProducer(cfg.Producer, !isASCII(cfg.Producer))
	pdf.SetCreator(cfg.Creator, !isASCII(cfg.Creator))
	if cfg.Author != "" {
		pdf.SetAuthor(cfg.Author, !isASCII(cfg.Author))
	}
	if cfg.Title != "" {
		pdf.SetTitle(cfg.Title, !isASCII(cfg.Title))
	}
	if cfg.usesTrueType() {
		if err := registerFonts(pdf, cfg); err != nil {
			return nil, err
		}
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("pdf render: font setup failed: %w", err)
	}
	return pdf, nil
}

func registerFonts(pdf *gofpdf.Fpdf, cfg Config) error {
	if cfg.RegularFont == "" || cfg.BoldFont == "" || cfg.ItalicFont == "" {
		return fmt.Errorf("pdf render: missing font paths")
	}
	fontDir := filepath.Dir(cfg.RegularFont)
	if filepath.Dir(cfg.BoldFont) != fontDir || filepath.Dir(cfg.ItalicFont) != fontDir {
		return fmt.Errorf("pdf render: font paths must be in the same directory")
	}
	if cfg.BoldItalicFont != "" && filepath.Dir(cfg.BoldItalicFont) != fontDir {
		return fmt.Errorf("pdf render: bold-italic font must be in the same directory as the other fonts")
	}
	files := map[string]string{
		"":  cfg.RegularFont,
		"B": cfg.BoldFont,
		"I": cfg.ItalicFont,
	}
	if cfg.BoldItalicFont != "" {
		files["BI"] = cfg.BoldItalicFont
	}
	for _, style := range []string{"", "B", "I", "BI"} {
		path, ok := files[style]
		if !ok {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("pdf render: font not found: %s", path)
			}
			return fmt.Errorf("pdf render: %w", err)
		}
	}
	pdf.SetFontLocation(fontDir)
	for _, style := range []string{"", "B", "I", "BI"} {
		if path, ok := files[style]; ok {
			pdf.AddUTF8Font(cfg.FontFamily, style, filepath.Base(path))
		}
	}
	return nil
}

// isASCII reports whether s can be stored as a plain PDF literal. Anything
// else goes through gofpdf's UTF-16 encoding.
func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
