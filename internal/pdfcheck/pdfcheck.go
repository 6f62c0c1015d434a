// Package pdfcheck inspects rendered PDF bytes in tests: cross-reference
// integrity, page counts, info dictionary entries and drawn text.
package pdfcheck

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

var (
	objectRe    = regexp.MustCompile(`(?m)^(\d+)\s+\d+\s+obj`)
	xrefEntryRe = regexp.MustCompile(`^(\d{10}) (\d{5}) ([nf])`)
	countRe     = regexp.MustCompile(`/Type\s*/Pages\b[^>]*?/Count\s+(\d+)`)
	pageRe      = regexp.MustCompile(`/Type\s*/Page\b[^s]`)
)

// Check verifies that data starts with a PDF header, ends with %%EOF and
// carries a cross-reference table whose offsets point at the objects they
// name.
func Check(data []byte) error {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return errors.New("missing %PDF- header")
	}
	if !bytes.HasSuffix(bytes.TrimRight(data, "\r\n"), []byte("%%EOF")) {
		return errors.New("missing %%EOF marker")
	}
	startxref := bytes.LastIndex(data, []byte("startxref"))
	if startxref == -1 {
		return errors.New("missing startxref")
	}
	fields := strings.Fields(string(data[startxref+len("startxref"):]))
	if len(fields) == 0 {
		return errors.New("missing startxref offset")
	}
	xrefOffset, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("startxref offset: %w", err)
	}
	if xrefOffset <= 0 || xrefOffset >= len(data) || !bytes.HasPrefix(data[xrefOffset:], []byte("xref")) {
		return fmt.Errorf("startxref %d does not point at xref", xrefOffset)
	}
	offsets, maxObj, err := collectObjectOffsets(data[:xrefOffset])
	if err != nil {
		return err
	}
	lines := strings.Split(strings.ReplaceAll(string(data[xrefOffset:]), "\r\n", "\n"), "\n")
	if len(lines) < 3 {
		return errors.New("truncated xref table")
	}
	header := strings.Fields(lines[1])
	if len(header) != 2 {
		return fmt.Errorf("bad xref subsection header %q", lines[1])
	}
	first, err1 := strconv.Atoi(header[0])
	count, err2 := strconv.Atoi(header[1])
	if err1 != nil || err2 != nil {
		return fmt.Errorf("bad xref subsection header %q", lines[1])
	}
	if first+count-1 < maxObj {
		return fmt.Errorf("xref covers %d objects, file has %d", first+count-1, maxObj)
	}
	if len(lines) < 2+count {
		return errors.New("truncated xref table")
	}
	for i := 0; i < count; i++ {
		m := xrefEntryRe.FindStringSubmatch(lines[2+i])
		if m == nil {
			return fmt.Errorf("bad xref entry %q", lines[2+i])
		}
		if m[3] != "n" {
			continue
		}
		obj := first + i
		off, _ := strconv.Atoi(m[1])
		want, ok := offsets[obj]
		if !ok {
			return fmt.Errorf("xref names missing object %d", obj)
		}
		if off != want {
			return fmt.Errorf("object %d at offset %d, xref says %d", obj, want, off)
		}
	}
	trailer, err := extractTrailerDict(data[xrefOffset:])
	if err != nil {
		return err
	}
	if extractTrailerRef(trailer, "/Root") == "" {
		return errors.New("trailer has no /Root")
	}
	return nil
}

// PageCount returns the /Count of the page tree root.
func PageCount(data []byte) (int, error) {
	m := countRe.FindSubmatch(data)
	if m == nil {
		return 0, errors.New("page tree not found")
	}
	return strconv.Atoi(string(m[1]))
}

// PageObjects counts /Type /Page dictionaries, which must agree with
// PageCount for a well-formed file.
func PageObjects(data []byte) int {
	return len(pageRe.FindAll(data, -1))
}

// Info returns the literal string stored under key in the document
// information dictionary. Only unencoded literals are decoded.
func Info(data []byte, key string) (string, bool) {
	re := regexp.MustCompile(`/` + regexp.QuoteMeta(key) + `\s*\(((?:\\.|[^\\)])*)\)`)
	m := re.FindSubmatch(data)
	if m == nil {
		return "", false
	}
	return unescape(string(m[1])), true
}

// ShowsText reports whether an uncompressed content stream draws s with a
// single text-showing operator.
func ShowsText(data []byte, s string) bool {
	return bytes.Contains(data, []byte("("+escape(s)+") Tj"))
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`, "\r", `\r`)
	return r.Replace(s)
}

func unescape(s string) string {
	r := strings.NewReplacer(`\\`, `\`, `\(`, `(`, `\)`, `)`, `\r`, "\r", `\n`, "\n")
	return r.Replace(s)
}

// PDFToTextCommand returns the poppler pdftotext command that dumps the text
// of pdfPath to stdout, keeping the physical layout.
func PDFToTextCommand(pdfPath string) *exec.Cmd {
	return exec.Command("pdftotext", "-layout", "-enc", "UTF-8", pdfPath, "-")
}

func matchDictEnd(data []byte, start int) int {
	depth := 0
	for i := start; i+1 < len(data); i++ {
		if data[i] == '<' && data[i+1] == '<' {
			depth++
			i++
			continue
		}
		if data[i] == '>' && data[i+1] == '>' {
			depth--
			if depth == 0 {
				return i
			}
			i++
			continue
		}
	}
	return -1
}

func collectObjectOffsets(data []byte) (map[int]int, int, error) {
	matches := objectRe.FindAllSubmatchIndex(data, -1)
	if len(matches) == 0 {
		return nil, 0, errors.New("no objects found")
	}
	offsets := make(map[int]int, len(matches))
	maxObj := 0
	for _, m := range matches {
		objNum, err := strconv.Atoi(string(data[m[2]:m[3]]))
		if err != nil {
			continue
		}
		offsets[objNum] = m[0]
		if objNum > maxObj {
			maxObj = objNum
		}
	}
	if maxObj == 0 {
		return nil, 0, errors.New("invalid object table")
	}
	return offsets, maxObj, nil
}

func extractTrailerDict(data []byte) (string, error) {
	trailerIdx := bytes.Index(data, []byte("trailer"))
	if trailerIdx == -1 {
		return "", errors.New("missing trailer")
	}
	start := bytes.Index(data[trailerIdx:], []byte("<<"))
	if start == -1 {
		return "", errors.New("missing trailer dict")
	}
	start += trailerIdx
	end := matchDictEnd(data, start)
	if end == -1 {
		return "", errors.New("unterminated trailer dict")
	}
	return string(data[start : end+2]), nil
}

func extractTrailerRef(dict string, key string) string {
	re := regexp.MustCompile(regexp.QuoteMeta(key) + `\s+(\d+\s+\d+\s+R)`)
	m := re.FindStringSubmatch(dict)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}
