package trustdocs

import (
	"fmt"
	"strings"
)

// Span is a run of paragraph text in one face. A Span with Break set is a
// forced line break and carries no text.
type Span struct {
	Text   string
	Bold   bool
	Italic bool
	Break  bool
}

var entities = map[string]string{
	"amp":  "&",
	"lt":   "<",
	"gt":   ">",
	"quot": `"`,
	"apos": "'",
	"nbsp": " ",
}

// ParseInline splits marked-up paragraph text into spans. Supported markup is
// <b>, <i> (nestable), <br/> and the common XML entities. Runs of whitespace,
// including newlines, fold to a single space.
func ParseInline(text string) ([]Span, error) {
	var (
		spans  []Span
		buf    strings.Builder
		bold   int
		italic int
	)
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		spans = append(spans, Span{Text: buf.String(), Bold: bold > 0, Italic: italic > 0})
		buf.Reset()
	}
	lastSpace := false
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '<':
			end := strings.IndexByte(text[i:], '>')
			if end == -1 {
				return nil, fmt.Errorf("%w: unterminated tag at offset %d", ErrBadMarkup, i)
			}
			tag := strings.ToLower(strings.TrimSpace(text[i+1 : i+end]))
			flush()
			switch tag {
			case "b", "strong":
				bold++
			case "/b", "/strong":
				if bold == 0 {
					return nil, fmt.Errorf("%w: unbalanced </%s>", ErrBadMarkup, tag[1:])
				}
				bold--
			case "i", "em":
				italic++
			case "/i", "/em":
				if italic == 0 {
					return nil, fmt.Errorf("%w: unbalanced </%s>", ErrBadMarkup, tag[1:])
				}
				italic--
			case "br", "br/", "br /":
				spans = append(spans, Span{Break: true})
				lastSpace = true
			default:
				return nil, fmt.Errorf("%w: unsupported tag <%s>", ErrBadMarkup, tag)
			}
			i += end + 1
		case c == '&':
			end := strings.IndexByte(text[i:], ';')
			if end == -1 {
				return nil, fmt.Errorf("%w: unterminated entity at offset %d", ErrBadMarkup, i)
			}
			val, ok := entities[text[i+1:i+end]]
			if !ok {
				return nil, fmt.Errorf("%w: unknown entity %q", ErrBadMarkup, text[i:i+end+1])
			}
			buf.WriteString(val)
			lastSpace = false
			i += end + 1
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if !lastSpace {
				buf.WriteByte(' ')
				lastSpace = true
			}
			i++
		default:
			buf.WriteByte(c)
			lastSpace = false
			i++
		}
	}
	if bold != 0 || italic != 0 {
		return nil, fmt.Errorf("%w: unclosed tag", ErrBadMarkup)
	}
	flush()
	return spans, nil
}

// PlainText strips markup from text, turning <br/> into newlines. Malformed
// markup is returned unchanged.
func PlainText(text string) string {
	spans, err := ParseInline(text)
	if err != nil {
		return text
	}
	var b strings.Builder
	for _, sp := range spans {
		if sp.Break {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(sp.Text)
	}
	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

var markupEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeMarkup quotes s so that ParseInline returns it verbatim.
func EscapeMarkup(s string) string {
	return markupEscaper.Replace(s)
}
