package pdf

import (
	"strings"

	"pkt.systems/trustdocs"
)

// widthEpsilon keeps a line that measures a hair over the limit from wrapping
// because of float rounding.
const widthEpsilon = 0.001

type metrics interface {
	stringWidth(f face, s string) float64
}

type frag struct {
	text  string
	face  face
	width float64
}

type word struct {
	frags []frag
	width float64
	space float64
	brk   bool
}

type placedFrag struct {
	frag
	dx float64
}

type line struct {
	frags []placedFrag
	width float64
}

// tokenize turns spans into words. Fragments not separated by a space stay
// glued into one word, so "<b>RE:</b>x" never breaks between the faces.
func tokenize(m metrics, fs fontSet, st trustdocs.Style, spans []trustdocs.Span) []word {
	var words []word
	pendingSpace := false
	for _, sp := range spans {
		if sp.Break {
			words = append(words, word{brk: true})
			pendingSpace = false
			continue
		}
		f := fs.styleFace(st, sp)
		for j, part := range strings.Split(sp.Text, " ") {
			if j > 0 {
				pendingSpace = true
			}
			if part == "" {
				continue
			}
			fr := frag{text: part, face: f, width: m.stringWidth(f, part)}
			last := len(words) - 1
			if pendingSpace || last < 0 || words[last].brk {
				w := word{frags: []frag{fr}, width: fr.width}
				if pendingSpace {
					w.space = m.stringWidth(f, " ")
				}
				words = append(words, w)
			} else {
				words[last].frags = append(words[last].frags, fr)
				words[last].width += fr.width
			}
			pendingSpace = false
		}
	}
	return words
}

// breakLines fills lines greedily up to maxWidth and positions fragments by
// align. Words wider than a whole line are split between runes.
func breakLines(m metrics, words []word, maxWidth float64, align trustdocs.Alignment) []line {
	type pending struct {
		words []word
		width float64
		hard  bool
	}
	var raw []pending
	cur := pending{}
	finish := func(hard bool) {
		cur.hard = hard
		raw = append(raw, cur)
		cur = pending{}
	}
	for _, w := range words {
		if w.brk {
			finish(true)
			continue
		}
		if len(cur.words) > 0 && cur.width+w.space+w.width > maxWidth+widthEpsilon {
			finish(false)
		}
		if len(cur.words) == 0 && w.width > maxWidth+widthEpsilon {
			pieces := splitWord(m, w, maxWidth)
			for _, p := range pieces[:len(pieces)-1] {
				cur.words = []word{p}
				cur.width = p.width
				finish(false)
			}
			w = pieces[len(pieces)-1]
			w.space = 0
		}
		if len(cur.words) == 0 {
			w.space = 0
		}
		cur.words = append(cur.words, w)
		cur.width += w.space + w.width
	}
	if len(cur.words) > 0 {
		finish(true)
	}

	lines := make([]line, 0, len(raw))
	for _, p := range raw {
		offset := 0.0
		gap := 0.0
		slack := maxWidth - p.width
		if slack < 0 {
			slack = 0
		}
		switch align {
		case trustdocs.AlignCenter:
			offset = slack / 2
		case trustdocs.AlignRight:
			offset = slack
		case trustdocs.AlignJustify:
			if !p.hard && len(p.words) > 1 {
				gap = slack / float64(len(p.words)-1)
			}
		}
		ln := line{width: p.width}
		x := offset
		for i, w := range p.words {
			if i > 0 {
				x += w.space + gap
			}
			for _, fr := range w.frags {
				ln.frags = append(ln.frags, placedFrag{frag: fr, dx: x})
				x += fr.width
			}
		}
		lines = append(lines, ln)
	}
	return lines
}

// splitWord cuts w into pieces no wider than maxWidth, keeping at least one
// rune per piece.
func splitWord(m metrics, w word, maxWidth float64) []word {
	var out []word
	cur := word{}
	for _, fr := range w.frags {
		var b strings.Builder
		bw := 0.0
		flushFrag := func() {
			if b.Len() == 0 {
				return
			}
			cur.frags = append(cur.frags, frag{text: b.String(), face: fr.face, width: bw})
			cur.width += bw
			b.Reset()
			bw = 0
		}
		for _, r := range fr.text {
			rw := m.stringWidth(fr.face, string(r))
			if cur.width+bw+rw > maxWidth+widthEpsilon && (cur.width > 0 || bw > 0) {
				flushFrag()
				out = append(out, cur)
				cur = word{}
			}
			b.WriteRune(r)
			bw += rw
		}
		flushFrag()
	}
	if len(cur.frags) > 0 {
		out = append(out, cur)
	}
	if len(out) == 0 {
		out = append(out, w)
	}
	return out
}

// lineText joins the fragments of ln, mainly for tests and previews.
func lineText(ln line) string {
	var b strings.Builder
	prevEnd := -1.0
	for _, pf := range ln.frags {
		if prevEnd >= 0 && pf.dx > prevEnd+widthEpsilon {
			b.WriteByte(' ')
		}
		b.WriteString(pf.text)
		prevEnd = pf.dx + pf.width
	}
	return b.String()
}
