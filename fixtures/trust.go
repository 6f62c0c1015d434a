package fixtures

import (
	"fmt"
	"strings"

	"pkt.systems/trustdocs"
)

const (
	signatureLine = 34
	dateLine      = 20
)

// Beneficiary is a trust beneficiary.
type Beneficiary struct {
	Name     string `yaml:"name"`
	Relation string `yaml:"relation"`
	Born     Date   `yaml:"born"`
}

// Signatory signs the trust agreement in a role such as GRANTOR.
type Signatory struct {
	Role string `yaml:"role"`
	Name string `yaml:"name"`
}

// Article is a numbered section of the trust agreement. When
// ListBeneficiaries is set the beneficiaries are listed after Paragraphs and
// before Closing.
type Article struct {
	Heading           string   `yaml:"heading"`
	Paragraphs        []string `yaml:"paragraphs"`
	ListBeneficiaries bool     `yaml:"list_beneficiaries"`
	Closing           []string `yaml:"closing"`
}

// TrustRecord is the literal content of the trust agreement.
type TrustRecord struct {
	Output     string `yaml:"output"`
	Title      string `yaml:"title"`
	TitleColor string `yaml:"title_color"`
	TrustName  string `yaml:"trust_name"`
	Executed   Date   `yaml:"executed"`
	Grantor    struct {
		Names   []string `yaml:"names"`
		Address string   `yaml:"address"`
	} `yaml:"grantor"`
	Trustee struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
	} `yaml:"trustee"`
	Beneficiaries []Beneficiary `yaml:"beneficiaries"`
	Articles      []Article     `yaml:"articles"`
	Signatories   []Signatory   `yaml:"signatories"`
}

func loadTrust(data []byte) (Fixture, error) {
	var rec TrustRecord
	if err := decode("trust", data, &rec); err != nil {
		return Fixture{}, err
	}
	if err := rec.validate(); err != nil {
		return Fixture{}, err
	}
	return Fixture{
		Name:   "trust",
		Output: rec.Output,
		Title:  rec.Title,
		Build:  rec.Build,
	}, nil
}

func (r TrustRecord) validate() error {
	for field, v := range map[string]string{
		"output":       r.Output,
		"title":        r.Title,
		"trust_name":   r.TrustName,
		"trustee.name": r.Trustee.Name,
	} {
		if err := requireField("trust", field, v); err != nil {
			return err
		}
	}
	if len(r.Grantor.Names) == 0 {
		return fmt.Errorf("fixture trust: %w: at least one grantor is required", ErrInvalidRecord)
	}
	if len(r.Signatories) == 0 {
		return fmt.Errorf("fixture trust: %w", ErrNoSignatories)
	}
	for i, s := range r.Signatories {
		if s.Role == "" || s.Name == "" {
			return fmt.Errorf("fixture trust: %w: signatory %d needs role and name", ErrInvalidRecord, i)
		}
	}
	return nil
}

// Build lays the agreement out as a Document.
func (r TrustRecord) Build(sheet *trustdocs.StyleSheet) (trustdocs.Document, error) {
	st, err := styles(sheet, trustdocs.StyleTitle, trustdocs.StyleHeading2, trustdocs.StyleHeading3, trustdocs.StyleBodyText)
	if err != nil {
		return trustdocs.Document{}, err
	}
	titleColor := trustdocs.Black
	if r.TitleColor != "" {
		if titleColor, err = trustdocs.ParseHex(r.TitleColor); err != nil {
			return trustdocs.Document{}, fmt.Errorf("fixture trust: %w: %w", ErrInvalidRecord, err)
		}
	}
	title := st[trustdocs.StyleTitle].WithSize(16).WithColor(titleColor).WithSpacing(0, 30)
	body := st[trustdocs.StyleBodyText]
	h3 := st[trustdocs.StyleHeading3]
	esc := trustdocs.EscapeMarkup

	blocks := []trustdocs.Block{
		trustdocs.NewParagraph(esc(r.Title), title),
		spacer(0.2),
		trustdocs.NewParagraph(esc(r.TrustName), st[trustdocs.StyleHeading2]),
		spacer(0.1),
		trustdocs.NewParagraph(fmt.Sprintf(
			"This Irrevocable Life Insurance Trust Agreement (the \"Trust\") is made this %s, by and between:",
			r.Executed.Execution()), body),
		spacer(0.1),
		trustdocs.NewParagraph(fmt.Sprintf("<b>GRANTOR:</b> %s, residing at %s",
			esc(joinNames(r.Grantor.Names)), esc(r.Grantor.Address)), body),
		spacer(0.1),
		trustdocs.NewParagraph(fmt.Sprintf("<b>TRUSTEE:</b> %s, %s",
			esc(r.Trustee.Name), esc(r.Trustee.Description)), body),
		spacer(0.1),
	}
	for i, art := range r.Articles {
		blocks = append(blocks, trustdocs.NewParagraph("<b>"+esc(art.Heading)+"</b>", h3), spacer(0.1))
		for _, p := range art.Paragraphs {
			blocks = append(blocks, trustdocs.NewParagraph(esc(p), body))
		}
		if art.ListBeneficiaries {
			for j, b := range r.Beneficiaries {
				blocks = append(blocks, trustdocs.NewParagraph(
					fmt.Sprintf("%d. %s (%s), born %s", j+1, esc(b.Name), esc(b.Relation), b.Born.Long()), body))
			}
		}
		if len(art.Closing) > 0 {
			blocks = append(blocks, spacer(0.1))
			for _, p := range art.Closing {
				blocks = append(blocks, trustdocs.NewParagraph(esc(p), body))
			}
		}
		if i < len(r.Articles)-1 {
			blocks = append(blocks, spacer(0.1))
		}
	}
	blocks = append(blocks, spacer(0.3), r.signatureTable())

	return trustdocs.NewDocument("trust", trustdocs.LetterGeometry(), blocks...), nil
}

// signatureTable has one group per signatory: a role/line/date row, a name
// row and, between groups, an empty separator row.
func (r TrustRecord) signatureTable() trustdocs.Table {
	var rows [][]string
	for i, s := range r.Signatories {
		rows = append(rows,
			[]string{trustdocs.EscapeMarkup(s.Role) + ":", strings.Repeat("_", signatureLine), "DATE:", strings.Repeat("_", dateLine)},
			[]string{"", trustdocs.EscapeMarkup(s.Name), "", ""},
		)
		if i < len(r.Signatories)-1 {
			rows = append(rows, []string{"", "", "", ""})
		}
	}
	in := trustdocs.Inch
	return trustdocs.NewTable(rows, []float64{1 * in, 3 * in, 0.7 * in, 1.8 * in})
}

// SignatureGroups counts the signature groups in a table built by
// signatureTable: rows whose second cell is a signature line.
func SignatureGroups(t trustdocs.Table) int {
	n := 0
	for _, row := range t.Rows() {
		if len(row) > 1 && strings.HasPrefix(row[1], "___") {
			n++
		}
	}
	return n
}

// joinNames joins names as "A and B" or "A, B and C".
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
	}
}
