package fixtures

import (
	"fmt"
	"strings"

	"pkt.systems/trustdocs"
)

// Provision is a titled clause of the policy.
type Provision struct {
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

// PolicyRecord is the literal content of the term life policy.
type PolicyRecord struct {
	Output     string `yaml:"output"`
	Title      string `yaml:"title"`
	BrandColor string `yaml:"brand_color"`
	Carrier    struct {
		Name    string `yaml:"name"`
		Address string `yaml:"address"`
		Phone   string `yaml:"phone"`
	} `yaml:"carrier"`
	Policy struct {
		Number      string `yaml:"number"`
		Owner       string `yaml:"owner"`
		Insured     string `yaml:"insured"`
		InsuredBorn Date   `yaml:"insured_born"`
		Issued      Date   `yaml:"issued"`
		Effective   Date   `yaml:"effective"`
		TermYears   int    `yaml:"term_years"`
	} `yaml:"policy"`
	Coverage struct {
		DeathBenefit      Money  `yaml:"death_benefit"`
		AnnualPremium     Money  `yaml:"annual_premium"`
		Mode              string `yaml:"mode"`
		LevelPremiumYears int    `yaml:"level_premium_years"`
	} `yaml:"coverage"`
	Beneficiaries struct {
		Primary          string `yaml:"primary"`
		TrustEstablished Date   `yaml:"trust_established"`
		Trustee          string `yaml:"trustee"`
		TrustID          string `yaml:"trust_id"`
		Contingent       string `yaml:"contingent"`
	} `yaml:"beneficiaries"`
	Provisions []Provision `yaml:"provisions"`
	Officer    string      `yaml:"officer"`
}

func loadPolicy(data []byte) (Fixture, error) {
	var rec PolicyRecord
	if err := decode("policy", data, &rec); err != nil {
		return Fixture{}, err
	}
	if err := rec.validate(); err != nil {
		return Fixture{}, err
	}
	return Fixture{
		Name:   "policy",
		Output: rec.Output,
		Title:  rec.Title,
		Build:  rec.Build,
	}, nil
}

func (r PolicyRecord) validate() error {
	for field, v := range map[string]string{
		"output":        r.Output,
		"title":         r.Title,
		"carrier.name":  r.Carrier.Name,
		"policy.number": r.Policy.Number,
	} {
		if err := requireField("policy", field, v); err != nil {
			return err
		}
	}
	if r.Policy.TermYears <= 0 {
		return fmt.Errorf("fixture policy: %w: term_years must be positive", ErrInvalidRecord)
	}
	return nil
}

// Expiration is the effective date plus the policy term.
func (r PolicyRecord) Expiration() Date {
	return r.Policy.Effective.AddYears(r.Policy.TermYears)
}

// Build lays the policy out as a Document.
func (r PolicyRecord) Build(sheet *trustdocs.StyleSheet) (trustdocs.Document, error) {
	st, err := styles(sheet, trustdocs.StyleNormal, trustdocs.StyleTitle, trustdocs.StyleHeading2, trustdocs.StyleBodyText)
	if err != nil {
		return trustdocs.Document{}, err
	}
	brand := trustdocs.Black
	if r.BrandColor != "" {
		if brand, err = trustdocs.ParseHex(r.BrandColor); err != nil {
			return trustdocs.Document{}, fmt.Errorf("fixture policy: %w: %w", ErrInvalidRecord, err)
		}
	}
	normal := st[trustdocs.StyleNormal]
	body := st[trustdocs.StyleBodyText]
	h2 := st[trustdocs.StyleHeading2]
	header := normal.Named("Header").WithColor(brand).WithAlign(trustdocs.AlignRight)
	title := st[trustdocs.StyleTitle].WithColor(brand).WithSpacing(0, 20)
	esc := trustdocs.EscapeMarkup

	blocks := []trustdocs.Block{
		trustdocs.NewParagraph(fmt.Sprintf("<b>%s</b><br/>%s<br/>Phone: %s",
			esc(r.Carrier.Name), esc(r.Carrier.Address), esc(r.Carrier.Phone)), header),
		spacer(0.3),
		trustdocs.NewParagraph(esc(r.Title), title),
		spacer(0.2),
		r.policyTable(),
		spacer(0.3),
		trustdocs.NewParagraph("<b>COVERAGE DETAILS</b>", h2),
		spacer(0.1),
		r.coverageTable(),
		spacer(0.3),
		trustdocs.NewParagraph("<b>BENEFICIARY DESIGNATION</b>", h2),
		spacer(0.1),
		trustdocs.NewParagraph(fmt.Sprintf("<b>Primary Beneficiary:</b> %s, established %s",
			esc(r.Beneficiaries.Primary), r.Beneficiaries.TrustEstablished.Long()), body),
		spacer(0.1),
		trustdocs.NewParagraph("<b>Trustee:</b> "+esc(r.Beneficiaries.Trustee), body),
		trustdocs.NewParagraph("<b>Trust ID:</b> "+esc(r.Beneficiaries.TrustID), body),
		spacer(0.1),
		trustdocs.NewParagraph("<b>Contingent Beneficiary:</b> "+esc(r.Beneficiaries.Contingent), body),
		spacer(0.3),
		trustdocs.NewParagraph("<b>KEY POLICY PROVISIONS</b>", h2),
		spacer(0.1),
	}
	for _, p := range r.Provisions {
		blocks = append(blocks,
			trustdocs.NewParagraph(fmt.Sprintf("<b>%s:</b> %s", esc(p.Title), esc(p.Text)), body),
			spacer(0.1))
	}
	blocks = append(blocks,
		spacer(0.3),
		trustdocs.NewParagraph(strings.Repeat("_", 60), normal),
		trustdocs.NewParagraph("<b>"+esc(r.Officer)+"</b>", normal),
		spacer(0.1),
		trustdocs.NewParagraph("Policy issued: "+r.Policy.Issued.Long(), normal),
	)
	return trustdocs.NewDocument("policy", trustdocs.LetterGeometry(), blocks...), nil
}

func (r PolicyRecord) policyTable() trustdocs.Table {
	p := r.Policy
	rows := [][]string{
		{"Policy Number:", p.Number, "Issue Date:", p.Issued.Long()},
		{"Policy Owner:", p.Owner, "Effective Date:", p.Effective.Long()},
		{"Insured:", p.Insured, "Expiration Date:", r.Expiration().Long()},
		{"Date of Birth:", p.InsuredBorn.Long(), "Policy Term:", years(p.TermYears)},
	}
	shade := trustdocs.MustHex("#e6f2ff")
	c := trustdocs.Cell
	in := trustdocs.Inch
	return trustdocs.NewTable(escapeRows(rows), []float64{1.5 * in, 2 * in, 1.5 * in, 1.5 * in},
		trustdocs.Background(c(0, 0), c(0, -1), shade),
		trustdocs.Background(c(2, 0), c(2, -1), shade),
		trustdocs.Bold(c(0, 0), c(0, -1)),
		trustdocs.Bold(c(2, 0), c(2, -1)),
		trustdocs.FontSize(c(0, 0), c(-1, -1), 9),
		trustdocs.Grid(c(0, 0), c(-1, -1), 0.5, trustdocs.Grey),
		trustdocs.Align(c(0, 0), c(-1, -1), trustdocs.VAlignMiddle),
		trustdocs.Padding(trustdocs.RuleLeftPadding, c(0, 0), c(-1, -1), 6),
		trustdocs.Padding(trustdocs.RuleRightPadding, c(0, 0), c(-1, -1), 6),
		trustdocs.Padding(trustdocs.RuleTopPadding, c(0, 0), c(-1, -1), 8),
		trustdocs.Padding(trustdocs.RuleBottomPadding, c(0, 0), c(-1, -1), 8),
	)
}

func (r PolicyRecord) coverageTable() trustdocs.Table {
	cv := r.Coverage
	rows := [][]string{
		{"Death Benefit:", cv.DeathBenefit.String()},
		{"Annual Premium:", cv.AnnualPremium.String()},
		{"Premium Mode:", cv.Mode},
		{"Premium Due Date:", r.Policy.Effective.Format("January") + " " + r.Policy.Effective.DayOfMonth() + " each year"},
		{"Guaranteed Level Premium Period:", years(cv.LevelPremiumYears)},
	}
	c := trustdocs.Cell
	in := trustdocs.Inch
	return trustdocs.NewTable(escapeRows(rows), []float64{3 * in, 3.5 * in},
		trustdocs.Bold(c(0, 0), c(0, -1)),
		trustdocs.FontSize(c(0, 0), c(-1, -1), 10),
		trustdocs.Grid(c(0, 0), c(-1, -1), 0.5, trustdocs.Grey),
		trustdocs.Align(c(0, 0), c(-1, -1), trustdocs.VAlignMiddle),
		trustdocs.Padding(trustdocs.RuleLeftPadding, c(0, 0), c(-1, -1), 10),
		trustdocs.Padding(trustdocs.RuleRightPadding, c(0, 0), c(-1, -1), 10),
		trustdocs.Padding(trustdocs.RuleTopPadding, c(0, 0), c(-1, -1), 8),
		trustdocs.Padding(trustdocs.RuleBottomPadding, c(0, 0), c(-1, -1), 8),
	)
}

func years(n int) string {
	if n == 1 {
		return "1 Year"
	}
	return fmt.Sprintf("%d Years", n)
}

func escapeRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			out[i][j] = trustdocs.EscapeMarkup(cell)
		}
	}
	return out
}
