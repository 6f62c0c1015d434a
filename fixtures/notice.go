package fixtures

import (
	"fmt"
	"strings"

	"pkt.systems/trustdocs"
)

// NoticeRecord is the literal content of the Crummey withdrawal notice.
type NoticeRecord struct {
	Output   string `yaml:"output"`
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
	Trustee  struct {
		Name    string   `yaml:"name"`
		Address []string `yaml:"address"`
		Phone   string   `yaml:"phone"`
		Fax     string   `yaml:"fax"`
		Email   string   `yaml:"email"`
	} `yaml:"trustee"`
	NoticeDate Date `yaml:"notice_date"`
	Trust      struct {
		Name              string `yaml:"name"`
		Dated             Date   `yaml:"dated"`
		WithdrawalArticle string `yaml:"withdrawal_article"`
	} `yaml:"trust"`
	Contribution struct {
		Date    Date   `yaml:"date"`
		Total   Money  `yaml:"total"`
		Purpose string `yaml:"purpose"`
	} `yaml:"contribution"`
	AnnualExclusion Money         `yaml:"annual_exclusion"`
	StatedShare     *Money        `yaml:"stated_share"`
	WithdrawalDays  int           `yaml:"withdrawal_days"`
	DeadlineTime    string        `yaml:"deadline_time"`
	Beneficiaries   []Beneficiary `yaml:"beneficiaries"`
	Minors          struct {
		AgeOfMajority int      `yaml:"age_of_majority"`
		State         string   `yaml:"state"`
		Guardians     []string `yaml:"guardians"`
	} `yaml:"minors"`
	Officer struct {
		Name  string `yaml:"name"`
		Title string `yaml:"title"`
	} `yaml:"officer"`
}

func loadNotice(data []byte) (Fixture, error) {
	var rec NoticeRecord
	if err := decode("notice", data, &rec); err != nil {
		return Fixture{}, err
	}
	if err := rec.validate(); err != nil {
		return Fixture{}, err
	}
	return Fixture{
		Name:   "notice",
		Output: rec.Output,
		Title:  rec.Title,
		Build:  rec.Build,
	}, nil
}

func (r NoticeRecord) validate() error {
	for field, v := range map[string]string{
		"output":       r.Output,
		"title":        r.Title,
		"trustee.name": r.Trustee.Name,
		"trust.name":   r.Trust.Name,
	} {
		if err := requireField("notice", field, v); err != nil {
			return err
		}
	}
	if r.WithdrawalDays <= 0 {
		return fmt.Errorf("fixture notice: %w: withdrawal_days must be positive", ErrInvalidRecord)
	}
	_, err := r.Share()
	return err
}

// Share is each beneficiary's pro-rata part of the contribution, capped at
// the annual exclusion. A total that does not split evenly to the cent, or a
// stated share that disagrees, is an error.
func (r NoticeRecord) Share() (Money, error) {
	n := int64(len(r.Beneficiaries))
	if n == 0 {
		return 0, fmt.Errorf("fixture notice: %w", ErrNoBeneficiaries)
	}
	total := int64(r.Contribution.Total)
	if total%n != 0 {
		return 0, fmt.Errorf("fixture notice: %w: %s between %d", ErrUnevenShare, r.Contribution.Total, n)
	}
	share := Money(total / n)
	if r.AnnualExclusion > 0 && share > r.AnnualExclusion {
		share = r.AnnualExclusion
	}
	if r.StatedShare != nil && *r.StatedShare != share {
		return 0, fmt.Errorf("fixture notice: %w: stated %s, computed %s", ErrShareMismatch, *r.StatedShare, share)
	}
	return share, nil
}

// Deadline is the last day of the withdrawal window.
func (r NoticeRecord) Deadline() Date {
	return r.NoticeDate.AddDays(r.WithdrawalDays)
}

// Build lays the notice out as a Document.
func (r NoticeRecord) Build(sheet *trustdocs.StyleSheet) (trustdocs.Document, error) {
	share, err := r.Share()
	if err != nil {
		return trustdocs.Document{}, err
	}
	st, err := styles(sheet, trustdocs.StyleNormal, trustdocs.StyleTitle, trustdocs.StyleHeading3, trustdocs.StyleBodyText)
	if err != nil {
		return trustdocs.Document{}, err
	}
	normal := st[trustdocs.StyleNormal]
	body := st[trustdocs.StyleBodyText]
	h3 := st[trustdocs.StyleHeading3]
	header := normal.Named("Header").WithAlign(trustdocs.AlignRight)
	title := st[trustdocs.StyleTitle].WithSize(14).WithSpacing(0, 20)
	esc := trustdocs.EscapeMarkup

	headerLines := []string{esc(r.Trustee.Name)}
	for _, l := range r.Trustee.Address {
		headerLines = append(headerLines, esc(l))
	}
	headerLines = append(headerLines, "Phone: "+esc(r.Trustee.Phone))

	deadline := r.Deadline().Long()
	days := r.WithdrawalDays
	heading := func(s string) trustdocs.Block {
		return trustdocs.NewParagraph("<b>"+esc(s)+"</b>", h3)
	}
	para := func(format string, args ...any) trustdocs.Block {
		return trustdocs.NewParagraph(fmt.Sprintf(format, args...), body)
	}

	blocks := []trustdocs.Block{
		trustdocs.NewParagraph(strings.Join(headerLines, "<br/>"), header),
		spacer(0.3),
		trustdocs.NewParagraph("Date: "+r.NoticeDate.Long(), normal),
		spacer(0.2),
		trustdocs.NewParagraph(esc(r.Title), title),
	}
	if r.Subtitle != "" {
		blocks = append(blocks, trustdocs.NewParagraph(esc(r.Subtitle), h3))
	}
	blocks = append(blocks,
		spacer(0.2),
		heading("RE: "+r.Trust.Name),
		spacer(0.15),
		para("Dear Trust Beneficiary:"),
		spacer(0.1),
		para("This letter is to notify you that a contribution has been made to %s (the \"Trust\") dated %s. "+
			"As a beneficiary of the Trust, you have certain withdrawal rights as described below.",
			esc(r.Trust.Name), r.Trust.Dated.Long()),
		spacer(0.1),
		heading("CONTRIBUTION DETAILS"),
		spacer(0.1),
		para("<b>Contribution Date:</b> %s", r.Contribution.Date.Long()),
		para("<b>Total Contribution Amount:</b> %s", r.Contribution.Total),
		para("<b>Purpose:</b> %s", esc(r.Contribution.Purpose)),
		spacer(0.1),
		heading("YOUR WITHDRAWAL RIGHTS"),
		spacer(0.1),
		para("Pursuant to %s of the Trust Agreement, you have the right to withdraw your pro-rata share "+
			"of this contribution, up to the annual gift tax exclusion amount of %s.",
			esc(r.Trust.WithdrawalArticle), r.AnnualExclusion.Whole()),
		spacer(0.1),
		para("<b>Your Pro-Rata Share:</b> %s (%s of total contribution)", share, shareWord(share, r.Contribution.Total, len(r.Beneficiaries))),
		spacer(0.1),
		heading("IMPORTANT DEADLINE"),
		spacer(0.1),
		para("You have <b>%s (%d) DAYS</b> from the date of this notice to exercise your withdrawal right. "+
			"Your withdrawal right will expire at %s on <b>%s</b>.",
			strings.ToUpper(numberWords(days)), days, esc(r.DeadlineTime), deadline),
		spacer(0.1),
		para("If you do not exercise your withdrawal right within this %d-day period, your right to withdraw "+
			"this contribution will lapse, and the funds will remain in the Trust for your future benefit according "+
			"to the terms of the Trust Agreement.", days),
		spacer(0.1),
		heading("HOW TO EXERCISE YOUR WITHDRAWAL RIGHT"),
		spacer(0.1),
		para("To exercise your withdrawal right, you must submit a written request to the Trustee at the address "+
			"shown above. The request must be received by the Trustee no later than %s. You may deliver "+
			"the request in person, by mail, by email to %s, or by fax to %s.",
			deadline, esc(r.Trustee.Email), esc(r.Trustee.Fax)),
		spacer(0.1),
		heading("BENEFICIARY INFORMATION"),
		spacer(0.1),
		para("This notice is being sent to the following beneficiaries:"),
		spacer(0.1),
		r.beneficiaryTable(share),
		spacer(0.3),
	)
	if len(r.Minors.Guardians) > 0 {
		blocks = append(blocks,
			heading("NOTE FOR MINOR BENEFICIARIES:"),
			spacer(0.1),
			para("For beneficiaries who have not reached the age of majority (%d in %s), "+
				"withdrawal requests must be made by the beneficiary's legal guardian. This notice is "+
				"being sent to %s as natural guardians of the minor beneficiaries.",
				r.Minors.AgeOfMajority, esc(r.Minors.State), esc(joinNames(r.Minors.Guardians))),
			spacer(0.3),
		)
	}
	blocks = append(blocks,
		para("If you have any questions regarding this notice or your withdrawal rights, please "+
			"contact our office at %s or %s.", esc(r.Trustee.Phone), esc(r.Trustee.Email)),
		spacer(0.3),
		trustdocs.NewParagraph("Sincerely,", normal),
		spacer(0.5),
		trustdocs.NewParagraph(strings.Repeat("_", 40), normal),
		trustdocs.NewParagraph(fmt.Sprintf("<b>%s</b><br/>%s<br/>%s",
			esc(r.Officer.Name), esc(r.Officer.Title), esc(r.Trustee.Name)), normal),
	)
	if len(r.Minors.Guardians) > 0 {
		blocks = append(blocks,
			spacer(0.3),
			trustdocs.NewParagraph(fmt.Sprintf("<i>cc: %s (as Grantors and Guardians)</i>",
				esc(joinNames(r.Minors.Guardians))), normal),
		)
	}
	return trustdocs.NewDocument("notice", trustdocs.LetterGeometry(), blocks...), nil
}

// shareWord names the share as a fraction of the total. A share capped at
// the exclusion is no longer a clean fraction and is described as such.
func shareWord(share, total Money, n int) string {
	if int64(share)*int64(n) == int64(total) {
		return fractionWord(n)
	}
	return "Capped portion"
}

func (r NoticeRecord) beneficiaryTable(share Money) trustdocs.Table {
	rows := [][]string{{"Beneficiary Name", "Date of Birth", "Withdrawal Amount"}}
	for _, b := range r.Beneficiaries {
		rows = append(rows, []string{b.Name, b.Born.Long(), share.String()})
	}
	c := trustdocs.Cell
	in := trustdocs.Inch
	return trustdocs.NewTable(escapeRows(rows), []float64{2.2 * in, 2 * in, 2.3 * in},
		trustdocs.Background(c(0, 0), c(-1, 0), trustdocs.MustHex("#4a4a4a")),
		trustdocs.TextColor(c(0, 0), c(-1, 0), trustdocs.WhiteSmoke),
		trustdocs.Bold(c(0, 0), c(-1, 0)),
		trustdocs.FontSize(c(0, 0), c(-1, -1), 9),
		trustdocs.Grid(c(0, 0), c(-1, -1), 0.5, trustdocs.Grey),
		trustdocs.Align(c(0, 0), c(-1, -1), trustdocs.VAlignMiddle),
		trustdocs.Padding(trustdocs.RuleLeftPadding, c(0, 0), c(-1, -1), 8),
		trustdocs.Padding(trustdocs.RuleRightPadding, c(0, 0), c(-1, -1), 8),
		trustdocs.Padding(trustdocs.RuleTopPadding, c(0, 0), c(-1, -1), 6),
		trustdocs.Padding(trustdocs.RuleBottomPadding, c(0, 0), c(-1, -1), 6),
	).WithHeaderRows(1)
}
