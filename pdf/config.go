package pdf

import "time"

// Config holds PDF rendering settings. Zero fields fall back to
// DefaultConfig.
type Config struct {
	// FontFamily names the family registered for the TrueType fonts below.
	// It is ignored when only core fonts are used.
	FontFamily     string
	RegularFont    string
	BoldFont       string
	ItalicFont     string
	BoldItalicFont string

	DisableCompression bool

	// CreationDate is stamped as both creation and modification date so
	// that output bytes only depend on the document.
	CreationDate time.Time
	Producer     string
	Creator      string
	Author       string
	Title        string
}

// DefaultCreationDate is the fixed date stamped into every PDF unless the
// configuration says otherwise.
var DefaultCreationDate = time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

const embeddedFontFamily = "TrustdocsEmbedded"

// DefaultConfig returns a baseline configuration using PDF core fonts.
func DefaultConfig() Config {
	return Config{
		FontFamily:   embeddedFontFamily,
		CreationDate: DefaultCreationDate,
		Producer:     "trustdocs",
		Creator:      "trustdocs",
	}
}

func applyConfig(dst *Config, src Config) {
	if src.FontFamily != "" {
		dst.FontFamily = src.FontFamily
	}
	if src.RegularFont != "" {
		dst.RegularFont = src.RegularFont
	}
	if src.BoldFont != "" {
		dst.BoldFont = src.BoldFont
	}
	if src.ItalicFont != "" {
		dst.ItalicFont = src.ItalicFont
	}
	if src.BoldItalicFont != "" {
		dst.BoldItalicFont = src.BoldItalicFont
	}
	if src.DisableCompression {
		dst.DisableCompression = true
	}
	if !src.CreationDate.IsZero() {
		dst.CreationDate = src.CreationDate
	}
	if src.Producer != "" {
		dst.Producer = src.Producer
	}
	if src.Creator != "" {
		dst.Creator = src.Creator
	}
	if src.Author != "" {
		dst.Author = src.Author
	}
	if src.Title != "" {
		dst.Title = src.Title
	}
}

func (c Config) usesTrueType() bool {
	return c.RegularFont != "" || c.BoldFont != "" || c.ItalicFont != ""
}
