// Package fixtures holds the legal and insurance documents trustdocs
// generates. Names, dates, amounts and clause text live in embedded YAML
// records; builders turn a record into a trustdocs.Document and derive the
// values that depend on other values (shares, deadlines, signature blocks).
package fixtures

import (
	"embed"
	"errors"
	"fmt"

	"pkt.systems/trustdocs"
	"pkt.systems/trustdocs/internal/yamlutil"
)

//go:embed data/*.yaml
var records embed.FS

var (
	ErrUnknownFixture  = errors.New("unknown fixture")
	ErrInvalidRecord   = errors.New("invalid fixture record")
	ErrNoBeneficiaries = errors.New("notice has no beneficiaries")
	ErrNoSignatories   = errors.New("trust has no signatories")
	ErrUnevenShare     = errors.New("contribution does not divide evenly between beneficiaries")
	ErrShareMismatch   = errors.New("stated share disagrees with computed share")
)

// Fixture is a named document ready to build.
type Fixture struct {
	Name   string
	Output string
	Title  string
	Build  func(sheet *trustdocs.StyleSheet) (trustdocs.Document, error)
}

type loader func(data []byte) (Fixture, error)

var order = []string{"trust", "policy", "notice"}

var loaders = map[string]loader{
	"trust":  loadTrust,
	"policy": loadPolicy,
	"notice": loadNotice,
}

// Names returns the fixture names in generation order.
func Names() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// Load decodes the embedded record for name.
func Load(name string) (Fixture, error) {
	load, ok := loaders[name]
	if !ok {
		return Fixture{}, fmt.Errorf("%w: %q", ErrUnknownFixture, name)
	}
	data, err := records.ReadFile("data/" + name + ".yaml")
	if err != nil {
		return Fixture{}, fmt.Errorf("fixture %s: %w", name, err)
	}
	return load(data)
}

// All loads every fixture in generation order.
func All() ([]Fixture, error) {
	out := make([]Fixture, 0, len(order))
	for _, name := range order {
		f, err := Load(name)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func decode(name string, data []byte, v any) error {
	if err := yamlutil.UnmarshalStrict(data, v); err != nil {
		return fmt.Errorf("fixture %s: %w: %w", name, ErrInvalidRecord, err)
	}
	return nil
}

func spacer(inches float64) trustdocs.Block {
	return trustdocs.NewSpacer(inches * trustdocs.Inch)
}

// styles resolves the named presets a builder needs in one go.
func styles(sheet *trustdocs.StyleSheet, names ...string) (map[string]trustdocs.Style, error) {
	if sheet == nil {
		sheet = trustdocs.DefaultStyleSheet()
	}
	out := make(map[string]trustdocs.Style, len(names))
	for _, n := range names {
		st, err := sheet.Lookup(n)
		if err != nil {
			return nil, err
		}
		out[n] = st
	}
	return out, nil
}

func requireField(name, field, value string) error {
	if value == "" {
		return fmt.Errorf("fixture %s: %w: %s is required", name, ErrInvalidRecord, field)
	}
	return nil
}
