// Package trustdocs models paged documents built from a fixed sequence of
// content blocks: paragraphs, spacers and fixed-layout tables.
//
// A Document is assembled once from immutable blocks and handed to a
// renderer. The pdf subpackage lays it out on paged canvas and writes a PDF;
// WriteText produces a plain-text preview for the terminal.
//
// Core properties:
//   - Blocks are values; constructors and accessors copy their slices
//   - Styles come from an explicit, immutable StyleSheet
//   - Rendering is deterministic: no clocks, no random identifiers
//
// Example:
//
//	sheet := trustdocs.DefaultStyleSheet()
//	body, _ := sheet.Lookup(trustdocs.StyleBodyText)
//	doc := trustdocs.NewDocument("memo", trustdocs.LetterGeometry(),
//		trustdocs.NewParagraph("<b>RE:</b> Annual premium", body),
//		trustdocs.NewSpacer(0.2*trustdocs.Inch),
//	)
//	if err := doc.Validate(); err != nil {
//		log.Fatal(err)
//	}
//
// Errors reported while validating or laying out a document are
// *LayoutError values; failures touching the filesystem are *IOError values.
// Both wrap sentinel errors usable with errors.Is.
package trustdocs
