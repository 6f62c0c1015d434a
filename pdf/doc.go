// Package pdf renders trustdocs documents to PDF.
//
// Blocks are laid out top to bottom inside the page frame (page size minus
// margins) with an explicit page-break policy:
//
//   - Paragraphs split between lines. Space before a paragraph is dropped at
//     the top of a page; space after that does not fit is dropped.
//   - A spacer that does not fit ends the page and is discarded.
//   - Tables split between rows and repeat their header rows on every
//     continuation page. A row taller than an empty frame is a layout error.
//
// Example:
//
//	res, err := pdf.RenderFile("outputs/memo.pdf", doc, pdf.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(res.Pages, "pages")
//
// Core fonts (Helvetica, Times, Courier) are used unless TrueType font paths
// are configured; text set in core fonts is translated to Windows-1252 and
// runes outside that code page print as '?'.
package pdf
