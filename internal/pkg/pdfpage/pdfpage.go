// Package pdfpage derives a page count from raw PDF bytes.
//
// The portal only needs the number for running totals, so this is a
// best-effort scan of the cross-reference-visible objects, not a full PDF
// parser. Files that are not PDFs contribute zero pages.
package pdfpage

import (
	"bytes"
	"regexp"
	"strconv"
)

var (
	pdfHeader = []byte("%PDF-")
	// A page object: "/Type /Page". \b keeps "/Pages" (the page tree node)
	// from matching.
	pageObjRe = regexp.MustCompile(`/Type\s*/Page\b`)
	// The page tree root carries "/Type /Pages ... /Count N".
	pagesCountRe = regexp.MustCompile(`/Type\s*/Pages[^>]*?/Count\s+(\d+)`)
)

// Count returns the number of pages in the document, or 0 if the bytes do
// not look like a PDF or no page objects are visible (e.g. fully inside
// compressed object streams).
func Count(data []byte) int {
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\r\n \t"), pdfHeader) {
		return 0
	}

	if n := len(pageObjRe.FindAll(data, -1)); n > 0 {
		return n
	}

	// Object-stream PDFs hide page objects; fall back to the page tree count.
	best := 0
	for _, m := range pagesCountRe.FindAllSubmatch(data, -1) {
		if n, err := strconv.Atoi(string(m[1])); err == nil && n > best {
			best = n
		}
	}
	return best
}
