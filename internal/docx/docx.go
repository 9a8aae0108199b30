// Package docx converts the body of a composed HTML document into a
// WordprocessingML (.docx) package.
//
// The converter keeps document structure, not layout: headings, paragraphs,
// lists, tables, bold/italic/monospace runs, line breaks and page breaks.
// Images and styling are dropped. Packaging and the default styles come
// from godocx.
package docx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"golang.org/x/net/html"
)

// ErrConversion indicates the DOCX package could not be produced.
var ErrConversion = errors.New("DOCX conversion failed")

// MIMEType is the content type of the produced package.
const MIMEType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Options controls the produced document.
type Options struct {
	// CantSplitRows keeps every table row on a single page.
	CantSplitRows bool
	// Footer is printed at the bottom of every page. Empty means no text.
	Footer string
	// PageNumbers appends the page number to the footer.
	PageNumbers bool
}

func (o Options) hasFooter() bool {
	return o.Footer != "" || o.PageNumbers
}

// Convert renders body (the inner HTML of a <body> element) as a .docx file.
func Convert(ctx context.Context, body string, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	root, err := html.Parse(strings.NewReader("<!DOCTYPE html><html><head></head><body>" + body + "</body></html>"))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing HTML: %v", ErrConversion, err)
	}
	bodyNode := findBody(root)
	if bodyNode == nil {
		return nil, fmt.Errorf("%w: no body element", ErrConversion)
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("%w: creating document: %v", ErrConversion, err)
	}

	w := newBodyWriter(doc, opts)
	w.walkChildren(bodyNode, inline{}, "")
	w.flush("")
	if w.err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConversion, w.err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	setPageLayout(doc)
	if opts.hasFooter() {
		if err := addFooter(doc, opts); err != nil {
			return nil, fmt.Errorf("%w: footer: %v", ErrConversion, err)
		}
	}

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return nil, fmt.Errorf("%w: writing package: %v", ErrConversion, err)
	}
	return buf.Bytes(), nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
