package docx

import (
	"bytes"
	"encoding/xml"
	"strconv"

	ooxml "github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"
	"github.com/gomutex/godocx/wml/stypes"
)

// OOXML namespaces.
const (
	nsMain = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRel  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

const (
	footerPart        = "word/footer1.xml"
	footerRelType     = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/footer"
	footerContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.footer+xml"
)

// A4 in twips with 2.5cm margins.
const (
	pageWidthTwips  = 11906
	pageHeightTwips = 16838
	marginTwips     = 1418
	hdrFtrTwips     = 709
)

// setPageLayout replaces the Letter section of the base template with A4.
func setPageLayout(doc *ooxml.RootDoc) {
	body := doc.Document.Body
	if body.SectPr == nil {
		body.SectPr = ctypes.NewSectionProper()
	}
	body.SectPr.PageSize = &ctypes.PageSize{
		Width:  ptr[uint64](pageWidthTwips),
		Height: ptr[uint64](pageHeightTwips),
	}
	body.SectPr.PageMargin = &ctypes.PageMargin{
		Top:    ptr(marginTwips),
		Right:  ptr(marginTwips),
		Bottom: ptr(marginTwips),
		Left:   ptr(marginTwips),
		Header: ptr(hdrFtrTwips),
		Footer: ptr(hdrFtrTwips),
		Gutter: ptr(0),
	}
}

// addFooter stores footer1.xml and links it from the document section.
func addFooter(doc *ooxml.RootDoc, opts Options) error {
	part, err := footerXML(opts)
	if err != nil {
		return err
	}
	doc.FileMap.Store(footerPart, part)

	id := "rId" + strconv.Itoa(doc.Document.IncRelationID())
	doc.Document.DocRels.Relationships = append(doc.Document.DocRels.Relationships, &ooxml.Relationship{
		ID:     id,
		Type:   footerRelType,
		Target: "footer1.xml",
	})
	if err := doc.ContentType.AddOverride("/"+footerPart, footerContentType); err != nil {
		return err
	}
	doc.Document.Body.SectPr.FooterReference = &ctypes.FooterReference{Type: stypes.HdrFtrDefault, ID: id}
	return nil
}

// footerXML renders a centered footer paragraph: the footer text followed
// by the page number when enabled.
func footerXML(opts Options) ([]byte, error) {
	p := &ctypes.Paragraph{
		Property: &ctypes.ParagraphProp{
			Style:         ctypes.NewParagraphStyle("Footer"),
			Justification: ctypes.NewGenSingleStrVal(stypes.JustificationCenter),
		},
	}
	if opts.Footer != "" {
		text := opts.Footer
		if opts.PageNumbers {
			text += " – "
		}
		p.Children = append(p.Children, ctypes.ParagraphChild{Run: &ctypes.Run{
			Children: []ctypes.RunChild{{Text: ctypes.TextFromString(text)}},
		}})
	}
	if opts.PageNumbers {
		p.Children = append(p.Children, ctypes.ParagraphChild{Run: &ctypes.Run{
			Children: []ctypes.RunChild{{PgNumBlock: &ctypes.Empty{}}},
		}})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	start := xml.StartElement{
		Name: xml.Name{Local: "w:ftr"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:w"}, Value: nsMain},
			{Name: xml.Name{Local: "xmlns:r"}, Value: nsRel},
		},
	}
	if err := enc.EncodeToken(start); err != nil {
		return nil, err
	}
	if err := enc.Encode(p); err != nil {
		return nil, err
	}
	if err := enc.EncodeToken(start.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// appendTable adds t to the document body. The godocx table wrapper keeps
// row properties private, so the table is encoded and decoded back through
// the body codec to carry cantSplit and tblHeader.
func appendTable(doc *ooxml.RootDoc, t *ctypes.Table) error {
	var buf bytes.Buffer
	buf.WriteString(`<w:body xmlns:w="` + nsMain + `">`)
	if err := xml.NewEncoder(&buf).Encode(t); err != nil {
		return err
	}
	buf.WriteString(`</w:body>`)

	frag := ooxml.NewBody(doc)
	if err := xml.Unmarshal(buf.Bytes(), frag); err != nil {
		return err
	}
	doc.Document.Body.Children = append(doc.Document.Body.Children, frag.Children...)
	return nil
}

func ptr[T any](v T) *T {
	return &v
}
