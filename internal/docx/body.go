package docx

import (
	"strconv"
	"strings"

	ooxml "github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"
	"github.com/gomutex/godocx/wml/stypes"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Usable text width of an A4 page with 2.5cm margins, in twips.
const textWidthTwips = 9070

const monoFont = "Courier New"

// inline is the character formatting inherited by text nodes.
type inline struct {
	bold   bool
	italic bool
	mono   bool
	pre    bool
}

// run is one formatted span of a paragraph.
type run struct {
	text string
	fmt  inline
	brk  bool // line break
}

// bodyWriter streams block content into document paragraphs and tables.
// At the top level it writes into the document body; inside a table cell
// it collects the cell's block content instead.
type bodyWriter struct {
	opts Options
	doc  *ooxml.RootDoc
	cell []ctypes.TCBlockContent
	runs []run
	err  error
}

func newBodyWriter(doc *ooxml.RootDoc, opts Options) *bodyWriter {
	return &bodyWriter{opts: opts, doc: doc}
}

func newCellWriter(opts Options) *bodyWriter {
	return &bodyWriter{opts: opts}
}

// skipped elements carry no document text.
var skipped = map[atom.Atom]bool{
	atom.Head: true, atom.Script: true, atom.Style: true, atom.Title: true,
	atom.Img: true, atom.Svg: true, atom.Noscript: true, atom.Template: true,
}

// blockStyles maps block elements to styles of the base template.
var blockStyles = map[atom.Atom]string{
	atom.H1: "Heading1", atom.H2: "Heading2", atom.H3: "Heading3",
	atom.H4: "Heading4", atom.H5: "Heading5", atom.H6: "Heading6",
	atom.Blockquote: "Quote", atom.Pre: "MacroText",
}

// blocks are elements that start and end a paragraph.
var blocks = map[atom.Atom]bool{
	atom.P: true, atom.Div: true, atom.Section: true, atom.Article: true,
	atom.Header: true, atom.Footer: true, atom.Main: true, atom.Nav: true,
	atom.Ul: true, atom.Ol: true, atom.Dl: true, atom.Dt: true, atom.Dd: true,
	atom.Figure: true, atom.Figcaption: true, atom.Hr: true,
}

func (w *bodyWriter) walkChildren(n *html.Node, f inline, style string) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c, f, style)
	}
}

func (w *bodyWriter) walk(n *html.Node, f inline, style string) {
	switch n.Type {
	case html.TextNode:
		w.text(n.Data, f)
		return
	case html.ElementNode:
	default:
		w.walkChildren(n, f, style)
		return
	}

	a := n.DataAtom
	if skipped[a] {
		return
	}

	switch {
	case a == atom.Br:
		w.runs = append(w.runs, run{brk: true})
	case a == atom.Strong || a == atom.B:
		f.bold = true
		w.walkChildren(n, f, style)
	case a == atom.Em || a == atom.I:
		f.italic = true
		w.walkChildren(n, f, style)
	case a == atom.Code || a == atom.Kbd || a == atom.Samp:
		f.mono = true
		w.walkChildren(n, f, style)
	case a == atom.Table:
		w.flush(style)
		w.table(n, f)
	case a == atom.Li:
		w.flush(style)
		w.runs = append(w.runs, run{text: listMarker(n), fmt: f})
		w.walkChildren(n, f, "ListParagraph")
		w.flush("ListParagraph")
	case a == atom.Div && hasClass(n, "page-break"):
		w.flush(style)
		w.pageBreak()
	case blockStyles[a] != "":
		w.flush(style)
		if a == atom.Pre {
			f.pre, f.mono = true, true
		}
		w.walkChildren(n, f, blockStyles[a])
		w.flush(blockStyles[a])
	case blocks[a]:
		w.flush(style)
		if hasClass(n, "raw-content") {
			f.pre = true
		}
		w.walkChildren(n, f, style)
		w.flush(style)
	default:
		w.walkChildren(n, f, style)
	}
}

// text appends a text node, collapsing whitespace outside preformatted
// content. Preformatted newlines become line breaks.
func (w *bodyWriter) text(s string, f inline) {
	if !f.pre {
		s = collapseSpace(s)
		if s == "" {
			return
		}
		w.runs = append(w.runs, run{text: s, fmt: f})
		return
	}
	for i, line := range strings.Split(s, "\n") {
		if i > 0 {
			w.runs = append(w.runs, run{brk: true})
		}
		if line != "" {
			w.runs = append(w.runs, run{text: line, fmt: f})
		}
	}
}

// paragraph opens a new paragraph at the current position.
func (w *bodyWriter) paragraph() *ctypes.Paragraph {
	if w.doc != nil {
		return w.doc.AddEmptyParagraph().GetCT()
	}
	p := &ctypes.Paragraph{}
	w.cell = append(w.cell, ctypes.TCBlockContent{Paragraph: p})
	return p
}

func (w *bodyWriter) pageBreak() {
	if w.doc != nil {
		w.doc.AddPageBreak()
		return
	}
	p := w.paragraph()
	p.Children = append(p.Children, ctypes.ParagraphChild{Run: &ctypes.Run{
		Children: []ctypes.RunChild{{Break: ctypes.NewBreak(stypes.BreakTypePage)}},
	}})
}

// flush writes pending runs as one paragraph. Whitespace-only paragraphs
// are dropped.
func (w *bodyWriter) flush(style string) {
	runs := trimRuns(w.runs)
	w.runs = w.runs[:0]
	if len(runs) == 0 {
		return
	}

	p := w.paragraph()
	if style != "" {
		p.Property = &ctypes.ParagraphProp{Style: ctypes.NewParagraphStyle(style)}
	}
	for _, r := range runs {
		p.Children = append(p.Children, ctypes.ParagraphChild{Run: newRun(r)})
	}
}

// table writes a grid table. Header cells are bold and header rows repeat
// on every page.
func (w *bodyWriter) table(n *html.Node, f inline) {
	rows := collectRows(n)
	if len(rows) == 0 {
		return
	}

	cols := 0
	for _, r := range rows {
		if c := len(cells(r.node)); c > cols {
			cols = c
		}
	}
	if cols == 0 {
		return
	}

	colWidth := textWidthTwips / cols
	tbl := &ctypes.Table{
		TableProp: ctypes.TableProp{
			Style: ctypes.NewCTString("TableGrid"),
			Width: ctypes.NewTableWidth(5000, stypes.TableWidthPct),
		},
	}
	for i := 0; i < cols; i++ {
		tbl.Grid.Col = append(tbl.Grid.Col, ctypes.Column{Width: ptr(uint64(colWidth))})
	}

	for _, r := range rows {
		row := &ctypes.Row{}
		if w.opts.CantSplitRows || r.header {
			row.Property = &ctypes.RowProperty{}
			if w.opts.CantSplitRows {
				row.Property.CantSplit = &ctypes.OnOff{}
			}
			if r.header {
				row.Property.Header = &ctypes.OnOff{}
			}
		}

		rowCells := cells(r.node)
		for i := 0; i < cols; i++ {
			cell := &ctypes.Cell{
				Property: &ctypes.CellProperty{Width: ctypes.NewTableWidth(colWidth, stypes.TableWidthDxa)},
			}
			if i < len(rowCells) {
				cf := f
				if rowCells[i].DataAtom == atom.Th {
					cf.bold = true
				}
				sub := newCellWriter(w.opts)
				sub.walkChildren(rowCells[i], cf, "")
				sub.flush("")
				cell.Contents = sub.cell
			}
			// A cell must end with a paragraph.
			if k := len(cell.Contents); k == 0 || cell.Contents[k-1].Paragraph == nil {
				cell.Contents = append(cell.Contents, ctypes.TCBlockContent{Paragraph: &ctypes.Paragraph{}})
			}
			row.Contents = append(row.Contents, ctypes.TRCellContent{Cell: cell})
		}
		tbl.RowContents = append(tbl.RowContents, ctypes.RowContent{Row: row})
	}

	if w.doc == nil {
		w.cell = append(w.cell, ctypes.TCBlockContent{Table: tbl})
		return
	}
	if err := appendTable(w.doc, tbl); err != nil && w.err == nil {
		w.err = err
	}
}

type tableRow struct {
	node   *html.Node
	header bool
}

// collectRows returns the rows of a table in document order, without
// descending into nested tables.
func collectRows(table *html.Node) []tableRow {
	var rows []tableRow
	var visit func(n *html.Node, header bool)
	visit = func(n *html.Node, header bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.DataAtom {
			case atom.Thead:
				visit(c, true)
			case atom.Tbody, atom.Tfoot:
				visit(c, false)
			case atom.Tr:
				rows = append(rows, tableRow{node: c, header: header})
			}
		}
	}
	visit(table, false)
	return rows
}

func cells(tr *html.Node) []*html.Node {
	var out []*html.Node
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
			out = append(out, c)
		}
	}
	return out
}

// listMarker returns "• " for unordered items and "N. " for ordered ones.
func listMarker(li *html.Node) string {
	parent := li.Parent
	if parent == nil || parent.DataAtom != atom.Ol {
		return "• "
	}
	n := 1
	if start, ok := attr(parent, "start"); ok {
		if v, err := strconv.Atoi(start); err == nil {
			n = v
		}
	}
	for s := parent.FirstChild; s != nil && s != li; s = s.NextSibling {
		if s.Type == html.ElementNode && s.DataAtom == atom.Li {
			n++
		}
	}
	return strconv.Itoa(n) + ". "
}

// newRun converts a pending run into a WordprocessingML run.
func newRun(r run) *ctypes.Run {
	out := &ctypes.Run{}
	if r.fmt.bold || r.fmt.italic || r.fmt.mono {
		out.Property = &ctypes.RunProperty{}
		if r.fmt.mono {
			out.Property.Fonts = &ctypes.RunFonts{Ascii: monoFont, HAnsi: monoFont, CS: monoFont}
		}
		if r.fmt.bold {
			out.Property.Bold = &ctypes.OnOff{}
		}
		if r.fmt.italic {
			out.Property.Italic = &ctypes.OnOff{}
		}
	}
	if r.brk {
		out.Children = []ctypes.RunChild{{Break: &ctypes.Break{}}}
	} else {
		out.Children = []ctypes.RunChild{{Text: ctypes.TextFromString(r.text)}}
	}
	return out
}

// trimRuns drops leading and trailing whitespace and breaks. It returns nil
// when nothing visible remains.
func trimRuns(runs []run) []run {
	start, end := 0, len(runs)
	for start < end && blank(runs[start]) {
		start++
	}
	for end > start && blank(runs[end-1]) {
		end--
	}
	if start == end {
		return nil
	}

	out := make([]run, end-start)
	copy(out, runs[start:end])
	if !out[0].fmt.pre {
		out[0].text = strings.TrimLeft(out[0].text, " ")
	}
	if last := len(out) - 1; !out[last].fmt.pre {
		out[last].text = strings.TrimRight(out[last].text, " ")
	}
	return out
}

func blank(r run) bool {
	return r.brk || strings.TrimSpace(r.text) == ""
}

// collapseSpace folds every whitespace sequence into one space, keeping a
// single leading or trailing space so adjacent inline runs stay separated.
func collapseSpace(s string) string {
	if s == "" {
		return ""
	}
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return " "
	}
	out := strings.Join(fields, " ")
	if isSpace(s[0]) {
		out = " " + out
	}
	if isSpace(s[len(s)-1]) {
		out += " "
	}
	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func hasClass(n *html.Node, class string) bool {
	v, ok := attr(n, "class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
