package report

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ppiankov/gendiv/internal/model"
)

const stylesheet = `body{font-family:sans-serif;margin:2em}
table{border-collapse:collapse}
th,td{border:1px solid #ccc;padding:4px 8px}
td.num{text-align:right}`

// element builds an element node with the given children
func element(a atom.Atom, attrs []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
	for _, c := range children {
		n.AppendChild(c)
	}
	return n
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func class(name string) []html.Attribute {
	return []html.Attribute{{Key: "class", Val: name}}
}

func cell(s string) *html.Node {
	return element(atom.Td, nil, text(s))
}

func numCell(s string) *html.Node {
	return element(atom.Td, class("num"), text(s))
}

func headerRow(names ...string) *html.Node {
	tr := element(atom.Tr, nil)
	for _, name := range names {
		tr.AppendChild(element(atom.Th, nil, text(name)))
	}
	return element(atom.Thead, nil, tr)
}

// document wraps body content in a complete HTML page
func document(title string, body ...*html.Node) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	doc.AppendChild(element(atom.Html, nil,
		element(atom.Head, nil,
			element(atom.Meta, []html.Attribute{{Key: "charset", Val: "utf-8"}}),
			element(atom.Title, nil, text(title)),
			element(atom.Style, nil, text(stylesheet)),
		),
		element(atom.Body, nil, body...),
	))
	return doc
}

func writeDocument(w io.Writer, doc *html.Node) error {
	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("render HTML: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("render HTML: %w", err)
	}
	return nil
}

func diversityHTML(w io.Writer, rep *model.DiversityReport) error {
	tbody := element(atom.Tbody, nil)
	for _, res := range rep.Results {
		tbody.AppendChild(element(atom.Tr, nil,
			cell(string(res.Category)),
			numCell(strconv.Itoa(res.UniqueCount)),
			numCell(strconv.FormatFloat(res.AvgDistance, 'f', 4, 64)),
			cell(string(res.Kind)),
		))
	}

	doc := document("Input Diversity",
		element(atom.H1, nil, text("Input Diversity")),
		element(atom.P, nil, text(fmt.Sprintf("Source: %s, files analyzed: %d", rep.Source, rep.Chunks))),
		element(atom.Table, nil,
			headerRow("Input Category", "# of Unique Inputs", "Average Pairwise Distance", "Metric"),
			tbody,
		),
	)
	return writeDocument(w, doc)
}

func signaturesHTML(w io.Writer, rep *model.SignatureReport) error {
	tbody := element(atom.Tbody, nil)
	for _, c := range rep.Chunks {
		if c.Tally.Semantic == 0 {
			continue
		}
		tbody.AppendChild(element(atom.Tr, nil,
			cell(c.ID),
			numCell(strconv.Itoa(c.Tally.Semantic)),
			numCell(strconv.Itoa(c.Tally.Mutated)),
		))
	}
	tbody.AppendChild(element(atom.Tr, class("total"),
		element(atom.Th, nil, text("Total")),
		numCell(strconv.Itoa(rep.Total.Semantic)),
		numCell(strconv.Itoa(rep.Total.Mutated)),
	))

	body := []*html.Node{
		element(atom.H1, nil, text("Mutation Signatures")),
		element(atom.P, nil, text(fmt.Sprintf("Source: %s, files analyzed: %d", rep.Source, len(rep.Chunks)))),
		element(atom.Table, nil,
			headerRow("File", "Semantic Inputs", "Mutated Inputs"),
			tbody,
		),
		element(atom.P, nil, text(fmt.Sprintf("Percentage mutated: %.2f%%", rep.Total.Percentage()))),
	}

	list := element(atom.Ul, nil)
	for _, c := range rep.Chunks {
		for _, m := range c.Matches {
			list.AppendChild(element(atom.Li, nil,
				text(c.ID+" "),
				element(atom.Code, nil, text(m.Name+" = "+m.Value)),
				text(" ("+string(m.Signature)+")"),
			))
		}
	}
	if list.FirstChild != nil {
		body = append(body, element(atom.H2, nil, text("Matches")), list)
	}

	return writeDocument(w, document("Mutation Signatures", body...))
}
