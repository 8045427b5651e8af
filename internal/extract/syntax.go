//go:build cgo

package extract

import (
	"context"
	"fmt"
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"

	"github.com/ppiankov/gendiv/internal/model"
)

// SyntaxExtractor walks a Java syntax tree instead of matching raw text.
// Chunks are parsed error-tolerantly, so non-Java header lines do not stop extraction.
type SyntaxExtractor struct {
	lang *sitter.Language
}

// NewSyntaxExtractor creates a tree-sitter backed extractor
func NewSyntaxExtractor() (*SyntaxExtractor, error) {
	return &SyntaxExtractor{lang: java.GetLanguage()}, nil
}

// Name returns "syntax"
func (e *SyntaxExtractor) Name() string {
	return "syntax"
}

// Extract parses the chunk and collects String declarations and fromString calls
func (e *SyntaxExtractor) Extract(ctx context.Context, chunk string) (*Extraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Parsers are not safe for concurrent use; chunks may be extracted in parallel.
	parser := sitter.NewParser()
	parser.SetLanguage(e.lang)

	src := []byte(chunk)
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse chunk: %w", err)
	}

	w := &syntaxWalker{src: src, decls: make(map[string]string)}
	w.walk(tree.RootNode())

	usages := w.usages
	return &Extraction{
		Declarations: w.decls,
		Usages:       slices.Values(usages),
	}, nil
}

type syntaxWalker struct {
	src    []byte
	decls  map[string]string
	usages []model.Usage
}

// walk visits nodes in pre-order, which is source order
func (w *syntaxWalker) walk(n *sitter.Node) {
	if n == nil {
		return
	}

	switch n.Type() {
	case "local_variable_declaration", "field_declaration":
		w.declaration(n)
	case "method_invocation":
		w.invocation(n)
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		w.walk(n.Child(i))
	}
}

func (w *syntaxWalker) declaration(n *sitter.Node) {
	typ := n.ChildByFieldName("type")
	if typ == nil || typ.Content(w.src) != "String" {
		return
	}

	for i := 0; i < int(n.NamedChildCount()); i++ {
		d := n.NamedChild(i)
		if d == nil || d.Type() != "variable_declarator" {
			continue
		}
		name := d.ChildByFieldName("name")
		value := d.ChildByFieldName("value")
		if name == nil || value == nil || value.Type() != "string_literal" {
			continue
		}
		lit, ok := literalContent(value.Content(w.src))
		if !ok {
			continue
		}
		w.decls[name.Content(w.src)] = lit
	}
}

func (w *syntaxWalker) invocation(n *sitter.Node) {
	object := n.ChildByFieldName("object")
	method := n.ChildByFieldName("name")
	args := n.ChildByFieldName("arguments")
	if object == nil || method == nil || args == nil {
		return
	}
	if method.Content(w.src) != "fromString" || args.NamedChildCount() != 1 {
		return
	}

	category, err := model.ParseCategory(object.Content(w.src))
	if err != nil {
		return
	}

	arg := args.NamedChild(0)
	if arg == nil || arg.Type() != "identifier" {
		return
	}

	w.usages = append(w.usages, model.Usage{Category: category, Name: arg.Content(w.src)})
}

// literalContent strips the quotes of a single-line string literal.
// Escapes are kept verbatim, matching what the regex strategy captures.
func literalContent(raw string) (string, bool) {
	if strings.HasPrefix(raw, `"""`) || len(raw) < 2 {
		return "", false
	}
	if raw[0] != '"' || raw[len(raw)-1] != '"' {
		return "", false
	}
	return raw[1 : len(raw)-1], true
}
