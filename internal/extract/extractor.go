package extract

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"regexp"
	"strings"

	"github.com/ppiankov/gendiv/internal/model"
)

// ErrNoCGO is returned when the syntax extractor is unavailable due to missing CGO
var ErrNoCGO = errors.New("syntax extractor requires CGO (tree-sitter)")

// Extraction holds what one chunk declares and which factories it calls
type Extraction struct {
	// Declarations maps declared name to its raw literal content (last one wins)
	Declarations map[string]string

	// Usages yields factory usages in text order; it may be ranged over more than once
	Usages iter.Seq[model.Usage]
}

// Extractor finds string declarations and category usages in a chunk
type Extractor interface {
	Name() string
	Extract(ctx context.Context, chunk string) (*Extraction, error)
}

// New returns the extractor registered under name ("regex" or "syntax")
func New(name string) (Extractor, error) {
	switch name {
	case "", "regex":
		return NewRegexExtractor(), nil
	case "syntax":
		s, err := NewSyntaxExtractor()
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown extractor: %s", name)
	}
}

// RegexExtractor matches declarations and usages with flat patterns
type RegexExtractor struct {
	declaration *regexp.Regexp
	usage       *regexp.Regexp
}

// NewRegexExtractor compiles the declaration and usage patterns
func NewRegexExtractor() *RegexExtractor {
	names := make([]string, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		names = append(names, regexp.QuoteMeta(string(c)))
	}

	return &RegexExtractor{
		declaration: regexp.MustCompile(`String\s+([a-zA-Z0-9_]+)\s*=\s*"(.*?)";`),
		usage:       regexp.MustCompile(`(` + strings.Join(names, "|") + `)\.fromString\(\s*([a-zA-Z0-9_]+)\s*\)`),
	}
}

// Name returns "regex"
func (e *RegexExtractor) Name() string {
	return "regex"
}

// Extract fails only when ctx is done; unmatched text is ignored
func (e *RegexExtractor) Extract(ctx context.Context, chunk string) (*Extraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	decls := make(map[string]string)
	for _, m := range e.declaration.FindAllStringSubmatch(chunk, -1) {
		decls[m[1]] = m[2]
	}

	return &Extraction{
		Declarations: decls,
		Usages:       e.usages(chunk),
	}, nil
}

// usages scans forward one match at a time so callers can stop early
func (e *RegexExtractor) usages(chunk string) iter.Seq[model.Usage] {
	return func(yield func(model.Usage) bool) {
		rest := chunk
		for {
			loc := e.usage.FindStringSubmatchIndex(rest)
			if loc == nil {
				return
			}
			u := model.Usage{
				Category: model.Category(rest[loc[2]:loc[3]]),
				Name:     rest[loc[4]:loc[5]],
			}
			if !yield(u) {
				return
			}
			rest = rest[loc[1]:]
		}
	}
}

// Group resolves usages against declarations, keyed by category.
// Values appear once per resolved usage, in usage order; unresolved usages are dropped.
func Group(ex *Extraction) map[model.Category][]string {
	groups := make(map[model.Category][]string)
	for u := range ex.Usages {
		value, ok := ex.Declarations[u.Name]
		if !ok {
			continue
		}
		groups[u.Category] = append(groups[u.Category], value)
	}
	return groups
}

// Referenced returns the set of names passed to any category factory
func Referenced(ex *Extraction) map[string]bool {
	names := make(map[string]bool)
	for u := range ex.Usages {
		names[u.Name] = true
	}
	return names
}
