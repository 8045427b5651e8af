//go:build !cgo

package extract

import "context"

// SyntaxExtractor is a stub for non-CGO builds
type SyntaxExtractor struct{}

// NewSyntaxExtractor always fails without CGO
func NewSyntaxExtractor() (*SyntaxExtractor, error) {
	return nil, ErrNoCGO
}

// Name returns "syntax"
func (e *SyntaxExtractor) Name() string {
	return "syntax"
}

// Extract always fails without CGO
func (e *SyntaxExtractor) Extract(ctx context.Context, chunk string) (*Extraction, error) {
	return nil, ErrNoCGO
}
