package extractmock

import (
	"context"
	"errors"
	"io"

	"loanserve-backend/internal/domain/document"
)

// Ensure compile-time compliance
var _ document.Extractor = (*Extractor)(nil)

var errUnimplemented = errors.New("extractmock: ExtractFn not set")

// Extractor is a function-backed mock satisfying document.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, r io.Reader) (string, error)
}

func New() *Extractor { return &Extractor{} }

func (m *Extractor) Extract(ctx context.Context, r io.Reader) (string, error) {
	if m.ExtractFn != nil {
		return m.ExtractFn(ctx, r)
	}
	return "", errUnimplemented
}
