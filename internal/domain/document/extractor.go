package document

import (
	"context"
	"io"
)

// Extractor turns a binary document stream into plain text. Concrete
// implementations (PDF/OCR engines) live outside this module and are
// injected at wiring time.
type Extractor interface {
	Extract(ctx context.Context, r io.Reader) (string, error)
}
