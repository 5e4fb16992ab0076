package document

import (
	"bytes"
	"context"

	"loanserve-backend/internal/domain/document"
	"loanserve-backend/pkg/apperr"
)

type ExtractInput struct {
	Data []byte `json:"data"`
}

func (ExtractInput) RequestName() string { return "document.extract" }

type ExtractDTO struct {
	Text string `json:"text"`
}

// Usecase bridges document-ingestion flows to whatever PDF/OCR engine the
// deployment wires in.
type Usecase struct{ extractor document.Extractor }

func NewUsecase(e document.Extractor) *Usecase { return &Usecase{extractor: e} }

func (u *Usecase) Extract(ctx context.Context, in ExtractInput) (*ExtractDTO, error) {
	if len(in.Data) == 0 {
		return nil, apperr.Validation("document is empty")
	}
	text, err := u.extractor.Extract(ctx, bytes.NewReader(in.Data))
	if err != nil {
		return nil, err
	}
	return &ExtractDTO{Text: text}, nil
}
