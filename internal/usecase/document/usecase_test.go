package document

import (
	"context"
	"errors"
	"io"
	"testing"

	"loanserve-backend/internal/testutil/extractmock"
	"loanserve-backend/pkg/apperr"
)

func TestExtract(t *testing.T) {
	ext := extractmock.New()
	ext.ExtractFn = func(ctx context.Context, r io.Reader) (string, error) {
		b, _ := io.ReadAll(r)
		if string(b) != "%PDF-1.7 payload" {
			t.Fatalf("extractor got %q", b)
		}
		return "salary slip, 900 monthly", nil
	}
	uc := NewUsecase(ext)

	dto, err := uc.Extract(context.Background(), ExtractInput{Data: []byte("%PDF-1.7 payload")})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if dto.Text != "salary slip, 900 monthly" {
		t.Fatalf("unexpected text: %q", dto.Text)
	}
}

func TestExtract_EmptyDocument(t *testing.T) {
	uc := NewUsecase(extractmock.New())
	_, err := uc.Extract(context.Background(), ExtractInput{})
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("kind = %q, want validation", apperr.KindOf(err))
	}
}

func TestExtract_EngineErrorPropagates(t *testing.T) {
	boom := errors.New("ocr backend down")
	ext := extractmock.New()
	ext.ExtractFn = func(ctx context.Context, r io.Reader) (string, error) { return "", boom }
	uc := NewUsecase(ext)

	_, err := uc.Extract(context.Background(), ExtractInput{Data: []byte("x")})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want the engine error", err)
	}
}
