// Package extract pulls patient identity fields out of uploaded PDFs.
//
// The pipeline reads the embedded text layer first and falls back to OCR
// for image-only documents. Free text is then mined for a first name, a
// last name, and a date of birth with ordered pattern heuristics. The
// pipeline reports absence, not error detail: every internal failure
// collapses to ErrNotFound at its boundary.
package extract

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrNotFound means no complete patient record could be extracted.
	ErrNotFound = errors.New("patient info not found")
	// ErrEncrypted marks a password-protected document; OCR is never
	// attempted on one.
	ErrEncrypted = errors.New("pdf is encrypted")

	errNoTextLayer = errors.New("pdf has no text layer")
)

// PatientInfo is the extraction result. Immutable once constructed and
// never partially populated.
type PatientInfo struct {
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DateOfBirth time.Time `json:"date_of_birth"`
}

// Extractor orchestrates text-layer extraction, the OCR fallback, and the
// field heuristics. Stateless between calls; safe for concurrent use.
type Extractor struct {
	ocr       Engine // nil when OCR support is unavailable or disabled
	logger    zerolog.Logger
	textLayer func([]byte) (string, error)
}

func NewExtractor(ocr Engine, logger zerolog.Logger) *Extractor {
	return &Extractor{
		ocr:       ocr,
		logger:    logger,
		textLayer: extractTextLayer,
	}
}

// Extract returns a fully populated PatientInfo or ErrNotFound.
func (e *Extractor) Extract(ctx context.Context, pdfData []byte) (info *PatientInfo, err error) {
	// Malformed documents can panic deep inside PDF parsing; absence is
	// all the caller gets to see.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().Interface("panic", r).Msg("pdf extraction panicked")
			info, err = nil, ErrNotFound
		}
	}()

	text, terr := e.textLayer(pdfData)
	switch {
	case errors.Is(terr, ErrEncrypted):
		e.logger.Warn().Msg("pdf is encrypted, giving up")
		return nil, ErrNotFound
	case errors.Is(terr, errNoTextLayer):
		e.logger.Info().Msg("text_layer_empty")
		if e.ocr == nil {
			e.logger.Warn().Msg("ocr unavailable, giving up")
			return nil, ErrNotFound
		}
		e.logger.Info().Msg("ocr_invoked")
		ocrText, oerr := e.ocr.ExtractText(ctx, pdfData)
		if oerr != nil {
			e.logger.Warn().Err(oerr).Msg("ocr failed")
			return nil, ErrNotFound
		}
		if strings.TrimSpace(ocrText) == "" {
			return nil, ErrNotFound
		}
		e.logger.Info().Int("chars", len(ocrText)).Msg("ocr extracted text")
		text = ocrText
	case terr != nil:
		e.logger.Warn().Err(terr).Msg("pdf parse failed")
		return nil, ErrNotFound
	}

	return e.fromText(text)
}

// fromText applies the field heuristics to text from either source; the
// result is all-or-nothing.
func (e *Extractor) fromText(text string) (*PatientInfo, error) {
	firstName, ferr := ExtractFirstName(text)
	lastName, lerr := ExtractLastName(text)
	dob, derr := ExtractDateOfBirth(text)

	found := ferr == nil && lerr == nil && derr == nil
	e.logger.Info().
		Bool("found", found).
		Bool("first_name", ferr == nil).
		Bool("last_name", lerr == nil).
		Bool("date_of_birth", derr == nil).
		Msg("extraction_result")

	if !found {
		return nil, ErrNotFound
	}
	return &PatientInfo{
		FirstName:   firstName,
		LastName:    lastName,
		DateOfBirth: dob,
	}, nil
}
