package extract

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractTextLayer pulls the embedded text from every page in document
// order. Returns ErrEncrypted for password-protected documents before any
// page is touched, and errNoTextLayer when the concatenated result is
// empty or whitespace-only (the caller's cue to try OCR).
func extractTextLayer(data []byte) (string, error) {
	r, err := pdf.NewReaderEncrypted(bytes.NewReader(data), int64(len(data)), func() string { return "" })
	if err != nil {
		if errors.Is(err, pdf.ErrInvalidPassword) {
			return "", ErrEncrypted
		}
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		b.WriteString(pageText)
	}

	if strings.TrimSpace(b.String()) == "" {
		return "", errNoTextLayer
	}
	return b.String(), nil
}
