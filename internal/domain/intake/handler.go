// Package intake accepts uploaded referral PDFs and turns them into
// orders via the extraction pipeline.
package intake

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/genhealth/genhealth/internal/domain/order"
	"github.com/genhealth/genhealth/internal/extract"
)

// extractionFailedMessage steers callers toward manual entry when the
// document defeats both the text layer and OCR.
const extractionFailedMessage = "Could not extract patient information from PDF. " +
	"OCR was attempted but no patient information was found. " +
	"Please ensure the PDF contains clearly readable first name, last name, " +
	"and date of birth, or use the /orders/ endpoint to manually create an order."

// PatientExtractor is the slice of the extraction pipeline the handler
// depends on.
type PatientExtractor interface {
	Extract(ctx context.Context, pdfData []byte) (*extract.PatientInfo, error)
}

type Handler struct {
	extractor PatientExtractor
	orders    *order.Service
	maxBytes  int64
	logger    zerolog.Logger
}

func NewHandler(extractor PatientExtractor, orders *order.Service, maxBytes int64, logger zerolog.Logger) *Handler {
	return &Handler{extractor: extractor, orders: orders, maxBytes: maxBytes, logger: logger}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.POST("/upload", h.Upload)
}

func (h *Handler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
		return echo.NewHTTPError(http.StatusBadRequest, "Only PDF files are allowed")
	}
	if h.maxBytes > 0 && fh.Size > h.maxBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}

	f, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read file")
	}

	info, err := h.extractor.Extract(c.Request().Context(), data)
	if err != nil {
		h.logger.Info().Str("filename", fh.Filename).Msg("extraction failed")
		return echo.NewHTTPError(http.StatusUnprocessableEntity, extractionFailedMessage)
	}

	o, err := h.orders.Create(c.Request().Context(), &order.CreateRequest{
		FirstName:   info.FirstName,
		LastName:    info.LastName,
		DateOfBirth: info.DateOfBirth,
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	h.logger.Info().Int64("order_id", o.ID).Str("filename", fh.Filename).Msg("order created from upload")
	return c.JSON(http.StatusOK, info)
}
