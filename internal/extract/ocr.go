package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Engine recognizes text in a PDF that has no extractable text layer.
// Implementations are best-effort: any failure surfaces as an error the
// pipeline collapses to ErrNotFound.
type Engine interface {
	ExtractText(ctx context.Context, pdfData []byte) (string, error)
}

// OCRConfig tunes the external rasterizer and recognizer.
type OCRConfig struct {
	Pdftoppm  string // binary name or absolute path; if empty -> "pdftoppm"
	Tesseract string // binary name or absolute path; if empty -> "tesseract"

	Lang string // default "eng"
	DPI  int    // rasterization DPI, default 300

	// PSM and OEM default to 6 (single text block) and 3 (tesseract
	// picks) when zero; -1 selects tesseract mode 0 (OSD-only
	// segmentation, legacy engine), which zero cannot express.
	PSM int
	OEM int

	Timeout time.Duration // bound on the whole document; 0 = unbounded
}

// TesseractEngine rasterizes pages with pdftoppm and recognizes each page
// with tesseract.
type TesseractEngine struct {
	cfg    OCRConfig
	runner Runner
	logger zerolog.Logger
}

func NewTesseractEngine(cfg OCRConfig, logger zerolog.Logger) *TesseractEngine {
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.Lang == "" {
		cfg.Lang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	switch {
	case cfg.PSM == 0:
		cfg.PSM = 6
	case cfg.PSM < 0:
		cfg.PSM = 0
	}
	switch {
	case cfg.OEM == 0:
		cfg.OEM = 3
	case cfg.OEM < 0:
		cfg.OEM = 0
	}
	return &TesseractEngine{cfg: cfg, runner: execRunner{}, logger: logger}
}

// ExtractText renders every page to a PNG at the configured DPI, runs
// tesseract per page, and joins the page texts with a newline.
func (e *TesseractEngine) ExtractText(ctx context.Context, pdfData []byte) (string, error) {
	if e.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.Timeout)
		defer cancel()
	}

	tmpDir, err := os.MkdirTemp("", "genhealth-ocr-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmpDir)

	pdfPath := filepath.Join(tmpDir, "in.pdf")
	if err := os.WriteFile(pdfPath, pdfData, 0o600); err != nil {
		return "", err
	}

	prefix := filepath.Join(tmpDir, "page")
	// pdftoppm -r <dpi> -png in.pdf <tmp>/page
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, "-r", strconv.Itoa(e.cfg.DPI), "-png", pdfPath, prefix)
	if err != nil {
		return "", fmt.Errorf("rasterize pdf: %w: %s", err, strings.TrimSpace(string(errb)))
	}

	// collect generated pngs (page-1.png, page-2.png, ...)
	matches, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(matches)
	if len(matches) == 0 {
		return "", fmt.Errorf("pdftoppm produced no images")
	}
	e.logger.Debug().Int("pages", len(matches)).Int("dpi", e.cfg.DPI).Msg("ocr_pages")

	var pages []string
	for _, img := range matches {
		txt, err := e.recognize(ctx, img)
		if err != nil {
			e.logger.Warn().Err(err).Str("image", filepath.Base(img)).Msg("ocr page failed")
			continue
		}
		pages = append(pages, txt)
	}
	if len(pages) == 0 {
		return "", fmt.Errorf("ocr recognized no pages")
	}
	return strings.Join(pages, "\n"), nil
}

func (e *TesseractEngine) recognize(ctx context.Context, imgPath string) (string, error) {
	// tesseract <img> stdout -l <lang> --oem 3 --psm 6
	args := []string{imgPath, "stdout", "-l", e.cfg.Lang,
		"--oem", strconv.Itoa(e.cfg.OEM), "--psm", strconv.Itoa(e.cfg.PSM)}
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, args...)
	if err != nil {
		return "", fmt.Errorf("tesseract: %w: %s", err, strings.TrimSpace(string(errb)))
	}
	return string(out), nil
}
