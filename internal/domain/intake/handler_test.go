package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/genhealth/genhealth/internal/domain/order"
	"github.com/genhealth/genhealth/internal/extract"
)

type stubExtractor struct {
	info  *extract.PatientInfo
	err   error
	calls int
}

func (s *stubExtractor) Extract(ctx context.Context, pdfData []byte) (*extract.PatientInfo, error) {
	s.calls++
	return s.info, s.err
}

type mockOrderRepo struct {
	orders map[int64]*order.Order
	nextID int64
}

func newMockOrderRepo() *mockOrderRepo {
	return &mockOrderRepo{orders: make(map[int64]*order.Order), nextID: 1}
}

func (m *mockOrderRepo) Create(_ context.Context, o *order.Order) error {
	o.ID = m.nextID
	m.nextID++
	o.CreatedAt = time.Now()
	o.UpdatedAt = o.CreatedAt
	cp := *o
	m.orders[o.ID] = &cp
	return nil
}

func (m *mockOrderRepo) GetByID(_ context.Context, id int64) (*order.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *mockOrderRepo) Update(_ context.Context, o *order.Order) error {
	m.orders[o.ID] = o
	return nil
}

func (m *mockOrderRepo) Delete(_ context.Context, id int64) error {
	delete(m.orders, id)
	return nil
}

func (m *mockOrderRepo) List(_ context.Context, limit, offset int) ([]*order.Order, int, error) {
	var result []*order.Order
	for _, o := range m.orders {
		result = append(result, o)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, len(result), nil
}

func newTestHandler(ext PatientExtractor) (*Handler, *mockOrderRepo, *echo.Echo) {
	repo := newMockOrderRepo()
	h := NewHandler(ext, order.NewService(repo), 20<<20, zerolog.Nop())
	return h, repo, echo.New()
}

func uploadRequest(t *testing.T, filename string, content []byte) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	fw.Write(content)
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req, httptest.NewRecorder()
}

func TestUpload_CreatesOrder(t *testing.T) {
	dob := time.Date(1985, time.June, 15, 0, 0, 0, 0, time.UTC)
	ext := &stubExtractor{info: &extract.PatientInfo{
		FirstName: "John", LastName: "Smith", DateOfBirth: dob,
	}}
	h, repo, e := newTestHandler(ext)

	req, rec := uploadRequest(t, "referral.pdf", []byte("%PDF-1.4"))
	c := e.NewContext(req, rec)

	if err := h.Upload(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var info extract.PatientInfo
	json.Unmarshal(rec.Body.Bytes(), &info)
	if info.FirstName != "John" || info.LastName != "Smith" {
		t.Errorf("got %q %q, want John Smith", info.FirstName, info.LastName)
	}

	if len(repo.orders) != 1 {
		t.Fatalf("got %d orders, want 1", len(repo.orders))
	}
	for _, o := range repo.orders {
		if o.FirstName != "John" || !o.DateOfBirth.Equal(dob) {
			t.Errorf("persisted order %+v", o)
		}
	}
}

func TestUpload_RejectsNonPDF(t *testing.T) {
	ext := &stubExtractor{}
	h, repo, e := newTestHandler(ext)

	req, rec := uploadRequest(t, "report.docx", []byte("not a pdf"))
	c := e.NewContext(req, rec)

	err := h.Upload(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("got %v, want 400", err)
	}
	if he.Message != "Only PDF files are allowed" {
		t.Errorf("got message %v", he.Message)
	}
	if ext.calls != 0 {
		t.Error("extractor invoked for rejected file")
	}
	if len(repo.orders) != 0 {
		t.Error("order created for rejected file")
	}
}

func TestUpload_AcceptsUppercaseExtension(t *testing.T) {
	dob := time.Date(1985, time.June, 15, 0, 0, 0, 0, time.UTC)
	ext := &stubExtractor{info: &extract.PatientInfo{
		FirstName: "John", LastName: "Smith", DateOfBirth: dob,
	}}
	h, _, e := newTestHandler(ext)

	req, rec := uploadRequest(t, "REFERRAL.PDF", []byte("%PDF-1.4"))
	c := e.NewContext(req, rec)

	if err := h.Upload(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestUpload_MissingFile(t *testing.T) {
	ext := &stubExtractor{}
	h, _, e := newTestHandler(ext)

	req := httptest.NewRequest(http.MethodPost, "/upload", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Upload(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("got %v, want 400", err)
	}
}

func TestUpload_ExtractionFailed(t *testing.T) {
	ext := &stubExtractor{err: extract.ErrNotFound}
	h, repo, e := newTestHandler(ext)

	req, rec := uploadRequest(t, "scan.pdf", []byte("%PDF-1.4"))
	c := e.NewContext(req, rec)

	err := h.Upload(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("got %v, want 422", err)
	}
	msg, _ := he.Message.(string)
	if !bytes.Contains([]byte(msg), []byte("manually create an order")) {
		t.Errorf("guidance missing from message %q", msg)
	}
	if len(repo.orders) != 0 {
		t.Error("order created despite extraction failure")
	}
}

func TestUpload_FileTooLarge(t *testing.T) {
	ext := &stubExtractor{}
	repo := newMockOrderRepo()
	h := NewHandler(ext, order.NewService(repo), 4, zerolog.Nop())
	e := echo.New()

	req, rec := uploadRequest(t, "big.pdf", []byte("%PDF-1.4 with more bytes than allowed"))
	c := e.NewContext(req, rec)

	err := h.Upload(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("got %v, want 413", err)
	}
	if ext.calls != 0 {
		t.Error("extractor invoked for oversized file")
	}
}
