package activitylog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler(t *testing.T, seed int) (*Handler, *echo.Echo) {
	t.Helper()
	svc := NewService(newMockRepo())
	for i := 0; i < seed; i++ {
		orderID := int64(i + 1)
		record(t, svc, &orderID, "READ", "/orders/1", "GET")
	}
	return NewHandler(svc), echo.New()
}

func TestHandler_List(t *testing.T) {
	h, e := newTestHandler(t, 3)

	req := httptest.NewRequest(http.MethodGet, "/activity-logs", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data  []Entry `json:"data"`
		Total int     `json:"total"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 3 || len(resp.Data) != 3 {
		t.Errorf("got %d entries (total %d), want 3", len(resp.Data), resp.Total)
	}
}

func TestHandler_ListByOrder(t *testing.T) {
	h, e := newTestHandler(t, 3)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("order_id")
	c.SetParamValues("2")

	if err := h.ListByOrder(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var resp struct {
		Data  []Entry `json:"data"`
		Total int     `json:"total"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Total != 1 {
		t.Errorf("got total %d, want 1", resp.Total)
	}
}

func TestHandler_ListByOrder_Unknown(t *testing.T) {
	h, e := newTestHandler(t, 1)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("order_id")
	c.SetParamValues("99")

	if err := h.ListByOrder(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for unknown order, got %d", rec.Code)
	}
}

func TestHandler_ListByOrder_InvalidID(t *testing.T) {
	h, e := newTestHandler(t, 0)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("order_id")
	c.SetParamValues("abc")

	err := h.ListByOrder(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("got %v, want 400", err)
	}
}
