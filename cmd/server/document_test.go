package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/estrategiasdpm/cotizador/internal/export"
)

func TestHandleDocumentTextReturnsPlainText(t *testing.T) {
	srv := newTestServer(t)

	seedSavedJob(t, srv.db, "job-a", "2024-01-01 10:00:00", "PENDON", 50000)
	if err := srv.addDocumentItem("job-a"); err != nil {
		t.Fatalf("addDocumentItem returned error: %v", err)
	}
	if err := srv.updateDocumentInfo("Carlos Ruiz", "3111111111"); err != nil {
		t.Fatalf("updateDocumentInfo returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/documento/texto", nil)
	rr := httptest.NewRecorder()
	srv.handleDocumentText(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Header().Get("Content-Type"), "text/plain") {
		t.Fatalf("expected text/plain content type, got %q", rr.Header().Get("Content-Type"))
	}

	body := rr.Body.String()
	for _, expected := range []string{
		"*Cotización Estrategias DPM*",
		"Hola Carlos Ruiz,",
		"• PENDON (100x100cm) x1: $50.000",
		"*TOTAL INVERSIÓN: $50.000*",
	} {
		if !strings.Contains(body, expected) {
			t.Fatalf("expected body to contain %q, got: %s", expected, body)
		}
	}
}

func TestHandleDocumentPDFReturnsAttachment(t *testing.T) {
	srv := newTestServer(t)

	seedSavedJob(t, srv.db, "job-a", "2024-01-01 10:00:00", "PENDON", 50000)
	if err := srv.addDocumentItem("job-a"); err != nil {
		t.Fatalf("addDocumentItem returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/documento/pdf", nil)
	rr := httptest.NewRecorder()
	srv.handleDocumentPDF(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("expected application/pdf, got %q", got)
	}
	if body := rr.Body.Bytes(); len(body) < 5 || string(body[:5]) != "%PDF-" {
		t.Fatal("response body is not a PDF")
	}
}

func TestHandleDocumentRemoveItemNotFound(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/documento/items/42/quitar", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "42")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	srv.handleDocumentRemoveItem(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
}

func TestHandleDocumentAddItemUnknownJob(t *testing.T) {
	srv := newTestServer(t)

	form := url.Values{}
	form.Set("job_id", "missing-job")

	rr := httptest.NewRecorder()
	srv.handleDocumentAddItem(rr, newFormRequest(t, form))

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got status %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); !strings.Contains(loc, "error=") {
		t.Fatalf("expected error redirect, got %q", loc)
	}

	lines, err := srv.listDocumentLines()
	if err != nil {
		t.Fatalf("listDocumentLines returned error: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected the document to stay empty, got %+v", lines)
	}
}

func TestDocumentFilename(t *testing.T) {
	tests := []struct {
		name     string
		customer string
		ext      string
		want     string
	}{
		{"with customer", "María Pérez", "pdf", "cotizacion_maría_pérez.pdf"},
		{"collapses spaces", "  Juan   Gómez ", "xlsx", "cotizacion_juan_gómez.xlsx"},
		{"no customer", "", "pdf", "cotizacion_cliente.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := export.Document{CustomerName: tt.customer}
			if got := documentFilename(doc, tt.ext); got != tt.want {
				t.Errorf("documentFilename() = %q, want %q", got, tt.want)
			}
		})
	}
}
