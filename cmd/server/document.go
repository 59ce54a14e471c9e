package main

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/estrategiasdpm/cotizador/internal/export"
)

type documentItemView struct {
	ItemID    int64
	Line      export.Line
	Specs     string
	UnitPrice string
	Price     string
}

type documentViewData struct {
	baseViewData
	CustomerName  string
	CustomerPhone string
	Items         []documentItemView
	Total         string
	ShareMessage  string
	ShareURL      string
}

func (s *server) handleDocument(w http.ResponseWriter, r *http.Request) {
	doc, lines, err := s.buildDocument()
	if err != nil {
		s.logger.Error("load document", zap.Error(err))
		http.Error(w, "failed to load document", http.StatusInternalServerError)
		return
	}

	items := make([]documentItemView, 0, len(lines))
	for _, l := range lines {
		items = append(items, documentItemView{
			ItemID:    l.ItemID,
			Line:      l.Line,
			Specs:     l.Line.Specs(),
			UnitPrice: export.FormatCOP(l.Line.UnitPrice()),
			Price:     export.FormatCOP(l.Line.FinalPrice),
		})
	}

	message := export.BuildShareMessage(doc)

	s.renderTemplate(w, "documento.html", documentViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		CustomerName:  doc.CustomerName,
		CustomerPhone: doc.CustomerPhone,
		Items:         items,
		Total:         export.FormatCOP(doc.GrandTotal()),
		ShareMessage:  message,
		ShareURL:      export.WhatsAppURL(message),
	})
}

func (s *server) handleDocumentAddItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	jobID := strings.TrimSpace(r.FormValue("job_id"))
	if jobID == "" {
		http.Redirect(w, r, "/trabajos?error=job_id+es+requerido", http.StatusSeeOther)
		return
	}

	if _, _, err := s.getJob(jobID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Redirect(w, r, "/trabajos?error=El+trabajo+no+existe", http.StatusSeeOther)
			return
		}
		s.logger.Error("load job", zap.String("job_id", jobID), zap.Error(err))
		http.Error(w, "failed to load job", http.StatusInternalServerError)
		return
	}

	if err := s.addDocumentItem(jobID); err != nil {
		s.logger.Error("add document item", zap.String("job_id", jobID), zap.Error(err))
		http.Error(w, "failed to add document item", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/documento?success=Trabajo+agregado+a+la+cotizaci%C3%B3n", http.StatusSeeOther)
}

func (s *server) handleDocumentRemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid document item id", http.StatusBadRequest)
		return
	}

	if err := s.removeDocumentItem(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("remove document item", zap.Int64("item_id", id), zap.Error(err))
		http.Error(w, "failed to remove document item", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/documento?success=Trabajo+retirado+de+la+cotizaci%C3%B3n", http.StatusSeeOther)
}

func (s *server) handleDocumentCustomer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("customer_name"))
	phone := strings.TrimSpace(r.FormValue("customer_phone"))

	if err := s.updateDocumentInfo(name, phone); err != nil {
		s.logger.Error("update document info", zap.Error(err))
		http.Error(w, "failed to update customer", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/documento?success=Datos+del+cliente+guardados", http.StatusSeeOther)
}

func (s *server) handleDocumentPDF(w http.ResponseWriter, r *http.Request) {
	doc, _, err := s.buildDocument()
	if err != nil {
		s.logger.Error("load document", zap.Error(err))
		http.Error(w, "failed to load document", http.StatusInternalServerError)
		return
	}

	// Generation failures leave the working set untouched; the download can
	// simply be retried.
	pdfBytes, err := export.GeneratePDF(doc)
	if err != nil {
		s.logger.Error("generate pdf", zap.Error(err))
		http.Error(w, "failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", documentFilename(doc, "pdf")))
	w.Write(pdfBytes)
}

func (s *server) handleDocumentExcel(w http.ResponseWriter, r *http.Request) {
	doc, _, err := s.buildDocument()
	if err != nil {
		s.logger.Error("load document", zap.Error(err))
		http.Error(w, "failed to load document", http.StatusInternalServerError)
		return
	}

	xlsxBytes, err := export.GenerateExcel(doc)
	if err != nil {
		s.logger.Error("generate excel", zap.Error(err))
		http.Error(w, "failed to generate Excel", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", documentFilename(doc, "xlsx")))
	w.Write(xlsxBytes)
}

func (s *server) handleDocumentText(w http.ResponseWriter, r *http.Request) {
	doc, _, err := s.buildDocument()
	if err != nil {
		s.logger.Error("load document", zap.Error(err))
		http.Error(w, "failed to load document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, export.BuildShareMessage(doc))
}

func (s *server) buildDocument() (export.Document, []documentLine, error) {
	lines, err := s.listDocumentLines()
	if err != nil {
		return export.Document{}, nil, err
	}

	name, phone, err := s.getDocumentInfo()
	if err != nil {
		return export.Document{}, nil, err
	}

	doc := export.Document{
		ShopName:      s.cfg.ShopName,
		ShopSlogan:    s.cfg.ShopSlogan,
		ShopCity:      s.cfg.ShopCity,
		ShopPhone:     s.cfg.ShopPhone,
		CustomerName:  name,
		CustomerPhone: phone,
		Date:          time.Now().Format("02/01/2006"),
	}
	for _, l := range lines {
		doc.Lines = append(doc.Lines, l.Line)
	}

	return doc, lines, nil
}

// documentFilename builds a download name like cotizacion_maria_perez.pdf.
func documentFilename(doc export.Document, ext string) string {
	name := strings.TrimSpace(doc.CustomerName)
	if name == "" {
		name = "cliente"
	}
	name = strings.ToLower(strings.Join(strings.Fields(name), "_"))
	return "cotizacion_" + name + "." + ext
}
