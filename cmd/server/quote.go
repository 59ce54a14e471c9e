package main

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/estrategiasdpm/cotizador/internal/export"
	"github.com/estrategiasdpm/cotizador/internal/pricing"
)

type chartSlice struct {
	Label   string
	Value   float64
	Percent float64
	Amount  string
}

type quoteViewData struct {
	baseViewData
	Catalog []productRecord
	Params  pricing.Params
	Job     *pricing.JobInput
	Result  *pricing.QuoteResult
	Slices  []chartSlice
	Final   string
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	catalog, err := s.listProducts()
	if err != nil {
		s.logger.Error("load catalog", zap.Error(err))
		http.Error(w, "failed to load catalog", http.StatusInternalServerError)
		return
	}

	params, err := s.getParams()
	if err != nil {
		s.logger.Error("load params", zap.Error(err))
		http.Error(w, "failed to load cost parameters", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "home.html", quoteViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		Catalog: catalog,
		Params:  params,
	})
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	job := parseJobForm(r)

	params, err := s.getParams()
	if err != nil {
		s.logger.Error("load params", zap.Error(err))
		http.Error(w, "failed to load cost parameters", http.StatusInternalServerError)
		return
	}

	records, err := s.listProducts()
	if err != nil {
		s.logger.Error("load catalog", zap.Error(err))
		http.Error(w, "failed to load catalog", http.StatusInternalServerError)
		return
	}

	result := pricing.Compute(job, params, toCatalog(records))

	s.renderTemplate(w, "home.html", quoteViewData{
		Catalog: records,
		Params:  params,
		Job:     &job,
		Result:  &result,
		Slices:  chartSlices(result),
		Final:   export.FormatCOP(result.FinalPrice),
	})
}

func (s *server) handleSaveJob(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	job := parseJobForm(r)
	if strings.TrimSpace(job.JobDescription) == "" {
		http.Redirect(w, r, "/?error=Selecciona+un+producto+antes+de+guardar", http.StatusSeeOther)
		return
	}

	params, err := s.getParams()
	if err != nil {
		s.logger.Error("load params", zap.Error(err))
		http.Error(w, "failed to load cost parameters", http.StatusInternalServerError)
		return
	}

	catalog, err := s.catalog()
	if err != nil {
		s.logger.Error("load catalog", zap.Error(err))
		http.Error(w, "failed to load catalog", http.StatusInternalServerError)
		return
	}

	result := pricing.Compute(job, params, catalog)
	id, err := s.saveJob(job, result)
	if err != nil {
		s.logger.Error("save job", zap.Error(err))
		http.Error(w, "failed to save job", http.StatusInternalServerError)
		return
	}

	s.logger.Info("job saved",
		zap.String("id", id),
		zap.String("description", job.JobDescription),
		zap.Float64("final_price", result.FinalPrice),
	)
	http.Redirect(w, r, "/trabajos?success=Trabajo+guardado+correctamente", http.StatusSeeOther)
}

type historyViewData struct {
	baseViewData
	Query string
	Jobs  []historyItem
}

type historyItem struct {
	jobListItem
	Price string
}

func (s *server) handleHistory(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	jobs, err := s.listJobs(query)
	if err != nil {
		s.logger.Error("load history", zap.Error(err))
		http.Error(w, "failed to load saved jobs", http.StatusInternalServerError)
		return
	}

	items := make([]historyItem, 0, len(jobs))
	for _, j := range jobs {
		items = append(items, historyItem{jobListItem: j, Price: export.FormatCOP(j.FinalPrice)})
	}

	s.renderTemplate(w, "historial.html", historyViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		Query: query,
		Jobs:  items,
	})
}

// parseJobForm reads the quote form without rejecting anything. Blank or
// malformed numbers become zero so the calculation always runs; the engine
// itself treats its inputs the same way.
func parseJobForm(r *http.Request) pricing.JobInput {
	customerType := pricing.CustomerFinal
	if r.FormValue("customer_type") == string(pricing.CustomerPublicista) {
		customerType = pricing.CustomerPublicista
	}

	return pricing.JobInput{
		CustomerType:      customerType,
		JobDescription:    strings.TrimSpace(r.FormValue("job_description")),
		Width:             parseFloatOrZero(r.FormValue("width")),
		Height:            parseFloatOrZero(r.FormValue("height")),
		Quantity:          parseFloatOrZero(r.FormValue("quantity")),
		ProductionTime:    parseFloatOrZero(r.FormValue("production_time")),
		CuttingHours:      parseFloatOrZero(r.FormValue("cutting_hours")),
		LaminateSpeed:     r.FormValue("laminate_speed"),
		Installation:      parseFloatOrZero(r.FormValue("installation")),
		UrgencyPercentage: parseFloatOrZero(r.FormValue("urgency_percentage")),
		Transport:         parseFloatOrZero(r.FormValue("transport")),
		IncludeDesign:     parseCheckbox(r.FormValue("include_design")),
		OjaleteQuantity:   parseFloatOrZero(r.FormValue("ojalete_quantity")),
		IncludeTubes:      parseCheckbox(r.FormValue("include_tubes")),
		IncludeSticks:     parseCheckbox(r.FormValue("include_sticks")),
		SticksQuantity:    parseFloatOrZero(r.FormValue("sticks_quantity")),
		JobImage:          strings.TrimSpace(r.FormValue("job_image")),
	}
}

func parseFloatOrZero(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

func parseCheckbox(raw string) bool {
	return raw == "on" || raw == "1" || raw == "true"
}

// chartSlices groups the itemized result into the cost composition shown next
// to the quote. Zero-valued groups are left out.
func chartSlices(result pricing.QuoteResult) []chartSlice {
	otherCosts := result.TaponCost + result.TubeCost + result.OjalesCost +
		result.LaminateTotal + result.CuttingCost + result.SticksCost

	groups := []chartSlice{
		{Label: "Material", Value: result.MaterialCost},
		{Label: "Producción", Value: result.ProductionCost},
		{Label: "Diseño", Value: result.DesignCost},
		{Label: "Otros", Value: otherCosts},
		{Label: "Merma", Value: result.WasteCost},
		{Label: "Logística", Value: result.Installation + result.Transport},
		{Label: "Urgencia", Value: result.UrgencyCost},
	}

	var total float64
	for _, g := range groups {
		total += g.Value
	}

	slices := make([]chartSlice, 0, len(groups))
	for _, g := range groups {
		if g.Value <= 0 {
			continue
		}
		if total > 0 {
			g.Percent = g.Value / total * 100
		}
		g.Amount = export.FormatCOP(g.Value)
		slices = append(slices, g)
	}

	return slices
}
