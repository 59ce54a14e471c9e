package main

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/estrategiasdpm/cotizador/internal/pricing"
)

type paramsViewData struct {
	baseViewData
	Params pricing.Params
}

type productsViewData struct {
	baseViewData
	Products []productRecord
}

func (s *server) handleParamsForm(w http.ResponseWriter, r *http.Request) {
	params, err := s.getParams()
	if err != nil {
		s.logger.Error("load params", zap.Error(err))
		http.Error(w, "failed to load cost parameters", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "ajustes_parametros.html", paramsViewData{Params: params})
}

func (s *server) handleParamsSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	params, validationErr := parseParamsForm(r)
	if validationErr != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.renderTemplate(w, "ajustes_parametros.html", paramsViewData{
			baseViewData: baseViewData{ErrorMessage: validationErr.Error()},
			Params:       params,
		})
		return
	}

	if err := s.updateParams(params); err != nil {
		s.logger.Error("save params", zap.Error(err))
		http.Error(w, "failed to save cost parameters", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "ajustes_parametros.html", paramsViewData{
		baseViewData: baseViewData{SuccessMessage: "Parámetros guardados correctamente."},
		Params:       params,
	})
}

func (s *server) handleProductsForm(w http.ResponseWriter, r *http.Request) {
	products, err := s.listProducts()
	if err != nil {
		s.logger.Error("load products", zap.Error(err))
		http.Error(w, "failed to load products", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "ajustes_productos.html", productsViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
		},
		Products: products,
	})
}

func (s *server) handleProductsCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	product, err := parseProductForm(r)
	if err != nil {
		http.Redirect(w, r, "/ajustes/productos?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	if err := s.createProduct(product); err != nil {
		s.logger.Error("create product", zap.String("name", product.Name), zap.Error(err))
		http.Redirect(w, r, "/ajustes/productos?error=No+se+pudo+crear+el+producto", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/ajustes/productos?success=Producto+creado+correctamente", http.StatusSeeOther)
}

func (s *server) handleProductsUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	product, parseErr := parseProductForm(r)
	if parseErr != nil {
		http.Redirect(w, r, "/ajustes/productos?error="+url.QueryEscape(parseErr.Error()), http.StatusSeeOther)
		return
	}
	product.ID = id

	if err := s.updateProduct(product); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("update product", zap.Int64("id", id), zap.Error(err))
		http.Error(w, "failed to update product", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/ajustes/productos?success=Producto+actualizado+correctamente", http.StatusSeeOther)
}

func (s *server) handleProductsDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	if err := s.deleteProduct(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		s.logger.Error("delete product", zap.Int64("id", id), zap.Error(err))
		http.Error(w, "failed to delete product", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/ajustes/productos?success=Producto+eliminado+correctamente", http.StatusSeeOther)
}

func parseParamsForm(r *http.Request) (pricing.Params, error) {
	var p pricing.Params

	var err error
	if p.CostPerCm2, err = parseNonNegativeFloat(r.FormValue("cost_per_cm2"), "cost_per_cm2"); err != nil {
		return p, err
	}
	if p.HourlyRate, err = parseNonNegativeFloat(r.FormValue("hourly_rate"), "hourly_rate"); err != nil {
		return p, err
	}
	if p.TubeCostFactor, err = parseNonNegativeFloat(r.FormValue("tube_cost_factor"), "tube_cost_factor"); err != nil {
		return p, err
	}
	if p.OjalCost, err = parseNonNegativeFloat(r.FormValue("ojal_cost"), "ojal_cost"); err != nil {
		return p, err
	}
	if p.StickCost, err = parseNonNegativeFloat(r.FormValue("stick_cost"), "stick_cost"); err != nil {
		return p, err
	}
	if p.Waste, err = parseFraction(r.FormValue("waste"), "waste"); err != nil {
		return p, err
	}
	if p.ProfitMarginFinal, err = parseFraction(r.FormValue("profit_margin_final"), "profit_margin_final"); err != nil {
		return p, err
	}
	if p.ProfitMarginPublisher, err = parseFraction(r.FormValue("profit_margin_publisher"), "profit_margin_publisher"); err != nil {
		return p, err
	}
	if p.MinOperative, err = parseNonNegativeFloat(r.FormValue("min_operative"), "min_operative"); err != nil {
		return p, err
	}
	if p.IVA, err = parseFraction(r.FormValue("iva"), "iva"); err != nil {
		return p, err
	}

	return p, nil
}

func parseProductForm(r *http.Request) (productRecord, error) {
	product := productRecord{
		Name: strings.TrimSpace(r.FormValue("name")),
	}

	if product.Name == "" {
		return product, fmt.Errorf("name es requerido")
	}

	var err error
	if product.PriceFinal, err = parseNonNegativeFloat(r.FormValue("price_final"), "price_final"); err != nil {
		return product, err
	}
	if product.PricePublisher, err = parseNonNegativeFloat(r.FormValue("price_publisher"), "price_publisher"); err != nil {
		return product, err
	}
	if product.DesignTime, err = parseNonNegativeInt(r.FormValue("design_time"), "design_time"); err != nil {
		return product, err
	}

	return product, nil
}

func parseNonNegativeFloat(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s debe ser numérico", field)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s debe ser mayor o igual a 0", field)
	}
	return value, nil
}

// parseFraction accepts rates expressed as a fraction, e.g. 0.19 for 19%.
func parseFraction(raw, field string) (float64, error) {
	value, err := parseNonNegativeFloat(raw, field)
	if err != nil {
		return 0, err
	}
	if value > 1 {
		return 0, fmt.Errorf("%s debe estar entre 0 y 1", field)
	}
	return value, nil
}

func parseNonNegativeInt(raw, field string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s debe ser un número entero", field)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s debe ser mayor o igual a 0", field)
	}
	return value, nil
}
