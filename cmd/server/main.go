package main

import (
	"database/sql"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/estrategiasdpm/cotizador/internal/config"
	"github.com/estrategiasdpm/cotizador/internal/db"
	"github.com/estrategiasdpm/cotizador/internal/migrations"
	"github.com/estrategiasdpm/cotizador/internal/seed"
)

type server struct {
	db     *sql.DB
	logger *zap.Logger
	cfg    config.Config
}

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer database.Close()

	if err := migrations.Up(database, cfg.MigrationsDir); err != nil {
		logger.Fatal("run database migrations", zap.Error(err))
	}

	stats, err := seed.Run(database)
	if err != nil {
		logger.Fatal("seed database", zap.Error(err))
	}
	logger.Info("seed complete", zap.Int("inserts", stats.Inserts))

	srv := &server{db: database, logger: logger, cfg: cfg}

	r := chi.NewRouter()
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("web/static"))))

	r.Get("/", srv.handleHome)
	r.Post("/cotizar", srv.handleCalculate)
	r.Post("/trabajos", srv.handleSaveJob)
	r.Get("/trabajos", srv.handleHistory)

	r.Get("/documento", srv.handleDocument)
	r.Post("/documento/items", srv.handleDocumentAddItem)
	r.Post("/documento/items/{id}/quitar", srv.handleDocumentRemoveItem)
	r.Post("/documento/cliente", srv.handleDocumentCustomer)
	r.Get("/documento/pdf", srv.handleDocumentPDF)
	r.Get("/documento/excel", srv.handleDocumentExcel)
	r.Get("/documento/texto", srv.handleDocumentText)

	r.Get("/ajustes/parametros", srv.handleParamsForm)
	r.Post("/ajustes/parametros", srv.handleParamsSubmit)
	r.Get("/ajustes/productos", srv.handleProductsForm)
	r.Post("/ajustes/productos", srv.handleProductsCreate)
	r.Post("/ajustes/productos/{id}", srv.handleProductsUpdate)
	r.Post("/ajustes/productos/{id}/eliminar", srv.handleProductsDelete)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func (s *server) renderTemplate(w http.ResponseWriter, page string, data any) {
	templates, err := template.ParseFiles(
		s.cfg.TemplatesDir+"/layout.html",
		s.cfg.TemplatesDir+"/"+page,
	)
	if err != nil {
		s.logger.Error("parse template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to parse template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, "layout.html", data); err != nil {
		s.logger.Error("render template", zap.String("page", page), zap.Error(err))
		http.Error(w, "failed to render template", http.StatusInternalServerError)
		return
	}
}
