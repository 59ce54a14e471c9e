package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/estrategiasdpm/cotizador/internal/export"
	"github.com/estrategiasdpm/cotizador/internal/pricing"
)

type productRecord struct {
	ID             int64
	Name           string
	PriceFinal     float64
	PricePublisher float64
	DesignTime     int
}

type jobListItem struct {
	ID          string
	CreatedAt   string
	Description string
	FinalPrice  float64
}

type documentLine struct {
	ItemID int64
	JobID  string
	Line   export.Line
}

func (s *server) getParams() (pricing.Params, error) {
	var p pricing.Params
	err := s.db.QueryRow(`
		SELECT
			cost_per_cm2,
			hourly_rate,
			tube_cost_factor,
			ojal_cost,
			stick_cost,
			waste,
			profit_margin_final,
			profit_margin_publisher,
			min_operative,
			iva
		FROM params
		WHERE id = 1
	`).Scan(
		&p.CostPerCm2,
		&p.HourlyRate,
		&p.TubeCostFactor,
		&p.OjalCost,
		&p.StickCost,
		&p.Waste,
		&p.ProfitMarginFinal,
		&p.ProfitMarginPublisher,
		&p.MinOperative,
		&p.IVA,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pricing.Params{}, fmt.Errorf("params singleton not found")
		}
		return pricing.Params{}, fmt.Errorf("query params: %w", err)
	}
	return p, nil
}

func (s *server) updateParams(p pricing.Params) error {
	_, err := s.db.Exec(`
		UPDATE params
		SET
			cost_per_cm2 = ?,
			hourly_rate = ?,
			tube_cost_factor = ?,
			ojal_cost = ?,
			stick_cost = ?,
			waste = ?,
			profit_margin_final = ?,
			profit_margin_publisher = ?,
			min_operative = ?,
			iva = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`,
		p.CostPerCm2,
		p.HourlyRate,
		p.TubeCostFactor,
		p.OjalCost,
		p.StickCost,
		p.Waste,
		p.ProfitMarginFinal,
		p.ProfitMarginPublisher,
		p.MinOperative,
		p.IVA,
	)
	if err != nil {
		return fmt.Errorf("update params: %w", err)
	}
	return nil
}

func (s *server) listProducts() ([]productRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, name, price_final, price_publisher, design_time
		FROM products
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := make([]productRecord, 0)
	for rows.Next() {
		var p productRecord
		if err := rows.Scan(&p.ID, &p.Name, &p.PriceFinal, &p.PricePublisher, &p.DesignTime); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

// catalog loads the product list in the shape the quote engine consumes.
func (s *server) catalog() ([]pricing.Product, error) {
	records, err := s.listProducts()
	if err != nil {
		return nil, err
	}
	return toCatalog(records), nil
}

func toCatalog(records []productRecord) []pricing.Product {
	catalog := make([]pricing.Product, 0, len(records))
	for _, r := range records {
		catalog = append(catalog, pricing.Product{
			Name:           r.Name,
			PriceFinal:     r.PriceFinal,
			PricePublisher: r.PricePublisher,
			DesignTime:     r.DesignTime,
		})
	}
	return catalog
}

func (s *server) createProduct(p productRecord) error {
	_, err := s.db.Exec(`
		INSERT INTO products (name, price_final, price_publisher, design_time)
		VALUES (?, ?, ?, ?)
	`, p.Name, p.PriceFinal, p.PricePublisher, p.DesignTime)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *server) updateProduct(p productRecord) error {
	result, err := s.db.Exec(`
		UPDATE products
		SET
			name = ?,
			price_final = ?,
			price_publisher = ?,
			design_time = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, p.Name, p.PriceFinal, p.PricePublisher, p.DesignTime, p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (s *server) deleteProduct(id int64) error {
	result, err := s.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// saveJob appends an immutable quote snapshot to the history. Both the inputs
// and the full itemized result are stored as JSON so later reads never
// recalculate against newer parameters.
func (s *server) saveJob(job pricing.JobInput, result pricing.QuoteResult) (string, error) {
	inputJSON, err := json.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("marshal job input: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("marshal quote result: %w", err)
	}

	id := uuid.NewString()
	if _, err := s.db.Exec(`
		INSERT INTO saved_jobs (id, description, final_price, input_json, result_json)
		VALUES (?, ?, ?, ?, ?)
	`, id, job.JobDescription, result.FinalPrice, string(inputJSON), string(resultJSON)); err != nil {
		return "", fmt.Errorf("insert saved job: %w", err)
	}

	return id, nil
}

func (s *server) listJobs(query string) ([]jobListItem, error) {
	search := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT id, created_at, description, final_price
		FROM saved_jobs
		WHERE (? = '' OR description LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search)
	if err != nil {
		return nil, fmt.Errorf("query saved jobs: %w", err)
	}
	defer rows.Close()

	jobs := make([]jobListItem, 0)
	for rows.Next() {
		var item jobListItem
		if err := rows.Scan(&item.ID, &item.CreatedAt, &item.Description, &item.FinalPrice); err != nil {
			return nil, fmt.Errorf("scan saved job: %w", err)
		}
		jobs = append(jobs, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate saved jobs: %w", err)
	}

	return jobs, nil
}

func (s *server) getJob(id string) (pricing.JobInput, pricing.QuoteResult, error) {
	var inputJSON, resultJSON string
	err := s.db.QueryRow(`
		SELECT input_json, result_json
		FROM saved_jobs
		WHERE id = ?
	`, id).Scan(&inputJSON, &resultJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pricing.JobInput{}, pricing.QuoteResult{}, sql.ErrNoRows
		}
		return pricing.JobInput{}, pricing.QuoteResult{}, fmt.Errorf("query saved job: %w", err)
	}

	var job pricing.JobInput
	if err := json.Unmarshal([]byte(inputJSON), &job); err != nil {
		return pricing.JobInput{}, pricing.QuoteResult{}, fmt.Errorf("unmarshal job input: %w", err)
	}
	var result pricing.QuoteResult
	if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
		return pricing.JobInput{}, pricing.QuoteResult{}, fmt.Errorf("unmarshal quote result: %w", err)
	}

	return job, result, nil
}

func (s *server) addDocumentItem(jobID string) error {
	if _, err := s.db.Exec(`INSERT INTO document_items (job_id) VALUES (?)`, jobID); err != nil {
		return fmt.Errorf("insert document item: %w", err)
	}
	return nil
}

func (s *server) removeDocumentItem(itemID int64) error {
	result, err := s.db.Exec(`DELETE FROM document_items WHERE id = ?`, itemID)
	if err != nil {
		return fmt.Errorf("delete document item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete document item: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// listDocumentLines returns the working set in insertion order, each line
// rebuilt from the job's stored snapshot.
func (s *server) listDocumentLines() ([]documentLine, error) {
	rows, err := s.db.Query(`
		SELECT i.id, j.id, j.input_json, j.result_json
		FROM document_items i
		JOIN saved_jobs j ON j.id = i.job_id
		ORDER BY i.id
	`)
	if err != nil {
		return nil, fmt.Errorf("query document items: %w", err)
	}
	defer rows.Close()

	lines := make([]documentLine, 0)
	for rows.Next() {
		var item documentLine
		var inputJSON, resultJSON string
		if err := rows.Scan(&item.ItemID, &item.JobID, &inputJSON, &resultJSON); err != nil {
			return nil, fmt.Errorf("scan document item: %w", err)
		}

		var job pricing.JobInput
		if err := json.Unmarshal([]byte(inputJSON), &job); err != nil {
			return nil, fmt.Errorf("unmarshal job input: %w", err)
		}
		var result pricing.QuoteResult
		if err := json.Unmarshal([]byte(resultJSON), &result); err != nil {
			return nil, fmt.Errorf("unmarshal quote result: %w", err)
		}

		item.Line = export.Line{
			Description:       job.JobDescription,
			Width:             job.Width,
			Height:            job.Height,
			Quantity:          job.Quantity,
			FinalPrice:        result.FinalPrice,
			IncludeDesign:     job.IncludeDesign,
			IncludeTubes:      job.IncludeTubes,
			UrgencyPercentage: job.UrgencyPercentage,
			HasImage:          job.JobImage != "",
		}
		lines = append(lines, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate document items: %w", err)
	}

	return lines, nil
}

func (s *server) getDocumentInfo() (name, phone string, err error) {
	err = s.db.QueryRow(`
		SELECT customer_name, customer_phone
		FROM document_info
		WHERE id = 1
	`).Scan(&name, &phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", "", nil
		}
		return "", "", fmt.Errorf("query document info: %w", err)
	}
	return name, phone, nil
}

func (s *server) updateDocumentInfo(name, phone string) error {
	_, err := s.db.Exec(`
		INSERT INTO document_info (id, customer_name, customer_phone)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			customer_name = excluded.customer_name,
			customer_phone = excluded.customer_phone,
			updated_at = CURRENT_TIMESTAMP
	`, name, phone)
	if err != nil {
		return fmt.Errorf("update document info: %w", err)
	}
	return nil
}
