package pricing

import (
	"math"
	"strconv"
	"strings"
)

// CustomerType selects the pricing tier for a job.
type CustomerType string

const (
	// CustomerFinal is an end customer: final-tier margin, operating minimum and IVA.
	CustomerFinal CustomerType = "final"
	// CustomerPublicista is a reseller/agency: publicist margin, no minimum, no IVA.
	CustomerPublicista CustomerType = "publicista"
)

// Product is one catalog entry. Name is the lookup key used by Compute;
// prices are per cm² for each tier, DesignTime is the design-fee table key in minutes.
type Product struct {
	Name           string  `json:"name"`
	PriceFinal     float64 `json:"priceFinal"`
	PricePublisher float64 `json:"pricePublisher"`
	DesignTime     int     `json:"designTime"`
}

// Params holds the shop-wide cost parameters. All values are user-editable
// and persisted outside the engine; Compute only ever reads them.
type Params struct {
	CostPerCm2            float64 `json:"cost_per_cm2"`
	HourlyRate            float64 `json:"hourly_rate"`
	TubeCostFactor        float64 `json:"tube_cost_factor"`
	OjalCost              float64 `json:"ojal_cost"`
	StickCost             float64 `json:"stick_cost"`
	Waste                 float64 `json:"waste"`
	ProfitMarginFinal     float64 `json:"profit_margin_final"`
	ProfitMarginPublisher float64 `json:"profit_margin_publisher"`
	MinOperative          float64 `json:"min_operative"`
	IVA                   float64 `json:"iva"`
}

// JobInput is the full parameter set for one quote calculation.
//
// Numeric fields are never validated here: negative or zero values flow through
// the arithmetic unchanged. LaminateSpeed is kept as the raw string the form
// submitted; an unparsable value counts as a rate of 0.
type JobInput struct {
	CustomerType      CustomerType `json:"customer_type"`
	JobDescription    string       `json:"job_description"`
	Width             float64      `json:"width"`
	Height            float64      `json:"height"`
	Quantity          float64      `json:"quantity"`
	ProductionTime    float64      `json:"production_time"`
	CuttingHours      float64      `json:"cutting_hours"`
	LaminateSpeed     string       `json:"laminate_speed"`
	Installation      float64      `json:"installation"`
	UrgencyPercentage float64      `json:"urgency_percentage"`
	Transport         float64      `json:"transport"`
	IncludeDesign     bool         `json:"include_design"`
	OjaleteQuantity   float64      `json:"ojalete_quantity"`
	IncludeTubes      bool         `json:"include_tubes"`
	IncludeSticks     bool         `json:"include_sticks"`
	SticksQuantity    float64      `json:"sticks_quantity"`
	JobImage          string       `json:"job_image,omitempty"`
}

// QuoteResult is the fully itemized breakdown of one Compute call. Every
// intermediate value is retained so callers can render the whole cost
// composition, not just the final price.
type QuoteResult struct {
	AreaCm2           float64 `json:"areaCm2"`
	TotalAreaCm2      float64 `json:"totalAreaCm2"`
	TotalAreaM2       float64 `json:"totalAreaM2"`
	RollWidth         float64 `json:"rollWidth"`
	RollAreaCm2       float64 `json:"rollAreaCm2"`
	WasteAreaCm2      float64 `json:"wasteAreaCm2"`
	MaterialCost      float64 `json:"materialCost"`
	WasteCostFromRoll float64 `json:"wasteCostFromRoll"`
	ProductionCost    float64 `json:"productionCost"`
	DesignCost        float64 `json:"designCost"`
	CuttingCost       float64 `json:"cuttingCost"`
	LaminateTotal     float64 `json:"laminateTotal"`
	TaponCost         float64 `json:"taponCost"`
	TubeCost          float64 `json:"tubeCost"`
	OjalesCost        float64 `json:"ojalesCost"`
	SticksCost        float64 `json:"sticksCost"`
	SubtotalBefWaste  float64 `json:"subtotalBeforeWaste"`
	WasteCost         float64 `json:"wasteCost"`
	TotalBeforeMargin float64 `json:"totalBeforeMargin"`
	UrgencyCost       float64 `json:"urgencyCost"`
	TotalWithUrgency  float64 `json:"totalCostsWithUrgency"`
	CostWithMargin    float64 `json:"costWithMargin"`
	IVAAmount         float64 `json:"ivaAmount"`
	FinalPrice        float64 `json:"finalPrice"`
	Installation      float64 `json:"installation"`
	Transport         float64 `json:"transport"`
	AdjustedWidth     float64 `json:"adjustedWidth"`
	AdjustedHeight    float64 `json:"adjustedHeight"`
}

// Compute maps a job plus the current cost parameters and catalog snapshot into
// an itemized quote. It is a total function: it never fails, never mutates its
// inputs and keeps no state between calls. Missing catalog matches fall back to
// Params.CostPerCm2, unknown design times price at 0.
func Compute(job JobInput, params Params, catalog []Product) QuoteResult {
	var matched *Product
	for i := range catalog {
		if catalog[i].Name == job.JobDescription {
			matched = &catalog[i]
			break
		}
	}

	designTimeMinutes := 0
	if matched != nil {
		designTimeMinutes = matched.DesignTime
	}

	cat := Classify(job.JobDescription)

	adjustedWidth := job.Width
	adjustedHeight := job.Height
	if cat.BannerLike || cat.StreetBanner {
		adjustedWidth += hemWidthAllowanceCm
		adjustedHeight += hemHeightAllowanceCm
	}

	var taponCost, tubeCost float64
	if cat.BannerLike && job.IncludeTubes {
		taponCost = taponUnitCost * job.Quantity
		tubeCost = adjustedWidth * params.TubeCostFactor * 2 * job.Quantity
	}

	var ojalesCost float64
	if cat.GrommetBanner {
		// Grommet count is already a total, not a per-unit figure.
		ojalesCost = job.OjaleteQuantity * params.OjalCost
	}

	var sticksCost float64
	if cat.StreetBanner && job.IncludeSticks {
		sticksCost = job.SticksQuantity * params.StickCost * job.Quantity
	}

	rollWidth := pickRollWidth(cat, adjustedWidth)

	areaCm2 := job.Width * job.Height
	totalAreaCm2 := adjustedWidth * adjustedHeight * job.Quantity
	totalAreaM2 := totalAreaCm2 / 10000
	rollAreaCm2 := rollWidth * adjustedHeight * job.Quantity

	baseCostPerCm2 := params.CostPerCm2
	if matched != nil {
		if job.CustomerType == CustomerFinal {
			baseCostPerCm2 = matched.PriceFinal
		} else {
			baseCostPerCm2 = matched.PricePublisher
		}
	}

	materialCost := rollAreaCm2 * baseCostPerCm2
	laminateRate := parseRate(job.LaminateSpeed)
	laminateTotal := totalAreaCm2 * laminateRate

	productionCost := (job.ProductionTime / 60) * params.HourlyRate
	// The cutting field carries minutes despite its historical name.
	cuttingCost := (job.CuttingHours / 60) * params.HourlyRate

	var designCost float64
	if job.IncludeDesign && job.CustomerType == CustomerFinal {
		designCost = DesignCostByMinutes[designTimeMinutes]
	}

	subtotalBeforeWaste := materialCost + productionCost + designCost + cuttingCost +
		laminateTotal + taponCost + tubeCost + ojalesCost + sticksCost

	var wasteCost float64
	if rollAreaCm2 > totalAreaCm2 {
		wasteCost = subtotalBeforeWaste * params.Waste
	}
	subtotalAfterWaste := subtotalBeforeWaste + wasteCost

	totalBeforeMargin := subtotalAfterWaste + job.Installation + job.Transport
	urgencyCost := totalBeforeMargin * (job.UrgencyPercentage / 100)
	totalWithUrgency := totalBeforeMargin + urgencyCost

	var costWithMargin, ivaAmount, rawFinalPrice float64
	if job.CustomerType == CustomerFinal {
		costWithMargin = totalWithUrgency * (1 + params.ProfitMarginFinal)
		costAfterMin := math.Max(costWithMargin, params.MinOperative)
		ivaAmount = costAfterMin * params.IVA
		rawFinalPrice = costAfterMin + ivaAmount
	} else {
		costWithMargin = totalWithUrgency * (1 + params.ProfitMarginPublisher)
		rawFinalPrice = costWithMargin
	}

	finalPrice := CeilToHundred(rawFinalPrice)

	wasteAreaCm2 := math.Max(0, rollAreaCm2-totalAreaCm2)
	wasteCostFromRoll := wasteAreaCm2 * params.CostPerCm2

	return QuoteResult{
		AreaCm2:           areaCm2,
		TotalAreaCm2:      totalAreaCm2,
		TotalAreaM2:       totalAreaM2,
		RollWidth:         rollWidth,
		RollAreaCm2:       rollAreaCm2,
		WasteAreaCm2:      wasteAreaCm2,
		MaterialCost:      materialCost,
		WasteCostFromRoll: wasteCostFromRoll,
		ProductionCost:    productionCost,
		DesignCost:        designCost,
		CuttingCost:       cuttingCost,
		LaminateTotal:     laminateTotal,
		TaponCost:         taponCost,
		TubeCost:          tubeCost,
		OjalesCost:        ojalesCost,
		SticksCost:        sticksCost,
		SubtotalBefWaste:  subtotalBeforeWaste,
		WasteCost:         wasteCost,
		TotalBeforeMargin: totalBeforeMargin,
		UrgencyCost:       urgencyCost,
		TotalWithUrgency:  totalWithUrgency,
		CostWithMargin:    costWithMargin,
		IVAAmount:         ivaAmount,
		FinalPrice:        finalPrice,
		Installation:      job.Installation,
		Transport:         job.Transport,
		AdjustedWidth:     adjustedWidth,
		AdjustedHeight:    adjustedHeight,
	}
}

// pickRollWidth chooses the smallest available roll that contains the adjusted
// width. When no listed roll fits, the job's own width is used and no waste
// results from the binning.
func pickRollWidth(cat Categories, adjustedWidth float64) float64 {
	if cat.ReflectiveVinyl {
		return reflectiveRollWidthCm
	}

	widths := RollWidths
	if cat.Microperforated {
		widths = MicroRollWidths
	}
	for _, w := range widths {
		if adjustedWidth <= w {
			return w
		}
	}
	return adjustedWidth
}

// parseRate parses a numeric string into a per-cm² rate, treating anything
// unparsable as zero.
func parseRate(raw string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return v
}

// CeilToHundred rounds a raw price up to the next multiple of 100. This is the
// charged price: 100 stays 100, 100.01 becomes 200, 0 stays 0.
func CeilToHundred(raw float64) float64 {
	return math.Ceil(raw/100) * 100
}
