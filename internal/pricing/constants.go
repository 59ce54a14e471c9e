package pricing

// Finishing allowance added to banner and street-banner jobs (hem + pockets).
const (
	hemWidthAllowanceCm  = 3
	hemHeightAllowanceCm = 10
)

// Flat cost of the pair of end caps per printed unit when tube finishing is on.
const taponUnitCost = 800

// Reflective vinyl is only stocked in a single roll size.
const reflectiveRollWidthCm = 60

// RollWidths are the standard material roll widths in cm, ascending. The
// engine charges the full width of the smallest roll that fits the job.
var RollWidths = []float64{110, 160, 220, 320}

// MicroRollWidths are the roll sizes stocked for microperforated vinyl.
var MicroRollWidths = []float64{100, 150}

// DesignCostByMinutes maps a catalog entry's design time to a flat design fee
// in COP. Times without an entry price at 0.
var DesignCostByMinutes = map[int]float64{
	15:  10000,
	30:  20000,
	45:  30000,
	60:  40000,
	90:  60000,
	120: 80000,
}
