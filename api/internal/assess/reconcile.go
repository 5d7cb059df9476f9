package assess

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
)

// Policy constants for repairing model output. The ±10% band only fills
// in bounds the model omitted; explicit bounds are never overridden.
const (
	defaultMinFactor      = 0.9
	defaultMaxFactor      = 1.1
	defaultMakeCertainty  = 85.0
	defaultModelCertainty = 80.0
	defaultCurrency       = "EUR"

	defaultFraudRiskLevel  = "low"
	defaultFraudCommentary = "No specific fraud indicators identified in the assessment."
)

// Reconcile normalizes every item of a document in place and returns the
// document. Leaf cost values are the source of truth: every category
// total and the grand total are recomputed from them unconditionally,
// because the upstream model is known to produce inconsistent
// arithmetic. The operation is pure and idempotent; an item that cannot
// be processed is logged and passed through unchanged so the caller can
// still see the raw model output.
func Reconcile(doc *Document) *Document {
	if doc == nil {
		return nil
	}
	for i := range doc.Items {
		if err := reconcileItem(&doc.Items[i]); err != nil {
			log.Printf("assess: skipping item %d: %v", i, err)
		}
	}
	return doc
}

func reconcileItem(it *Item) error {
	if it.parseErr != nil {
		return fmt.Errorf("malformed item: %w", it.parseErr)
	}
	if it.DamageData == nil {
		return fmt.Errorf("missing damage_data%s", vehicleHint(it.VehicleInfo))
	}
	if it.DamageData.CostBreakdown == nil {
		return fmt.Errorf("missing cost_breakdown%s", vehicleHint(it.VehicleInfo))
	}

	cb := it.DamageData.CostBreakdown
	if cb.Parts == nil {
		cb.Parts = []PartCost{}
	}
	if cb.Labor == nil {
		cb.Labor = []LaborCost{}
	}
	if cb.AdditionalFees == nil {
		cb.AdditionalFees = []FeeCost{}
	}
	if it.DamageData.DamagedParts == nil {
		it.DamageData.DamagedParts = []DamagedPart{}
	}

	for i := range cb.Parts {
		p := &cb.Parts[i]
		completeBounds(p.Cost, &p.MinCost, &p.MaxCost)
	}
	for i := range cb.Labor {
		l := &cb.Labor[i]
		completeBounds(l.Cost, &l.MinCost, &l.MaxCost)
	}
	for i := range cb.AdditionalFees {
		f := &cb.AdditionalFees[i]
		completeBounds(f.Cost, &f.MinCost, &f.MaxCost)
	}

	cb.PartsTotal = sumParts(cb.Parts)
	cb.LaborTotal = sumLabor(cb.Labor)
	cb.FeesTotal = sumFees(cb.AdditionalFees)

	cb.TotalEstimate.Min = round2(cb.PartsTotal.Min + cb.LaborTotal.Min + cb.FeesTotal.Min)
	cb.TotalEstimate.Max = round2(cb.PartsTotal.Max + cb.LaborTotal.Max + cb.FeesTotal.Max)
	cb.TotalEstimate.Expected = round2(cb.PartsTotal.Expected + cb.LaborTotal.Expected + cb.FeesTotal.Expected)
	if cb.TotalEstimate.Currency == "" {
		cb.TotalEstimate.Currency = defaultCurrency
	}

	if vi := it.VehicleInfo; vi != nil {
		if vi.MakeCertainty == nil {
			vi.MakeCertainty = ptr(defaultMakeCertainty)
		}
		if vi.ModelCertainty == nil {
			vi.ModelCertainty = ptr(defaultModelCertainty)
		}
	}

	if it.FraudAnalysis == nil {
		it.FraudAnalysis = &FraudAnalysis{}
	}
	if it.FraudAnalysis.FraudRiskLevel == "" {
		it.FraudAnalysis.FraudRiskLevel = defaultFraudRiskLevel
	}
	if it.FraudAnalysis.FraudCommentary == "" {
		it.FraudAnalysis.FraudCommentary = defaultFraudCommentary
	}

	it.reconciled = true
	return nil
}

// completeBounds fills a missing min/max with cost×0.9 / cost×1.1,
// rounded to 2 decimals. Present bounds are left alone.
func completeBounds(cost float64, min, max **float64) {
	if *min == nil {
		*min = ptr(round2(cost * defaultMinFactor))
	}
	if *max == nil {
		*max = ptr(round2(cost * defaultMaxFactor))
	}
}

func sumParts(items []PartCost) CategoryTotal {
	var t totalAcc
	for i := range items {
		t.add(items[i].Cost, items[i].MinCost, items[i].MaxCost)
	}
	return t.total()
}

func sumLabor(items []LaborCost) CategoryTotal {
	var t totalAcc
	for i := range items {
		t.add(items[i].Cost, items[i].MinCost, items[i].MaxCost)
	}
	return t.total()
}

func sumFees(items []FeeCost) CategoryTotal {
	var t totalAcc
	for i := range items {
		t.add(items[i].Cost, items[i].MinCost, items[i].MaxCost)
	}
	return t.total()
}

// totalAcc sums leaf costs in decimal so category totals come out exact
// and repeated reconciliation cannot drift.
type totalAcc struct {
	min, max, expected decimal.Decimal
}

func (t *totalAcc) add(cost float64, minCost, maxCost *float64) {
	t.expected = t.expected.Add(decimal.NewFromFloat(cost))
	if minCost != nil {
		t.min = t.min.Add(decimal.NewFromFloat(*minCost))
	}
	if maxCost != nil {
		t.max = t.max.Add(decimal.NewFromFloat(*maxCost))
	}
}

func (t *totalAcc) total() CategoryTotal {
	return CategoryTotal{
		Min:      t.min.Round(2).InexactFloat64(),
		Max:      t.max.Round(2).InexactFloat64(),
		Expected: t.expected.Round(2).InexactFloat64(),
	}
}

// round2 rounds half away from zero to 2 decimal places. Re-rounding an
// already-rounded value is a no-op, which keeps Reconcile idempotent.
func round2(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

func vehicleHint(vi *VehicleInfo) string {
	if vi == nil || (vi.Make == "" && vi.Model == "") {
		return ""
	}
	return fmt.Sprintf(" (vehicle %s %s)", vi.Make, vi.Model)
}

func ptr(f float64) *float64 { return &f }
