package telegram

import (
	"fmt"
	"strings"

	"claims-assistant/api/internal/assess"
)

// FormatAssessment renders the first item of an assessment document as
// a Markdown message with vehicle, damage and cost sections.
func FormatAssessment(doc *assess.Document) string {
	if doc == nil || len(doc.Items) == 0 {
		return "Error formatting damage assessment. Please try again later."
	}
	item := doc.Items[0]
	if item.DamageData == nil {
		return "Error formatting damage assessment. Please try again later."
	}

	var b strings.Builder

	b.WriteString("🚗 *VEHICLE DETAILS*\n")
	vi := item.VehicleInfo
	if vi == nil {
		vi = &assess.VehicleInfo{}
	}
	fmt.Fprintf(&b, "Make: %s (%.1f%%)\n", orUnknown(vi.Make), deref(vi.MakeCertainty))
	fmt.Fprintf(&b, "Model: %s (%.1f%%)\n", orUnknown(vi.Model), deref(vi.ModelCertainty))
	fmt.Fprintf(&b, "Year: %s\n", orUnknown(vi.Year))
	fmt.Fprintf(&b, "Color: %s\n", orUnknown(vi.Color))

	b.WriteString("\n🔧 *DAMAGE ASSESSMENT*\n")
	for i, part := range item.DamageData.DamagedParts {
		fmt.Fprintf(&b, "%d. %s: %s %s\n   Repair action: %s\n",
			i+1, orUnknown(part.Part), orUnknown(part.Severity),
			orUnknown(part.DamageType), orUnknown(part.RepairAction))
	}
	if len(item.DamageData.DamagedParts) == 0 {
		b.WriteString("No damaged parts identified.\n")
	}

	cb := item.DamageData.CostBreakdown
	if cb != nil {
		te := cb.TotalEstimate
		b.WriteString("\n💰 *COST ESTIMATE*\n")
		fmt.Fprintf(&b, "Parts: %.2f\n", cb.PartsTotal.Expected)
		fmt.Fprintf(&b, "Labor: %.2f\n", cb.LaborTotal.Expected)
		fmt.Fprintf(&b, "Fees: %.2f\n", cb.FeesTotal.Expected)
		fmt.Fprintf(&b, "Total: %.2f %s\n", te.Expected, te.Currency)
		fmt.Fprintf(&b, "Range: %.2f-%.2f %s", te.Min, te.Max, te.Currency)
	}

	if fa := item.FraudAnalysis; fa != nil && fa.FraudRiskLevel != "" && fa.FraudRiskLevel != "low" {
		fmt.Fprintf(&b, "\n\n⚠️ *FRAUD RISK: %s*\n%s", strings.ToUpper(fa.FraudRiskLevel), fa.FraudCommentary)
	}

	return b.String()
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return "Unknown"
	}
	return s
}

func deref(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
