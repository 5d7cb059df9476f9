package assess

// Typed model for the damage-assessment document returned by the vision
// engines. Field names are fixed by contract with the callers (HTTP
// API, Telegram/WhatsApp formatters).

type VehicleInfo struct {
	Make           string   `json:"make"`
	Model          string   `json:"model"`
	Year           string   `json:"year"`
	Color          string   `json:"color"`
	Type           string   `json:"type,omitempty"`
	Trim           string   `json:"trim,omitempty"`
	MakeCertainty  *float64 `json:"make_certainty,omitempty"`
	ModelCertainty *float64 `json:"model_certainty,omitempty"`
}

type DamagedPart struct {
	Part         string `json:"part"`
	DamageType   string `json:"damage_type"`
	Severity     string `json:"severity"` // "Minor" | "Moderate" | "Severe"
	RepairAction string `json:"repair_action"`
}

// PartCost is one replacement part or material line.
type PartCost struct {
	Name    string   `json:"name"`
	Cost    float64  `json:"cost"`
	MinCost *float64 `json:"min_cost,omitempty"`
	MaxCost *float64 `json:"max_cost,omitempty"`
}

// LaborCost is one labor service line; cost is usually hours*rate but the
// leaf cost value is what counts for totals.
type LaborCost struct {
	Service string   `json:"service"`
	Hours   float64  `json:"hours"`
	Rate    float64  `json:"rate"`
	Cost    float64  `json:"cost"`
	MinCost *float64 `json:"min_cost,omitempty"`
	MaxCost *float64 `json:"max_cost,omitempty"`
}

// FeeCost is one additional fee line (disposal, shop supplies, ...).
type FeeCost struct {
	Description string   `json:"description"`
	Cost        float64  `json:"cost"`
	MinCost     *float64 `json:"min_cost,omitempty"`
	MaxCost     *float64 `json:"max_cost,omitempty"`
}

type CategoryTotal struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Expected float64 `json:"expected"`
}

type TotalEstimate struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Expected float64 `json:"expected"`
	Currency string  `json:"currency"`
}

type CostBreakdown struct {
	Parts          []PartCost    `json:"parts"`
	Labor          []LaborCost   `json:"labor"`
	AdditionalFees []FeeCost     `json:"additional_fees"`
	PartsTotal     CategoryTotal `json:"parts_total"`
	LaborTotal     CategoryTotal `json:"labor_total"`
	FeesTotal      CategoryTotal `json:"fees_total"`
	TotalEstimate  TotalEstimate `json:"total_estimate"`
}

type DamageData struct {
	DamagedParts  []DamagedPart  `json:"damaged_parts"`
	CostBreakdown *CostBreakdown `json:"cost_breakdown,omitempty"`
}

type FraudAnalysis struct {
	FraudCommentary string `json:"fraud_commentary"`
	FraudRiskLevel  string `json:"fraud_risk_level"` // "very low" .. "very high"
}
