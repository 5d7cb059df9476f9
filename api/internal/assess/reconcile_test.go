package assess

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, s string) *Document {
	t.Helper()
	doc, err := ParseDocument([]byte(s))
	require.NoError(t, err)
	return doc
}

func TestReconcileFillsMissingBounds(t *testing.T) {
	doc := mustParse(t, `{
		"vehicle_info": {"make": "VW", "model": "Golf", "year": "2019", "color": "blue"},
		"damage_data": {
			"damaged_parts": [{"part": "front bumper", "damage_type": "dent", "severity": "Moderate", "repair_action": "replace"}],
			"cost_breakdown": {
				"parts": [{"name": "front bumper", "cost": 150}, {"name": "clips", "cost": 50}],
				"labor": [],
				"additional_fees": []
			}
		}
	}`)
	Reconcile(doc)

	cb := doc.Items[0].DamageData.CostBreakdown
	require.Len(t, cb.Parts, 2)
	assert.Equal(t, 135.0, *cb.Parts[0].MinCost)
	assert.Equal(t, 165.0, *cb.Parts[0].MaxCost)
	assert.Equal(t, 45.0, *cb.Parts[1].MinCost)
	assert.Equal(t, 55.0, *cb.Parts[1].MaxCost)

	assert.Equal(t, CategoryTotal{Min: 180, Max: 220, Expected: 200}, cb.PartsTotal)
	assert.Equal(t, TotalEstimate{Min: 180, Max: 220, Expected: 200, Currency: "EUR"}, cb.TotalEstimate)
}

func TestReconcileKeepsExplicitBounds(t *testing.T) {
	doc := mustParse(t, `{
		"damage_data": {
			"cost_breakdown": {
				"parts": [{"name": "hood", "cost": 400, "min_cost": 100, "max_cost": 900}]
			}
		}
	}`)
	Reconcile(doc)

	p := doc.Items[0].DamageData.CostBreakdown.Parts[0]
	assert.Equal(t, 100.0, *p.MinCost)
	assert.Equal(t, 900.0, *p.MaxCost)
}

func TestReconcileBoundsRounding(t *testing.T) {
	doc := mustParse(t, `{
		"damage_data": {
			"cost_breakdown": {
				"labor": [{"service": "paint", "hours": 1, "rate": 33.33, "cost": 33.33}]
			}
		}
	}`)
	Reconcile(doc)

	l := doc.Items[0].DamageData.CostBreakdown.Labor[0]
	assert.Equal(t, 30.0, *l.MinCost)  // 29.997 rounds half away from zero
	assert.Equal(t, 36.66, *l.MaxCost) // 36.663
}

func TestReconcileOverwritesModelTotals(t *testing.T) {
	doc := mustParse(t, `{
		"damage_data": {
			"cost_breakdown": {
				"parts": [{"name": "mirror", "cost": 80, "min_cost": 70, "max_cost": 95}],
				"labor": [{"service": "fit", "hours": 0.5, "rate": 80, "cost": 40, "min_cost": 35, "max_cost": 50}],
				"additional_fees": [{"description": "shop supplies", "cost": 10, "min_cost": 8, "max_cost": 12}],
				"parts_total": {"min": 9999, "max": 9999, "expected": 9999},
				"labor_total": {"min": 1, "max": 1, "expected": 1},
				"fees_total": {"min": 0, "max": 0, "expected": 0},
				"total_estimate": {"min": 9999, "max": 9999, "expected": 9999, "currency": "USD"}
			}
		}
	}`)
	Reconcile(doc)

	cb := doc.Items[0].DamageData.CostBreakdown
	assert.Equal(t, CategoryTotal{Min: 70, Max: 95, Expected: 80}, cb.PartsTotal)
	assert.Equal(t, CategoryTotal{Min: 35, Max: 50, Expected: 40}, cb.LaborTotal)
	assert.Equal(t, CategoryTotal{Min: 8, Max: 12, Expected: 10}, cb.FeesTotal)
	// Sums are recomputed, the currency the model chose stays.
	assert.Equal(t, TotalEstimate{Min: 113, Max: 157, Expected: 130, Currency: "USD"}, cb.TotalEstimate)
}

func TestReconcileEmptyCategories(t *testing.T) {
	doc := mustParse(t, `{"damage_data": {"cost_breakdown": {}}}`)
	Reconcile(doc)

	cb := doc.Items[0].DamageData.CostBreakdown
	assert.NotNil(t, cb.Parts)
	assert.NotNil(t, cb.Labor)
	assert.NotNil(t, cb.AdditionalFees)
	assert.Equal(t, CategoryTotal{}, cb.PartsTotal)
	assert.Equal(t, TotalEstimate{Currency: "EUR"}, cb.TotalEstimate)
}

func TestReconcileCertaintyDefaults(t *testing.T) {
	doc := mustParse(t, `{
		"vehicle_info": {"make": "BMW", "model": "320i", "model_certainty": 55.5},
		"damage_data": {"cost_breakdown": {}}
	}`)
	Reconcile(doc)

	vi := doc.Items[0].VehicleInfo
	assert.Equal(t, 85.0, *vi.MakeCertainty)
	assert.Equal(t, 55.5, *vi.ModelCertainty)
}

func TestReconcileFraudDefaults(t *testing.T) {
	doc := mustParse(t, `{"damage_data": {"cost_breakdown": {}}}`)
	Reconcile(doc)

	fa := doc.Items[0].FraudAnalysis
	require.NotNil(t, fa)
	assert.Equal(t, "low", fa.FraudRiskLevel)
	assert.Equal(t, "No specific fraud indicators identified in the assessment.", fa.FraudCommentary)

	doc = mustParse(t, `{
		"damage_data": {"cost_breakdown": {}},
		"fraud_analysis": {"fraud_commentary": "Suspicious shadows.", "fraud_risk_level": "high"}
	}`)
	Reconcile(doc)
	assert.Equal(t, "high", doc.Items[0].FraudAnalysis.FraudRiskLevel)
	assert.Equal(t, "Suspicious shadows.", doc.Items[0].FraudAnalysis.FraudCommentary)
}

func TestReconcileIdempotent(t *testing.T) {
	src := `[{
		"vehicle_info": {"make": "Audi", "model": "A4"},
		"damage_data": {
			"damaged_parts": [{"part": "door", "damage_type": "scratch", "severity": "Minor", "repair_action": "repaint"}],
			"cost_breakdown": {
				"parts": [{"name": "paint", "cost": 120.55}],
				"labor": [{"service": "repaint", "hours": 2, "rate": 60, "cost": 120}],
				"additional_fees": [{"description": "disposal", "cost": 7.33}]
			}
		}
	}]`
	doc := mustParse(t, src)
	Reconcile(doc)
	once, err := json.Marshal(doc)
	require.NoError(t, err)

	again := mustParse(t, string(once))
	Reconcile(again)
	twice, err := json.Marshal(again)
	require.NoError(t, err)

	assert.JSONEq(t, string(once), string(twice))
}

func TestReconcileMalformedItemPassthrough(t *testing.T) {
	malformed := `{"vehicle_info":{"make":"Opel"},"damage_data":{"cost_breakdown":{"parts":[{"name":"wing","cost":"a lot"}]}}}`
	doc := mustParse(t, `[
		{"damage_data": {"cost_breakdown": {"parts": [{"name": "wing", "cost": 100}]}}},
		`+malformed+`
	]`)
	Reconcile(doc)

	out, err := json.Marshal(doc)
	require.NoError(t, err)

	var items []json.RawMessage
	require.NoError(t, json.Unmarshal(out, &items))
	require.Len(t, items, 2)

	// The good item is reconciled.
	var good struct {
		DamageData struct {
			CostBreakdown struct {
				PartsTotal CategoryTotal `json:"parts_total"`
			} `json:"cost_breakdown"`
		} `json:"damage_data"`
	}
	require.NoError(t, json.Unmarshal(items[0], &good))
	assert.Equal(t, 100.0, good.DamageData.CostBreakdown.PartsTotal.Expected)

	// The malformed one comes back exactly as the model produced it.
	assert.JSONEq(t, malformed, string(items[1]))
}

func TestReconcileMissingDamageDataPassthrough(t *testing.T) {
	raw := `{"vehicle_info":{"make":"Seat","model":"Leon"}}`
	doc := mustParse(t, raw)
	Reconcile(doc)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestReconcileNilDoc(t *testing.T) {
	assert.Nil(t, Reconcile(nil))
}
