package assess

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Item is one vehicle's assessment. The raw JSON the engine produced is
// kept alongside the typed fields: an item the reconciler could not
// process is serialized back byte-for-byte so the caller sees exactly
// what the model returned.
type Item struct {
	VehicleInfo   *VehicleInfo   `json:"vehicle_info,omitempty"`
	DamageData    *DamageData    `json:"damage_data,omitempty"`
	FraudAnalysis *FraudAnalysis `json:"fraud_analysis,omitempty"`

	raw        json.RawMessage
	parseErr   error
	reconciled bool
}

type itemAlias Item

func (it *Item) UnmarshalJSON(b []byte) error {
	it.raw = append(json.RawMessage(nil), b...)
	var a itemAlias
	if err := json.Unmarshal(b, &a); err != nil {
		// Type mismatch somewhere in the item (e.g. non-numeric cost).
		// Keep the raw payload, the item will be passed through.
		it.parseErr = err
		return nil
	}
	it.VehicleInfo = a.VehicleInfo
	it.DamageData = a.DamageData
	it.FraudAnalysis = a.FraudAnalysis
	return nil
}

func (it Item) MarshalJSON() ([]byte, error) {
	if !it.reconciled && it.raw != nil {
		return it.raw, nil
	}
	return json.Marshal(itemAlias(it))
}

// Document is what a vision engine returns for one image: a single
// vehicle assessment or an ordered list of them. The top-level shape is
// preserved end to end: a single object never becomes a one-element
// list and vice versa.
type Document struct {
	Items []Item
	Many  bool
}

// ParseDocument decodes an engine response into the typed model. It
// accepts either a single object or an array of objects.
func ParseDocument(b []byte) (*Document, error) {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty assessment document")
	}
	doc := &Document{}
	switch trimmed[0] {
	case '[':
		doc.Many = true
		if err := json.Unmarshal(trimmed, &doc.Items); err != nil {
			return nil, fmt.Errorf("assessment list: %w", err)
		}
	case '{':
		var it Item
		if err := json.Unmarshal(trimmed, &it); err != nil {
			return nil, fmt.Errorf("assessment item: %w", err)
		}
		doc.Items = []Item{it}
	default:
		return nil, fmt.Errorf("assessment document is neither object nor array")
	}
	return doc, nil
}

func (d *Document) UnmarshalJSON(b []byte) error {
	parsed, err := ParseDocument(b)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	if d.Many {
		if d.Items == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(d.Items)
	}
	if len(d.Items) == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(d.Items[0])
}
