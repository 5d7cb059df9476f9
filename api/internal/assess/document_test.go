package assess

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDocumentShapePreserved(t *testing.T) {
	single := mustParse(t, `{"damage_data": {"cost_breakdown": {}}}`)
	assert.False(t, single.Many)
	require.Len(t, single.Items, 1)

	out, err := json.Marshal(single)
	require.NoError(t, err)
	assert.Equal(t, byte('{'), out[0])

	list := mustParse(t, `[{"damage_data": {"cost_breakdown": {}}}]`)
	assert.True(t, list.Many)

	out, err = json.Marshal(list)
	require.NoError(t, err)
	assert.Equal(t, byte('['), out[0])
}

func TestParseDocumentEmptyList(t *testing.T) {
	doc := mustParse(t, `[]`)
	assert.True(t, doc.Many)
	assert.Empty(t, doc.Items)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(out))
}

func TestParseDocumentRejectsNonDocument(t *testing.T) {
	for _, s := range []string{"", "   ", "42", `"text"`, "true"} {
		_, err := ParseDocument([]byte(s))
		assert.Error(t, err, "input %q", s)
	}
}

func TestItemUnmarshalToleratesTypeMismatch(t *testing.T) {
	raw := `{"damage_data":{"cost_breakdown":{"parts":[{"name":"wing","cost":"oops"}]}}}`
	var it Item
	require.NoError(t, json.Unmarshal([]byte(raw), &it))
	assert.Error(t, it.parseErr)

	out, err := json.Marshal(it)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestDocumentRoundTripUntouched(t *testing.T) {
	// Without Reconcile, every item echoes the engine's bytes.
	raw := `[{"vehicle_info":{"make":"Fiat"},"extra_field":123}]`
	doc := mustParse(t, raw)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}
