package docintel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conf(v float64) *float64 { return &v }

func TestParseDate(t *testing.T) {
	cases := map[string]string{
		"2024-03-15": "2024-03-15",
		"15.03.2024": "2024-03-15",
		"15/03/2024": "2024-03-15",
		"2024/03/15": "2024-03-15",
		"":           "",
		"yesterday":  "yesterday", // unparseable input survives
	}
	for in, want := range cases {
		assert.Equal(t, want, parseDate(in), "input %q", in)
	}
}

func TestParseTime(t *testing.T) {
	cases := map[string]string{
		"14:30":    "14:30",
		"14:30:25": "14:30",
		"9:5":      "09:05",
		"":         "",
		"noonish":  "noonish",
		"25:00":    "25:00",
	}
	for in, want := range cases {
		assert.Equal(t, want, parseTime(in), "input %q", in)
	}
}

func TestParsePostalCode(t *testing.T) {
	assert.Equal(t, "10115", parsePostalCode("10115", "Deutschland"))
	assert.Equal(t, "10115", parsePostalCode("10 115", "Germany"))
	assert.Equal(t, "", parsePostalCode("1011", "Deutschland"))
	assert.Equal(t, "", parsePostalCode("ABCDE", "Deutschland"))
	assert.Equal(t, "AB1 2CD", parsePostalCode("AB1 2CD", "United Kingdom"))
	assert.Equal(t, "", parsePostalCode("xy", "France"))
	assert.Equal(t, "", parsePostalCode("", ""))
}

func TestMapAccidentReportEN(t *testing.T) {
	fields := map[string]field{
		"AccidentDetails_Date":     {Content: "12.06.2025", Confidence: conf(0.95)},
		"AccidentDetails_Time":     {Content: "8:45", Confidence: conf(0.92)},
		"AccidentDetails_Locality": {Content: "Hauptstrasse 12", Confidence: conf(0.9)},
		"AccidentDetails_Place":    {Content: "Berlin", Confidence: conf(0.9)},
		"AccidentDetails_Country":  {Content: "Germany", Confidence: conf(0.99)},

		"Injuries_Occurred":    {Type: "selectionMark", Value: "selected", Confidence: conf(0.97)},
		"Injuries_Description": {Content: "Driver B, whiplash", Confidence: conf(0.9)},

		"Witness1_Name":      {Content: "Schmidt", Confidence: conf(0.88)},
		"Witness1_FirstName": {Content: "Anna", Confidence: conf(0.9)},

		"PartyA_Policyholder_Name":             {ValueString: "Meyer", Confidence: conf(0.93)},
		"PartyA_Vehicle_Motor_MakeType":        {Content: "VW Golf", Confidence: conf(0.91)},
		"PartyA_Insurance_ValidTo":             {Content: "2026-01-31", Confidence: conf(0.9)},
		"PartyA_Circumstance_Overtaking":       {Type: "selectionMark", Value: "selected", Confidence: conf(0.96)},
		"PartyA_Circumstance_BoxesMarkedTotal": {Content: "1", Confidence: conf(0.9)},

		"PartyB_Policyholder_Name": {Content: "Keller", Confidence: conf(0.9)},
		// Below threshold, must be dropped.
		"PartyB_Vehicle_Motor_MakeType": {Content: "misread", Confidence: conf(0.4)},

		"Final_LiabilityAdmission": {Type: "selectionMark", Value: "unselected", Confidence: conf(0.95)},
	}

	report := mapAccidentReport(fields, LangEN)
	require.NotNil(t, report)
	assert.Equal(t, LangEN, report.Language)

	st := report.AccidentStatement
	assert.Equal(t, "2025-06-12", st.AccidentDetails.Date)
	assert.Equal(t, "08:45", st.AccidentDetails.Time)
	assert.Equal(t, "Berlin", st.AccidentDetails.Place)
	assert.True(t, st.AccidentDetails.Injuries.Occurred)
	assert.Equal(t, "Driver B, whiplash", st.AccidentDetails.Injuries.Description)

	require.Len(t, st.AccidentDetails.Witnesses, 1)
	assert.Equal(t, "Schmidt", st.AccidentDetails.Witnesses[0].Name)
	assert.Equal(t, "Anna", st.AccidentDetails.Witnesses[0].FirstName)

	a := st.Vehicles.A
	assert.Equal(t, "Meyer", a.InsuredPolicyholder.Name)
	assert.Equal(t, "VW Golf", a.Vehicle.Motor.MakeType)
	assert.Equal(t, "2026-01-31", a.Insurance.ValidTo)
	assert.True(t, a.Circumstances.Overtaking)
	assert.False(t, a.Circumstances.TurningLeft)
	assert.Equal(t, 1, a.Circumstances.BoxesMarkedTotal)

	b := st.Vehicles.B
	assert.Equal(t, "Keller", b.InsuredPolicyholder.Name)
	assert.Empty(t, b.Vehicle.Motor.MakeType, "low-confidence value must be dropped")

	assert.False(t, st.Final.LiabilityAdmission)
}

func TestMapAccidentReportDEPartyTokens(t *testing.T) {
	fields := map[string]field{
		"ParteiA_Fahrer_Name":                {Content: "Weber", Confidence: conf(0.9)},
		"ParteiB_Umstand_14_FuhrRueckwaerts": {Type: "selectionMark", Value: "selected", Confidence: conf(0.9)},
	}

	report := mapAccidentReport(fields, LangDE)
	assert.Equal(t, "Weber", report.AccidentStatement.Vehicles.A.Driver.Name)
	assert.True(t, report.AccidentStatement.Vehicles.B.Circumstances.Reversing)
	assert.False(t, report.AccidentStatement.Vehicles.A.Circumstances.Reversing)
}

func TestMapAccidentReportNoWitness(t *testing.T) {
	report := mapAccidentReport(map[string]field{}, LangNL)
	assert.Empty(t, report.AccidentStatement.AccidentDetails.Witnesses)
}

func TestParseLanguage(t *testing.T) {
	for _, s := range []string{"de", "en", "nl"} {
		lang, err := ParseLanguage(s)
		require.NoError(t, err)
		assert.Equal(t, Language(s), lang)
	}
	_, err := ParseLanguage("fr")
	assert.Error(t, err)
	_, err = ParseLanguage("")
	assert.Error(t, err)
}
