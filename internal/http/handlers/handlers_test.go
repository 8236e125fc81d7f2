package handlers

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEscalated(t *testing.T) {
	tests := map[string]struct {
		value string
		want  *bool
	}{
		"Empty": {value: "", want: nil},
		"All":   {value: "All", want: nil},
		"True":  {value: "true", want: boolRef(true)},
		"Yes":   {value: "Yes", want: boolRef(true)},
		"False": {value: "false", want: boolRef(false)},
		"No":    {value: "No", want: boolRef(false)},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseEscalated(tc.value))
		})
	}
}

func TestIssueRequestValidation(t *testing.T) {
	v := validator.New()
	req := IssueRequest{
		Client: "AARP", Project: "Lead Gen - 2025", ClientPartner: "Komal Singh",
		RaisedBy: "John Smith", Description: "API failure", ResolutionOwner: "Ravi Kumar", RAGStatus: "Red",
	}
	require.NoError(t, v.Struct(req))

	req.RAGStatus = "red"
	assert.Error(t, v.Struct(req))

	req.RAGStatus = "Amber"
	req.ResolutionOwner = ""
	assert.Error(t, v.Struct(req))
}

func TestIssueRequestFieldsTrimmed(t *testing.T) {
	f := IssueRequest{Client: " AARP ", RAGStatus: "Green", Escalated: true}.fields()
	assert.Equal(t, "AARP", f.Client)
	assert.True(t, f.Escalated)
	assert.EqualValues(t, "Green", f.RAGStatus)
}

func boolRef(b bool) *bool { return &b }
