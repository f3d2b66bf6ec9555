package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporterRendersRowsInHeaderOrder(t *testing.T) {
	data := Dataset{Headers: []string{"Date", "Field Number", "Status"}}
	data.AddRow("2024-05-01", "F12", "Approved")
	data.Rows = append(data.Rows, map[string]string{"Status": "Pending", "Date": "2024-05-02"})

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Equal(t, "Date,Field Number,Status\n2024-05-01,F12,Approved\n2024-05-02,,Pending\n", string(out))
}

func TestCSVExporterQuotesSeparators(t *testing.T) {
	data := Dataset{Headers: []string{"Operations"}}
	data.AddRow("Sowing, weeding")

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)
	assert.Equal(t, "Operations\n\"Sowing, weeding\"\n", string(out))
}

func TestExportersRequireHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
	_, err = NewPDFExporter().Render(Dataset{}, "forecast")
	require.Error(t, err)
}

func TestPDFExporterProducesDocument(t *testing.T) {
	data := Dataset{Headers: []string{"Date", "Crop"}}
	data.AddRow("2024-05-01", "Rice")

	out, err := NewPDFExporter().Render(data, "Forecast register")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
