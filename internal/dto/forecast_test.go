package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadcountAcceptsNumbersAndNumericStrings(t *testing.T) {
	var req SubmitForecastRequest
	require.NoError(t, json.Unmarshal([]byte(`{"men": 3, "women": " 2 ", "total": 99}`), &req))
	require.NotNil(t, req.Men)
	require.NotNil(t, req.Women)
	assert.Equal(t, Headcount(3), *req.Men)
	assert.Equal(t, Headcount(2), *req.Women)
}

func TestHeadcountAbsentOrNullStaysNil(t *testing.T) {
	var req SubmitForecastRequest
	require.NoError(t, json.Unmarshal([]byte(`{"men": null}`), &req))
	assert.Nil(t, req.Men)
	assert.Nil(t, req.Women)
}

func TestHeadcountRejectsNonNumeric(t *testing.T) {
	for _, body := range []string{`{"men": "three"}`, `{"men": "2.5"}`, `{"men": "NaN"}`, `{"men": ""}`, `{"men": true}`} {
		var req SubmitForecastRequest
		assert.Error(t, json.Unmarshal([]byte(body), &req), body)
	}
}

func TestHeadcountRejectsValuesBeyondIntegerColumn(t *testing.T) {
	for _, body := range []string{`{"men": 3000000000}`, `{"men": "2147483648"}`, `{"men": 1e300}`} {
		var req SubmitForecastRequest
		assert.Error(t, json.Unmarshal([]byte(body), &req), body)
	}

	var req SubmitForecastRequest
	require.NoError(t, json.Unmarshal([]byte(`{"men": 2147483647}`), &req))
	assert.Equal(t, Headcount(MaxHeadcount), *req.Men)
}

func TestUpdateForecastRequestEmpty(t *testing.T) {
	var req UpdateForecastRequest
	require.NoError(t, json.Unmarshal([]byte(`{}`), &req))
	assert.True(t, req.Empty())

	require.NoError(t, json.Unmarshal([]byte(`{"crop": "Maize"}`), &req))
	assert.False(t, req.Empty())
}
