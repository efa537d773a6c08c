package resolve

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datamart/bulkorder/internal/batch"
	"github.com/datamart/bulkorder/internal/catalog"
	"github.com/datamart/bulkorder/internal/detect"
	"github.com/datamart/bulkorder/internal/domain"
)

func testResolver() *Resolver {
	return New(catalog.New([]domain.Product{
		{ID: "p-500mb", Name: "500MB", CapacityValue: 500, CapacityUnit: domain.UnitMB, Price: 2.8},
		{ID: "p-1gb", Name: "1GB", CapacityValue: 1, CapacityUnit: domain.UnitGB, Price: 5},
		{ID: "p-2gb", Name: "2GB", CapacityValue: 2, CapacityUnit: domain.UnitGB, Price: 8},
	}))
}

func TestResolveRow(t *testing.T) {
	r := testResolver()

	tests := []struct {
		name      string
		phone     string
		capacity  string
		wantValid bool
		wantErrs  []string
	}{
		{
			name: "valid row", phone: "0244123456", capacity: "1",
			wantValid: true,
		},
		{
			name: "country code phone", phone: "233501234567", capacity: "2",
			wantValid: true,
		},
		{
			name: "missing phone", phone: "", capacity: "1",
			wantErrs: []string{"Missing phone number"},
		},
		{
			name: "invalid phone", phone: "badnumber", capacity: "1",
			wantErrs: []string{"Invalid phone: badnumber"},
		},
		{
			name: "missing capacity", phone: "0244123456", capacity: "  ",
			wantErrs: []string{"Missing capacity"},
		},
		{
			name: "invalid capacity", phone: "0244123456", capacity: "lots",
			wantErrs: []string{"Invalid capacity: lots"},
		},
		{
			name: "no product match", phone: "0244123456", capacity: "7",
			wantErrs: []string{"No product for 7GB"},
		},
		{
			name: "both bad", phone: "nope", capacity: "junk",
			wantErrs: []string{"Invalid phone: nope", "Invalid capacity: junk"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := r.ResolveRow(0, tt.phone, tt.capacity)
			assert.Equal(t, tt.wantValid, cand.Valid)
			assert.Equal(t, tt.wantErrs, cand.Errors)
			assert.Equal(t, domain.StatusPending, cand.Status)
			if tt.wantValid {
				assert.NotEmpty(t, cand.ProductID)
				assert.Greater(t, cand.Price, 0.0)
			}
		})
	}
}

// The "no product" message names the MB tier for a bare 500, never 500GB.
func TestResolveRow_500BoundaryErrorMessage(t *testing.T) {
	r := New(catalog.New([]domain.Product{
		{ID: "p-1gb", CapacityValue: 1, CapacityUnit: domain.UnitGB, Price: 5},
	}))

	cand := r.ResolveRow(0, "0244123456", "500")
	assert.False(t, cand.Valid)
	require.Len(t, cand.Errors, 1)
	assert.Equal(t, "No product for 500MB", cand.Errors[0])
}

func TestResolveRow_500MatchesMBProduct(t *testing.T) {
	r := testResolver()

	cand := r.ResolveRow(0, "0244123456", "500")
	assert.True(t, cand.Valid)
	assert.Equal(t, "p-500mb", cand.ProductID)
}

func TestResolveTable_EndToEnd(t *testing.T) {
	r := testResolver()

	rows := [][]string{
		{"0244123456", "1"},
		{"233501234567", "2"},
		{"badnumber", "5"},
	}
	cols, err := detect.DetectColumns(rows)
	require.NoError(t, err)
	assert.Equal(t, detect.Columns{Phone: 0, Capacity: 1}, cols)

	res := r.ResolveTable(rows, cols, detect.DataStartRow(rows, cols))
	require.Len(t, res.Candidates, 3)

	assert.True(t, res.Candidates[0].Valid)
	assert.Equal(t, "0244123456", res.Candidates[0].Phone)
	assert.Equal(t, 5.0, res.Candidates[0].Price)

	assert.True(t, res.Candidates[1].Valid)
	assert.Equal(t, "0501234567", res.Candidates[1].Phone)
	assert.Equal(t, 8.0, res.Candidates[1].Price)

	assert.False(t, res.Candidates[2].Valid)
	require.NotEmpty(t, res.Candidates[2].Errors)
	assert.Contains(t, res.Candidates[2].Errors[0], "Invalid phone")

	summary := batch.Summarize(res.Candidates)
	assert.Equal(t, domain.BatchSummary{Total: 3, Valid: 2, Invalid: 1, TotalCost: 13}, summary)
}

func TestResolveTable_SkipsEmptyRows(t *testing.T) {
	r := testResolver()

	rows := [][]string{
		{"number", "capacity"},
		{"0244123456", "1"},
		{"", ""},
		{"  ", ""},
		{"0551234567", "2"},
	}
	cols, err := detect.DetectColumns(rows)
	require.NoError(t, err)

	res := r.ResolveTable(rows, cols, detect.DataStartRow(rows, cols))
	assert.Len(t, res.Candidates, 2)
	assert.Empty(t, res.Notes)
}

func TestResolveTable_RowCap(t *testing.T) {
	r := testResolver()

	rows := [][]string{{"number", "capacity"}}
	for i := 0; i < 150; i++ {
		rows = append(rows, []string{fmt.Sprintf("02441%05d", i), "1"})
	}

	cols, err := detect.DetectColumns(rows)
	require.NoError(t, err)

	res := r.ResolveTable(rows, cols, detect.DataStartRow(rows, cols))
	assert.Len(t, res.Candidates, MaxRows)
	require.Len(t, res.Notes, 1)
	assert.Contains(t, res.Notes[0], "50")
}

func TestResolveText(t *testing.T) {
	r := testResolver()

	res := r.ResolveText("0244123456 1\n\n233501234567 2\n0551234567\nbad 1\n")
	require.Len(t, res.Candidates, 4)

	assert.True(t, res.Candidates[0].Valid)
	assert.True(t, res.Candidates[1].Valid)

	// Line with only a phone token.
	assert.False(t, res.Candidates[2].Valid)
	assert.Contains(t, res.Candidates[2].Errors, "Missing capacity")

	assert.False(t, res.Candidates[3].Valid)
	assert.Contains(t, res.Candidates[3].Errors, "Invalid phone: bad")
}
