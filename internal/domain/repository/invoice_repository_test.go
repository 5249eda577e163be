package repository

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalesReportJSONCarriesMonetaryFields(t *testing.T) {
	report := SalesReport{
		InvoiceCount:  3,
		TotalSales:    50000,
		TotalDiscount: 5000,
		FinalSales:    45000,
		TopItems: []TopItem{
			{Name: "Milk", Quantity: 4, Sales: 20000},
		},
	}

	data, err := json.Marshal(report)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, float64(3), got["invoice_count"])
	assert.Equal(t, 500.0, got["total_sales"])
	assert.Equal(t, 50.0, got["total_discount"])
	assert.Equal(t, 450.0, got["final_sales"])

	items, ok := got["top_items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "Milk", item["name"])
	assert.Equal(t, float64(4), item["quantity"])
	assert.Equal(t, 200.0, item["sales"])
}
