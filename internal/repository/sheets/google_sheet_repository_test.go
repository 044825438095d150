package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/mamadbah2/agritech/internal/config"
	"github.com/mamadbah2/agritech/internal/domain/models"
)

func TestInventoryRows(t *testing.T) {
	rows := InventoryRows([]models.InventoryItem{{
		Name: "Gadget B", Category: "Electronics", Quantity: 30,
		Price: decimal.RequireFromString("49.99"), ReorderPoint: 40,
		Supplier: "Gadget World", LastUpdated: models.MustParseDate("2024-10-24"),
	}})

	require.Len(t, rows, 2)
	assert.Equal(t, InventoryHeader, rows[0])
	assert.Equal(t, []interface{}{"Gadget B", "Electronics", 30, "49.99", 40, "Low Stock", "Gadget World", "2024-10-24"}, rows[1])
}

func TestReplaceRange(t *testing.T) {
	var calls []string
	var written [][]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodPut {
			var body struct {
				Values [][]interface{} `json:"values"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			written = body.Values
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	repo, err := NewGoogleSheetRepository(context.Background(), config.SheetsConfig{SpreadsheetID: "sheet-1"}, nil,
		option.WithEndpoint(srv.URL), option.WithoutAuthentication(), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	require.NoError(t, repo.ReplaceRange(context.Background(), "Inventory!A:H", [][]interface{}{{"Name"}, {"Widget A"}}))

	require.Len(t, calls, 2)
	assert.True(t, strings.HasPrefix(calls[0], "POST "), calls[0])
	assert.Contains(t, calls[0], ":clear")
	assert.True(t, strings.HasPrefix(calls[1], "PUT "), calls[1])
	assert.Equal(t, [][]interface{}{{"Name"}, {"Widget A"}}, written)

	assert.Error(t, repo.ReplaceRange(context.Background(), "", nil))
}
