package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestAirtableClientFetchFlattensAndPaginates(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, "Bearer key123", r.Header.Get("Authorization"))
		assert.Equal(t, "/v0/appBase/Plan Alimentaire", r.URL.Path)
		assert.Equal(t, `{Élève}='Féline Faure'`, r.URL.Query().Get("filterByFormula"))

		if r.URL.Query().Get("offset") == "" {
			writeJSON(w, http.StatusOK, map[string]any{
				"records": []map[string]any{
					{"id": "rec1", "fields": map[string]any{"Aliment": "Riz", "Protéines (kcal)": 12}},
				},
				"offset": "itr/next",
			})
			return
		}
		assert.Equal(t, "itr/next", r.URL.Query().Get("offset"))
		writeJSON(w, http.StatusOK, map[string]any{
			"records": []map[string]any{
				{"id": "rec2", "fields": map[string]any{"Aliment": "Poulet"}},
			},
		})
	}))
	defer srv.Close()

	c := NewAirtableClient(srv.URL, "key123", "appBase", time.Second)
	recs, err := c.FetchFromAirtable(context.Background(), "Plan Alimentaire", QueryOptions{
		FilterByFormula: EncodeFormula(`{Élève}='Féline Faure'`),
	})
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, "rec1", recs[0].ID())
	assert.Equal(t, "Riz", recs[0]["Aliment"])
	assert.Equal(t, float64(12), recs[0]["Protéines (kcal)"])
	assert.Equal(t, "rec2", recs[1].ID())
}

func TestAirtableClientFetchAllSendsNoFormula(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.RawQuery)
		writeJSON(w, http.StatusOK, map[string]any{"records": []any{}})
	}))
	defer srv.Close()

	c := NewAirtableClient(srv.URL, "key", "app", time.Second)
	recs, err := c.FetchAllRecords(context.Background(), "BCJ")
	require.NoError(t, err)
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestAirtableClientPropagatesErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error": map[string]string{"type": "INVALID_FILTER_BY_FORMULA"},
		})
	}))
	defer srv.Close()

	c := NewAirtableClient(srv.URL, "key", "app", time.Second)
	_, err := c.FetchFromAirtable(context.Background(), "BCJ", QueryOptions{FilterByFormula: EncodeFormula("FIND(")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "INVALID_FILTER_BY_FORMULA")
}

func TestAirtableClientTimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer srv.Close()
	defer close(release)

	c := NewAirtableClient(srv.URL, "key", "app", 50*time.Millisecond)
	_, err := c.FetchAllRecords(context.Background(), "BCJ")
	assert.Error(t, err)
}

func TestAirtableClientUnconfiguredMakesNoCall(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := NewAirtableClient(srv.URL, "", "app", time.Second)
	assert.False(t, c.IsConfigured())
	_, err := c.FetchAllRecords(context.Background(), "BCJ")
	assert.ErrorIs(t, err, ErrStoreNotConfigured)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestEncodeFormulaRoundTrip(t *testing.T) {
	f := `OR(SEARCH("rec1", {Élève}), SEARCH("rec1", {IDU Élève}))`
	assert.NotContains(t, EncodeFormula(f), " ")
	assert.Equal(t, f, DecodeFormula(EncodeFormula(f)))
}
