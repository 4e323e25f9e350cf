package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

var ErrStoreNotConfigured = errors.New("airtable store is not configured")

// upper bound on offset-cursor pages followed for a single query
const maxPages = 200

// QueryOptions narrows a table read.
type QueryOptions struct {
	// FilterByFormula is an Airtable formula already encoded with EncodeFormula.
	// Empty means no server-side filter.
	FilterByFormula string
}

// RecordStore reads raw records from the hosted tabular database. It performs
// no retry and no fallback: every failure is returned to the caller.
type RecordStore interface {
	FetchFromAirtable(ctx context.Context, table string, opts QueryOptions) ([]Record, error)
	FetchAllRecords(ctx context.Context, table string) ([]Record, error)
	IsConfigured() bool
}

// EncodeFormula transport-encodes a formula for QueryOptions.FilterByFormula.
func EncodeFormula(formula string) string {
	return url.QueryEscape(formula)
}

// DecodeFormula reverses EncodeFormula, for logs.
func DecodeFormula(encoded string) string {
	f, err := url.QueryUnescape(encoded)
	if err != nil {
		return encoded
	}
	return f
}

// AirtableClient calls the Airtable REST API (list records endpoint).
type AirtableClient struct {
	client *resty.Client
	apiKey string
	baseID string
}

// NewAirtableClient builds a client for one base. Every request is bounded by timeout.
func NewAirtableClient(baseURL, apiKey, baseID string, timeout time.Duration) *AirtableClient {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	if apiKey != "" {
		c.SetAuthToken(apiKey)
	}
	return &AirtableClient{client: c, apiKey: apiKey, baseID: baseID}
}

func (a *AirtableClient) IsConfigured() bool {
	return a.apiKey != "" && a.baseID != ""
}

type listRecordsResponse struct {
	Records []struct {
		ID          string         `json:"id"`
		CreatedTime string         `json:"createdTime"`
		Fields      map[string]any `json:"fields"`
	} `json:"records"`
	Offset string `json:"offset"`
}

// FetchFromAirtable lists every record of table matching the optional formula,
// following the offset cursor across pages.
func (a *AirtableClient) FetchFromAirtable(ctx context.Context, table string, opts QueryOptions) ([]Record, error) {
	if !a.IsConfigured() {
		return nil, ErrStoreNotConfigured
	}

	records := []Record{}
	offset := ""
	for page := 0; page < maxPages; page++ {
		var query []string
		if opts.FilterByFormula != "" {
			query = append(query, "filterByFormula="+opts.FilterByFormula)
		}
		if offset != "" {
			query = append(query, "offset="+url.QueryEscape(offset))
		}

		var body listRecordsResponse
		req := a.client.R().
			SetContext(ctx).
			SetPathParams(map[string]string{"baseID": a.baseID, "table": table}).
			SetResult(&body)
		if len(query) > 0 {
			req.SetQueryString(strings.Join(query, "&"))
		}

		resp, err := req.Get("/v0/{baseID}/{table}")
		if err != nil {
			return nil, fmt.Errorf("airtable request %q: %w", table, err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("airtable %q status %d: %s", table, resp.StatusCode(), resp.String())
		}

		for _, r := range body.Records {
			rec := make(Record, len(r.Fields)+1)
			for k, v := range r.Fields {
				rec[k] = v
			}
			rec["id"] = r.ID
			records = append(records, rec)
		}

		if body.Offset == "" {
			return records, nil
		}
		offset = body.Offset
	}
	return nil, fmt.Errorf("airtable %q: more than %d pages", table, maxPages)
}

func (a *AirtableClient) FetchAllRecords(ctx context.Context, table string) ([]Record, error) {
	return a.FetchFromAirtable(ctx, table, QueryOptions{})
}
