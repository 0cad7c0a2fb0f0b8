//go:build integration
// +build integration

package router_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/georgemunganga/product-manager/internal/database"
	"github.com/georgemunganga/product-manager/internal/router"
)

// setupTestDB starts PostgreSQL in a container and returns an open pool with
// the schema in place.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("products"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.Open(ctx, database.Options{URL: connStr, MaxOpenConns: 5})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, database.EnsureSchema(ctx, db))
	return db
}

type client struct {
	t   *testing.T
	srv *httptest.Server
}

func (c *client) call(method, path, body string, out any) int {
	c.t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, c.srv.URL+path, rd)
	require.NoError(c.t, err)
	res, err := c.srv.Client().Do(req)
	require.NoError(c.t, err)
	defer res.Body.Close()
	if out != nil && res.StatusCode < 300 && res.StatusCode != http.StatusNoContent {
		require.NoError(c.t, json.NewDecoder(res.Body).Decode(out))
	}
	return res.StatusCode
}

type named struct {
	ID   int64  `json:"id"`
	Name string `json:"customer_name"`
	Tag  string `json:"tag_name"`
}

type quoteRow struct {
	ID     int64    `json:"quote_id"`
	Quote  *float64 `json:"quote"`
	Remark *string  `json:"quote_remark"`
}

type view struct {
	ID              int64      `json:"id"`
	RefNum          string     `json:"ref_num"`
	Name            *string    `json:"name"`
	Remarks         *string    `json:"remarks"`
	LastUpdated     time.Time  `json:"last_updated"`
	LockedBy        *string    `json:"locked_by"`
	LockedTimestamp *time.Time `json:"locked_timestamp"`
	Imgs            []struct {
		ID  int64  `json:"id"`
		Img string `json:"img"`
	} `json:"imgs"`
	Tags      []named    `json:"tags"`
	Customers []named    `json:"customers"`
	Quote     []quoteRow `json:"quote"`
}

func newClient(t *testing.T) *client {
	srv := httptest.NewServer(router.New(setupTestDB(t), zerolog.New(io.Discard)))
	t.Cleanup(srv.Close)
	return &client{t: t, srv: srv}
}

const tst123 = `{
	"ref_num": "TST123",
	"name": "Test Product",
	"customers": ["CustomerA"],
	"tags": ["summer"],
	"quote": {"CustomerA": {"quote": 12, "remark": "bulk"}},
	"imgs": ["img1.jpg"]
}`

func TestProductLifecycle(t *testing.T) {
	c := newClient(t)

	var v view
	require.Equal(t, http.StatusCreated, c.call(http.MethodPost, "/products", tst123, &v))
	require.Len(t, v.Customers, 1)
	assert.Equal(t, "CustomerA", v.Customers[0].Name)
	require.Len(t, v.Tags, 1)
	assert.Equal(t, "summer", v.Tags[0].Tag)
	require.Len(t, v.Imgs, 1)
	assert.Equal(t, "img1.jpg", v.Imgs[0].Img)
	require.Len(t, v.Quote, 1)
	assert.Equal(t, "bulk", *v.Quote[0].Remark)

	assert.Equal(t, http.StatusConflict, c.call(http.MethodPost, "/products", `{"ref_num":"TST123"}`, nil))

	var updated view
	time.Sleep(10 * time.Millisecond)
	require.Equal(t, http.StatusOK, c.call(http.MethodPut, "/products/1", `{"remarks":"fragile"}`, &updated))
	assert.Equal(t, "TST123", updated.RefNum)
	assert.Equal(t, "Test Product", *updated.Name)
	assert.Equal(t, "fragile", *updated.Remarks)
	assert.True(t, updated.LastUpdated.After(v.LastUpdated))
	assert.Equal(t, http.StatusUnprocessableEntity, c.call(http.MethodPut, "/products/1", `{"ref_num":"X"}`, nil))

	assert.Equal(t, http.StatusNoContent, c.call(http.MethodDelete, "/products/1", "", nil))
	assert.Equal(t, http.StatusNotFound, c.call(http.MethodGet, "/products/1", "", nil))

	var customers []named
	require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/customers", "", &customers))
	assert.Len(t, customers, 1, "shared customer survives product deletion")

	var quotes []quoteRow
	require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/quotes", "", &quotes))
	assert.Empty(t, quotes)

	var found []view
	require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/products/search?ref_num=TST123", "", &found))
	assert.Empty(t, found)
}

func TestQuotes(t *testing.T) {
	c := newClient(t)
	require.Equal(t, http.StatusCreated, c.call(http.MethodPost, "/products", `{"ref_num":"Q1","customers":["X"]}`, nil))

	var v view
	require.Equal(t, http.StatusCreated,
		c.call(http.MethodPost, "/products/1/quotes", `{"quotes":{"X":{"quote":12.345,"remark":"r"}}}`, &v))
	require.Len(t, v.Quote, 1)
	assert.Equal(t, 12.35, *v.Quote[0].Quote)

	assert.Equal(t, http.StatusNotFound,
		c.call(http.MethodPost, "/products/1/quotes", `{"quotes":{"X":{"quote":1},"Zed":{"quote":2}}}`, nil))
	var quotes []quoteRow
	require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/quotes", "", &quotes))
	assert.Len(t, quotes, 1, "failed batch inserts nothing")

	var edited quoteRow
	require.Equal(t, http.StatusOK, c.call(http.MethodPatch, "/quotes/1", `{"quote":3.005}`, &edited))
	assert.Equal(t, 3.01, *edited.Quote)
	assert.Equal(t, "r", *edited.Remark)
}

func TestLinksAndRename(t *testing.T) {
	c := newClient(t)
	require.Equal(t, http.StatusCreated, c.call(http.MethodPost, "/products", `{"ref_num":"A","tags":["red","Blue"]}`, nil))
	require.Equal(t, http.StatusCreated, c.call(http.MethodPost, "/products", `{"ref_num":"B","tags":["RED"]}`, nil))

	var tags []named
	require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/tags", "", &tags))
	assert.Len(t, tags, 2, "tag names are unique case-insensitively")

	assert.Equal(t, http.StatusNoContent, c.call(http.MethodDelete, "/products/1/tags/1", "", nil))
	assert.Equal(t, http.StatusNotFound, c.call(http.MethodDelete, "/products/1/tags/1", "", nil))

	assert.Equal(t, http.StatusConflict, c.call(http.MethodPatch, "/tags/1", `{"new_name":"blue"}`, nil))
	assert.Equal(t, http.StatusOK, c.call(http.MethodPatch, "/tags/1", `{"new_name":"crimson"}`, nil))

	var found []view
	require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/products/search?tag=crim", "", &found))
	require.Len(t, found, 1)
	assert.Equal(t, "B", found[0].RefNum)
}

func TestLockAndCleanup(t *testing.T) {
	c := newClient(t)
	require.Equal(t, http.StatusCreated, c.call(http.MethodPost, "/products", `{"ref_num":"L","tags":["keep"]}`, nil))
	require.Equal(t, http.StatusCreated, c.call(http.MethodPost, "/products", `{"ref_num":"D","tags":["gone"]}`, nil))

	var v view
	require.Equal(t, http.StatusOK, c.call(http.MethodPatch, "/products/1/lock?user=alice", `{"locked":true}`, &v))
	assert.Equal(t, "alice", *v.LockedBy)
	assert.NotNil(t, v.LockedTimestamp)
	require.Equal(t, http.StatusOK, c.call(http.MethodPatch, "/products/1/lock?user=bob", `{"locked":false}`, &v))
	assert.Nil(t, v.LockedBy)
	assert.Nil(t, v.LockedTimestamp)

	require.Equal(t, http.StatusNoContent, c.call(http.MethodDelete, "/products/2", "", nil))

	var rep map[string]int64
	require.Equal(t, http.StatusOK, c.call(http.MethodPost, "/maintenance/cleanup", "", &rep))
	assert.Equal(t, int64(1), rep["tags_removed"])

	var tags []named
	require.Equal(t, http.StatusOK, c.call(http.MethodGet, "/tags", "", &tags))
	require.Len(t, tags, 1)
	assert.Equal(t, "keep", tags[0].Tag)

	assert.Equal(t, http.StatusOK, c.call(http.MethodGet, "/healthz", "", nil))
}
