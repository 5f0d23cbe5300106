package geomet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserAgent = "geomet-catalog-test/1.0"

func testClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		userAgent:  testUserAgent,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		clock:      clockwork.NewRealClock(),
	}
}

func intPtr(n int) *int { return &n }

// itemsBody builds a FeatureCollection response with n synthetic features.
func itemsBody(n, matched int, hasMore bool) itemsResponse {
	features := make([]Feature, n)
	for i := range features {
		features[i] = Feature{
			Type:       "Feature",
			ID:         FeatureID(fmt.Sprintf("station.%d", i)),
			Geometry:   NewPoint(-75.7, 45.4),
			Properties: map[string]any{"STATION_NAME": "OTTAWA CDA", "TEMP": 5.2},
		}
	}
	resp := itemsResponse{
		Features:       &features,
		NumberMatched:  intPtr(matched),
		NumberReturned: intPtr(n),
	}
	if hasMore {
		resp.Links = []Link{{Rel: "next", Href: "https://example.test/next"}}
	}
	return resp
}

func TestClient_FetchPage_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collections/climate-hourly/items", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("f"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		assert.Equal(t, "0", r.URL.Query().Get("offset"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, testUserAgent, r.Header.Get("User-Agent"))

		require.NoError(t, json.NewEncoder(w).Encode(itemsBody(2, 40, true)))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	page, err := c.FetchPage(context.Background(), "climate-hourly", FilterSpec{Limit: 10})
	require.NoError(t, err)

	assert.Len(t, page.Features, 2)
	assert.Equal(t, 2, page.NumberReturned)
	require.NotNil(t, page.NumberMatched)
	assert.Equal(t, 40, *page.NumberMatched)
	assert.True(t, page.HasMore)
	assert.Equal(t, FeatureID("station.0"), page.Features[0].ID)
}

func TestClient_FetchPage_NoNextLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(itemsBody(2, 2, false)))
	}))
	defer srv.Close()

	page, err := testClient(srv.URL).FetchPage(context.Background(), "climate-hourly", FilterSpec{Limit: 10})
	require.NoError(t, err)
	assert.False(t, page.HasMore)
}

func TestClient_FetchPage_NumericFeatureID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"type":"FeatureCollection","features":[{"type":"Feature","id":12345,"geometry":null,"properties":{}}]}`))
	}))
	defer srv.Close()

	page, err := testClient(srv.URL).FetchPage(context.Background(), "hydrometric-daily-mean", FilterSpec{Limit: 1})
	require.NoError(t, err)
	require.Len(t, page.Features, 1)
	assert.Equal(t, FeatureID("12345"), page.Features[0].ID)
}

func TestClient_FetchPage_HTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":"InvalidParameterValue","description":"bad bbox"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchPage(context.Background(), "climate-hourly", FilterSpec{Limit: 10})

	var statusErr *HTTPStatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "InvalidParameterValue")
	assert.Contains(t, statusErr.URL, "/collections/climate-hourly/items")
}

func TestClient_FetchPage_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchPage(context.Background(), "climate-hourly", FilterSpec{Limit: 10})

	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestClient_FetchPage_MissingFeaturesField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"type":"FeatureCollection","links":[]}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).FetchPage(context.Background(), "climate-hourly", FilterSpec{Limit: 10})

	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, malformed.Reason, "features")
}

func TestClient_FetchPage_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.httpClient.Timeout = 50 * time.Millisecond

	_, err := c.FetchPage(context.Background(), "climate-hourly", FilterSpec{Limit: 10})

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
}

func TestClient_ListCollections(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collections", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("f"))
		_, _ = w.Write([]byte(`{"collections":[
			{"id":"climate-hourly","title":"Hourly Climate Observations"},
			{"id":"aqhi-forecasts-realtime","title":"AQHI forecasts"}
		]}`))
	}))
	defer srv.Close()

	cols, err := testClient(srv.URL).ListCollections(context.Background())
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, "climate-hourly", cols[0].ID)
	assert.Equal(t, "Hourly Climate Observations", cols[0].Title)
}

func TestClient_ListCollections_MissingField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"links":[]}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).ListCollections(context.Background())

	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestClient_GetCollection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collections/climate-hourly", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"id":"climate-hourly",
			"title":"Hourly Climate Observations",
			"description":"Hourly observations from ECCC stations",
			"keywords":["climate","hourly"],
			"extent":{
				"spatial":{"bbox":[[-141,42,-52,84]],"crs":"http://www.opengis.net/def/crs/OGC/1.3/CRS84"},
				"temporal":{"interval":[["1953-01-01T00:00:00Z",null]]}
			}
		}`))
	}))
	defer srv.Close()

	col, err := testClient(srv.URL).GetCollection(context.Background(), "climate-hourly")
	require.NoError(t, err)

	assert.Equal(t, "climate-hourly", col.ID)
	assert.Equal(t, []string{"climate", "hourly"}, col.Keywords)
	require.Len(t, col.Extent.Spatial.BBox, 1)
	assert.Equal(t, []float64{-141, 42, -52, 84}, col.Extent.Spatial.BBox[0])
	require.Len(t, col.Extent.Temporal.Interval, 1)
	require.NotNil(t, col.Extent.Temporal.Interval[0][0])
	assert.Nil(t, col.Extent.Temporal.Interval[0][1])
}

func TestClient_Queryables(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/collections/climate-hourly/queryables", r.URL.Path)
		_, _ = w.Write([]byte(`{"title":"climate-hourly","properties":{
			"STATION_NAME":{"type":"string","title":"Station name"},
			"TEMP":{"type":"number","title":"Air temperature"}
		}}`))
	}))
	defer srv.Close()

	q, err := testClient(srv.URL).Queryables(context.Background(), "climate-hourly")
	require.NoError(t, err)
	require.Len(t, q.Properties, 2)
	assert.Equal(t, "number", q.Properties["TEMP"].Type)
}
