package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/kanka-client/pkg/kanka"
)

const testCampaign = "/campaigns/1"

type recordedRequest struct {
	Method      string
	Path        string
	Query       url.Values
	ContentType string
	Body        []byte
}

// JSON decodes the recorded body into a map.
func (r recordedRequest) JSON(t *testing.T) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(r.Body, &body))

	return body
}

type route struct {
	status int
	body   interface{}
}

// fakeAPI serves canned responses per "METHOD path" and records every call.
// Unknown routes answer 404.
type fakeAPI struct {
	t        *testing.T
	server   *httptest.Server
	mu       sync.Mutex
	routes   map[string][]route
	requests []recordedRequest
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()

	api := &fakeAPI{t: t, routes: map[string][]route{}}
	api.server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.server.Close)

	return api
}

// handle queues a response. Several responses for one route are served in
// order; the last one repeats.
func (f *fakeAPI) handle(method, path string, status int, body interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := method + " " + testCampaign + path
	f.routes[key] = append(f.routes[key], route{status: status, body: body})
}

func (f *fakeAPI) serve(writer http.ResponseWriter, request *http.Request) {
	body, _ := io.ReadAll(request.Body)

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method:      request.Method,
		Path:        request.URL.EscapedPath(),
		Query:       request.URL.Query(),
		ContentType: request.Header.Get("Content-Type"),
		Body:        body,
	})

	key := request.Method + " " + request.URL.EscapedPath()
	queued := f.routes[key]

	var current route

	switch {
	case len(queued) == 0:
		current = route{status: http.StatusNotFound, body: map[string]string{"message": "not found"}}
	case len(queued) == 1:
		current = queued[0]
	default:
		current = queued[0]
		f.routes[key] = queued[1:]
	}
	f.mu.Unlock()

	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(current.status)

	if current.body != nil {
		_ = json.NewEncoder(writer).Encode(current.body)
	}
}

// calls lists the recorded requests as "METHOD path" without the campaign prefix.
func (f *fakeAPI) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	calls := make([]string, 0, len(f.requests))
	for _, req := range f.requests {
		calls = append(calls, req.Method+" "+req.Path[len(testCampaign):])
	}

	return calls
}

func (f *fakeAPI) request(index int) recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	require.Greater(f.t, len(f.requests), index)

	return f.requests[index]
}

// client builds a client pointed at the fake API.
func (f *fakeAPI) client() *Client {
	f.t.Helper()

	client, err := New(context.Background(), &kanka.Config{
		Token:                 "test-token",
		CampaignID:            1,
		BaseURL:               f.server.URL,
		DisableRateLimitRetry: true,
	})
	require.NoError(f.t, err)

	return client
}

func dataBody(value interface{}) map[string]interface{} {
	return map[string]interface{}{"data": value}
}

func pageBody(items []interface{}, current, last int) map[string]interface{} {
	return map[string]interface{}{
		"data":  items,
		"links": map[string]interface{}{},
		"meta": map[string]interface{}{
			"current_page": current,
			"last_page":    last,
			"per_page":     len(items),
			"total":        len(items) * last,
		},
	}
}

// writeTempFile creates a file with the given content and returns its path.
func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

// multipartForm parses a recorded multipart body.
func multipartForm(t *testing.T, req recordedRequest) (map[string][]string, map[string][]byte) {
	t.Helper()

	httpReq, err := http.NewRequest(http.MethodPost, "/", bytes.NewReader(req.Body))
	require.NoError(t, err)
	httpReq.Header.Set("Content-Type", req.ContentType)

	require.NoError(t, httpReq.ParseMultipartForm(1<<20))

	files := map[string][]byte{}

	for field, headers := range httpReq.MultipartForm.File {
		file, err := headers[0].Open()
		require.NoError(t, err)

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		require.NoError(t, file.Close())

		files[field] = content
	}

	return httpReq.MultipartForm.Value, files
}
