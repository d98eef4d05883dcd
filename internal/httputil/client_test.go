package httputil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchJSONDecodesObjects(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Accept"), "application/json")
		_, _ = fmt.Fprint(w, `{"data":[{"id":42,"title":"A"}]}`)
	}))
	defer server.Close()

	c := New(5 * time.Second)
	v, err := c.FetchJSON(context.Background(), server.URL)
	require.NoError(t, err)

	obj, ok := v.(map[string]any)
	require.True(t, ok)
	list, ok := obj["data"].([]any)
	require.True(t, ok)
	require.Len(t, list, 1)
	assert.Equal(t, json.Number("42"), list[0].(map[string]any)["id"])
}

func TestFetchJSONFallsBackToRawText(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "not json at all")
	}))
	defer server.Close()

	v, err := New(5*time.Second).FetchJSON(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "not json at all", v)
}

func TestFetchJSONKeepsErrorBodies(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = fmt.Fprint(w, `{"error":"book not found"}`)
	}))
	defer server.Close()

	v, err := New(5*time.Second).FetchJSON(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"error": "book not found"}, v)
}

func TestFetchJSONReturnsTextOfFailedResponses(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = fmt.Fprint(w, "<html>bad gateway</html>")
	}))
	defer server.Close()

	v, err := New(5*time.Second).FetchJSON(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "<html>bad gateway</html>", v)
}

func TestFetchJSONRejectsBadScheme(t *testing.T) {
	t.Parallel()

	_, err := New(time.Second).FetchJSON(context.Background(), "file:///etc/passwd")
	require.Error(t, err)
}

func TestPostFile(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		file, header, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, "notes.txt", header.Filename)
		_, _ = fmt.Fprintf(w, "stored %d bytes", len(data))
	}))
	defer server.Close()

	body, err := New(5*time.Second).PostFile(context.Background(), server.URL+"/uploader", "../notes.txt", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, "stored 5 bytes", body)
}
