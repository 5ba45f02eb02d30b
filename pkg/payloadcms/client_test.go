package payloadcms

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type post struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(WithBaseURL(srv.URL+"/"), WithAPIKey("secret"), WithClient(srv.Client()))
	require.NoError(t, err)
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New()
	assert.ErrorIs(t, err, ErrNoBaseURL)

	_, err = New(WithBaseURL("localhost"))
	assert.Error(t, err)

	c, err := New(WithBaseURL("http://localhost:3000/"), WithClient(nil), WithLogger(nil))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:3000", c.baseURL)
	assert.NotNil(t, c.Collections)
	assert.NotNil(t, c.Globals)
	assert.NotNil(t, c.Media)
}

func TestDo_HeadersAndDecode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "users API-Key secret", r.Header.Get("Authorization"))
		assert.Equal(t, "/api/posts/42", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("depth"))
		assert.Empty(t, r.Header.Get("Content-Type"))
		_, _ = io.WriteString(w, `{"id":"42","title":"Hello","content":"World"}`)
	})

	var p post
	resp, err := c.Collections.FindByID(t.Context(), CollectionPosts, "42", &p, WithDepth(2))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, post{ID: "42", Title: "Hello", Content: "World"}, p)
}

func TestDo_ErrorResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"errors":[{"code":"required","field":"title","message":"Field 'title' is required"}]}`)
	})

	resp, err := c.Collections.Create(t.Context(), CollectionPosts, map[string]any{"content": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "title: Field 'title' is required")
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "required", resp.Errors[0].Code)

	var apiErrs Errors
	assert.ErrorAs(t, err, &apiErrs)
}

func TestDo_ErrorWithoutErrorsList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"Collection not found"}`)
	})
	_, err := c.Get(t.Context(), "/api/nope", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Collection not found")
}

func TestDo_EmptyBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	_, err := c.Delete(t.Context(), "/api/posts/1", nil)
	assert.ErrorIs(t, err, ErrEmptyBody)
}

func TestCollections_Paths(t *testing.T) {
	var got []string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Method+" "+r.URL.RequestURI())
		if r.Method == http.MethodPost || r.Method == http.MethodPatch {
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		}
		_, _ = io.WriteString(w, `{"docs":[],"totalDocs":0}`)
	})
	ctx := t.Context()

	_, err := c.Collections.FindBySlug(ctx, CollectionPosts, "hello world", nil)
	require.NoError(t, err)
	_, err = c.Collections.Create(ctx, CollectionPosts, post{Title: "t"})
	require.NoError(t, err)
	_, err = c.Collections.UpdateByID(ctx, CollectionPosts, "7", map[string]any{"title": "u"})
	require.NoError(t, err)
	_, err = c.Collections.DeleteByID(ctx, CollectionPosts, "7")
	require.NoError(t, err)

	var list ListResponse[post]
	_, err = c.Collections.List(ctx, CollectionPosts, ListParams{Sort: "-createdAt", Limit: 10}, &list)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"GET /api/posts/slug/hello%20world",
		"POST /api/posts",
		"PATCH /api/posts/7",
		"DELETE /api/posts/7",
		"GET /api/posts?limit=10&sort=-createdAt",
	}, got)
}

func TestGlobals(t *testing.T) {
	var method, path, body string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		_, _ = io.WriteString(w, `{"siteName":"Acme"}`)
	})

	var s struct {
		SiteName string `json:"siteName"`
	}
	_, err := c.Globals.Get(t.Context(), GlobalSettings, &s)
	require.NoError(t, err)
	assert.Equal(t, "Acme", s.SiteName)
	assert.Equal(t, "GET /api/globals/settings", method+" "+path)

	_, err = c.Globals.Update(t.Context(), GlobalSettings, map[string]string{"siteName": "New"})
	require.NoError(t, err)
	assert.Equal(t, "POST /api/globals/settings", method+" "+path)
	assert.JSONEq(t, `{"siteName":"New"}`, body)
}
