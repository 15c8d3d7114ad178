package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"yarnly/internal/session"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, store session.Store) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	if store == nil {
		store = &session.Memory{}
	}
	c := NewClient(srv.URL, 5*time.Second, store)
	t.Cleanup(c.http.CloseIdleConnections)
	return c
}

func TestSend_DecodesJSONResponse(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Write([]byte(`{"greeting":"hello"}`))
	}, nil)

	var out struct {
		Greeting string `json:"greeting"`
	}
	err := c.Get(context.Background(), "/hello", &out, Options{})
	require.NoError(t, err)
	assert.Equal(t, "hello", out.Greeting)
}

func TestSend_BearerAttachedWhenAuthenticated(t *testing.T) {
	store := &session.Memory{}
	require.NoError(t, store.SetToken("tok-42"))

	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}, store)

	require.NoError(t, c.Get(context.Background(), "/p", nil, Options{Authenticated: true}))
	assert.Equal(t, "Bearer tok-42", got)
}

func TestSend_NoBearerWhenUnauthenticated(t *testing.T) {
	store := &session.Memory{}
	require.NoError(t, store.SetToken("tok-42"))

	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}, store)

	require.NoError(t, c.Get(context.Background(), "/p", nil, Options{}))
	assert.Empty(t, got, "unauthenticated call must not leak the token")
}

func TestSend_NoBearerWhenLoggedOut(t *testing.T) {
	var got string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}, nil)

	require.NoError(t, c.Get(context.Background(), "/p", nil, Options{Authenticated: true}))
	assert.Empty(t, got)
}

func TestSend_FormEncodedBody(t *testing.T) {
	var contentType, body string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		require.NoError(t, r.ParseForm())
		body = r.PostForm.Encode()
		w.WriteHeader(http.StatusOK)
	}, nil)

	form := url.Values{}
	form.Set("username", "ada@yarnly.example")
	form.Set("password", "hunter2")

	err := c.Post(context.Background(), "/auth/token", form, nil, Options{FormEncoded: true})
	require.NoError(t, err)
	assert.Equal(t, "application/x-www-form-urlencoded", contentType)
	assert.Equal(t, form.Encode(), body)
}

func TestSend_FormEncodedRejectsWrongType(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, nil)

	err := c.Post(context.Background(), "/auth/token", map[string]string{"a": "b"}, nil, Options{FormEncoded: true})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.True(t, reqErr.IsNetwork())
}

func TestSend_JSONBody(t *testing.T) {
	var contentType, body string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusCreated)
	}, nil)

	err := c.Post(context.Background(), "/auth/signup", map[string]string{"user_name": "ada"}, nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.JSONEq(t, `{"user_name":"ada"}`, body)
}

func TestSend_Non2xxReturnsRequestError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Incorrect username or password"}`))
	}, nil)

	err := c.Get(context.Background(), "/p", nil, Options{})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusUnauthorized, reqErr.Status)
	assert.Equal(t, "Incorrect username or password", reqErr.Message)
	assert.True(t, reqErr.IsClient())
}

func TestSend_Non2xxNonJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream down"))
	}, nil)

	err := c.Get(context.Background(), "/p", nil, Options{})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadGateway, reqErr.Status)
	assert.Equal(t, "upstream down", reqErr.Message)
}

func TestSend_NetworkFailure(t *testing.T) {
	store := &session.Memory{}
	// Closed server: connection refused.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := NewClient(srv.URL, time.Second, store)
	err := c.Get(context.Background(), "/p", nil, Options{})

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.True(t, reqErr.IsNetwork())
	assert.Equal(t, 0, reqErr.Status)
}

func TestSend_ContextCancelled(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Get(ctx, "/p", nil, Options{})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.True(t, reqErr.IsNetwork())
}

func TestRequestError_Error(t *testing.T) {
	assert.Contains(t, (&RequestError{Message: "refused"}).Error(), "refused")
	assert.Contains(t, (&RequestError{Status: 404, Message: "nope"}).Error(), "404")
}
