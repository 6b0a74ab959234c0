package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushSendsFormFields(t *testing.T) {
	var got map[string]string
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		require.NoError(t, r.ParseForm())
		got = map[string]string{
			"token":   r.PostFormValue("token"),
			"user":    r.PostFormValue("user"),
			"message": r.PostFormValue("message"),
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	p := NewPushover("tok-123", "usr-456", WithEndpoint(ts.URL))
	require.True(t, p.Enabled())

	err := p.Push(context.Background(), "Recording what is x?")
	require.NoError(t, err)

	assert.Equal(t, 1, requests)
	assert.Equal(t, "tok-123", got["token"])
	assert.Equal(t, "usr-456", got["user"])
	assert.Equal(t, "Recording what is x?", got["message"])
}

func TestPushDisabledWithoutCredentials(t *testing.T) {
	requests := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer ts.Close()

	p := NewPushover("", "", WithEndpoint(ts.URL))
	assert.False(t, p.Enabled())

	err := p.Push(context.Background(), "dropped")
	require.NoError(t, err)
	assert.Zero(t, requests)
}

func TestPushReportsHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer ts.Close()

	p := NewPushover("tok", "usr", WithEndpoint(ts.URL))
	err := p.Push(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
