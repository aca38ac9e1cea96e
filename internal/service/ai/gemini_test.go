package ai

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGeminiTestServer(t *testing.T, status int, body string, seen *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			data, _ := io.ReadAll(r.Body)
			*seen = r.URL.Path + " " + string(data)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGeminiGenerateReturnsTrimmedText(t *testing.T) {
	var seen string
	srv := newGeminiTestServer(t, http.StatusOK,
		`{"candidates":[{"content":{"role":"model","parts":[{"text":"  I learn quickly.  "}]}}]}`, &seen)

	client, err := NewGeminiClient(context.Background(), "test-key", srv.URL)
	require.NoError(t, err)
	g := NewGeminiGenerator(client, "gemini-2.5-flash")

	text, err := g.Generate(context.Background(), "User: hi\nAssistant:")
	require.NoError(t, err)
	assert.Equal(t, "I learn quickly.", text)
	assert.Equal(t, "gemini-2.5-flash", g.Model())
	assert.Contains(t, seen, "gemini-2.5-flash:generateContent")
	assert.Contains(t, seen, "User: hi")
}

func TestGeminiGenerateClassifiesQuota(t *testing.T) {
	srv := newGeminiTestServer(t, http.StatusTooManyRequests,
		`{"error":{"code":429,"message":"Resource has been exhausted (e.g. check quota).","status":"RESOURCE_EXHAUSTED"}}`, nil)

	client, err := NewGeminiClient(context.Background(), "test-key", srv.URL)
	require.NoError(t, err)

	_, err = NewGeminiGenerator(client, "gemini-2.5-flash").Generate(context.Background(), "x")
	require.Error(t, err)
	assert.True(t, IsQuotaExhausted(err))
}

func TestGeminiGenerateOtherErrorIsNotQuota(t *testing.T) {
	srv := newGeminiTestServer(t, http.StatusInternalServerError,
		`{"error":{"code":500,"message":"internal","status":"INTERNAL"}}`, nil)

	client, err := NewGeminiClient(context.Background(), "test-key", srv.URL)
	require.NoError(t, err)

	_, err = NewGeminiGenerator(client, "gemini-2.5-flash").Generate(context.Background(), "x")
	require.Error(t, err)
	assert.False(t, IsQuotaExhausted(err))
	assert.False(t, strings.Contains(err.Error(), ErrQuotaExhausted.Error()))
}

func TestGeminiBlockedResponseBecomesInternalReply(t *testing.T) {
	srv := newGeminiTestServer(t, http.StatusOK, `{"candidates":[{"finishReason":"SAFETY"}]}`, nil)

	client, err := NewGeminiClient(context.Background(), "test-key", srv.URL)
	require.NoError(t, err)
	g := NewGeminiGenerator(client, "gemini-2.5-flash")

	text, err := g.Generate(context.Background(), "x")
	require.Error(t, err)
	assert.Empty(t, text)
	assert.False(t, IsQuotaExhausted(err))

	res := NewFallbackGenerator(g, g, nil).Reply(context.Background(), "x")
	assert.Equal(t, InternalErrorReply, res.Text)
	assert.Equal(t, OutcomeError, res.Outcome)
}
