package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"doppel/internal/agent"
	"doppel/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChatter struct {
	reply      string
	err        error
	gotMessage string
	gotHistory []agent.Message
}

func (s *stubChatter) Chat(ctx context.Context, message string, history []agent.Message) (string, error) {
	s.gotMessage = message
	s.gotHistory = history
	return s.reply, s.err
}

type stubLedger struct {
	leads     []store.Lead
	questions []store.Question
	err       error
}

func (s *stubLedger) ListLeads(ctx context.Context) ([]store.Lead, error) {
	return s.leads, s.err
}

func (s *stubLedger) ListQuestions(ctx context.Context) ([]store.Question, error) {
	return s.questions, s.err
}

func testServer(t *testing.T, chatter Chatter, ledger Ledger) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(NewServer(chatter, ledger).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func postChat(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url+"/v1/chat", "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestChatHappyPath(t *testing.T) {
	chatter := &stubChatter{reply: "I work primarily with Python and Go."}
	ts := testServer(t, chatter, &stubLedger{})

	resp := postChat(t, ts.URL, map[string]any{
		"message": "What programming languages do you know?",
		"history": []agent.Message{{Role: agent.RoleUser, Content: "hi"}, {Role: agent.RoleAssistant, Content: "hello"}},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out chatResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "I work primarily with Python and Go.", out.Reply)

	assert.Equal(t, "What programming languages do you know?", chatter.gotMessage)
	require.Len(t, chatter.gotHistory, 2)
	assert.Equal(t, agent.RoleAssistant, chatter.gotHistory[1].Role)
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	ts := testServer(t, &stubChatter{}, &stubLedger{})

	resp := postChat(t, ts.URL, map[string]any{"history": []agent.Message{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChatRejectsInvalidJSON(t *testing.T) {
	ts := testServer(t, &stubChatter{}, &stubLedger{})

	resp, err := http.Post(ts.URL+"/v1/chat", "application/json", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestChatMapsAgentFailure(t *testing.T) {
	ts := testServer(t, &stubChatter{err: errors.New("model call: rate limited")}, &stubLedger{})

	resp := postChat(t, ts.URL, map[string]any{"message": "hello"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	var out map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Contains(t, out["error"], "rate limited")
}

func TestChatMapsToolRoundsExceeded(t *testing.T) {
	ts := testServer(t, &stubChatter{err: agent.ErrToolRoundsExceeded}, &stubLedger{})

	resp := postChat(t, ts.URL, map[string]any{"message": "hello"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestListLeads(t *testing.T) {
	ledger := &stubLedger{leads: []store.Lead{{ID: 1, Email: "a@b.com", Name: "Sam", Notes: "notes"}}}
	ts := testServer(t, &stubChatter{}, ledger)

	resp, err := http.Get(ts.URL + "/v1/leads")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Leads []store.Lead `json:"leads"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Leads, 1)
	assert.Equal(t, "a@b.com", out.Leads[0].Email)
}

func TestListQuestions(t *testing.T) {
	ledger := &stubLedger{questions: []store.Question{{ID: 1, Question: "what is x?"}}}
	ts := testServer(t, &stubChatter{}, ledger)

	resp, err := http.Get(ts.URL + "/v1/questions")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Questions []store.Question `json:"questions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Questions, 1)
	assert.Equal(t, "what is x?", out.Questions[0].Question)
}

func TestHealthz(t *testing.T) {
	ts := testServer(t, &stubChatter{}, &stubLedger{})

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
