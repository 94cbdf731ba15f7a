package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reblaw/legal-api/pkg/judge"
)

const validSubmission = `{
	"app": "reblaw",
	"version": "1.0",
	"user": {"id": "u-1"},
	"case": {"title": "مطالبه وجه"},
	"rubric": {"legal_basis": 30},
	"output": {"format": "json"},
	"lang": "fa",
	"role": "plaintiff",
	"argument": "استناد به ماده ۱۰ قانون مدنی"
}`

func TestJudgeScoreHandler(t *testing.T) {
	srv := newTestServer(t, "s3cret")
	h := NewRouter(srv)

	t.Run("returns the fixed evaluation", func(t *testing.T) {
		w := postJSON(t, h, "/api/judge/score", validSubmission,
			map[string]string{"X-RebLaw-Secret": "s3cret"})
		require.Equal(t, http.StatusOK, w.Code)

		var ev judge.Evaluation
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ev))
		assert.Equal(t, *judge.FixedEvaluation(), ev)
		assert.Equal(t, 86, ev.ScoreTotal)
	})

	t.Run("input does not change the result", func(t *testing.T) {
		w1 := postJSON(t, h, "/api/judge/score", validSubmission,
			map[string]string{"X-RebLaw-Secret": "s3cret"})
		w2 := postJSON(t, h, "/api/judge/score",
			`{"role": "defendant", "argument": "", "rubric": "x", "unexpected": true}`,
			map[string]string{"X-RebLaw-Secret": "s3cret"})
		require.Equal(t, http.StatusOK, w1.Code)
		require.Equal(t, http.StatusOK, w2.Code)
		assert.JSONEq(t, w1.Body.String(), w2.Body.String())
	})

	t.Run("non-string metadata is accepted", func(t *testing.T) {
		w := postJSON(t, h, "/api/judge/score",
			`{"app": 3, "version": 1.0, "lang": {"code": "fa"}, "role": "plaintiff", "argument": "متن"}`,
			map[string]string{"X-RebLaw-Secret": "s3cret"})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"score_total":86`)
	})

	t.Run("missing header", func(t *testing.T) {
		w := postJSON(t, h, "/api/judge/score", validSubmission, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		w := postJSON(t, h, "/api/judge/score", validSubmission,
			map[string]string{"X-RebLaw-Secret": "guess"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.NotContains(t, w.Body.String(), "score_total")
	})

	t.Run("secret is checked before the body", func(t *testing.T) {
		w := postJSON(t, h, "/api/judge/score", `{`, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestJudgeScoreHandler_NoSecretConfigured(t *testing.T) {
	h := NewRouter(newTestServer(t, ""))

	w := postJSON(t, h, "/api/judge/score", validSubmission, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"score_total":86`)

	w = postJSON(t, h, "/api/judge/score", validSubmission,
		map[string]string{"X-RebLaw-Secret": "anything"})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJudgeScoreHandler_BadRequests(t *testing.T) {
	h := JudgeScoreHandler(newTestServer(t, ""))

	tests := []struct {
		name string
		body string
		want int
	}{
		{"malformed json", `{"user": `, http.StatusBadRequest},
		{"missing role", `{"argument": "متن"}`, http.StatusUnprocessableEntity},
		{"missing argument", `{"role": "plaintiff"}`, http.StatusUnprocessableEntity},
		{"null role", `{"role": null, "argument": "متن"}`, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, h, "/api/judge/score", tt.body, nil)
			assert.Equal(t, tt.want, w.Code)
		})
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/judge/score", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
