package interviewer

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ai-interviewer/interviewer-cli/internal/metrics"
)

type staticDevice string

func (d staticDevice) ID(context.Context) (string, error) { return string(d), nil }

type recorded struct {
	method string
	path   string
	query  string
	header http.Header
	body   []byte
}

type backend struct {
	server *httptest.Server
	hits   atomic.Int32

	mu     sync.Mutex
	record recorded

	status int
	body   string
}

func (b *backend) last() recorded {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.record
}

func newBackend(t *testing.T, status int, body string) *backend {
	t.Helper()
	b := &backend{status: status, body: body}
	b.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.record = recorded{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.RawQuery,
			header: r.Header.Clone(),
			body:   body,
		}
		b.mu.Unlock()
		b.hits.Add(1)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(b.status)
		_, _ = io.WriteString(w, b.body)
	}))
	t.Cleanup(b.server.Close)
	return b
}

func newTestClient(b *backend) *Client {
	c := New(zap.NewNop(), staticDevice("device-123"))
	c.APIURL = b.server.URL
	c.Origin = "https://app.example"
	return c
}

func TestErrorNormalization(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "string detail", body: `{"detail": "Interview not found"}`, want: "Interview not found"},
		{name: "detail error field", body: `{"detail": {"error": "No interviews remaining"}}`, want: "No interviews remaining"},
		{name: "detail message field", body: `{"detail": {"message": "Invalid access code"}}`, want: "Invalid access code"},
		{name: "error wins over message", body: `{"detail": {"error": "first", "message": "second"}}`, want: "first"},
		{name: "empty error falls through to message", body: `{"detail": {"error": "", "message": "second"}}`, want: "second"},
		{name: "object without known fields", body: `{"detail": {"code": 42}}`, want: FallbackMessage},
		{name: "list detail", body: `{"detail": [{"loc": ["body"], "msg": "field required"}]}`, want: FallbackMessage},
		{name: "no detail", body: `{"status": "error"}`, want: FallbackMessage},
		{name: "unparsable body", body: `<html>Bad Gateway</html>`, want: FallbackMessage},
		{name: "empty body", body: ``, want: FallbackMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBackend(t, http.StatusBadRequest, tt.body)
			c := newTestClient(b)

			_, err := c.GetInterview(context.Background(), "abc")
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		})
	}
}

func TestEveryOperationNormalizesErrors(t *testing.T) {
	b := newBackend(t, http.StatusPaymentRequired, `{"detail": "No interviews remaining. Please purchase more interviews."}`)
	c := newTestClient(b)
	ctx := context.Background()
	want := "No interviews remaining. Please purchase more interviews."

	calls := map[string]func() error{
		"create": func() error {
			_, err := c.CreateInterview(ctx, &CreateInterviewRequest{JobTitle: "Go dev", JobRequirements: "Go"})
			return err
		},
		"get": func() error {
			_, err := c.GetInterview(ctx, "abc")
			return err
		},
		"submit": func() error {
			_, err := c.SubmitAnswers(ctx, "abc", &SubmitAnswersRequest{
				CandidateName: "Ada", CandidateEmail: "ada@example.com",
				Answers: []Answer{{QuestionID: 1, Answer: "yes"}},
			})
			return err
		},
		"results": func() error {
			_, err := c.GetResults(ctx, "abc", "CODE")
			return err
		},
		"checkout": func() error {
			_, err := c.CreateCheckout(ctx, "pro")
			return err
		},
		"tokens": func() error {
			_, err := c.GetTokenBalance(ctx)
			return err
		},
	}

	for name, fn := range calls {
		err := fn()
		require.Error(t, err, name)
		assert.Equal(t, want, err.Error(), name)
	}
}

func TestCreateInterview(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{
		"id": "f3b1",
		"hr_access_code": "9C1D2E3F",
		"interview_url": "/interview/f3b1",
		"results_url": "/results/f3b1?code=9C1D2E3F",
		"questions": [{"id": 1, "text": "Tell me about Go.", "expected_focus": "Depth"}]
	}`)
	c := newTestClient(b)

	resp, err := c.CreateInterview(context.Background(), &CreateInterviewRequest{
		JobTitle:        "  Go developer ",
		JobRequirements: "5 years of Go",
		KeySkills:       []string{" Go ", "", "Postgres"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, b.last().method)
	assert.Equal(t, "/api/v1/interviews", b.last().path)
	assert.Equal(t, "device-123", b.last().header.Get("X-Device-Id"))
	assert.Equal(t, "application/json", b.last().header.Get("Content-Type"))
	assert.JSONEq(t, `{"job_title": "Go developer", "job_requirements": "5 years of Go", "key_skills": ["Go", "Postgres"]}`, string(b.last().body))

	assert.Equal(t, "f3b1", resp.ID)
	assert.Equal(t, "9C1D2E3F", resp.AccessCode)
	require.Len(t, resp.Questions, 1)
	assert.Equal(t, "Depth", resp.Questions[0].ExpectedFocus)

	links := c.ShareLinks(resp)
	assert.Equal(t, "https://app.example/interview/f3b1", links.Candidate)
	assert.Equal(t, "https://app.example/results/f3b1?code=9C1D2E3F", links.Results)
}

func TestCreateInterviewSendsEmptySkillList(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{"id": "x"}`)
	c := newTestClient(b)

	_, err := c.CreateInterview(context.Background(), &CreateInterviewRequest{JobTitle: "QA", JobRequirements: "Testing"})
	require.NoError(t, err)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(b.last().body, &sent))
	assert.Equal(t, []any{}, sent["key_skills"])
}

func TestCreateInterviewRequiresFieldsBeforeAnyRequest(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{}`)
	c := newTestClient(b)

	tests := []*CreateInterviewRequest{
		nil,
		{JobTitle: "", JobRequirements: "Go"},
		{JobTitle: "   ", JobRequirements: "Go"},
		{JobTitle: "Go dev", JobRequirements: ""},
	}

	for _, req := range tests {
		_, err := c.CreateInterview(context.Background(), req)
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr), "expected validation error, got %v", err)
	}

	assert.Equal(t, int32(0), b.hits.Load(), "validation failures must not reach the backend")
}

func TestCreateInterviewValidationMessage(t *testing.T) {
	c := New(nil, staticDevice("d"))
	_, err := c.CreateInterview(context.Background(), &CreateInterviewRequest{})
	require.Error(t, err)
	assert.Equal(t, "invalid request: job_title is required; job_requirements is required", err.Error())
}

func TestGetInterview(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{"id": "a/b", "job_title": "SRE", "questions": [{"id": 1, "text": "Q1"}, {"id": 2, "text": "Q2"}]}`)
	c := newTestClient(b)

	interview, err := c.GetInterview(context.Background(), "a/b")
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, b.last().method)
	assert.Equal(t, "/api/v1/interviews/a/b", b.last().path)
	assert.Empty(t, b.last().header.Get("X-Device-Id"))
	assert.Equal(t, "SRE", interview.JobTitle)
	assert.Len(t, interview.Questions, 2)
}

func TestSubmitAnswers(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{"success": true, "message": "Thank you for completing the interview."}`)
	c := newTestClient(b)

	resp, err := c.SubmitAnswers(context.Background(), "f3b1", &SubmitAnswersRequest{
		CandidateName:  "Ada",
		CandidateEmail: "ada@example.com",
		Answers:        []Answer{{QuestionID: 1, Answer: " Built a compiler. "}, {QuestionID: 2, Answer: "Deadlines"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/interviews/f3b1/submit", b.last().path)
	assert.Empty(t, b.last().header.Get("X-Device-Id"))
	assert.JSONEq(t, `{
		"candidate_name": "Ada",
		"candidate_email": "ada@example.com",
		"answers": [{"question_id": 1, "answer": "Built a compiler."}, {"question_id": 2, "answer": "Deadlines"}]
	}`, string(b.last().body))
	assert.True(t, resp.Success)
}

func TestSubmitAnswersDuplicateCallsAreSentAsIs(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{"success": true}`)
	c := newTestClient(b)
	req := &SubmitAnswersRequest{CandidateName: "Ada", CandidateEmail: "ada@example.com", Answers: []Answer{{QuestionID: 1, Answer: "x"}}}

	_, err := c.SubmitAnswers(context.Background(), "f3b1", req)
	require.NoError(t, err)
	_, err = c.SubmitAnswers(context.Background(), "f3b1", req)
	require.NoError(t, err)

	assert.Equal(t, int32(2), b.hits.Load())
}

func TestSubmitAnswersValidation(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{}`)
	c := newTestClient(b)

	tests := map[string]*SubmitAnswersRequest{
		"missing name":  {CandidateEmail: "ada@example.com", Answers: []Answer{{QuestionID: 1, Answer: "x"}}},
		"bad email":     {CandidateName: "Ada", CandidateEmail: "ada", Answers: []Answer{{QuestionID: 1, Answer: "x"}}},
		"no answers":    {CandidateName: "Ada", CandidateEmail: "ada@example.com"},
		"blank answer":  {CandidateName: "Ada", CandidateEmail: "ada@example.com", Answers: []Answer{{QuestionID: 1, Answer: "  "}}},
		"empty request": nil,
	}

	for name, req := range tests {
		_, err := c.SubmitAnswers(context.Background(), "f3b1", req)
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr), "%s: expected validation error, got %v", name, err)
	}

	_, err := c.SubmitAnswers(context.Background(), " ", &SubmitAnswersRequest{})
	require.Error(t, err)

	assert.Equal(t, int32(0), b.hits.Load())
}

func TestGetResults(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{
		"interview": {"id": "f3b1", "job_title": "SRE", "job_requirements": "Linux", "questions": [{"id": 1, "text": "Q1", "expected_focus": "F"}], "created_at": "2025-01-02T10:00:00"},
		"submissions": [{
			"id": "s1", "candidate_name": "Ada", "candidate_email": "ada@example.com",
			"overall_score": 4.2, "recommendation": "recommend", "ai_summary": "Strong",
			"scores": [{"question_id": 1, "score": 4, "comment": "Good"}],
			"answers": [{"question_id": 1, "answer": "A1"}],
			"submitted_at": "2025-01-03T11:00:00"
		}],
		"summary": {"total": 1, "recommended": 1, "maybe": 0, "not_recommended": 0}
	}`)
	c := newTestClient(b)

	results, err := c.GetResults(context.Background(), "f3b1", "AB CD&1")
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/interviews/f3b1/results", b.last().path)
	assert.Equal(t, "code=AB+CD%261", b.last().query)
	assert.Equal(t, 1, results.Summary.Total)
	require.Len(t, results.Submissions, 1)

	sub := results.Submissions[0]
	assert.Equal(t, Recommend, sub.Recommendation)
	require.NotNil(t, sub.ScoreFor(1))
	assert.Equal(t, float64(4), sub.ScoreFor(1).Score)
	assert.Nil(t, sub.ScoreFor(2))
	assert.Equal(t, "A1", sub.AnswerFor(1))
}

func TestGetResultsInvalidCode(t *testing.T) {
	b := newBackend(t, http.StatusForbidden, `{"detail": "Invalid access code"}`)
	c := newTestClient(b)

	_, err := c.GetResults(context.Background(), "f3b1", "WRONG")
	require.EqualError(t, err, "Invalid access code")
}

func TestCreateCheckout(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{"checkout_url": "https://pay.example/abc"}`)
	c := newTestClient(b)

	resp, err := c.CreateCheckout(context.Background(), "pro")
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/payment/checkout", b.last().path)
	assert.Equal(t, "device-123", b.last().header.Get("X-Device-Id"))
	assert.JSONEq(t, `{
		"product_id": "pro",
		"success_url": "https://app.example/payment/success",
		"cancel_url": "https://app.example/pricing"
	}`, string(b.last().body))
	assert.Equal(t, "https://pay.example/abc", resp.CheckoutURL)
}

func TestCreateCheckoutRejectsEmptyURL(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{"checkout_url": ""}`)
	c := newTestClient(b)

	_, err := c.CreateCheckout(context.Background(), "pro")
	require.Error(t, err)
}

func TestGetTokenBalance(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{"balance": 7, "free_trials_remaining": 0}`)
	c := newTestClient(b)

	balance, err := c.GetTokenBalance(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/api/v1/payment/tokens", b.last().path)
	assert.Equal(t, "device-123", b.last().header.Get("X-Device-Id"))
	assert.Equal(t, 7, balance.Balance)
}

func TestGzipResponsesAreDecoded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, _ = zw.Write([]byte(`{"id": "z", "job_title": "Compressed", "questions": []}`))
		_ = zw.Close()

		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write(buf.Bytes())
	}))
	defer server.Close()

	c := New(nil, nil)
	c.APIURL = server.URL

	interview, err := c.GetInterview(context.Background(), "z")
	require.NoError(t, err)
	assert.Equal(t, "Compressed", interview.JobTitle)
}

func TestLanguageHeader(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{"id": "x", "job_title": "t", "questions": []}`)
	c := newTestClient(b)
	c.Language = "ja"

	_, err := c.GetInterview(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "ja", b.last().header.Get("Accept-Language"))
}

func TestMissingDeviceSourceFailsBeforeRequest(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{}`)
	c := New(nil, nil)
	c.APIURL = b.server.URL

	_, err := c.CreateCheckout(context.Background(), "pro")
	require.Error(t, err)
	assert.Equal(t, int32(0), b.hits.Load())
}

func TestTransportErrorsAreWrapped(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{}`)
	c := newTestClient(b)
	b.server.Close()

	_, err := c.GetInterview(context.Background(), "x")
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestCancelledContext(t *testing.T) {
	b := newBackend(t, http.StatusOK, `{}`)
	c := newTestClient(b)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GetInterview(ctx, "x")
	require.ErrorIs(t, err, context.Canceled)
}

func TestRequestsAreRecordedInMetrics(t *testing.T) {
	b := newBackend(t, http.StatusNotFound, `{"detail": "Interview not found"}`)
	c := newTestClient(b)
	c.Metrics = metrics.New()

	_, _ = c.GetInterview(context.Background(), "x")

	assert.Equal(t, float64(1), testutil.ToFloat64(c.Metrics.Requests().WithLabelValues("get_interview", "404")))
}

func TestSplitSkills(t *testing.T) {
	assert.Equal(t, []string{"Go", "Kubernetes", "SQL"}, SplitSkills(" Go, Kubernetes ,,SQL, "))
	assert.Equal(t, []string{}, SplitSkills(""))
}

func TestShareLinksFallback(t *testing.T) {
	c := New(nil, nil)
	c.Origin = "https://app.example/"

	links := c.ShareLinks(&CreateInterviewResponse{ID: "f3b1", AccessCode: "9C1D"})
	assert.Equal(t, "https://app.example/interview/f3b1", links.Candidate)
	assert.Equal(t, "https://app.example/results/f3b1?code=9C1D", links.Results)
}
