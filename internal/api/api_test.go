package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcp_snm/quest/internal/quest_errors"
	"github.com/tcp_snm/quest/internal/service"
	"github.com/tcp_snm/quest/internal/service/evaluation_service"
	"github.com/tcp_snm/quest/internal/service/problem_service"
	"github.com/tcp_snm/quest/internal/service/progress_service"
	"github.com/tcp_snm/quest/internal/service/submission_service"
	"github.com/tcp_snm/quest/internal/service/user_service"
)

type fakeSubmissions struct {
	submitFn  func(ctx context.Context, request submission_service.SubmitRequest) (submission_service.SubmitResponse, error)
	executeFn func(ctx context.Context, request submission_service.ExecuteRequest) (evaluation_service.SubmissionResult, error)
}

func (f *fakeSubmissions) Submit(
	ctx context.Context,
	request submission_service.SubmitRequest,
) (submission_service.SubmitResponse, error) {
	return f.submitFn(ctx, request)
}

func (f *fakeSubmissions) Execute(
	ctx context.Context,
	request submission_service.ExecuteRequest,
) (evaluation_service.SubmissionResult, error) {
	return f.executeFn(ctx, request)
}

type fakeProblems struct {
	problems map[int32]problem_service.Problem
	partial  bool
}

func (f *fakeProblems) GetLearnerProblem(ctx context.Context, id int32) (problem_service.Problem, error) {
	problem, ok := f.problems[id]
	if !ok {
		return problem_service.Problem{}, fmt.Errorf("%w, no problem exist with id %d", quest_errors.ErrNotFound, id)
	}
	return problem, nil
}

func (f *fakeProblems) GetHints(ctx context.Context, id int32, count int) (problem_service.HintsResponse, error) {
	problem, err := f.GetLearnerProblem(ctx, id)
	if err != nil {
		return problem_service.HintsResponse{}, err
	}
	hints := problem.Hints
	if count > 0 && count < len(hints) {
		hints = hints[:count]
	}
	return problem_service.HintsResponse{ProblemID: id, Hints: hints, TotalHints: len(problem.Hints)}, nil
}

func (f *fakeProblems) ListLessonProblems(ctx context.Context, lessonID int32) ([]problem_service.Problem, error) {
	res := make([]problem_service.Problem, 0)
	for _, p := range f.problems {
		if p.LessonID == lessonID {
			res = append(res, p)
		}
	}
	if f.partial {
		return res, fmt.Errorf("%w, %w", quest_errors.ErrPartialResult, quest_errors.ErrMalformedProblem)
	}
	return res, nil
}

func (f *fakeProblems) GetCurriculum(ctx context.Context) ([]problem_service.Section, error) {
	return []problem_service.Section{
		{ID: 1, Title: "Basics", Lessons: []problem_service.Lesson{{ID: 2, SectionID: 1, Title: "Variables"}}},
	}, nil
}

type fakeProgress struct {
	progress []progress_service.Progress
}

func (f *fakeProgress) ListProgress(ctx context.Context, userID uuid.UUID) ([]progress_service.Progress, error) {
	return f.progress, nil
}

type fakeUsers struct{}

func (fakeUsers) GetUserStats(ctx context.Context, userID uuid.UUID) (user_service.UserStats, error) {
	return user_service.UserStats{UserID: userID, TotalXP: 120, CurrentStreak: 3}, nil
}

type fakePinger struct {
	err error
}

func (f fakePinger) Ping(ctx context.Context) error { return f.err }

func newTestRouter(a *Api) *chi.Mux {
	r := chi.NewRouter()
	r.Post("/execute", a.HandlerExecute)
	r.Post("/submit", a.HandlerSubmit)
	r.Get("/sections", a.HandlerGetSections)
	r.Get("/lessons/{lesson_id}/problems", a.HandlerGetLessonProblems)
	r.Get("/problems/{problem_id}", a.HandlerGetProblem)
	r.Get("/problems/{problem_id}/hints", a.HandlerGetHints)
	r.Get("/progress/{user_id}", a.HandlerGetProgress)
	r.Get("/users/{user_id}/stats", a.HandlerGetUserStats)
	r.Get("/healthz", a.HandlerReadiness)
	return r
}

func newTestApi() *Api {
	return &Api{
		SubmissionServiceConfig: &fakeSubmissions{},
		ProblemServiceConfig: &fakeProblems{problems: map[int32]problem_service.Problem{
			7: {ID: 7, LessonID: 2, Title: "Business card", Hints: []string{"a", "b", "c"}},
		}},
		ProgressServiceConfig: &fakeProgress{},
		UserServiceConfig:     fakeUsers{},
	}
}

func doRequest(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestHandlerSubmit(t *testing.T) {
	a := newTestApi()
	userID := uuid.New()
	best := int32(1)

	var got submission_service.SubmitRequest
	a.SubmissionServiceConfig = &fakeSubmissions{
		submitFn: func(ctx context.Context, request submission_service.SubmitRequest) (submission_service.SubmitResponse, error) {
			got = request
			return submission_service.SubmitResponse{
				SubmissionResult: evaluation_service.SubmissionResult{
					Success:         true,
					ExecutionTimeMs: 90,
					TestResults:     []evaluation_service.PerCaseResult{},
					Transcript:      "ok",
				},
				Progress: progress_service.ProgressUpdate{
					ProblemID:       7,
					IsCompleted:     true,
					Attempts:        1,
					BestTimeSeconds: &best,
				},
				XPEarned: 50,
			}, nil
		},
	}

	body := fmt.Sprintf(`{"problem_id": 7, "code": "def f():\n  return 1", "user_id": %q}`, userID)
	w := doRequest(newTestRouter(a), http.MethodPost, "/submit", body)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	assert.Equal(t, int32(7), got.ProblemID)
	assert.Equal(t, userID, got.UserID)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	// result fields are flattened next to progress
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "ok", resp["transcript"])
	assert.Nil(t, resp["error"])
	progress, ok := resp["progress"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, progress["is_completed"])
	assert.Equal(t, float64(1), progress["attempts"])
	assert.Equal(t, float64(1), progress["best_time_seconds"])
}

func TestHandlerSubmitErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"malformed body", `{"problem_id": `, nil, http.StatusBadRequest, "invalid request payload"},
		{"invalid input", `{}`, fmt.Errorf("%w, code is required", quest_errors.ErrInvalidInput), http.StatusBadRequest, "code is required"},
		{"unknown problem", `{}`, fmt.Errorf("%w, no problem exist with id 9", quest_errors.ErrNotFound), http.StatusNotFound, "no problem exist"},
		{"other user", `{}`, fmt.Errorf("%w, nope", quest_errors.ErrUnAuthorized), http.StatusForbidden, "not allowed"},
		{
			"internal error hides cause",
			`{}`,
			fmt.Errorf("%w, %w, test cases of problem 7 are broken", quest_errors.ErrInternal, quest_errors.ErrMalformedProblem),
			http.StatusInternalServerError,
			quest_errors.ErrInternal.Error(),
		},
		{"unknown error", `{}`, errors.New("boom"), http.StatusInternalServerError, quest_errors.ErrInternal.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestApi()
			a.SubmissionServiceConfig = &fakeSubmissions{
				submitFn: func(ctx context.Context, request submission_service.SubmitRequest) (submission_service.SubmitResponse, error) {
					return submission_service.SubmitResponse{}, tt.err
				},
			}

			w := doRequest(newTestRouter(a), http.MethodPost, "/submit", tt.body)
			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.NotContains(t, w.Body.String(), "broken")
			assert.NotContains(t, w.Body.String(), "boom")
		})
	}
}

func TestHandlerExecute(t *testing.T) {
	a := newTestApi()

	var got submission_service.ExecuteRequest
	a.SubmissionServiceConfig = &fakeSubmissions{
		executeFn: func(ctx context.Context, request submission_service.ExecuteRequest) (evaluation_service.SubmissionResult, error) {
			got = request
			return evaluation_service.SubmissionResult{Success: false, TestResults: []evaluation_service.PerCaseResult{}}, nil
		},
	}

	body := `{"code": "x = 1", "test_cases": [{"input": [1, 2], "expected": 3}]}`
	w := doRequest(newTestRouter(a), http.MethodPost, "/execute", body)
	require.Equal(t, http.StatusOK, w.Code)

	require.Len(t, got.TestCases, 1)
	// numbers stay exact
	assert.Equal(t, json.Number("3"), got.TestCases[0].Expected)
	assert.Equal(t, []any{json.Number("1"), json.Number("2")}, got.TestCases[0].Input)
}

func TestHandlerGetProblem(t *testing.T) {
	router := newTestRouter(newTestApi())

	w := doRequest(router, http.MethodGet, "/problems/7", "")
	require.Equal(t, http.StatusOK, w.Code)
	var problem problem_service.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problem))
	assert.Equal(t, "Business card", problem.Title)

	w = doRequest(router, http.MethodGet, "/problems/8", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodGet, "/problems/seven", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerGetHints(t *testing.T) {
	router := newTestRouter(newTestApi())

	tests := []struct {
		target     string
		wantStatus int
		wantHints  []string
	}{
		{"/problems/7/hints?count=2", http.StatusOK, []string{"a", "b"}},
		{"/problems/7/hints", http.StatusOK, []string{"a", "b", "c"}},
		{"/problems/7/hints?count=0", http.StatusBadRequest, nil},
		{"/problems/7/hints?count=x", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := doRequest(router, http.MethodGet, tt.target, "")
			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantHints == nil {
				return
			}
			var resp problem_service.HintsResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantHints, resp.Hints)
			assert.Equal(t, 3, resp.TotalHints)
		})
	}
}

func TestHandlerGetLessonProblems(t *testing.T) {
	a := newTestApi()
	router := newTestRouter(a)

	w := doRequest(router, http.MethodGet, "/lessons/2/problems", "")
	require.Equal(t, http.StatusOK, w.Code)
	var problems []problem_service.Problem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &problems))
	assert.Len(t, problems, 1)

	a.ProblemServiceConfig.(*fakeProblems).partial = true
	w = doRequest(router, http.MethodGet, "/lessons/2/problems", "")
	assert.Equal(t, http.StatusPartialContent, w.Code)
}

func TestHandlerGetSections(t *testing.T) {
	w := doRequest(newTestRouter(newTestApi()), http.MethodGet, "/sections", "")
	require.Equal(t, http.StatusOK, w.Code)

	var sections []problem_service.Section
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sections))
	require.Len(t, sections, 1)
	assert.Equal(t, "Variables", sections[0].Lessons[0].Title)
}

func TestHandlerGetProgress(t *testing.T) {
	a := newTestApi()
	userID := uuid.New()
	a.ProgressServiceConfig = &fakeProgress{progress: []progress_service.Progress{
		{UserID: userID, ProblemID: 7, IsCompleted: true, Attempts: 2},
	}}

	t.Run("anonymous", func(t *testing.T) {
		w := doRequest(newTestRouter(a), http.MethodGet, "/progress/"+userID.String(), "")
		require.Equal(t, http.StatusOK, w.Code)
		var progress []progress_service.Progress
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &progress))
		require.Len(t, progress, 1)
		assert.Equal(t, int32(2), progress[0].Attempts)
	})

	t.Run("signed in as someone else", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/progress/"+userID.String(), nil)
		r = r.WithContext(context.WithValue(
			r.Context(),
			service.KeyCtxUserCredClaims,
			service.UserCredentialClaims{UserID: uuid.New()},
		))
		w := httptest.NewRecorder()
		newTestRouter(a).ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("invalid user id", func(t *testing.T) {
		w := doRequest(newTestRouter(a), http.MethodGet, "/progress/not-a-uuid", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandlerGetUserStats(t *testing.T) {
	userID := uuid.New()
	w := doRequest(newTestRouter(newTestApi()), http.MethodGet, "/users/"+userID.String()+"/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var stats user_service.UserStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, userID, stats.UserID)
	assert.Equal(t, int32(120), stats.TotalXP)
}

func TestHandlerReadiness(t *testing.T) {
	a := newTestApi()

	w := doRequest(newTestRouter(a), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)

	a.DB = fakePinger{err: errors.New("connection refused")}
	w = doRequest(newTestRouter(a), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
