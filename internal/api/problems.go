package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tcp_snm/quest/internal/quest_errors"
)

func (a *Api) HandlerGetProblem(w http.ResponseWriter, r *http.Request) {
	problemID, err := int32URLParam(r, "problem_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	problem, err := a.ProblemServiceConfig.GetLearnerProblem(r.Context(), problemID)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, problem)
}

func (a *Api) HandlerGetHints(w http.ResponseWriter, r *http.Request) {
	problemID, err := int32URLParam(r, "problem_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// all hints when count is absent
	count := 0
	if countStr := r.URL.Query().Get("count"); countStr != "" {
		count, err = strconv.Atoi(countStr)
		if err != nil || count < 1 {
			http.Error(w, "count must be a positive integer", http.StatusBadRequest)
			return
		}
	}

	hints, err := a.ProblemServiceConfig.GetHints(r.Context(), problemID, count)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, hints)
}

func (a *Api) HandlerGetLessonProblems(w http.ResponseWriter, r *http.Request) {
	lessonID, err := int32URLParam(r, "lesson_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	problems, err := a.ProblemServiceConfig.ListLessonProblems(r.Context(), lessonID)
	statusCode := http.StatusOK
	if err != nil {
		if !errors.Is(err, quest_errors.ErrPartialResult) {
			handlerError(err, w)
			return
		}
		statusCode = http.StatusPartialContent
	}

	marshalAndRespond(w, statusCode, problems)
}

func (a *Api) HandlerGetSections(w http.ResponseWriter, r *http.Request) {
	sections, err := a.ProblemServiceConfig.GetCurriculum(r.Context())
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, sections)
}
