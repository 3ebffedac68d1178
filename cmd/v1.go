package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/quest/internal/api"
	"github.com/tcp_snm/quest/middleware"
)

func NewV1Router(a *api.Api, jwtSecret string) *chi.Mux {
	v1 := chi.NewRouter()

	// sessions are optional, without a secret every request is anonymous
	withSession := func(next http.HandlerFunc) http.HandlerFunc {
		return middleware.JWTMiddleware(jwtSecret, next)
	}
	if jwtSecret == "" {
		log.Warn("jwt secret not found in environment. session tokens are ignored")
		withSession = func(next http.HandlerFunc) http.HandlerFunc { return next }
	}

	v1.Get("/healthz", a.HandlerReadiness)

	// evaluation layer
	v1.Post("/execute", a.HandlerExecute)
	v1.Post("/submit", withSession(a.HandlerSubmit))

	// curriculum layer
	v1.Get("/sections", a.HandlerGetSections)
	v1.Get("/lessons/{lesson_id}/problems", a.HandlerGetLessonProblems)
	v1.Get("/problems/{problem_id}", a.HandlerGetProblem)
	v1.Get("/problems/{problem_id}/hints", a.HandlerGetHints)

	// learner layer
	v1.Get("/progress/{user_id}", withSession(a.HandlerGetProgress))
	v1.Get("/users/{user_id}/stats", a.HandlerGetUserStats)

	return v1
}
