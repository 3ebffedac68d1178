package api

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

func (a *Api) HandlerReadiness(w http.ResponseWriter, r *http.Request) {
	if a.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.DB.Ping(ctx); err != nil {
			log.Errorf("readiness check failed, %v", err)
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
	}

	respondWithJson(w, http.StatusOK, []byte(`{"status":"ok"}`))
}
