package api

import (
	"net/http"

	"github.com/tcp_snm/quest/internal/service"
)

func (a *Api) HandlerGetProgress(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidURLParam(r, "user_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := service.AuthorizeUser(r.Context(), userID); err != nil {
		handlerError(err, w)
		return
	}

	progress, err := a.ProgressServiceConfig.ListProgress(r.Context(), userID)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, progress)
}

func (a *Api) HandlerGetUserStats(w http.ResponseWriter, r *http.Request) {
	userID, err := uuidURLParam(r, "user_id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	stats, err := a.UserServiceConfig.GetUserStats(r.Context(), userID)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, stats)
}
