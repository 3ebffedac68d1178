package api

import (
	"fmt"
	"net/http"

	"github.com/tcp_snm/quest/internal/service/submission_service"
)

func (a *Api) HandlerExecute(w http.ResponseWriter, r *http.Request) {
	var request submission_service.ExecuteRequest

	if err := decodeJsonBody(r.Body, &request); err != nil {
		msg := fmt.Sprintf("invalid request payload, %s", err.Error())
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	result, err := a.SubmissionServiceConfig.Execute(r.Context(), request)
	if err != nil {
		handlerError(err, w)
		return
	}

	marshalAndRespond(w, http.StatusOK, result)
}
