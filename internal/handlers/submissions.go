package handlers

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
)

// HandleGetSubmissions lists the most recent submissions, newest first.
func (sh *ScheduleHandler) HandleGetSubmissions(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	op := "handlers.HandleGetSubmissions"

	if sh.journal == nil {
		_ = respondWithError(w, http.StatusNotFound, "Submission journal is not configured.")
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil {
			_ = respondWithError(w, http.StatusBadRequest, "limit must be a number")
			return
		}
		limit = l
	}

	entries, err := sh.journal.GetSubmissions(r.Context(), limit)
	if err != nil {
		sh.log.Error().Str("op", op).Err(err).Msg("get submissions error")
		_ = respondWithError(w, http.StatusInternalServerError, "Couldnt get submissions.")
		return
	}

	response := map[string]interface{}{
		"status": "success",
		"data":   entries,
	}
	if err := respondWithJSON(w, http.StatusOK, response); err != nil {
		sh.log.Error().Str("op", op).Err(err).Msg("encode response error")
	}
}
