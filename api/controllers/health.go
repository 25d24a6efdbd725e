package controllers

import (
	"net/http"

	"github.com/stockroomhq/stockroom-backend/api/responses"
	"github.com/stockroomhq/stockroom-backend/pkg/types"
)

// Version is the reported build version.
const Version = "1.0.0"

// Health reports liveness.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteJSON(w, http.StatusOK, types.HealthBody{
			Status:  "ok",
			Version: Version,
		})
	}
}
