// internal/webutil/request.go
package webutil

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/LrenceLapating/Pathfinder/internal/model"
)

// DecodeJSONBody はリクエストボディをデコードします
func DecodeJSONBody(r *http.Request, logger *slog.Logger, dst interface{}) error {
	if r.Body == nil {
		return model.NewAppError("INVALID_REQUEST", "Request body is required", "", model.ErrInvalidInput)
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		logger.Warn("Error decoding JSON body", slog.Any("error", err))
		return model.NewAppError("INVALID_REQUEST", "Invalid request body", "", model.ErrInvalidInput)
	}
	return nil
}
