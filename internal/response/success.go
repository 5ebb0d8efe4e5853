package response

import (
	"encoding/json"
	"net/http"

	"github.com/GregMSThompson/expense-backend/pkg/logger"
)

// WriteSuccess encodes the payload as-is. Payload types carry their own
// "success" field so the wire shape stays flat.
func (h *responseHandler) WriteSuccess(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		// Last-ditch logging; can't return an error now
		log := logger.FromContext(r.Context())
		log.Error("failed to encode success response", "error", err)
	}
}
