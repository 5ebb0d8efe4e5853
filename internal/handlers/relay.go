package handlers

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/internal/response"
	"github.com/GregMSThompson/expense-backend/pkg/logger"
)

// relayHandlers forwards chat requests verbatim to the relay target and
// mirrors whatever comes back. Unlike the composed chat path it is
// intentionally transparent: upstream errors pass through for debugging
// rather than degrading into fallback values.
type relayHandlers struct {
	ResponseHandler response.ResponseHandler
	Client          *http.Client
	BaseURL         string
}

func newRelayHandlers(deps *Deps) *relayHandlers {
	return &relayHandlers{
		ResponseHandler: deps.ResponseHandler,
		Client:          deps.RelayClient,
		BaseURL:         strings.TrimRight(deps.RelayBaseURL, "/"),
	}
}

func (h *relayHandlers) Proxy(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	req, err := http.NewRequestWithContext(r.Context(), http.MethodPost, h.BaseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if auth := r.Header.Get("Authorization"); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := h.Client.Do(req)
	if err != nil {
		// Connection refused or timed out; the client's timeouts bound both
		// phases, so this never hangs the request.
		h.ResponseHandler.HandleError(w, r,
			errs.NewExternalServiceError("chat relay", "Proxy cannot reach chat service: "+err.Error(), true))
		return
	}
	defer resp.Body.Close()

	upstream, err := io.ReadAll(resp.Body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	log.Info("relay completed", "status", resp.StatusCode, "bytes", len(upstream))

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := w.Write(upstream); err != nil {
		log.Error("failed to write relayed body", "error", err)
	}
}
