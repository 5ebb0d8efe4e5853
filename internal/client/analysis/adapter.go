package analysisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/GregMSThompson/expense-backend/internal/config"
	"github.com/GregMSThompson/expense-backend/pkg/logger"
)

// Adapter calls the spending-analysis service. It is a fail-soft boundary:
// every failure mode collapses into an error-shaped mapping so the chat
// pipeline stays usable when the service is down.
type Adapter struct {
	client  *http.Client
	baseURL string
}

func NewAdapter(cfg *config.Config) *Adapter {
	return &Adapter{
		baseURL: strings.TrimRight(cfg.MLBaseURL, "/"),
		client: &http.Client{
			Timeout: cfg.ReadTimeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: cfg.ConnectTimeout}).DialContext,
			},
		},
	}
}

// Analyze returns the service's JSON body verbatim as a permissive mapping.
// The schema is not validated beyond a successful parse.
func (a *Adapter) Analyze(ctx context.Context, userID string, window *int) map[string]any {
	endpoint := fmt.Sprintf("%s/analyze/%s", a.baseURL, url.PathEscape(userID))
	if window != nil {
		endpoint += fmt.Sprintf("?window=%d", *window)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return a.failure(ctx, err.Error())
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return a.failure(ctx, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return a.failure(ctx, fmt.Sprintf("status %d", resp.StatusCode))
	}

	var analysis map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&analysis); err != nil {
		return a.failure(ctx, err.Error())
	}
	if analysis == nil {
		analysis = map[string]any{}
	}
	return analysis
}

func (a *Adapter) failure(ctx context.Context, detail string) map[string]any {
	log := logger.FromContext(ctx)
	log.Warn("analysis service degraded", "error", detail)
	return map[string]any{"error": "ML service error: " + detail}
}
