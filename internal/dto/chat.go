package dto

type ChatRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
	Window  *int   `json:"window,omitempty"` // months
}

type ChatResponse struct {
	Success bool           `json:"success"`
	Reply   string         `json:"reply"`
	Debug   map[string]any `json:"debug,omitempty"`
}
