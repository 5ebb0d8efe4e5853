package services

import (
	"context"
	"strings"

	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/pkg/logger"
)

type analysisClient interface {
	Analyze(ctx context.Context, userID string, window *int) map[string]any
}

type replyClient interface {
	GenerateReply(ctx context.Context, userMessage string, analysis map[string]any) string
}

type chatService struct {
	analysis analysisClient
	replies  replyClient
}

func NewChatService(analysis analysisClient, replies replyClient) *chatService {
	return &chatService{
		analysis: analysis,
		replies:  replies,
	}
}

// Chat runs the two gateways in fixed order: the reply prompt embeds the
// analysis, so the calls are not reorderable. A missing userId is the only
// hard failure; gateway failures come back as degraded values and the
// response still reports success.
func (s *chatService) Chat(ctx context.Context, req dto.ChatRequest) (dto.ChatResponse, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return dto.ChatResponse{}, errs.NewValidationError("userId required")
	}

	analysis := s.analysis.Analyze(ctx, req.UserID, req.Window)
	reply := s.replies.GenerateReply(ctx, req.Message, analysis)

	hint := any(analysis)
	if v, ok := analysis["overall_advice_hint"]; ok {
		hint = v
	}

	log := logger.FromContext(ctx)
	log.Info("chat completed", "user_id", req.UserID, "analysis_keys", len(analysis))

	return dto.ChatResponse{
		Success: true,
		Reply:   reply,
		Debug:   map[string]any{"analysis_hint": hint},
	}, nil
}
