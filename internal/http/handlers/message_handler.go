// README: Turn transport handler; one inbound utterance, one outbound message batch.
package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TurnHandler is the engine surface the transport needs.
type TurnHandler interface {
	HandleTurn(ctx context.Context, sessionID, utterance string) []string
	EndSession(sessionID string)
}

type MessageHandler struct {
	bot TurnHandler
}

func NewMessageHandler(bot TurnHandler) *MessageHandler {
	return &MessageHandler{bot: bot}
}

type messageReq struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

type messageResp struct {
	Messages []string `json:"messages"`
}

// Post handles POST /api/messages.
// No per-turn deadline is imposed here: a hung provider call stalls this
// session's turn, which is a documented property of the engine.
func (h *MessageHandler) Post(c *gin.Context) {
	var req messageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	req.SessionID = strings.TrimSpace(req.SessionID)
	if req.SessionID == "" {
		writeError(c, http.StatusBadRequest, "missing session_id")
		return
	}
	// Empty text is a valid turn, not a 400: a blank prompt reply fills
	// the pending slot with the empty string.

	messages := h.bot.HandleTurn(c.Request.Context(), req.SessionID, req.Text)
	writeJSON(c, http.StatusOK, messageResp{Messages: messages})
}

// EndSession handles DELETE /api/sessions/:id. Conversation lifecycle is
// owned by the transport, so ending one is an explicit transport call.
func (h *MessageHandler) EndSession(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing session id")
		return
	}
	h.bot.EndSession(id)
	c.Status(http.StatusNoContent)
}
