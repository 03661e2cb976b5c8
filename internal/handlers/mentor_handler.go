package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Replier produces a mentor chat reply.
type Replier interface {
	Reply(message string) string
}

// MentorHandler serves the mentor chat.
type MentorHandler struct {
	replier Replier
}

// NewMentorHandler creates a new MentorHandler.
func NewMentorHandler(replier Replier) *MentorHandler {
	return &MentorHandler{replier: replier}
}

// ChatRequest is a single user message.
type ChatRequest struct {
	Message string `json:"message" binding:"required,max=2000"`
}

// ChatResponse is the mentor's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// Chat answers a user message
// @Summary     Mentor chat
// @Description Reply to a personal-finance question with canned guidance
// @Tags        mentor
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body ChatRequest true "Message"
// @Success     200 {object} ChatResponse "Reply"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /mentor/chat [post]
func (h *MentorHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Reply: h.replier.Reply(req.Message)})
}
