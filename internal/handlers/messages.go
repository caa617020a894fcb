package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apierrors "github.com/CreativeZee/local-hub-replicator/internal/errors"
	"github.com/CreativeZee/local-hub-replicator/internal/models"
	"github.com/CreativeZee/local-hub-replicator/internal/util"
)

// ListConversations handles GET /conversations. Threads are ordered
// by recent activity, with the last message preloaded for previews.
func (h *Handlers) ListConversations(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)

	var conversations []models.Conversation
	err := h.db.Preload("LastMessage").
		Where("participant_a = ? OR participant_b = ?", userID, userID).
		Order("updated_at desc").
		Find(&conversations).Error
	if err != nil {
		util.HandleDBError(c, err, "conversations")
		return
	}
	c.JSON(http.StatusOK, conversations)
}

// StartConversation handles POST /conversations. Returns the existing
// thread when one already exists for the pair, in either column
// order.
func (h *Handlers) StartConversation(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)

	var input struct {
		UserID string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.UserID == "" {
		util.RespondWithAPIError(c, apierrors.ValidationError("userId", "a recipient is required"))
		return
	}
	if input.UserID == userID {
		util.RespondWithAPIError(c, apierrors.BadRequest("cannot start a conversation with yourself"))
		return
	}

	var other models.User
	if err := h.db.First(&other, "id = ?", input.UserID).Error; err != nil {
		util.HandleDBError(c, err, "user")
		return
	}
	if other.HasBlocked(userID) {
		util.RespondWithAPIError(c, apierrors.Forbidden("cannot message this user"))
		return
	}

	var conversation models.Conversation
	err := h.db.Where(
		"(participant_a = ? AND participant_b = ?) OR (participant_a = ? AND participant_b = ?)",
		userID, input.UserID, input.UserID, userID,
	).First(&conversation).Error
	if err == nil {
		c.JSON(http.StatusOK, conversation)
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		util.HandleDBError(c, err, "conversation")
		return
	}

	conversation = models.Conversation{
		ParticipantA: userID,
		ParticipantB: input.UserID,
	}
	if err := h.db.Create(&conversation).Error; err != nil {
		util.HandleDBError(c, err, "conversation")
		return
	}
	c.JSON(http.StatusCreated, conversation)
}

// SendDirectMessage handles POST /messages. Finds or creates the
// conversation with the recipient, appends the message, and refreshes
// the thread's last-message pointer.
func (h *Handlers) SendDirectMessage(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)

	var input struct {
		UserID string `json:"userId"`
		Text   string `json:"text"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithAPIError(c, apierrors.BadRequest("invalid request body"))
		return
	}
	if input.UserID == "" {
		util.RespondWithAPIError(c, apierrors.ValidationError("userId", "a recipient is required"))
		return
	}
	if input.Text == "" {
		util.RespondWithAPIError(c, apierrors.ValidationError("text", "text is required"))
		return
	}
	if input.UserID == userID {
		util.RespondWithAPIError(c, apierrors.BadRequest("cannot message yourself"))
		return
	}

	var other models.User
	if err := h.db.First(&other, "id = ?", input.UserID).Error; err != nil {
		util.HandleDBError(c, err, "user")
		return
	}
	if other.HasBlocked(userID) {
		util.RespondWithAPIError(c, apierrors.Forbidden("cannot message this user"))
		return
	}

	var conversation models.Conversation
	err := h.db.Where(
		"(participant_a = ? AND participant_b = ?) OR (participant_a = ? AND participant_b = ?)",
		userID, input.UserID, input.UserID, userID,
	).First(&conversation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		conversation = models.Conversation{
			ParticipantA: userID,
			ParticipantB: input.UserID,
		}
		err = h.db.Create(&conversation).Error
	}
	if err != nil {
		util.HandleDBError(c, err, "conversation")
		return
	}

	message := models.Message{
		ConversationID: conversation.ID,
		SenderID:       userID,
		Text:           input.Text,
	}
	if err := h.db.Create(&message).Error; err != nil {
		util.HandleDBError(c, err, "message")
		return
	}

	conversation.LastMessageID = message.ID
	if err := h.db.Save(&conversation).Error; err != nil {
		util.HandleDBError(c, err, "conversation")
		return
	}
	c.JSON(http.StatusCreated, message)
}

// ListMessages handles GET /conversations/:id/messages. Only a
// participant may read the thread; the other side's messages are
// marked read on fetch.
func (h *Handlers) ListMessages(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)

	var conversation models.Conversation
	if err := h.db.First(&conversation, "id = ?", c.Param("id")).Error; err != nil {
		util.HandleDBError(c, err, "conversation")
		return
	}
	if !conversation.HasParticipant(userID) {
		util.RespondWithAPIError(c, apierrors.Forbidden("not a participant in this conversation"))
		return
	}

	h.db.Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id = ? AND read = ?",
			conversation.ID, conversation.OtherParticipant(userID), false).
		Update("read", true)

	var messages []models.Message
	err := h.db.Where("conversation_id = ?", conversation.ID).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		util.HandleDBError(c, err, "messages")
		return
	}
	c.JSON(http.StatusOK, messages)
}

// SendMessage handles POST /conversations/:id/messages. The thread's
// last-message pointer is refreshed after the insert; the two writes
// are separate statements, so a concurrent send can briefly leave the
// pointer one message behind.
func (h *Handlers) SendMessage(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)

	var conversation models.Conversation
	if err := h.db.First(&conversation, "id = ?", c.Param("id")).Error; err != nil {
		util.HandleDBError(c, err, "conversation")
		return
	}
	if !conversation.HasParticipant(userID) {
		util.RespondWithAPIError(c, apierrors.Forbidden("not a participant in this conversation"))
		return
	}

	var input struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Text == "" {
		util.RespondWithAPIError(c, apierrors.ValidationError("text", "text is required"))
		return
	}

	message := models.Message{
		ConversationID: conversation.ID,
		SenderID:       userID,
		Text:           input.Text,
	}
	if err := h.db.Create(&message).Error; err != nil {
		util.HandleDBError(c, err, "message")
		return
	}

	conversation.LastMessageID = message.ID
	if err := h.db.Save(&conversation).Error; err != nil {
		util.HandleDBError(c, err, "conversation")
		return
	}
	c.JSON(http.StatusCreated, message)
}
