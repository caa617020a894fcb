package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apierrors "github.com/CreativeZee/local-hub-replicator/internal/errors"
	"github.com/CreativeZee/local-hub-replicator/internal/models"
	"github.com/CreativeZee/local-hub-replicator/internal/repository"
	"github.com/CreativeZee/local-hub-replicator/internal/util"
)

// ListEvents handles GET /events.
func (h *Handlers) ListEvents(c *gin.Context) {
	q := geoQueryFromRequest(c, "events")
	events, err := repository.ListNearby(h.db, q, func(e *models.Event) models.GeoPoint {
		return e.Location
	}, "User", "Interests", "Attendees")
	if err != nil {
		util.HandleDBError(c, err, "events")
		return
	}
	c.JSON(http.StatusOK, events)
}

// ListUserEvents handles GET /events/user/:userId, the events a user
// organizes.
func (h *Handlers) ListUserEvents(c *gin.Context) {
	var events []models.Event
	err := h.db.Preload("User").Preload("Interests").Preload("Attendees").
		Where("user_id = ?", c.Param("userId")).
		Order("event_date asc").
		Find(&events).Error
	if err != nil {
		util.HandleDBError(c, err, "events")
		return
	}
	c.JSON(http.StatusOK, events)
}

// ListAttendingEvents handles GET /events/attending/:userId, the
// events a user has joined the attendee list of.
func (h *Handlers) ListAttendingEvents(c *gin.Context) {
	var events []models.Event
	err := h.db.Preload("User").Preload("Interests").Preload("Attendees").
		Joins("JOIN event_attendees ON event_attendees.event_id = events.id").
		Where("event_attendees.user_id = ?", c.Param("userId")).
		Order("events.event_date asc").
		Find(&events).Error
	if err != nil {
		util.HandleDBError(c, err, "events")
		return
	}
	c.JSON(http.StatusOK, events)
}

// GetEvent handles GET /events/:id.
func (h *Handlers) GetEvent(c *gin.Context) {
	var event models.Event
	err := h.db.Preload("User").Preload("Interests").Preload("Attendees").
		First(&event, "id = ?", c.Param("id")).Error
	if err != nil {
		util.HandleDBError(c, err, "event")
		return
	}
	c.JSON(http.StatusOK, event)
}

// CreateEvent handles POST /events.
func (h *Handlers) CreateEvent(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		util.RespondWithAPIError(c, err)
		return
	}

	var input struct {
		Title       string         `json:"title"`
		Description string         `json:"description"`
		Image       string         `json:"image"`
		Category    string         `json:"category"`
		EventDate   time.Time      `json:"eventDate"`
		Location    *locationInput `json:"location"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithAPIError(c, apierrors.BadRequest("invalid request body"))
		return
	}
	if input.Title == "" {
		util.RespondWithAPIError(c, apierrors.ValidationError("title", "title is required"))
		return
	}
	if input.EventDate.IsZero() {
		util.RespondWithAPIError(c, apierrors.ValidationError("eventDate", "event date is required"))
		return
	}

	event := models.Event{
		UserID:      user.ID,
		Title:       input.Title,
		Description: input.Description,
		Image:       input.Image,
		Category:    input.Category,
		EventDate:   input.EventDate,
		Location:    h.resolveLocation(c.Request.Context(), input.Location),
	}
	if err := h.db.Create(&event).Error; err != nil {
		util.HandleDBError(c, err, "event")
		return
	}
	c.JSON(http.StatusCreated, event)
}

// DeleteEvent handles DELETE /events/:id.
func (h *Handlers) DeleteEvent(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)

	var event models.Event
	if err := h.db.First(&event, "id = ?", c.Param("id")).Error; err != nil {
		util.HandleDBError(c, err, "event")
		return
	}
	if event.UserID != userID {
		util.RespondWithAPIError(c, apierrors.Forbidden("only the organizer can delete an event"))
		return
	}

	if err := h.db.Select("Interests", "Attendees").Delete(&event).Error; err != nil {
		util.HandleDBError(c, err, "event")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": event.ID})
}

// MarkEventInterest handles POST /events/:id/interest. Marking twice
// is a conflict.
func (h *Handlers) MarkEventInterest(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)
	eventID := c.Param("id")

	var event models.Event
	if err := h.db.Preload("Interests").First(&event, "id = ?", eventID).Error; err != nil {
		util.HandleDBError(c, err, "event")
		return
	}

	if event.InterestedBy(userID) {
		util.RespondWithAPIError(c, apierrors.Conflict("already interested in this event"))
		return
	}

	interest := models.EventInterest{EventID: eventID, UserID: userID}
	if err := h.db.Create(&interest).Error; err != nil {
		util.HandleDBError(c, err, "event")
		return
	}

	var interests []models.EventInterest
	h.db.Where("event_id = ?", eventID).Find(&interests)
	c.JSON(http.StatusOK, interests)
}

// UnmarkEventInterest handles DELETE /events/:id/interest.
func (h *Handlers) UnmarkEventInterest(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)
	eventID := c.Param("id")

	var event models.Event
	if err := h.db.First(&event, "id = ?", eventID).Error; err != nil {
		util.HandleDBError(c, err, "event")
		return
	}

	res := h.db.Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&models.EventInterest{})
	if res.Error != nil {
		util.HandleDBError(c, res.Error, "event")
		return
	}
	if res.RowsAffected == 0 {
		util.RespondWithAPIError(c, apierrors.Conflict("not interested in this event"))
		return
	}

	var interests []models.EventInterest
	h.db.Where("event_id = ?", eventID).Find(&interests)
	c.JSON(http.StatusOK, interests)
}

// AttendEvent handles POST /events/:id/attend.
func (h *Handlers) AttendEvent(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)
	eventID := c.Param("id")

	var event models.Event
	if err := h.db.Preload("Attendees").First(&event, "id = ?", eventID).Error; err != nil {
		util.HandleDBError(c, err, "event")
		return
	}

	if event.AttendedBy(userID) {
		util.RespondWithAPIError(c, apierrors.Conflict("already attending this event"))
		return
	}

	attendee := models.EventAttendee{EventID: eventID, UserID: userID}
	if err := h.db.Create(&attendee).Error; err != nil {
		util.HandleDBError(c, err, "event")
		return
	}

	var attendees []models.EventAttendee
	h.db.Where("event_id = ?", eventID).Find(&attendees)
	c.JSON(http.StatusOK, attendees)
}

// UnattendEvent handles DELETE /events/:id/attend.
func (h *Handlers) UnattendEvent(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)
	eventID := c.Param("id")

	var event models.Event
	if err := h.db.First(&event, "id = ?", eventID).Error; err != nil {
		util.HandleDBError(c, err, "event")
		return
	}

	res := h.db.Where("event_id = ? AND user_id = ?", eventID, userID).Delete(&models.EventAttendee{})
	if res.Error != nil {
		util.HandleDBError(c, res.Error, "event")
		return
	}
	if res.RowsAffected == 0 {
		util.RespondWithAPIError(c, apierrors.Conflict("not attending this event"))
		return
	}

	var attendees []models.EventAttendee
	h.db.Where("event_id = ?", eventID).Find(&attendees)
	c.JSON(http.StatusOK, attendees)
}
