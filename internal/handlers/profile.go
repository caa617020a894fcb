package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	apierrors "github.com/CreativeZee/local-hub-replicator/internal/errors"
	"github.com/CreativeZee/local-hub-replicator/internal/models"
	"github.com/CreativeZee/local-hub-replicator/internal/util"
)

// GetMe handles GET /profile/me. The response carries the account
// plus its expanded favorites and group memberships, so the profile
// screen loads with one request.
func (h *Handlers) GetMe(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		util.RespondWithAPIError(c, err)
		return
	}

	var groups []models.Group
	h.db.Joins("JOIN group_members ON group_members.group_id = groups.id").
		Where("group_members.user_id = ?", user.ID).
		Order("groups.created_at desc").
		Find(&groups)

	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"favorites": h.expandFavorites(user.ID),
		"groups":    groups,
	})
}

// UpdateProfile handles PUT /profile. Partial update of the mutable
// profile fields; a location payload is resolved the same way as on
// content creation.
func (h *Handlers) UpdateProfile(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		util.RespondWithAPIError(c, err)
		return
	}

	var input struct {
		Name                *string        `json:"name"`
		Phone               *string        `json:"phone"`
		Avatar              *string        `json:"avatar"`
		Bio                 *string        `json:"bio"`
		Interests           []string       `json:"interests"`
		BusinessName        *string        `json:"businessName"`
		BusinessCategory    *string        `json:"businessCategory"`
		BusinessDescription *string        `json:"businessDescription"`
		BusinessWebsite     *string        `json:"businessWebsite"`
		BusinessHours       *string        `json:"businessHours"`
		Location            *locationInput `json:"location"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithAPIError(c, apierrors.BadRequest("invalid request body"))
		return
	}

	if input.Name != nil {
		if *input.Name == "" {
			util.RespondWithAPIError(c, apierrors.ValidationError("name", "name cannot be empty"))
			return
		}
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Avatar != nil {
		user.Avatar = *input.Avatar
	}
	if input.Bio != nil {
		user.Bio = *input.Bio
	}
	if input.Interests != nil {
		user.Interests = models.StringList(input.Interests)
	}
	if input.BusinessName != nil {
		user.BusinessName = *input.BusinessName
	}
	if input.BusinessCategory != nil {
		user.BusinessCategory = *input.BusinessCategory
	}
	if input.BusinessDescription != nil {
		user.BusinessDescription = *input.BusinessDescription
	}
	if input.BusinessWebsite != nil {
		user.BusinessWebsite = *input.BusinessWebsite
	}
	if input.BusinessHours != nil {
		user.BusinessHours = *input.BusinessHours
	}
	if input.Location != nil {
		user.Location = h.resolveLocation(c.Request.Context(), input.Location)
	}

	if err := h.db.Save(user).Error; err != nil {
		util.HandleDBError(c, err, "profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateEmail handles PUT /profile/email.
func (h *Handlers) UpdateEmail(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		util.RespondWithAPIError(c, err)
		return
	}

	var input struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithAPIError(c, apierrors.BadRequest("invalid request body"))
		return
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		util.RespondWithAPIError(c, apierrors.ValidationError("email", "a valid email is required"))
		return
	}

	var existing models.User
	err = h.db.Where("email = ? AND id <> ?", email, user.ID).First(&existing).Error
	if err == nil {
		util.RespondWithAPIError(c, apierrors.Conflict("an account with this email already exists"))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		util.HandleDBError(c, err, "profile")
		return
	}

	user.Email = email
	if err := h.db.Save(user).Error; err != nil {
		util.HandleDBError(c, err, "profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdatePhone handles PUT /profile/phone.
func (h *Handlers) UpdatePhone(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		util.RespondWithAPIError(c, err)
		return
	}

	var input struct {
		Phone string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithAPIError(c, apierrors.BadRequest("invalid request body"))
		return
	}

	user.Phone = input.Phone
	if err := h.db.Save(user).Error; err != nil {
		util.HandleDBError(c, err, "profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateNotificationSettings handles PUT /profile/notifications.
func (h *Handlers) UpdateNotificationSettings(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		util.RespondWithAPIError(c, err)
		return
	}

	var settings models.NotificationSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		util.RespondWithAPIError(c, apierrors.BadRequest("invalid request body"))
		return
	}

	user.NotificationSettings = settings
	if err := h.db.Save(user).Error; err != nil {
		util.HandleDBError(c, err, "profile")
		return
	}
	c.JSON(http.StatusOK, user.NotificationSettings)
}

// UpdatePrivacySettings handles PUT /profile/privacy.
func (h *Handlers) UpdatePrivacySettings(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		util.RespondWithAPIError(c, err)
		return
	}

	var settings models.PrivacySettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		util.RespondWithAPIError(c, apierrors.BadRequest("invalid request body"))
		return
	}

	user.PrivacySettings = settings
	if err := h.db.Save(user).Error; err != nil {
		util.HandleDBError(c, err, "profile")
		return
	}
	c.JSON(http.StatusOK, user.PrivacySettings)
}

// UpdateFeedPreferences handles PUT /profile/feed-preferences.
func (h *Handlers) UpdateFeedPreferences(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		util.RespondWithAPIError(c, err)
		return
	}

	var prefs models.FeedPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		util.RespondWithAPIError(c, apierrors.BadRequest("invalid request body"))
		return
	}

	user.FeedPreferences = prefs
	if err := h.db.Save(user).Error; err != nil {
		util.HandleDBError(c, err, "profile")
		return
	}
	c.JSON(http.StatusOK, user.FeedPreferences)
}

// AddGalleryImage handles POST /profile/gallery.
func (h *Handlers) AddGalleryImage(c *gin.Context) {
	h.appendToList(c, "gallery", func(u *models.User) *models.StringList { return &u.Gallery })
}

// RemoveGalleryImage handles DELETE /profile/gallery.
func (h *Handlers) RemoveGalleryImage(c *gin.Context) {
	h.removeFromList(c, "gallery", func(u *models.User) *models.StringList { return &u.Gallery })
}

// AddCertificate handles POST /profile/certificates. Certificates
// belong to business profiles.
func (h *Handlers) AddCertificate(c *gin.Context) {
	if !h.requireBusiness(c) {
		return
	}
	h.appendToList(c, "certificate", func(u *models.User) *models.StringList { return &u.Certificates })
}

// RemoveCertificate handles DELETE /profile/certificates.
func (h *Handlers) RemoveCertificate(c *gin.Context) {
	if !h.requireBusiness(c) {
		return
	}
	h.removeFromList(c, "certificate", func(u *models.User) *models.StringList { return &u.Certificates })
}

// GetUserCertificates handles GET /profile/certificates/:userId.
// Certificates are public credentials, so no token is required.
func (h *Handlers) GetUserCertificates(c *gin.Context) {
	var user models.User
	if err := h.db.First(&user, "id = ?", c.Param("userId")).Error; err != nil {
		util.HandleDBError(c, err, "user")
		return
	}
	c.JSON(http.StatusOK, user.Certificates)
}

func (h *Handlers) requireBusiness(c *gin.Context) bool {
	user, err := h.currentUser(c)
	if err != nil {
		util.RespondWithAPIError(c, err)
		return false
	}
	if !user.IsBusiness() {
		util.RespondWithAPIError(c, apierrors.Forbidden("only business accounts have certificates"))
		return false
	}
	return true
}

func (h *Handlers) appendToList(c *gin.Context, field string, list func(*models.User) *models.StringList) {
	user, err := h.currentUser(c)
	if err != nil {
		util.RespondWithAPIError(c, err)
		return
	}

	var input struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.URL == "" {
		util.RespondWithAPIError(c, apierrors.ValidationError(field, "a url is required"))
		return
	}

	target := list(user)
	*target = append(*target, input.URL)
	if err := h.db.Save(user).Error; err != nil {
		util.HandleDBError(c, err, "profile")
		return
	}
	c.JSON(http.StatusOK, *target)
}

func (h *Handlers) removeFromList(c *gin.Context, field string, list func(*models.User) *models.StringList) {
	user, err := h.currentUser(c)
	if err != nil {
		util.RespondWithAPIError(c, err)
		return
	}

	var input struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.URL == "" {
		util.RespondWithAPIError(c, apierrors.ValidationError(field, "a url is required"))
		return
	}

	target := list(user)
	kept := make(models.StringList, 0, len(*target))
	for _, v := range *target {
		if v != input.URL {
			kept = append(kept, v)
		}
	}
	*target = kept
	if err := h.db.Save(user).Error; err != nil {
		util.HandleDBError(c, err, "profile")
		return
	}
	c.JSON(http.StatusOK, *target)
}

// GetBlockedUsers handles GET /profile/blocked-users. Returns the
// blocked accounts expanded to public profiles.
func (h *Handlers) GetBlockedUsers(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		util.RespondWithAPIError(c, err)
		return
	}

	profiles := make([]map[string]interface{}, 0, len(user.BlockedUsers))
	for _, id := range user.BlockedUsers {
		var blocked models.User
		if err := h.db.First(&blocked, "id = ?", id).Error; err != nil {
			continue
		}
		profiles = append(profiles, blocked.PublicProfile())
	}
	c.JSON(http.StatusOK, profiles)
}

// BlockUser handles POST /profile/blocked.
func (h *Handlers) BlockUser(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		util.RespondWithAPIError(c, err)
		return
	}

	var input struct {
		UserID string `json:"userId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.UserID == "" {
		util.RespondWithAPIError(c, apierrors.ValidationError("userId", "a user is required"))
		return
	}
	if input.UserID == user.ID {
		util.RespondWithAPIError(c, apierrors.BadRequest("cannot block yourself"))
		return
	}
	if user.HasBlocked(input.UserID) {
		util.RespondWithAPIError(c, apierrors.Conflict("user is already blocked"))
		return
	}

	var target models.User
	if err := h.db.First(&target, "id = ?", input.UserID).Error; err != nil {
		util.HandleDBError(c, err, "user")
		return
	}

	user.BlockedUsers = append(user.BlockedUsers, input.UserID)
	if err := h.db.Save(user).Error; err != nil {
		util.HandleDBError(c, err, "profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocked": user.BlockedUsers})
}

// UnblockUser handles DELETE /profile/blocked/:userId.
func (h *Handlers) UnblockUser(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		util.RespondWithAPIError(c, err)
		return
	}
	targetID := c.Param("userId")

	kept := make(models.StringList, 0, len(user.BlockedUsers))
	removed := false
	for _, id := range user.BlockedUsers {
		if id == targetID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	if !removed {
		util.RespondWithAPIError(c, apierrors.NotFound("blocked user"))
		return
	}

	user.BlockedUsers = kept
	if err := h.db.Save(user).Error; err != nil {
		util.HandleDBError(c, err, "profile")
		return
	}
	c.JSON(http.StatusOK, gin.H{"blocked": user.BlockedUsers})
}
