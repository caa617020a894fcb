package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/CreativeZee/local-hub-replicator/internal/errors"
	"github.com/CreativeZee/local-hub-replicator/internal/models"
	"github.com/CreativeZee/local-hub-replicator/internal/repository"
	"github.com/CreativeZee/local-hub-replicator/internal/util"
)

// ListPosts handles GET /posts. With usable lat/lng parameters it
// returns posts within the neighborhood radius, nearest first;
// otherwise newest first.
func (h *Handlers) ListPosts(c *gin.Context) {
	q := geoQueryFromRequest(c, "posts")
	posts, err := repository.ListNearby(h.db, q, func(p *models.Post) models.GeoPoint {
		return p.Location
	}, "User", "Likes", "Comments")
	if err != nil {
		util.HandleDBError(c, err, "posts")
		return
	}
	c.JSON(http.StatusOK, posts)
}

// ListUserPosts handles GET /posts/user/:userId. A profile whose
// posts are hidden returns an empty list to everyone but the owner.
func (h *Handlers) ListUserPosts(c *gin.Context) {
	var owner models.User
	if err := h.db.First(&owner, "id = ?", c.Param("userId")).Error; err != nil {
		util.HandleDBError(c, err, "user")
		return
	}

	viewerID, _ := util.GetUserIDFromContext(c)
	if viewerID != owner.ID && !owner.PrivacySettings.PostsVisible {
		c.JSON(http.StatusOK, []models.Post{})
		return
	}

	var posts []models.Post
	err := h.db.Preload("User").Preload("Likes").Preload("Comments").
		Where("user_id = ?", owner.ID).
		Order("created_at desc").
		Find(&posts).Error
	if err != nil {
		util.HandleDBError(c, err, "posts")
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetPost handles GET /posts/:id.
func (h *Handlers) GetPost(c *gin.Context) {
	var post models.Post
	err := h.db.Preload("User").Preload("Likes").Preload("Comments").
		First(&post, "id = ?", c.Param("id")).Error
	if err != nil {
		util.HandleDBError(c, err, "post")
		return
	}
	c.JSON(http.StatusOK, post)
}

// CreatePost handles POST /posts. The author's name and avatar are
// snapshotted onto the post so the feed renders without a join even
// if the profile changes later.
func (h *Handlers) CreatePost(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		util.RespondWithAPIError(c, err)
		return
	}

	var input struct {
		Title    string         `json:"title"`
		Text     string         `json:"text"`
		Image    string         `json:"image"`
		GroupID  string         `json:"groupId"`
		Location *locationInput `json:"location"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithAPIError(c, apierrors.BadRequest("invalid request body"))
		return
	}
	if input.Text == "" {
		util.RespondWithAPIError(c, apierrors.ValidationError("text", "text is required"))
		return
	}

	if input.GroupID != "" {
		var group models.Group
		if err := h.db.First(&group, "id = ?", input.GroupID).Error; err != nil {
			util.HandleDBError(c, err, "group")
			return
		}
	}

	post := models.Post{
		UserID:       user.ID,
		Title:        input.Title,
		Text:         input.Text,
		Image:        input.Image,
		GroupID:      input.GroupID,
		AuthorName:   user.Name,
		AuthorAvatar: user.Avatar,
		Location:     h.resolveLocation(c.Request.Context(), input.Location),
	}
	if err := h.db.Create(&post).Error; err != nil {
		util.HandleDBError(c, err, "post")
		return
	}
	c.JSON(http.StatusCreated, post)
}

// DeletePost handles DELETE /posts/:id. Only the author may delete.
func (h *Handlers) DeletePost(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)

	var post models.Post
	if err := h.db.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		util.HandleDBError(c, err, "post")
		return
	}
	if post.UserID != userID {
		util.RespondWithAPIError(c, apierrors.Forbidden("only the author can delete a post"))
		return
	}

	if err := h.db.Select("Likes", "Comments").Delete(&post).Error; err != nil {
		util.HandleDBError(c, err, "post")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": post.ID})
}

// LikePost handles POST /posts/:id/like. Liking twice is a conflict.
func (h *Handlers) LikePost(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)
	postID := c.Param("id")

	var post models.Post
	if err := h.db.Preload("Likes").First(&post, "id = ?", postID).Error; err != nil {
		util.HandleDBError(c, err, "post")
		return
	}

	if post.LikedBy(userID) {
		util.RespondWithAPIError(c, apierrors.Conflict("post already liked"))
		return
	}

	like := models.PostLike{PostID: postID, UserID: userID}
	if err := h.db.Create(&like).Error; err != nil {
		util.HandleDBError(c, err, "post")
		return
	}

	var likes []models.PostLike
	h.db.Where("post_id = ?", postID).Find(&likes)
	c.JSON(http.StatusOK, likes)
}

// UnlikePost handles DELETE /posts/:id/like. Removing a like that was
// never placed is a conflict.
func (h *Handlers) UnlikePost(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)
	postID := c.Param("id")

	var post models.Post
	if err := h.db.First(&post, "id = ?", postID).Error; err != nil {
		util.HandleDBError(c, err, "post")
		return
	}

	res := h.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.PostLike{})
	if res.Error != nil {
		util.HandleDBError(c, res.Error, "post")
		return
	}
	if res.RowsAffected == 0 {
		util.RespondWithAPIError(c, apierrors.Conflict("post has not been liked"))
		return
	}

	var likes []models.PostLike
	h.db.Where("post_id = ?", postID).Find(&likes)
	c.JSON(http.StatusOK, likes)
}

// CreateComment handles POST /posts/:id/comments.
func (h *Handlers) CreateComment(c *gin.Context) {
	user, err := h.currentUser(c)
	if err != nil {
		util.RespondWithAPIError(c, err)
		return
	}
	postID := c.Param("id")

	var post models.Post
	if err := h.db.First(&post, "id = ?", postID).Error; err != nil {
		util.HandleDBError(c, err, "post")
		return
	}

	var input struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Text == "" {
		util.RespondWithAPIError(c, apierrors.ValidationError("text", "text is required"))
		return
	}

	comment := models.Comment{
		PostID:       postID,
		UserID:       user.ID,
		Text:         input.Text,
		AuthorName:   user.Name,
		AuthorAvatar: user.Avatar,
	}
	if err := h.db.Create(&comment).Error; err != nil {
		util.HandleDBError(c, err, "comment")
		return
	}

	var comments []models.Comment
	h.db.Where("post_id = ?", postID).Order("created_at asc").Find(&comments)
	c.JSON(http.StatusCreated, comments)
}

// UpdateComment handles PUT /posts/:id/comments/:commentId. The
// comment author or the post author may edit.
func (h *Handlers) UpdateComment(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)
	postID := c.Param("id")

	var post models.Post
	if err := h.db.First(&post, "id = ?", postID).Error; err != nil {
		util.HandleDBError(c, err, "post")
		return
	}

	var comment models.Comment
	err := h.db.Where("id = ? AND post_id = ?", c.Param("commentId"), postID).First(&comment).Error
	if err != nil {
		util.HandleDBError(c, err, "comment")
		return
	}
	if comment.UserID != userID && post.UserID != userID {
		util.RespondWithAPIError(c, apierrors.Forbidden("not allowed to edit this comment"))
		return
	}

	var input struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Text == "" {
		util.RespondWithAPIError(c, apierrors.ValidationError("text", "text is required"))
		return
	}

	comment.Text = input.Text
	if err := h.db.Save(&comment).Error; err != nil {
		util.HandleDBError(c, err, "comment")
		return
	}

	var comments []models.Comment
	h.db.Where("post_id = ?", postID).Order("created_at asc").Find(&comments)
	c.JSON(http.StatusOK, comments)
}

// DeleteComment handles DELETE /posts/:id/comments/:commentId. Only
// the comment author may delete, the post author cannot.
func (h *Handlers) DeleteComment(c *gin.Context) {
	userID, _ := util.GetUserIDFromContext(c)
	postID := c.Param("id")

	var post models.Post
	if err := h.db.First(&post, "id = ?", postID).Error; err != nil {
		util.HandleDBError(c, err, "post")
		return
	}

	var comment models.Comment
	err := h.db.Where("id = ? AND post_id = ?", c.Param("commentId"), postID).First(&comment).Error
	if err != nil {
		util.HandleDBError(c, err, "comment")
		return
	}
	if comment.UserID != userID {
		util.RespondWithAPIError(c, apierrors.Forbidden("only the comment author can delete it"))
		return
	}

	if err := h.db.Delete(&comment).Error; err != nil {
		util.HandleDBError(c, err, "comment")
		return
	}

	var comments []models.Comment
	h.db.Where("post_id = ?", postID).Order("created_at asc").Find(&comments)
	c.JSON(http.StatusOK, comments)
}
