package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/CreativeZee/local-hub-replicator/internal/auth"
	"github.com/CreativeZee/local-hub-replicator/internal/config"
	"github.com/CreativeZee/local-hub-replicator/internal/database"
	"github.com/CreativeZee/local-hub-replicator/internal/logger"
	"github.com/CreativeZee/local-hub-replicator/internal/models"
)

const (
	testLat = 47.6062
	testLon = -122.3321
)

type HandlersTestSuite struct {
	suite.Suite
	db     *gorm.DB
	h      *Handlers
	router *gin.Engine

	user  models.User
	token string

	other      models.User
	otherToken string
}

func (s *HandlersTestSuite) SetupTest() {
	logger.InitializeForTests()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(db))
	s.db = db

	cfg := &config.Config{UploadDir: s.T().TempDir()}
	authService := auth.NewService(db, "test-secret")
	s.h = New(db, authService, nil, nil, cfg)

	s.user, s.token = s.registerUser("Dana", "dana@example.com", models.UserTypeIndividual)
	s.other, s.otherToken = s.registerUser("Riley", "riley@example.com", models.UserTypeBusiness)

	s.router = s.buildRouter()
}

func (s *HandlersTestSuite) registerUser(name, email string, userType models.UserType) (models.User, string) {
	user, token, err := s.h.auth.Register(auth.RegisterInput{
		Name:     name,
		Email:    email,
		Password: "password123",
		UserType: userType,
	})
	s.Require().NoError(err)
	return *user, token
}

func (s *HandlersTestSuite) buildRouter() *gin.Engine {
	router := gin.New()
	api := router.Group("/api/v1")
	api.Use(s.h.OptionalAuthMiddleware())

	api.POST("/auth/register", s.h.Register)
	api.POST("/auth/login", s.h.Login)
	api.GET("/posts", s.h.ListPosts)
	api.GET("/posts/user/:userId", s.h.ListUserPosts)
	api.GET("/posts/:id", s.h.GetPost)
	api.GET("/events", s.h.ListEvents)
	api.GET("/groups", s.h.ListGroups)
	api.GET("/users", s.h.SearchUsers)
	api.GET("/users/:id", s.h.GetUser)
	api.GET("/users/:id/reviews", s.h.ListReviews)

	private := api.Group("")
	private.Use(s.h.AuthMiddleware())
	private.POST("/posts", s.h.CreatePost)
	private.DELETE("/posts/:id", s.h.DeletePost)
	private.POST("/posts/:id/like", s.h.LikePost)
	private.DELETE("/posts/:id/like", s.h.UnlikePost)
	private.POST("/posts/:id/comments", s.h.CreateComment)
	private.PUT("/posts/:id/comments/:commentId", s.h.UpdateComment)
	private.DELETE("/posts/:id/comments/:commentId", s.h.DeleteComment)
	private.POST("/events", s.h.CreateEvent)
	private.POST("/events/:id/interest", s.h.MarkEventInterest)
	private.DELETE("/events/:id/interest", s.h.UnmarkEventInterest)
	private.POST("/events/:id/attend", s.h.AttendEvent)
	private.POST("/groups", s.h.CreateGroup)
	private.POST("/groups/:id/join", s.h.JoinGroup)
	private.POST("/groups/:id/leave", s.h.LeaveGroup)
	private.POST("/services", s.h.CreateService)
	private.POST("/users/:id/reviews", s.h.CreateReview)
	private.POST("/messages", s.h.SendDirectMessage)
	private.GET("/conversations", s.h.ListConversations)
	private.POST("/conversations", s.h.StartConversation)
	private.GET("/conversations/:id/messages", s.h.ListMessages)
	private.POST("/conversations/:id/messages", s.h.SendMessage)
	private.GET("/activities/client/:clientId", s.h.ListClientActivities)
	private.POST("/activities", s.h.CreateActivity)
	private.GET("/profile/me", s.h.GetMe)
	private.PUT("/profile", s.h.UpdateProfile)
	private.GET("/profile/favorites", s.h.ListFavorites)
	private.POST("/profile/favorites", s.h.AddFavorite)
	private.DELETE("/profile/favorites/:itemId", s.h.RemoveFavorite)

	return router
}

func (s *HandlersTestSuite) doRequest(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("x-auth-token", token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlersTestSuite) createPost(token, text string, lat, lon float64) models.Post {
	body := gin.H{"text": text}
	if lat != 0 || lon != 0 {
		body["location"] = gin.H{"latitude": lat, "longitude": lon}
	}
	w := s.doRequest(http.MethodPost, "/api/v1/posts", token, body)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var post models.Post
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &post))
	return post
}

func (s *HandlersTestSuite) TestAuthMiddlewareRejectsMissingToken() {
	w := s.doRequest(http.MethodPost, "/api/v1/posts", "", gin.H{"text": "hi"})
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.doRequest(http.MethodPost, "/api/v1/posts", "garbage", gin.H{"text": "hi"})
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlersTestSuite) TestAuthMiddlewareAcceptsBearerHeader() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/profile/me", nil)
	req.Header.Set("Authorization", "Bearer "+s.token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlersTestSuite) TestCreatePostSnapshotsAuthor() {
	post := s.createPost(s.token, "hello neighbors", testLat, testLon)
	s.Equal(s.user.ID, post.UserID)
	s.Equal("Dana", post.AuthorName)
	s.NotNil(post.Location.Latitude)
}

func (s *HandlersTestSuite) TestListPostsNearbyAndFallback() {
	s.createPost(s.token, "close", testLat+0.01, testLon)
	s.createPost(s.token, "far", testLat+0.5, testLon)
	s.createPost(s.token, "unlocated", 0, 0)

	w := s.doRequest(http.MethodGet,
		fmt.Sprintf("/api/v1/posts?lat=%f&lng=%f", testLat, testLon), "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var nearby []models.Post
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &nearby))
	s.Require().Len(nearby, 1)
	s.Equal("close", nearby[0].Text)

	// Without coordinates every post comes back, newest first.
	w = s.doRequest(http.MethodGet, "/api/v1/posts", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var all []models.Post
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &all))
	s.Len(all, 3)

	// Malformed coordinates degrade the same way.
	w = s.doRequest(http.MethodGet, "/api/v1/posts?lat=abc&lng=def", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &all))
	s.Len(all, 3)
}

func (s *HandlersTestSuite) TestLikePostTwiceConflicts() {
	post := s.createPost(s.token, "likeable", testLat, testLon)

	w := s.doRequest(http.MethodPost, "/api/v1/posts/"+post.ID+"/like", s.otherToken, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.doRequest(http.MethodPost, "/api/v1/posts/"+post.ID+"/like", s.otherToken, nil)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlersTestSuite) TestUnlikeWithoutLikeConflicts() {
	post := s.createPost(s.token, "never liked", testLat, testLon)

	w := s.doRequest(http.MethodDelete, "/api/v1/posts/"+post.ID+"/like", s.otherToken, nil)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlersTestSuite) TestCommentLifecycle() {
	post := s.createPost(s.token, "discuss", testLat, testLon)

	w := s.doRequest(http.MethodPost, "/api/v1/posts/"+post.ID+"/comments",
		s.otherToken, gin.H{"text": "welcome!"})
	s.Require().Equal(http.StatusCreated, w.Code)
	var comments []models.Comment
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &comments))
	s.Require().Len(comments, 1)
	s.Equal("Riley", comments[0].AuthorName)

	// The post author may edit someone else's comment.
	w = s.doRequest(http.MethodPut,
		"/api/v1/posts/"+post.ID+"/comments/"+comments[0].ID, s.token,
		gin.H{"text": "moderated"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &comments))
	s.Equal("moderated", comments[0].Text)

	// But only the comment author may delete it.
	w = s.doRequest(http.MethodDelete,
		"/api/v1/posts/"+post.ID+"/comments/"+comments[0].ID, s.token, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.doRequest(http.MethodDelete,
		"/api/v1/posts/"+post.ID+"/comments/"+comments[0].ID, s.otherToken, nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlersTestSuite) TestDeletePostOwnerOnly() {
	post := s.createPost(s.token, "mine", testLat, testLon)

	w := s.doRequest(http.MethodDelete, "/api/v1/posts/"+post.ID, s.otherToken, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.doRequest(http.MethodDelete, "/api/v1/posts/"+post.ID, s.token, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.doRequest(http.MethodGet, "/api/v1/posts/"+post.ID, "", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlersTestSuite) TestGroupCreatorIsMember() {
	w := s.doRequest(http.MethodPost, "/api/v1/groups", s.token,
		gin.H{"name": "Block Watch"})
	s.Require().Equal(http.StatusCreated, w.Code)
	var group models.Group
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &group))
	s.Require().Len(group.Members, 1)
	s.Equal(s.user.ID, group.Members[0].UserID)

	// The creator joining again is a duplicate.
	w = s.doRequest(http.MethodPost, "/api/v1/groups/"+group.ID+"/join", s.token, nil)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlersTestSuite) TestGroupJoinLeave() {
	w := s.doRequest(http.MethodPost, "/api/v1/groups", s.token, gin.H{"name": "Gardeners"})
	s.Require().Equal(http.StatusCreated, w.Code)
	var group models.Group
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &group))

	w = s.doRequest(http.MethodPost, "/api/v1/groups/"+group.ID+"/join", s.otherToken, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.doRequest(http.MethodPost, "/api/v1/groups/"+group.ID+"/join", s.otherToken, nil)
	s.Equal(http.StatusConflict, w.Code)

	w = s.doRequest(http.MethodPost, "/api/v1/groups/"+group.ID+"/leave", s.otherToken, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.doRequest(http.MethodPost, "/api/v1/groups/"+group.ID+"/leave", s.otherToken, nil)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlersTestSuite) TestEventInterestAndAttendance() {
	w := s.doRequest(http.MethodPost, "/api/v1/events", s.token, gin.H{
		"title":     "Street Fair",
		"eventDate": "2026-09-15T10:00:00Z",
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var event models.Event
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &event))

	w = s.doRequest(http.MethodPost, "/api/v1/events/"+event.ID+"/interest", s.otherToken, nil)
	s.Equal(http.StatusOK, w.Code)
	w = s.doRequest(http.MethodPost, "/api/v1/events/"+event.ID+"/interest", s.otherToken, nil)
	s.Equal(http.StatusConflict, w.Code)

	// Attendance is tracked independently of interest.
	w = s.doRequest(http.MethodPost, "/api/v1/events/"+event.ID+"/attend", s.otherToken, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.doRequest(http.MethodDelete, "/api/v1/events/"+event.ID+"/interest", s.otherToken, nil)
	s.Equal(http.StatusOK, w.Code)
	w = s.doRequest(http.MethodDelete, "/api/v1/events/"+event.ID+"/interest", s.otherToken, nil)
	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlersTestSuite) TestServiceRequiresBusinessAccount() {
	w := s.doRequest(http.MethodPost, "/api/v1/services", s.token,
		gin.H{"title": "Dog Walking"})
	s.Equal(http.StatusForbidden, w.Code)

	w = s.doRequest(http.MethodPost, "/api/v1/services", s.otherToken,
		gin.H{"title": "Dog Walking"})
	s.Equal(http.StatusCreated, w.Code)
}

func (s *HandlersTestSuite) TestReviewFlow() {
	w := s.doRequest(http.MethodPost, "/api/v1/users/"+s.other.ID+"/reviews", s.token,
		gin.H{"rating": 5, "text": "great service"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	// One review per reviewer.
	w = s.doRequest(http.MethodPost, "/api/v1/users/"+s.other.ID+"/reviews", s.token,
		gin.H{"rating": 3})
	s.Equal(http.StatusConflict, w.Code)

	// Ratings outside 1..5 are rejected.
	_, thirdToken := s.registerUser("Casey", "casey@example.com", models.UserTypeIndividual)
	w = s.doRequest(http.MethodPost, "/api/v1/users/"+s.other.ID+"/reviews", thirdToken,
		gin.H{"rating": 6})
	s.Equal(http.StatusUnprocessableEntity, w.Code)

	// A business cannot review itself.
	w = s.doRequest(http.MethodPost, "/api/v1/users/"+s.other.ID+"/reviews", s.otherToken,
		gin.H{"rating": 5})
	s.Equal(http.StatusForbidden, w.Code)

	// Individuals cannot be reviewed.
	w = s.doRequest(http.MethodPost, "/api/v1/users/"+s.user.ID+"/reviews", s.otherToken,
		gin.H{"rating": 4})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.doRequest(http.MethodGet, "/api/v1/users/"+s.other.ID+"/reviews", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var resp struct {
		Reviews       []models.Review `json:"reviews"`
		AverageRating float64         `json:"averageRating"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	s.Require().Len(resp.Reviews, 1)
	s.Equal(5.0, resp.AverageRating)
}

func (s *HandlersTestSuite) TestFavoriteAddDuplicateAndRemove() {
	post := s.createPost(s.otherToken, "bookmark me", testLat, testLon)

	w := s.doRequest(http.MethodPost, "/api/v1/profile/favorites", s.token,
		gin.H{"kind": "post", "itemId": post.ID})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.doRequest(http.MethodPost, "/api/v1/profile/favorites", s.token,
		gin.H{"kind": "post", "itemId": post.ID})
	s.Equal(http.StatusConflict, w.Code)

	w = s.doRequest(http.MethodPost, "/api/v1/profile/favorites", s.token,
		gin.H{"kind": "bogus", "itemId": post.ID})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.doRequest(http.MethodDelete, "/api/v1/profile/favorites/"+post.ID, s.token, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.doRequest(http.MethodDelete, "/api/v1/profile/favorites/"+post.ID, s.token, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlersTestSuite) TestFavoriteRemovalIgnoresKind() {
	// The same id saved as a user favorite: removal by item id alone
	// clears it no matter the kind it was saved under.
	w := s.doRequest(http.MethodPost, "/api/v1/profile/favorites", s.token,
		gin.H{"kind": "user", "itemId": s.other.ID})
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.doRequest(http.MethodDelete, "/api/v1/profile/favorites/"+s.other.ID, s.token, nil)
	s.Equal(http.StatusOK, w.Code)

	w = s.doRequest(http.MethodGet, "/api/v1/profile/favorites", s.token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var entries []map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &entries))
	s.Empty(entries)
}

func (s *HandlersTestSuite) TestFavoriteListSkipsDeletedTargets() {
	post := s.createPost(s.otherToken, "doomed", testLat, testLon)

	w := s.doRequest(http.MethodPost, "/api/v1/profile/favorites", s.token,
		gin.H{"kind": "post", "itemId": post.ID})
	s.Require().Equal(http.StatusCreated, w.Code)
	w = s.doRequest(http.MethodPost, "/api/v1/profile/favorites", s.token,
		gin.H{"kind": "user", "itemId": s.other.ID})
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.doRequest(http.MethodDelete, "/api/v1/posts/"+post.ID, s.otherToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.doRequest(http.MethodGet, "/api/v1/profile/favorites", s.token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var entries []map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &entries))
	s.Require().Len(entries, 1)
	s.Equal("user", entries[0]["kind"])
}

func (s *HandlersTestSuite) TestFavoriteUnknownTarget() {
	w := s.doRequest(http.MethodPost, "/api/v1/profile/favorites", s.token,
		gin.H{"kind": "post", "itemId": "00000000-0000-0000-0000-00000000dead"})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlersTestSuite) TestConversationAndMessaging() {
	w := s.doRequest(http.MethodPost, "/api/v1/conversations", s.token,
		gin.H{"userId": s.other.ID})
	s.Require().Equal(http.StatusCreated, w.Code)
	var conv models.Conversation
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &conv))

	// The counterpart starting the same thread gets the existing one.
	w = s.doRequest(http.MethodPost, "/api/v1/conversations", s.otherToken,
		gin.H{"userId": s.user.ID})
	s.Require().Equal(http.StatusOK, w.Code)
	var same models.Conversation
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &same))
	s.Equal(conv.ID, same.ID)

	w = s.doRequest(http.MethodPost, "/api/v1/conversations/"+conv.ID+"/messages",
		s.token, gin.H{"text": "hey!"})
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.doRequest(http.MethodGet, "/api/v1/conversations/"+conv.ID+"/messages",
		s.otherToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var messages []models.Message
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &messages))
	s.Require().Len(messages, 1)
	s.Equal("hey!", messages[0].Text)
	s.True(messages[0].Read)

	// Outsiders cannot read the thread.
	_, thirdToken := s.registerUser("Sam", "sam@example.com", models.UserTypeIndividual)
	w = s.doRequest(http.MethodGet, "/api/v1/conversations/"+conv.ID+"/messages",
		thirdToken, nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlersTestSuite) TestUpdateProfile() {
	w := s.doRequest(http.MethodPut, "/api/v1/profile", s.token, gin.H{
		"bio":       "longtime resident",
		"interests": []string{"gardening", "chess"},
	})
	s.Require().Equal(http.StatusOK, w.Code)
	var user models.User
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &user))
	s.Equal("longtime resident", user.Bio)
	s.Equal(models.StringList{"gardening", "chess"}, user.Interests)
}

func (s *HandlersTestSuite) TestSearchUsers() {
	w := s.doRequest(http.MethodGet, "/api/v1/users?q=riley", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var results []map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &results))
	s.Require().Len(results, 1)
	s.Equal("Riley", results[0]["name"])

	w = s.doRequest(http.MethodGet, "/api/v1/users?q=nobody-here", "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &results))
	s.Empty(results)
}

func (s *HandlersTestSuite) TestListUserPostsHonorsVisibility() {
	s.createPost(s.token, "visible", testLat, testLon)

	w := s.doRequest(http.MethodGet, "/api/v1/posts/user/"+s.user.ID, "", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var posts []models.Post
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &posts))
	s.Len(posts, 1)

	// Hiding posts empties the listing for other viewers but not for
	// the owner.
	var owner models.User
	s.Require().NoError(s.db.First(&owner, "id = ?", s.user.ID).Error)
	owner.PrivacySettings.PostsVisible = false
	s.Require().NoError(s.db.Save(&owner).Error)

	w = s.doRequest(http.MethodGet, "/api/v1/posts/user/"+s.user.ID, s.otherToken, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &posts))
	s.Empty(posts)

	w = s.doRequest(http.MethodGet, "/api/v1/posts/user/"+s.user.ID, s.token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &posts))
	s.Len(posts, 1)
}

func (s *HandlersTestSuite) TestGetUserHiddenProfile() {
	var owner models.User
	s.Require().NoError(s.db.First(&owner, "id = ?", s.user.ID).Error)
	owner.PrivacySettings.ProfileVisible = false
	s.Require().NoError(s.db.Save(&owner).Error)

	// Hidden profiles 404 for strangers, anonymous viewers, and
	// garbage tokens alike; the owner still sees their own account.
	w := s.doRequest(http.MethodGet, "/api/v1/users/"+s.user.ID, s.otherToken, nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.doRequest(http.MethodGet, "/api/v1/users/"+s.user.ID, "", nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.doRequest(http.MethodGet, "/api/v1/users/"+s.user.ID, "not-a-token", nil)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.doRequest(http.MethodGet, "/api/v1/users/"+s.user.ID, s.token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	s.Equal(s.user.Email, body["email"])
}

func (s *HandlersTestSuite) TestDirectMessageUpsertsConversation() {
	w := s.doRequest(http.MethodPost, "/api/v1/messages", s.token,
		gin.H{"userId": s.other.ID, "text": "first"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	// A second direct message reuses the thread.
	w = s.doRequest(http.MethodPost, "/api/v1/messages", s.otherToken,
		gin.H{"userId": s.user.ID, "text": "second"})
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.doRequest(http.MethodGet, "/api/v1/conversations", s.token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var conversations []models.Conversation
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &conversations))
	s.Require().Len(conversations, 1)
	s.Require().NotNil(conversations[0].LastMessage)
	s.Equal("second", conversations[0].LastMessage.Text)
}

func (s *HandlersTestSuite) TestActivityLifecycle() {
	// Individuals cannot log activities.
	w := s.doRequest(http.MethodPost, "/api/v1/activities", s.token,
		gin.H{"description": "mowed a lawn"})
	s.Equal(http.StatusForbidden, w.Code)

	w = s.doRequest(http.MethodPost, "/api/v1/activities", s.otherToken,
		gin.H{"description": "fixed a porch", "clientId": s.user.ID, "serviceType": "carpentry"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var activity models.Activity
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &activity))
	s.Equal(s.other.ID, activity.BusinessID)

	// The client sees it; a stranger asking for someone else's log is
	// refused.
	w = s.doRequest(http.MethodGet, "/api/v1/activities/client/"+s.user.ID, s.token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var activities []models.Activity
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &activities))
	s.Len(activities, 1)

	w = s.doRequest(http.MethodGet, "/api/v1/activities/client/"+s.user.ID, s.otherToken, nil)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlersTestSuite) TestGetMeExpandsFavoritesAndGroups() {
	post := s.createPost(s.otherToken, "saved", testLat, testLon)
	w := s.doRequest(http.MethodPost, "/api/v1/profile/favorites", s.token,
		gin.H{"kind": "post", "itemId": post.ID})
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.doRequest(http.MethodPost, "/api/v1/groups", s.token, gin.H{"name": "Walkers"})
	s.Require().Equal(http.StatusCreated, w.Code)

	w = s.doRequest(http.MethodGet, "/api/v1/profile/me", s.token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var me struct {
		User      models.User              `json:"user"`
		Favorites []map[string]interface{} `json:"favorites"`
		Groups    []models.Group           `json:"groups"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &me))
	s.Equal(s.user.ID, me.User.ID)
	s.Len(me.Favorites, 1)
	s.Len(me.Groups, 1)
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
