package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/CreativeZee/local-hub-replicator/internal/logger"
	"github.com/CreativeZee/local-hub-replicator/internal/models"
)

// Downtown Seattle; offsets below are in degrees of latitude, where
// 0.01 is roughly 1.1km.
const (
	centerLat = 47.6062
	centerLon = -122.3321
)

type GeoFeedTestSuite struct {
	suite.Suite
	db *gorm.DB
}

func (s *GeoFeedTestSuite) SetupTest() {
	logger.InitializeForTests()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(&models.User{}, &models.Post{}, &models.PostLike{}, &models.Comment{}))
	s.db = db
}

func (s *GeoFeedTestSuite) createPost(text string, lat, lon float64, age time.Duration) models.Post {
	post := models.Post{
		UserID:   "00000000-0000-0000-0000-000000000001",
		Text:     text,
		Location: models.NewGeoPoint(lat, lon, ""),
	}
	s.Require().NoError(s.db.Create(&post).Error)
	s.Require().NoError(s.db.Model(&post).Update("created_at", time.Now().Add(-age)).Error)
	return post
}

func (s *GeoFeedTestSuite) createPostNoLocation(text string) models.Post {
	post := models.Post{
		UserID: "00000000-0000-0000-0000-000000000001",
		Text:   text,
	}
	s.Require().NoError(s.db.Create(&post).Error)
	return post
}

func (s *GeoFeedTestSuite) listPosts(q GeoQuery) []models.Post {
	posts, err := ListNearby(s.db, q, func(p *models.Post) models.GeoPoint {
		return p.Location
	})
	s.Require().NoError(err)
	return posts
}

func (s *GeoFeedTestSuite) TestNearbyFiltersByRadius() {
	s.createPost("close", centerLat+0.01, centerLon, time.Hour)
	s.createPost("far", centerLat+0.5, centerLon, time.Hour)

	posts := s.listPosts(NewGeoQuery(centerLat, centerLon, true, "posts"))
	s.Require().Len(posts, 1)
	s.Equal("close", posts[0].Text)
}

func (s *GeoFeedTestSuite) TestNearbyOrdersByDistance() {
	s.createPost("middle", centerLat+0.04, centerLon, time.Hour)
	s.createPost("closest", centerLat+0.005, centerLon, 3*time.Hour)
	s.createPost("edge", centerLat+0.08, centerLon, time.Minute)

	posts := s.listPosts(NewGeoQuery(centerLat, centerLon, true, "posts"))
	s.Require().Len(posts, 3)
	s.Equal("closest", posts[0].Text)
	s.Equal("middle", posts[1].Text)
	s.Equal("edge", posts[2].Text)
}

func (s *GeoFeedTestSuite) TestNearbyExcludesUnlocatedRows() {
	s.createPost("located", centerLat, centerLon, time.Hour)
	s.createPostNoLocation("unlocated")

	posts := s.listPosts(NewGeoQuery(centerLat, centerLon, true, "posts"))
	s.Require().Len(posts, 1)
	s.Equal("located", posts[0].Text)
}

func (s *GeoFeedTestSuite) TestRecencyFallbackIncludesEverything() {
	s.createPost("older", centerLat, centerLon, 2*time.Hour)
	s.createPost("far away", centerLat+2, centerLon, time.Hour)
	s.createPostNoLocation("unlocated")

	posts := s.listPosts(NewGeoQuery(0, 0, false, "posts"))
	s.Require().Len(posts, 3)
	s.Equal("unlocated", posts[0].Text)
	s.Equal("far away", posts[1].Text)
	s.Equal("older", posts[2].Text)
}

func (s *GeoFeedTestSuite) TestRecencyFallbackIsUncapped() {
	for i := 0; i < 120; i++ {
		s.createPostNoLocation("p")
	}

	posts := s.listPosts(NewGeoQuery(0, 0, false, "posts"))
	s.Len(posts, 120)
}

func (s *GeoFeedTestSuite) TestLimitApplies() {
	for i := 0; i < 5; i++ {
		s.createPost("p", centerLat+float64(i)*0.001, centerLon, time.Duration(i)*time.Minute)
	}

	q := NewGeoQuery(centerLat, centerLon, true, "posts")
	q.Limit = 3
	posts := s.listPosts(q)
	s.Len(posts, 3)
}

func TestGeoFeedTestSuite(t *testing.T) {
	suite.Run(t, new(GeoFeedTestSuite))
}
