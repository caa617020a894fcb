package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/CreativeZee/local-hub-replicator/internal/logger"
	"github.com/CreativeZee/local-hub-replicator/internal/models"
)

// Options controls how much data Run generates.
type Options struct {
	Users        int
	PostsPerUser int
	Events       int
	Groups       int
	Items        int

	// CenterLat and CenterLon anchor the generated locations so the
	// data lands inside one browsable neighborhood.
	CenterLat float64
	CenterLon float64
}

// DefaultOptions seeds a modest neighborhood around downtown Seattle.
func DefaultOptions() Options {
	return Options{
		Users:        25,
		PostsPerUser: 4,
		Events:       10,
		Groups:       6,
		Items:        20,
		CenterLat:    47.6062,
		CenterLon:    -122.3321,
	}
}

// Run populates the database with realistic fake data for local
// development. All seeded accounts share the password "password123".
func Run(db *gorm.DB, opts Options) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := make([]models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		userType := models.UserTypeIndividual
		if i%5 == 0 {
			userType = models.UserTypeBusiness
		}
		user := models.User{
			Name:                 gofakeit.Name(),
			Email:                fmt.Sprintf("seed%d@%s", i, gofakeit.DomainName()),
			Password:             string(hashed),
			Phone:                gofakeit.Phone(),
			Bio:                  gofakeit.Sentence(10),
			UserType:             userType,
			Location:             randomPoint(opts),
			Interests:            models.StringList{gofakeit.Hobby(), gofakeit.Hobby()},
			NotificationSettings: models.DefaultNotificationSettings(),
			PrivacySettings:      models.DefaultPrivacySettings(),
			FeedPreferences:      models.DefaultFeedPreferences(),
		}
		if userType == models.UserTypeBusiness {
			user.BusinessName = gofakeit.Company()
			user.BusinessCategory = gofakeit.BuzzWord()
			user.BusinessDescription = gofakeit.Sentence(15)
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		users = append(users, user)
	}

	for _, u := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			post := models.Post{
				UserID:       u.ID,
				Text:         gofakeit.Sentence(12),
				AuthorName:   u.Name,
				AuthorAvatar: u.Avatar,
				Location:     randomPoint(opts),
			}
			if err := db.Create(&post).Error; err != nil {
				return err
			}
		}
	}

	for i := 0; i < opts.Events; i++ {
		organizer := users[rand.Intn(len(users))]
		event := models.Event{
			UserID:      organizer.ID,
			Title:       gofakeit.Sentence(4),
			Description: gofakeit.Sentence(20),
			Category:    gofakeit.Hobby(),
			EventDate:   time.Now().AddDate(0, 0, rand.Intn(30)+1),
			Location:    randomPoint(opts),
		}
		if err := db.Create(&event).Error; err != nil {
			return err
		}
	}

	for i := 0; i < opts.Groups; i++ {
		creator := users[rand.Intn(len(users))]
		group := models.Group{
			UserID:      creator.ID,
			Name:        gofakeit.Sentence(3),
			Description: gofakeit.Sentence(15),
			Category:    gofakeit.Hobby(),
			Location:    randomPoint(opts),
			Members:     []models.GroupMember{{UserID: creator.ID}},
		}
		if err := db.Create(&group).Error; err != nil {
			return err
		}
	}

	for i := 0; i < opts.Items; i++ {
		seller := users[rand.Intn(len(users))]
		item := models.MarketplaceItem{
			UserID:      seller.ID,
			Title:       gofakeit.ProductName(),
			Description: gofakeit.Sentence(15),
			Price:       gofakeit.Price(5, 500),
			Category:    gofakeit.ProductCategory(),
			Condition:   gofakeit.RandomString([]string{"new", "like new", "good", "fair"}),
			Location:    randomPoint(opts),
		}
		if err := db.Create(&item).Error; err != nil {
			return err
		}
	}

	logger.SugaredLog.Infof("seeded %d users, %d posts, %d events, %d groups, %d items",
		len(users), len(users)*opts.PostsPerUser, opts.Events, opts.Groups, opts.Items)
	return nil
}

// randomPoint scatters locations within roughly 8km of the center so
// most seeded content falls inside the browse radius.
func randomPoint(opts Options) models.GeoPoint {
	lat := opts.CenterLat + (rand.Float64()-0.5)*0.14
	lon := opts.CenterLon + (rand.Float64()-0.5)*0.14
	return models.NewGeoPoint(lat, lon, gofakeit.Street())
}
