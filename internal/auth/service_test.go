package auth

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	apierrors "github.com/CreativeZee/local-hub-replicator/internal/errors"
	"github.com/CreativeZee/local-hub-replicator/internal/logger"
	"github.com/CreativeZee/local-hub-replicator/internal/models"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *Service
}

func (s *AuthServiceTestSuite) SetupTest() {
	logger.InitializeForTests()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(db.AutoMigrate(&models.User{}))

	s.db = db
	s.service = NewService(db, "test-secret")
}

func (s *AuthServiceTestSuite) TestRegisterIssuesValidToken() {
	user, token, err := s.service.Register(RegisterInput{
		Name:     "Dana",
		Email:    "Dana@Example.com",
		Password: "hunter22",
	})
	s.Require().NoError(err)
	s.NotEmpty(user.ID)
	s.Equal("dana@example.com", user.Email)
	s.Equal(models.UserTypeIndividual, user.UserType)
	s.NotEqual("hunter22", user.Password)

	userID, err := s.service.ValidateToken(token)
	s.Require().NoError(err)
	s.Equal(user.ID, userID)
}

func (s *AuthServiceTestSuite) TestRegisterBusinessAccount() {
	user, _, err := s.service.Register(RegisterInput{
		Name:     "Brew Shop",
		Email:    "shop@example.com",
		Password: "espresso",
		UserType: models.UserTypeBusiness,
	})
	s.Require().NoError(err)
	s.True(user.IsBusiness())
}

func (s *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	_, _, err := s.service.Register(RegisterInput{
		Name: "Dana", Email: "dana@example.com", Password: "hunter22",
	})
	s.Require().NoError(err)

	_, _, err = s.service.Register(RegisterInput{
		Name: "Other", Email: "dana@example.com", Password: "different",
	})
	s.Require().Error(err)
	apiErr, ok := err.(*apierrors.APIError)
	s.Require().True(ok)
	s.Equal(apierrors.ErrConflict, apiErr.Code)
}

func (s *AuthServiceTestSuite) TestRegisterValidation() {
	_, _, err := s.service.Register(RegisterInput{Email: "x@example.com", Password: "hunter22"})
	s.Error(err)

	_, _, err = s.service.Register(RegisterInput{Name: "Dana", Email: "not-an-email", Password: "hunter22"})
	s.Error(err)

	_, _, err = s.service.Register(RegisterInput{Name: "Dana", Email: "x@example.com", Password: "short"})
	s.Error(err)
}

func (s *AuthServiceTestSuite) TestLogin() {
	_, _, err := s.service.Register(RegisterInput{
		Name: "Dana", Email: "dana@example.com", Password: "hunter22",
	})
	s.Require().NoError(err)

	user, token, err := s.service.Login("dana@example.com", "hunter22")
	s.Require().NoError(err)
	s.NotEmpty(token)
	s.Equal("dana@example.com", user.Email)

	_, _, err = s.service.Login("dana@example.com", "wrong")
	s.Error(err)

	_, _, err = s.service.Login("nobody@example.com", "hunter22")
	s.Error(err)
}

func (s *AuthServiceTestSuite) TestValidateTokenRejectsGarbage() {
	_, err := s.service.ValidateToken("not-a-token")
	s.Error(err)

	other := NewService(s.db, "different-secret")
	_, token, err := other.Register(RegisterInput{
		Name: "Eve", Email: "eve@example.com", Password: "password",
	})
	s.Require().NoError(err)

	_, err = s.service.ValidateToken(token)
	s.Error(err)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
