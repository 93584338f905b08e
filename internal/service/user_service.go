package service

import (
	"errors"
	"strings"

	"Yatube/internal/model"
	"Yatube/internal/pkg"
	"Yatube/internal/repository/mysql"
	"Yatube/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrBadCredentials = errors.New("invalid username or password")
)

// UserService is the in-repo edition of the identity boundary: signup,
// cookie-session login and logout.
type UserService struct {
	repo     *mysql.UserRepository
	sessions *redis.SessionRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{
		repo:     &mysql.UserRepository{DB: db},
		sessions: &redis.SessionRepository{},
	}
}

func (s *UserService) Signup(username, email, password string) error {
	verr := &ValidationError{}
	if strings.TrimSpace(username) == "" {
		verr.Add("username", "username is required")
	}
	if strings.TrimSpace(email) == "" {
		verr.Add("email", "email is required")
	}
	if password == "" {
		verr.Add("password", "password is required")
	}
	if len(verr.Fields) > 0 {
		return verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.repo.Create(&model.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	})
}

// Login checks credentials and issues the session token. When Redis is
// up, the token is mirrored there so a later login elsewhere revokes
// this one.
func (s *UserService) Login(username, password string) (string, *model.User, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrBadCredentials
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, ErrBadCredentials
	}
	token, err := pkg.GenerateToken(user.ID, user.Username)
	if err != nil {
		return "", nil, err
	}
	if redis.Client != nil {
		if err := s.sessions.AddToken(user.ID, token); err != nil {
			return "", nil, err
		}
	}
	return token, user, nil
}

func (s *UserService) Logout(userID uint64) error {
	if redis.Client == nil {
		return nil
	}
	return s.sessions.DeleteToken(userID)
}
