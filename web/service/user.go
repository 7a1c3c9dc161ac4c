package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/quillblog/quill/database"
	"github.com/quillblog/quill/database/model"
	"github.com/quillblog/quill/logger"
	"github.com/quillblog/quill/util/crypto"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService is the credential store: it registers accounts and checks
// login attempts.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// Register hashes password and stores a new user. A taken email is
// ErrDuplicateEmail; a password bcrypt cannot hash is ErrPasswordTooLong.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" {
		return nil, ErrEmptyField
	}
	if len(password) > crypto.MaxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	hashedPassword, err := crypto.HashPasswordAsBcrypt(password)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return nil, ErrPasswordTooLong
	} else if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:     name,
		Email:    email,
		Password: hashedPassword,
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Verify returns the user owning email when password matches, and nil
// otherwise. An unknown email still pays for one bcrypt comparison so the
// two failures look alike to the caller.
func (s *UserService) Verify(ctx context.Context, email string, password string) *model.User {
	user := &model.User{}
	err := s.db.WithContext(ctx).Model(model.User{}).
		Where("email = ?", strings.TrimSpace(email)).
		First(user).
		Error
	if err != nil {
		if !database.IsNotFound(err) {
			logger.Warning("check user err:", err)
		}
		crypto.BurnPasswordCheck(password)
		return nil
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil
	}
	return user
}

func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	user := &model.User{}
	err := s.db.WithContext(ctx).First(user, id).Error
	if database.IsNotFound(err) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

// List returns every user in registration order.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := s.db.WithContext(ctx).Order("id asc").Find(&users).Error
	return users, err
}
