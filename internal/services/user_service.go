package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/helpers"
	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

type UserService struct {
	userRepo  models.UserRepo
	jwtSecret string
}

func NewUserService(userRepo models.UserRepo, jwtSecret string) *UserService {
	return &UserService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

// Register creates an account and returns the profile with a fresh session
// token. Username and email are case-folded before the uniqueness check.
func (us *UserService) Register(ctx context.Context, username, email, password string, avatar *models.Image) (*models.Profile, string, error) {
	user := &models.User{
		Username:       strings.ToLower(strings.TrimSpace(username)),
		Email:          strings.ToLower(strings.TrimSpace(email)),
		Password:       password,
		ProfilePicture: avatar,
	}
	if err := models.Validate.Struct(user); err != nil {
		return nil, "", fmt.Errorf("invalid registration data: %w", err)
	}
	if !helpers.IsPasswordStrong(password) {
		return nil, "", fmt.Errorf("%w: password must be at least 8 characters with upper and lower case letters, a digit and a special character", models.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hash)

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	created, err := us.userRepo.CreateUser(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := helpers.GenerateToken(us.jwtSecret, created)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}
	return created.ToProfile(), token, nil
}

// Authenticate verifies credentials against the stored hash and issues a
// token. The identifier may be either the email or the username.
func (us *UserService) Authenticate(ctx context.Context, emailOrUsername, password string) (*models.Profile, string, error) {
	if strings.TrimSpace(emailOrUsername) == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email/username and password are required", models.ErrValidation)
	}

	user, err := us.userRepo.GetUserByIdentifier(ctx, emailOrUsername)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, "", models.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", models.ErrInvalidCredentials
	}

	token, err := helpers.GenerateToken(us.jwtSecret, user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}
	return user.ToProfile(), token, nil
}

func (us *UserService) GetProfile(ctx context.Context, id primitive.ObjectID) (*models.Profile, error) {
	user, err := us.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.ToProfile(), nil
}

func (us *UserService) GetProfilePicture(ctx context.Context, id primitive.ObjectID) (*models.Image, error) {
	return us.userRepo.GetProfilePicture(ctx, id)
}

func (us *UserService) UpdateProfilePicture(ctx context.Context, id primitive.ObjectID, image *models.Image) error {
	if image == nil || len(image.Data) == 0 {
		return fmt.Errorf("%w: no image provided", models.ErrValidation)
	}
	return us.userRepo.UpdateProfilePicture(ctx, id, image)
}

func (us *UserService) DeleteProfilePicture(ctx context.Context, id primitive.ObjectID) error {
	return us.userRepo.DeleteProfilePicture(ctx, id)
}
