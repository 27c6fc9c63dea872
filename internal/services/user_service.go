package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Dias221467/DevConnect/internal/apperrors"
	"github.com/Dias221467/DevConnect/internal/models"
	"github.com/Dias221467/DevConnect/internal/repository"
	"github.com/Dias221467/DevConnect/pkg/validation"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserService encapsulates the business logic for accounts and profiles.
type UserService struct {
	repo       UserStore
	bcryptCost int
}

// NewUserService creates a new instance of UserService.
func NewUserService(repo UserStore) *UserService {
	return &UserService{
		repo:       repo,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// WithBcryptCost overrides the hashing cost; tests use bcrypt.MinCost.
func (s *UserService) WithBcryptCost(cost int) *UserService {
	s.bcryptCost = cost
	return s
}

// RegisterUser validates the signup payload, hashes the password and stores the user.
func (s *UserService) RegisterUser(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if err := validation.Struct(req); err != nil {
		logrus.WithError(err).Warn("Invalid signup data")
		return nil, apperrors.Wrap(apperrors.KindValidation, err.Error(), err)
	}

	_, err := s.repo.GetUserByEmail(ctx, req.Email)
	switch {
	case err == nil:
		logrus.WithField("email", req.Email).Warn("Email already in use")
		return nil, apperrors.ErrEmailTaken
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperrors.Store("find user by email", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, apperrors.Wrap(apperrors.KindValidation, "Enter a strong password", err)
	}

	user := &models.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  string(hashed),
		PhotoURL:  models.DefaultPhotoURL,
		About:     models.DefaultAbout,
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, apperrors.Store("create user", err)
	}

	logrus.WithField("userID", created.ID.Hex()).Info("User registered successfully")
	return created, nil
}

// AuthenticateUser verifies the email and password and returns the user if credentials are valid.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logrus.WithField("email", email).Warn("Login with unknown email")
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.Store("find user by email", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logrus.WithField("userID", user.ID.Hex()).Warn("Invalid credentials")
		return nil, apperrors.ErrInvalidCredentials
	}

	logrus.WithField("userID", user.ID.Hex()).Info("User authenticated successfully")
	return user, nil
}

// GetUser retrieves a user by ID.
func (s *UserService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound.With("userId", id.Hex())
		}
		return nil, apperrors.Store("get user", err)
	}
	return user, nil
}

// UpdateProfile applies an explicit set of profile edits.
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, update *models.ProfileUpdate) (*models.User, error) {
	if update.IsEmpty() {
		return nil, apperrors.ErrInvalidField.With("reason", "no editable fields supplied")
	}
	if err := validation.Struct(update); err != nil {
		return nil, apperrors.Wrap(apperrors.KindValidation, err.Error(), err)
	}

	user, err := s.repo.UpdateProfile(ctx, id, update)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound.With("userId", id.Hex())
		}
		return nil, apperrors.Store("update profile", err)
	}
	return user, nil
}

// ChangePassword replaces the user's password after checking the old one.
func (s *UserService) ChangePassword(ctx context.Context, user *models.User, change *models.PasswordChange) error {
	if change.OldPassword == "" || change.NewPassword == "" || change.ConfirmPassword == "" {
		return apperrors.New(apperrors.KindValidation, "All password fields are required")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(change.OldPassword)); err != nil {
		return apperrors.New(apperrors.KindInvalidCredentials, "Old password is incorrect")
	}
	if change.NewPassword != change.ConfirmPassword {
		return apperrors.New(apperrors.KindValidation, "New passwords do not match")
	}
	if err := validation.Struct(change); err != nil {
		return apperrors.Wrap(apperrors.KindValidation, err.Error(), err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(change.NewPassword), s.bcryptCost)
	if err != nil {
		return apperrors.Wrap(apperrors.KindValidation, "Enter a strong password", err)
	}

	if err := s.repo.UpdatePassword(ctx, user.ID, string(hashed)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrUserNotFound.With("userId", user.ID.Hex())
		}
		return apperrors.Store("update password", err)
	}

	logrus.WithField("userID", user.ID.Hex()).Info("Password updated")
	return nil
}

// UpdateLastActive records that the user just made an authenticated call.
func (s *UserService) UpdateLastActive(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.UpdateLastActive(ctx, id)
}
