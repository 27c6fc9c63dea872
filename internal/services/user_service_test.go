package services

import (
	"context"
	"testing"

	"github.com/Dias221467/DevConnect/internal/apperrors"
	"github.com/Dias221467/DevConnect/internal/models"
	"github.com/Dias221467/DevConnect/internal/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUserService() (*UserService, *storetest.UserStore) {
	store := storetest.NewUserStore()
	return NewUserService(store).WithBcryptCost(bcrypt.MinCost), store
}

func validSignup() *models.SignupRequest {
	return &models.SignupRequest{
		FirstName: "Grace",
		LastName:  "Hopper",
		Email:     "Grace@Example.com ",
		Password:  "Str0ng!Pass",
	}
}

func TestRegisterUser(t *testing.T) {
	svc, _ := newUserService()

	user, err := svc.RegisterUser(context.Background(), validSignup())
	require.NoError(t, err)

	assert.False(t, user.ID.IsZero())
	assert.Equal(t, "grace@example.com", user.Email)
	assert.NotEqual(t, "Str0ng!Pass", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("Str0ng!Pass")))
	assert.Equal(t, models.DefaultPhotoURL, user.PhotoURL)
	assert.Equal(t, models.DefaultAbout, user.About)
}

func TestRegisterUser_DuplicateEmail(t *testing.T) {
	svc, _ := newUserService()
	_, err := svc.RegisterUser(context.Background(), validSignup())
	require.NoError(t, err)

	_, err = svc.RegisterUser(context.Background(), validSignup())
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
}

func TestRegisterUser_Validation(t *testing.T) {
	svc, _ := newUserService()

	weak := validSignup()
	weak.Password = "password"
	_, err := svc.RegisterUser(context.Background(), weak)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	short := validSignup()
	short.FirstName = "Al"
	_, err = svc.RegisterUser(context.Background(), short)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestAuthenticateUser(t *testing.T) {
	svc, _ := newUserService()
	created, err := svc.RegisterUser(context.Background(), validSignup())
	require.NoError(t, err)

	user, err := svc.AuthenticateUser(context.Background(), "GRACE@example.com", "Str0ng!Pass")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.AuthenticateUser(context.Background(), "grace@example.com", "wrong")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.AuthenticateUser(context.Background(), "nobody@example.com", "Str0ng!Pass")
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestUpdateProfile(t *testing.T) {
	svc, store := newUserService()
	user := store.Add("Linus")

	about := "Kernel hacker"
	age := 30
	updated, err := svc.UpdateProfile(context.Background(), user.ID, &models.ProfileUpdate{About: &about, Age: &age})
	require.NoError(t, err)
	assert.Equal(t, "Kernel hacker", updated.About)
	assert.Equal(t, 30, updated.Age)
	assert.Equal(t, "Linus", updated.FirstName)

	_, err = svc.UpdateProfile(context.Background(), user.ID, &models.ProfileUpdate{})
	assert.ErrorIs(t, err, apperrors.ErrInvalidField)

	young := 12
	_, err = svc.UpdateProfile(context.Background(), user.ID, &models.ProfileUpdate{Age: &young})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	gender := "robot"
	_, err = svc.UpdateProfile(context.Background(), user.ID, &models.ProfileUpdate{Gender: &gender})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestChangePassword(t *testing.T) {
	svc, _ := newUserService()
	user, err := svc.RegisterUser(context.Background(), validSignup())
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), user, &models.PasswordChange{
		OldPassword: "wrong", NewPassword: "N3w!Password", ConfirmPassword: "N3w!Password",
	})
	assert.Equal(t, apperrors.KindInvalidCredentials, apperrors.KindOf(err))

	err = svc.ChangePassword(context.Background(), user, &models.PasswordChange{
		OldPassword: "Str0ng!Pass", NewPassword: "N3w!Password", ConfirmPassword: "Different1!",
	})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	err = svc.ChangePassword(context.Background(), user, &models.PasswordChange{
		OldPassword: "Str0ng!Pass", NewPassword: "N3w!Password", ConfirmPassword: "N3w!Password",
	})
	require.NoError(t, err)

	_, err = svc.AuthenticateUser(context.Background(), "grace@example.com", "N3w!Password")
	assert.NoError(t, err)
}
