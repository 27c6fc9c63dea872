package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type signup struct {
	FirstName string `validate:"required,min=4"`
	Email     string `validate:"required,email"`
	Password  string `validate:"required,strongpassword"`
}

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, IsStrongPassword("Str0ng!Pass"))
	assert.False(t, IsStrongPassword("short1!"))
	assert.False(t, IsStrongPassword("alllowercase1!"))
	assert.False(t, IsStrongPassword("NoDigits!!"))
	assert.False(t, IsStrongPassword("NoSymbols123"))
}

func TestStruct(t *testing.T) {
	assert.NoError(t, Struct(signup{FirstName: "Linus", Email: "linus@example.com", Password: "Str0ng!Pass"}))

	err := Struct(signup{FirstName: "Linus", Email: "not-an-email", Password: "Str0ng!Pass"})
	assert.EqualError(t, err, "Email is not valid")

	err = Struct(signup{FirstName: "Linus", Email: "linus@example.com", Password: "weak"})
	assert.EqualError(t, err, "Enter a strong password")

	err = Struct(signup{Email: "linus@example.com", Password: "Str0ng!Pass"})
	assert.EqualError(t, err, "firstName is required")
}
