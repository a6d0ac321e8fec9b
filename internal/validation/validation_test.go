package validation_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/skillswap/internal/validation"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     error
	}{
		{"valid", "tangerine-kite", nil},
		{"too short", "short1", validation.ErrPasswordTooShort},
		{"too long", strings.Repeat("x", 73), validation.ErrPasswordTooLong},
		{"common", "MyPassword99", validation.ErrPasswordCommon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validation.ValidatePassword(tt.password))
		})
	}
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, validation.ValidateEmail("ada@example.com"))
	assert.Error(t, validation.ValidateEmail(""))
	assert.Error(t, validation.ValidateEmail("not-an-email"))
	assert.Error(t, validation.ValidateEmail("Ada <ada@example.com>"))
	assert.Error(t, validation.ValidateEmail(strings.Repeat("a", 250)+"@x.io"))
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ada@example.com", validation.NormalizeEmail("  Ada@Example.COM "))
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, validation.ValidateName("Ada"))
	assert.Error(t, validation.ValidateName("   "))
	assert.NoError(t, validation.ValidateName(strings.Repeat("é", 100)))
	assert.ErrorIs(t, validation.ValidateName(strings.Repeat("a", 101)), validation.ErrNameTooLong)
	assert.ErrorIs(t, validation.ValidateName("Ada\x00"), validation.ErrNameInvalid)
}

func TestParseDOBAndAge(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	dob, err := validation.ParseDOB("2000-06-16", now)
	require.NoError(t, err)
	require.NotNil(t, dob)

	age, err := validation.ParseAge("", dob, now)
	require.NoError(t, err)
	require.NotNil(t, age)
	assert.Equal(t, 23, *age)

	age, err = validation.ParseAge("30", dob, now)
	require.NoError(t, err)
	assert.Equal(t, 30, *age)

	dob, err = validation.ParseDOB("", now)
	require.NoError(t, err)
	assert.Nil(t, dob)

	age, err = validation.ParseAge("", nil, now)
	require.NoError(t, err)
	assert.Nil(t, age)

	_, err = validation.ParseDOB("15/06/2000", now)
	assert.Error(t, err)
	_, err = validation.ParseDOB("2030-01-01", now)
	assert.Error(t, err)
	_, err = validation.ParseAge("-1", nil, now)
	assert.Error(t, err)
}

func TestValidatePictureURL(t *testing.T) {
	assert.NoError(t, validation.ValidatePictureURL(""))
	assert.NoError(t, validation.ValidatePictureURL("https://cdn.example.com/a.png"))
	assert.Error(t, validation.ValidatePictureURL("javascript:alert(1)"))
	assert.Error(t, validation.ValidatePictureURL("/relative.png"))
}

func TestValidateContact(t *testing.T) {
	assert.NoError(t, validation.ValidateContact(""))
	assert.NoError(t, validation.ValidateContact(strings.Repeat("é", validation.MaxContactLength)))
	assert.NoError(t, validation.ValidateContact("  "+strings.Repeat("a", validation.MaxContactLength)+"  "))
	assert.ErrorIs(t, validation.ValidateContact(strings.Repeat("a", validation.MaxContactLength+1)), validation.ErrContactTooLong)
}

func TestValidateMessageBody(t *testing.T) {
	assert.NoError(t, validation.ValidateMessageBody("hello"))
	assert.NoError(t, validation.ValidateMessageBody(strings.Repeat("é", validation.MaxMessageLength)))
	assert.ErrorIs(t, validation.ValidateMessageBody(strings.Repeat("a", validation.MaxMessageLength+1)), validation.ErrMessageTooLong)
}

func TestValidateProjectRequest(t *testing.T) {
	assert.NoError(t, validation.ValidateProjectRequest("Band", "Need a drummer", "drums"))
	assert.Error(t, validation.ValidateProjectRequest("", "Need a drummer", "drums"))
	assert.Error(t, validation.ValidateProjectRequest("Band", " ", "drums"))
	assert.Error(t, validation.ValidateProjectRequest("Band", "Need a drummer", ""))
	assert.Error(t, validation.ValidateProjectRequest(strings.Repeat("t", 201), "d", "s"))
}
