package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/skillswap/internal/db/dbtest"
	"github.com/skillswap/skillswap/internal/model"
	"github.com/skillswap/skillswap/internal/repository"
)

type fixture struct {
	db    *sqlx.DB
	users repository.UserRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := dbtest.New(t)
	return &fixture{db: database, users: repository.NewUserRepository(database)}
}

// addUser inserts a user and returns it with its generated id.
func (f *fixture) addUser(t *testing.T, name, skills, purpose string, registered time.Time) *model.User {
	t.Helper()
	ctx := context.Background()
	email := name + "@example.com"

	err := f.users.Create(ctx, &model.User{
		Name:             name,
		Skills:           skills,
		Purpose:          purpose,
		Email:            email,
		PasswordHash:     "hash",
		RegistrationDate: registered,
	})
	require.NoError(t, err)

	user, err := f.users.ByEmail(ctx, email)
	require.NoError(t, err)
	return user
}

func names(users []*model.UserSummary) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.Name
	}
	return out
}

var day1 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
