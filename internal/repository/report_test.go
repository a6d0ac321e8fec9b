package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/skillswap/internal/model"
	"github.com/skillswap/skillswap/internal/repository"
)

func TestMutualMessagesCountsBothDirectionsOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.addUser(t, "alice", "", "", day1)
	b := f.addUser(t, "bob", "", "", day1)
	c := f.addUser(t, "carol", "", "", day1)
	messages := repository.NewMessageRepository(f.db)

	send := func(from, to *model.User, times int) {
		for i := 0; i < times; i++ {
			require.NoError(t, messages.Create(ctx, &model.Message{SenderID: from.ID, RecipientID: to.ID, Body: "hi"}))
		}
	}
	send(a, b, 3)
	send(b, a, 2)
	send(c, a, 4) // one direction only

	pairs, err := repository.NewReportRepository(f.db).MutualMessages(ctx)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, model.MutualPair{
		User1ID:      a.ID,
		User1Name:    "alice",
		User2ID:      b.ID,
		User2Name:    "bob",
		MessageCount: 5,
	}, *pairs[0])
}

func TestMutualMessagesLowerIDFirstRegardlessOfWhoStarted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.addUser(t, "alice", "", "", day1)
	b := f.addUser(t, "bob", "", "", day1)
	messages := repository.NewMessageRepository(f.db)

	require.NoError(t, messages.Create(ctx, &model.Message{SenderID: b.ID, RecipientID: a.ID, Body: "first"}))
	require.NoError(t, messages.Create(ctx, &model.Message{SenderID: a.ID, RecipientID: b.ID, Body: "reply"}))

	pairs, err := repository.NewReportRepository(f.db).MutualMessages(ctx)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	assert.Equal(t, a.ID, pairs[0].User1ID)
	assert.Equal(t, 2, pairs[0].MessageCount)
}

func TestDetailedUsersAboveSameDayAverage(t *testing.T) {
	f := newFixture(t)
	day2 := day1.AddDate(0, 0, 1)

	// Day 1 average length is 6: only "long" (10) is above it.
	f.addUser(t, "short", "ab", "", day1)
	f.addUser(t, "mid", "abcdef", "", day1.Add(3*time.Hour))
	f.addUser(t, "long", "abcdefghij", "", day1.Add(5*time.Hour))
	// Day 2 has a single user, who can never exceed their own average.
	f.addUser(t, "solo", "abcdefghijklmnopqrstuvwxyz", "", day2)

	rows, err := repository.NewReportRepository(f.db).DetailedUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "long", rows[0].Name)
	assert.Equal(t, 10, rows[0].SkillLength)
	assert.Equal(t, "2024-03-01", rows[0].RegistrationDay)
}
