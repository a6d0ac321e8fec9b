package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/skillswap/internal/service"
)

func TestSendMessage(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ada := e.register(t, "ada")
	bob := e.register(t, "bob")

	err := e.messaging.Send(ctx, ada, bob.ID, "  want to jam?  ")
	require.NoError(t, err)

	inbox, err := e.messages.Inbox(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "  want to jam?  ", inbox[0].Body)
	assert.Equal(t, "ada", inbox[0].SenderName)
	assert.False(t, inbox[0].IsRead)

	feed, err := e.notifications.ByUser(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Contains(t, feed[0].Message, "new message from ada")
}

func TestSendMessageRejections(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ada := e.register(t, "ada")
	bob := e.register(t, "bob")

	assert.ErrorIs(t, e.messaging.Send(ctx, ada, 0, "hi"), service.ErrMissingMessageData)
	assert.ErrorIs(t, e.messaging.Send(ctx, ada, bob.ID, "   "), service.ErrMissingMessageData)
	assert.ErrorIs(t, e.messaging.Send(ctx, nil, bob.ID, "hi"), service.ErrMissingMessageData)
	assert.ErrorIs(t, e.messaging.Send(ctx, ada, ada.ID, "hi"), service.ErrSelfMessage)
	assert.ErrorIs(t, e.messaging.Send(ctx, ada, bob.ID+100, "hi"), service.ErrUnknownRecipient)

	var verr *service.ValidationError
	err := e.messaging.Send(ctx, ada, bob.ID, strings.Repeat("a", 2001))
	assert.True(t, errors.As(err, &verr))

	inbox, err := e.messages.Inbox(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, inbox)
}

func TestSendMessageTwiceStoresTwoMessages(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ada := e.register(t, "ada")
	bob := e.register(t, "bob")

	require.NoError(t, e.messaging.Send(ctx, ada, bob.ID, "hello"))
	require.NoError(t, e.messaging.Send(ctx, ada, bob.ID, "hello"))

	assert.Equal(t, 2, e.count(t, "messages"))
}

func TestInboxMarksRead(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ada := e.register(t, "ada")
	bob := e.register(t, "bob")
	require.NoError(t, e.messaging.Send(ctx, ada, bob.ID, "first"))

	inbox, err := e.messaging.Inbox(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.False(t, inbox[0].IsRead, "returned as it was before reading")

	inbox, err = e.messaging.Inbox(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.True(t, inbox[0].IsRead)
}
