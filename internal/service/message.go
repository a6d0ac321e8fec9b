package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/skillswap/skillswap/internal/db"
	"github.com/skillswap/skillswap/internal/model"
	"github.com/skillswap/skillswap/internal/repository"
	"github.com/skillswap/skillswap/internal/validation"
)

var (
	ErrMissingMessageData = errors.New("missing recipient or message body")
	ErrSelfMessage        = errors.New("cannot message self")
	ErrUnknownRecipient   = errors.New("recipient does not exist")
)

type MessageService struct {
	db                     *sqlx.DB
	userRepository         repository.UserRepository
	messageRepository      repository.MessageRepository
	notificationRepository repository.NotificationRepository
	emailService           *EmailService
}

func NewMessageService(
	db *sqlx.DB,
	userRepository repository.UserRepository,
	messageRepository repository.MessageRepository,
	notificationRepository repository.NotificationRepository,
	emailService *EmailService,
) *MessageService {
	return &MessageService{
		db:                     db,
		userRepository:         userRepository,
		messageRepository:      messageRepository,
		notificationRepository: notificationRepository,
		emailService:           emailService,
	}
}

// Send stores an unread message and a notification for the recipient, then
// emails the recipient. A failed email does not fail the send. The body is
// stored as written; a whitespace-only body counts as missing.
func (s *MessageService) Send(ctx context.Context, sender *model.User, recipientID int64, body string) error {
	if sender == nil || recipientID <= 0 || strings.TrimSpace(body) == "" {
		return ErrMissingMessageData
	}
	err := validation.ValidateMessageBody(body)
	if err != nil {
		return invalid(err)
	}
	if recipientID == sender.ID {
		return ErrSelfMessage
	}

	var recipient *model.User
	err = db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		var err error
		recipient, err = s.userRepository.WithTx(tx).ByID(ctx, recipientID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUnknownRecipient
		}
		if err != nil {
			return err
		}

		err = s.messageRepository.WithTx(tx).Create(ctx, &model.Message{
			SenderID:    sender.ID,
			RecipientID: recipientID,
			Body:        body,
		})
		if err != nil {
			return err
		}

		return s.notificationRepository.WithTx(tx).Create(ctx, &model.Notification{
			UserID:  recipientID,
			Message: fmt.Sprintf("You have a new message from %s.", sender.Name),
		})
	})
	if errors.Is(err, ErrUnknownRecipient) {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	if s.emailService != nil {
		err = s.emailService.SendNewMessageEmail(ctx, recipient.Email, recipient.Name, sender.Name, body)
		if err != nil {
			slog.Warn("failed to send new message email", "error", err, "recipient_id", recipientID)
		}
	}
	return nil
}

// Inbox returns the received messages as they were, newest first, and marks
// the returned unread ones as read.
func (s *MessageService) Inbox(ctx context.Context, userID int64) ([]*model.InboxMessage, error) {
	var messages []*model.InboxMessage
	err := db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := s.messageRepository.WithTx(tx)

		var err error
		messages, err = repo.Inbox(ctx, userID)
		if err != nil {
			return err
		}

		ids := make([]int64, len(messages))
		for i, m := range messages {
			ids[i] = m.ID
		}
		_, err = repo.MarkRead(ctx, userID, ids)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load inbox: %w", err)
	}
	return messages, nil
}
