package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/skillswap/skillswap/internal/model"
)

type MessageRepository interface {
	Create(ctx context.Context, msg *model.Message) error
	Inbox(ctx context.Context, recipientID int64) ([]*model.InboxMessage, error)
	MarkRead(ctx context.Context, recipientID int64, ids []int64) (int64, error)
	WithTx(tx *sqlx.Tx) MessageRepository
}

type messageRepository struct {
	db sqlx.ExtContext
}

func NewMessageRepository(db sqlx.ExtContext) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) WithTx(tx *sqlx.Tx) MessageRepository {
	return &messageRepository{db: tx}
}

// Create stores the message as unread.
func (r *messageRepository) Create(ctx context.Context, msg *model.Message) error {
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now().UTC()
	}
	msg.IsRead = false

	query := r.db.Rebind(`INSERT INTO messages (sender_id, recipient_id, message_body, is_read, created_at)
		VALUES (?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query, msg.SenderID, msg.RecipientID, msg.Body, false, msg.CreatedAt)
	return err
}

func (r *messageRepository) Inbox(ctx context.Context, recipientID int64) ([]*model.InboxMessage, error) {
	query := r.db.Rebind(`
		SELECT m.id, m.sender_id, m.recipient_id, m.message_body, m.is_read, m.created_at, u.name AS sender_name
		FROM messages m
		JOIN users u ON u.id = m.sender_id
		WHERE m.recipient_id = ?
		ORDER BY m.created_at DESC, m.id DESC`)

	messages := []*model.InboxMessage{}
	err := sqlx.SelectContext(ctx, r.db, &messages, query, recipientID)
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkRead flips the listed unread messages to read. Messages that arrived
// after the caller listed the inbox keep their unread flag. Read messages are
// never flipped back.
func (r *messageRepository) MarkRead(ctx context.Context, recipientID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(`UPDATE messages SET is_read = ? WHERE recipient_id = ? AND is_read = ? AND id IN (?)`,
		true, recipientID, false, ids)
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
