package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/skillswap/skillswap/internal/model"
)

type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	ByUser(ctx context.Context, userID int64) ([]*model.Notification, error)
	MarkRead(ctx context.Context, userID int64, ids []int64) (int64, error)
	WithTx(tx *sqlx.Tx) NotificationRepository
}

type notificationRepository struct {
	db sqlx.ExtContext
}

func NewNotificationRepository(db sqlx.ExtContext) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) WithTx(tx *sqlx.Tx) NotificationRepository {
	return &notificationRepository{db: tx}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	n.IsRead = false

	query := r.db.Rebind(`INSERT INTO notifications (user_id, message, created_at, is_read) VALUES (?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query, n.UserID, n.Message, n.CreatedAt, false)
	return err
}

func (r *notificationRepository) ByUser(ctx context.Context, userID int64) ([]*model.Notification, error) {
	query := r.db.Rebind(`SELECT id, user_id, message, created_at, is_read
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC`)

	notifications := []*model.Notification{}
	err := sqlx.SelectContext(ctx, r.db, &notifications, query, userID)
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead flips the listed notifications to read, leaving any created since
// the listing untouched.
func (r *notificationRepository) MarkRead(ctx context.Context, userID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := sqlx.In(`UPDATE notifications SET is_read = ? WHERE user_id = ? AND is_read = ? AND id IN (?)`,
		true, userID, false, ids)
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
