package service

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/skillswap/skillswap/internal/db"
	"github.com/skillswap/skillswap/internal/model"
	"github.com/skillswap/skillswap/internal/repository"
)

type NotificationService struct {
	db                     *sqlx.DB
	notificationRepository repository.NotificationRepository
}

func NewNotificationService(db *sqlx.DB, notificationRepository repository.NotificationRepository) *NotificationService {
	return &NotificationService{
		db:                     db,
		notificationRepository: notificationRepository,
	}
}

// Feed returns the user's notifications newest first with their read flags
// as they were before this call, then marks the returned ones read.
func (s *NotificationService) Feed(ctx context.Context, userID int64) ([]*model.Notification, error) {
	var feed []*model.Notification
	err := db.WithTx(ctx, s.db, func(tx *sqlx.Tx) error {
		repo := s.notificationRepository.WithTx(tx)

		var err error
		feed, err = repo.ByUser(ctx, userID)
		if err != nil {
			return err
		}

		ids := make([]int64, len(feed))
		for i, n := range feed {
			ids[i] = n.ID
		}
		_, err = repo.MarkRead(ctx, userID, ids)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}
	return feed, nil
}
