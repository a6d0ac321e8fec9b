package model

import "time"

type Message struct {
	ID          int64     `db:"id"`
	SenderID    int64     `db:"sender_id"`
	RecipientID int64     `db:"recipient_id"`
	Body        string    `db:"message_body"`
	IsRead      bool      `db:"is_read"`
	CreatedAt   time.Time `db:"created_at"`
}

// InboxMessage is a received message joined with its sender's name.
type InboxMessage struct {
	Message
	SenderName string `db:"sender_name"`
}
