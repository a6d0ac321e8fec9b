package service_test

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/skillswap/skillswap/internal/db/dbtest"
	"github.com/skillswap/skillswap/internal/model"
	"github.com/skillswap/skillswap/internal/repository"
	"github.com/skillswap/skillswap/internal/service"
)

type env struct {
	db            *sqlx.DB
	users         repository.UserRepository
	messages      repository.MessageRepository
	notifications repository.NotificationRepository
	requests      repository.ProjectRequestRepository
	auth          *service.AuthService
	messaging     *service.MessageService
	feed          *service.NotificationService
	collaboration *service.CollaborationService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	database := dbtest.New(t)
	e := &env{
		db:            database,
		users:         repository.NewUserRepository(database),
		messages:      repository.NewMessageRepository(database),
		notifications: repository.NewNotificationRepository(database),
		requests:      repository.NewProjectRequestRepository(database),
	}
	email := service.NewEmailService("", "noreply@example.com", "http://localhost:8090", "Skill Swap", true)
	e.auth = service.NewAuthService(database, e.users, e.notifications, email, "test-secret", false, time.Hour)
	e.messaging = service.NewMessageService(database, e.users, e.messages, e.notifications, email)
	e.feed = service.NewNotificationService(database, e.notifications)
	e.collaboration = service.NewCollaborationService(e.requests)
	return e
}

func (e *env) register(t *testing.T, name string) *model.User {
	t.Helper()
	user, err := e.auth.Register(context.Background(), service.RegisterInput{
		Name:     name,
		Email:    name + "@example.com",
		Password: "correct-horse-battery",
		Skills:   "guitar",
		Purpose:  "music",
	})
	require.NoError(t, err)
	return user
}

// count returns the number of rows in table.
func (e *env) count(t *testing.T, table string) int {
	t.Helper()
	var n int
	require.NoError(t, e.db.Get(&n, "SELECT COUNT(*) FROM "+table))
	return n
}

// memStorage is an in-memory storage.Storage.
type memStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
}

func newMemStorage() *memStorage {
	return &memStorage{objects: map[string][]byte{}, types: map[string]string{}}
}

func (m *memStorage) Save(_ context.Context, key string, body io.Reader, contentType string) error {
	var buf bytes.Buffer
	_, err := buf.ReadFrom(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = buf.Bytes()
	m.types[key] = contentType
	return nil
}

func (m *memStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *memStorage) URL(_ context.Context, key string) string {
	return "https://bucket.example.com/" + key + "?signed"
}
