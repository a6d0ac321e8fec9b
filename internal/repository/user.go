package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/skillswap/skillswap/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	ByID(ctx context.Context, id int64) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.UserSummary, error)
	Search(ctx context.Context, filter SearchFilter) ([]*model.UserSummary, error)
	WithTx(tx *sqlx.Tx) UserRepository
}

type userRepository struct {
	db sqlx.ExtContext
}

func NewUserRepository(db sqlx.ExtContext) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) WithTx(tx *sqlx.Tx) UserRepository {
	return &userRepository{db: tx}
}

const userColumns = `id, name, skills, purpose, contact, profile_picture, dob, age, email, password_hash, registration_date`

// Create inserts the user. The generated id is not read back; callers that
// need it look the user up by email.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	if user.RegistrationDate.IsZero() {
		user.RegistrationDate = time.Now().UTC()
	}

	query := r.db.Rebind(`INSERT INTO users
		(name, skills, purpose, contact, profile_picture, dob, age, email, password_hash, registration_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query,
		user.Name,
		user.Skills,
		user.Purpose,
		user.Contact,
		user.ProfilePicture,
		user.DOB,
		user.Age,
		user.Email,
		user.PasswordHash,
		user.RegistrationDate,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *userRepository) ByID(ctx context.Context, id int64) (*model.User, error) {
	user := &model.User{}
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)

	err := sqlx.GetContext(ctx, r.db, user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ByEmail returns the first user with the given email. Matching follows the
// column collation; callers normalize the address beforehand.
func (r *userRepository) ByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE email = ?`)

	err := sqlx.GetContext(ctx, r.db, user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.UserSummary, error) {
	return r.Search(ctx, SearchFilter{})
}

func (r *userRepository) Search(ctx context.Context, filter SearchFilter) ([]*model.UserSummary, error) {
	query, args := BuildSearchQuery(r.db.DriverName(), filter)

	users := []*model.UserSummary{}
	err := sqlx.SelectContext(ctx, r.db, &users, r.db.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	return users, nil
}
