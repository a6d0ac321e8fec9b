package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/skillswap/skillswap/internal/model"
)

type ReportRepository interface {
	DetailedUsers(ctx context.Context) ([]*model.DetailedUser, error)
	MutualMessages(ctx context.Context) ([]*model.MutualPair, error)
}

type reportRepository struct {
	db sqlx.ExtContext
}

func NewReportRepository(db sqlx.ExtContext) ReportRepository {
	return &reportRepository{db: db}
}

// DetailedUsers lists users whose skills text is longer than the average of
// users registered on the same calendar day, longest first.
func (r *reportRepository) DetailedUsers(ctx context.Context) ([]*model.DetailedUser, error) {
	driver := r.db.DriverName()
	day1 := dayExpr(driver, "u1.registration_date")
	day2 := dayExpr(driver, "u2.registration_date")
	len1 := lengthExpr(driver, "u1.skills")
	len2 := lengthExpr(driver, "u2.skills")

	query := fmt.Sprintf(`
		SELECT u1.name AS name, %[1]s AS skill_length, %[2]s AS registration_day
		FROM users u1
		WHERE %[1]s > (
			SELECT AVG(%[3]s) FROM users u2 WHERE %[4]s = %[2]s
		)
		ORDER BY skill_length DESC, u1.id`, len1, day1, len2, day2)

	rows := []*model.DetailedUser{}
	err := sqlx.SelectContext(ctx, r.db, &rows, query)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// MutualMessages returns one row per pair of users who have messaged each
// other in both directions. The lower id is always user 1 and the count covers
// messages in both directions.
func (r *reportRepository) MutualMessages(ctx context.Context) ([]*model.MutualPair, error) {
	const low = `CASE WHEN m.sender_id < m.recipient_id THEN m.sender_id ELSE m.recipient_id END`
	const high = `CASE WHEN m.sender_id < m.recipient_id THEN m.recipient_id ELSE m.sender_id END`

	query := `
		SELECT p.user1_id, u1.name AS user1_name, p.user2_id, u2.name AS user2_name, p.message_count
		FROM (
			SELECT ` + low + ` AS user1_id,
				` + high + ` AS user2_id,
				COUNT(*) AS message_count,
				SUM(CASE WHEN m.sender_id < m.recipient_id THEN 1 ELSE 0 END) AS sent_up,
				SUM(CASE WHEN m.sender_id > m.recipient_id THEN 1 ELSE 0 END) AS sent_down
			FROM messages m
			GROUP BY ` + low + `, ` + high + `
		) p
		JOIN users u1 ON u1.id = p.user1_id
		JOIN users u2 ON u2.id = p.user2_id
		WHERE p.sent_up > 0 AND p.sent_down > 0
		ORDER BY p.user1_id, p.user2_id`

	pairs := []*model.MutualPair{}
	err := sqlx.SelectContext(ctx, r.db, &pairs, query)
	if err != nil {
		return nil, err
	}
	return pairs, nil
}
