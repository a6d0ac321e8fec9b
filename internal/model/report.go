package model

// DetailedUser is a row of the above-average skills report.
type DetailedUser struct {
	Name            string `db:"name"`
	SkillLength     int    `db:"skill_length"`
	RegistrationDay string `db:"registration_day"` // YYYY-MM-DD
}

// MutualPair is two users who have messaged each other. User1ID < User2ID.
type MutualPair struct {
	User1ID      int64  `db:"user1_id"`
	User1Name    string `db:"user1_name"`
	User2ID      int64  `db:"user2_id"`
	User2Name    string `db:"user2_name"`
	MessageCount int    `db:"message_count"`
}
