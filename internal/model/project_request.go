package model

import "time"

type ProjectRequest struct {
	ID          int64     `db:"id"`
	PosterID    int64     `db:"poster_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	SkillNeeded string    `db:"skill_needed"`
	CreatedAt   time.Time `db:"created_at"`

	// Joined / computed fields
	PosterName      string `db:"poster_name"`
	DescriptionHTML string `db:"-"`
}
