package model

import "time"

type Challenge struct {
	ID          string    `json:"id"`
	MentorID    string    `json:"mentor_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Difficulty  string    `json:"difficulty,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
