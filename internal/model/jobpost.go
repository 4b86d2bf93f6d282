package model

import "time"

type JobPost struct {
	ID             string    `json:"id"`
	CompanyID      string    `json:"company_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Location       string    `json:"location,omitempty"`
	EmploymentType string    `json:"employment_type,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// JobPostDetail is the API shape of a job post with its tag rows attached.
type JobPostDetail struct {
	JobPost
	Tags []string `json:"tags"`
}
