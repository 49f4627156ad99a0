package model

import "time"

type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusActive    JobStatus = "active"
	JobStatusInterview JobStatus = "interview"
	JobStatusOffer     JobStatus = "offer"
	JobStatusRejected  JobStatus = "rejected"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusPending, JobStatusActive, JobStatusInterview, JobStatusOffer, JobStatusRejected:
		return true
	}
	return false
}

// Job is a scraped posting. Rows are written by the external scraper service;
// this service only reads and reshapes them.
type Job struct {
	CreatedAt      time.Time `json:"created_at"`
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	URL            string    `json:"url"`
	Source         string    `json:"source"`
	Status         JobStatus `json:"status"`
	ID             int64     `json:"id,string"`
	OrganizationID *int64    `json:"organization_id,omitempty,string"`
	Applied        bool      `json:"applied"`
	Saved          bool      `json:"saved"`
}

// UserJobStatus tracks one user's relationship to one job.
type UserJobStatus struct {
	UpdatedAt time.Time `json:"updated_at"`
	UserID    string    `json:"user_id"`
	JobID     int64     `json:"job_id,string"`
	Applied   bool      `json:"applied"`
	Saved     bool      `json:"saved"`
}
