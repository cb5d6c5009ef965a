package models

import "time"

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationReviewed ApplicationStatus = "reviewed"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

type Application struct {
	ID          string            `json:"id,omitempty"`
	JobID       string            `json:"job_id"`
	CandidateID string            `json:"candidate_id"`
	CoverLetter string            `json:"cover_letter,omitempty"`
	ResumeURL   string            `json:"resume_url"`
	Status      ApplicationStatus `json:"status,omitempty"`
	CreatedAt   time.Time         `json:"created_at,omitempty"`
}

// JobSummary is the slice of job fields embedded into a candidate's
// application rows by the backend join.
type JobSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	JobType     string `json:"job_type"`
	SalaryRange string `json:"salary_range,omitempty"`
}

type ApplicationWithJob struct {
	Application
	Job JobSummary `json:"jobs"`
}

// JobWithApplicationCount is an employer's posting with the aggregate count
// of applications embedded by the backend.
type JobWithApplicationCount struct {
	Job
	ApplicationCount int
}
