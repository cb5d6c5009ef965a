package models

import (
	"errors"
	"sort"
	"time"
)

type JobType string

const (
	FullTime JobType = "Full-time"
	PartTime JobType = "Part-time"
	Contract JobType = "Contract"
	Remote   JobType = "Remote"
)

func ToJobType(s string) (JobType, error) {
	switch s {
	case string(FullTime):
		return FullTime, nil
	case string(PartTime):
		return PartTime, nil
	case string(Contract):
		return Contract, nil
	case string(Remote):
		return Remote, nil
	default:
		return "", errors.New("invalid job type")
	}
}

const JobStatusActive = "active"

type Job struct {
	ID           string    `json:"id,omitempty"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	Location     string    `json:"location"`
	JobType      string    `json:"job_type"`
	SalaryRange  string    `json:"salary_range,omitempty"`
	Description  string    `json:"description"`
	Requirements string    `json:"requirements,omitempty"`
	Benefits     string    `json:"benefits,omitempty"`
	IsFeatured   bool      `json:"is_featured"`
	Status       string    `json:"status,omitempty"`
	EmployerID   string    `json:"employer_id"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// JobDraft carries the employer-supplied fields of a new posting.
// Featured flag and status are assigned by the backend.
type JobDraft struct {
	Title        string `json:"title" validate:"required"`
	Company      string `json:"company" validate:"required"`
	Location     string `json:"location" validate:"required"`
	JobType      string `json:"job_type" validate:"required,oneof=Full-time Part-time Contract Remote"`
	SalaryRange  string `json:"salary_range,omitempty"`
	Description  string `json:"description" validate:"required"`
	Requirements string `json:"requirements,omitempty"`
	Benefits     string `json:"benefits,omitempty"`
}

// SortJobs enforces the listing order contract: featured postings first,
// then newest first within each group. The sort is stable so rows that
// compare equal keep their fetched order.
func SortJobs(jobs []Job) {
	sort.SliceStable(jobs, func(i, j int) bool {
		if jobs[i].IsFeatured != jobs[j].IsFeatured {
			return jobs[i].IsFeatured
		}
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
}
