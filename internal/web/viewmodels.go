package web

import (
	"fmt"
	"time"

	"github.com/openhire/jobboard/internal/domain/models"
	"github.com/samber/lo"
)

// JobCardView is the listing-card shape of a posting, with the relative
// posted-ago label precomputed server-side.
type JobCardView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	JobType     string `json:"job_type"`
	SalaryRange string `json:"salary_range,omitempty"`
	IsFeatured  bool   `json:"is_featured"`
	PostedAgo   string `json:"posted_ago"`
}

type SessionView struct {
	SignedIn bool   `json:"signed_in"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
}

type HomeView struct {
	FeaturedJobs []JobCardView `json:"featured_jobs"`
	Stats        HeroStats     `json:"stats"`
}

// HeroStats is the static marketing section on the landing page.
type HeroStats struct {
	ActiveJobs      string `json:"active_jobs"`
	Companies       string `json:"companies"`
	SuccessfulHires string `json:"successful_hires"`
}

func heroStats() HeroStats {
	return HeroStats{
		ActiveJobs:      "1000+",
		Companies:       "500+",
		SuccessfulHires: "10,000+",
	}
}

type JobListView struct {
	Jobs  []JobCardView `json:"jobs"`
	Total int           `json:"total"`
}

type JobDetailView struct {
	Job              models.Job `json:"job"`
	CanApply         bool       `json:"can_apply"`
	HasApplied       bool       `json:"has_applied"`
	ShowSignInPrompt bool       `json:"show_sign_in_prompt"`
}

type ApplicationView struct {
	ID          string            `json:"id"`
	Job         models.JobSummary `json:"job"`
	CoverLetter string            `json:"cover_letter,omitempty"`
	Status      string            `json:"status"`
	AppliedAt   time.Time         `json:"applied_at"`
}

type CandidateDashboardView struct {
	Applications []ApplicationView `json:"applications"`
	Stats        CandidateStats    `json:"stats"`
	ZeroState    *ZeroStateView    `json:"zero_state,omitempty"`
}

type CandidateStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Reviewed int `json:"reviewed"`
}

type ZeroStateView struct {
	Message      string `json:"message"`
	CallToAction string `json:"call_to_action"`
	Link         string `json:"link"`
}

type EmployerJobView struct {
	models.Job
	ApplicationCount int `json:"application_count"`
}

type EmployerDashboardView struct {
	Jobs      []EmployerJobView `json:"jobs"`
	Stats     EmployerStats     `json:"stats"`
	ZeroState *ZeroStateView    `json:"zero_state,omitempty"`
}

type EmployerStats struct {
	ActiveJobs        int `json:"active_jobs"`
	TotalApplications int `json:"total_applications"`
}

func toJobCards(jobs []models.Job, now time.Time) []JobCardView {
	return lo.Map(jobs, func(job models.Job, _ int) JobCardView {
		return JobCardView{
			ID:          job.ID,
			Title:       job.Title,
			Company:     job.Company,
			Location:    job.Location,
			JobType:     job.JobType,
			SalaryRange: job.SalaryRange,
			IsFeatured:  job.IsFeatured,
			PostedAgo:   postedAgo(job.CreatedAt, now),
		}
	})
}

func toCandidateDashboard(applications []models.ApplicationWithJob) CandidateDashboardView {

	view := CandidateDashboardView{
		Applications: lo.Map(applications, func(a models.ApplicationWithJob, _ int) ApplicationView {
			return ApplicationView{
				ID:          a.ID,
				Job:         a.Job,
				CoverLetter: a.CoverLetter,
				Status:      string(a.Status),
				AppliedAt:   a.CreatedAt,
			}
		}),
		Stats: CandidateStats{
			Total: len(applications),
			Pending: lo.CountBy(applications, func(a models.ApplicationWithJob) bool {
				return a.Status == models.ApplicationPending
			}),
			Reviewed: lo.CountBy(applications, func(a models.ApplicationWithJob) bool {
				return a.Status == models.ApplicationReviewed
			}),
		},
	}

	// An empty history is a zero-state with a browse call-to-action, never an
	// error.
	if len(applications) == 0 {
		view.Applications = []ApplicationView{}
		view.ZeroState = &ZeroStateView{
			Message:      "No applications yet",
			CallToAction: "Browse Jobs",
			Link:         "/jobs",
		}
	}
	return view
}

func toEmployerDashboard(jobs []models.JobWithApplicationCount) EmployerDashboardView {

	view := EmployerDashboardView{
		Jobs: lo.Map(jobs, func(job models.JobWithApplicationCount, _ int) EmployerJobView {
			return EmployerJobView{Job: job.Job, ApplicationCount: job.ApplicationCount}
		}),
		Stats: EmployerStats{
			ActiveJobs: lo.CountBy(jobs, func(job models.JobWithApplicationCount) bool {
				return job.Status == models.JobStatusActive
			}),
			TotalApplications: lo.SumBy(jobs, func(job models.JobWithApplicationCount) int {
				return job.ApplicationCount
			}),
		},
	}

	if len(jobs) == 0 {
		view.Jobs = []EmployerJobView{}
		view.ZeroState = &ZeroStateView{
			Message:      "No jobs posted yet",
			CallToAction: "Post Your First Job",
			Link:         "/jobs",
		}
	}
	return view
}

func postedAgo(createdAt time.Time, now time.Time) string {
	days := int(now.Sub(createdAt).Hours() / 24)

	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "Yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return fmt.Sprintf("%d weeks ago", days/7)
	default:
		return fmt.Sprintf("%d months ago", days/30)
	}
}
