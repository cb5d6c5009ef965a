package models

import (
	"strings"

	"github.com/samber/lo"
)

const AllJobTypes = "all"

// FilterJobs narrows an already-fetched job list to those whose title,
// company or location contains term (case-insensitive) and whose type
// matches jobType exactly, with "all" (or empty) matching every type.
// Pure function, input order preserved.
func FilterJobs(jobs []Job, term string, jobType string) []Job {
	needle := strings.ToLower(strings.TrimSpace(term))

	return lo.Filter(jobs, func(job Job, _ int) bool {
		matchesTerm := needle == "" ||
			strings.Contains(strings.ToLower(job.Title), needle) ||
			strings.Contains(strings.ToLower(job.Company), needle) ||
			strings.Contains(strings.ToLower(job.Location), needle)

		matchesType := jobType == "" || jobType == AllJobTypes || job.JobType == jobType

		return matchesTerm && matchesType
	})
}
