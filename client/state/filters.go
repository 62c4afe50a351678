package state

import (
	"strings"

	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

// FilterJobs applies the browse page filters: a search query over title,
// description and location, an exact location and an industry matched
// against the title. All comparisons ignore case.
func FilterJobs(jobs []types.Job, query string, criteria FilterCriteria) []types.Job {
	query = strings.ToLower(query)
	location := strings.ToLower(strings.TrimSpace(criteria.Location))
	industry := strings.ToLower(strings.TrimSpace(criteria.Industry))

	out := []types.Job{}
	for _, job := range jobs {
		if query != "" && !containsFold(job.Title, query) && !containsFold(job.Description, query) && !containsFold(job.Location, query) {
			continue
		}
		if location != "" && strings.ToLower(strings.TrimSpace(job.Location)) != location {
			continue
		}
		if industry != "" && !strings.Contains(strings.ToLower(strings.TrimSpace(job.Title)), industry) {
			continue
		}
		out = append(out, job)
	}
	return out
}

// FilterAdminJobs matches text against the job title or its company name.
func FilterAdminJobs(jobs []types.Job, text string) []types.Job {
	text = strings.ToLower(text)
	out := []types.Job{}
	for _, job := range jobs {
		if text == "" || containsFold(job.Title, text) || (job.Company != nil && containsFold(job.Company.Name, text)) {
			out = append(out, job)
		}
	}
	return out
}

// FilterCompanies matches text against company names. Unnamed companies are
// never listed.
func FilterCompanies(companies []types.Company, text string) []types.Company {
	text = strings.ToLower(text)
	out := []types.Company{}
	for _, company := range companies {
		if company.Name == "" {
			continue
		}
		if text == "" || containsFold(company.Name, text) {
			out = append(out, company)
		}
	}
	return out
}

// StatusLabel is the display form of an application status.
func StatusLabel(status types.ApplicationStatus) string {
	if status == "" {
		return "Pending"
	}
	s := string(status)
	return strings.ToUpper(s[:1]) + s[1:]
}

// EmptyJobsMessage explains an empty filtered list.
func EmptyJobsMessage(criteria FilterCriteria) string {
	switch {
	case criteria.Location != "" && criteria.Industry != "":
		return "No jobs found for " + criteria.Industry + " positions in " + criteria.Location
	case criteria.Location != "":
		return "No jobs found in " + criteria.Location
	case criteria.Industry != "":
		return "No jobs found for " + criteria.Industry + " positions"
	default:
		return "No jobs found"
	}
}

func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}
