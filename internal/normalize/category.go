package normalize

import (
	"strings"

	"remotehirehub/ingest-service/internal/model"
)

// categoryKeywords is the fixed classification table, keyed by category slug.
// Categories without an entry here can never be assigned by the detector.
var categoryKeywords = map[string][]string{
	"software-development": {"developer", "engineer", "programming", "software", "backend", "frontend", "fullstack", "full-stack", "devops", "react", "node", "python", "java", "javascript"},
	"customer-support":     {"support", "customer", "service", "help desk", "success", "care"},
	"marketing-growth":     {"marketing", "growth", "seo", "content marketing", "digital marketing", "social media", "brand"},
	"design-creative":      {"designer", "design", "ui", "ux", "graphic", "creative", "visual"},
	"writing-content":      {"writer", "content", "copywriter", "editor", "blog", "technical writing"},
	"sales-business":       {"sales", "business development", "account executive", "bdr", "sdr"},
	"project-management":   {"project manager", "product manager", "scrum", "agile", "pm"},
	"data-analytics":       {"data", "analyst", "analytics", "scientist", "bi", "business intelligence"},
	"finance-accounting":   {"finance", "accounting", "accountant", "financial", "cpa"},
	"hr-recruiting":        {"hr", "human resources", "recruiter", "recruiting", "talent"},
}

// CategoryDetector assigns existing taxonomy ids by keyword scoring. It holds
// the active category list for one scrape run; list order decides ties.
type CategoryDetector struct {
	categories []model.Category
}

// NewCategoryDetector builds a detector over the given active categories.
func NewCategoryDetector(categories []model.Category) *CategoryDetector {
	return &CategoryDetector{categories: categories}
}

// Detect scores each category by how many of its keywords occur in the
// lowercased title plus description (markup stripped first) and returns the
// id of the strict winner. Ties keep the earlier category; zero matches
// overall returns "".
func (d *CategoryDetector) Detect(title, description string) string {
	if d == nil || len(d.categories) == 0 {
		return ""
	}
	text := strings.ToLower(title + " " + StripHTML(description))

	var bestID string
	bestScore := 0
	for _, cat := range d.categories {
		score := 0
		for _, kw := range categoryKeywords[cat.Slug] {
			if strings.Contains(text, kw) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestID = cat.ID
		}
	}
	return bestID
}
