// Package normalize holds the pure functions that map heterogeneous feed
// fields into the canonical job schema: slugs, dedup keys, HTML cleanup,
// salary parsing and job-type / experience-level inference.
package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	slugStripRe  = regexp.MustCompile(`[^a-z0-9]+`)
	scriptTagRe  = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	styleTagRe   = regexp.MustCompile(`(?is)<style\b.*?</style>`)
	anyTagRe     = regexp.MustCompile(`<[^>]*>`)
	salaryNumRe  = regexp.MustCompile(`(?i)\d+k?`)
	currencyRe   = regexp.MustCompile(`(?i)USD|EUR|GBP|\$`)
	periodRe     = regexp.MustCompile(`(?i)hour|day|month|year`)
)

const maxSlugLen = 100

// Slug builds a URL-safe slug from title and company: lowercase, runs of
// non-alphanumerics collapsed to single hyphens, trimmed, at most 100 chars.
// Not guaranteed unique: two postings with the same title and company collide.
func Slug(title, company string) string {
	s := strings.ToLower(title + "-" + company)
	s = slugStripRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if len(s) > maxSlugLen {
		s = s[:maxSlugLen]
		s = strings.TrimRight(s, "-")
	}
	return s
}

// JobID derives the global dedup key from the platform name and the
// source-native id. Stable across runs for the same source record.
func JobID(platform, sourceJobID string) string {
	return strings.ToLower(platform) + "-" + sourceJobID
}

// CleanHTML strips <script> and <style> blocks entirely and passes every
// other tag through unchanged. This is a pass-through sanitizer for feed
// descriptions, not a security boundary.
func CleanHTML(html string) string {
	if html == "" {
		return ""
	}
	html = scriptTagRe.ReplaceAllString(html, "")
	html = styleTagRe.ReplaceAllString(html, "")
	return strings.TrimSpace(html)
}

// StripHTML reduces markup to plain text with whitespace runs collapsed to
// single spaces. Falls back to tag-regex removal if the document won't parse.
func StripHTML(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Join(strings.Fields(anyTagRe.ReplaceAllString(html, " ")), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// Salary is the result of heuristic salary-text parsing. Min is set when at
// least one numeric token was found, Max only when there were two or more.
type Salary struct {
	Min      *int
	Max      *int
	Currency string
	Period   string
}

// ParseSalary extracts salary bounds from free text. Tokens matching \d+k?
// are collected ("80k" -> 80000); the smallest becomes Min, the largest Max.
// The currency match keeps its original casing; a bare "$" maps to "USD" via
// a plain substring replace (no symbol table for € or £).
func ParseSalary(text string) Salary {
	sal := Salary{Currency: "USD", Period: "year"}
	if text == "" {
		return sal
	}

	tokens := salaryNumRe.FindAllString(text, -1)
	if len(tokens) == 0 {
		if c := currencyRe.FindString(text); c != "" {
			sal.Currency = strings.ReplaceAll(c, "$", "USD")
		}
		if p := periodRe.FindString(text); p != "" {
			sal.Period = strings.ToLower(p)
		}
		return sal
	}

	amounts := make([]int, 0, len(tokens))
	for _, tok := range tokens {
		lower := strings.ToLower(tok)
		n, err := strconv.Atoi(strings.TrimSuffix(lower, "k"))
		if err != nil {
			continue
		}
		if strings.HasSuffix(lower, "k") {
			n *= 1000
		}
		amounts = append(amounts, n)
	}
	if len(amounts) == 0 {
		return sal
	}

	min, max := amounts[0], amounts[0]
	for _, n := range amounts[1:] {
		if n < min {
			min = n
		}
		if n > max {
			max = n
		}
	}
	sal.Min = &min
	if len(amounts) > 1 {
		sal.Max = &max
	}

	if c := currencyRe.FindString(text); c != "" {
		sal.Currency = strings.ReplaceAll(c, "$", "USD")
	}
	if p := periodRe.FindString(text); p != "" {
		sal.Period = strings.ToLower(p)
	}
	return sal
}

// JobType maps raw employment-type text onto the four canonical values,
// checking substrings in priority order. Anything unrecognised is Full-time.
func JobType(raw string) string {
	t := strings.ToLower(raw)
	switch {
	case strings.Contains(t, "full") || strings.Contains(t, "fulltime") || strings.Contains(t, "full-time"):
		return "Full-time"
	case strings.Contains(t, "part") || strings.Contains(t, "parttime") || strings.Contains(t, "part-time"):
		return "Part-time"
	case strings.Contains(t, "contract"):
		return "Contract"
	case strings.Contains(t, "freelance") || strings.Contains(t, "consultant"):
		return "Freelance"
	}
	return "Full-time"
}

// ExperienceLevel infers seniority from title text; first matching bucket
// wins, empty string when nothing matches.
//
// "lead" appears in both the Senior and Lead keyword sets; the Senior branch
// runs first, so "lead" always resolves to Senior. Inherited behaviour, kept
// as-is pending a product decision.
func ExperienceLevel(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "senior") || strings.Contains(t, "sr.") || strings.Contains(t, "lead"):
		return "Senior"
	case strings.Contains(t, "junior") || strings.Contains(t, "jr.") || strings.Contains(t, "entry"):
		return "Entry"
	case strings.Contains(t, "mid") || strings.Contains(t, "intermediate"):
		return "Mid"
	case strings.Contains(t, "lead") || strings.Contains(t, "principal") || strings.Contains(t, "staff"):
		return "Lead"
	}
	return ""
}

// FixLogoURL upgrades protocol-relative logo URLs to https and discards
// anything that is not an absolute http(s) URL.
func FixLogoURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "//") {
		raw = "https:" + raw
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return ""
	}
	return raw
}
