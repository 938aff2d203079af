package review

import (
	"fmt"
)

// Severity ranks how urgent an improvement is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Severities lists all valid severities in display order, most urgent first.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

// SeverityRank returns a numeric rank for threshold comparisons (higher =
// more severe). Unknown severities rank 0.
func SeverityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Valid reports whether s is a member of the severity enum.
func (s Severity) Valid() bool { return SeverityRank(s) > 0 }

// MeetsThreshold returns true if severity is at or above the threshold.
// An empty or "none" threshold never matches.
func MeetsThreshold(s Severity, threshold string) bool {
	if threshold == "none" || threshold == "" {
		return false
	}
	min := SeverityRank(Severity(threshold))
	if min == 0 {
		return false
	}
	return SeverityRank(s) >= min
}

// Category classifies what kind of problem an improvement addresses.
type Category string

const (
	CategorySecurity        Category = "security"
	CategoryPerformance     Category = "performance"
	CategoryQuality         Category = "quality"
	CategoryArchitecture    Category = "architecture"
	CategoryMaintainability Category = "maintainability"
)

var validCategories = map[Category]bool{
	CategorySecurity:        true,
	CategoryPerformance:     true,
	CategoryQuality:         true,
	CategoryArchitecture:    true,
	CategoryMaintainability: true,
}

// Valid reports whether c is a member of the category enum.
func (c Category) Valid() bool { return validCategories[c] }

// Effort estimates how much work a fix needs.
type Effort string

const (
	EffortTrivial Effort = "trivial"
	EffortSmall   Effort = "small"
	EffortMedium  Effort = "medium"
	EffortLarge   Effort = "large"
)

var validEfforts = map[Effort]bool{
	EffortTrivial: true,
	EffortSmall:   true,
	EffortMedium:  true,
	EffortLarge:   true,
}

// Valid reports whether e is a member of the effort enum.
func (e Effort) Valid() bool { return validEfforts[e] }

// Improvement is a single actionable finding in a structured review.
type Improvement struct {
	ID       string   `json:"id"`
	File     string   `json:"file"`
	LineHint string   `json:"line_hint,omitempty"`
	Severity Severity `json:"severity"`
	Category Category `json:"category"`
	Title    string   `json:"title"`
	Problem  string   `json:"problem"`
	Solution string   `json:"solution"`
	Effort   Effort   `json:"effort"`
}

// ReviewResult is the JSON contract a structured review must satisfy.
type ReviewResult struct {
	Improvements      []Improvement `json:"improvements"`
	ArchitectureNotes string        `json:"architecture_notes"`
	SecurityPosture   string        `json:"security_posture"`
	TopPriority       string        `json:"top_priority"`
	RiskScore         int           `json:"risk_score"`
}

// Validate checks enum memberships, the risk score range, and that
// improvement IDs are unique within the result.
func (r *ReviewResult) Validate() error {
	if r.RiskScore < 0 || r.RiskScore > 100 {
		return fmt.Errorf("risk_score %d outside [0,100]", r.RiskScore)
	}
	seen := make(map[string]bool, len(r.Improvements))
	for i, imp := range r.Improvements {
		if err := imp.validate(); err != nil {
			return fmt.Errorf("improvements[%d]: %w", i, err)
		}
		if seen[imp.ID] {
			return fmt.Errorf("improvements[%d]: duplicate id %q", i, imp.ID)
		}
		seen[imp.ID] = true
	}
	return nil
}

func (imp Improvement) validate() error {
	switch {
	case imp.ID == "":
		return fmt.Errorf("missing required field id")
	case imp.File == "":
		return fmt.Errorf("missing required field file")
	case imp.Title == "":
		return fmt.Errorf("missing required field title")
	case imp.Problem == "":
		return fmt.Errorf("missing required field problem")
	case imp.Solution == "":
		return fmt.Errorf("missing required field solution")
	}
	if !imp.Severity.Valid() {
		return fmt.Errorf("invalid severity %q", imp.Severity)
	}
	if !imp.Category.Valid() {
		return fmt.Errorf("invalid category %q", imp.Category)
	}
	if !imp.Effort.Valid() {
		return fmt.Errorf("invalid effort %q", imp.Effort)
	}
	return nil
}

// SeverityCounts holds per-severity totals for an improvement list.
type SeverityCounts struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
}

// Total returns the number of improvements counted.
func (c SeverityCounts) Total() int {
	return c.Critical + c.High + c.Medium + c.Low
}

// CountBySeverity tallies improvements by severity.
func CountBySeverity(imps []Improvement) SeverityCounts {
	var c SeverityCounts
	for _, imp := range imps {
		switch imp.Severity {
		case SeverityCritical:
			c.Critical++
		case SeverityHigh:
			c.High++
		case SeverityMedium:
			c.Medium++
		case SeverityLow:
			c.Low++
		}
	}
	return c
}
