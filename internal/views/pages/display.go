package pages

import (
	"strings"

	"folio/models"
)

// DefaultDash returns an em dash when the provided value is empty or whitespace.
func DefaultDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "—"
	}
	return value
}

// RatingStars renders a 1-5 rating as filled and empty stars. Values outside
// the range are clamped; zero means unrated and renders nothing.
func RatingStars(rating int) string {
	if rating <= 0 {
		return ""
	}
	if rating > 5 {
		rating = 5
	}
	return strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
}

// ProjectPeriod describes when a project ran.
func ProjectPeriod(project models.Project) string {
	switch {
	case project.StartDate == "" && project.EndDate == "":
		return ""
	case project.StartDate == "":
		return models.FormatMonth(project.EndDate)
	case project.EndDate == "" && project.Status != models.StatusInProgress:
		return models.FormatMonth(project.StartDate)
	default:
		return models.FormatDateRange(project.StartDate, project.EndDate)
	}
}

// SkillLevelLabel converts a skill level into display text.
func SkillLevelLabel(level string) string {
	switch level {
	case models.LevelExpert:
		return "Expert"
	case models.LevelAdvanced:
		return "Advanced"
	case models.LevelIntermediate:
		return "Intermediate"
	case models.LevelBeginner:
		return "Beginner"
	default:
		return ""
	}
}

// ExperienceTypeLabel converts an experience type into display text.
func ExperienceTypeLabel(kind string) string {
	switch kind {
	case models.ExperienceEducation:
		return "Education"
	case models.ExperienceVolunteer:
		return "Volunteer"
	case models.ExperienceFreelance:
		return "Freelance"
	default:
		return "Work"
	}
}

// TestimonialByline joins title and company.
func TestimonialByline(t models.Testimonial) string {
	if t.Company == "" {
		return t.Title
	}
	if t.Title == "" {
		return t.Company
	}
	return t.Title + ", " + t.Company
}
