package models

// Experience types.
const (
	ExperienceWork      = "work"
	ExperienceEducation = "education"
	ExperienceVolunteer = "volunteer"
	ExperienceFreelance = "freelance"
)

// Experience is one entry on the timeline.
type Experience struct {
	ID          string   `json:"id" yaml:"id"`
	Company     string   `json:"company" yaml:"company"`
	Role        string   `json:"role" yaml:"role"`
	Location    string   `json:"location,omitempty" yaml:"location,omitempty"`
	StartDate   string   `json:"startDate" yaml:"startDate"`
	EndDate     string   `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	Current     bool     `json:"current" yaml:"current"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Highlights  []string `json:"highlights,omitempty" yaml:"highlights,omitempty"`
	Logo        string   `json:"logo,omitempty" yaml:"logo,omitempty"`
	Website     string   `json:"website,omitempty" yaml:"website,omitempty"`
	Type        string   `json:"type" yaml:"type"`
}
