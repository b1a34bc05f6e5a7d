package models

// Project statuses known to the catalog. The set is open: content may carry
// other values and they are ranked last rather than rejected.
const (
	StatusCompleted   = "completed"
	StatusInProgress  = "in-progress"
	StatusPlanned     = "planned"
	StatusSubmitted   = "submitted"
	StatusUnderReview = "under-review"
	StatusAccepted    = "accepted"
	StatusPreprint    = "preprint"
)

// Project is a single entry of the project gallery.
type Project struct {
	Slug        string       `json:"slug" yaml:"slug"`
	Title       string       `json:"title" yaml:"title"`
	Summary     string       `json:"summary" yaml:"summary"`
	Description string       `json:"description" yaml:"description"`
	Tech        []string     `json:"tech" yaml:"tech"`
	Highlights  []string     `json:"highlights" yaml:"highlights"`
	Links       ProjectLinks `json:"links" yaml:"links"`
	Images      []string     `json:"images,omitempty" yaml:"images,omitempty"`
	Featured    bool         `json:"featured" yaml:"featured"`
	Status      string       `json:"status" yaml:"status"`
	StartDate   string       `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate     string       `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	Tags        []string     `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// ProjectLinks holds the optional outbound links of a project.
type ProjectLinks struct {
	Demo      string `json:"demo,omitempty" yaml:"demo,omitempty"`
	Repo      string `json:"repo,omitempty" yaml:"repo,omitempty"`
	CaseStudy string `json:"caseStudy,omitempty" yaml:"caseStudy,omitempty"`
	Paper     string `json:"paper,omitempty" yaml:"paper,omitempty"`
}

// Empty reports whether no link is set.
func (l ProjectLinks) Empty() bool {
	return l.Demo == "" && l.Repo == "" && l.CaseStudy == "" && l.Paper == ""
}
