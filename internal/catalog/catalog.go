// Package catalog orders, filters and partitions the project collection for display.
package catalog

import (
	"errors"
	"math"
	"sort"
	"strings"

	"folio/models"
)

// ErrNotFound is returned when no project matches a slug.
var ErrNotFound = errors.New("catalog: project not found")

// View is the display-ready arrangement of the catalog for one selected tag.
type View struct {
	// Selected is the tag as requested, trimmed. Empty means all.
	Selected string
	// ShowFeatured is true when no specific tag is selected; the page then
	// renders Featured as its own group and Rest as the main grid.
	ShowFeatured bool
	Featured     []models.Project
	Rest         []models.Project
	// Filtered is the sorted list restricted to the selected tag.
	Filtered []models.Project
}

// Empty reports whether the filtered list has no projects.
func (v View) Empty() bool {
	return len(v.Filtered) == 0
}

// Engine applies a fixed set of Rules.
type Engine struct {
	rules Rules
	// alias group lookup: any member or canonical -> canonical
	groups map[string]string
}

// New builds an Engine from rules.
func New(rules Rules) *Engine {
	cloned := rules.clone()
	groups := make(map[string]string)
	for canonical, members := range cloned.Aliases {
		groups[canonical] = canonical
		for _, member := range members {
			groups[member] = canonical
		}
	}
	return &Engine{rules: cloned, groups: groups}
}

var defaultEngine = New(DefaultRules())

// Default returns the engine configured with DefaultRules.
func Default() *Engine {
	return defaultEngine
}

// Tags returns the filter bar entries.
func (e *Engine) Tags() []string {
	return append([]string(nil), e.rules.Tags...)
}

// RankStatus maps a status to its priority bucket.
func (e *Engine) RankStatus(status string) int {
	if rank, ok := e.rules.StatusRank[normalize(status)]; ok {
		return rank
	}
	return e.rules.UnknownRank
}

// KnownStatus reports whether status has an entry in the rank table.
func (e *Engine) KnownStatus(status string) bool {
	_, ok := e.rules.StatusRank[normalize(status)]
	return ok
}

// Compare returns a negative number when a sorts before b, positive when
// after and zero when they are equivalent.
func (e *Engine) Compare(a, b models.Project) int {
	ra, rb := e.RankStatus(a.Status), e.RankStatus(b.Status)
	if ra != rb {
		return ra - rb
	}

	if isInProgress(a.Status) && isInProgress(b.Status) {
		return compareDesc(timestamp(a.StartDate), timestamp(b.StartDate))
	}

	return compareDesc(sortKey(a), sortKey(b))
}

// Sort returns a sorted copy of projects. Equal projects keep their relative order.
func (e *Engine) Sort(projects []models.Project) []models.Project {
	sorted := make([]models.Project, len(projects))
	copy(sorted, projects)
	sort.SliceStable(sorted, func(i, j int) bool {
		return e.Compare(sorted[i], sorted[j]) < 0
	})
	return sorted
}

// Matches reports whether project carries the selected tag, directly or
// through an alias group.
func (e *Engine) Matches(project models.Project, selected string) bool {
	selected = normalize(selected)
	if isAll(selected) {
		return true
	}

	set := make(map[string]struct{}, len(project.Tech)+len(project.Tags))
	for _, value := range project.Tech {
		set[normalize(value)] = struct{}{}
	}
	for _, value := range project.Tags {
		set[normalize(value)] = struct{}{}
	}

	if _, ok := set[selected]; ok {
		return true
	}

	canonical, ok := e.groups[selected]
	if !ok {
		return false
	}
	if _, ok := set[canonical]; ok {
		return true
	}
	for _, member := range e.rules.Aliases[canonical] {
		if _, ok := set[member]; ok {
			return true
		}
	}
	return false
}

// BuildView sorts projects, filters by selectedTag and splits featured from the rest.
// The input slice is never modified.
func (e *Engine) BuildView(projects []models.Project, selectedTag string) View {
	sorted := e.Sort(projects)
	selected := strings.TrimSpace(selectedTag)

	view := View{
		Selected:     selected,
		ShowFeatured: isAll(normalize(selected)),
		Featured:     make([]models.Project, 0),
		Rest:         make([]models.Project, 0),
		Filtered:     make([]models.Project, 0, len(sorted)),
	}
	for _, project := range sorted {
		if project.Featured {
			view.Featured = append(view.Featured, project)
		} else {
			view.Rest = append(view.Rest, project)
		}
		if e.Matches(project, selected) {
			view.Filtered = append(view.Filtered, project)
		}
	}
	return view
}

// CompareProjects orders two projects with the default rules.
func CompareProjects(a, b models.Project) int {
	return defaultEngine.Compare(a, b)
}

// BuildCatalogView builds a view with the default rules.
func BuildCatalogView(projects []models.Project, selectedTag string) View {
	return defaultEngine.BuildView(projects, selectedTag)
}

// FindProjectBySlug returns the project whose slug matches exactly.
func FindProjectBySlug(projects []models.Project, slug string) (models.Project, error) {
	for _, project := range projects {
		if project.Slug == slug {
			return project, nil
		}
	}
	return models.Project{}, ErrNotFound
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isAll(normalized string) bool {
	return normalized == "" || normalized == "all"
}

func isInProgress(status string) bool {
	return normalize(status) == models.StatusInProgress
}

func timestamp(value string) float64 {
	parsed, ok := models.ParseDate(value)
	if !ok {
		return math.Inf(-1)
	}
	return float64(parsed.UnixMilli())
}

// sortKey prefers a valid end date over the start date.
func sortKey(project models.Project) float64 {
	if end := timestamp(project.EndDate); !math.IsInf(end, -1) {
		return end
	}
	return timestamp(project.StartDate)
}

func compareDesc(a, b float64) int {
	switch {
	case a == b:
		return 0
	case a > b:
		return -1
	default:
		return 1
	}
}
