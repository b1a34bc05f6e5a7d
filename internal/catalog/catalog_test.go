package catalog

import (
	"errors"
	"reflect"
	"testing"

	"folio/models"
)

func slugs(projects []models.Project) []string {
	out := make([]string, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.Slug)
	}
	return out
}

func sampleProjects() []models.Project {
	return []models.Project{
		{Slug: "done-old", Status: "completed", EndDate: "2021-05-01", Tech: []string{"Go"}},
		{Slug: "wip-old", Status: "in-progress", StartDate: "2023-01-01", Tech: []string{"React", "Tailwind CSS"}, Featured: true},
		{Slug: "paper", Status: "under-review", StartDate: "2022-01-01", Tech: []string{"PyTorch"}, Tags: []string{"Research"}},
		{Slug: "mystery", Status: "archived", EndDate: "2025-01-01", Tech: []string{"Python"}},
		{Slug: "wip-new", Status: " In-Progress ", StartDate: "2024-06-01", Tech: []string{"Go", "tailwind"}},
		{Slug: "done-new", Status: "completed", StartDate: "2020-01-01", EndDate: "2023-06-01", Tech: []string{"Node.js"}, Featured: true},
		{Slug: "planned", Status: "planned", Tech: []string{"CUDA"}},
	}
}

func TestRankStatus(t *testing.T) {
	t.Parallel()

	engine := Default()
	tests := []struct {
		status string
		want   int
	}{
		{"in-progress", 0},
		{"  IN-PROGRESS ", 0},
		{"submitted", 1},
		{"under-review", 1},
		{"planned", 2},
		{"preprint", 2},
		{"accepted", 3},
		{"completed", 3},
		{"archived", 4},
		{"", 4},
	}
	for _, tt := range tests {
		if got := engine.RankStatus(tt.status); got != tt.want {
			t.Fatalf("RankStatus(%q) = %d, want %d", tt.status, got, tt.want)
		}
	}
}

func TestCompareProjectsConcreteScenario(t *testing.T) {
	t.Parallel()

	a := models.Project{Slug: "a", Status: "in-progress", StartDate: "2024-01-01"}
	b := models.Project{Slug: "b", Status: "completed", EndDate: "2023-06-01"}
	if CompareProjects(a, b) >= 0 {
		t.Fatal("expected a to sort before b")
	}
	if CompareProjects(b, a) <= 0 {
		t.Fatal("expected b to sort after a")
	}
}

func TestInProgressAlwaysBeforeCompletedRegardlessOfDates(t *testing.T) {
	t.Parallel()

	wip := models.Project{Slug: "wip", Status: "in-progress", StartDate: "1999-01-01"}
	done := models.Project{Slug: "done", Status: "completed", EndDate: "2030-01-01"}
	sorted := Default().Sort([]models.Project{done, wip})
	if got := slugs(sorted); !reflect.DeepEqual(got, []string{"wip", "done"}) {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestSortOrdersBucketsAndDates(t *testing.T) {
	t.Parallel()

	got := slugs(Default().Sort(sampleProjects()))
	want := []string{"wip-new", "wip-old", "paper", "planned", "done-new", "done-old", "mystery"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Sort() = %v, want %v", got, want)
	}
}

func TestSortPrefersEndDateAndPutsMissingDatesLast(t *testing.T) {
	t.Parallel()

	projects := []models.Project{
		{Slug: "undated", Status: "completed"},
		{Slug: "garbage", Status: "completed", EndDate: "soon"},
		{Slug: "start-only", Status: "completed", StartDate: "2022-01-01"},
		{Slug: "ended", Status: "completed", StartDate: "2019-01-01", EndDate: "2023-01-01"},
	}
	got := slugs(Default().Sort(projects))
	want := []string{"ended", "start-only", "undated", "garbage"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Sort() = %v, want %v", got, want)
	}
}

func TestSortIsStableAndIdempotent(t *testing.T) {
	t.Parallel()

	projects := []models.Project{
		{Slug: "x", Status: "completed", EndDate: "2022-01-01"},
		{Slug: "y", Status: "accepted", EndDate: "2022-01-01"},
		{Slug: "z", Status: "completed", EndDate: "2022-01-01"},
	}
	once := Default().Sort(projects)
	if got := slugs(once); !reflect.DeepEqual(got, []string{"x", "y", "z"}) {
		t.Fatalf("expected equal keys to keep input order, got %v", got)
	}
	twice := Default().Sort(once)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("sorting twice changed the order: %v vs %v", slugs(once), slugs(twice))
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	projects := sampleProjects()
	before := slugs(projects)
	_ = BuildCatalogView(projects, "All")
	if after := slugs(projects); !reflect.DeepEqual(before, after) {
		t.Fatalf("input mutated: %v -> %v", before, after)
	}
}

func TestMatchesUsesAliases(t *testing.T) {
	t.Parallel()

	engine := Default()
	tailwindCSS := models.Project{Tech: []string{"Tailwind CSS"}}
	tailwind := models.Project{Tech: []string{"tailwind"}}
	tailwindcss := models.Project{Tags: []string{"TailwindCSS"}}
	torch := models.Project{Tech: []string{"torch"}}

	cases := []struct {
		name     string
		project  models.Project
		selected string
		want     bool
	}{
		{"member selects canonical", tailwindCSS, "tailwind", true},
		{"canonical selects member", tailwind, "Tailwind CSS", true},
		{"member selects sibling member", tailwindcss, "tailwind", true},
		{"direct match is case insensitive", tailwindCSS, " TAILWIND CSS ", true},
		{"pytorch alias", torch, "PyTorch", true},
		{"unrelated tag", tailwind, "React", false},
		{"all matches everything", torch, "All", true},
		{"empty matches everything", torch, "", true},
	}
	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := engine.Matches(tt.project, tt.selected); got != tt.want {
				t.Fatalf("Matches(%v, %q) = %t, want %t", tt.project.Tech, tt.selected, got, tt.want)
			}
		})
	}
}

func TestBuildViewPartitionsOnAll(t *testing.T) {
	t.Parallel()

	projects := sampleProjects()
	view := BuildCatalogView(projects, "All")
	if !view.ShowFeatured {
		t.Fatal("expected featured group on the All view")
	}
	if len(view.Featured)+len(view.Rest) != len(projects) {
		t.Fatalf("partition lost projects: %d + %d != %d", len(view.Featured), len(view.Rest), len(projects))
	}
	seen := map[string]bool{}
	for _, p := range view.Featured {
		if !p.Featured {
			t.Fatalf("non-featured project %q in featured group", p.Slug)
		}
		seen[p.Slug] = true
	}
	for _, p := range view.Rest {
		if seen[p.Slug] {
			t.Fatalf("project %q appears in both groups", p.Slug)
		}
	}
	if got := slugs(view.Featured); !reflect.DeepEqual(got, []string{"wip-old", "done-new"}) {
		t.Fatalf("featured order = %v", got)
	}
	if len(view.Filtered) != len(projects) {
		t.Fatalf("expected every project to match All, got %d", len(view.Filtered))
	}
}

func TestBuildViewFiltersInSortedOrder(t *testing.T) {
	t.Parallel()

	view := BuildCatalogView(sampleProjects(), "tailwind")
	if view.ShowFeatured {
		t.Fatal("expected no featured split for a specific tag")
	}
	if got := slugs(view.Filtered); !reflect.DeepEqual(got, []string{"wip-new", "wip-old"}) {
		t.Fatalf("Filtered = %v", got)
	}
}

func TestBuildViewEdgeCases(t *testing.T) {
	t.Parallel()

	empty := BuildCatalogView(nil, "All")
	if len(empty.Featured) != 0 || len(empty.Rest) != 0 || len(empty.Filtered) != 0 {
		t.Fatalf("expected empty view, got %+v", empty)
	}

	none := BuildCatalogView(sampleProjects(), "COBOL")
	if !none.Empty() {
		t.Fatalf("expected no matches, got %v", slugs(none.Filtered))
	}
}

func TestCustomRulesAreCopied(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	engine := New(rules)
	rules.StatusRank["completed"] = -10
	rules.Aliases["go"] = []string{"golang"}

	if got := engine.RankStatus("completed"); got != 3 {
		t.Fatalf("engine observed caller mutation: rank %d", got)
	}
	if engine.Matches(models.Project{Tech: []string{"golang"}}, "go") {
		t.Fatal("engine observed caller alias mutation")
	}
}

func TestFindProjectBySlug(t *testing.T) {
	t.Parallel()

	project, err := FindProjectBySlug(sampleProjects(), "paper")
	if err != nil {
		t.Fatalf("FindProjectBySlug: %v", err)
	}
	if project.Slug != "paper" {
		t.Fatalf("got %q", project.Slug)
	}

	if _, err := FindProjectBySlug(sampleProjects(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTagsStartWithAll(t *testing.T) {
	t.Parallel()

	tags := Default().Tags()
	if len(tags) == 0 || tags[0] != AllTag {
		t.Fatalf("expected All first, got %v", tags)
	}
	tags[0] = "mutated"
	if Default().Tags()[0] != AllTag {
		t.Fatal("Tags() must return a copy")
	}
}
