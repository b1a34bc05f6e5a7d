// Package content loads and validates the static portfolio documents.
package content

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"folio/internal/catalog"
	applog "folio/internal/log"
	"folio/models"
)

// Document names, without extension.
const (
	DocProfile      = "profile"
	DocProjects     = "projects"
	DocExperience   = "experience"
	DocSkills       = "skills"
	DocTestimonials = "testimonials"
)

var documents = []string{DocProfile, DocProjects, DocExperience, DocSkills, DocTestimonials}

var extensions = []string{".yaml", ".yml", ".json"}

//go:embed data/*.yaml
var embedded embed.FS

// Repository is the immutable, validated content of the site.
type Repository struct {
	profile      models.Profile
	projects     []models.Project
	experiences  []models.Experience
	skills       []models.Skill
	testimonials []models.Testimonial
}

// Default loads the content compiled into the binary.
func Default(ctx context.Context) (*Repository, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return Load(ctx, sub)
}

// Load reads every document from fsys, validates it and returns the
// repository. Any failure is reported as a *DataLoadError.
func Load(ctx context.Context, fsys fs.FS) (*Repository, error) {
	repo := &Repository{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return decode(ctx, fsys, DocProfile, &repo.profile) })
	g.Go(func() error { return decode(ctx, fsys, DocProjects, &repo.projects) })
	g.Go(func() error { return decode(ctx, fsys, DocExperience, &repo.experiences) })
	g.Go(func() error { return decode(ctx, fsys, DocSkills, &repo.skills) })
	g.Go(func() error { return decode(ctx, fsys, DocTestimonials, &repo.testimonials) })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	applyDefaults(repo)
	if err := checkInvariants(repo); err != nil {
		return nil, err
	}

	engine := catalog.Default()
	for _, project := range repo.projects {
		if !engine.KnownStatus(project.Status) {
			applog.Debug(ctx, "project status not in rank table, ranked last", "slug", project.Slug, "status", project.Status)
		}
	}

	applog.Debug(ctx, "content loaded",
		"projects", len(repo.projects),
		"experiences", len(repo.experiences),
		"skills", len(repo.skills),
		"testimonials", len(repo.testimonials),
	)
	return repo, nil
}

func decode(ctx context.Context, fsys fs.FS, name string, out any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, path, err := readDocument(fsys, name)
	if err != nil {
		return &DataLoadError{Document: name, Err: err}
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return &DataLoadError{Document: path, Err: fmt.Errorf("parse: %w", err)}
	}

	problems, err := validateDocument(name, doc)
	if err != nil {
		return &DataLoadError{Document: path, Err: err}
	}
	if len(problems) > 0 {
		return &DataLoadError{Document: path, Problems: problems}
	}

	if err := yaml.Unmarshal(raw, out); err != nil {
		return &DataLoadError{Document: path, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

func readDocument(fsys fs.FS, name string) ([]byte, string, error) {
	for _, ext := range extensions {
		path := name + ext
		raw, err := fs.ReadFile(fsys, path)
		if err == nil {
			return raw, path, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, path, err
		}
	}
	return nil, name, fmt.Errorf("document not found (tried %v)", extensions)
}

func applyDefaults(repo *Repository) {
	for i := range repo.projects {
		if repo.projects[i].Status == "" {
			repo.projects[i].Status = models.StatusCompleted
		}
	}
	for i := range repo.experiences {
		if repo.experiences[i].Type == "" {
			repo.experiences[i].Type = models.ExperienceWork
		}
	}
}

func checkInvariants(repo *Repository) error {
	if problems := duplicates(len(repo.projects), func(i int) string { return repo.projects[i].Slug }, "slug"); len(problems) > 0 {
		return &DataLoadError{Document: DocProjects, Problems: problems}
	}
	if problems := duplicates(len(repo.experiences), func(i int) string { return repo.experiences[i].ID }, "id"); len(problems) > 0 {
		return &DataLoadError{Document: DocExperience, Problems: problems}
	}
	if problems := duplicates(len(repo.skills), func(i int) string { return repo.skills[i].Category }, "category"); len(problems) > 0 {
		return &DataLoadError{Document: DocSkills, Problems: problems}
	}
	if problems := duplicates(len(repo.testimonials), func(i int) string { return repo.testimonials[i].ID }, "id"); len(problems) > 0 {
		return &DataLoadError{Document: DocTestimonials, Problems: problems}
	}
	return nil
}

func duplicates(n int, key func(int) string, field string) []string {
	seen := make(map[string]int, n)
	var problems []string
	for i := 0; i < n; i++ {
		k := key(i)
		if first, ok := seen[k]; ok {
			problems = append(problems, fmt.Sprintf("%d: duplicate %s %q (first at %d)", i, field, k, first))
			continue
		}
		seen[k] = i
	}
	return problems
}

// Profile returns the site owner's profile.
func (r *Repository) Profile() models.Profile {
	profile := r.profile
	profile.Socials = append([]models.Social(nil), r.profile.Socials...)
	return profile
}

// Projects returns the projects in document order.
func (r *Repository) Projects() []models.Project {
	return append([]models.Project(nil), r.projects...)
}

// Experiences returns the timeline, current entries first and the rest by
// start date, newest first.
func (r *Repository) Experiences() []models.Experience {
	return SortExperiences(r.experiences)
}

// Skills returns the skill categories in document order.
func (r *Repository) Skills() []models.Skill {
	return append([]models.Skill(nil), r.skills...)
}

// Testimonials returns the testimonials in document order.
func (r *Repository) Testimonials() []models.Testimonial {
	return append([]models.Testimonial(nil), r.testimonials...)
}

// SortExperiences returns a sorted copy of experiences.
func SortExperiences(experiences []models.Experience) []models.Experience {
	sorted := append([]models.Experience(nil), experiences...)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Current != b.Current {
			return a.Current
		}
		return startMillis(a) > startMillis(b)
	})
	return sorted
}

func startMillis(e models.Experience) float64 {
	parsed, ok := models.ParseDate(e.StartDate)
	if !ok {
		return math.Inf(-1)
	}
	return float64(parsed.UnixMilli())
}
