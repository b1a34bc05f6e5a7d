// Command contentcheck validates a portfolio content directory before deploy.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/ledongthuc/pdf"
	"github.com/spf13/cobra"

	"folio/internal/content"
)

const resumeURLPrefix = "/assets/"

type options struct {
	dir       string
	resume    string
	staticDir string
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "read .env: %v\n", err)
	}

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := options{
		dir:       os.Getenv("CONTENT_DIR"),
		staticDir: firstNonEmpty(os.Getenv("STATIC_DIR"), "web/static"),
	}

	cmd := &cobra.Command{
		Use:   "contentcheck",
		Short: "Validate portfolio content documents",
		Long: `contentcheck loads the profile, projects, experience, skills and
testimonials documents, validates them against their schemas and the
catalog invariants, and optionally checks that the linked resume is a
readable PDF.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := check(cmd.Context(), opts, cmd.OutOrStdout())
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "content check failed: %v\n", err)
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.dir, "dir", "d", opts.dir, "content directory (defaults to the embedded content)")
	flags.StringVar(&opts.resume, "resume", "", "resume PDF to verify (defaults to the profile's resume link)")
	flags.StringVar(&opts.staticDir, "static-dir", opts.staticDir, "directory served under "+resumeURLPrefix)
	return cmd
}

func check(ctx context.Context, opts options, out io.Writer) error {
	var (
		repo *content.Repository
		err  error
	)
	source := "embedded content"
	if dir := strings.TrimSpace(opts.dir); dir != "" {
		source = dir
		repo, err = content.Load(ctx, os.DirFS(dir))
	} else {
		repo, err = content.Default(ctx)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: ok\n", source)
	fmt.Fprintf(out, "  projects:     %d\n", len(repo.Projects()))
	fmt.Fprintf(out, "  experiences:  %d\n", len(repo.Experiences()))
	fmt.Fprintf(out, "  skills:       %d\n", len(repo.Skills()))
	fmt.Fprintf(out, "  testimonials: %d\n", len(repo.Testimonials()))

	resume := resolveResume(opts, repo.Profile().Resume)
	if resume == "" {
		return nil
	}
	pages, err := pdfPages(resume)
	if err != nil {
		return fmt.Errorf("resume %s: %w", resume, err)
	}
	fmt.Fprintf(out, "  resume:       %s (%d pages)\n", resume, pages)
	return nil
}

// resolveResume maps the profile's resume link onto the static directory
// when its path is served from the site's assets. Other links are not checked.
func resolveResume(opts options, link string) string {
	if file := strings.TrimSpace(opts.resume); file != "" {
		return file
	}
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Path == "" {
		return ""
	}
	if !strings.HasPrefix(u.Path, resumeURLPrefix) || !strings.EqualFold(path.Ext(u.Path), ".pdf") {
		return ""
	}
	rel := path.Clean(strings.TrimPrefix(u.Path, resumeURLPrefix))
	if rel == "." || strings.HasPrefix(rel, "../") || rel == ".." {
		return ""
	}
	return filepath.Join(opts.staticDir, filepath.FromSlash(rel))
}

func pdfPages(file string) (int, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return 0, err
	}
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("not a readable pdf: %w", err)
	}
	pages := reader.NumPage()
	if pages < 1 {
		return 0, errors.New("pdf has no pages")
	}
	return pages, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
