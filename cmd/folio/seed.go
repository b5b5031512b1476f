package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/eringen/folio/api"
	"github.com/eringen/folio/validate"
)

type seedFile struct {
	Projects []seedProject `yaml:"projects"`
	Posts    []seedPost    `yaml:"posts"`
}

type seedProject struct {
	Title            string   `yaml:"title"`
	Description      string   `yaml:"description"`
	ShortDescription string   `yaml:"short_description"`
	Technologies     []string `yaml:"technologies"`
	ImageURL         string   `yaml:"image_url"`
	LiveURL          string   `yaml:"live_url"`
	RepoURL          string   `yaml:"repo_url"`
	Category         string   `yaml:"category"`
	Featured         bool     `yaml:"featured"`
	DisplayOrder     int      `yaml:"display_order"`
}

type seedPost struct {
	Title         string   `yaml:"title"`
	Content       string   `yaml:"content"`
	Excerpt       string   `yaml:"excerpt"`
	Tags          []string `yaml:"tags"`
	FeaturedImage string   `yaml:"featured_image"`
	Published     bool     `yaml:"published"`
}

// readSeed decodes a seed file. Unknown keys are rejected so typos surface
// before anything is written to the API.
func readSeed(r io.Reader) (seedFile, error) {
	var sf seedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sf); err != nil && !errors.Is(err, io.EOF) {
		return seedFile{}, fmt.Errorf("decode seed: %w", err)
	}
	return sf, nil
}

func (p seedProject) input() (api.ProjectInput, error) {
	values := map[string]string{
		"title":            p.Title,
		"description":      p.Description,
		"shortDescription": p.ShortDescription,
		"imageUrl":         p.ImageURL,
		"liveUrl":          p.LiveURL,
		"repoUrl":          p.RepoURL,
	}
	if err := fieldError(validate.Errors(values, validate.ProjectRules)); err != nil {
		return api.ProjectInput{}, err
	}
	category := api.Category(p.Category)
	if p.Category == "" {
		category = api.CategoryWeb
	}
	if !category.Valid() {
		return api.ProjectInput{}, fmt.Errorf("category: unknown category %q", p.Category)
	}
	return api.ProjectInput{
		Title:            strings.TrimSpace(p.Title),
		Description:      strings.TrimSpace(p.Description),
		ShortDescription: strings.TrimSpace(p.ShortDescription),
		Technologies:     p.Technologies,
		ImageURL:         p.ImageURL,
		LiveURL:          p.LiveURL,
		RepoURL:          p.RepoURL,
		Category:         category,
		Featured:         p.Featured,
		DisplayOrder:     p.DisplayOrder,
	}, nil
}

func (p seedPost) input() (api.BlogInput, error) {
	values := map[string]string{
		"title":         p.Title,
		"content":       p.Content,
		"excerpt":       p.Excerpt,
		"featuredImage": p.FeaturedImage,
	}
	if err := fieldError(validate.Errors(values, validate.BlogRules)); err != nil {
		return api.BlogInput{}, err
	}
	return api.BlogInput{
		Title:         strings.TrimSpace(p.Title),
		Content:       strings.TrimSpace(p.Content),
		Excerpt:       strings.TrimSpace(p.Excerpt),
		Tags:          p.Tags,
		FeaturedImage: p.FeaturedImage,
		Published:     p.Published,
	}, nil
}

// fieldError folds field errors into one error, ordered by field name.
func fieldError(errs validate.FieldErrors) error {
	if len(errs) == 0 {
		return nil
	}
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = f + ": " + errs[f]
	}
	return errors.New(strings.Join(parts, "; "))
}

func newSeedCmd(s *settings) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "seed <file>",
		Short: "Create the projects and posts listed in a seed file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			sf, err := readSeed(f)
			if err != nil {
				return err
			}

			projects := make([]api.ProjectInput, 0, len(sf.Projects))
			for i, p := range sf.Projects {
				in, err := p.input()
				if err != nil {
					return fmt.Errorf("project %d (%s): %w", i+1, p.Title, err)
				}
				projects = append(projects, in)
			}
			posts := make([]api.BlogInput, 0, len(sf.Posts))
			for i, p := range sf.Posts {
				in, err := p.input()
				if err != nil {
					return fmt.Errorf("post %d (%s): %w", i+1, p.Title, err)
				}
				posts = append(posts, in)
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "%d projects and %d posts are valid\n", len(projects), len(posts))
				return nil
			}

			email, password := s.v.GetString("admin_email"), s.v.GetString("admin_password")
			if email == "" || password == "" {
				return errors.New("--email and --password (or FOLIO_ADMIN_EMAIL and FOLIO_ADMIN_PASSWORD) are required")
			}
			client, err := s.apiClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			res, err := client.Login(ctx, email, password)
			if err != nil {
				return fmt.Errorf("login: %w", err)
			}
			if !res.User.IsAdmin() {
				return fmt.Errorf("%s is not an admin", email)
			}
			admin := client.WithToken(res.Token)

			created := color.New(color.FgGreen).SprintFunc()
			for _, in := range projects {
				p, err := admin.CreateProject(ctx, in)
				if err != nil {
					return fmt.Errorf("create project %q: %w", in.Title, err)
				}
				fmt.Fprintf(out, "  %s project %s (%s)\n", created("created"), p.Title, p.ID)
			}
			for _, in := range posts {
				p, err := admin.CreateBlog(ctx, in)
				if err != nil {
					return fmt.Errorf("create post %q: %w", in.Title, err)
				}
				fmt.Fprintf(out, "  %s post %s (%s)\n", created("created"), p.Title, p.ID)
			}
			return nil
		},
	}
	cmd.Flags().String("email", "", "admin account email")
	cmd.Flags().String("password", "", "admin account password")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the file without calling the API")
	_ = s.v.BindPFlag("admin_email", cmd.Flags().Lookup("email"))
	_ = s.v.BindPFlag("admin_password", cmd.Flags().Lookup("password"))
	return cmd
}
