package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/eringen/folio/api"
)

const (
	listPageSize = 50
	listMaxPages = 100
)

func newListCmd(s *settings) *cobra.Command {
	var category string
	cmd := &cobra.Command{
		Use:       "list blog|projects",
		Short:     "List published posts or projects from the content API",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"blog", "projects"},
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := s.apiClient()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			switch args[0] {
			case "blog", "posts":
				posts, err := allPosts(ctx, client)
				if err != nil {
					return err
				}
				renderPosts(cmd.OutOrStdout(), posts)
			case "projects":
				f := api.ProjectFilter{Category: api.ParseCategory(category)}
				projects, err := client.ListProjects(ctx, f)
				if err != nil {
					return err
				}
				renderProjects(cmd.OutOrStdout(), projects)
			default:
				return fmt.Errorf("unknown kind %q (want blog or projects)", args[0])
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "project category (web, mobile, desktop, other)")
	return cmd
}

// allPosts walks every page of the public blog list.
func allPosts(ctx context.Context, client *api.Client) ([]api.BlogPost, error) {
	var posts []api.BlogPost
	for page := 1; page <= listMaxPages; page++ {
		res, err := client.ListBlogs(ctx, page, listPageSize)
		if err != nil {
			return nil, err
		}
		posts = append(posts, res.Blogs...)
		if page >= res.TotalPages {
			break
		}
	}
	return posts, nil
}

func renderPosts(w io.Writer, posts []api.BlogPost) {
	if len(posts) == 0 {
		fmt.Fprintln(w, "No posts.")
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Title", "Author", "Published", "Views", "Tags"})
	table.SetAutoWrapText(false)
	for _, p := range posts {
		date := ""
		if !p.PublishedAt.IsZero() {
			date = p.PublishedAt.Format("2006-01-02")
		}
		table.Append([]string{
			p.ID,
			p.Title,
			p.AuthorName(),
			flag(p.Published, date),
			strconv.Itoa(p.Views),
			strings.Join(p.Tags, ", "),
		})
	}
	table.Render()
}

func renderProjects(w io.Writer, projects []api.Project) {
	if len(projects) == 0 {
		fmt.Fprintln(w, "No projects.")
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Title", "Category", "Featured", "Order", "Technologies"})
	table.SetAutoWrapText(false)
	for _, p := range projects {
		table.Append([]string{
			p.ID,
			p.Title,
			string(p.Category),
			flag(p.Featured, ""),
			strconv.Itoa(p.DisplayOrder),
			strings.Join(p.Technologies, ", "),
		})
	}
	table.Render()
}

// flag renders a boolean column; detail replaces "yes" when set.
func flag(on bool, detail string) string {
	if !on {
		return color.New(color.FgHiBlack).Sprint("no")
	}
	if detail == "" {
		detail = "yes"
	}
	return color.New(color.FgGreen).Sprint(detail)
}
