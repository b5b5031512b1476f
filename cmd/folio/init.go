package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/eringen/folio/scaffold"
)

// scaffoldData holds the template variables passed to every scaffold template.
type scaffoldData struct {
	SiteName      string
	SessionSecret string
}

func newInitCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write a starter folio.yaml and seed.yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runInit(cmd.OutOrStdout(), dir, name)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "site name (default derived from dir)")
	return cmd
}

func runInit(out io.Writer, dir, name string) error {
	if name == "" {
		name = toTitle(filepath.Base(mustAbs(dir)))
	}
	secret, err := newSecret()
	if err != nil {
		return err
	}
	data := scaffoldData{SiteName: name, SessionSecret: secret}

	root := "templates"
	var outputs []string
	err = fs.WalkDir(scaffold.Templates, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		outPath := strings.TrimSuffix(filepath.Join(dir, rel), ".tmpl")
		if _, err := os.Stat(outPath); err == nil {
			return fmt.Errorf("%s already exists", outPath)
		}
		outputs = append(outputs, path)
		return nil
	})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	created := color.New(color.FgGreen).SprintFunc()
	for _, path := range outputs {
		rel, _ := filepath.Rel(root, path)
		outPath := strings.TrimSuffix(filepath.Join(dir, rel), ".tmpl")
		if err := writeTemplate(path, outPath, data); err != nil {
			return err
		}
		fmt.Fprintf(out, "  %s %s\n", created("created"), outPath)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintf(out, "  folio serve --config %s\n", filepath.Join(dir, "folio.yaml"))
	fmt.Fprintf(out, "  folio seed %s --email <admin email> --password <password>\n", filepath.Join(dir, "seed.yaml"))
	return nil
}

func writeTemplate(path, outPath string, data scaffoldData) error {
	content, err := scaffold.Templates.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	tmpl, err := template.New(filepath.Base(path)).Parse(string(content))
	if err != nil {
		return fmt.Errorf("parse template %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("create %s: %w", outPath, err)
	}
	defer f.Close()
	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("execute template %s: %w", path, err)
	}
	return nil
}

func newSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func mustAbs(dir string) string {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return dir
	}
	return abs
}

// toTitle converts a hyphenated or lowercase name to a title-case string.
// e.g. "my-site" -> "My Site"
func toTitle(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return cases.Title(language.English).String(s)
}
