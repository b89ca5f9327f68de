package notes

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"example.com/notetaker/internal/stringsx"
)

const slugMax = 60

type noteFrontmatter struct {
	ID        int64  `yaml:"id"`
	Title     string `yaml:"title"`
	CreatedAt string `yaml:"created_at"`
	UpdatedAt string `yaml:"updated_at"`
}

type exportFrontmatter struct {
	ExportedAt string `yaml:"exported_at"`
	Count      int    `yaml:"count"`
}

// RenderMarkdown serialises one note as Markdown with YAML front matter.
func RenderMarkdown(n Note) ([]byte, error) {
	var buf bytes.Buffer
	err := writeFrontmatter(&buf, noteFrontmatter{
		ID:        n.ID,
		Title:     n.Title,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: n.UpdatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(&buf, "# %s\n\n", headingText(n.Title))
	buf.WriteString(n.Content)
	if !strings.HasSuffix(n.Content, "\n") {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// RenderMarkdownAll serialises every note into one document, one level-2
// section per note in the order given.
func RenderMarkdownAll(items []Note, exportedAt time.Time) ([]byte, error) {
	var buf bytes.Buffer
	err := writeFrontmatter(&buf, exportFrontmatter{
		ExportedAt: exportedAt.UTC().Format(time.RFC3339),
		Count:      len(items),
	})
	if err != nil {
		return nil, err
	}

	buf.WriteString("# Notes\n")
	for i, n := range items {
		if i > 0 {
			buf.WriteString("\n---\n")
		}
		fmt.Fprintf(&buf, "\n## %s\n\n", headingText(n.Title))
		fmt.Fprintf(&buf, "_Created: %s · Updated: %s_\n\n",
			n.CreatedAt.UTC().Format(time.RFC3339), n.UpdatedAt.UTC().Format(time.RFC3339))
		buf.WriteString(n.Content)
		if !strings.HasSuffix(n.Content, "\n") {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), nil
}

// ExportFilename names the attachment for a single note.
func ExportFilename(n Note) string {
	if s := stringsx.Slug(n.Title, slugMax); s != "" {
		return s + ".md"
	}
	return "note-" + strconv.FormatInt(n.ID, 10) + ".md"
}

// ExportAllFilename names the attachment for a full export.
func ExportAllFilename(at time.Time) string {
	return "notes-export-" + at.UTC().Format("20060102-150405") + ".md"
}

func writeFrontmatter(buf *bytes.Buffer, v any) error {
	buf.WriteString("---\n")
	encoder := yaml.NewEncoder(buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode front matter: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encode front matter: %w", err)
	}
	buf.WriteString("---\n\n")
	return nil
}

// headingText keeps a multi-line title on one heading line.
func headingText(title string) string {
	return strings.Join(strings.Fields(title), " ")
}
