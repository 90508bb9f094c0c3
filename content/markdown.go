// ABOUTME: Markdown rendering for the prose parts of the profile
// ABOUTME: GFM with syntax highlighted code blocks, raw HTML is not passed through

package content

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"

	"github.com/mishurahman616/portfolio/core/domain"
)

// Markdown converts profile prose into HTML fragments
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a renderer using the given chroma style
func NewMarkdown(style string) *Markdown {
	if style == "" {
		style = "github"
	}
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle(style),
				),
			),
		),
	}
}

// Render converts markdown into a trusted HTML fragment
func (m *Markdown) Render(src string) (template.HTML, error) {
	if src == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	// goldmark escapes raw HTML without WithUnsafe, so the output is safe to embed
	return template.HTML(buf.String()), nil
}

// ProjectView is a project card with its description rendered
type ProjectView struct {
	domain.Project
	DescriptionHTML template.HTML
}

// Rendered is the profile with every markdown field converted
type Rendered struct {
	Profile   domain.Profile
	About     template.HTML
	AboutCode template.HTML
	Projects  []ProjectView
}

// RenderProfile converts the markdown fields of a profile
func (m *Markdown) RenderProfile(profile domain.Profile) (Rendered, error) {
	out := Rendered{Profile: profile}

	var err error
	if out.About, err = m.Render(profile.About); err != nil {
		return Rendered{}, fmt.Errorf("about: %w", err)
	}
	if out.AboutCode, err = m.Render(profile.AboutCode); err != nil {
		return Rendered{}, fmt.Errorf("about code: %w", err)
	}

	out.Projects = make([]ProjectView, 0, len(profile.Projects))
	for _, p := range profile.Projects {
		desc, err := m.Render(p.Description)
		if err != nil {
			return Rendered{}, fmt.Errorf("project %q: %w", p.Title, err)
		}
		out.Projects = append(out.Projects, ProjectView{Project: p, DescriptionHTML: desc})
	}
	return out, nil
}
