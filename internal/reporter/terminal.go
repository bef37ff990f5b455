package reporter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Art-Jashari/DevHealth/internal/models"
)

var (
	colorCyan   = lipgloss.Color("36")  // headings, counts
	colorGreen  = lipgloss.Color("35")  // production
	colorYellow = lipgloss.Color("220") // optional, warnings
	colorRed    = lipgloss.Color("167") // errors
	colorBlue   = lipgloss.Color("75")  // development
	colorWhite  = lipgloss.Color("255") // values
	colorGray   = lipgloss.Color("245") // secondary text
	colorDim    = lipgloss.Color("240") // muted text
)

const (
	iconProject = "▸"
	iconError   = "✗"
	iconSuccess = "✓"
)

// TerminalReporter outputs the scan summary in a human-readable terminal format
type TerminalReporter struct {
	// Renderer decides the color profile. Nil uses lipgloss.DefaultRenderer().
	Renderer *lipgloss.Renderer
}

type styles struct {
	title   lipgloss.Style
	project lipgloss.Style
	eco     lipgloss.Style
	number  lipgloss.Style
	value   lipgloss.Style
	dim     lipgloss.Style
	error   lipgloss.Style
	success lipgloss.Style
	roles   map[models.Role]lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(colorCyan),
		project: r.NewStyle().Bold(true).Foreground(colorWhite),
		eco:     r.NewStyle().Foreground(colorCyan),
		number:  r.NewStyle().Foreground(colorCyan),
		value:   r.NewStyle().Foreground(colorWhite),
		dim:     r.NewStyle().Foreground(colorDim),
		error:   r.NewStyle().Foreground(colorRed),
		success: r.NewStyle().Foreground(colorGreen),
		roles: map[models.Role]lipgloss.Style{
			models.RoleProduction:  r.NewStyle().Foreground(colorGreen),
			models.RoleDevelopment: r.NewStyle().Foreground(colorBlue),
			models.RoleBuild:       r.NewStyle().Foreground(colorGray),
			models.RoleOptional:    r.NewStyle().Foreground(colorYellow),
			models.RoleIndirect:    r.NewStyle().Foreground(colorDim),
		},
	}
}

// Report generates terminal output for the given summary
func (r *TerminalReporter) Report(summary *models.ScanSummary) ([]byte, error) {
	renderer := r.Renderer
	if renderer == nil {
		renderer = lipgloss.DefaultRenderer()
	}
	st := newStyles(renderer)

	var sb strings.Builder

	sb.WriteString("\n" + st.title.Render("DEPENDENCY INVENTORY") + "\n")
	sb.WriteString(st.dim.Render(strings.Repeat("─", 60)) + "\n")
	sb.WriteString(fmt.Sprintf("%s %s\n", st.dim.Render("Root:"), st.value.Render(summary.Root)))
	sb.WriteString(fmt.Sprintf("%s %s, %s, %s\n\n",
		st.dim.Render("Found:"),
		count(st, summary.Totals.Projects, "project"),
		count(st, summary.Totals.Ecosystems, "ecosystem"),
		count(st, summary.Totals.Dependencies, "dependency"),
	))

	if len(summary.Projects) == 0 {
		sb.WriteString(st.dim.Render("No projects found.") + "\n")
	}

	for _, p := range summary.Projects {
		sb.WriteString(fmt.Sprintf("%s %s %s\n",
			st.project.Render(iconProject),
			st.project.Render(relPath(summary.Root, p.Path)),
			st.dim.Render(fmt.Sprintf("(%d)", p.TotalDependencies())),
		))

		for _, tag := range p.EcosystemTags() {
			eco := p.Ecosystems[tag]
			var manifests []string
			for _, m := range eco.Manifests {
				manifests = append(manifests, relPath(p.Path, m))
			}
			sb.WriteString(fmt.Sprintf("  %s %s\n",
				st.eco.Render(tag.DisplayName()),
				st.dim.Render(strings.Join(manifests, ", ")),
			))
			writeDependencies(&sb, st, renderer, eco.Dependencies)
		}
		sb.WriteString("\n")
	}

	if ecosystems := ecosystemLine(st, summary); ecosystems != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", st.dim.Render("Ecosystems:"), ecosystems))
	}
	if roles := roleLine(st, summary.Totals.ByRole); roles != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", st.dim.Render("Roles:"), roles))
	}

	if len(summary.Errors) == 0 {
		sb.WriteString(st.success.Render(iconSuccess) + " All manifests parsed\n")
		return []byte(sb.String()), nil
	}

	sb.WriteString(fmt.Sprintf("\n%s %s\n", st.error.Render(iconError), st.error.Render(count(st, len(summary.Errors), "error"))))
	for _, e := range summary.Errors {
		sb.WriteString(fmt.Sprintf("  %s %s\n", st.value.Render(relPath(summary.Root, e.Path)), st.dim.Render("["+string(e.Kind)+"]")))
		sb.WriteString(fmt.Sprintf("    %s\n", e.Message))
	}

	return []byte(sb.String()), nil
}

// writeDependencies prints one aligned line per dependency
func writeDependencies(sb *strings.Builder, st styles, renderer *lipgloss.Renderer, deps []models.Dependency) {
	if len(deps) == 0 {
		sb.WriteString("    " + st.dim.Render("no dependencies") + "\n")
		return
	}

	nameWidth, versionWidth := 0, 0
	for _, d := range deps {
		nameWidth = max(nameWidth, lipgloss.Width(d.Name))
		versionWidth = max(versionWidth, lipgloss.Width(d.VersionSpec))
	}
	nameCol := renderer.NewStyle().Width(nameWidth + 2)
	versionCol := renderer.NewStyle().Width(versionWidth + 2)

	for _, d := range deps {
		role := st.roles[d.Role].Render(d.Role.String())
		sb.WriteString("    " + nameCol.Render(d.Name) + versionCol.Render(d.VersionSpec) + role + "\n")
	}
}

// ecosystemLine renders per-ecosystem dependency totals in canonical order
func ecosystemLine(st styles, summary *models.ScanSummary) string {
	var parts []string
	for _, eco := range summary.EcosystemTags() {
		n := summary.EcosystemDependencies(eco)
		parts = append(parts, fmt.Sprintf("%s %s", st.number.Render(fmt.Sprint(n)), st.eco.Render(eco.DisplayName())))
	}
	return strings.Join(parts, st.dim.Render(" · "))
}

// roleLine renders per-role totals in role order, skipping empty roles
func roleLine(st styles, byRole map[models.Role]int) string {
	var parts []string
	for _, role := range models.Roles {
		if n := byRole[role]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %s", st.number.Render(fmt.Sprint(n)), st.roles[role].Render(role.String())))
		}
	}
	return strings.Join(parts, st.dim.Render(" · "))
}

// count renders "n noun" with a naive plural
func count(st styles, n int, noun string) string {
	if n != 1 {
		if strings.HasSuffix(noun, "y") {
			noun = strings.TrimSuffix(noun, "y") + "ies"
		} else {
			noun += "s"
		}
	}
	return st.number.Render(fmt.Sprint(n)) + " " + noun
}
