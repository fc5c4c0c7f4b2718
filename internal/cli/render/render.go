// Package render turns session state into terminal text.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"ojplay/internal/api"
	"ojplay/internal/catalog"
	"ojplay/internal/result"
	"ojplay/internal/session"
	"ojplay/internal/submission"
	appErr "ojplay/pkg/errors"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const (
	progressWidth = 30
	snippetIndent = "    "
)

type styles struct {
	title    lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	success  lipgloss.Style
	failure  lipgloss.Style
	muted    lipgloss.Style
	selected lipgloss.Style
	cell     lipgloss.Style
}

// Renderer formats problems, job state and results.
type Renderer struct {
	styles styles
	bar    progress.Model
}

// New creates a renderer. Without color every style renders plain text.
func New(color bool) *Renderer {
	r := &Renderer{}
	cell := lipgloss.NewStyle().Padding(0, 1)
	if color {
		r.styles = styles{
			title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3498db")),
			label:    lipgloss.NewStyle(),
			value:    lipgloss.NewStyle().Foreground(lipgloss.Color("#9b59b6")),
			success:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2ecc71")),
			failure:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e74c3c")),
			muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#7f8c8d")),
			selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e056fd")),
			cell:     cell,
		}
		r.bar = progress.New(progress.WithWidth(progressWidth), progress.WithDefaultGradient())
	} else {
		plain := lipgloss.NewStyle()
		r.styles = styles{
			title: plain, label: plain, value: plain, success: plain,
			failure: plain, muted: plain, selected: plain, cell: cell,
		}
		r.bar = progress.New(progress.WithWidth(progressWidth), progress.WithFillCharacters('#', '.'))
	}
	return r
}

// Problems lists the catalog and marks the selected problem with '*'.
func (r *Renderer) Problems(problems []catalog.Problem, selected *catalog.Problem) string {
	if len(problems) == 0 {
		return r.styles.muted.Render("no problems loaded")
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style { return r.styles.cell }).
		Headers("", "ID", "Title", "Difficulty")
	for _, p := range problems {
		mark := ""
		title := p.Title
		if selected != nil && selected.ID == p.ID {
			mark = "*"
			title = r.styles.selected.Render(title)
		}
		t.Row(mark, strconv.FormatInt(p.ID, 10), title, p.Difficulty)
	}
	return t.String()
}

// Problem shows the details of one problem.
func (r *Renderer) Problem(p *catalog.Problem) string {
	if p == nil {
		return r.styles.muted.Render("no problem selected")
	}
	var b strings.Builder
	b.WriteString(r.styles.title.Render(fmt.Sprintf("#%d %s", p.ID, p.Title)))
	if p.Difficulty != "" {
		b.WriteString("  " + r.styles.muted.Render("["+p.Difficulty+"]"))
	}
	b.WriteString("\n")
	if sig := p.Signature(); sig != "" {
		b.WriteString(r.field("function", sig) + "\n")
	}
	if p.Description != "" {
		b.WriteString("\n" + p.Description + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// Languages lists the supported languages and marks the current one.
func (r *Renderer) Languages(current string) string {
	lines := make([]string, 0, 4)
	for _, l := range submission.Languages() {
		line := fmt.Sprintf("  %-10s %s", l.Value, l.Label)
		if l.Value == current {
			line = r.styles.selected.Render("* " + strings.TrimPrefix(line, "  "))
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Code prints the editor buffer, indented.
func (r *Renderer) Code(snap session.Snapshot) string {
	header := r.field("language", languageLabel(snap.Language))
	if snap.Code == "" {
		return header + "\n" + r.styles.muted.Render(snippetIndent+"<empty>")
	}
	lines := strings.Split(strings.TrimRight(snap.Code, "\n"), "\n")
	for i := range lines {
		lines[i] = snippetIndent + lines[i]
	}
	return header + "\n" + strings.Join(lines, "\n")
}

// Status reports the job lifecycle in one or two lines.
func (r *Renderer) Status(snap session.Snapshot) string {
	var line string
	switch snap.State {
	case session.Submitting:
		line = r.styles.value.Render("submitting...")
	case session.Polling:
		line = r.styles.value.Render("running") + " " + r.styles.muted.Render("job "+snap.JobID)
	default:
		line = r.styles.muted.Render("idle")
	}
	if snap.LastError != nil {
		line += "\n" + r.Error(snap.LastError)
	}
	return line
}

// Summary renders the badge, progress bar, performance line and test table.
func (r *Renderer) Summary(sum *result.Summary) string {
	if sum == nil {
		return r.styles.muted.Render("no results yet")
	}
	badgeStyle := r.styles.failure
	if sum.AllPassed() {
		badgeStyle = r.styles.success
	}
	var b strings.Builder
	b.WriteString(badgeStyle.Render(Badge(*sum)))
	b.WriteString("\n")
	b.WriteString(r.bar.ViewAs(sum.Ratio()))
	b.WriteString("\n")
	if sum.HasPerformance() {
		b.WriteString(r.styles.muted.Render(Performance(*sum)))
		b.WriteString("\n")
	}
	if len(sum.TestResults) > 0 {
		b.WriteString(r.testTable(sum.TestResults))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *Renderer) testTable(results []api.TestResult) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style { return r.styles.cell }).
		Headers("Test", "Status", "Expected", "Error")
	for i, tr := range results {
		status := r.styles.failure.Render(tr.Status)
		if tr.Passed() {
			status = r.styles.success.Render(tr.Status)
		}
		name := tr.Description
		if name == "" {
			name = "Test " + strconv.Itoa(i+1)
		}
		errText := tr.Error
		if errText == "" {
			errText = "-"
		}
		t.Row(name, status, string(tr.Expected), errText)
	}
	return t.String()
}

// Error formats an error with its code.
func (r *Renderer) Error(err error) string {
	if err == nil {
		return ""
	}
	code := appErr.GetCode(err)
	return r.styles.failure.Render(fmt.Sprintf("error [%d]: %v", int(code), err))
}

func (r *Renderer) field(label, value string) string {
	return r.styles.label.Render(label+": ") + r.styles.value.Render(value)
}

// Badge is the "<passed> / <total> passed" headline.
func Badge(sum result.Summary) string {
	return fmt.Sprintf("%d / %d passed", sum.Passed, sum.Total)
}

// Performance formats time in milliseconds and memory in megabytes.
func Performance(sum result.Summary) string {
	return fmt.Sprintf("%.2fms  %.2fMB", sum.ExecutionTime, sum.MemoryMB())
}

func languageLabel(value string) string {
	if l, ok := submission.Lookup(value); ok {
		return l.Label
	}
	return value
}
