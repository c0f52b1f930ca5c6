package styles

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/tandem/internal/config/colors"
	"github.com/thenoetrevino/tandem/internal/models"
)

var (
	// Card styles
	CardStyle lipgloss.Style
	CardWidth = 80

	// Text styles
	TitleStyle    lipgloss.Style
	SubtitleStyle lipgloss.Style
	LabelStyle    lipgloss.Style // For field labels like "Status:", "Priority:"
	ValueStyle    lipgloss.Style // For field values
	SectionStyle  lipgloss.Style // For section headers like "Description", "Assignees"

	// Outcome styles
	SuccessStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	WarningStyle lipgloss.Style

	scheme colors.ColorScheme
)

func init() {
	Init(*colors.Default())
}

// Init initializes all CLI styles with the given color scheme
func Init(c colors.ColorScheme) {
	c.ApplyDefaults()
	scheme = c

	CardStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(c.Accent)).
		Padding(1, 2).
		Width(CardWidth)

	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Title))

	SubtitleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Subtle))

	LabelStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Accent))

	ValueStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Normal))

	SectionStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(c.Accent)).
		Bold(true).
		MarginTop(1)

	SuccessStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Success))

	ErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Error))

	WarningStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(c.Warning))
}

// Scheme returns the color scheme the styles were built from
func Scheme() colors.ColorScheme {
	return scheme
}

// ═══════════════════════════════════════════════════════════════════
// HELPER FUNCTIONS
// ═══════════════════════════════════════════════════════════════════

// ColoredText renders text with a hex color
func ColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// BoldColoredText renders bold text with a hex color
func BoldColoredText(text, hexColor string) string {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(hexColor)).
		Render(text)
}

// ColorSwatch renders a small block in the project's color
func ColorSwatch(hexColor string) string {
	return ColoredText("■", hexColor)
}

// PriorityBadge renders a priority in its configured color
func PriorityBadge(p models.Priority) string {
	hex := scheme.PriorityMedium
	switch p {
	case models.PriorityLow:
		hex = scheme.PriorityLow
	case models.PriorityHigh:
		hex = scheme.PriorityHigh
	}
	return BoldColoredText(string(p), hex)
}

// StatusBadge renders a status label, green once completed
func StatusBadge(s models.Status) string {
	switch s {
	case models.StatusCompleted:
		return SuccessStyle.Render(s.Label())
	case models.StatusInProgress:
		return WarningStyle.Render(s.Label())
	default:
		return ValueStyle.Render(s.Label())
	}
}

// RenderTodoLine renders a todo as "• Title [priority] (status)" with an overdue marker
func RenderTodoLine(t *models.Todo, overdue bool) string {
	line := fmt.Sprintf("• %s %s %s",
		ValueStyle.Render(t.Title),
		PriorityBadge(t.Priority),
		StatusBadge(t.Status))
	if t.DueDate != nil && !t.DueDate.IsZero() {
		due := SubtitleStyle.Render("due " + t.DueDate.String())
		if overdue {
			due = ErrorStyle.Render("overdue " + t.DueDate.String())
		}
		line += " " + due
	}
	return line
}

// RenderUserChips renders users as "(A) Alice, (B) Bob", or a placeholder when empty
func RenderUserChips(users []*models.User) string {
	if len(users) == 0 {
		return SubtitleStyle.Render("unassigned")
	}
	chips := make([]string, 0, len(users))
	for _, u := range users {
		chips = append(chips, fmt.Sprintf("%s %s", LabelStyle.Render("("+u.Initial()+")"), ValueStyle.Render(u.Name)))
	}
	return strings.Join(chips, ", ")
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}
