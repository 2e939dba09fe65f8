package markdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rogersnm/dolphin/internal/model"
)

var cardStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("8")).
	Padding(0, 1)

// Stat is one total on the dashboard. Loaded is false when the collection
// could not be fetched.
type Stat struct {
	Label  string
	Count  int
	Loaded bool
}

// RecentReviews is how many reviews the dashboard lists.
const RecentReviews = 3

// RenderDashboard renders one card per stat followed by the first
// RecentReviews reviews.
func RenderDashboard(stats []Stat, reviews []model.Review) string {
	cards := make([]string, len(stats))
	for i, s := range stats {
		count := "-"
		if s.Loaded {
			count = fmt.Sprint(s.Count)
		}
		cards[i] = cardStyle.Render(s.Label + ": " + count)
	}

	var sb strings.Builder
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	sb.WriteString("\n\n")
	sb.WriteString(headerStyle.Render("Recent Reviews"))
	sb.WriteString("\n")
	if len(reviews) == 0 {
		sb.WriteString("No reviews yet.\n")
		return sb.String()
	}
	if len(reviews) > RecentReviews {
		reviews = reviews[:RecentReviews]
	}
	rows := make([][]string, len(reviews))
	for i, r := range reviews {
		text := r.DescriptionEN
		if text == "" {
			text = r.DescriptionAR
		}
		rows[i] = []string{cell(reviewerName(r)), cell(text), date(r.CreatedAt.Time)}
	}
	sb.WriteString(renderTable([]string{"Customer", "Review", "Date"}, rows))
	sb.WriteString("\n")
	return sb.String()
}

func reviewerName(r model.Review) string {
	switch {
	case r.NameEN != "":
		return r.NameEN
	case r.NameAR != "":
		return r.NameAR
	}
	return "Unnamed"
}
