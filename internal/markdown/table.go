package markdown

import (
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rogersnm/dolphin/internal/model"
)

var (
	headerRowStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle      = lipgloss.NewStyle()
)

const maxCellWidth = 40

func RenderServiceTable(services []model.Service) string {
	if len(services) == 0 {
		return "No services found."
	}
	rows := make([][]string, len(services))
	for i, s := range services {
		rows[i] = []string{s.ID.String(), cell(s.TitleEN), cell(s.TitleAR), imageMarker(s.Image), date(s.UpdatedAt.Time)}
	}
	return renderTable([]string{"ID", "Title", "العنوان", "Image", "Updated"}, rows)
}

func RenderFeatureTable(features []model.Feature) string {
	if len(features) == 0 {
		return "No features found."
	}
	rows := make([][]string, len(features))
	for i, f := range features {
		rows[i] = []string{f.ID.String(), cell(f.TitleEN), cell(f.TitleAR), imageMarker(f.Image), date(f.UpdatedAt.Time)}
	}
	return renderTable([]string{"ID", "Title", "العنوان", "Image", "Updated"}, rows)
}

func RenderFAQTable(faqs []model.FAQ) string {
	if len(faqs) == 0 {
		return "No FAQs found."
	}
	rows := make([][]string, len(faqs))
	for i, f := range faqs {
		rows[i] = []string{f.ID.String(), cell(f.QuestionEN), cell(f.QuestionAR), date(f.UpdatedAt.Time)}
	}
	return renderTable([]string{"ID", "Question", "السؤال", "Updated"}, rows)
}

func RenderReviewTable(reviews []model.Review) string {
	if len(reviews) == 0 {
		return "No reviews found."
	}
	rows := make([][]string, len(reviews))
	for i, r := range reviews {
		rows[i] = []string{r.ID.String(), cell(r.NameEN), cell(r.NameAR), imageMarker(r.Image), date(r.UpdatedAt.Time)}
	}
	return renderTable([]string{"ID", "Name", "الاسم", "Image", "Updated"}, rows)
}

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerRowStyle
			}
			return cellStyle
		})
	return t.Render()
}

// cell truncates s to maxCellWidth runes.
func cell(s string) string {
	r := []rune(s)
	if len(r) <= maxCellWidth {
		return s
	}
	return string(r[:maxCellWidth-1]) + "…"
}

func imageMarker(url string) string {
	if url == "" {
		return "-"
	}
	return "yes"
}

func date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}
