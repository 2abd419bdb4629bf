package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/akozadaev/agriguru/internal/models"
)

var (
	accent = lipgloss.Color("#8BC34A")
	muted  = lipgloss.Color("#6B7280")
	warn   = lipgloss.Color("#F59E0B")

	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	mutedStyle  = lipgloss.NewStyle().Foreground(muted)
	warnStyle   = lipgloss.NewStyle().Foreground(warn)
	pinnedStyle = lipgloss.NewStyle().Bold(true)
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
)

func renderRecommendations(resp *models.RecommendResponse) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Recommended crops for %s, %s", resp.District, resp.State)))
	sb.WriteString("\n")

	if len(resp.Results) == 0 {
		sb.WriteString(warnStyle.Render(resp.Message))
		sb.WriteString("\n")
		return sb.String()
	}

	rows := [][]string{{"#", "Crop", "Confidence", "Price/t", "Season"}}
	for i, r := range resp.Results {
		name := r.Crop
		if r.DisplayName != "" && r.DisplayName != r.Crop {
			name = fmt.Sprintf("%s (%s)", r.DisplayName, r.Crop)
		}
		if r.Pinned {
			name += " *"
		}
		price := "-"
		if r.Price != nil {
			price = fmt.Sprintf("%.2f", *r.Price)
		}
		season := r.Season
		if season == "" {
			season = "-"
		}
		rows = append(rows, []string{fmt.Sprintf("%d", i+1), name, fmt.Sprintf("%.1f%%", r.Confidence*100), price, season})
	}
	sb.WriteString(renderTable(rows))

	for _, r := range resp.Results {
		if r.Pinned {
			sb.WriteString(mutedStyle.Render("* most common crop of the state"))
			sb.WriteString("\n")
			break
		}
	}
	return sb.String()
}

func renderForecast(resp *models.WeatherResponse) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("Weather forecast for %s", resp.City)))
	sb.WriteString("\n")
	if !resp.Available {
		sb.WriteString(warnStyle.Render(resp.Message))
		sb.WriteString("\n")
		return sb.String()
	}

	rows := [][]string{{"Time", "Temp °C", "Conditions"}}
	for _, e := range resp.Forecast {
		rows = append(rows, []string{e.Time, fmt.Sprintf("%.1f", e.TemperatureC), e.Description})
	}
	sb.WriteString(renderTable(rows))
	return sb.String()
}

func renderSuggestions(suggestions []models.SoilSuggestion) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Suggested crops by soil type"))
	sb.WriteString("\n")
	for _, s := range suggestions {
		sb.WriteString(pinnedStyle.Render(s.SoilType))
		sb.WriteString(": ")
		sb.WriteString(strings.Join(s.Crops, ", "))
		sb.WriteString("\n")
	}
	return sb.String()
}

func renderList(title string, items []string) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n")
	if len(items) == 0 {
		sb.WriteString(mutedStyle.Render("(none)"))
		sb.WriteString("\n")
	}
	for _, item := range items {
		sb.WriteString("  ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderTable выравнивает колонки по самой широкой ячейке; первая строка - заголовок.
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			style := cellStyle.Width(widths[i] + 2)
			if r == 0 {
				style = style.Foreground(muted)
			}
			cells[i] = style.Render(cell)
		}
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		sb.WriteString("\n")
	}
	return sb.String()
}
