// Package ui provides the visual styling and page models for the Yarnly
// terminal storefront. Uses the Yarnly brand palette with light/dark mode
// support.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette based on the Yarnly brand guidelines
var (
	// Light Mode Colors (Default)
	LightBackground = lipgloss.Color("#faf6f1") // Cream
	LightForeground = lipgloss.Color("#3d2b1f") // Cocoa
	LightPrimary    = lipgloss.Color("#c0694e") // Terracotta
	LightAccent     = lipgloss.Color("#8a9a5b") // Moss green
	LightSecondary  = lipgloss.Color("#ede5dc") // Sand
	LightMuted      = lipgloss.Color("#9b8a7a") // Faded cocoa
	LightBorder     = lipgloss.Color("#dccdbd")
	LightCard       = lipgloss.Color("#ffffff")

	// Dark Mode Colors
	DarkBackground = lipgloss.Color("#221a13")
	DarkForeground = lipgloss.Color("#ede5dc") // Sand (flipped)
	DarkPrimary    = lipgloss.Color("#d98263") // Lighter terracotta
	DarkAccent     = lipgloss.Color("#a3b476")
	DarkSecondary  = lipgloss.Color("#32271d")
	DarkMuted      = lipgloss.Color("#8a7a6a")
	DarkBorder     = lipgloss.Color("#463628")
	DarkCard       = lipgloss.Color("#2c2218")

	// Semantic Colors (same in both modes)
	Destructive = lipgloss.Color("#c94f3d") // Red clay
	Success     = lipgloss.Color("#8a9a5b") // Moss green
	Warning     = lipgloss.Color("#d9a441") // Mustard
	Info        = lipgloss.Color("#6f8fa8") // Dusty blue
)

// Theme holds the current color scheme
type Theme struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Secondary  lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Background: LightBackground,
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Accent:     LightAccent,
		Secondary:  LightSecondary,
		Muted:      LightMuted,
		Border:     LightBorder,
		Card:       LightCard,
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Background: DarkBackground,
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Accent:     DarkAccent,
		Secondary:  DarkSecondary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		Card:       DarkCard,
		IsDark:     true,
	}
}

// DetectTheme auto-detects based on terminal or returns light mode
func DetectTheme() Theme {
	// COLORFGBG is usually "foreground;background"; ANSI indices 0-6 and 8
	// indicate a dark background.
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}

	if os.Getenv("YARNLY_DARK_MODE") == "1" {
		return DarkTheme()
	}

	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	// Layout
	Header  lipgloss.Style
	Footer  lipgloss.Style
	Content lipgloss.Style

	// Text
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style

	// Forms
	Label      lipgloss.Style
	FieldFocus lipgloss.Style
	FieldBlur  lipgloss.Style

	// Catalog
	Pill       lipgloss.Style
	PillActive lipgloss.Style
	Row        lipgloss.Style
	RowCursor  lipgloss.Style
	Price      lipgloss.Style
	Heart      lipgloss.Style

	// Status
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Components
	Spinner lipgloss.Style
	Dialog  lipgloss.Style
	Badge   lipgloss.Style
	Divider lipgloss.Style
}

// NewStyles creates a new Styles instance with the given theme
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true).
			MarginBottom(1),

		Subtitle: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Bold: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		Label: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Width(10),

		FieldFocus: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),

		FieldBlur: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		Pill: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		PillActive: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		Row: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Padding(0, 1),

		RowCursor: lipgloss.NewStyle().
			Background(theme.Secondary).
			Foreground(theme.Foreground).
			Padding(0, 1).
			Bold(true),

		Price: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),

		Heart: lipgloss.NewStyle().
			Foreground(Destructive),

		Success: lipgloss.NewStyle().
			Foreground(Success).
			Bold(true),

		Error: lipgloss.NewStyle().
			Foreground(Destructive).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true),

		Info: lipgloss.NewStyle().
			Foreground(Info),

		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),

		Dialog: lipgloss.NewStyle().
			Background(theme.Card).
			Foreground(theme.Foreground).
			Padding(1, 3).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary),

		Badge: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		Divider: lipgloss.NewStyle().
			Foreground(theme.Border),
	}
}

// DefaultStyles returns styles with the auto-detected theme
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}

// RenderDivider returns a horizontal divider
func (s Styles) RenderDivider(width int) string {
	return s.Divider.Render(strings.Repeat("─", width))
}
