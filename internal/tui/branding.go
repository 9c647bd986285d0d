package tui

import (
	"github.com/charmbracelet/lipgloss"
)

const AppName = "phishwise"

// ASCII art logo lines - canonical definition
var LogoLines = []string{
	"▄▄▄▄▄  ▄   ▄ ▄ ▄▄▄▄▄ ▄   ▄ ▄     ▄ ▄ ▄▄▄▄▄ ▄▄▄▄▄",
	"█   █  █   █ █ █     █   █ █  ▄  █ █ █     █    ",
	"█▄▄▄█  █▄▄▄█ █ █▄▄▄▄ █▄▄▄█ █ █ █ █ █ █▄▄▄▄ █▄▄▄ ",
	"█      █   █ █     █ █   █ █▄█ █▄█ █     █ █    ",
	"█      █   █ █ ▄▄▄▄█ █   █  █   █  █ ▄▄▄▄█ █▄▄▄▄",
}

const CompactLogo = "phishwise ›"

// Banner gradient colors
var BannerColors = []lipgloss.Color{
	lipgloss.Color("#5EEAD4"),
	lipgloss.Color("#67E8F9"),
	lipgloss.Color("#818CF8"),
	lipgloss.Color("#F472B6"),
	lipgloss.Color("#5EEAD4"),
}

// Brand colors: cool ocean tones for the calm parts, warm alerts for
// phishing-shaped trouble.
var (
	PrimaryColor   = lipgloss.Color("#5EEAD4") // Teal
	SecondaryColor = lipgloss.Color("#818CF8") // Indigo
	AccentColor    = lipgloss.Color("#F472B6") // Pink

	TextColor  = lipgloss.Color("#EAEAEA") // Soft white
	MutedColor = lipgloss.Color("#94A3B8") // Muted gray-blue

	// Status colors
	ErrorColor   = lipgloss.Color("#EF4444") // Red
	SuccessColor = lipgloss.Color("#10B981") // Green
	WarningColor = lipgloss.Color("#FBBF24") // Amber - stale / pending
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor).
			Bold(true)

	HelpStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	StaleStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	SourceStyle = lipgloss.NewStyle().
			Foreground(AccentColor)

	TimeStyle = lipgloss.NewStyle().
			Foreground(MutedColor).
			Italic(true)
)

// ApplyColors overrides the brand palette from configuration. Empty values
// keep the defaults.
func ApplyColors(primary, secondary, accent, text, muted, errC, success, warning string) {
	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&PrimaryColor, primary)
	set(&SecondaryColor, secondary)
	set(&AccentColor, accent)
	set(&TextColor, text)
	set(&MutedColor, muted)
	set(&ErrorColor, errC)
	set(&SuccessColor, success)
	set(&WarningColor, warning)

	TitleStyle = TitleStyle.Foreground(PrimaryColor)
	HeaderStyle = HeaderStyle.Foreground(SecondaryColor)
	HelpStyle = HelpStyle.Foreground(MutedColor)
	StaleStyle = StaleStyle.Foreground(WarningColor)
	ErrorStyle = ErrorStyle.Foreground(ErrorColor)
	SourceStyle = SourceStyle.Foreground(AccentColor)
	TimeStyle = TimeStyle.Foreground(MutedColor)
}

// GetWelcomeMessage returns the message shown before the first digest loads.
func GetWelcomeMessage() string {
	logo := lipgloss.NewStyle().Foreground(PrimaryColor).Render(CompactLogo)
	return lipgloss.JoinVertical(
		lipgloss.Center,
		logo,
		"",
		HelpStyle.Render("fetching the phishing-news digest…"),
	)
}
