package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorFgPrimary   = lipgloss.Color("#ABB2BF")
	ColorFgMuted     = lipgloss.Color("#636B78")
	ColorBgHighlight = lipgloss.Color("#2C313C")
	ColorRed         = lipgloss.Color("#E06C75")
	ColorGreen       = lipgloss.Color("#98C379")
	ColorYellow      = lipgloss.Color("#E5C07B")
	ColorBlue        = lipgloss.Color("#61AFEF")
	ColorBorder      = lipgloss.Color("#3F4451")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true).
			PaddingLeft(1)

	// Question card: the active one gets the accent border
	QuestionStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ActiveQuestionStyle = QuestionStyle.
				BorderForeground(ColorBlue)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary).
			Bold(true)

	RequiredStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	OptionStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary).
			Padding(0, 1)

	SelectedOptionStyle = lipgloss.NewStyle().
				Background(ColorBgHighlight).
				Foreground(ColorFgPrimary).
				Bold(true).
				Padding(0, 1)

	AnswerStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	UnansweredStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			Italic(true)

	InputPromptStyle = lipgloss.NewStyle().
				Foreground(ColorGreen)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	HelpStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)
)
