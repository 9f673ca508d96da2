package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"survey-builder-service/internal/domain"
)

// Model previews a survey in the terminal. The respondent walks the questions
// and the answers collect into domain.Responses with the same shapes the
// editor records.
type Model struct {
	title     string
	questions []domain.Question
	responses domain.Responses
	keys      KeyMap
	help      help.Model
	input     textinput.Model

	current   int // index of the active question
	option    int // option cursor on a multiple-choice question
	err       string
	width     int
	submitted bool
	aborted   bool
}

// NewModel builds a preview over questions. seed may carry earlier answers;
// entries that no longer fit their question are dropped.
func NewModel(title string, questions []domain.Question, seed domain.Responses) Model {
	input := textinput.New()
	input.Prompt = "> "
	input.PromptStyle = InputPromptStyle
	input.Placeholder = "type your answer"
	input.CharLimit = 500
	input.Width = 60

	m := Model{
		title:     title,
		questions: questions,
		responses: domain.Responses{},
		keys:      DefaultKeyMap(),
		help:      help.New(),
		input:     input,
	}
	for _, q := range questions {
		if resp, ok := seed.Lookup(q.ID); ok && fits(q, resp) {
			m.responses[q.ID] = resp
		}
	}
	m.focus()
	return m
}

func fits(q domain.Question, resp domain.Response) bool {
	if resp.Kind() != q.Type {
		return false
	}
	if choice, ok := resp.Choice(); ok {
		_, found := q.FindOption(choice.OptionID)
		return found
	}
	return true
}

func (m Model) Init() tea.Cmd {
	if q, ok := m.question(); ok && q.Type == domain.QuestionTypeText {
		return textinput.Blink
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		m.err = ""
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			m.commitText()
			return m.submit()
		case key.Matches(msg, m.keys.Next):
			m.commitText()
			return m, m.move(1)
		case key.Matches(msg, m.keys.Prev):
			m.commitText()
			return m, m.move(-1)
		case key.Matches(msg, m.keys.Clear):
			if q, ok := m.question(); ok {
				delete(m.responses, q.ID)
				m.input.SetValue("")
			}
			return m, nil
		case key.Matches(msg, m.keys.Answer):
			return m.answer()
		}

		if q, ok := m.question(); ok && q.Type == domain.QuestionTypeMultipleChoice {
			switch {
			case key.Matches(msg, m.keys.Up):
				if m.option > 0 {
					m.option--
				}
			case key.Matches(msg, m.keys.Down):
				if m.option < len(q.Options)-1 {
					m.option++
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// answer records the active question and moves on; on the last question it submits.
func (m Model) answer() (tea.Model, tea.Cmd) {
	q, ok := m.question()
	if !ok {
		return m.submit()
	}
	switch q.Type {
	case domain.QuestionTypeMultipleChoice:
		if len(q.Options) == 0 {
			m.err = "this question has no options"
			return m, nil
		}
		m.responses[q.ID] = domain.ChoiceResponse(q.Options[m.option])
	default:
		m.commitText()
	}
	if m.current == len(m.questions)-1 {
		return m.submit()
	}
	return m, m.move(1)
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	for i, q := range m.questions {
		if !q.Required {
			continue
		}
		if _, ok := m.responses.Lookup(q.ID); !ok {
			m.err = fmt.Sprintf("%q needs an answer", q.Label)
			m.current = i
			return m, m.focus()
		}
	}
	m.submitted = true
	return m, tea.Quit
}

// commitText stores the text input of the active question. An empty input
// leaves the question unanswered.
func (m *Model) commitText() {
	q, ok := m.question()
	if !ok || q.Type != domain.QuestionTypeText {
		return
	}
	if value := m.input.Value(); value != "" {
		m.responses[q.ID] = domain.TextResponse(value)
	} else {
		delete(m.responses, q.ID)
	}
}

func (m *Model) move(delta int) tea.Cmd {
	next := m.current + delta
	if next < 0 || next >= len(m.questions) {
		return nil
	}
	m.current = next
	return m.focus()
}

// focus loads the active question's answer into the input or option cursor.
func (m *Model) focus() tea.Cmd {
	q, ok := m.question()
	if !ok {
		m.input.Blur()
		return nil
	}
	resp, answered := m.responses.Lookup(q.ID)
	if q.Type == domain.QuestionTypeText {
		text, _ := resp.Text()
		m.input.SetValue(text)
		m.input.CursorEnd()
		return m.input.Focus()
	}

	m.input.Blur()
	m.option = 0
	if choice, isChoice := resp.Choice(); answered && isChoice {
		for i, opt := range q.Options {
			if opt.ID == choice.OptionID {
				m.option = i
			}
		}
	}
	return nil
}

func (m Model) question() (domain.Question, bool) {
	if m.current < 0 || m.current >= len(m.questions) {
		return domain.Question{}, false
	}
	return m.questions[m.current], true
}

// Responses returns the answers collected so far.
func (m Model) Responses() domain.Responses { return m.responses.Clone() }

// Submitted reports whether the respondent finished with every required question answered.
func (m Model) Submitted() bool { return m.submitted }

// Aborted reports whether the respondent quit without submitting.
func (m Model) Aborted() bool { return m.aborted }

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render(m.title))
	b.WriteString("\n\n")

	if len(m.questions) == 0 {
		b.WriteString(UnansweredStyle.Render("This survey has no questions yet."))
		b.WriteString("\n\n")
	}
	for i, q := range m.questions {
		b.WriteString(m.renderQuestion(i, q))
		b.WriteString("\n")
	}

	if m.err != "" {
		b.WriteString(ErrorStyle.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString(HelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m Model) renderQuestion(i int, q domain.Question) string {
	var content strings.Builder
	content.WriteString(LabelStyle.Render(fmt.Sprintf("%d. %s", i+1, q.Label)))
	if q.Required {
		content.WriteString(RequiredStyle.Render(" *"))
	}
	content.WriteString("\n")

	active := i == m.current
	resp, answered := m.responses.Lookup(q.ID)
	switch {
	case active && q.Type == domain.QuestionTypeText:
		content.WriteString(m.input.View())
	case active:
		chosen, _ := resp.Choice()
		for j, opt := range q.Options {
			line := "  " + opt.Text
			style := OptionStyle
			if j == m.option {
				line = "▸ " + opt.Text
				style = SelectedOptionStyle
			}
			if answered && opt.ID == chosen.OptionID {
				line += " ✓"
			}
			content.WriteString(style.Render(line))
			content.WriteString("\n")
		}
		if len(q.Options) == 0 {
			content.WriteString(WarningStyle.Render("no options"))
		}
	case !answered:
		content.WriteString(UnansweredStyle.Render("unanswered"))
	default:
		if text, ok := resp.Text(); ok {
			content.WriteString(AnswerStyle.Render(text))
		} else if choice, ok := resp.Choice(); ok {
			content.WriteString(AnswerStyle.Render(choice.OptionText))
		}
	}

	style := QuestionStyle
	if active {
		style = ActiveQuestionStyle
	}
	if m.width > 4 {
		style = style.Width(m.width - 4)
	}
	return style.Render(strings.TrimRight(content.String(), "\n"))
}
