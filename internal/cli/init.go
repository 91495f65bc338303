package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	initForce    bool
	initDefaults bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scaffold starter architecture and threat intelligence documents",
	Long: `Create a starter architecture document and threat intelligence document.

Prompts for a few details about the application, then writes both documents to
the configured paths. The generated documents validate cleanly and produce a
non-empty report, so 'threatmap analyze' works immediately afterwards.

Examples:
  # Interactive scaffold
  threatmap init

  # Non-interactive scaffold with default answers
  threatmap init --defaults

  # Overwrite existing documents
  threatmap init --defaults --force`,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false,
		"Overwrite existing documents")
	initCmd.Flags().BoolVar(&initDefaults, "defaults", false,
		"Skip prompts and scaffold with default answers")
}

// promptModel drives the interactive question flow
type promptModel struct {
	questions []string
	idx       int
	inputs    []textinput.Model
	done      bool
}

func newPromptModel(questions, placeholders []string) promptModel {
	inputs := make([]textinput.Model, len(questions))
	for i := range questions {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 120
		ti.Width = 40
		inputs[i] = ti
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	return promptModel{questions: questions, inputs: inputs}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.idx == len(m.inputs)-1 {
				m.done = true
				return m, tea.Quit
			}
			m.inputs[m.idx].Blur()
			m.idx++
			m.inputs[m.idx].Focus()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.idx], cmd = m.inputs[m.idx].Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	var sb strings.Builder
	for i := 0; i <= m.idx && i < len(m.questions); i++ {
		sb.WriteString(m.questions[i] + "\n")
		sb.WriteString(m.inputs[i].View() + "\n\n")
	}
	sb.WriteString("(enter to continue, esc to cancel)\n")
	return sb.String()
}

// Values returns the answers in question order
func (m promptModel) Values() []string {
	values := make([]string, len(m.inputs))
	for i, input := range m.inputs {
		values[i] = input.Value()
	}
	return values
}

func runInit(cmd *cobra.Command, args []string) error {
	answers := defaultScaffoldAnswers()

	if !initDefaults {
		questions := []string{
			"Application name?",
			"Public-facing service name?",
			"Service port?",
			"Primary database name?",
		}
		placeholders := []string{
			answers.AppName,
			answers.ServiceName,
			strconv.Itoa(answers.ServicePort),
			answers.DatabaseName,
		}

		final, err := tea.NewProgram(newPromptModel(questions, placeholders)).Run()
		if err != nil {
			return fmt.Errorf("prompt failed: %w", err)
		}
		result, ok := final.(promptModel)
		if !ok || !result.done {
			return fmt.Errorf("init cancelled")
		}
		answers = answersFromValues(result.Values())
	}

	if err := writeScaffold(answers, archPath, intelPath, initForce); err != nil {
		return err
	}

	fmt.Printf("Wrote %s and %s\n", archPath, intelPath)
	fmt.Println("Run 'threatmap analyze' to generate a threat model report.")
	return nil
}

// answersFromValues maps prompt answers onto scaffold answers, keeping
// defaults for blank responses
func answersFromValues(values []string) scaffoldAnswers {
	answers := defaultScaffoldAnswers()
	if len(values) > 0 && strings.TrimSpace(values[0]) != "" {
		answers.AppName = strings.TrimSpace(values[0])
	}
	if len(values) > 1 && strings.TrimSpace(values[1]) != "" {
		answers.ServiceName = strings.TrimSpace(values[1])
	}
	if len(values) > 2 && strings.TrimSpace(values[2]) != "" {
		if port, err := strconv.Atoi(strings.TrimSpace(values[2])); err == nil && port > 0 {
			answers.ServicePort = port
		}
	}
	if len(values) > 3 && strings.TrimSpace(values[3]) != "" {
		answers.DatabaseName = strings.TrimSpace(values[3])
	}
	return answers
}
