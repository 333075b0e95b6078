package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/bnema/simpcity-bot/internal/domain"
	"github.com/bnema/simpcity-bot/internal/ports"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type sessionReadyMsg struct {
	api ports.ThreadAPI
}

type rosterFetchedMsg struct {
	members []domain.Member
	err     error
}

// rosterFetchModel restores the session first, then fetches the thread roster.
type rosterFetchModel struct {
	ctx      context.Context
	spinner  spinner.Model
	threadID string
	acquire  func(context.Context) (ports.ThreadAPI, error)
	fetching bool
	members  []domain.Member
	err      error
	done     bool
}

func newRosterFetchModel(ctx context.Context, threadID string, acquire func(context.Context) (ports.ThreadAPI, error)) rosterFetchModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return rosterFetchModel{
		ctx:      ctx,
		spinner:  s,
		threadID: threadID,
		acquire:  acquire,
	}
}

func (m rosterFetchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.acquireSession)
}

func (m rosterFetchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case sessionReadyMsg:
		m.fetching = true
		return m, m.fetchRoster(msg.api)
	case rosterFetchedMsg:
		m.done = true
		m.members = msg.members
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m rosterFetchModel) View() string {
	if m.done {
		return ""
	}
	if m.fetching {
		return fmt.Sprintf("%s Fetching members of thread %s...", m.spinner.View(), m.threadID)
	}

	return fmt.Sprintf("%s Restoring Instagram session...", m.spinner.View())
}

func (m rosterFetchModel) acquireSession() tea.Msg {
	api, err := m.acquire(m.ctx)
	if err != nil {
		return rosterFetchedMsg{err: fmt.Errorf("acquire session: %w", err)}
	}

	return sessionReadyMsg{api: api}
}

func (m rosterFetchModel) fetchRoster(api ports.ThreadAPI) tea.Cmd {
	return func() tea.Msg {
		return fetchRoster(m.ctx, api, m.threadID)
	}
}

func fetchRoster(ctx context.Context, api ports.ThreadAPI, threadID string) rosterFetchedMsg {
	fetched, err := api.Members(ctx, threadID)
	if err != nil {
		return rosterFetchedMsg{err: err}
	}

	return rosterFetchedMsg{members: domain.NewSnapshot(fetched).Members()}
}

func runRosterFetch(ctx context.Context, output io.Writer, threadID string, acquire func(context.Context) (ports.ThreadAPI, error)) ([]domain.Member, error) {
	p := tea.NewProgram(
		newRosterFetchModel(ctx, threadID, acquire),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	result, ok := finalModel.(rosterFetchModel)
	if !ok {
		return nil, fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.members, result.err
}
