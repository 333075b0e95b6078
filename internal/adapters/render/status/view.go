package status

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/simpcity-bot/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

type RenderOptions struct {
	Now time.Time
}

type Roster struct {
	ThreadID  string
	Members   []domain.Member
	Admin     domain.Handle
	BatchSize int
}

type SessionReport struct {
	Path    string
	Present bool
	Session domain.Session
	// Problem describes why a present session file cannot be used.
	Problem string
}

func renderRoster(roster Roster, opts RenderOptions, s styles) string {
	batches := len(domain.Batch(roster.Members, roster.BatchSize))
	lines := []string{
		s.title.Render("SimpCity Thread " + roster.ThreadID),
		s.header.Render(fmt.Sprintf("members: %d | mention batches: %d", len(roster.Members), batches)),
	}

	if len(roster.Members) == 0 {
		lines = append(lines, s.empty.Render("No members visible in this thread."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	width := 0
	for _, member := range roster.Members {
		width = max(width, lipgloss.Width("@"+string(member.Handle)))
	}

	rows := make([]string, 0, len(roster.Members))
	for _, member := range roster.Members {
		rows = append(rows, memberLine(member, roster.Admin, width, s))
	}
	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, rows...)))

	if roster.Admin != "" && !hasHandle(roster.Members, roster.Admin) {
		lines = append(lines, s.warning.Render(fmt.Sprintf("admin @%s is not a member of this thread", roster.Admin)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func memberLine(member domain.Member, admin domain.Handle, width int, s styles) string {
	name := "@" + string(member.Handle)
	padded := name + strings.Repeat(" ", width-lipgloss.Width(name))

	style := s.handle
	suffix := ""
	if admin != "" && member.Handle == admin {
		style = s.admin
		suffix = " " + s.admin.Render("[admin]")
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		style.Render(padded),
		"  ",
		s.id.Render(string(member.ID)),
		suffix,
	)
}

func hasHandle(members []domain.Member, handle domain.Handle) bool {
	for _, member := range members {
		if member.Handle == handle {
			return true
		}
	}
	return false
}

func renderSession(report SessionReport, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Saved Session"),
		s.header.Render("path: " + report.Path),
	}

	if !report.Present {
		lines = append(lines, s.empty.Render("No saved session. The next run logs in with the configured password."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	if report.Problem != "" {
		lines = append(lines, s.warning.Render("unusable: "+report.Problem))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	session := report.Session
	state := s.good.Render("complete")
	if !session.Valid() {
		state = s.warning.Render("incomplete")
	}

	details := []string{
		keyValue("account", "@"+session.Username, s),
		keyValue("user id", string(session.UserID), s),
		keyValue("state", state, s),
		keyValue("saved", formatAge(session.SavedAt, opts.Now), s),
	}
	if len(session.Cookies) > 0 {
		details = append(details, keyValue("cookies", fmt.Sprintf("%d", len(session.Cookies)), s))
	}

	lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, details...)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func keyValue(key string, value string, s styles) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, s.key.Render(key+":"), " ", s.detail.Render(value))
}

func formatAge(savedAt, now time.Time) string {
	if savedAt.IsZero() {
		return "unknown"
	}
	if now.IsZero() || savedAt.After(now) {
		return savedAt.Format(time.RFC3339)
	}

	elapsed := now.Sub(savedAt)
	if elapsed < time.Hour {
		return "just now"
	}
	if elapsed < 24*time.Hour {
		hours := int(math.Floor(elapsed.Hours()))
		suffix := "hours"
		if hours == 1 {
			suffix = "hour"
		}
		return fmt.Sprintf("%d %s ago (%s)", hours, suffix, savedAt.Format("15:04"))
	}

	days := int(math.Floor(elapsed.Hours() / 24))
	suffix := "days"
	if days == 1 {
		suffix = "day"
	}
	return fmt.Sprintf("%d %s ago (%s)", days, suffix, savedAt.Format("15:04 on 02 Jan"))
}
