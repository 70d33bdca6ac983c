package console

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/bnema/chargectl/internal/application"
	"github.com/bnema/chargectl/internal/domain"
	"github.com/bnema/chargectl/internal/router"
	"github.com/charmbracelet/lipgloss"
)

// Page is everything a view needs: the resolved navigation plus a session
// snapshot.
type Page struct {
	Resolved router.Resolved
	Session  domain.Session
	// Token holds unverified claims of the access token, when it is a JWT.
	Token *domain.TokenInfo
	Now   time.Time
}

func renderPage(page Page, s styles) string {
	switch page.Resolved.Route.Name {
	case application.RouteLogin:
		return renderLogin(page, s)
	case application.RouteUserSettings:
		return renderUserSettings(page, s)
	case application.RouteAdminUsers:
		return renderAdminUsers(page, s)
	case application.RouteNotFound:
		return renderNotFound(page, s)
	case application.RouteHome:
		return renderHome(page, s)
	default:
		return renderRoute(page, s)
	}
}

func renderHeader(page Page, s styles) []string {
	title := page.Resolved.Route.Title
	if title == "" {
		title = page.Resolved.Route.Name
	}

	return []string{
		s.title.Render(title),
		s.header.Render(page.Resolved.Location.FullPath()),
	}
}

func identityLine(session domain.Session, s styles) string {
	if !session.IsAuthenticated() {
		return s.hint.Render("not signed in")
	}
	if session.User == nil {
		return s.detail.Render("signed in (profile not loaded)")
	}

	line := "signed in as " + s.user.Render(session.User.DisplayName())
	if session.IsAdmin() {
		line += " " + s.header.Render("[admin]")
	}
	return line
}

func renderLogin(page Page, s styles) string {
	lines := renderHeader(page, s)

	if page.Session.IsAuthenticated() {
		lines = append(lines, s.section.Render(identityLine(page.Session, s)))
	} else {
		lines = append(lines, s.section.Render(s.detail.Render("Run `chargectl login` to sign in.")))
	}

	if target := page.Resolved.Location.Query.Get(application.RedirectParam); target != "" {
		lines = append(lines, s.hint.Render("after signing in you will continue to "+target))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderHome(page Page, s styles) string {
	lines := renderHeader(page, s)
	lines = append(lines, s.section.Render(identityLine(page.Session, s)))
	if !page.Session.IsAuthenticated() {
		lines = append(lines, s.hint.Render("sign in to manage chargers, tariffs and charges"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderUserSettings(page Page, s styles) string {
	lines := renderHeader(page, s)
	lines = append(lines, s.section.Render(identityLine(page.Session, s)))

	profile := page.Session.User
	if len(profile) > 0 {
		fields := make([]string, 0, len(profile))
		for _, key := range profile.Keys() {
			fields = append(fields, s.key.Render(key+":")+" "+s.detail.Render(profile.Field(key)))
		}
		lines = append(lines, s.section.Render(lipgloss.JoinVertical(lipgloss.Left, fields...)))
	}

	if page.Token != nil {
		lines = append(lines, s.section.Render(tokenLine(*page.Token, page.Now, s)))
	}
	if !page.Session.UserFetchedAt.IsZero() {
		lines = append(lines, s.hint.Render("profile loaded "+formatTimestamp(page.Session.UserFetchedAt, page.Now)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderAdminUsers(page Page, s styles) string {
	lines := renderHeader(page, s)
	if !page.Session.IsAdmin() {
		lines = append(lines,
			s.section.Render(s.warning.Render("administrator access required")),
			identityLine(page.Session, s),
		)
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, s.section.Render(identityLine(page.Session, s)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderNotFound(page Page, s styles) string {
	lines := renderHeader(page, s)
	lines = append(lines, s.section.Render(s.warning.Render("no console page at "+page.Resolved.Location.Path)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderRoute(page Page, s styles) string {
	lines := renderHeader(page, s)
	lines = append(lines, s.section.Render(identityLine(page.Session, s)))

	if len(page.Resolved.Params) > 0 {
		keys := make([]string, 0, len(page.Resolved.Params))
		for key := range page.Resolved.Params {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			lines = append(lines, s.key.Render(key+":")+" "+s.detail.Render(page.Resolved.Params[key]))
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func tokenLine(info domain.TokenInfo, now time.Time, s styles) string {
	label := s.key.Render("token:")
	if info.ExpiresAt.IsZero() {
		return label + " " + s.detail.Render("no expiry claim")
	}
	if info.Expired(now) {
		return label + " " + s.warning.Render("expired "+formatTimestamp(info.ExpiresAt, now))
	}
	return label + " " + s.detail.Render(formatExpiryRelative(info.ExpiresAt, now))
}

func formatTimestamp(at, now time.Time) string {
	if now.IsZero() {
		return at.Format(time.RFC3339)
	}

	yearA, monthA, dayA := now.Date()
	yearB, monthB, dayB := at.Date()
	if yearA == yearB && monthA == monthB && dayA == dayB {
		return "at " + at.Format("15:04")
	}

	return "at " + at.Format("15:04 on 02 Jan")
}

func formatExpiryRelative(expiresAt, now time.Time) string {
	if now.IsZero() {
		return "expires " + formatTimestamp(expiresAt, now)
	}

	remaining := expiresAt.Sub(now)
	if remaining < time.Hour {
		minutes := int(math.Ceil(remaining.Minutes()))
		if minutes < 1 {
			minutes = 1
		}
		return fmt.Sprintf("expires in %d %s (%s)", minutes, plural(minutes, "minute"), expiresAt.Format("15:04"))
	}
	if remaining < 24*time.Hour {
		hours := int(math.Ceil(remaining.Hours()))
		return fmt.Sprintf("expires in %d %s (%s)", hours, plural(hours, "hour"), expiresAt.Format("15:04"))
	}

	days := int(math.Ceil(remaining.Hours() / 24))
	return fmt.Sprintf("expires in %d %s (%s)", days, plural(days, "day"), expiresAt.Format("15:04 on 02 Jan"))
}

func plural(n int, unit string) string {
	if n == 1 {
		return unit
	}
	return unit + "s"
}
