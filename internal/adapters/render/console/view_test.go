package console

import (
	"net/url"
	"testing"
	"time"

	"github.com/bnema/chargectl/internal/application"
	"github.com/bnema/chargectl/internal/domain"
	"github.com/bnema/chargectl/internal/router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var renderNow = time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC)

func resolvedFor(name, title, path string, query url.Values) router.Resolved {
	return router.Resolved{
		Route:    router.Route{Name: name, Title: title},
		Location: router.Location{Path: path, Query: query},
	}
}

func TestRenderLoginViewCarriesRedirectTarget(t *testing.T) {
	output, err := Render(Page{
		Resolved: resolvedFor(application.RouteLogin, "Sign in", "/login", url.Values{"redirect": {"/admin/users"}}),
		Now:      renderNow,
	})

	require.NoError(t, err)
	assert.Contains(t, output, "Sign in")
	assert.Contains(t, output, "chargectl login")
	assert.Contains(t, output, "after signing in you will continue to /admin/users")
}

func TestRenderUserSettingsShowsProfileAndTokenExpiry(t *testing.T) {
	output, err := Render(Page{
		Resolved: resolvedFor(application.RouteUserSettings, "User settings", "/user", nil),
		Session: domain.Session{
			Token:         "tok",
			User:          domain.UserProfile{"id": float64(7), "username": "operator", "email": "ops@example.com", "is_admin": false},
			UserFetchedAt: renderNow.Add(-5 * time.Minute),
		},
		Token: &domain.TokenInfo{Subject: "operator", ExpiresAt: renderNow.Add(90 * time.Minute)},
		Now:   renderNow,
	})

	require.NoError(t, err)
	assert.Contains(t, output, "signed in as operator")
	assert.Contains(t, output, "email: ops@example.com")
	assert.Contains(t, output, "id: 7")
	assert.Contains(t, output, "is_admin: false")
	assert.Contains(t, output, "token: expires in 2 hours (12:30)")
	assert.Contains(t, output, "profile loaded at 10:55")
}

func TestRenderUserSettingsFlagsExpiredToken(t *testing.T) {
	output, err := Render(Page{
		Resolved: resolvedFor(application.RouteUserSettings, "User settings", "/user", nil),
		Session:  domain.Session{Token: "tok", User: domain.UserProfile{"username": "operator"}},
		Token:    &domain.TokenInfo{ExpiresAt: renderNow.Add(-time.Hour)},
		Now:      renderNow,
	})

	require.NoError(t, err)
	assert.Contains(t, output, "token: expired at 10:00")
}

func TestRenderAdminUsersRequiresAdministrator(t *testing.T) {
	page := Page{
		Resolved: resolvedFor(application.RouteAdminUsers, "Users", "/admin/users", nil),
		Session:  domain.Session{Token: "tok", User: domain.UserProfile{"username": "operator", "is_admin": "true"}},
		Now:      renderNow,
	}

	output, err := Render(page)
	require.NoError(t, err)
	assert.Contains(t, output, "administrator access required")

	page.Session.User = domain.UserProfile{"username": "root", "is_admin": true}
	output, err = Render(page)
	require.NoError(t, err)
	assert.NotContains(t, output, "administrator access required")
	assert.Contains(t, output, "signed in as root [admin]")
}

func TestRenderDataRouteShowsIdentityAndParams(t *testing.T) {
	resolved := resolvedFor(application.RouteCharger, "Charger", "/chargers/42", nil)
	resolved.Params = map[string]string{"id": "42"}

	output, err := Render(Page{
		Resolved: resolved,
		Session:  domain.Session{Token: "tok", User: domain.UserProfile{"full_name": "Ada Operator"}},
		Now:      renderNow,
	})

	require.NoError(t, err)
	assert.Contains(t, output, "Charger")
	assert.Contains(t, output, "/chargers/42")
	assert.Contains(t, output, "signed in as Ada Operator")
	assert.Contains(t, output, "id: 42")
}

func TestRenderNotFoundShowsPath(t *testing.T) {
	output, err := Render(Page{
		Resolved: resolvedFor(application.RouteNotFound, "Not found", "/nowhere", nil),
		Now:      renderNow,
	})

	require.NoError(t, err)
	assert.Contains(t, output, "no console page at /nowhere")
}

func TestRenderHomeWithoutSession(t *testing.T) {
	output, err := Render(Page{
		Resolved: resolvedFor(application.RouteHome, "Home", "/", nil),
		Now:      renderNow,
	})

	require.NoError(t, err)
	assert.Contains(t, output, "not signed in")
}

func TestFormatExpiryRelative(t *testing.T) {
	assert.Equal(t, "expires in 1 minute (11:00)", formatExpiryRelative(renderNow.Add(10*time.Second), renderNow))
	assert.Equal(t, "expires in 3 hours (13:30)", formatExpiryRelative(renderNow.Add(150*time.Minute), renderNow))
	assert.Equal(t, "expires in 2 days (11:00 on 16 Feb)", formatExpiryRelative(renderNow.Add(48*time.Hour), renderNow))
	assert.Equal(t, "expires 2026-02-14T12:00:00Z", formatExpiryRelative(renderNow.Add(time.Hour), time.Time{}))
}
