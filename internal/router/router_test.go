package router

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoutes() []Route {
	return []Route{
		{Name: "home", Path: "/"},
		{Name: "login", Path: "/login"},
		{Name: "chargers", Path: "/chargers", RequiresAuth: true},
		{Name: "charger", Path: "/chargers/{id}", RequiresAuth: true},
		{Name: "not-found", Path: "/{catchAll:.*}"},
	}
}

func newTestRouter(t *testing.T) *Router {
	t.Helper()
	r, err := New(testRoutes())
	require.NoError(t, err)
	return r
}

func TestNewRejectsInvalidRouteTables(t *testing.T) {
	t.Parallel()

	_, err := New([]Route{{Name: "", Path: "/"}})
	require.Error(t, err)

	_, err = New([]Route{{Name: "a", Path: "/a"}, {Name: "a", Path: "/b"}})
	require.ErrorContains(t, err, `duplicate route name "a"`)

	_, err = New([]Route{{Name: "rel", Path: "relative"}})
	require.Error(t, err)
}

func TestResolveMatchesInRegistrationOrder(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)

	resolved, err := r.Resolve("/chargers/42?tab=history")
	require.NoError(t, err)
	assert.Equal(t, "charger", resolved.Route.Name)
	assert.Equal(t, map[string]string{"id": "42"}, resolved.Params)
	assert.Equal(t, "history", resolved.Location.Query.Get("tab"))
	assert.Equal(t, "/chargers/42?tab=history", resolved.Location.FullPath())

	resolved, err = r.Resolve("/")
	require.NoError(t, err)
	assert.Equal(t, "home", resolved.Route.Name)

	resolved, err = r.Resolve("/chargers/")
	require.NoError(t, err)
	assert.Equal(t, "chargers", resolved.Route.Name)

	resolved, err = r.Resolve("/nowhere/at/all")
	require.NoError(t, err)
	assert.Equal(t, "not-found", resolved.Route.Name)
	assert.Equal(t, "nowhere/at/all", resolved.Params["catchAll"])
}

func TestFullPathKeepsTargetAsWritten(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		target string
		want   string
	}{
		{name: "query order", target: "/chargers/42?z=1&a=2", want: "/chargers/42?z=1&a=2"},
		{name: "escaped slash in segment", target: "/chargers/a%2Fb", want: "/chargers/a%2Fb"},
		{name: "fragment", target: "/tariffs?page=2#row-7", want: "/tariffs?page=2#row-7"},
		{name: "escaped query value", target: "/charges?q=a%20b&q=c", want: "/charges?q=a%20b&q=c"},
		{name: "trailing slash", target: "/chargers/?z=1&a=2", want: "/chargers?z=1&a=2"},
	}

	r := newTestRouter(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resolved, err := r.Resolve(tc.target)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resolved.Location.FullPath())
		})
	}
}

func TestFullPathEncodesHandBuiltQuery(t *testing.T) {
	t.Parallel()

	loc := Location{Path: "/login", Query: url.Values{"redirect": {"/chargers/42?z=1&a=2"}}}
	assert.Equal(t, "/login?redirect=%2Fchargers%2F42%3Fz%3D1%26a%3D2", loc.FullPath())

	parsed, err := ParseLocation(loc.FullPath())
	require.NoError(t, err)
	assert.Equal(t, "/chargers/42?z=1&a=2", parsed.Query.Get("redirect"))
}

func TestResolveWithoutCatchAllReturnsErrNoRoute(t *testing.T) {
	t.Parallel()

	r, err := New([]Route{{Name: "home", Path: "/"}})
	require.NoError(t, err)

	_, err = r.Resolve("/missing")
	require.ErrorIs(t, err, ErrNoRoute)
}

func TestParseLocationRejectsNonAbsoluteTargets(t *testing.T) {
	t.Parallel()

	for _, target := range []string{"", "chargers", "//evil.example.com/x", "https://evil.example.com"} {
		_, err := ParseLocation(target)
		assert.ErrorIs(t, err, ErrInvalidTarget, target)
	}
}

func TestPushRunsHooksOnFirstNavigationAndFollowsRedirects(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	var seen []string
	r.BeforeEach(func(to Resolved) Decision {
		seen = append(seen, to.Location.FullPath())
		if to.Route.RequiresAuth {
			return RedirectTo(Location{Path: "/login", Query: url.Values{"redirect": {to.Location.FullPath()}}})
		}
		return Allow()
	})

	resolved, err := r.Push("/chargers/7")
	require.NoError(t, err)

	assert.Equal(t, "login", resolved.Route.Name)
	assert.Equal(t, "/chargers/7", resolved.Location.Query.Get("redirect"))
	require.NotNil(t, resolved.RedirectedFrom)
	assert.Equal(t, "/chargers/7", resolved.RedirectedFrom.Path)
	assert.Equal(t, []string{"/chargers/7", "/login?redirect=%2Fchargers%2F7"}, seen)
}

func TestPushStopsAtFirstRedirectingHook(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	secondCalls := 0
	r.BeforeEach(func(to Resolved) Decision {
		if to.Route.Name == "home" {
			return RedirectTo(Location{Path: "/login"})
		}
		return Allow()
	})
	r.BeforeEach(func(to Resolved) Decision {
		secondCalls++
		return Allow()
	})

	resolved, err := r.Push("/")
	require.NoError(t, err)
	assert.Equal(t, "login", resolved.Route.Name)
	assert.Equal(t, 1, secondCalls)
}

func TestPushDetectsRedirectLoops(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	r.BeforeEach(func(to Resolved) Decision {
		if to.Route.Name == "login" {
			return RedirectTo(Location{Path: "/"})
		}
		return RedirectTo(Location{Path: "/login"})
	})

	_, err := r.Push("/")
	require.ErrorIs(t, err, ErrRedirectLoop)
}

func TestRoutesReturnsCopyInOrder(t *testing.T) {
	t.Parallel()

	r := newTestRouter(t)
	routes := r.Routes()
	require.Len(t, routes, 5)
	assert.Equal(t, "home", routes[0].Name)
	assert.Equal(t, "not-found", routes[4].Name)

	routes[0].Name = "changed"
	assert.Equal(t, "home", r.Routes()[0].Name)
}
