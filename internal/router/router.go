package router

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/gorilla/mux"
)

const maxRedirects = 10

var (
	ErrNoRoute       = errors.New("no route matches")
	ErrRedirectLoop  = errors.New("too many navigation redirects")
	ErrInvalidTarget = errors.New("navigation target must be an absolute path")
)

// Route describes one console view. Path is a gorilla/mux pattern such as
// /chargers/{id}.
type Route struct {
	Name         string
	Path         string
	Title        string
	RequiresAuth bool
}

// Location is a navigation target: a path plus its query string.
//
// Query holds the decoded parameters. The Raw fields and Fragment keep the
// target as it was written so FullPath can reproduce it. A Location built by
// hand may leave them empty.
type Location struct {
	Path     string
	Query    url.Values
	RawPath  string
	RawQuery string
	Fragment string
}

// ParseLocation accepts "/path?query#fragment".
func ParseLocation(raw string) (Location, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return Location{}, fmt.Errorf("%w: %q", ErrInvalidTarget, raw)
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return Location{}, fmt.Errorf("parse navigation target %q: %w", raw, err)
	}

	return Location{
		Path:     parsed.Path,
		Query:    parsed.Query(),
		RawPath:  parsed.RawPath,
		RawQuery: parsed.RawQuery,
		Fragment: parsed.Fragment,
	}, nil
}

// FullPath is the target as the login redirect carries it. A parsed query is
// emitted unchanged; otherwise Query is encoded.
func (l Location) FullPath() string {
	u := url.URL{Path: l.Path, RawPath: l.RawPath, RawQuery: l.RawQuery, Fragment: l.Fragment}
	if u.RawQuery == "" && len(l.Query) > 0 {
		u.RawQuery = l.Query.Encode()
	}
	return u.String()
}

type Resolved struct {
	Route    Route
	Params   map[string]string
	Location Location
	// RedirectedFrom is the first location requested when hooks redirected
	// the navigation.
	RedirectedFrom *Location
}

type Decision struct {
	Redirect *Location
}

func Allow() Decision {
	return Decision{}
}

func RedirectTo(to Location) Decision {
	return Decision{Redirect: &to}
}

// Hook runs before a navigation is committed.
type Hook func(to Resolved) Decision

type Router struct {
	matcher *mux.Router
	routes  map[string]Route
	order   []Route

	mu    sync.RWMutex
	hooks []Hook
}

// New registers routes in order; the first match wins, so catch-all patterns
// go last.
func New(routes []Route) (*Router, error) {
	r := &Router{
		matcher: mux.NewRouter(),
		routes:  make(map[string]Route, len(routes)),
		order:   make([]Route, 0, len(routes)),
	}

	for _, route := range routes {
		name := strings.TrimSpace(route.Name)
		if name == "" {
			return nil, fmt.Errorf("route %q has no name", route.Path)
		}
		if _, exists := r.routes[name]; exists {
			return nil, fmt.Errorf("duplicate route name %q", name)
		}
		if !strings.HasPrefix(route.Path, "/") {
			return nil, fmt.Errorf("route %q path %q must start with /", name, route.Path)
		}

		muxRoute := r.matcher.Path(route.Path).Name(name)
		if err := muxRoute.GetError(); err != nil {
			return nil, fmt.Errorf("route %q: %w", name, err)
		}

		r.routes[name] = route
		r.order = append(r.order, route)
	}

	return r, nil
}

// Routes returns the route table in registration order.
func (r *Router) Routes() []Route {
	out := make([]Route, len(r.order))
	copy(out, r.order)
	return out
}

// BeforeEach installs a hook that runs on every Push, the first one included.
func (r *Router) BeforeEach(hook Hook) {
	if hook == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, hook)
}

func (r *Router) Resolve(target string) (Resolved, error) {
	loc, err := ParseLocation(target)
	if err != nil {
		return Resolved{}, err
	}
	return r.resolveLocation(loc)
}

func (r *Router) resolveLocation(loc Location) (Resolved, error) {
	loc.Path = normalizePath(loc.Path)
	if loc.RawPath != "" {
		loc.RawPath = normalizePath(loc.RawPath)
	}

	req := &http.Request{Method: http.MethodGet, URL: &url.URL{Path: loc.Path}}
	var match mux.RouteMatch
	if !r.matcher.Match(req, &match) || match.Route == nil {
		return Resolved{}, fmt.Errorf("%w: %s", ErrNoRoute, loc.Path)
	}

	route, ok := r.routes[match.Route.GetName()]
	if !ok {
		return Resolved{}, fmt.Errorf("%w: %s", ErrNoRoute, loc.Path)
	}

	params := make(map[string]string, len(match.Vars))
	for k, v := range match.Vars {
		params[k] = v
	}

	return Resolved{Route: route, Params: params, Location: loc}, nil
}

// Push resolves target and runs the hooks in order. A redirecting hook
// restarts resolution at the new location.
func (r *Router) Push(target string) (Resolved, error) {
	loc, err := ParseLocation(target)
	if err != nil {
		return Resolved{}, err
	}

	r.mu.RLock()
	hooks := make([]Hook, len(r.hooks))
	copy(hooks, r.hooks)
	r.mu.RUnlock()

	var from *Location
	for hop := 0; hop <= maxRedirects; hop++ {
		resolved, err := r.resolveLocation(loc)
		if err != nil {
			return Resolved{}, err
		}
		resolved.RedirectedFrom = from

		redirect := runHooks(hooks, resolved)
		if redirect == nil {
			return resolved, nil
		}

		if from == nil {
			first := resolved.Location
			from = &first
		}
		loc = *redirect
	}

	return Resolved{}, fmt.Errorf("%w: started at %s", ErrRedirectLoop, from.FullPath())
}

func runHooks(hooks []Hook, to Resolved) *Location {
	for _, hook := range hooks {
		if decision := hook(to); decision.Redirect != nil {
			return decision.Redirect
		}
	}
	return nil
}

func normalizePath(p string) string {
	if p == "" {
		return "/"
	}
	return path.Clean(p)
}
