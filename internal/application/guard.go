package application

import (
	"net/url"

	"github.com/bnema/chargectl/internal/router"
	"github.com/rs/zerolog"
)

// RedirectParam carries the originally requested path to the login view.
const RedirectParam = "redirect"

type SessionReader interface {
	IsAuthenticated() bool
}

// Guard gates routes marked RequiresAuth. It reads the in-memory session
// only, so the session must be restored before the guard is installed.
type Guard struct {
	session   SessionReader
	loginPath string
	logger    zerolog.Logger
}

func NewGuard(session SessionReader, loginPath string, logger zerolog.Logger) *Guard {
	if loginPath == "" {
		loginPath = LoginPath
	}

	return &Guard{
		session:   session,
		loginPath: loginPath,
		logger:    logger.With().Str("component", "guard").Logger(),
	}
}

func (g *Guard) Check(to router.Resolved) router.Decision {
	if !to.Route.RequiresAuth || g.session.IsAuthenticated() {
		return router.Allow()
	}

	target := to.Location.FullPath()
	g.logger.Debug().Str("route", to.Route.Name).Str("target", target).Msg("redirecting to login")

	return router.RedirectTo(router.Location{
		Path:  g.loginPath,
		Query: url.Values{RedirectParam: {target}},
	})
}

// Install registers the guard as a before-each hook on r.
func (g *Guard) Install(r *router.Router) {
	r.BeforeEach(g.Check)
}
