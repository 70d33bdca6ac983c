package application

import "github.com/bnema/chargectl/internal/router"

const (
	LoginPath = "/login"

	RouteHome           = "home"
	RouteLogin          = "login"
	RouteForgotPassword = "forgot-password"
	RouteResetPassword  = "reset-password"
	RouteAccountVerify  = "account-verify"
	RouteUserCreate     = "user-create"
	RouteChargers       = "chargers"
	RouteCharger        = "charger"
	RouteTariffs        = "tariffs"
	RouteCharges        = "charges"
	RouteUserSettings   = "user-settings"
	RouteAdminUsers     = "admin-users"
	RouteNotFound       = "not-found"
)

// ConsoleRoutes is the console's route table. The catch-all must stay last.
func ConsoleRoutes() []router.Route {
	return []router.Route{
		{Name: RouteHome, Path: "/", Title: "Home"},
		{Name: RouteLogin, Path: LoginPath, Title: "Sign in"},
		{Name: RouteForgotPassword, Path: "/forgot-password", Title: "Forgot password"},
		{Name: RouteResetPassword, Path: "/reset-password", Title: "Reset password"},
		{Name: RouteAccountVerify, Path: "/auth/account-verify", Title: "Verify account"},
		{Name: RouteUserCreate, Path: "/usercreate", Title: "Create account"},
		{Name: RouteChargers, Path: "/chargers", Title: "Chargers", RequiresAuth: true},
		{Name: RouteCharger, Path: "/chargers/{id}", Title: "Charger", RequiresAuth: true},
		{Name: RouteTariffs, Path: "/tariffs", Title: "Tariffs", RequiresAuth: true},
		{Name: RouteCharges, Path: "/charges", Title: "Charges", RequiresAuth: true},
		{Name: RouteUserSettings, Path: "/user", Title: "User settings", RequiresAuth: true},
		{Name: RouteAdminUsers, Path: "/admin/users", Title: "Users", RequiresAuth: true},
		{Name: RouteNotFound, Path: "/{catchAll:.*}", Title: "Not found"},
	}
}

// NewConsoleRouter builds the console router and installs guard on it.
func NewConsoleRouter(guard *Guard) (*router.Router, error) {
	r, err := router.New(ConsoleRoutes())
	if err != nil {
		return nil, err
	}
	if guard != nil {
		guard.Install(r)
	}
	return r, nil
}
