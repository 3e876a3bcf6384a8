package guard

import (
	"github.com/ngocminh-dev/tcms-api/internal/session"
)

// Route is a named navigation destination.
type Route string

const (
	RouteLogin     Route = "login"
	RouteDashboard Route = "dashboard"
)

// Requirements are the two independent capability flags a protected view may
// declare. They are not mutually exclusive: a caller may set both to document
// intent, in which case only the admin requirement takes effect.
type Requirements struct {
	RequireAdmin        bool
	RequireAdminOrStaff bool
}

// Decision is the outcome of evaluating the guard. Either the view renders or
// the caller must replace-navigate to Redirect.
type Decision struct {
	Render   bool
	Redirect Route
}

func redirect(to Route) Decision {
	return Decision{Redirect: to}
}

// Evaluate applies the ordered access rules against a session snapshot. It is
// pure and synchronous: no I/O, no session mutation.
//
// The rules short-circuit in fixed order: unauthenticated sessions always go
// to login; an unmet admin requirement and an unmet admin-or-staff
// requirement both fall back to the dashboard landing. When RequireAdmin is
// set the admin-or-staff rule is unreachable; the rule is still evaluated in
// this order on purpose.
func Evaluate(state session.State, req Requirements) Decision {
	if !state.IsAuthenticated() {
		return redirect(RouteLogin)
	}
	if req.RequireAdmin && !state.Role.IsAdmin() {
		return redirect(RouteDashboard)
	}
	if req.RequireAdminOrStaff && !state.Role.IsAdminOrStaff() {
		return redirect(RouteDashboard)
	}
	return Decision{Render: true}
}
