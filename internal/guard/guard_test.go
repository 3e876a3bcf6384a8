package guard

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ngocminh-dev/tcms-api/internal/models"
	"github.com/ngocminh-dev/tcms-api/internal/session"
)

func authedState(role models.Role) session.State {
	return session.State{Token: "jwt-token", Username: "u", Role: role}
}

func TestEvaluateUnauthenticatedAlwaysLogin(t *testing.T) {
	for _, req := range []Requirements{
		{},
		{RequireAdmin: true},
		{RequireAdminOrStaff: true},
		{RequireAdmin: true, RequireAdminOrStaff: true},
	} {
		decision := Evaluate(session.State{}, req)
		assert.False(t, decision.Render)
		assert.Equal(t, RouteLogin, decision.Redirect, "requirements %+v", req)
	}
}

func TestEvaluateExhaustive(t *testing.T) {
	roles := []models.Role{models.RoleAdmin, models.RoleStaff, models.RoleUser}

	type expectation struct {
		render   bool
		redirect Route
	}

	expect := func(authenticated bool, role models.Role, req Requirements) expectation {
		if !authenticated {
			return expectation{redirect: RouteLogin}
		}
		if req.RequireAdmin && role != models.RoleAdmin {
			return expectation{redirect: RouteDashboard}
		}
		if req.RequireAdminOrStaff && role != models.RoleAdmin && role != models.RoleStaff {
			return expectation{redirect: RouteDashboard}
		}
		return expectation{render: true}
	}

	for _, authenticated := range []bool{false, true} {
		for _, role := range roles {
			for _, requireAdmin := range []bool{false, true} {
				for _, requireAdminOrStaff := range []bool{false, true} {
					req := Requirements{RequireAdmin: requireAdmin, RequireAdminOrStaff: requireAdminOrStaff}
					state := session.State{}
					if authenticated {
						state = authedState(role)
					}

					name := fmt.Sprintf("auth=%t role=%s admin=%t adminOrStaff=%t",
						authenticated, role, requireAdmin, requireAdminOrStaff)
					want := expect(authenticated, role, req)
					got := Evaluate(state, req)
					assert.Equal(t, want.render, got.Render, name)
					assert.Equal(t, want.redirect, got.Redirect, name)
				}
			}
		}
	}
}

func TestEvaluateBothFlagsAdminWins(t *testing.T) {
	// With both flags set a staff member is redirected even though the
	// admin-or-staff rule alone would let them through.
	req := Requirements{RequireAdmin: true, RequireAdminOrStaff: true}

	decision := Evaluate(authedState(models.RoleStaff), req)
	assert.False(t, decision.Render)
	assert.Equal(t, RouteDashboard, decision.Redirect)

	decision = Evaluate(authedState(models.RoleAdmin), req)
	assert.True(t, decision.Render)
}

func TestEvaluateUnknownRole(t *testing.T) {
	state := session.State{Token: "jwt-token", Role: "ROLE_MYSTERY"}

	assert.True(t, Evaluate(state, Requirements{}).Render)
	assert.Equal(t, RouteDashboard, Evaluate(state, Requirements{RequireAdmin: true}).Redirect)
	assert.Equal(t, RouteDashboard, Evaluate(state, Requirements{RequireAdminOrStaff: true}).Redirect)
}
