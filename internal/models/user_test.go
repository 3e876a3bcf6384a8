package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRolePredicates(t *testing.T) {
	cases := []struct {
		role         Role
		admin        bool
		staff        bool
		adminOrStaff bool
	}{
		{RoleAdmin, true, false, true},
		{RoleStaff, false, true, true},
		{RoleUser, false, false, false},
		{"", false, false, false},
		{"ROLE_MYSTERY", false, false, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.admin, tc.role.IsAdmin(), "IsAdmin %q", tc.role)
		assert.Equal(t, tc.staff, tc.role.IsStaff(), "IsStaff %q", tc.role)
		assert.Equal(t, tc.adminOrStaff, tc.role.IsAdminOrStaff(), "IsAdminOrStaff %q", tc.role)
	}
}

func TestRoleDisplayNameIsTotal(t *testing.T) {
	assert.Equal(t, "Quản trị viên", RoleAdmin.DisplayName())
	assert.Equal(t, "Nhân viên", RoleStaff.DisplayName())
	assert.Equal(t, "Người dùng", RoleUser.DisplayName())
	assert.Equal(t, "Người dùng", Role("").DisplayName())
	assert.Equal(t, "Người dùng", Role("ROLE_MYSTERY").DisplayName())
}

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleStaff.Valid())
	assert.True(t, RoleUser.Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("ADMIN").Valid())
}

func TestCertificateStatusValid(t *testing.T) {
	assert.True(t, CertificatePending.Valid())
	assert.True(t, CertificatePass.Valid())
	assert.True(t, CertificateFail.Valid())
	assert.False(t, CertificateStatus("").Valid())
	assert.False(t, CertificateStatus("DONE").Valid())
}

func TestStudentFullName(t *testing.T) {
	assert.Equal(t, "Nguyen Thi Mai", Student{Ho: "Nguyen Thi", Ten: "Mai"}.FullName())
	assert.Equal(t, "Mai", Student{Ten: "Mai"}.FullName())
	assert.Equal(t, "Nguyen", Student{Ho: "Nguyen"}.FullName())
	assert.Equal(t, "", Student{}.FullName())
}
