package service

import (
	"testing"

	"github.com/mcatania72/CRM-System-NEW/internal/model"
)

func TestCheckPermission(t *testing.T) {
	svc, err := NewAuthorizationService()
	if err != nil {
		t.Fatalf("NewAuthorizationService failed: %v", err)
	}

	cases := []struct {
		role     model.UserRole
		resource string
		action   string
		want     bool
	}{
		{model.RoleAdmin, "users", "read", true},
		{model.RoleManager, "users", "read", true},
		{model.RoleSalesperson, "users", "read", false},
		{model.RoleAdmin, "reports", "read", true},
		{model.RoleManager, "reports", "read", true},
		{model.RoleSalesperson, "reports", "read", false},
	}
	for _, tc := range cases {
		user := &model.User{Role: tc.role}
		got, err := svc.CheckPermission(user, tc.resource, tc.action)
		if err != nil {
			t.Fatalf("CheckPermission(%s, %s, %s) failed: %v", tc.role, tc.resource, tc.action, err)
		}
		if got != tc.want {
			t.Errorf("CheckPermission(%s, %s, %s) = %v, want %v", tc.role, tc.resource, tc.action, got, tc.want)
		}
	}
}
