package service

import (
	"fmt"

	crmmodel "github.com/mcatania72/CRM-System-NEW/internal/model"

	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
)

// rbacModel is a classic role/resource/action RBAC model.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// rbacPolicies restricts the privileged surfaces. Routes without a policy
// entry are open to any authenticated user; the admin role additionally
// inherits manager.
var rbacPolicies = [][]string{
	{"manager", "users", "read"},
	{"manager", "reports", "read"},
}

// AuthorizationService answers role-based permission checks.
type AuthorizationService struct {
	enforcer *casbin.Enforcer
}

// NewAuthorizationService builds the enforcer from the embedded model
// and policy set.
func NewAuthorizationService() (*AuthorizationService, error) {
	m, err := casbinmodel.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RBAC model: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize RBAC enforcer: %w", err)
	}

	for _, p := range rbacPolicies {
		if _, err := enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, fmt.Errorf("failed to add policy: %w", err)
		}
	}
	if _, err := enforcer.AddGroupingPolicy(string(crmmodel.RoleAdmin), string(crmmodel.RoleManager)); err != nil {
		return nil, fmt.Errorf("failed to add role inheritance: %w", err)
	}

	return &AuthorizationService{enforcer: enforcer}, nil
}

// CheckPermission reports whether the user's role may perform the action
// on the resource.
func (s *AuthorizationService) CheckPermission(user *crmmodel.User, resource, action string) (bool, error) {
	allowed, err := s.enforcer.Enforce(string(user.Role), resource, action)
	if err != nil {
		return false, fmt.Errorf("permission check failed: %w", err)
	}
	return allowed, nil
}
