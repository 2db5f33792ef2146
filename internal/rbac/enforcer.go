package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// Role names carried in the auth token.
const (
	RoleEmployee = "employee"
	RoleLead     = "lead"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

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

// NewEnforcer builds the role model with the portal's static policy set.
// Team-level scoping (a lead only sees their own team) is enforced in the
// services; casbin answers the coarse role/resource/action question.
func NewEnforcer() (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	policies := [][]string{
		{RoleEmployee, "leave", "read"},
		{RoleEmployee, "leave", "create"},
		{RoleEmployee, "leave", "update"},
		{RoleEmployee, "leave", "delete"},
		{RoleEmployee, "balance", "read"},
		{RoleEmployee, "holiday", "read"},
		{RoleEmployee, "announcement", "read"},

		{RoleLead, "leave", "approve"},
		{RoleLead, "report", "read"},

		{RoleManager, "employee", "manage"},
		{RoleManager, "holiday", "manage"},
		{RoleManager, "announcement", "manage"},
	}
	if _, err := e.AddPolicies(policies); err != nil {
		return nil, err
	}

	groupings := [][]string{
		{RoleLead, RoleEmployee},
		{RoleManager, RoleLead},
		{RoleAdmin, RoleManager},
	}
	if _, err := e.AddGroupingPolicies(groupings); err != nil {
		return nil, err
	}

	return e, nil
}

// IsOrgManager reports whether the role has organization-wide approval scope.
func IsOrgManager(role string) bool {
	return role == RoleManager || role == RoleAdmin
}
