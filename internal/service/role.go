package service

import (
	"fmt"
	"strings"

	dairyerr "github.com/amterp/dairy/internal/errors"
)

// Role is the kind of logged-in user.
type Role string

const (
	RoleStaff Role = "staff"
	RoleOwner Role = "owner"
)

// Roles lists every role, for flag enums.
var Roles = []string{string(RoleStaff), string(RoleOwner)}

// Action names an operation a role may be allowed to perform.
type Action string

const (
	ActionAddAnimal     Action = "add animals"
	ActionFindAnimal    Action = "search animals"
	ActionDeleteAnimal  Action = "delete animals"
	ActionListAnimals   Action = "list animals"
	ActionAddStaff      Action = "add staff"
	ActionFindStaff     Action = "search staff"
	ActionRemoveStaff   Action = "remove staff"
	ActionListStaff     Action = "list staff"
	ActionManageProfile Action = "manage a staff profile"
	ActionAddMilk       Action = "add milk records"
	ActionAggregateMilk Action = "aggregate milk"
	ActionMilkByAnimal  Action = "view milk by animal"
)

// menuOrder is the order actions are listed in.
var menuOrder = []Action{
	ActionAddAnimal,
	ActionFindAnimal,
	ActionDeleteAnimal,
	ActionListAnimals,
	ActionAddStaff,
	ActionFindStaff,
	ActionRemoveStaff,
	ActionListStaff,
	ActionManageProfile,
	ActionAddMilk,
	ActionAggregateMilk,
	ActionMilkByAnimal,
}

var permissions = map[Role]map[Action]bool{
	RoleOwner: {
		ActionAddAnimal:     true,
		ActionFindAnimal:    true,
		ActionDeleteAnimal:  true,
		ActionListAnimals:   true,
		ActionAddStaff:      true,
		ActionFindStaff:     true,
		ActionRemoveStaff:   true,
		ActionListStaff:     true,
		ActionAddMilk:       true,
		ActionAggregateMilk: true,
	},
	RoleStaff: {
		ActionAddAnimal:     true,
		ActionFindAnimal:    true,
		ActionListAnimals:   true,
		ActionManageProfile: true,
		ActionAddMilk:       true,
		ActionMilkByAnimal:  true,
	},
}

// ParseRole converts a flag or request value to a Role.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleStaff:
		return RoleStaff, nil
	case RoleOwner:
		return RoleOwner, nil
	}
	return "", dairyerr.InvalidField("role", fmt.Sprintf("%q is not one of %s", s, strings.Join(Roles, ", ")))
}

// Allows reports whether the role's menu includes the action.
func (r Role) Allows(a Action) bool {
	return permissions[r][a]
}

// Authorize returns a ForbiddenError when the role may not perform a.
func (r Role) Authorize(a Action) error {
	if r.Allows(a) {
		return nil
	}
	return &dairyerr.ForbiddenError{Role: string(r), Action: string(a)}
}

// Actions lists what the role may do, in menu order.
func (r Role) Actions() []Action {
	var actions []Action
	for _, a := range menuOrder {
		if r.Allows(a) {
			actions = append(actions, a)
		}
	}
	return actions
}
