package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

type StaffRole int

const (
	RoleManager StaffRole = iota
	RoleReceptionEmployee
	RoleTrainer
)

func (r StaffRole) String() string {
	switch r {
	case RoleManager:
		return "Manager"
	case RoleReceptionEmployee:
		return "ReceptionEmployee"
	case RoleTrainer:
		return "Trainer"
	default:
		return "Unknown"
	}
}

// ParseStaffRole accepts both the numeric and the named form of a role.
func ParseStaffRole(s string) (StaffRole, error) {
	switch s {
	case "Manager":
		return RoleManager, nil
	case "ReceptionEmployee":
		return RoleReceptionEmployee, nil
	case "Trainer":
		return RoleTrainer, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < int(RoleManager) || n > int(RoleTrainer) {
		return 0, fmt.Errorf("unknown staff role %q", s)
	}
	return StaffRole(n), nil
}

// UnmarshalJSON accepts the role as a number or by name.
func (r *StaffRole) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		raw = string(data)
	}
	role, err := ParseStaffRole(raw)
	if err != nil {
		return err
	}
	*r = role
	return nil
}

type Company struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsReception bool   `json:"isReception,omitempty"`
}

// SessionState is the persisted part of a session: the token and what the
// user picked after logging in.
type SessionState struct {
	ID              string       `json:"id" bson:"_id"`
	Token           string       `json:"-" bson:"token"`
	User            *StaffMember `json:"user,omitempty" bson:"user,omitempty"`
	Companies       []*Company   `json:"companies,omitempty" bson:"companies,omitempty"`
	SelectedCompany *Company     `json:"selectedCompany,omitempty" bson:"selected_company,omitempty"`
	Role            *StaffRole   `json:"role,omitempty" bson:"role,omitempty"`
	UpdatedAt       time.Time    `json:"updatedAt" bson:"updated_at"`
}

type Paginated[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SelectCompanyRequest names the company and the role the user acts in
// there. Role takes the numeric or the named form.
type SelectCompanyRequest struct {
	CompanyID string `json:"companyId" validate:"required"`
	Role      string `json:"role" validate:"required,staff_role"`
}
