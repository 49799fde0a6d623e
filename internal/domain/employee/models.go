package employee

import (
	"time"

	"dragondrop/internal/domain/offboarding"
)

type Role string

const (
	RoleSalesDirector Role = "sales_director"
	RoleSalesManager  Role = "sales_manager"
	RoleTeamLead      Role = "team_lead"
	RoleAgent         Role = "agent"
)

var Roles = []Role{RoleSalesDirector, RoleSalesManager, RoleTeamLead, RoleAgent}

func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

type Site string

const (
	SiteAustin    Site = "austin"
	SiteCharlotte Site = "charlotte"
)

// Sites lists the two fixed sales locations; every aggregate view
// partitions on them.
var Sites = []Site{SiteAustin, SiteCharlotte}

func (s Site) Valid() bool {
	return s == SiteAustin || s == SiteCharlotte
}

type Status string

const (
	StatusActive     Status = "active"
	StatusTerminated Status = "terminated"
)

// Tier is an Agent's compensation bracket. The stored value is the system
// of record for pay; tenure-derived eligibility can diverge from it, and
// that divergence is the signal the alerting paths exist to surface.
type Tier string

const (
	TierNew     Tier = "new"
	TierVeteran Tier = "veteran"
)

type Employee struct {
	ID             string                   `json:"id"`
	Name           string                   `json:"name"`
	Role           Role                     `json:"role"`
	Site           Site                     `json:"site"`
	Status         Status                   `json:"status"`
	StartDate      time.Time                `json:"startDate"`
	BirthDate      *time.Time               `json:"birthDate,omitempty"`
	ManagerID      string                   `json:"managerId,omitempty"`
	TeamID         string                   `json:"teamId,omitempty"`
	CommissionTier Tier                     `json:"commissionTier,omitempty"`
	Termination    *offboarding.Termination `json:"termination,omitempty"`
	CreatedAt      time.Time                `json:"createdAt"`
	UpdatedAt      time.Time                `json:"updatedAt"`
}

func (e Employee) Active() bool {
	return e.Status == StatusActive
}

type Team struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Site      Site      `json:"site"`
	CreatedAt time.Time `json:"createdAt"`
}

// ChangeLogEntry is a best-effort audit row; writes never block an
// organizational mutation.
type ChangeLogEntry struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	ChangeType  string    `json:"changeType"`
	Description string    `json:"description"`
	From        string    `json:"from,omitempty"`
	To          string    `json:"to,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
