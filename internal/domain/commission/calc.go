// Package commission derives an agent's compensation tier and pay
// parameters from elapsed employment time. All functions are pure; they
// read a snapshot and never touch the stored record.
package commission

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"dragondrop/internal/domain/employee"
)

type Calculation struct {
	Tier                employee.Tier   `json:"tier"`
	Salary              decimal.Decimal `json:"salary"`
	CommissionRate      decimal.Decimal `json:"commissionRate"`
	MonthsEmployed      int             `json:"monthsEmployed"`
	DaysUntilTierChange int             `json:"daysUntilTierChange,omitempty"`
	WillChangeToVeteran bool            `json:"willChangeToVeteran"`
	Description         string          `json:"description"`
}

// Calculate returns the pay parameters for an agent at the given instant,
// or nil for any other role. The stored tier wins below the six-month
// threshold (that is how early promotions are represented); at or past it,
// tenure alone dictates veteran pay.
func Calculate(emp employee.Employee, now time.Time) *Calculation {
	if emp.Role != employee.RoleAgent {
		return nil
	}

	months := MonthsBetween(emp.StartDate, now)
	tenureVeteran := months >= VeteranThresholdMonths

	effective := emp.CommissionTier
	if effective == "" {
		effective = employee.TierNew
		if tenureVeteran {
			effective = employee.TierVeteran
		}
	}

	if effective == employee.TierNew && !tenureVeteran {
		calc := &Calculation{
			Tier:           employee.TierNew,
			Salary:         NewAgentSalary,
			CommissionRate: NewAgentRate,
			MonthsEmployed: months,
			Description:    fmt.Sprintf("New agent: $%s base + %s%% commission (%d of %d months served)", NewAgentSalary, NewAgentRate.Mul(decimal.NewFromInt(100)), months, VeteranThresholdMonths),
		}
		if days := DaysUntilVeteran(emp.StartDate, now); days > 0 {
			calc.DaysUntilTierChange = days
			calc.WillChangeToVeteran = true
		}
		return calc
	}

	desc := fmt.Sprintf("Veteran agent: $%s base + %s%% commission", VeteranSalary, VeteranRate.Mul(decimal.NewFromInt(100)))
	if !tenureVeteran {
		desc = fmt.Sprintf("Veteran agent (early promotion at %d months): $%s base + %s%% commission", months, VeteranSalary, VeteranRate.Mul(decimal.NewFromInt(100)))
	}
	return &Calculation{
		Tier:           employee.TierVeteran,
		Salary:         VeteranSalary,
		CommissionRate: VeteranRate,
		MonthsEmployed: months,
		Description:    desc,
	}
}

// MonthsBetween is the whole calendar-month difference; a partial month
// does not count (5 months and 29 days is 5).
func MonthsBetween(start, now time.Time) int {
	months := (now.Year()-start.Year())*12 + int(now.Month()) - int(start.Month())
	if now.Day() < start.Day() {
		months--
	}
	return months
}

// DaysUntilVeteran counts whole days until the calendar six-month mark,
// rounding partial days up. Zero or negative means the mark has passed.
func DaysUntilVeteran(start, now time.Time) int {
	mark := start.AddDate(0, VeteranThresholdMonths, 0)
	return int(math.Ceil(mark.Sub(now).Hours() / 24))
}

// CheckEligibility reports the literal "needs update" condition: an agent
// whose tenure says veteran but whose stored tier has not been flipped.
func CheckEligibility(emp employee.Employee, now time.Time) bool {
	if emp.Role != employee.RoleAgent {
		return false
	}
	return MonthsBetween(emp.StartDate, now) >= VeteranThresholdMonths && emp.CommissionTier != employee.TierVeteran
}

// AgentsApproachingMilestone returns agents not yet flipped to veteran
// whose six-month date falls within the next seven days (exclusive of day
// zero, inclusive of day seven).
func AgentsApproachingMilestone(emps []employee.Employee, now time.Time) []employee.Employee {
	var out []employee.Employee
	for _, emp := range emps {
		if emp.Role != employee.RoleAgent || emp.CommissionTier == employee.TierVeteran {
			continue
		}
		days := DaysUntilVeteran(emp.StartDate, now)
		if days > 0 && days <= 7 {
			out = append(out, emp)
		}
	}
	return out
}

// AgentsNeedingUpdate returns every employee satisfying CheckEligibility.
// Applying the implied tier update to all of them and rerunning yields an
// empty set.
func AgentsNeedingUpdate(emps []employee.Employee, now time.Time) []employee.Employee {
	var out []employee.Employee
	for _, emp := range emps {
		if CheckEligibility(emp, now) {
			out = append(out, emp)
		}
	}
	return out
}

// EarlyPromotedAgents returns agents whose stored tier is veteran despite
// being under six months employed. This is a performance override, not an
// error.
func EarlyPromotedAgents(emps []employee.Employee, now time.Time) []employee.Employee {
	var out []employee.Employee
	for _, emp := range emps {
		if emp.Role != employee.RoleAgent || emp.CommissionTier != employee.TierVeteran {
			continue
		}
		if MonthsBetween(emp.StartDate, now) < VeteranThresholdMonths {
			out = append(out, emp)
		}
	}
	return out
}
