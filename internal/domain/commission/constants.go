package commission

import (
	"github.com/shopspring/decimal"

	"dragondrop/internal/domain/employee"
)

// VeteranThresholdMonths separates new-agent from veteran-agent
// compensation. The calculator tests it in calendar months; the tenure
// alert scan approximates it as a fixed 180 days. The two can disagree by
// about a day near the boundary and that divergence is intentional.
const VeteranThresholdMonths = 6

var (
	NewAgentSalary = decimal.NewFromInt(60000)
	NewAgentRate   = decimal.NewFromFloat(0.05)
	VeteranSalary  = decimal.NewFromInt(30000)
	VeteranRate    = decimal.NewFromFloat(0.20)
)

var managementSalaries = map[employee.Role]decimal.Decimal{
	employee.RoleSalesDirector: decimal.NewFromInt(150000),
	employee.RoleSalesManager:  decimal.NewFromInt(100000),
	employee.RoleTeamLead:      decimal.NewFromInt(80000),
}

// ManagementSalary returns the fixed annual salary for non-agent roles.
func ManagementSalary(role employee.Role) (decimal.Decimal, bool) {
	salary, ok := managementSalaries[role]
	return salary, ok
}
