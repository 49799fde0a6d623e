package insights

import (
	"time"

	"github.com/shopspring/decimal"

	"dragondrop/internal/domain/commission"
	"dragondrop/internal/domain/employee"
)

var monthsPerYear = decimal.NewFromInt(12)

// SiteComparisonView aggregates headcount, tenure, and projected annual
// cost for each of the two fixed sites, in declaration order.
func SiteComparisonView(emps []employee.Employee, now time.Time) []SiteComparison {
	views := make([]SiteComparison, 0, len(employee.Sites))
	for _, site := range employee.Sites {
		view := SiteComparison{Site: site, ProjectedAnnualCost: decimal.Zero}

		var totalCount, veteranCount int
		var tenureSum float64
		for _, emp := range emps {
			if emp.Site != site {
				continue
			}
			totalCount++
			if !emp.Active() {
				continue
			}
			view.ActiveCount++
			tenureSum += float64(commission.MonthsBetween(emp.StartDate, now))

			switch emp.Role {
			case employee.RoleAgent:
				view.AgentCount++
				calc := commission.Calculate(emp, now)
				if calc.Tier == employee.TierVeteran {
					veteranCount++
				}
				view.ProjectedAnnualCost = view.ProjectedAnnualCost.Add(annualAgentCost(calc))
			case employee.RoleSalesManager:
				view.ManagerCount++
				view.ProjectedAnnualCost = view.ProjectedAnnualCost.Add(mustManagementSalary(emp.Role))
			default:
				view.ProjectedAnnualCost = view.ProjectedAnnualCost.Add(mustManagementSalary(emp.Role))
			}
		}

		if view.ActiveCount > 0 {
			view.AvgTenureMonths = tenureSum / float64(view.ActiveCount)
		}
		if view.AgentCount > 0 {
			view.VeteranRatio = float64(veteranCount) / float64(view.AgentCount) * 100
		}
		if totalCount > 0 {
			view.TerminationRate = float64(totalCount-view.ActiveCount) / float64(totalCount) * 100
		}
		views = append(views, view)
	}
	return views
}

// annualAgentCost is salary plus a commission estimate at the assumed
// fixed monthly sales volume.
func annualAgentCost(calc *commission.Calculation) decimal.Decimal {
	commissionEst := AssumedMonthlySales.Mul(monthsPerYear).Mul(calc.CommissionRate)
	return calc.Salary.Add(commissionEst)
}

func mustManagementSalary(role employee.Role) decimal.Decimal {
	salary, ok := commission.ManagementSalary(role)
	if !ok {
		return decimal.Zero
	}
	return salary
}
