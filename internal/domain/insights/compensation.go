package insights

import (
	"time"

	"github.com/shopspring/decimal"

	"dragondrop/internal/domain/commission"
	"dragondrop/internal/domain/employee"
)

var (
	four              = decimal.NewFromInt(4)
	daysPerYear       = decimal.NewFromInt(365)
	transitionHorizon = decimal.NewFromInt(transitionHorizonDays)
)

// VeteranPremium is the annual cost difference between a veteran and a new
// agent at the assumed sales volume. With the current tier economics it is
// negative: veterans trade base salary for commission upside.
func VeteranPremium() decimal.Decimal {
	veteranCost := commission.VeteranSalary.Add(AssumedMonthlySales.Mul(monthsPerYear).Mul(commission.VeteranRate))
	newCost := commission.NewAgentSalary.Add(AssumedMonthlySales.Mul(monthsPerYear).Mul(commission.NewAgentRate))
	return veteranCost.Sub(newCost)
}

// CompensationView totals annual salary and projected commission for the
// active population, and projects next-quarter cost including a pro-rated
// premium for agents expected to turn veteran within 90 days.
func CompensationView(emps []employee.Employee, now time.Time) Compensation {
	view := Compensation{
		TotalAnnualSalary:        decimal.Zero,
		AvgSalaryByRole:          map[employee.Role]decimal.Decimal{},
		TotalProjectedCommission: decimal.Zero,
		CostPerAgent:             decimal.Zero,
		VeteranPremium:           VeteranPremium(),
		NextQuarterProjection:    decimal.Zero,
	}

	roleTotals := map[employee.Role]decimal.Decimal{}
	roleCounts := map[employee.Role]int{}
	agentCost := decimal.Zero
	agentCount := 0
	transitionAdjustment := decimal.Zero

	for _, emp := range emps {
		if !emp.Active() {
			continue
		}

		var salary decimal.Decimal
		if emp.Role == employee.RoleAgent {
			calc := commission.Calculate(emp, now)
			salary = calc.Salary
			commissionEst := AssumedMonthlySales.Mul(monthsPerYear).Mul(calc.CommissionRate)
			view.TotalProjectedCommission = view.TotalProjectedCommission.Add(commissionEst)
			agentCost = agentCost.Add(salary).Add(commissionEst)
			agentCount++

			if calc.WillChangeToVeteran && calc.DaysUntilTierChange <= transitionHorizonDays {
				remaining := transitionHorizon.Sub(decimal.NewFromInt(int64(calc.DaysUntilTierChange)))
				transitionAdjustment = transitionAdjustment.Add(view.VeteranPremium.Mul(remaining).Div(daysPerYear))
			}
		} else {
			salary = mustManagementSalary(emp.Role)
		}

		view.TotalAnnualSalary = view.TotalAnnualSalary.Add(salary)
		roleTotals[emp.Role] = roleTotals[emp.Role].Add(salary)
		roleCounts[emp.Role]++
	}

	for role, total := range roleTotals {
		view.AvgSalaryByRole[role] = total.Div(decimal.NewFromInt(int64(roleCounts[role]))).Round(2)
	}
	if agentCount > 0 {
		view.CostPerAgent = agentCost.Div(decimal.NewFromInt(int64(agentCount))).Round(2)
	}

	quarterlyBaseline := view.TotalAnnualSalary.Add(view.TotalProjectedCommission).Div(four)
	view.NextQuarterProjection = quarterlyBaseline.Add(transitionAdjustment).Round(2)
	return view
}
