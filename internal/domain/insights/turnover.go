package insights

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"dragondrop/internal/domain/commission"
	"dragondrop/internal/domain/employee"
	"dragondrop/internal/domain/offboarding"
)

// TurnoverView folds termination history into cost and reason aggregates
// and lists active agents still inside the fragile first three months.
func TurnoverView(emps []employee.Employee, now time.Time) Turnover {
	view := Turnover{
		ReplacementCostTotal: decimal.Zero,
		TopReasons:           []ReasonCount{},
		AtRisk:               []employee.Employee{},
	}

	reasonCounts := map[offboarding.Reason]int{}
	var tenureSum float64
	var tenureSamples int
	for _, emp := range emps {
		if emp.Active() {
			if emp.Role == employee.RoleAgent && commission.MonthsBetween(emp.StartDate, now) < atRiskTenureMonths {
				view.AtRisk = append(view.AtRisk, emp)
			}
			continue
		}
		view.TerminatedCount++
		if emp.Termination == nil {
			continue
		}
		reasonCounts[emp.Termination.Reason]++
		if !emp.StartDate.IsZero() {
			tenureSum += float64(commission.MonthsBetween(emp.StartDate, emp.Termination.Date))
			tenureSamples++
		}
	}

	if len(emps) > 0 {
		view.TerminationRate = float64(view.TerminatedCount) / float64(len(emps)) * 100
	}
	if tenureSamples > 0 {
		view.AvgTenureAtTermination = tenureSum / float64(tenureSamples)
	}
	view.ReplacementCostTotal = ReplacementCost.Mul(decimal.NewFromInt(int64(view.TerminatedCount)))

	for reason, count := range reasonCounts {
		view.TopReasons = append(view.TopReasons, ReasonCount{Reason: reason, Count: count})
	}
	sort.SliceStable(view.TopReasons, func(i, j int) bool {
		if view.TopReasons[i].Count == view.TopReasons[j].Count {
			return view.TopReasons[i].Reason < view.TopReasons[j].Reason
		}
		return view.TopReasons[i].Count > view.TopReasons[j].Count
	})
	if len(view.TopReasons) > 5 {
		view.TopReasons = view.TopReasons[:5]
	}
	return view
}
