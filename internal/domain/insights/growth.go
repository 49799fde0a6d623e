package insights

import (
	"fmt"
	"math"
	"time"

	"dragondrop/internal/domain/commission"
	"dragondrop/internal/domain/employee"
)

// GrowthView projects headcount from the trailing six-month hiring rate
// and flags capacity bottlenecks before the org expands further.
func GrowthView(emps []employee.Employee, now time.Time) Growth {
	view := Growth{Bottlenecks: []string{}}

	lookbackStart := now.AddDate(0, -hiringLookbackMonths, 0)
	var activeCount, agentCount, managerCount, veteranCount, recentHires int
	siteCounts := map[employee.Site]int{}
	for _, emp := range emps {
		if !emp.StartDate.IsZero() && !emp.StartDate.Before(lookbackStart) && !emp.StartDate.After(now) {
			recentHires++
		}
		if !emp.Active() {
			continue
		}
		activeCount++
		siteCounts[emp.Site]++
		switch emp.Role {
		case employee.RoleAgent:
			agentCount++
			if calc := commission.Calculate(emp, now); calc.Tier == employee.TierVeteran {
				veteranCount++
			}
		case employee.RoleSalesManager:
			managerCount++
		}
	}

	view.MonthlyHiringRate = float64(recentHires) / float64(hiringLookbackMonths)
	view.ProjectedHeadcount = activeCount + int(math.Round(view.MonthlyHiringRate*projectionHorizonMonths))
	view.OptimalTeamSize = managerCount * agentsPerManager
	if managerCount > 0 {
		view.ManagerToAgentRatio = float64(agentCount) / float64(managerCount)
	}

	if agentCount > managerCount*agentsPerManager {
		view.Bottlenecks = append(view.Bottlenecks, fmt.Sprintf("managers over capacity: %d agents for %d managers", agentCount, managerCount))
	}
	if agentCount > 0 {
		veteranRatio := float64(veteranCount) / float64(agentCount) * 100
		if veteranRatio < minVeteranRatioPct {
			view.Bottlenecks = append(view.Bottlenecks, fmt.Sprintf("veteran ratio %.0f%% is below %.0f%%", veteranRatio, minVeteranRatioPct))
		}
	}
	imbalance := siteCounts[employee.SiteAustin] - siteCounts[employee.SiteCharlotte]
	if imbalance < 0 {
		imbalance = -imbalance
	}
	if imbalance > siteImbalanceHeadcount {
		view.Bottlenecks = append(view.Bottlenecks, fmt.Sprintf("site headcount imbalance of %d employees", imbalance))
	}

	view.ExpansionReady = len(view.Bottlenecks) == 0
	return view
}
