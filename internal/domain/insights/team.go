package insights

import (
	"sort"
	"time"

	"dragondrop/internal/domain/commission"
	"dragondrop/internal/domain/employee"
)

// TeamPerformanceView computes per-manager retention and tenure stats for
// every active Sales Manager, sorted by retention rate descending. Report
// counts include indirect reports; retention folds terminated reports in.
func TeamPerformanceView(emps []employee.Employee, now time.Time) []TeamPerformance {
	children := make(map[string][]employee.Employee)
	for _, emp := range emps {
		if emp.ManagerID != "" && emp.ManagerID != emp.ID {
			children[emp.ManagerID] = append(children[emp.ManagerID], emp)
		}
	}

	var views []TeamPerformance
	for _, mgr := range emps {
		if !mgr.Active() || mgr.Role != employee.RoleSalesManager {
			continue
		}
		reports := collectReports(mgr.ID, children)

		view := TeamPerformance{
			ManagerID:   mgr.ID,
			ManagerName: mgr.Name,
			Site:        mgr.Site,
		}

		var activeCount, terminatedCount, agentCount, veteranCount int
		var tenureSum float64
		for _, report := range reports {
			if report.Active() {
				activeCount++
				tenureSum += float64(commission.MonthsBetween(report.StartDate, now))
				if report.Role == employee.RoleAgent {
					agentCount++
					if calc := commission.Calculate(report, now); calc != nil && calc.Tier == employee.TierVeteran {
						veteranCount++
					}
				}
				continue
			}
			terminatedCount++
			if report.Termination != nil && now.Sub(report.Termination.Date) <= recentTerminationDays*24*time.Hour {
				view.RecentTerminations++
			}
		}

		view.ReportCount = activeCount
		if activeCount > 0 {
			view.AvgTenureMonths = tenureSum / float64(activeCount)
		}
		view.RetentionRate = 100
		if activeCount+terminatedCount > 0 {
			view.RetentionRate = float64(activeCount) / float64(activeCount+terminatedCount) * 100
		}
		if agentCount > 0 {
			view.VeteranRatio = float64(veteranCount) / float64(agentCount) * 100
		}
		views = append(views, view)
	}

	sort.SliceStable(views, func(i, j int) bool {
		if views[i].RetentionRate == views[j].RetentionRate {
			return views[i].ManagerName < views[j].ManagerName
		}
		return views[i].RetentionRate > views[j].RetentionRate
	})
	return views
}

// collectReports walks the managerId adjacency breadth-first with a
// visited set, so cyclic references cannot loop.
func collectReports(managerID string, children map[string][]employee.Employee) []employee.Employee {
	var reports []employee.Employee
	visited := map[string]bool{managerID: true}
	queue := append([]employee.Employee(nil), children[managerID]...)
	for len(queue) > 0 {
		emp := queue[0]
		queue = queue[1:]
		if visited[emp.ID] {
			continue
		}
		visited[emp.ID] = true
		reports = append(reports, emp)
		queue = append(queue, children[emp.ID]...)
	}
	return reports
}
