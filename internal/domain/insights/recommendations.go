package insights

import (
	"fmt"
	"time"

	"dragondrop/internal/domain/employee"
)

// Recommendations runs a small rule list over the other views and returns
// canned guidance for every triggered rule. An empty collection trips no
// rules.
func Recommendations(emps []employee.Employee, now time.Time) []string {
	recs := []string{}
	if len(emps) == 0 {
		return recs
	}

	turnover := TurnoverView(emps, now)
	growth := GrowthView(emps, now)
	sites := SiteComparisonView(emps, now)

	if turnover.TerminationRate > turnoverRateThreshold {
		recs = append(recs, fmt.Sprintf("Turnover is %.1f%%, above the %.0f%% threshold: review top termination reasons and manager load.", turnover.TerminationRate, turnoverRateThreshold))
	}
	if len(turnover.AtRisk) > atRiskCountThreshold {
		recs = append(recs, fmt.Sprintf("%d agents are inside their first %d months: pair them with tenured mentors.", len(turnover.AtRisk), atRiskTenureMonths))
	}

	var agentCount, managerCount int
	for _, emp := range emps {
		if !emp.Active() {
			continue
		}
		switch emp.Role {
		case employee.RoleAgent:
			agentCount++
		case employee.RoleSalesManager:
			managerCount++
		}
	}
	if agentCount > managerCount*agentsPerManager {
		recs = append(recs, fmt.Sprintf("Manager-to-agent ratio exceeds 1:%d: promote or hire managers before adding agents.", agentsPerManager))
	}
	if !growth.ExpansionReady {
		recs = append(recs, "Resolve capacity bottlenecks before expanding headcount.")
	}
	if agentCount > 0 && VeteranPremium().IsNegative() {
		recs = append(recs, "Veteran agents cost less than new agents at the assumed sales volume: revisit tier economics or sales assumptions.")
	}

	if len(sites) == 2 {
		gap := sites[0].TerminationRate - sites[1].TerminationRate
		if gap < 0 {
			gap = -gap
		}
		if gap > sitePerformanceGapPts {
			recs = append(recs, fmt.Sprintf("Termination rates differ by %.1f points between sites: compare site management practices.", gap))
		}
	}
	return recs
}
