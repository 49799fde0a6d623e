package insights

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"dragondrop/internal/domain/employee"
	"dragondrop/internal/domain/offboarding"
)

var testNow = time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

func emp(id string, role employee.Role, site employee.Site, monthsEmployed int) employee.Employee {
	return employee.Employee{
		ID:        id,
		Name:      "Emp " + id,
		Role:      role,
		Site:      site,
		Status:    employee.StatusActive,
		StartDate: testNow.AddDate(0, -monthsEmployed, 0),
	}
}

func terminated(id string, site employee.Site, monthsEmployed, monthsAgo int, reason offboarding.Reason) employee.Employee {
	e := emp(id, employee.RoleAgent, site, monthsEmployed)
	e.Status = employee.StatusTerminated
	e.Termination = &offboarding.Termination{
		Date:   testNow.AddDate(0, -monthsAgo, 0),
		Reason: reason,
	}
	return e
}

func fixture() []employee.Employee {
	vet := emp("vet", employee.RoleAgent, employee.SiteAustin, 12)
	fresh := emp("fresh", employee.RoleAgent, employee.SiteAustin, 2)
	gone := terminated("gone", employee.SiteAustin, 10, 1, offboarding.ReasonVoluntaryResignation)
	gone.StartDate = testNow.AddDate(0, -10, 0)
	return []employee.Employee{
		emp("mgr", employee.RoleSalesManager, employee.SiteAustin, 24),
		vet,
		fresh,
		gone,
		emp("lead", employee.RoleTeamLead, employee.SiteCharlotte, 6),
	}
}

func TestSiteComparisonView(t *testing.T) {
	views := SiteComparisonView(fixture(), testNow)
	if len(views) != 2 {
		t.Fatalf("expected both sites, got %d", len(views))
	}

	austin := views[0]
	if austin.Site != employee.SiteAustin {
		t.Fatalf("expected austin first, got %s", austin.Site)
	}
	if austin.ActiveCount != 3 || austin.AgentCount != 2 || austin.ManagerCount != 1 {
		t.Fatalf("unexpected austin headcounts: %+v", austin)
	}
	if austin.VeteranRatio != 50 {
		t.Fatalf("expected 50%% veteran ratio, got %v", austin.VeteranRatio)
	}
	if austin.TerminationRate != 25 {
		t.Fatalf("expected 25%% termination rate, got %v", austin.TerminationRate)
	}
	// manager 100000 + veteran agent (30000 + 12000) + new agent (60000 + 3000)
	if !austin.ProjectedAnnualCost.Equal(decimal.NewFromInt(205000)) {
		t.Fatalf("expected projected cost 205000, got %s", austin.ProjectedAnnualCost)
	}

	charlotte := views[1]
	if charlotte.ActiveCount != 1 || charlotte.TerminationRate != 0 {
		t.Fatalf("unexpected charlotte view: %+v", charlotte)
	}
	if !charlotte.ProjectedAnnualCost.Equal(decimal.NewFromInt(80000)) {
		t.Fatalf("expected team lead salary 80000, got %s", charlotte.ProjectedAnnualCost)
	}
}

func TestTeamPerformanceView(t *testing.T) {
	mgrA := emp("mgrA", employee.RoleSalesManager, employee.SiteAustin, 24)
	mgrB := emp("mgrB", employee.RoleSalesManager, employee.SiteAustin, 18)
	a1 := emp("a1", employee.RoleAgent, employee.SiteAustin, 12)
	a1.ManagerID = "mgrA"
	a2 := emp("a2", employee.RoleAgent, employee.SiteAustin, 2)
	a2.ManagerID = "mgrA"
	t1 := terminated("t1", employee.SiteAustin, 5, 0, offboarding.ReasonLayoff)
	t1.Termination.Date = testNow.AddDate(0, 0, -30)
	t1.ManagerID = "mgrA"

	views := TeamPerformanceView([]employee.Employee{mgrA, mgrB, a1, a2, t1}, testNow)
	if len(views) != 2 {
		t.Fatalf("expected 2 managers, got %d", len(views))
	}

	// No reports defaults to 100% retention and sorts first.
	if views[0].ManagerID != "mgrB" || views[0].RetentionRate != 100 || views[0].ReportCount != 0 {
		t.Fatalf("unexpected first view: %+v", views[0])
	}

	teamA := views[1]
	if teamA.ReportCount != 2 {
		t.Fatalf("expected 2 active reports, got %d", teamA.ReportCount)
	}
	if teamA.RetentionRate < 66 || teamA.RetentionRate > 67 {
		t.Fatalf("expected retention near 66.7, got %v", teamA.RetentionRate)
	}
	if teamA.VeteranRatio != 50 {
		t.Fatalf("expected 50%% veteran ratio, got %v", teamA.VeteranRatio)
	}
	if teamA.AvgTenureMonths != 7 {
		t.Fatalf("expected average tenure 7 months, got %v", teamA.AvgTenureMonths)
	}
	if teamA.RecentTerminations != 1 {
		t.Fatalf("expected 1 recent termination, got %d", teamA.RecentTerminations)
	}
}

func TestTeamPerformanceCountsIndirectReports(t *testing.T) {
	mgr := emp("mgr", employee.RoleSalesManager, employee.SiteAustin, 24)
	lead := emp("lead", employee.RoleTeamLead, employee.SiteAustin, 12)
	lead.ManagerID = "mgr"
	agent := emp("agent", employee.RoleAgent, employee.SiteAustin, 8)
	agent.ManagerID = "lead"

	views := TeamPerformanceView([]employee.Employee{mgr, lead, agent}, testNow)
	if len(views) != 1 || views[0].ReportCount != 2 {
		t.Fatalf("expected lead and agent both counted, got %+v", views)
	}
}

func TestTurnoverView(t *testing.T) {
	view := TurnoverView(fixture(), testNow)
	if view.TerminatedCount != 1 {
		t.Fatalf("expected 1 terminated, got %d", view.TerminatedCount)
	}
	if view.TerminationRate != 20 {
		t.Fatalf("expected 20%% rate, got %v", view.TerminationRate)
	}
	if view.AvgTenureAtTermination != 9 {
		t.Fatalf("expected 9 months tenure at termination, got %v", view.AvgTenureAtTermination)
	}
	if !view.ReplacementCostTotal.Equal(decimal.NewFromInt(3000)) {
		t.Fatalf("expected replacement cost 3000, got %s", view.ReplacementCostTotal)
	}
	if len(view.TopReasons) != 1 || view.TopReasons[0].Reason != offboarding.ReasonVoluntaryResignation {
		t.Fatalf("unexpected top reasons: %+v", view.TopReasons)
	}
	if len(view.AtRisk) != 1 || view.AtRisk[0].ID != "fresh" {
		t.Fatalf("expected the 2-month agent at risk, got %+v", view.AtRisk)
	}
}

func TestCompensationView(t *testing.T) {
	view := CompensationView(fixture(), testNow)
	if !view.TotalAnnualSalary.Equal(decimal.NewFromInt(270000)) {
		t.Fatalf("expected total salary 270000, got %s", view.TotalAnnualSalary)
	}
	if !view.TotalProjectedCommission.Equal(decimal.NewFromInt(15000)) {
		t.Fatalf("expected projected commission 15000, got %s", view.TotalProjectedCommission)
	}
	if !view.AvgSalaryByRole[employee.RoleAgent].Equal(decimal.NewFromInt(45000)) {
		t.Fatalf("expected average agent salary 45000, got %s", view.AvgSalaryByRole[employee.RoleAgent])
	}
	if !view.CostPerAgent.Equal(decimal.NewFromInt(52500)) {
		t.Fatalf("expected cost per agent 52500, got %s", view.CostPerAgent)
	}
	if !view.VeteranPremium.Equal(decimal.NewFromInt(-21000)) {
		t.Fatalf("expected veteran premium -21000, got %s", view.VeteranPremium)
	}
	// No agent transitions inside 90 days, so the projection is the plain
	// quarterly baseline.
	if !view.NextQuarterProjection.Equal(decimal.NewFromInt(71250)) {
		t.Fatalf("expected next quarter 71250, got %s", view.NextQuarterProjection)
	}
}

func TestCompensationProjectionAddsTransitionPremium(t *testing.T) {
	soon := emp("soon", employee.RoleAgent, employee.SiteAustin, 5)
	view := CompensationView([]employee.Employee{soon}, testNow)

	baseline := decimal.NewFromInt(63000).Div(decimal.NewFromInt(4))
	if view.NextQuarterProjection.GreaterThanOrEqual(baseline) {
		t.Fatalf("expected negative premium to pull the projection below %s, got %s", baseline, view.NextQuarterProjection)
	}
}

func TestGrowthViewBottlenecks(t *testing.T) {
	emps := []employee.Employee{emp("mgr", employee.RoleSalesManager, employee.SiteAustin, 24)}
	for i := 0; i < 9; i++ {
		agent := emp("a"+string(rune('0'+i)), employee.RoleAgent, employee.SiteAustin, 1)
		agent.ManagerID = "mgr"
		emps = append(emps, agent)
	}

	view := GrowthView(emps, testNow)
	if view.OptimalTeamSize != 8 {
		t.Fatalf("expected optimal team size 8, got %d", view.OptimalTeamSize)
	}
	if view.ManagerToAgentRatio != 9 {
		t.Fatalf("expected ratio 9, got %v", view.ManagerToAgentRatio)
	}
	if view.ExpansionReady {
		t.Fatal("overloaded manager should block expansion")
	}
	if len(view.Bottlenecks) != 2 {
		t.Fatalf("expected capacity and veteran-ratio bottlenecks, got %+v", view.Bottlenecks)
	}
	// 9 hires in the trailing window plus the manager hired long ago.
	if view.MonthlyHiringRate != 1.5 {
		t.Fatalf("expected hiring rate 1.5, got %v", view.MonthlyHiringRate)
	}
	if view.ProjectedHeadcount != 15 {
		t.Fatalf("expected projection 10+5, got %d", view.ProjectedHeadcount)
	}
}

func TestAllViewsHandleEmptyCollection(t *testing.T) {
	if views := TeamPerformanceView(nil, testNow); len(views) != 0 {
		t.Fatalf("expected no team views, got %+v", views)
	}

	for _, site := range SiteComparisonView(nil, testNow) {
		if site.ActiveCount != 0 || site.TerminationRate != 0 || site.VeteranRatio != 0 || site.AvgTenureMonths != 0 {
			t.Fatalf("expected zeroed site view, got %+v", site)
		}
		if !site.ProjectedAnnualCost.Equal(decimal.Zero) {
			t.Fatalf("expected zero cost, got %s", site.ProjectedAnnualCost)
		}
	}

	turnover := TurnoverView(nil, testNow)
	if turnover.TerminationRate != 0 || turnover.AvgTenureAtTermination != 0 || len(turnover.AtRisk) != 0 {
		t.Fatalf("expected zeroed turnover view, got %+v", turnover)
	}

	comp := CompensationView(nil, testNow)
	if !comp.TotalAnnualSalary.Equal(decimal.Zero) || !comp.CostPerAgent.Equal(decimal.Zero) {
		t.Fatalf("expected zeroed compensation view, got %+v", comp)
	}

	growth := GrowthView(nil, testNow)
	if growth.MonthlyHiringRate != 0 || growth.ProjectedHeadcount != 0 || !growth.ExpansionReady {
		t.Fatalf("expected zeroed growth view, got %+v", growth)
	}

	if recs := Recommendations(nil, testNow); len(recs) != 0 {
		t.Fatalf("expected no recommendations, got %+v", recs)
	}
}

func TestRecommendationsTrigger(t *testing.T) {
	var emps []employee.Employee
	emps = append(emps, emp("mgr", employee.RoleSalesManager, employee.SiteAustin, 24))
	for i := 0; i < 9; i++ {
		agent := emp("r"+string(rune('0'+i)), employee.RoleAgent, employee.SiteAustin, 1)
		agent.ManagerID = "mgr"
		emps = append(emps, agent)
	}
	for i := 0; i < 4; i++ {
		emps = append(emps, terminated("x"+string(rune('0'+i)), employee.SiteAustin, 4, 1, offboarding.ReasonJobAbandonment))
	}

	recs := Recommendations(emps, testNow)
	if len(recs) < 4 {
		t.Fatalf("expected several triggered rules, got %+v", recs)
	}
}
