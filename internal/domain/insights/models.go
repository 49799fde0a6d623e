// Package insights computes organization-wide read-only aggregates over a
// snapshot of the employee collection. Every view is a single pass (or a
// small constant number of passes) with no shared state, so views are safe
// to recompute concurrently. Per-agent economics delegate to the
// commission calculator.
package insights

import (
	"github.com/shopspring/decimal"

	"dragondrop/internal/domain/employee"
	"dragondrop/internal/domain/offboarding"
)

var (
	// AssumedMonthlySales is the fixed per-agent sales volume used for
	// every commission projection.
	AssumedMonthlySales = decimal.NewFromInt(5000)
	// ReplacementCost is the fixed cost of replacing one terminated
	// employee.
	ReplacementCost = decimal.NewFromInt(3000)
)

const (
	atRiskTenureMonths      = 3
	recentTerminationDays   = 90
	agentsPerManager        = 8
	minVeteranRatioPct      = 30.0
	siteImbalanceHeadcount  = 10
	turnoverRateThreshold   = 20.0
	atRiskCountThreshold    = 5
	sitePerformanceGapPts   = 20.0
	transitionHorizonDays   = 90
	hiringLookbackMonths    = 6
	projectionHorizonMonths = 3
)

type TeamPerformance struct {
	ManagerID          string        `json:"managerId"`
	ManagerName        string        `json:"managerName"`
	Site               employee.Site `json:"site"`
	ReportCount        int           `json:"reportCount"`
	AvgTenureMonths    float64       `json:"avgTenureMonths"`
	RetentionRate      float64       `json:"retentionRate"`
	VeteranRatio       float64       `json:"veteranRatio"`
	RecentTerminations int           `json:"recentTerminations"`
}

type SiteComparison struct {
	Site                employee.Site   `json:"site"`
	ActiveCount         int             `json:"activeCount"`
	AgentCount          int             `json:"agentCount"`
	ManagerCount        int             `json:"managerCount"`
	AvgTenureMonths     float64         `json:"avgTenureMonths"`
	VeteranRatio        float64         `json:"veteranRatio"`
	TerminationRate     float64         `json:"terminationRate"`
	ProjectedAnnualCost decimal.Decimal `json:"projectedAnnualCost"`
}

type ReasonCount struct {
	Reason offboarding.Reason `json:"reason"`
	Count  int                `json:"count"`
}

type Turnover struct {
	TerminatedCount        int                 `json:"terminatedCount"`
	TerminationRate        float64             `json:"terminationRate"`
	AvgTenureAtTermination float64             `json:"avgTenureAtTermination"`
	ReplacementCostTotal   decimal.Decimal     `json:"replacementCostTotal"`
	TopReasons             []ReasonCount       `json:"topReasons"`
	AtRisk                 []employee.Employee `json:"atRisk"`
}

type Compensation struct {
	TotalAnnualSalary        decimal.Decimal                   `json:"totalAnnualSalary"`
	AvgSalaryByRole          map[employee.Role]decimal.Decimal `json:"avgSalaryByRole"`
	TotalProjectedCommission decimal.Decimal                   `json:"totalProjectedCommission"`
	CostPerAgent             decimal.Decimal                   `json:"costPerAgent"`
	VeteranPremium           decimal.Decimal                   `json:"veteranPremium"`
	NextQuarterProjection    decimal.Decimal                   `json:"nextQuarterProjection"`
}

type Growth struct {
	MonthlyHiringRate   float64  `json:"monthlyHiringRate"`
	ProjectedHeadcount  int      `json:"projectedHeadcount"`
	OptimalTeamSize     int      `json:"optimalTeamSize"`
	ManagerToAgentRatio float64  `json:"managerToAgentRatio"`
	ExpansionReady      bool     `json:"expansionReady"`
	Bottlenecks         []string `json:"bottlenecks"`
}
