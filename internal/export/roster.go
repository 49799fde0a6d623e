// Package export builds spreadsheet exports of the organization for
// offline analysis.
package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"dragondrop/internal/domain/commission"
	"dragondrop/internal/domain/employee"
	"dragondrop/internal/domain/insights"
)

const (
	rosterSheet = "Roster"
	sitesSheet  = "Sites"
)

// BuildRoster renders the full employee roster plus a per-site summary
// sheet. The caller owns the returned file and must Close it.
func BuildRoster(emps []employee.Employee, now time.Time) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", rosterSheet); err != nil {
		return nil, err
	}

	headers := []string{"Name", "Role", "Site", "Status", "Start Date", "Tenure (months)", "Commission Tier", "Annual Salary", "Manager ID"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(rosterSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for row, emp := range emps {
		values := []any{
			emp.Name,
			string(emp.Role),
			string(emp.Site),
			string(emp.Status),
			emp.StartDate.Format("2006-01-02"),
			commission.MonthsBetween(emp.StartDate, now),
			string(emp.CommissionTier),
			salaryCell(emp, now),
			emp.ManagerID,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(rosterSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	if err := writeSiteSheet(f, emps, now); err != nil {
		return nil, err
	}
	return f, nil
}

func salaryCell(emp employee.Employee, now time.Time) string {
	if !emp.Active() {
		return ""
	}
	if emp.Role == employee.RoleAgent {
		return commission.Calculate(emp, now).Salary.StringFixed(0)
	}
	if salary, ok := commission.ManagementSalary(emp.Role); ok {
		return salary.StringFixed(0)
	}
	return ""
}

func writeSiteSheet(f *excelize.File, emps []employee.Employee, now time.Time) error {
	if _, err := f.NewSheet(sitesSheet); err != nil {
		return err
	}

	headers := []string{"Site", "Active", "Agents", "Managers", "Avg Tenure (months)", "Veteran %", "Termination %", "Projected Annual Cost"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sitesSheet, cell, header); err != nil {
			return err
		}
	}

	for row, site := range insights.SiteComparisonView(emps, now) {
		values := []any{
			string(site.Site),
			site.ActiveCount,
			site.AgentCount,
			site.ManagerCount,
			fmt.Sprintf("%.1f", site.AvgTenureMonths),
			fmt.Sprintf("%.1f", site.VeteranRatio),
			fmt.Sprintf("%.1f", site.TerminationRate),
			site.ProjectedAnnualCost.StringFixed(0),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sitesSheet, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}
