// Package tenure scans the employee collection for agents nearing or past
// the six-month veteran mark and turns them into digest alerts.
//
// The scan deliberately approximates "6 months" as a fixed 180 days, while
// the commission calculator uses calendar-month arithmetic. The two can
// disagree by about a day near the boundary; that mismatch is pinned by
// tests and must not be unified silently.
package tenure

import (
	"fmt"
	"math"
	"sort"
	"time"

	"dragondrop/internal/domain/employee"
)

const (
	// EligibilityDays is the fixed 180-day approximation of six months.
	EligibilityDays = 180
	upcomingWindow  = 7
)

type AlertType string

const (
	AlertUpcoming AlertType = "upcoming"
	AlertImminent AlertType = "imminent"
	AlertOverdue  AlertType = "overdue"
)

type Alert struct {
	Employee    employee.Employee `json:"employee"`
	DaysUntil   int               `json:"daysUntil"`
	EligibleOn  time.Time         `json:"eligibleOn"`
	CurrentTier employee.Tier     `json:"currentTier"`
	Type        AlertType         `json:"alertType"`
	Message     string            `json:"message"`
}

// UpcomingAlerts classifies active new-tier agents into alert buckets,
// ordered by urgency. Overdue entries carry the absolute overdue day count.
// An empty site scans both sites.
func UpcomingAlerts(emps []employee.Employee, site employee.Site, now time.Time) []Alert {
	var alerts []Alert
	for _, emp := range emps {
		if !emp.Active() || emp.Role != employee.RoleAgent || emp.CommissionTier != employee.TierNew {
			continue
		}
		if site != "" && emp.Site != site {
			continue
		}

		eligibleOn := emp.StartDate.Add(EligibilityDays * 24 * time.Hour)
		days := int(math.Ceil(eligibleOn.Sub(now).Hours() / 24))
		if days > upcomingWindow {
			continue
		}

		alert := Alert{
			Employee:    emp,
			EligibleOn:  eligibleOn,
			CurrentTier: emp.CommissionTier,
		}
		switch {
		case days <= 0:
			alert.Type = AlertOverdue
			alert.DaysUntil = -days
			alert.Message = fmt.Sprintf("%s is %d days past veteran eligibility (eligible since %s)", emp.Name, -days, eligibleOn.Format("2006-01-02"))
		case days == 1:
			alert.Type = AlertImminent
			alert.DaysUntil = days
			alert.Message = fmt.Sprintf("%s becomes veteran-eligible tomorrow", emp.Name)
		default:
			alert.Type = AlertUpcoming
			alert.DaysUntil = days
			alert.Message = fmt.Sprintf("%s becomes veteran-eligible in %d days (%s)", emp.Name, days, eligibleOn.Format("2006-01-02"))
		}
		alerts = append(alerts, alert)
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].DaysUntil == alerts[j].DaysUntil {
			return alerts[i].Employee.Name < alerts[j].Employee.Name
		}
		return alerts[i].DaysUntil < alerts[j].DaysUntil
	})
	return alerts
}

type Summary struct {
	ActiveAgents  int `json:"activeAgents"`
	NewTier       int `json:"newTier"`
	VeteranTier   int `json:"veteranTier"`
	TierUnset     int `json:"tierUnset"`
	UpcomingCount int `json:"upcomingCount"`
	OverdueCount  int `json:"overdueCount"`
}

// Summarize counts active agents by stored tier plus upcoming and overdue
// eligibility, in a single pass over the collection.
func Summarize(emps []employee.Employee, site employee.Site, now time.Time) Summary {
	var sum Summary
	for _, emp := range emps {
		if !emp.Active() || emp.Role != employee.RoleAgent {
			continue
		}
		if site != "" && emp.Site != site {
			continue
		}
		sum.ActiveAgents++
		switch emp.CommissionTier {
		case employee.TierNew:
			sum.NewTier++
		case employee.TierVeteran:
			sum.VeteranTier++
		default:
			sum.TierUnset++
		}

		if emp.CommissionTier != employee.TierNew {
			continue
		}
		eligibleOn := emp.StartDate.Add(EligibilityDays * 24 * time.Hour)
		days := int(math.Ceil(eligibleOn.Sub(now).Hours() / 24))
		if days > 0 && days <= upcomingWindow {
			sum.UpcomingCount++
		}
		if days <= 0 {
			sum.OverdueCount++
		}
	}
	return sum
}

// ShouldSendAlerts gates the caller-driven scheduler: true in the send hour
// when nothing was sent yet this calendar day.
func ShouldSendAlerts(now, lastSent time.Time, sendHour int) bool {
	if now.Hour() != sendHour {
		return false
	}
	if lastSent.IsZero() {
		return true
	}
	ny, nm, nd := now.Date()
	ly, lm, ld := lastSent.Date()
	return ny != ly || nm != lm || nd != ld
}
