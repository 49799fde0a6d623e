// Package celebrations detects birthdays and work anniversaries by
// month/day match, ignoring the year, and builds digest notifications for
// them. Birth years are often placeholders for unknown real years, so only
// month and day are ever compared.
package celebrations

import (
	"sort"
	"time"

	"dragondrop/internal/domain/employee"
)

type Type string

const (
	TypeBirthday    Type = "birthday"
	TypeAnniversary Type = "anniversary"
)

type Alert struct {
	Employee  employee.Employee `json:"employee"`
	Type      Type              `json:"type"`
	Date      time.Time         `json:"date"`
	Years     int               `json:"years,omitempty"`
	DaysUntil int               `json:"daysUntil"`
}

// Upcoming scans each day offset 0..daysAhead inclusive for active
// employees whose birthDate or startDate month/day matches. Anniversaries
// require the match year to differ from the hire year, so the hire date
// itself never celebrates in year zero. Results are ordered soonest first.
func Upcoming(emps []employee.Employee, daysAhead int, now time.Time) []Alert {
	var alerts []Alert
	for offset := 0; offset <= daysAhead; offset++ {
		target := now.AddDate(0, 0, offset)
		for _, emp := range emps {
			if !emp.Active() {
				continue
			}
			if emp.BirthDate != nil && sameMonthDay(*emp.BirthDate, target) {
				alerts = append(alerts, Alert{
					Employee:  emp,
					Type:      TypeBirthday,
					Date:      target,
					DaysUntil: offset,
				})
			}
			if !emp.StartDate.IsZero() && sameMonthDay(emp.StartDate, target) && target.Year() != emp.StartDate.Year() {
				alerts = append(alerts, Alert{
					Employee:  emp,
					Type:      TypeAnniversary,
					Date:      target,
					Years:     target.Year() - emp.StartDate.Year(),
					DaysUntil: offset,
				})
			}
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].DaysUntil < alerts[j].DaysUntil
	})
	return alerts
}

func sameMonthDay(a, b time.Time) bool {
	return a.Month() == b.Month() && a.Day() == b.Day()
}

type Summary struct {
	TodayBirthdays        []Alert `json:"todayBirthdays"`
	TodayAnniversaries    []Alert `json:"todayAnniversaries"`
	UpcomingBirthdays     []Alert `json:"upcomingBirthdays"`
	UpcomingAnniversaries []Alert `json:"upcomingAnniversaries"`
}

// Summarize partitions a 30-day lookahead into today's celebrations and
// those one to seven days out.
func Summarize(emps []employee.Employee, now time.Time) Summary {
	sum := Summary{
		TodayBirthdays:        []Alert{},
		TodayAnniversaries:    []Alert{},
		UpcomingBirthdays:     []Alert{},
		UpcomingAnniversaries: []Alert{},
	}
	for _, alert := range Upcoming(emps, 30, now) {
		switch {
		case alert.DaysUntil == 0 && alert.Type == TypeBirthday:
			sum.TodayBirthdays = append(sum.TodayBirthdays, alert)
		case alert.DaysUntil == 0 && alert.Type == TypeAnniversary:
			sum.TodayAnniversaries = append(sum.TodayAnniversaries, alert)
		case alert.DaysUntil >= 1 && alert.DaysUntil <= 7 && alert.Type == TypeBirthday:
			sum.UpcomingBirthdays = append(sum.UpcomingBirthdays, alert)
		case alert.DaysUntil >= 1 && alert.DaysUntil <= 7 && alert.Type == TypeAnniversary:
			sum.UpcomingAnniversaries = append(sum.UpcomingAnniversaries, alert)
		}
	}
	return sum
}
