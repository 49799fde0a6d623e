package celebrations

import (
	"context"
	"fmt"
	"time"

	"dragondrop/internal/domain/employee"
	"dragondrop/internal/domain/notify"
)

// Config controls which celebration types are announced and how far in
// advance the digest runs.
type Config struct {
	Channel              string `json:"channel"`
	BirthdaysEnabled     bool   `json:"birthdaysEnabled"`
	AnniversariesEnabled bool   `json:"anniversariesEnabled"`
	AdvanceNoticeDays    int    `json:"advanceNoticeDays"`
}

type SendResult struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Alerts  []Alert `json:"alerts"`
}

type Service struct {
	Gateway notify.Gateway
}

func NewService(gateway notify.Gateway) *Service {
	return &Service{Gateway: gateway}
}

// SendNotifications announces the celebrations landing exactly
// AdvanceNoticeDays from now, filtered by the enable flags. Gateway
// failures are caught and surfaced in the result rather than thrown.
func (s *Service) SendNotifications(ctx context.Context, emps []employee.Employee, cfg Config, now time.Time) SendResult {
	var selected []Alert
	for _, alert := range Upcoming(emps, cfg.AdvanceNoticeDays, now) {
		if alert.DaysUntil != cfg.AdvanceNoticeDays {
			continue
		}
		if alert.Type == TypeBirthday && !cfg.BirthdaysEnabled {
			continue
		}
		if alert.Type == TypeAnniversary && !cfg.AnniversariesEnabled {
			continue
		}
		selected = append(selected, alert)
	}

	if len(selected) == 0 {
		return SendResult{Success: true, Message: "no celebrations to announce", Alerts: []Alert{}}
	}

	msg := buildDigest(selected, cfg.Channel)
	if res := s.Gateway.Send(ctx, msg); !res.Success {
		return SendResult{Success: false, Message: res.Error, Alerts: selected}
	}
	return SendResult{Success: true, Message: fmt.Sprintf("announced %d celebration(s)", len(selected)), Alerts: selected}
}

func buildDigest(alerts []Alert, channel string) notify.Message {
	var birthdays, anniversaries []Alert
	for _, alert := range alerts {
		if alert.Type == TypeBirthday {
			birthdays = append(birthdays, alert)
		} else {
			anniversaries = append(anniversaries, alert)
		}
	}

	msg := notify.Message{
		Channel: channel,
		Text:    fmt.Sprintf("Celebrations: %d to announce", len(alerts)),
	}
	msg.Blocks = append(msg.Blocks, notify.Block{Type: "header", Text: "Team Celebrations"})

	if len(birthdays) > 0 {
		msg.Blocks = append(msg.Blocks, notify.Block{Type: "section", Text: fmt.Sprintf("*Birthdays (%d)*", len(birthdays))})
		for _, alert := range birthdays {
			msg.Blocks = append(msg.Blocks, notify.Block{Type: "section", Text: fmt.Sprintf("Happy birthday, %s!", alert.Employee.Name)})
		}
	}
	if len(anniversaries) > 0 {
		msg.Blocks = append(msg.Blocks, notify.Block{Type: "section", Text: fmt.Sprintf("*Work anniversaries (%d)*", len(anniversaries))})
		for _, alert := range anniversaries {
			msg.Blocks = append(msg.Blocks, notify.Block{Type: "section", Text: fmt.Sprintf("%s celebrates %s with the team!", alert.Employee.Name, pluralYears(alert.Years))})
		}
	}
	return msg
}

func pluralYears(years int) string {
	if years == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", years)
}
