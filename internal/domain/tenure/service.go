package tenure

import (
	"context"
	"fmt"

	"dragondrop/internal/domain/notify"
)

type Service struct {
	Gateway notify.Gateway
	Channel string
}

func NewService(gateway notify.Gateway, channel string) *Service {
	return &Service{Gateway: gateway, Channel: channel}
}

// SendAlerts delivers a single digest covering all alerts, overdue first.
// An empty alert list is a no-op. Gateway failure propagates to the caller;
// no employee record is touched either way.
func (s *Service) SendAlerts(ctx context.Context, alerts []Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	msg := buildDigest(alerts, s.Channel)
	if res := s.Gateway.Send(ctx, msg); !res.Success {
		return fmt.Errorf("send tenure alerts: %s", res.Error)
	}
	return nil
}

func buildDigest(alerts []Alert, channel string) notify.Message {
	grouped := map[AlertType][]Alert{}
	for _, alert := range alerts {
		grouped[alert.Type] = append(grouped[alert.Type], alert)
	}

	msg := notify.Message{
		Channel: channel,
		Text:    fmt.Sprintf("Commission tenure digest: %d agent(s) need attention", len(alerts)),
	}
	msg.Blocks = append(msg.Blocks, notify.Block{Type: "header", Text: "Commission Tenure Alerts"})

	sections := []struct {
		alertType AlertType
		title     string
	}{
		{AlertOverdue, "Overdue"},
		{AlertImminent, "Eligible tomorrow"},
		{AlertUpcoming, "Coming up"},
	}
	for _, section := range sections {
		group := grouped[section.alertType]
		if len(group) == 0 {
			continue
		}
		msg.Blocks = append(msg.Blocks, notify.Block{Type: "section", Text: fmt.Sprintf("*%s (%d)*", section.title, len(group))})
		for _, alert := range group {
			msg.Blocks = append(msg.Blocks, notify.Block{Type: "section", Text: alert.Message})
		}
	}
	return msg
}
