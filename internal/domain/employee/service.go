package employee

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"dragondrop/internal/domain/notify"
	"dragondrop/internal/domain/offboarding"
)

type Service struct {
	store   StoreAPI
	changes notify.ChangeSink
}

func NewService(store StoreAPI, changes notify.ChangeSink) *Service {
	return &Service{store: store, changes: changes}
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.store.List(ctx)
}

func (s *Service) ListBySite(ctx context.Context, site Site) ([]Employee, error) {
	if !site.Valid() {
		return nil, fmt.Errorf("unknown site %q", site)
	}
	return s.store.ListBySite(ctx, site)
}

func (s *Service) Get(ctx context.Context, id string) (*Employee, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) Teams(ctx context.Context) ([]Team, error) {
	return s.store.ListTeams(ctx)
}

func (s *Service) Changes(ctx context.Context, limit int) ([]ChangeLogEntry, error) {
	return s.store.ListChanges(ctx, limit)
}

func (s *Service) Subscribe(ctx context.Context, fn func([]Employee)) (func(), error) {
	return s.store.Subscribe(ctx, fn)
}

func (s *Service) Hire(ctx context.Context, emp Employee) (string, error) {
	if emp.Name == "" {
		return "", fmt.Errorf("name is required")
	}
	if !emp.Role.Valid() {
		return "", fmt.Errorf("unknown role %q", emp.Role)
	}
	if !emp.Site.Valid() {
		return "", fmt.Errorf("unknown site %q", emp.Site)
	}
	if emp.CommissionTier != "" && emp.Role != RoleAgent {
		return "", fmt.Errorf("commission tier only applies to agents")
	}
	if emp.CommissionTier != "" && emp.CommissionTier != TierNew && emp.CommissionTier != TierVeteran {
		return "", fmt.Errorf("unknown commission tier %q", emp.CommissionTier)
	}
	if emp.StartDate.IsZero() {
		emp.StartDate = time.Now().UTC()
	}

	id, err := s.store.Create(ctx, emp)
	if err != nil {
		return "", err
	}
	emp.ID = id
	emp.Status = StatusActive

	s.recordChange(ctx, emp, notify.ChangeEmployeeCreate, fmt.Sprintf("%s hired as %s at %s", emp.Name, emp.Role, emp.Site), "", string(emp.Role))
	return id, nil
}

func (s *Service) Move(ctx context.Context, id, newManagerID string) error {
	emp, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if newManagerID == id {
		return fmt.Errorf("employee cannot report to themselves")
	}

	managerName := ""
	if newManagerID != "" {
		manager, err := s.store.Get(ctx, newManagerID)
		if err != nil {
			return fmt.Errorf("lookup new manager: %w", err)
		}
		managerName = manager.Name
	}

	if err := s.store.UpdateFields(ctx, id, map[string]any{"manager_id": nullableID(newManagerID)}); err != nil {
		return err
	}

	updated := *emp
	updated.ManagerID = newManagerID
	change := notify.OrgChange{
		Site:       string(emp.Site),
		ChangeType: notify.ChangeEmployeeMove,
		Employee:   changeEmployee(updated, managerName),
		Change: notify.ChangeDetail{
			Description: fmt.Sprintf("%s reassigned to %s", emp.Name, orUnassigned(managerName)),
			From:        emp.ManagerID,
			To:          newManagerID,
		},
	}
	s.publish(ctx, change, updated)
	return nil
}

func (s *Service) Promote(ctx context.Context, id string, newRole Role) error {
	if !newRole.Valid() {
		return fmt.Errorf("unknown role %q", newRole)
	}
	emp, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if emp.Role == newRole {
		return fmt.Errorf("employee already has role %q", newRole)
	}

	fields := map[string]any{"role": string(newRole)}
	if newRole != RoleAgent {
		// tier is only meaningful for agents
		fields["commission_tier"] = nil
	}
	if err := s.store.UpdateFields(ctx, id, fields); err != nil {
		return err
	}

	updated := *emp
	updated.Role = newRole
	change := notify.OrgChange{
		Site:       string(emp.Site),
		ChangeType: notify.ChangeEmployeePromote,
		Employee:   changeEmployee(updated, ""),
		Change: notify.ChangeDetail{
			Description: fmt.Sprintf("%s promoted from %s to %s", emp.Name, emp.Role, newRole),
			From:        string(emp.Role),
			To:          string(newRole),
		},
	}
	s.publish(ctx, change, updated)
	return nil
}

func (s *Service) Transfer(ctx context.Context, id string, newSite Site) error {
	if !newSite.Valid() {
		return fmt.Errorf("unknown site %q", newSite)
	}
	emp, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if emp.Site == newSite {
		return fmt.Errorf("employee already at site %q", newSite)
	}

	// Reports stay behind; the transferred employee needs a new manager at
	// the destination site, so the reference is cleared.
	if err := s.store.UpdateFields(ctx, id, map[string]any{"site": string(newSite), "manager_id": nil}); err != nil {
		return err
	}

	updated := *emp
	updated.Site = newSite
	updated.ManagerID = ""
	change := notify.OrgChange{
		Site:       string(newSite),
		ChangeType: notify.ChangeEmployeeTransfer,
		Employee:   changeEmployee(updated, ""),
		Change: notify.ChangeDetail{
			Description: fmt.Sprintf("%s transferred from %s to %s", emp.Name, emp.Site, newSite),
			From:        string(emp.Site),
			To:          string(newSite),
		},
	}
	s.publish(ctx, change, updated)
	return nil
}

func (s *Service) UpdateCommissionTier(ctx context.Context, id string, tier Tier) error {
	if tier != TierNew && tier != TierVeteran {
		return fmt.Errorf("unknown commission tier %q", tier)
	}
	emp, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if emp.Role != RoleAgent {
		return fmt.Errorf("commission tier only applies to agents")
	}

	if err := s.store.UpdateFields(ctx, id, map[string]any{"commission_tier": string(tier)}); err != nil {
		return err
	}

	updated := *emp
	updated.CommissionTier = tier
	change := notify.OrgChange{
		Site:       string(emp.Site),
		ChangeType: notify.ChangeEmployeePromote,
		Employee:   changeEmployee(updated, ""),
		Change: notify.ChangeDetail{
			Description: fmt.Sprintf("%s commission tier set to %s", emp.Name, tier),
			From:        string(emp.CommissionTier),
			To:          string(tier),
		},
	}
	s.publish(ctx, change, updated)
	return nil
}

// Terminate soft-deletes: status flips and the termination sub-record is
// attached. The row is retained indefinitely for audit.
func (s *Service) Terminate(ctx context.Context, id string, term offboarding.Termination) error {
	if err := term.Validate(); err != nil {
		return err
	}
	emp, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !emp.Active() {
		return fmt.Errorf("employee already terminated")
	}

	docsJSON, err := json.Marshal(term.Documents)
	if err != nil {
		return fmt.Errorf("encode termination documents: %w", err)
	}
	fields := map[string]any{
		"status":                string(StatusTerminated),
		"terminated_at":         term.Date,
		"termination_reason":    string(term.Reason),
		"termination_notes":     term.Notes,
		"termination_documents": docsJSON,
		"exit_survey_completed": term.ExitSurveyCompleted,
		"equipment_returned":    term.EquipmentReturned,
	}
	if !term.LastWorkingDay.IsZero() {
		fields["last_working_day"] = term.LastWorkingDay
	}
	if term.FinalPayout != nil {
		fields["final_payout"] = term.FinalPayout.InexactFloat64()
	}
	if err := s.store.UpdateFields(ctx, id, fields); err != nil {
		return err
	}

	updated := *emp
	updated.Status = StatusTerminated
	updated.Termination = &term
	change := notify.OrgChange{
		Site:       string(emp.Site),
		ChangeType: notify.ChangeEmployeeTerminate,
		Employee:   changeEmployee(updated, ""),
		Change: notify.ChangeDetail{
			Description: fmt.Sprintf("%s terminated (%s)", emp.Name, term.Reason),
			From:        string(StatusActive),
			To:          string(StatusTerminated),
		},
	}
	s.publish(ctx, change, updated)
	return nil
}

// Patch applies a merge-patch of UI field names. Only provided fields are
// touched.
func (s *Service) Patch(ctx context.Context, id string, patch map[string]any) error {
	fields, err := translatePatch(patch)
	if err != nil {
		return err
	}
	return s.store.UpdateFields(ctx, id, fields)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

var patchFieldColumns = map[string]string{
	"name":           "name",
	"role":           "role",
	"site":           "site",
	"status":         "status",
	"startDate":      "start_date",
	"birthDate":      "birth_date",
	"managerId":      "manager_id",
	"teamId":         "team_id",
	"commissionTier": "commission_tier",
}

func translatePatch(patch map[string]any) (map[string]any, error) {
	if len(patch) == 0 {
		return nil, fmt.Errorf("empty patch")
	}
	fields := make(map[string]any, len(patch))
	for key, value := range patch {
		column, ok := patchFieldColumns[key]
		if !ok {
			return nil, fmt.Errorf("field %q is not patchable", key)
		}
		switch column {
		case "role":
			if !Role(asString(value)).Valid() {
				return nil, fmt.Errorf("unknown role %q", value)
			}
		case "site":
			if !Site(asString(value)).Valid() {
				return nil, fmt.Errorf("unknown site %q", value)
			}
		case "commission_tier":
			tier := Tier(asString(value))
			if tier != TierNew && tier != TierVeteran && tier != "" {
				return nil, fmt.Errorf("unknown commission tier %q", value)
			}
			if tier == "" {
				value = nil
			}
		case "manager_id", "team_id":
			value = nullableID(asString(value))
		case "start_date", "birth_date":
			parsed, err := time.Parse(time.RFC3339, asString(value))
			if err != nil {
				return nil, fmt.Errorf("field %q must be RFC3339: %w", key, err)
			}
			value = parsed
		}
		fields[column] = value
	}
	return fields, nil
}

func (s *Service) recordChange(ctx context.Context, emp Employee, changeType notify.ChangeType, description, from, to string) {
	change := notify.OrgChange{
		Site:       string(emp.Site),
		ChangeType: changeType,
		Employee:   changeEmployee(emp, ""),
		Change:     notify.ChangeDetail{Description: description, From: from, To: to},
	}
	s.publish(ctx, change, emp)
}

// publish delivers the org-change payload and writes the best-effort change
// log row; neither failure blocks the mutation that already happened.
func (s *Service) publish(ctx context.Context, change notify.OrgChange, emp Employee) {
	change.Timestamp = time.Now().UTC()
	if s.changes != nil {
		if res := s.changes.Publish(ctx, change); !res.Success {
			slog.Warn("org change publish failed", "changeType", change.ChangeType, "employeeId", emp.ID, "err", res.Error)
		}
	}
	entry := ChangeLogEntry{
		EmployeeID:  emp.ID,
		ChangeType:  string(change.ChangeType),
		Description: change.Change.Description,
		From:        change.Change.From,
		To:          change.Change.To,
	}
	if err := s.store.LogChange(ctx, entry); err != nil {
		slog.Warn("change log write failed", "employeeId", emp.ID, "err", err)
	}
}

func changeEmployee(emp Employee, managerName string) notify.ChangeEmployee {
	return notify.ChangeEmployee{
		ID:          emp.ID,
		Name:        emp.Name,
		Role:        string(emp.Role),
		Site:        string(emp.Site),
		ManagerID:   emp.ManagerID,
		ManagerName: managerName,
	}
}

func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}

func orUnassigned(name string) string {
	if name == "" {
		return "unassigned"
	}
	return name
}

func asString(value any) string {
	s, _ := value.(string)
	return s
}
