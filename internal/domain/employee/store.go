package employee

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"dragondrop/internal/domain/offboarding"
)

var (
	// ErrNotConfigured reports the unconfigured-persistence state. Reads
	// degrade to empty results instead; only writes surface this.
	ErrNotConfigured = errors.New("employee store not configured")
	ErrNotFound      = errors.New("employee not found")
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) configured() bool {
	return s != nil && s.DB != nil
}

const employeeColumns = `
    id::text, name, role, site, status, start_date, birth_date,
    COALESCE(manager_id::text, ''), COALESCE(team_id::text, ''),
    COALESCE(commission_tier, ''),
    terminated_at, last_working_day,
    COALESCE(termination_reason, ''), COALESCE(termination_notes, ''),
    termination_documents, final_payout,
    exit_survey_completed, equipment_returned,
    created_at, updated_at`

func (s *Store) Create(ctx context.Context, emp Employee) (string, error) {
	if !s.configured() {
		return "", ErrNotConfigured
	}
	if emp.ID == "" {
		emp.ID = uuid.NewString()
	}
	_, err := s.DB.Exec(ctx, `
    INSERT INTO employees (id, name, role, site, status, start_date, birth_date, manager_id, team_id, commission_tier)
    VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, '')::uuid, NULLIF($9, '')::uuid, NULLIF($10, ''))
  `, emp.ID, emp.Name, emp.Role, emp.Site, StatusActive, emp.StartDate, emp.BirthDate, emp.ManagerID, emp.TeamID, string(emp.CommissionTier))
	if err != nil {
		return "", fmt.Errorf("create employee: %w", err)
	}
	return emp.ID, nil
}

func (s *Store) List(ctx context.Context) ([]Employee, error) {
	if !s.configured() {
		return []Employee{}, nil
	}
	rows, err := s.DB.Query(ctx, "SELECT "+employeeColumns+" FROM employees ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()
	return scanEmployees(rows)
}

func (s *Store) ListBySite(ctx context.Context, site Site) ([]Employee, error) {
	if !s.configured() {
		return []Employee{}, nil
	}
	rows, err := s.DB.Query(ctx, "SELECT "+employeeColumns+" FROM employees WHERE site = $1 ORDER BY name", site)
	if err != nil {
		return nil, fmt.Errorf("list employees by site: %w", err)
	}
	defer rows.Close()
	return scanEmployees(rows)
}

func (s *Store) Get(ctx context.Context, id string) (*Employee, error) {
	if !s.configured() {
		return nil, ErrNotConfigured
	}
	rows, err := s.DB.Query(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	defer rows.Close()
	emps, err := scanEmployees(rows)
	if err != nil {
		return nil, err
	}
	if len(emps) == 0 {
		return nil, ErrNotFound
	}
	return &emps[0], nil
}

func (s *Store) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	if !s.configured() {
		return ErrNotConfigured
	}
	query, args, err := buildUpdate(id, fields)
	if err != nil {
		return err
	}
	tag, err := s.DB.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if !s.configured() {
		return ErrNotConfigured
	}
	tag, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) ListTeams(ctx context.Context) ([]Team, error) {
	if !s.configured() {
		return []Team{}, nil
	}
	rows, err := s.DB.Query(ctx, "SELECT id::text, name, site, created_at FROM teams ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	teams := []Team{}
	for rows.Next() {
		var team Team
		if err := rows.Scan(&team.ID, &team.Name, &team.Site, &team.CreatedAt); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (s *Store) LogChange(ctx context.Context, entry ChangeLogEntry) error {
	if !s.configured() {
		return ErrNotConfigured
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	_, err := s.DB.Exec(ctx, `
    INSERT INTO org_changes (id, employee_id, change_type, description, changed_from, changed_to)
    VALUES ($1, NULLIF($2, '')::uuid, $3, $4, NULLIF($5, ''), NULLIF($6, ''))
  `, entry.ID, entry.EmployeeID, entry.ChangeType, entry.Description, entry.From, entry.To)
	return err
}

func (s *Store) ListChanges(ctx context.Context, limit int) ([]ChangeLogEntry, error) {
	if !s.configured() {
		return []ChangeLogEntry{}, nil
	}
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.DB.Query(ctx, `
    SELECT id::text, COALESCE(employee_id::text, ''), change_type, description,
           COALESCE(changed_from, ''), COALESCE(changed_to, ''), created_at
    FROM org_changes ORDER BY created_at DESC LIMIT $1
  `, limit)
	if err != nil {
		return nil, fmt.Errorf("list changes: %w", err)
	}
	defer rows.Close()

	entries := []ChangeLogEntry{}
	for rows.Next() {
		var entry ChangeLogEntry
		if err := rows.Scan(&entry.ID, &entry.EmployeeID, &entry.ChangeType, &entry.Description, &entry.From, &entry.To, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanEmployees(rows pgx.Rows) ([]Employee, error) {
	emps := []Employee{}
	for rows.Next() {
		var emp Employee
		var terminatedAt, lastWorkingDay *time.Time
		var reason, notes string
		var docsJSON []byte
		var finalPayout *float64
		var exitSurvey, equipment bool
		err := rows.Scan(
			&emp.ID, &emp.Name, &emp.Role, &emp.Site, &emp.Status, &emp.StartDate, &emp.BirthDate,
			&emp.ManagerID, &emp.TeamID, &emp.CommissionTier,
			&terminatedAt, &lastWorkingDay, &reason, &notes, &docsJSON, &finalPayout,
			&exitSurvey, &equipment,
			&emp.CreatedAt, &emp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if terminatedAt != nil {
			term := &offboarding.Termination{
				Date:                *terminatedAt,
				Reason:              offboarding.Reason(reason),
				Notes:               notes,
				ExitSurveyCompleted: exitSurvey,
				EquipmentReturned:   equipment,
			}
			if lastWorkingDay != nil {
				term.LastWorkingDay = *lastWorkingDay
			}
			if finalPayout != nil {
				payout := decimal.NewFromFloat(*finalPayout)
				term.FinalPayout = &payout
			}
			if len(docsJSON) > 0 {
				if err := json.Unmarshal(docsJSON, &term.Documents); err != nil {
					return nil, fmt.Errorf("decode termination documents for %s: %w", emp.ID, err)
				}
			}
			emp.Termination = term
		}
		emps = append(emps, emp)
	}
	return emps, rows.Err()
}

// updatableColumns whitelists merge-patch targets; anything else is
// rejected before it reaches SQL.
var updatableColumns = map[string]bool{
	"name":                  true,
	"role":                  true,
	"site":                  true,
	"status":                true,
	"start_date":            true,
	"birth_date":            true,
	"manager_id":            true,
	"team_id":               true,
	"commission_tier":       true,
	"terminated_at":         true,
	"last_working_day":      true,
	"termination_reason":    true,
	"termination_notes":     true,
	"termination_documents": true,
	"final_payout":          true,
	"exit_survey_completed": true,
	"equipment_returned":    true,
}

func buildUpdate(id string, fields map[string]any) (string, []any, error) {
	if len(fields) == 0 {
		return "", nil, fmt.Errorf("no fields to update")
	}

	columns := make([]string, 0, len(fields))
	for column := range fields {
		if !updatableColumns[column] {
			return "", nil, fmt.Errorf("field %q is not updatable", column)
		}
		columns = append(columns, column)
	}
	sort.Strings(columns)

	var sb strings.Builder
	sb.WriteString("UPDATE employees SET ")
	args := make([]any, 0, len(columns)+1)
	for i, column := range columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		args = append(args, fields[column])
		fmt.Fprintf(&sb, "%s = $%d", column, len(args))
	}
	sb.WriteString(", updated_at = now()")
	args = append(args, id)
	fmt.Fprintf(&sb, " WHERE id = $%d", len(args))
	return sb.String(), args, nil
}
