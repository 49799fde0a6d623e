package export

import (
	"testing"
	"time"

	"dragondrop/internal/domain/employee"
)

func TestBuildRoster(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	emps := []employee.Employee{
		{
			ID:        "a1",
			Name:      "Alex Agent",
			Role:      employee.RoleAgent,
			Site:      employee.SiteAustin,
			Status:    employee.StatusActive,
			StartDate: now.AddDate(-1, 0, 0),
		},
		{
			ID:        "m1",
			Name:      "Morgan Manager",
			Role:      employee.RoleSalesManager,
			Site:      employee.SiteCharlotte,
			Status:    employee.StatusActive,
			StartDate: now.AddDate(-2, 0, 0),
		},
	}

	f, err := BuildRoster(emps, now)
	if err != nil {
		t.Fatalf("build roster: %v", err)
	}
	defer f.Close()

	name, err := f.GetCellValue(rosterSheet, "A2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if name != "Alex Agent" {
		t.Fatalf("expected agent name in first data row, got %q", name)
	}

	// Twelve months employed puts the agent on the veteran salary.
	salary, err := f.GetCellValue(rosterSheet, "H2")
	if err != nil {
		t.Fatalf("read salary cell: %v", err)
	}
	if salary != "30000" {
		t.Fatalf("expected veteran salary 30000, got %q", salary)
	}

	site, err := f.GetCellValue(sitesSheet, "A2")
	if err != nil {
		t.Fatalf("read site cell: %v", err)
	}
	if site != "austin" {
		t.Fatalf("expected austin first on site sheet, got %q", site)
	}
}

func TestBuildRosterEmpty(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	f, err := BuildRoster(nil, now)
	if err != nil {
		t.Fatalf("build roster: %v", err)
	}
	defer f.Close()

	header, err := f.GetCellValue(rosterSheet, "A1")
	if err != nil {
		t.Fatalf("read header: %v", err)
	}
	if header != "Name" {
		t.Fatalf("expected header row, got %q", header)
	}
}
