package notify

import (
	"context"
	"time"
)

type ChangeType string

const (
	ChangeEmployeeMove      ChangeType = "employee_move"
	ChangeEmployeePromote   ChangeType = "employee_promote"
	ChangeEmployeeTransfer  ChangeType = "employee_transfer"
	ChangeEmployeeTerminate ChangeType = "employee_terminate"
	ChangeEmployeeCreate    ChangeType = "employee_create"
	ChangeBulkAction        ChangeType = "bulk_action"
)

type ChangeEmployee struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Site        string `json:"site"`
	ManagerID   string `json:"managerId,omitempty"`
	ManagerName string `json:"managerName,omitempty"`
}

type ChangeDetail struct {
	Description string `json:"description"`
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
}

type Metadata struct {
	Source  string `json:"source"`
	Version string `json:"version"`
}

// OrgChange is the payload published to the workflow-automation sink on
// every organizational mutation.
type OrgChange struct {
	Timestamp  time.Time      `json:"timestamp"`
	Site       string         `json:"site"`
	ChangeType ChangeType     `json:"changeType"`
	Employee   ChangeEmployee `json:"employee"`
	Change     ChangeDetail   `json:"change"`
	Metadata   Metadata       `json:"metadata"`
}

// ChangeSink publishes org-change events; delivery failures surface in the
// Result, never as panics.
type ChangeSink interface {
	Publish(ctx context.Context, change OrgChange) Result
}

type noopSink struct{}

func (noopSink) Publish(context.Context, OrgChange) Result {
	return Result{Success: false, Error: "workflow webhook not configured"}
}
