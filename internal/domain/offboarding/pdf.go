package offboarding

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// SummaryData carries everything the termination summary PDF needs, so this
// package stays independent of the employee model.
type SummaryData struct {
	EmployeeID   string
	Name         string
	Role         string
	Site         string
	StartDate    time.Time
	Termination  Termination
	TenureMonths int
}

// GenerateSummaryPDF writes a one-page termination summary under dir and
// returns the file path.
func GenerateSummaryPDF(dir string, data SummaryData) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	filePath := filepath.Join(dir, data.EmployeeID+".pdf")

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Termination Summary")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", data.Name))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Role: %s  Site: %s", data.Role, data.Site))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Started: %s", data.StartDate.Format("2006-01-02")))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Terminated: %s (%d months tenure)", data.Termination.Date.Format("2006-01-02"), data.TenureMonths))
	pdf.Ln(7)
	if !data.Termination.LastWorkingDay.IsZero() {
		pdf.Cell(0, 8, fmt.Sprintf("Last working day: %s", data.Termination.LastWorkingDay.Format("2006-01-02")))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Reason: %s", data.Termination.Reason))
	pdf.Ln(7)
	if data.Termination.FinalPayout != nil {
		pdf.Cell(0, 8, fmt.Sprintf("Final payout: $%s", data.Termination.FinalPayout.StringFixed(2)))
		pdf.Ln(7)
	}
	pdf.Cell(0, 8, fmt.Sprintf("Exit survey completed: %t", data.Termination.ExitSurveyCompleted))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Equipment returned: %t", data.Termination.EquipmentReturned))
	pdf.Ln(10)

	if len(data.Termination.Documents) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Documents on file")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		for _, doc := range data.Termination.Documents {
			pdf.Cell(0, 7, fmt.Sprintf("- %s (%s, uploaded %s by %s)", doc.Name, doc.Category, doc.UploadedAt.Format("2006-01-02"), doc.UploadedBy))
			pdf.Ln(6)
		}
		pdf.Ln(4)
	}

	if data.Termination.Notes != "" {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Notes")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, data.Termination.Notes, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", err
	}
	return filePath, nil
}
