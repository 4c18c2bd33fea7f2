package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/Tomlord1122/assignment-tracker/internal/domain"
	"github.com/Tomlord1122/assignment-tracker/internal/service"
)

var ErrUnknownFormat = errors.New("unknown export format")

type TaskLister interface {
	ListTasks(ctx context.Context) []service.TaskView
}

type AssignmentLister interface {
	ListAssignments(ctx context.Context) []domain.Assignment
}

// Snapshot is everything the tracker holds at one moment.
type Snapshot struct {
	Tasks       []service.TaskView  `json:"tasks"`
	Assignments []domain.Assignment `json:"assignments"`
}

type Exporter struct {
	tasks       TaskLister
	assignments AssignmentLister
}

func NewExporter(tasks TaskLister, assignments AssignmentLister) *Exporter {
	return &Exporter{tasks: tasks, assignments: assignments}
}

// ContentType returns the MIME type for a supported format.
func ContentType(format string) string {
	switch strings.ToLower(format) {
	case "json":
		return "application/json; charset=utf-8"
	case "csv":
		return "text/csv; charset=utf-8"
	case "pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

func (e *Exporter) Export(ctx context.Context, format string) ([]byte, error) {
	snap := Snapshot{
		Tasks:       e.tasks.ListTasks(ctx),
		Assignments: e.assignments.ListAssignments(ctx),
	}

	switch strings.ToLower(format) {
	case "json":
		return json.MarshalIndent(snap, "", "  ")
	case "csv":
		return exportCSV(snap)
	case "pdf":
		return exportPDF(snap)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// exportCSV writes one row per item; the kind column tells tasks and
// assignments apart.
func exportCSV(snap Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"kind", "id", "name", "completed", "due_date", "reminder_time", "notified"})
	for _, t := range snap.Tasks {
		_ = w.Write([]string{"task", strconv.Itoa(t.Index), t.Text, strconv.FormatBool(t.Completed), "", "", ""})
	}
	for _, a := range snap.Assignments {
		_ = w.Write([]string{"assignment", strconv.FormatInt(a.ID, 10), a.Name, "", a.DueDate, reminderText(a), strconv.FormatBool(a.Notified)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportPDF(snap Snapshot) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Tasks")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)
	if len(snap.Tasks) == 0 {
		pdf.MultiCell(0, 6, "No tasks.", "0", "L", false)
	}
	for _, t := range snap.Tasks {
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
		}
		pdf.MultiCell(0, 6, fmt.Sprintf("%s %s", mark, t.Text), "0", "L", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Assignments")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 10)
	if len(snap.Assignments) == 0 {
		pdf.MultiCell(0, 6, "No assignments.", "0", "L", false)
	}
	for _, a := range snap.Assignments {
		line := fmt.Sprintf("%s - Due: %s", a.Name, a.DueDate)
		if a.HasReminder() {
			line += fmt.Sprintf(" (reminder %s)", reminderText(a))
		}
		pdf.MultiCell(0, 6, line, "0", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func reminderText(a domain.Assignment) string {
	if a.ReminderTime == nil {
		return ""
	}
	return *a.ReminderTime
}
