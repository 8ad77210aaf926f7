package report

import (
	"attendance/models"
	"bytes"
	"testing"
	"time"
)

func TestRenderPDF(t *testing.T) {
	finished := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	course := models.Course{ID: 1, Code: "IF101", Name: "Algorithms"}
	tests := []struct {
		name    string
		absents []models.AbsentItem
	}{
		{"everyone present", nil},
		{"with absents", []models.AbsentItem{
			{StudentID: 2, Name: "Budi", NIM: "1301", Status: models.StatusSick},
			{StudentID: 3, Name: "Sari", NIM: "1302", Status: models.StatusAbsent},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			detail := models.ReportDetail{
				Summary: models.ReportSummary{
					CourseID:      1,
					MeetingNo:     4,
					TotalStudents: 3,
					PresentCount:  1,
					SickCount:     1,
					AbsentCount:   1,
					StartedAt:     finished.Add(-90 * time.Minute),
					FinishedAt:    &finished,
				},
				Absents: tt.absents,
			}
			var buf bytes.Buffer
			if err := RenderPDF(&buf, course, detail); err != nil {
				t.Fatalf("RenderPDF() error = %v", err)
			}
			if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
				t.Errorf("output is not a PDF: %q", buf.Bytes()[:min(16, buf.Len())])
			}
		})
	}
}

func TestStatusLabel(t *testing.T) {
	if got := StatusLabel(models.StatusPresent); got != "Present" {
		t.Errorf("StatusLabel(hadir) = %s", got)
	}
	if got := StatusLabel("late"); got != "late" {
		t.Errorf("StatusLabel(late) = %s", got)
	}
}

func TestFormatTime(t *testing.T) {
	if got := formatTime(nil); got != "-" {
		t.Errorf("formatTime(nil) = %s", got)
	}
	ts := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)
	if got := formatTime(&ts); got != "2024-03-01 08:30 UTC" {
		t.Errorf("formatTime() = %s", got)
	}
}
