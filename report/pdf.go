package report

import (
	"attendance/models"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
)

const (
	timeLayout = "2006-01-02 15:04 MST"
	lineHeight = 7.0
)

var statusLabels = map[models.AttendanceStatus]string{
	models.StatusPresent: "Present",
	models.StatusSick:    "Sick",
	models.StatusAbsent:  "Absent without notice",
}

// StatusLabel returns the human readable attendance status
func StatusLabel(s models.AttendanceStatus) string {
	if l, ok := statusLabels[s]; ok {
		return l
	}
	return string(s)
}

func formatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.UTC().Format(timeLayout)
}

// RenderPDF writes the attendance report of one meeting as an A4 document
func RenderPDF(w io.Writer, course models.Course, detail models.ReportDetail) error {
	s := detail.Summary
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Attendance %s meeting %d", course.Code, s.MeetingNo), true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Attendance Report", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	started := s.StartedAt
	for _, row := range [][2]string{
		{"Course", course.Code + " - " + course.Name},
		{"Meeting", strconv.Itoa(s.MeetingNo)},
		{"Started", formatTime(&started)},
		{"Finished", formatTime(s.FinishedAt)},
	} {
		pdf.CellFormat(35, lineHeight, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, lineHeight, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for _, row := range []struct {
		label string
		count int
	}{
		{"Enrolled students", s.TotalStudents},
		{StatusLabel(models.StatusPresent), s.PresentCount},
		{StatusLabel(models.StatusSick), s.SickCount},
		{StatusLabel(models.StatusAbsent), s.AbsentCount},
	} {
		pdf.CellFormat(60, lineHeight, row.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, lineHeight, strconv.Itoa(row.count), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Not present", "", 1, "L", false, 0, "")
	if len(detail.Absents) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.CellFormat(0, lineHeight, "Every enrolled student was present.", "", 1, "L", false, 0, "")
	} else {
		pdf.SetFillColor(230, 230, 230)
		pdf.SetFont("Helvetica", "B", 11)
		for _, h := range []struct {
			title string
			width float64
		}{{"NIM", 35}, {"Name", 90}, {"Status", 55}} {
			pdf.CellFormat(h.width, lineHeight, h.title, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 11)
		for _, a := range detail.Absents {
			pdf.CellFormat(35, lineHeight, a.NIM, "1", 0, "L", false, 0, "")
			pdf.CellFormat(90, lineHeight, a.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(55, lineHeight, StatusLabel(a.Status), "1", 1, "L", false, 0, "")
		}
	}
	return pdf.Output(w)
}
