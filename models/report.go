package models

import (
	"attendance/db"
	"time"
)

// Report keeps the per-session attendance totals, recomputed after every mark
type Report struct {
	ID            uint64  `gorm:"primaryKey"`
	SessionID     uint64  `gorm:"uniqueIndex"`
	Session       Session `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CourseID      uint64  `gorm:"index"`
	StartedAt     time.Time
	FinishedAt    *time.Time
	TotalStudents int
	PresentCount  int
	SickCount     int
	AbsentCount   int
}

type ReportSummary struct {
	CourseID      uint64     `json:"course_id"`
	MeetingNo     int        `json:"meeting_no"`
	TotalStudents int        `json:"total_students"`
	PresentCount  int        `json:"hadir_count"`
	SickCount     int        `json:"sakit_count"`
	AbsentCount   int        `json:"tanpa_keterangan_count"`
	StartedAt     time.Time  `json:"started_at"`
	FinishedAt    *time.Time `json:"finished_at"`
}

// AbsentItem is an enrolled student that was not marked present
type AbsentItem struct {
	StudentID uint64           `json:"student_id"`
	Name      string           `json:"name"`
	NIM       string           `json:"nim"`
	Status    AttendanceStatus `json:"status"`
}

type ReportDetail struct {
	Summary ReportSummary `json:"summary"`
	Absents []AbsentItem  `json:"absents"`
}

// RecountReport recomputes the totals of a session
func RecountReport(s Session) (r Report, err error) {
	err = db.Instance.
		Where(Report{SessionID: s.ID}).
		Attrs(Report{CourseID: s.CourseID, StartedAt: s.StartedAt, FinishedAt: s.FinishedAt}).
		FirstOrCreate(&r).Error
	if err != nil {
		return
	}
	total, err := EnrollmentCount(s.CourseID)
	if err != nil {
		return
	}
	rows := []struct {
		Status AttendanceStatus
		Count  int
	}{}
	err = db.Instance.Model(&Attendance{}).
		Select("status, count(*) as count").
		Where("session_id = ?", s.ID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return
	}
	r.TotalStudents = int(total)
	r.PresentCount, r.SickCount, r.AbsentCount = 0, 0, 0
	for _, row := range rows {
		switch row.Status {
		case StatusPresent:
			r.PresentCount = row.Count
		case StatusSick:
			r.SickCount = row.Count
		case StatusAbsent:
			r.AbsentCount = row.Count
		}
	}
	err = db.Instance.Save(&r).Error
	return
}

// GetReportDetail builds the summary and the list of enrolled students that were not
// present. Students without any record count as absent without notice.
func GetReportDetail(courseID uint64, meetingNo int) (detail ReportDetail, err error) {
	s, err := SessionFind(courseID, meetingNo)
	if err != nil {
		return
	}
	r := Report{}
	if err = db.Instance.Where("session_id = ?", s.ID).First(&r).Error; err != nil {
		return detail, notFound(err)
	}
	detail.Summary = ReportSummary{
		CourseID:      courseID,
		MeetingNo:     meetingNo,
		TotalStudents: r.TotalStudents,
		PresentCount:  r.PresentCount,
		SickCount:     r.SickCount,
		AbsentCount:   r.AbsentCount,
		StartedAt:     r.StartedAt,
		FinishedAt:    s.FinishedAt,
	}
	students, err := EnrolledStudents(courseID)
	if err != nil {
		return
	}
	records, err := SessionAttendances(s.ID)
	if err != nil {
		return
	}
	statusOf := make(map[uint64]AttendanceStatus, len(records))
	for _, a := range records {
		statusOf[a.StudentID] = a.Status
	}
	detail.Absents = []AbsentItem{}
	for _, st := range students {
		status, ok := statusOf[st.ID]
		if !ok {
			status = StatusAbsent
		}
		if status == StatusPresent {
			continue
		}
		detail.Absents = append(detail.Absents, AbsentItem{
			StudentID: st.ID,
			Name:      st.Name,
			NIM:       st.NIM,
			Status:    status,
		})
	}
	return
}
