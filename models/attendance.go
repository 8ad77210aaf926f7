package models

import (
	"attendance/db"
	"time"

	"gorm.io/gorm/clause"
)

type AttendanceStatus string

const (
	StatusPresent AttendanceStatus = "hadir"
	StatusSick    AttendanceStatus = "sakit"
	StatusAbsent  AttendanceStatus = "tanpa_keterangan" // absent without notice
)

func (s AttendanceStatus) Valid() bool {
	return s == StatusPresent || s == StatusSick || s == StatusAbsent
}

type Attendance struct {
	ID          uint64           `gorm:"primaryKey" json:"id"`
	SessionID   uint64           `gorm:"uniqueIndex:uniq_session_student;priority:1" json:"session_id"`
	Session     Session          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	StudentID   uint64           `gorm:"uniqueIndex:uniq_session_student;priority:2" json:"student_id"`
	Student     Student          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Status      AttendanceStatus `gorm:"type:varchar(32);not null;default:hadir" json:"status"`
	Confidence  *float64         `json:"confidence"` // set for face marks only
	SnapshotKey string           `gorm:"type:varchar(300)" json:"snapshot_key,omitempty"`
	Timestamp   time.Time        `json:"timestamp"`
}

// UpsertAttendance records the status of a student in a session. Marking again
// overwrites the previous status, so repeated marks are idempotent.
func UpsertAttendance(a *Attendance) error {
	if !a.Status.Valid() {
		return ErrInvalidStatus
	}
	a.ID = 0
	a.Timestamp = time.Now().UTC()
	err := db.Instance.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "confidence", "snapshot_key", "timestamp"}),
	}).Create(a).Error
	if err != nil {
		return err
	}
	// the returned id is unreliable after an update on conflict
	a.ID = 0
	return db.Instance.Where("session_id = ? AND student_id = ?", a.SessionID, a.StudentID).First(a).Error
}

func AttendanceByID(id uint64) (a Attendance, err error) {
	err = db.Instance.Preload("Session").First(&a, id).Error
	return a, notFound(err)
}

func AttendanceFind(sessionID, studentID uint64) (a Attendance, err error) {
	err = db.Instance.Where("session_id = ? AND student_id = ?", sessionID, studentID).First(&a).Error
	return a, notFound(err)
}

func SessionAttendances(sessionID uint64) (result []Attendance, err error) {
	err = db.Instance.Where("session_id = ?", sessionID).Order("student_id ASC").Find(&result).Error
	return
}
