package models

import (
	"attendance/db"
	"time"
)

type Student struct {
	ID        uint64  `gorm:"primaryKey" json:"id"`
	CreatedAt int64   `json:"-"`
	Name      string  `gorm:"type:varchar(150);not null;index" json:"name"`
	NIM       string  `gorm:"column:nim;type:varchar(32);uniqueIndex;not null" json:"nim"`
	FaceID    *string `gorm:"type:varchar(100);uniqueIndex" json:"face_id"` // classifier label
	Email     *string `gorm:"type:varchar(150)" json:"email"`
}

func StudentCreate(s *Student) error {
	if err := studentConflict(s); err != nil {
		return err
	}
	s.CreatedAt = time.Now().Unix()
	return db.Instance.Create(s).Error
}

// studentConflict reports ErrDuplicate when another student has the same NIM or face ID
func studentConflict(s *Student) error {
	tx := db.Instance.Model(&Student{}).Where("id <> ?", s.ID)
	if s.FaceID != nil {
		tx = tx.Where("nim = ? OR face_id = ?", s.NIM, *s.FaceID)
	} else {
		tx = tx.Where("nim = ?", s.NIM)
	}
	var count int64
	if err := tx.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}
	return nil
}

func StudentByID(id uint64) (s Student, err error) {
	err = db.Instance.First(&s, id).Error
	return s, notFound(err)
}

func StudentList() (result []Student, err error) {
	err = db.Instance.Order("name ASC").Find(&result).Error
	return
}

func StudentUpdate(s *Student) error {
	if err := studentConflict(s); err != nil {
		return err
	}
	return db.Instance.Model(s).Select("name", "nim", "face_id", "email").Updates(s).Error
}

func StudentDelete(id uint64) error {
	result := db.Instance.Delete(&Student{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// StudentByIdentity resolves a classifier label to a student: the face ID first,
// the student name for artifacts trained on names.
func StudentByIdentity(identity string) (s Student, err error) {
	err = db.Instance.Where("face_id = ?", identity).First(&s).Error
	if err == nil {
		return
	}
	err = db.Instance.Where("name = ?", identity).First(&s).Error
	return s, notFound(err)
}
