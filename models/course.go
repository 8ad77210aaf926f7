package models

import (
	"attendance/db"
	"time"
)

type Course struct {
	ID         uint64   `gorm:"primaryKey" json:"id"`
	CreatedAt  int64    `json:"-"`
	Name       string   `gorm:"type:varchar(200);index" json:"name"`
	Code       string   `gorm:"type:varchar(32);uniqueIndex;not null" json:"code"`
	LecturerID uint64   `json:"lecturer_id"`
	Lecturer   Lecturer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

func CourseCreate(c *Course) error {
	if err := courseConflict(c); err != nil {
		return err
	}
	c.CreatedAt = time.Now().Unix()
	return db.Instance.Create(c).Error
}

func CourseByID(id uint64) (c Course, err error) {
	err = db.Instance.First(&c, id).Error
	return c, notFound(err)
}

// CourseOwned returns the course only if it belongs to the lecturer,
// foreign courses are reported as missing.
func CourseOwned(courseID, lecturerID uint64) (Course, error) {
	c, err := CourseByID(courseID)
	if err != nil {
		return c, err
	}
	if c.LecturerID != lecturerID {
		return Course{}, ErrNotFound
	}
	return c, nil
}

func CourseList(lecturerID uint64) (result []Course, err error) {
	tx := db.Instance.Order("code ASC")
	if lecturerID != 0 {
		tx = tx.Where("lecturer_id = ?", lecturerID)
	}
	err = tx.Find(&result).Error
	return
}

func courseConflict(c *Course) error {
	var count int64
	err := db.Instance.Model(&Course{}).Where("id <> ? AND code = ?", c.ID, c.Code).Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrDuplicate
	}
	return nil
}

func CourseUpdate(c *Course) error {
	if err := courseConflict(c); err != nil {
		return err
	}
	return db.Instance.Model(c).Select("name", "code").Updates(c).Error
}

func CourseDelete(id uint64) error {
	return db.Instance.Delete(&Course{}, id).Error
}
