package models

import (
	"attendance/db"
)

type Enrollment struct {
	ID        uint64  `gorm:"primaryKey" json:"id"`
	CourseID  uint64  `gorm:"uniqueIndex:uniq_course_student;priority:1" json:"course_id"`
	Course    Course  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	StudentID uint64  `gorm:"uniqueIndex:uniq_course_student;priority:2" json:"student_id"`
	Student   Student `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// Enroll adds the student to the course, enrolling twice returns the existing record
func Enroll(courseID, studentID uint64) (e Enrollment, err error) {
	err = db.Instance.
		Where(Enrollment{CourseID: courseID, StudentID: studentID}).
		FirstOrCreate(&e).Error
	return
}

func IsEnrolled(courseID, studentID uint64) (bool, error) {
	var count int64
	err := db.Instance.Model(&Enrollment{}).
		Where("course_id = ? AND student_id = ?", courseID, studentID).
		Count(&count).Error
	return count > 0, err
}

func CourseEnrollments(courseID uint64) (result []Enrollment, err error) {
	err = db.Instance.Where("course_id = ?", courseID).Order("id ASC").Find(&result).Error
	return
}

func EnrolledStudents(courseID uint64) (result []Student, err error) {
	err = db.Instance.
		Joins("JOIN enrollments ON enrollments.student_id = students.id").
		Where("enrollments.course_id = ?", courseID).
		Order("students.name ASC").
		Find(&result).Error
	return
}

func EnrollmentCount(courseID uint64) (count int64, err error) {
	err = db.Instance.Model(&Enrollment{}).Where("course_id = ?", courseID).Count(&count).Error
	return
}
