package handlers

import (
	"attendance/models"
	"attendance/report"
	"attendance/utils"
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// loadReport resolves the course and meeting path parameters into the report detail
func loadReport(c *gin.Context, lecturer *models.Lecturer) (models.Course, models.ReportDetail, bool) {
	courseID, ok := paramID(c, "course_id")
	if !ok {
		return models.Course{}, models.ReportDetail{}, false
	}
	meetingNo, ok := utils.StringToInt(c.Param("meeting_no"))
	if !ok || meetingNo <= 0 {
		c.JSON(http.StatusBadRequest, Response{"invalid meeting_no"})
		return models.Course{}, models.ReportDetail{}, false
	}
	course, ok := loadOwnedCourse(c, courseID, lecturer)
	if !ok {
		return course, models.ReportDetail{}, false
	}
	detail, err := models.GetReportDetail(courseID, meetingNo)
	if errors.Is(err, models.ErrNotFound) {
		c.JSON(http.StatusNotFound, ReportNotFoundResponse)
		return course, detail, false
	} else if err != nil {
		internalError(c, "report_load", err)
		return course, detail, false
	}
	return course, detail, true
}

func ReportGet(c *gin.Context, lecturer *models.Lecturer) {
	if _, detail, ok := loadReport(c, lecturer); ok {
		c.JSON(http.StatusOK, detail)
	}
}

func ReportPDF(c *gin.Context, lecturer *models.Lecturer) {
	course, detail, ok := loadReport(c, lecturer)
	if !ok {
		return
	}
	buf := bytes.Buffer{}
	if err := report.RenderPDF(&buf, course, detail); err != nil {
		internalError(c, "report_pdf", err)
		return
	}
	fileName := fmt.Sprintf("attendance-%s-%d.pdf", course.Code, detail.Summary.MeetingNo)
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
