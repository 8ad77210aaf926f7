package handlers

import (
	"attendance/logging"
	"attendance/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Response struct {
	Error string `json:"error"`
}

var (
	// Predefined errors
	OKResponse                 = Response{}
	DBErrorResponse            = Response{"DB Error"}
	CourseNotFoundResponse     = Response{"Course not found or unauthorized"}
	StudentNotFoundResponse    = Response{"Student not found"}
	SessionNotFoundResponse    = Response{"Session not found"}
	ReportNotFoundResponse     = Response{"Report not found"}
	AttendanceNotFoundResponse = Response{"Attendance not found"}
	SnapshotNotFoundResponse   = Response{"No snapshot stored for this attendance"}
	NotEnrolledResponse        = Response{"Student is not enrolled in this course"}
	NotRecognizedResponse      = Response{"Face not detected / not recognized"}
	InvalidImageResponse       = Response{"Invalid image"}
	TimeoutResponse            = Response{"Recognition timed out, try again"}
)

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, Response{err.Error()})
}

// internalError logs err with the operation it failed in and answers with a generic 500
func internalError(c *gin.Context, operation string, err error) {
	err = logging.NewOperationError(operation, utils.RequestID(c), err)
	logging.L().Error("request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, DBErrorResponse)
}

// paramID returns a positive integer path parameter, answering 400 otherwise
func paramID(c *gin.Context, name string) (uint64, bool) {
	id := utils.StringToUInt64(c.Param(name))
	if id == 0 {
		c.JSON(http.StatusBadRequest, Response{"invalid " + name})
		return 0, false
	}
	return id, true
}
