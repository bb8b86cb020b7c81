package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"worktrack/internal/attendance"
	"worktrack/internal/queue"
)

// AttendanceHandler serves check-in, check-out and the per-user report.
// Successful transitions are published on the event feed; publish failures
// are logged and never fail the request.
type AttendanceHandler struct {
	svc    AttendanceService
	events queue.Queue
}

// NewAttendanceHandler creates a handler. events may be nil.
func NewAttendanceHandler(svc AttendanceService, events queue.Queue) *AttendanceHandler {
	return &AttendanceHandler{svc: svc, events: events}
}

type attendanceRequest struct {
	UserID string `json:"userId"`
}

// CheckIn handles POST /attendance/check-in.
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	var req attendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.svc.CheckIn(c.Request.Context(), req.UserID); err != nil {
		switch {
		case errors.Is(err, attendance.ErrInvalidUserID):
			fail(c, http.StatusBadRequest, "Invalid user id")
		case errors.Is(err, attendance.ErrAlreadyCheckedIn):
			fail(c, http.StatusConflict, "User already checked in today")
		default:
			internalError(c, err)
		}
		return
	}

	h.publish(c, queue.TypeCheckIn, req.UserID)
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Checked in successfully"})
}

// CheckOut handles PUT /attendance/check-out.
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	var req attendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.svc.CheckOut(c.Request.Context(), req.UserID); err != nil {
		switch {
		case errors.Is(err, attendance.ErrInvalidUserID):
			fail(c, http.StatusBadRequest, "Invalid user id")
		case errors.Is(err, attendance.ErrNotCheckedIn):
			fail(c, http.StatusNotFound, "User not checked in yet")
		case errors.Is(err, attendance.ErrAlreadyCheckedOut):
			fail(c, http.StatusConflict, "User already checked out")
		default:
			internalError(c, err)
		}
		return
	}

	h.publish(c, queue.TypeCheckOut, req.UserID)
	c.JSON(http.StatusCreated, gin.H{"message": "Checked out successfully"})
}

// Report handles GET /attendance/report.
func (h *AttendanceHandler) Report(c *gin.Context) {
	report, err := h.svc.Report(c.Request.Context(), c.Query("userId"), c.Query("from"), c.Query("to"))
	if err != nil {
		switch {
		case errors.Is(err, attendance.ErrInvalidUserID):
			fail(c, http.StatusBadRequest, "Invalid user id")
		case errors.Is(err, attendance.ErrNoRecords):
			fail(c, http.StatusNotFound, "No attendance records for user")
		default:
			internalError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *AttendanceHandler) publish(c *gin.Context, typ, userID string) {
	if h.events == nil {
		return
	}
	if err := h.events.Publish(c.Request.Context(), queue.Message{Type: typ, Body: []byte(userID)}); err != nil {
		log.Printf("event publish failed: %v", err)
	}
}
