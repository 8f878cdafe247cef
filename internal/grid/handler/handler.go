package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/maham-nadeemm/APDS/internal/grid/repository"
	"github.com/maham-nadeemm/APDS/internal/grid/service"
	"github.com/maham-nadeemm/APDS/internal/shared/storage"
)

// Handlers is the wired handler set.
type Handlers struct {
	Auth                 *AuthHandler
	Registry             *RegistryHandler
	Monitoring           *MonitoringHandler
	Fault                *FaultHandler
	Escalation           *EscalationHandler
	Report               *ReportHandler
	PerformanceReport    *PerformanceReportHandler
	Documentation        *DocumentationHandler
	Reverification       *ReverificationHandler
	DeliveryVerification *DeliveryVerificationHandler
	Notification         *NotificationHandler
	Upload               *UploadHandler
}

// NewHandlers creates the handler set. store may be nil; uploads then
// report the feature as unavailable.
func NewHandlers(svc *service.Services, store *storage.Client) *Handlers {
	return &Handlers{
		Auth:                 NewAuthHandler(svc.Auth),
		Registry:             NewRegistryHandler(svc.Registry),
		Monitoring:           NewMonitoringHandler(svc.Monitoring),
		Fault:                NewFaultHandler(svc.Fault),
		Escalation:           NewEscalationHandler(svc.Escalation),
		Report:               NewReportHandler(svc.Report),
		PerformanceReport:    NewPerformanceReportHandler(svc.PerformanceReport),
		Documentation:        NewDocumentationHandler(svc.Documentation),
		Reverification:       NewReverificationHandler(svc.Reverification),
		DeliveryVerification: NewDeliveryVerificationHandler(svc.DeliveryVerification),
		Notification:         NewNotificationHandler(svc.Notification),
		Upload:               NewUploadHandler(store),
	}
}

// Response is the uniform JSON envelope.
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Error writes an envelope whose code encodes the HTTP status in its first
// three digits.
func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func Unauthorized(c *gin.Context, message string) {
	Error(c, 40100, message)
}

func Forbidden(c *gin.Context, message string) {
	Error(c, 40300, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

func Unprocessable(c *gin.Context, message string) {
	Error(c, 42200, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// HandleError maps the service sentinels onto HTTP responses. Anything
// unrecognized is a 500.
func HandleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrIncompleteItems):
		BadRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidState), errors.Is(err, service.ErrImmutable):
		Conflict(c, err.Error())
	case errors.Is(err, service.ErrPermission):
		Forbidden(c, err.Error())
	case errors.Is(err, service.ErrNoEscalationTarget), errors.Is(err, service.ErrNoTargetAvailable):
		Unprocessable(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		Unauthorized(c, err.Error())
	case errors.Is(err, repository.ErrBusy):
		Error(c, 50300, err.Error())
	default:
		InternalError(c, err.Error())
	}
}

// GetUserID reads the authenticated user id from the request context.
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}

// GetPagination reads page/page_size query params with sane bounds.
func GetPagination(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20

	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}
	return page, pageSize
}
