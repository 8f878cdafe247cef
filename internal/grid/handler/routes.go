package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"github.com/maham-nadeemm/APDS/internal/middleware"
)

// RegisterRoutes mounts the API under /api/v1. Role gates here are the
// outer layer; the services re-check ownership and role on every mutating
// operation.
func RegisterRoutes(r *gin.Engine, h *Handlers, jwtSecret string) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/login", h.Auth.Login)

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtSecret))
		{
			// Users
			authorized.GET("/users", h.Registry.ListUsers)
			authorized.POST("/users", middleware.RequireMinRole(entity.RoleDGM), h.Auth.CreateUser)

			// Asset registry
			equipment := authorized.Group("/equipment")
			{
				equipment.GET("", h.Registry.ListEquipment)
				equipment.POST("", middleware.RequireMinRole(entity.RoleEngineer), h.Registry.CreateEquipment)
				equipment.GET("/:id", h.Registry.GetEquipment)
				equipment.PUT("/:id/status", middleware.RequireMinRole(entity.RoleEngineer), h.Registry.UpdateEquipmentStatus)
			}
			vendors := authorized.Group("/vendors")
			{
				vendors.GET("", h.Registry.ListVendors)
				vendors.POST("", middleware.RequireMinRole(entity.RoleEngineer), h.Registry.CreateVendor)
				vendors.GET("/:id", h.Registry.GetVendor)
			}

			// Monitoring
			monitoring := authorized.Group("/monitoring")
			{
				monitoring.GET("", h.Monitoring.List)
				monitoring.POST("", h.Monitoring.Record)
				monitoring.GET("/:id", h.Monitoring.Get)
			}

			// Faults, RCA and escalations
			faults := authorized.Group("/faults")
			{
				faults.GET("", h.Fault.List)
				faults.POST("", h.Fault.Report)
				faults.GET("/:id", h.Fault.Get)
				faults.PUT("/:id/status", h.Fault.UpdateStatus)
				faults.POST("/:id/rca", middleware.RequireMinRole(entity.RoleEngineer), h.Fault.CreateRCA)
				faults.GET("/:id/rca", h.Fault.GetRCA)
				faults.POST("/:id/escalations", h.Escalation.Escalate)
				faults.GET("/:id/escalations", h.Escalation.ListByFault)
			}
			escalations := authorized.Group("/escalations")
			{
				escalations.GET("/pending", h.Escalation.ListPending)
				escalations.GET("/:id", h.Escalation.Get)
				escalations.PUT("/:id/acknowledge", h.Escalation.Acknowledge)
				escalations.PUT("/:id/resolve", h.Escalation.Resolve)
			}

			// Resolution reports
			reports := authorized.Group("/reports")
			{
				reports.GET("", h.Report.List)
				reports.POST("", middleware.RequireMinRole(entity.RoleEngineer), h.Report.Create)
				reports.GET("/:id", h.Report.Get)
				reports.PUT("/:id", h.Report.Update)
				reports.PUT("/:id/submit", h.Report.Submit)
				reports.PUT("/:id/approve", middleware.RequireMinRole(entity.RoleDM), h.Report.Approve)
				reports.PUT("/:id/reject", middleware.RequireMinRole(entity.RoleDM), h.Report.Reject)
				reports.GET("/:id/document", h.Report.Render)
			}

			// Performance reports
			perf := authorized.Group("/performance-reports")
			{
				perf.GET("", h.PerformanceReport.List)
				perf.POST("", h.PerformanceReport.Generate)
				perf.GET("/:id", h.PerformanceReport.Get)
				perf.PUT("/:id/submit", h.PerformanceReport.Submit)
				perf.PUT("/:id/decision", middleware.RequireMinRole(entity.RoleDM), h.PerformanceReport.Decide)
				perf.GET("/:id/export", h.PerformanceReport.Export)
			}

			// Documentation packages
			docs := authorized.Group("/documentation-packages")
			{
				docs.GET("", h.Documentation.List)
				docs.POST("", middleware.RequireMinRole(entity.RoleEngineer), h.Documentation.Create)
				docs.GET("/:id", h.Documentation.Get)
				docs.POST("/:id/items", h.Documentation.AddItem)
				docs.PUT("/:id/complete", h.Documentation.Complete)
				docs.PUT("/:id/submit", h.Documentation.Submit)
				docs.PUT("/:id/approve", middleware.RequireMinRole(entity.RoleDM), h.Documentation.Approve)
			}
			authorized.PUT("/documentation-items/:id", h.Documentation.UpdateItem)
			authorized.DELETE("/documentation-items/:id", h.Documentation.DeleteItem)

			// Data re-verification
			reverifications := authorized.Group("/reverifications")
			{
				reverifications.GET("", h.Reverification.List)
				reverifications.POST("", h.Reverification.Create)
				reverifications.GET("/:id", h.Reverification.Get)
				reverifications.PUT("/:id/approve", middleware.RequireMinRole(entity.RoleEngineer), h.Reverification.Approve)
			}

			// Vendor delivery and service verification
			verifications := authorized.Group("/verifications")
			{
				verifications.GET("", h.DeliveryVerification.List)
				verifications.POST("", middleware.RequireMinRole(entity.RoleEngineer), h.DeliveryVerification.Create)
				verifications.GET("/:id", h.DeliveryVerification.Get)
				verifications.PUT("/:id/compliance", middleware.RequireMinRole(entity.RoleEngineer), h.DeliveryVerification.UpdateCompliance)
				verifications.PUT("/:id/verify", middleware.RequireMinRole(entity.RoleDGM), h.DeliveryVerification.Verify)
			}

			// Notifications
			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.List)
				notifications.GET("/unread-count", h.Notification.UnreadCount)
				notifications.PUT("/read-all", h.Notification.MarkAllRead)
				notifications.PUT("/:id/read", h.Notification.MarkRead)
			}

			// Attachments
			authorized.POST("/uploads", h.Upload.Upload)
			authorized.GET("/uploads/:key/url", h.Upload.Download)
		}
	}
}
