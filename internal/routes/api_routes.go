package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Jusetreynoso/saas-residencial/internal/handlers"
	"github.com/Jusetreynoso/saas-residencial/internal/middleware"
	"github.com/Jusetreynoso/saas-residencial/models"
)

// RegisterAPIRoutes registra todos los endpoints autenticados bajo /api.
// Las operaciones de administración exigen ADMIN_RESIDENCIAL (SUPERADMIN
// pasa siempre); el resto está disponible para cualquier residente.
func RegisterAPIRoutes(api *gin.RouterGroup) {
	admin := middleware.RequireRole(models.RoleTenantAdmin)

	apiGroup := api.Group("/api")
	{
		// --- PERFIL ---
		apiGroup.GET("/me", handlers.MeHandler)

		// --- FACTURAS ---
		invoices := apiGroup.Group("/invoices")
		{
			invoices.GET("", handlers.ListInvoicesHandler)
			invoices.GET("/:id", handlers.GetInvoiceHandler)
			invoices.POST("", admin, handlers.CreateInvoiceHandler)
			invoices.POST("/:id/pay", admin, handlers.PayInvoiceHandler)
			invoices.GET("/receivables", admin, handlers.ListReceivablesHandler)
			invoices.GET("/receivables/export", admin, handlers.ExportReceivablesHandler)
		}

		// --- FACTURACIÓN MASIVA ---
		billing := apiGroup.Group("/billing")
		billing.Use(admin)
		{
			billing.POST("/run", handlers.RunBillingCycleHandler)
			billing.POST("/late-fees", handlers.AccrueLateFeesHandler)
		}

		// --- GAS ---
		gas := apiGroup.Group("/gas")
		{
			gas.POST("/readings", admin, handlers.CreateReadingHandler)
			gas.GET("/readings", admin, handlers.ListReadingsHandler)
			gas.GET("/meter-status", admin, handlers.MeterStatusHandler)
		}

		// --- REPORTES DE PAGO ---
		proofs := apiGroup.Group("/proofs")
		{
			proofs.POST("", handlers.SubmitProofHandler)
			proofs.GET("", handlers.ListProofsHandler)
			proofs.POST("/recognize", handlers.RecognizeProofHandler)
			proofs.POST("/:id/approve", admin, handlers.ApproveProofHandler)
			proofs.POST("/:id/reject", admin, handlers.RejectProofHandler)
		}

		// --- GASTOS ---
		expenses := apiGroup.Group("/expenses")
		expenses.Use(admin)
		{
			expenses.GET("", handlers.ListExpensesHandler)
			expenses.POST("", handlers.CreateExpenseHandler)
			expenses.DELETE("/:id", handlers.DeleteExpenseHandler)
			expenses.GET("/export", handlers.ExportExpensesHandler)
		}

		// --- REPORTES FINANCIEROS ---
		apiGroup.GET("/reports/financial", admin, handlers.FinancialReportHandler)

		// --- RESERVAS DE ÁREAS SOCIALES ---
		reservations := apiGroup.Group("/reservations")
		{
			reservations.GET("", handlers.ListReservationsHandler)
			reservations.POST("", handlers.CreateReservationHandler)
			reservations.DELETE("/:id", handlers.CancelReservationHandler)
			reservations.POST("/:id/approve", admin, handlers.ApproveReservationHandler)
			reservations.POST("/:id/reject", admin, handlers.RejectReservationHandler)
			reservations.GET("/calendar", handlers.CalendarEventsHandler)
		}
		areas := apiGroup.Group("/areas")
		{
			areas.GET("", handlers.ListAreasHandler)
			areas.POST("", admin, handlers.CreateAreaHandler)
		}
		blockedDates := apiGroup.Group("/blocked-dates")
		blockedDates.Use(admin)
		{
			blockedDates.POST("", handlers.BlockDateHandler)
			blockedDates.DELETE("/:id", handlers.UnblockDateHandler)
		}

		// --- INCIDENCIAS ---
		incidents := apiGroup.Group("/incidents")
		{
			incidents.GET("", handlers.ListIncidentsHandler)
			incidents.POST("", handlers.CreateIncidentHandler)
			incidents.PUT("/:id", admin, handlers.UpdateIncidentHandler)
		}

		// --- AVISOS ---
		notices := apiGroup.Group("/notices")
		{
			notices.GET("", handlers.ListNoticesHandler)
			notices.POST("", admin, handlers.CreateNoticeHandler)
			notices.DELETE("/:id", admin, handlers.DeleteNoticeHandler)
		}

		// --- RESIDENTES ---
		residents := apiGroup.Group("/residents")
		residents.Use(admin)
		{
			residents.GET("", handlers.ListResidentsHandler)
			residents.POST("", handlers.CreateResidentHandler)
			residents.PUT("/:id", handlers.UpdateResidentHandler)
			residents.DELETE("/:id", handlers.DeactivateResidentHandler)
		}

		// --- APARTAMENTOS ---
		units := apiGroup.Group("/units")
		units.Use(admin)
		{
			units.GET("", handlers.ListUnitsHandler)
			units.POST("", handlers.CreateUnitHandler)
			units.PUT("/:id", handlers.UpdateUnitHandler)
			units.PUT("/:id/billing-owner", handlers.SetBillingOwnerHandler)
		}

		// --- RESIDENCIALES (sólo superadmin) ---
		tenants := apiGroup.Group("/tenants")
		tenants.Use(middleware.RequireRole(models.RoleSuperAdmin))
		{
			tenants.GET("", handlers.ListTenantsHandler)
			tenants.POST("", handlers.CreateTenantHandler)
			tenants.GET("/:id", handlers.GetTenantHandler)
			tenants.PUT("/:id", handlers.UpdateTenantHandler)
		}

		// --- PANEL ---
		apiGroup.GET("/dashboard", admin, handlers.DashboardHandler)
	}
}
