package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Jusetreynoso/saas-residencial/config"
	"github.com/Jusetreynoso/saas-residencial/internal/notify"
	"github.com/Jusetreynoso/saas-residencial/models"
)

type CreateReservationInput struct {
	AreaID    uint   `json:"areaId" binding:"required"`
	Date      string `json:"date" binding:"required"` // 2006-01-02
	StartTime string `json:"startTime"`               // 15:04
	EndTime   string `json:"endTime"`
}

type CreateAreaInput struct {
	Name     string `json:"name" binding:"required"`
	Capacity int    `json:"capacity"`
}

type BlockDateInput struct {
	Date   string `json:"date" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// ListAreasHandler lista las áreas sociales reservables del residencial.
func ListAreasHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	var areas []models.CommonArea
	if err := config.DB.Where("tenant_id = ?", tenantID).Order("name asc").Find(&areas).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron obtener las áreas"})
		return
	}
	if areas == nil {
		areas = make([]models.CommonArea, 0)
	}
	c.JSON(http.StatusOK, gin.H{"data": areas})
}

// CreateAreaHandler da de alta un área social.
func CreateAreaHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	var input CreateAreaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nombre del área requerido"})
		return
	}
	area := models.CommonArea{TenantID: tenantID, Name: input.Name, Capacity: input.Capacity}
	if area.Capacity <= 0 {
		area.Capacity = 10
	}
	if err := config.DB.Create(&area).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear el área"})
		return
	}
	c.JSON(http.StatusCreated, area)
}

// CreateReservationHandler valida las reglas del residencial y registra la
// solicitud de reserva en estado PENDIENTE.
//
// Reglas: anticipación mínima y máxima, duración máxima, fecha no bloqueada,
// área libre ese día y una sola reserva activa por apartamento por mes.
func CreateReservationHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	var input CreateReservationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Datos de reserva inválidos: " + err.Error()})
		return
	}
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha inválida (aaaa-mm-dd)"})
		return
	}

	var tenant models.Tenant
	if err := config.DB.First(&tenant, tenantID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Residencial no encontrado"})
		return
	}
	if !tenant.AllowsReservations {
		c.JSON(http.StatusForbidden, gin.H{"error": "Este residencial no permite reservas"})
		return
	}

	var area models.CommonArea
	if err := config.DB.Where("tenant_id = ?", tenantID).First(&area, input.AreaID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Área social no encontrada"})
		return
	}

	// La fecha pedida está en UTC; se compara contra la fecha calendario
	// local del servidor para que la anticipación no cambie cerca de la
	// medianoche.
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	advance := int(date.Sub(today).Hours() / 24)
	if advance < tenant.MinAdvanceDays {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La reserva requiere al menos " +
			strconv.Itoa(tenant.MinAdvanceDays) + " días de anticipación"})
		return
	}
	if advance > tenant.MaxAdvanceDays {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La reserva no puede hacerse con más de " +
			strconv.Itoa(tenant.MaxAdvanceDays) + " días de anticipación"})
		return
	}

	var startPtr, endPtr *time.Time
	if input.StartTime != "" && input.EndTime != "" {
		start, err1 := time.Parse("15:04", input.StartTime)
		end, err2 := time.Parse("15:04", input.EndTime)
		if err1 != nil || err2 != nil || !end.After(start) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Horario inválido"})
			return
		}
		if end.Sub(start) > time.Duration(tenant.MaxDurationHours)*time.Hour {
			c.JSON(http.StatusBadRequest, gin.H{"error": "La duración máxima es de " +
				strconv.Itoa(tenant.MaxDurationHours) + " horas"})
			return
		}
		startAt := time.Date(date.Year(), date.Month(), date.Day(), start.Hour(), start.Minute(), 0, 0, time.UTC)
		endAt := time.Date(date.Year(), date.Month(), date.Day(), end.Hour(), end.Minute(), 0, 0, time.UTC)
		startPtr, endPtr = &startAt, &endAt
	}

	var blocked int64
	config.DB.Model(&models.BlockedDate{}).
		Where("tenant_id = ? AND date = ?", tenantID, date).Count(&blocked)
	if blocked > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "La fecha no está disponible para reservas"})
		return
	}

	var occupied int64
	config.DB.Model(&models.Reservation{}).
		Where("area_id = ? AND date = ? AND status IN ?", area.ID, date,
			[]models.ReservationStatus{models.ReservationPending, models.ReservationApproved}).
		Count(&occupied)
	if occupied > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "El área ya está reservada para esa fecha"})
		return
	}

	// Una reserva activa por apartamento por mes: cuentan las de todos los
	// residentes del mismo apartamento.
	var me models.User
	if err := config.DB.First(&me, currentUserID(c)).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
		return
	}
	if me.UnitID != nil {
		monthStart := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
		monthEnd := monthStart.AddDate(0, 1, 0)
		var sameUnit int64
		config.DB.Model(&models.Reservation{}).
			Joins("JOIN users ON users.id = reservations.user_id").
			Where("users.unit_id = ? AND reservations.date >= ? AND reservations.date < ? AND reservations.status IN ?",
				*me.UnitID, monthStart, monthEnd,
				[]models.ReservationStatus{models.ReservationPending, models.ReservationApproved}).
			Count(&sameUnit)
		if sameUnit > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Tu apartamento ya tiene una reserva activa este mes"})
			return
		}
	}

	reservation := models.Reservation{
		TenantID:  tenantID,
		UserID:    me.ID,
		AreaID:    area.ID,
		Date:      date,
		StartTime: startPtr,
		EndTime:   endPtr,
		Status:    models.ReservationPending,
	}
	if err := config.DB.Create(&reservation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo guardar la reserva"})
		return
	}
	c.JSON(http.StatusCreated, reservation)
}

// ListReservationsHandler lista reservas: propias para residentes, de todo
// el residencial para el administrador (filtrable por estado).
func ListReservationsHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	query := config.DB.Preload("User").Preload("Area").
		Where("tenant_id = ?", tenantID).
		Order("date desc, id desc")
	if !isAdmin(c) {
		query = query.Where("user_id = ?", currentUserID(c))
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var reservations []models.Reservation
	if err := query.Find(&reservations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron obtener las reservas"})
		return
	}
	if reservations == nil {
		reservations = make([]models.Reservation, 0)
	}
	c.JSON(http.StatusOK, gin.H{"data": reservations})
}

func reservationInTenant(c *gin.Context, tenantID uint) (*models.Reservation, bool) {
	var reservation models.Reservation
	if err := config.DB.Preload("User").Preload("Area").
		Where("tenant_id = ?", tenantID).
		First(&reservation, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Reserva no encontrada"})
		return nil, false
	}
	return &reservation, true
}

// ApproveReservationHandler aprueba una solicitud pendiente y avisa al
// residente.
func ApproveReservationHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	reservation, ok := reservationInTenant(c, tenantID)
	if !ok {
		return
	}
	if reservation.Status != models.ReservationPending {
		c.JSON(http.StatusConflict, gin.H{"error": "La reserva ya fue decidida"})
		return
	}

	reservation.Status = models.ReservationApproved
	if err := config.DB.Save(reservation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo aprobar la reserva"})
		return
	}

	sendNotice(notify.ReservationDecisionMessage(&reservation.User, reservation, reservation.Area.Name))
	c.JSON(http.StatusOK, reservation)
}

// RejectReservationHandler rechaza una solicitud pendiente con motivo.
func RejectReservationHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	reservation, ok := reservationInTenant(c, tenantID)
	if !ok {
		return
	}
	if reservation.Status != models.ReservationPending {
		c.JSON(http.StatusConflict, gin.H{"error": "La reserva ya fue decidida"})
		return
	}

	var payload struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El motivo del rechazo es obligatorio"})
		return
	}

	reservation.Status = models.ReservationRejected
	reservation.RejectionReason = payload.Reason
	if err := config.DB.Save(reservation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo rechazar la reserva"})
		return
	}

	sendNotice(notify.ReservationDecisionMessage(&reservation.User, reservation, reservation.Area.Name))
	c.JSON(http.StatusOK, reservation)
}

// CancelReservationHandler permite al residente cancelar su propia reserva,
// pendiente o ya aprobada; una rechazada ya no tiene nada que cancelar.
func CancelReservationHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	reservation, ok := reservationInTenant(c, tenantID)
	if !ok {
		return
	}
	if reservation.UserID != currentUserID(c) && !isAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "No puedes cancelar esta reserva"})
		return
	}
	if reservation.Status == models.ReservationRejected {
		c.JSON(http.StatusConflict, gin.H{"error": "La reserva ya fue rechazada"})
		return
	}

	if err := config.DB.Delete(reservation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo cancelar la reserva"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reserva cancelada"})
}

// CalendarEventsHandler devuelve los eventos del mes para el calendario de
// áreas sociales: reservas activas y fechas bloqueadas.
func CalendarEventsHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	from, to, err := monthParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var reservations []models.Reservation
	config.DB.Preload("Area").Preload("User").
		Where("tenant_id = ? AND date >= ? AND date < ? AND status IN ?", tenantID, from, to,
			[]models.ReservationStatus{models.ReservationPending, models.ReservationApproved}).
		Find(&reservations)

	var blocked []models.BlockedDate
	config.DB.Where("tenant_id = ? AND date >= ? AND date < ?", tenantID, from, to).
		Find(&blocked)

	events := make([]gin.H, 0, len(reservations)+len(blocked))
	for _, r := range reservations {
		events = append(events, gin.H{
			"type":   "reserva",
			"date":   r.Date.Format("2006-01-02"),
			"area":   r.Area.Name,
			"user":   r.User.FullName,
			"status": r.Status,
		})
	}
	for _, b := range blocked {
		events = append(events, gin.H{
			"type":   "bloqueo",
			"date":   b.Date.Format("2006-01-02"),
			"reason": b.Reason,
		})
	}
	c.JSON(http.StatusOK, gin.H{"data": events})
}

// BlockDateHandler marca una fecha como no reservable para todo el
// residencial.
func BlockDateHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	var input BlockDateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha y motivo son requeridos"})
		return
	}
	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fecha inválida (aaaa-mm-dd)"})
		return
	}

	block := models.BlockedDate{TenantID: tenantID, Date: date, Reason: input.Reason}
	if err := config.DB.Create(&block).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "La fecha ya está bloqueada"})
		return
	}
	c.JSON(http.StatusCreated, block)
}

// UnblockDateHandler levanta el bloqueo de una fecha.
func UnblockDateHandler(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	result := config.DB.Where("tenant_id = ?", tenantID).
		Delete(&models.BlockedDate{}, c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo desbloquear la fecha"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bloqueo no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fecha desbloqueada"})
}
