package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Jusetreynoso/saas-residencial/config"
	"github.com/Jusetreynoso/saas-residencial/internal/ledger"
	"github.com/Jusetreynoso/saas-residencial/models"
)

// webFixture levanta la base en memoria, la engancha al config global y deja
// listos un residencial con área social y dos residentes en apartamentos
// distintos.
type webFixture struct {
	tenant models.Tenant
	area   models.CommonArea
	unitA  models.Unit
	unitB  models.Unit
	userA  models.User
	userB  models.User
}

func newWebFixture(t *testing.T) *webFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(models.All()...))

	config.DB = db
	Init(ledger.New(db, nil), nil)

	f := &webFixture{}
	f.tenant = models.Tenant{
		Name:               "Residencial Vista Azul",
		AllowsReservations: true,
		MinAdvanceDays:     7,
		MaxAdvanceDays:     30,
		MaxDurationHours:   5,
		CutoffDay:          1,
		GraceDays:          15,
	}
	require.NoError(t, db.Create(&f.tenant).Error)

	f.area = models.CommonArea{TenantID: f.tenant.ID, Name: "Gazebo", Capacity: 20}
	require.NoError(t, db.Create(&f.area).Error)

	f.unitA = models.Unit{TenantID: f.tenant.ID, Number: "A-101"}
	require.NoError(t, db.Create(&f.unitA).Error)
	f.unitB = models.Unit{TenantID: f.tenant.ID, Number: "B-201"}
	require.NoError(t, db.Create(&f.unitB).Error)

	f.userA = models.User{Username: "vecinoA", Role: models.RoleResident, TenantID: &f.tenant.ID, UnitID: &f.unitA.ID}
	require.NoError(t, db.Create(&f.userA).Error)
	f.userB = models.User{Username: "vecinoB", Role: models.RoleResident, TenantID: &f.tenant.ID, UnitID: &f.unitB.ID}
	require.NoError(t, db.Create(&f.userB).Error)
	return f
}

// postReservation invoca el handler directamente con la identidad dada en el
// contexto, como la dejaría el middleware de autenticación.
func (f *webFixture) postReservation(t *testing.T, user *models.User, body CreateReservationInput) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/reservations", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set("user_id", user.ID)
	c.Set("role", user.Role)
	c.Set("tenant_id", *user.TenantID)

	CreateReservationHandler(c)
	return w
}

// dateIn devuelve la fecha de hoy + días, como la mandaría el cliente.
func dateIn(days int) string {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return today.AddDate(0, 0, days).Format("2006-01-02")
}

func TestCreateReservationHappyPath(t *testing.T) {
	f := newWebFixture(t)

	w := f.postReservation(t, &f.userA, CreateReservationInput{
		AreaID: f.area.ID, Date: dateIn(10), StartTime: "10:00", EndTime: "14:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var reservation models.Reservation
	require.NoError(t, config.DB.First(&reservation).Error)
	assert.Equal(t, models.ReservationPending, reservation.Status)
	assert.Equal(t, f.userA.ID, reservation.UserID)
}

func TestCreateReservationAdvanceWindow(t *testing.T) {
	f := newWebFixture(t)

	// Muy pronto: menos de la anticipación mínima.
	w := f.postReservation(t, &f.userA, CreateReservationInput{AreaID: f.area.ID, Date: dateIn(2)})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Muy lejos: más de la anticipación máxima.
	w = f.postReservation(t, &f.userA, CreateReservationInput{AreaID: f.area.ID, Date: dateIn(40)})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateReservationMaxDuration(t *testing.T) {
	f := newWebFixture(t)

	w := f.postReservation(t, &f.userA, CreateReservationInput{
		AreaID: f.area.ID, Date: dateIn(10), StartTime: "10:00", EndTime: "16:00",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "duración máxima")
}

func TestCreateReservationBlockedDate(t *testing.T) {
	f := newWebFixture(t)

	date := dateIn(10)
	parsed, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	require.NoError(t, config.DB.Create(&models.BlockedDate{
		TenantID: f.tenant.ID, Date: parsed, Reason: "Mantenimiento Piscina",
	}).Error)

	w := f.postReservation(t, &f.userA, CreateReservationInput{AreaID: f.area.ID, Date: date})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateReservationAreaOccupied(t *testing.T) {
	f := newWebFixture(t)

	date := dateIn(10)
	w := f.postReservation(t, &f.userA, CreateReservationInput{AreaID: f.area.ID, Date: date})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Otro apartamento, misma área y fecha.
	w = f.postReservation(t, &f.userB, CreateReservationInput{AreaID: f.area.ID, Date: date})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "ya está reservada")
}

func TestCreateReservationOnePerUnitPerMonth(t *testing.T) {
	f := newWebFixture(t)

	otherArea := models.CommonArea{TenantID: f.tenant.ID, Name: "Piscina", Capacity: 30}
	require.NoError(t, config.DB.Create(&otherArea).Error)

	date := dateIn(10)
	w := f.postReservation(t, &f.userA, CreateReservationInput{AreaID: f.area.ID, Date: date})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Mismo apartamento, otra área, mismo mes.
	w = f.postReservation(t, &f.userA, CreateReservationInput{AreaID: otherArea.ID, Date: date})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "reserva activa este mes")
}

func TestCreateReservationDisabledTenant(t *testing.T) {
	f := newWebFixture(t)
	require.NoError(t, config.DB.Model(&models.Tenant{}).
		Where("id = ?", f.tenant.ID).
		Update("allows_reservations", false).Error)

	w := f.postReservation(t, &f.userA, CreateReservationInput{AreaID: f.area.ID, Date: dateIn(10)})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateReservationUnknownArea(t *testing.T) {
	f := newWebFixture(t)
	w := f.postReservation(t, &f.userA, CreateReservationInput{AreaID: 999, Date: dateIn(10)})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// mensaje visible en el panel: el detalle de la violación llega al cliente.
func TestReservationErrorBodiesAreSpanish(t *testing.T) {
	f := newWebFixture(t)
	w := f.postReservation(t, &f.userA, CreateReservationInput{AreaID: f.area.ID, Date: dateIn(2)})
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["error"], fmt.Sprintf("%d días de anticipación", f.tenant.MinAdvanceDays))
}
