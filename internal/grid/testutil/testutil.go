package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/maham-nadeemm/APDS/internal/grid/entity"
	"github.com/maham-nadeemm/APDS/internal/middleware"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const JWTSecret = "apds-test-jwt-secret"

// SetupTestDB opens an isolated in-memory database and migrates the full
// schema. The shared cache keeps the database alive across the pooled
// connections for the duration of the test.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Equipment{},
		&entity.Vendor{},
		&entity.DailyMonitoring{},
		&entity.Fault{},
		&entity.RootCauseAnalysis{},
		&entity.Escalation{},
		&entity.ResolutionReport{},
		&entity.PerformanceReport{},
		&entity.DocumentationPackage{},
		&entity.DocumentationItem{},
		&entity.DataReverification{},
		&entity.DeliveryServiceVerification{},
		&entity.Notification{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})

	return db
}

// SetupRouter creates a gin test router
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// AuthGroup creates an API group with JWT auth middleware for testing
func AuthGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.JWTAuth(JWTSecret))
}

// GenerateTestToken creates a valid JWT token for testing
func GenerateTestToken(userID, name, role string) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"uid":  userID,
		"name": name,
		"role": role,
		"iss":  "apds",
		"iat":  now.Unix(),
		"exp":  now.Add(24 * time.Hour).Unix(),
		"jti":  fmt.Sprintf("test-jti-%d", now.UnixNano()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// DoRequest executes an HTTP request against the test router
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a map
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedUser creates a test user with the given role
func SeedUser(t *testing.T, db *gorm.DB, username, role string) *entity.User {
	t.Helper()
	user := &entity.User{
		ID:       uuid.New().String()[:32],
		Username: username,
		Password: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		FullName: username,
		Role:     role,
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed test user: %v", err)
	}
	return user
}

// SeedEquipment creates a test equipment record
func SeedEquipment(t *testing.T, db *gorm.DB, code string) *entity.Equipment {
	t.Helper()
	eq := &entity.Equipment{
		ID:            uuid.New().String()[:32],
		Code:          code,
		Name:          "Transformer " + code,
		EquipmentType: "transformer",
		Location:      "Substation A",
		Status:        entity.EquipmentStatusOperational,
	}
	if err := db.Create(eq).Error; err != nil {
		t.Fatalf("Failed to seed test equipment: %v", err)
	}
	return eq
}

// SeedVendor creates a test vendor record
func SeedVendor(t *testing.T, db *gorm.DB, code string) *entity.Vendor {
	t.Helper()
	v := &entity.Vendor{
		ID:     uuid.New().String()[:32],
		Code:   code,
		Name:   "Vendor " + code,
		Status: "active",
	}
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("Failed to seed test vendor: %v", err)
	}
	return v
}

// SeedFault creates a test fault and marks its equipment faulty
func SeedFault(t *testing.T, db *gorm.DB, equipmentID, reporterID, severity string) *entity.Fault {
	t.Helper()
	f := &entity.Fault{
		ID:          uuid.New().String()[:32],
		EquipmentID: equipmentID,
		ReportedBy:  reporterID,
		Description: "abnormal humming under load",
		Severity:    severity,
		Status:      entity.FaultStatusReported,
		ReportedAt:  time.Now(),
	}
	if err := db.Create(f).Error; err != nil {
		t.Fatalf("Failed to seed test fault: %v", err)
	}
	if err := db.Model(&entity.Equipment{}).Where("id = ?", equipmentID).
		Update("status", entity.EquipmentStatusFaulty).Error; err != nil {
		t.Fatalf("Failed to mark seeded equipment faulty: %v", err)
	}
	return f
}

// SeedReading creates a test monitoring reading
func SeedReading(t *testing.T, db *gorm.DB, equipmentID, technicianID string, voltage, current, pf *float64) *entity.DailyMonitoring {
	t.Helper()
	m := &entity.DailyMonitoring{
		ID:                uuid.New().String()[:32],
		EquipmentID:       equipmentID,
		TechnicianID:      technicianID,
		MonitoringDate:    time.Now(),
		Shift:             "morning",
		Voltage:           voltage,
		Current:           current,
		PowerFactor:       pf,
		OperationalStatus: entity.MonitoringStatusNormal,
	}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("Failed to seed test reading: %v", err)
	}
	return m
}

// Float64 returns a pointer to v, for optional reading fields
func Float64(v float64) *float64 {
	return &v
}
