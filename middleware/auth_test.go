package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/parthav15/SNACKSDABBA-BACKEND/auth"
	"github.com/parthav15/SNACKSDABBA-BACKEND/models"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newGuardedRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.POST("/customer", AuthCustomer(db), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": CurrentUser(c).Email})
	})
	r.POST("/admin", AuthAdmin(db), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": CurrentUser(c).Email})
	})
	return r
}

func request(r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthCustomerMissingHeader(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	db := newTestDB(t)
	r := newGuardedRouter(db)

	if w := request(r, "/customer", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("got status %d, want 401", w.Code)
	}
}

func TestAuthCustomerBadToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	db := newTestDB(t)
	r := newGuardedRouter(db)

	if w := request(r, "/customer", "Bearer not.a.token"); w.Code != http.StatusUnauthorized {
		t.Errorf("got status %d, want 401", w.Code)
	}
}

func TestAuthCustomerResolvesUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	db := newTestDB(t)
	customer := models.User{Email: "buyer@example.com", IsCustomer: true}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	token, err := auth.EncodeToken(customer.Email)
	if err != nil {
		t.Fatalf("EncodeToken: %v", err)
	}
	r := newGuardedRouter(db)

	if w := request(r, "/customer", "Bearer "+token); w.Code != http.StatusOK {
		t.Errorf("got status %d: %s", w.Code, w.Body.String())
	}
	// A bare token without the Bearer prefix is accepted too.
	if w := request(r, "/customer", token); w.Code != http.StatusOK {
		t.Errorf("bare token: got status %d", w.Code)
	}
}

func TestAuthAdminForbidsCustomers(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	db := newTestDB(t)
	customer := models.User{Email: "buyer@example.com", IsCustomer: true}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	token, err := auth.EncodeToken(customer.Email)
	if err != nil {
		t.Fatalf("EncodeToken: %v", err)
	}
	r := newGuardedRouter(db)

	if w := request(r, "/admin", "Bearer "+token); w.Code != http.StatusForbidden {
		t.Errorf("got status %d, want 403", w.Code)
	}
}

func TestAuthAdminAllowsStaff(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	db := newTestDB(t)
	staff := models.User{Email: "staff@example.com", IsStaff: true}
	if err := db.Create(&staff).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	token, err := auth.EncodeToken(staff.Email)
	if err != nil {
		t.Fatalf("EncodeToken: %v", err)
	}
	r := newGuardedRouter(db)

	if w := request(r, "/admin", "Bearer "+token); w.Code != http.StatusOK {
		t.Errorf("got status %d: %s", w.Code, w.Body.String())
	}
}

func TestRevokedCustomerFlagBlocksAccess(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	db := newTestDB(t)
	customer := models.User{Email: "buyer@example.com", IsCustomer: true}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	token, err := auth.EncodeToken(customer.Email)
	if err != nil {
		t.Fatalf("EncodeToken: %v", err)
	}
	r := newGuardedRouter(db)

	if w := request(r, "/customer", "Bearer "+token); w.Code != http.StatusOK {
		t.Fatalf("got status %d before revocation", w.Code)
	}
	db.Model(&customer).Update("is_customer", false)
	if w := request(r, "/customer", "Bearer "+token); w.Code != http.StatusUnauthorized {
		t.Errorf("got status %d after revocation, want 401", w.Code)
	}
}
