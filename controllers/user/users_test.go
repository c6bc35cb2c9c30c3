package userControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/parthav15/SNACKSDABBA-BACKEND/auth"
	"github.com/parthav15/SNACKSDABBA-BACKEND/models"
	"golang.org/x/crypto/bcrypt"
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
	if err := db.AutoMigrate(&models.User{}, &models.Cart{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func asUser(user models.User) gin.HandlerFunc {
	return func(c *gin.Context) { c.Set("user", user) }
}

func newAuthRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.POST("/api/user_register/", Register(db))
	r.POST("/api/user_login/", Login(db))
	r.GET("/api/activate_email/", ActivateEmail(db))
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterCreatesCustomerAndCart(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	db := newTestDB(t)
	r := newAuthRouter(db)

	w := postJSON(t, r, "/api/user_register/", gin.H{
		"email":      "New.Buyer@Example.com",
		"first_name": "New",
		"last_name":  "Buyer",
		"password":   "hunter22",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: got status %d: %s", w.Code, w.Body.String())
	}

	var user models.User
	if err := db.Where("email = ?", "new.buyer@example.com").First(&user).Error; err != nil {
		t.Fatalf("expected a lowercased user row: %v", err)
	}
	if !user.IsCustomer {
		t.Error("registered user should be a customer")
	}
	if user.Password == "hunter22" {
		t.Error("password must not be stored in clear")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("hunter22")); err != nil {
		t.Error("stored hash should match the submitted password")
	}

	var cartCount int64
	db.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&cartCount)
	if cartCount != 1 {
		t.Errorf("got %d carts for new user, want 1", cartCount)
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	db := newTestDB(t)
	r := newAuthRouter(db)

	payload := gin.H{"email": "buyer@example.com", "password": "hunter22"}
	if w := postJSON(t, r, "/api/user_register/", payload); w.Code != http.StatusCreated {
		t.Fatalf("first register: got status %d", w.Code)
	}
	if w := postJSON(t, r, "/api/user_register/", payload); w.Code != http.StatusConflict {
		t.Errorf("second register: got status %d, want 409", w.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	db := newTestDB(t)
	r := newAuthRouter(db)

	postJSON(t, r, "/api/user_register/", gin.H{"email": "buyer@example.com", "password": "hunter22"})

	w := postJSON(t, r, "/api/user_login/", gin.H{"email": "buyer@example.com", "password": "wrong"})
	if w.Code != http.StatusUnauthorized {
		t.Errorf("got status %d, want 401", w.Code)
	}
}

func TestLoginRejectsNonCustomer(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	db := newTestDB(t)
	r := newAuthRouter(db)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("staffpass"), bcrypt.DefaultCost)
	staff := models.User{Email: "staff@example.com", Password: string(hashed), IsStaff: true}
	if err := db.Create(&staff).Error; err != nil {
		t.Fatalf("seed staff: %v", err)
	}

	w := postJSON(t, r, "/api/user_login/", gin.H{"email": "staff@example.com", "password": "staffpass"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400 for non-customer login", w.Code)
	}
}

func TestActivateEmailFlipsFlag(t *testing.T) {
	t.Setenv("JWT_SECRET", "unit-test-secret")
	t.Setenv("FRONTEND_URL", "")
	db := newTestDB(t)
	r := newAuthRouter(db)

	postJSON(t, r, "/api/user_register/", gin.H{"email": "buyer@example.com", "password": "hunter22"})

	token, err := auth.EncodeToken("buyer@example.com")
	if err != nil {
		t.Fatalf("EncodeToken: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/api/activate_email/?token="+url.QueryEscape(token), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("activate: got status %d: %s", w.Code, w.Body.String())
	}

	var user models.User
	db.Where("email = ?", "buyer@example.com").First(&user)
	if !user.IsEmail {
		t.Error("expected is_email to be set after activation")
	}
}

func TestGetDetailsReturnsProfile(t *testing.T) {
	db := newTestDB(t)
	user := models.User{
		Email:       "buyer@example.com",
		FirstName:   "New",
		LastName:    "Buyer",
		PhoneNumber: "9876543210",
		IsCustomer:  true,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	r := gin.New()
	r.POST("/api/user_get_details/", asUser(user), GetDetails(db))

	req := httptest.NewRequest(http.MethodPost, "/api/user_get_details/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d", w.Code)
	}

	var resp struct {
		UserDetails struct {
			Email       string `json:"email"`
			FirstName   string `json:"first_name"`
			LastName    string `json:"last_name"`
			PhoneNumber string `json:"phone_number"`
		} `json:"user_details"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.UserDetails.Email != "buyer@example.com" ||
		resp.UserDetails.FirstName != "New" ||
		resp.UserDetails.LastName != "Buyer" ||
		resp.UserDetails.PhoneNumber != "9876543210" {
		t.Errorf("unexpected details: %+v", resp.UserDetails)
	}
}

func TestChangePasswordChecksOldPassword(t *testing.T) {
	db := newTestDB(t)
	hashed, _ := bcrypt.GenerateFromPassword([]byte("oldpass"), bcrypt.DefaultCost)
	user := models.User{Email: "buyer@example.com", Password: string(hashed), IsCustomer: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	r := gin.New()
	r.POST("/api/user_change_password/", asUser(user), ChangePassword(db))

	form := url.Values{"old_password": {"nope"}, "new_password": {"newpass"}}
	req := httptest.NewRequest(http.MethodPost, "/api/user_change_password/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400 for wrong old password", w.Code)
	}

	form.Set("old_password", "oldpass")
	req = httptest.NewRequest(http.MethodPost, "/api/user_change_password/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", w.Code, w.Body.String())
	}

	db.First(&user, user.ID)
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("newpass")); err != nil {
		t.Error("stored hash should match the new password")
	}
}
