package paymentControllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
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
	err = db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{},
		&models.ShippingAddress{}, &models.BillingAddress{},
		&models.Order{}, &models.OrderItem{}, &models.Payment{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func asUser(user models.User) gin.HandlerFunc {
	return func(c *gin.Context) { c.Set("user", user) }
}

func signCallback(t *testing.T, orderID, paymentID, secret string) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func postForm(t *testing.T, r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// fakeGateway counts calls and answers the orders and refunds endpoints
// with canned responses.
func fakeGateway(t *testing.T) (*RazorpayClient, *int64) {
	t.Helper()
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		switch {
		case r.URL.Path == "/orders":
			var body map[string]interface{}
			json.NewDecoder(r.Body).Decode(&body)
			json.NewEncoder(w).Encode(RazorpayOrder{
				ID:       "order_test123",
				Amount:   int64(body["amount"].(float64)),
				Currency: "INR",
				Status:   "created",
			})
		case strings.HasSuffix(r.URL.Path, "/refund"):
			json.NewEncoder(w).Encode(RazorpayRefund{ID: "rfnd_test123", Status: "processed"})
		case strings.HasPrefix(r.URL.Path, "/refunds/"):
			json.NewEncoder(w).Encode(RazorpayRefund{ID: "rfnd_test123", Status: "processed"})
		case strings.HasPrefix(r.URL.Path, "/payments/"):
			json.NewEncoder(w).Encode(RazorpayPayment{
				ID:      strings.TrimPrefix(r.URL.Path, "/payments/"),
				Status:  "captured",
				Method:  "upi",
				OrderID: "order_test123",
			})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	client := &RazorpayClient{
		KeyID:      "rzp_test_key",
		KeySecret:  "testsecret",
		BaseURL:    srv.URL,
		HTTPClient: srv.Client(),
	}
	return client, &calls
}

type paymentFixture struct {
	db    *gorm.DB
	user  models.User
	admin models.User
	order models.Order
}

func newPaymentFixture(t *testing.T) paymentFixture {
	t.Helper()
	db := newTestDB(t)

	user := models.User{Email: "buyer@example.com", IsCustomer: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	admin := models.User{Email: "staff@example.com", IsStaff: true}
	if err := db.Create(&admin).Error; err != nil {
		t.Fatalf("seed admin: %v", err)
	}

	order := models.Order{
		UserID:        user.ID,
		TotalPrice:    123.45,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.OrderNotPaid,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return paymentFixture{db: db, user: user, admin: admin, order: order}
}

func newPaymentRouter(f paymentFixture, gateway *RazorpayClient) *gin.Engine {
	r := gin.New()
	r.POST("/payments/create_payment/", asUser(f.user), CreatePayment(f.db, gateway))
	r.POST("/payments/verify_payment/", asUser(f.user), VerifyPayment(f.db, gateway))
	r.POST("/payments/refund_payment/:order_id", asUser(f.admin), RefundPayment(f.db, gateway))
	return r
}

func TestCreatePaymentRegistersGatewayOrderInPaise(t *testing.T) {
	f := newPaymentFixture(t)
	gateway, _ := fakeGateway(t)
	r := newPaymentRouter(f, gateway)

	form := url.Values{"order_id": {fmt.Sprint(f.order.ID)}}
	w := postForm(t, r, "/payments/create_payment/", form)
	if w.Code != http.StatusCreated {
		t.Fatalf("create payment: got status %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		RazorpayOrderID string `json:"razorpay_order_id"`
		Amount          int64  `json:"amount"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RazorpayOrderID != "order_test123" {
		t.Errorf("got gateway order id %q", resp.RazorpayOrderID)
	}
	if resp.Amount != 12345 {
		t.Errorf("got amount %d paise, want 12345", resp.Amount)
	}

	var payment models.Payment
	if err := f.db.Where("order_id = ?", f.order.ID).First(&payment).Error; err != nil {
		t.Fatalf("fetch payment: %v", err)
	}
	if payment.Status != models.PaymentPending {
		t.Errorf("got payment status %q, want Pending", payment.Status)
	}
	if payment.Amount != 123.45 {
		t.Errorf("got recorded amount %v, want 123.45", payment.Amount)
	}
}

func TestVerifyPaymentBadSignatureFailsPaymentOnly(t *testing.T) {
	f := newPaymentFixture(t)
	gateway, _ := fakeGateway(t)
	r := newPaymentRouter(f, gateway)

	payment := models.Payment{
		OrderID:         f.order.ID,
		UserID:          f.user.ID,
		Amount:          f.order.TotalPrice,
		Status:          models.PaymentPending,
		RazorpayOrderID: "order_test123",
	}
	if err := f.db.Create(&payment).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	form := url.Values{
		"razorpay_order_id":   {"order_test123"},
		"razorpay_payment_id": {"pay_abc"},
		"razorpay_signature":  {"deadbeef"},
	}
	w := postForm(t, r, "/payments/verify_payment/", form)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", w.Code)
	}

	f.db.First(&payment, payment.ID)
	if payment.Status != models.PaymentFailed {
		t.Errorf("got payment status %q, want Failed", payment.Status)
	}
	var order models.Order
	f.db.First(&order, f.order.ID)
	if order.PaymentStatus != models.OrderNotPaid {
		t.Errorf("order payment status changed to %q on failed verification", order.PaymentStatus)
	}
}

func TestVerifyPaymentGoodSignatureMarksOrderPaid(t *testing.T) {
	f := newPaymentFixture(t)
	gateway, _ := fakeGateway(t)
	r := newPaymentRouter(f, gateway)

	payment := models.Payment{
		OrderID:         f.order.ID,
		UserID:          f.user.ID,
		Amount:          f.order.TotalPrice,
		Status:          models.PaymentPending,
		RazorpayOrderID: "order_test123",
	}
	if err := f.db.Create(&payment).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	form := url.Values{
		"razorpay_order_id":   {"order_test123"},
		"razorpay_payment_id": {"pay_abc"},
		"razorpay_signature":  {signCallback(t, "order_test123", "pay_abc", gateway.KeySecret)},
	}
	w := postForm(t, r, "/payments/verify_payment/", form)
	if w.Code != http.StatusOK {
		t.Fatalf("got status %d: %s", w.Code, w.Body.String())
	}

	f.db.First(&payment, payment.ID)
	if payment.Status != models.PaymentPaid {
		t.Errorf("got payment status %q, want Paid", payment.Status)
	}
	var order models.Order
	f.db.First(&order, f.order.ID)
	if order.PaymentStatus != models.OrderPaid {
		t.Errorf("got order payment status %q, want Paid", order.PaymentStatus)
	}
	if order.Status != models.OrderStatusProcessing {
		t.Errorf("got order status %q, want Processing", order.Status)
	}
	if order.PaymentMethod != "upi" {
		t.Errorf("got payment method %q, want upi", order.PaymentMethod)
	}
}

func TestRefundRequiresPaidPayment(t *testing.T) {
	f := newPaymentFixture(t)
	gateway, calls := fakeGateway(t)
	r := newPaymentRouter(f, gateway)

	w := postForm(t, r, fmt.Sprintf("/payments/refund_payment/%d", f.order.ID), url.Values{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("got status %d, want 400", w.Code)
	}
	if *calls != 0 {
		t.Errorf("gateway was called %d times for an unpaid order", *calls)
	}
}

func TestFullRefundMarksPaymentAndOrderRefunded(t *testing.T) {
	f := newPaymentFixture(t)
	gateway, _ := fakeGateway(t)
	r := newPaymentRouter(f, gateway)

	f.db.Model(&models.Order{}).Where("id = ?", f.order.ID).Update("payment_status", models.OrderPaid)
	payment := models.Payment{
		OrderID:           f.order.ID,
		UserID:            f.user.ID,
		Amount:            f.order.TotalPrice,
		Status:            models.PaymentPaid,
		RazorpayOrderID:   "order_test123",
		RazorpayPaymentID: "pay_abc",
	}
	if err := f.db.Create(&payment).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	w := postForm(t, r, fmt.Sprintf("/payments/refund_payment/%d", f.order.ID), url.Values{})
	if w.Code != http.StatusOK {
		t.Fatalf("refund: got status %d: %s", w.Code, w.Body.String())
	}

	f.db.First(&payment, payment.ID)
	if payment.Status != models.PaymentRefunded {
		t.Errorf("got payment status %q, want Refunded", payment.Status)
	}
	if payment.RefundID != "rfnd_test123" {
		t.Errorf("got refund id %q", payment.RefundID)
	}
	if payment.RefundAmount != f.order.TotalPrice {
		t.Errorf("got refund amount %v, want %v", payment.RefundAmount, f.order.TotalPrice)
	}

	var order models.Order
	f.db.First(&order, f.order.ID)
	if order.PaymentStatus != models.OrderPaymentsBack {
		t.Errorf("got order payment status %q, want Refunded", order.PaymentStatus)
	}
	if order.Status != models.OrderStatusRefunded {
		t.Errorf("got order status %q, want Refunded", order.Status)
	}
}

func TestPartialRefundKeepsOrderPaid(t *testing.T) {
	f := newPaymentFixture(t)
	gateway, _ := fakeGateway(t)
	r := newPaymentRouter(f, gateway)

	f.db.Model(&models.Order{}).Where("id = ?", f.order.ID).Update("payment_status", models.OrderPaid)
	payment := models.Payment{
		OrderID:           f.order.ID,
		UserID:            f.user.ID,
		Amount:            f.order.TotalPrice,
		Status:            models.PaymentPaid,
		RazorpayOrderID:   "order_test123",
		RazorpayPaymentID: "pay_abc",
	}
	if err := f.db.Create(&payment).Error; err != nil {
		t.Fatalf("seed payment: %v", err)
	}

	form := url.Values{"amount": {"50"}}
	w := postForm(t, r, fmt.Sprintf("/payments/refund_payment/%d", f.order.ID), form)
	if w.Code != http.StatusOK {
		t.Fatalf("refund: got status %d: %s", w.Code, w.Body.String())
	}

	f.db.First(&payment, payment.ID)
	if payment.Status != models.PaymentPartRefunded {
		t.Errorf("got payment status %q, want PartialRefunded", payment.Status)
	}
	var order models.Order
	f.db.First(&order, f.order.ID)
	if order.PaymentStatus != models.OrderPaid {
		t.Errorf("got order payment status %q, want Paid after partial refund", order.PaymentStatus)
	}
}
