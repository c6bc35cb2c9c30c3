package cartControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
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
	err = db.AutoMigrate(&models.User{}, &models.Category{}, &models.Product{}, &models.Cart{}, &models.CartItem{})
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func asUser(user models.User) gin.HandlerFunc {
	return func(c *gin.Context) { c.Set("user", user) }
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Email: email, IsCustomer: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name string, price, discount float64) models.Product {
	t.Helper()
	category := models.Category{Name: "Snacks " + name}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	product := models.Product{Name: name, Price: price, DiscountPrice: discount, CategoryID: category.ID}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func postForm(t *testing.T, r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newCartRouter(db *gorm.DB, user models.User) *gin.Engine {
	r := gin.New()
	r.POST("/api/get_cart/", asUser(user), GetCart(db))
	r.POST("/api/add_to_cart/", asUser(user), AddToCart(db))
	r.POST("/api/update_cart_item/", asUser(user), UpdateCartItem(db))
	r.POST("/api/remove_from_cart/", asUser(user), RemoveFromCart(db))
	r.POST("/api/clear_cart/", asUser(user), ClearCart(db))
	return r
}

func TestAddToCartAccumulatesQuantity(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "shopper@example.com")
	product := seedProduct(t, db, "Masala Chips", 10, 0)
	r := newCartRouter(db, user)

	form := url.Values{"product_id": {fmt.Sprint(product.ID)}, "quantity": {"2"}}
	if w := postForm(t, r, "/api/add_to_cart/", form); w.Code != http.StatusOK {
		t.Fatalf("first add: got status %d: %s", w.Code, w.Body.String())
	}
	form.Set("quantity", "3")
	if w := postForm(t, r, "/api/add_to_cart/", form); w.Code != http.StatusOK {
		t.Fatalf("second add: got status %d: %s", w.Code, w.Body.String())
	}

	var item models.CartItem
	if err := db.Where("product_id = ?", product.ID).First(&item).Error; err != nil {
		t.Fatalf("fetch cart item: %v", err)
	}
	if item.Quantity != 5 {
		t.Errorf("got quantity %d, want 5", item.Quantity)
	}

	w := postForm(t, r, "/api/get_cart/", url.Values{})
	if w.Code != http.StatusOK {
		t.Fatalf("get cart: got status %d", w.Code)
	}
	var resp struct {
		Cart struct {
			TotalPrice float64 `json:"total_price"`
		} `json:"cart"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if resp.Cart.TotalPrice != 50 {
		t.Errorf("got total %v, want 50", resp.Cart.TotalPrice)
	}
}

func TestUpdateCartItemSetsQuantityOutright(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "shopper@example.com")
	product := seedProduct(t, db, "Peanut Chikki", 5, 0)
	r := newCartRouter(db, user)

	postForm(t, r, "/api/add_to_cart/", url.Values{"product_id": {fmt.Sprint(product.ID)}, "quantity": {"2"}})

	form := url.Values{"product_id": {fmt.Sprint(product.ID)}, "quantity": {"7"}}
	if w := postForm(t, r, "/api/update_cart_item/", form); w.Code != http.StatusOK {
		t.Fatalf("update: got status %d: %s", w.Code, w.Body.String())
	}

	var item models.CartItem
	if err := db.Where("product_id = ?", product.ID).First(&item).Error; err != nil {
		t.Fatalf("fetch cart item: %v", err)
	}
	if item.Quantity != 7 {
		t.Errorf("got quantity %d, want 7", item.Quantity)
	}

	form.Set("quantity", "0")
	if w := postForm(t, r, "/api/update_cart_item/", form); w.Code != http.StatusOK {
		t.Fatalf("update to zero: got status %d", w.Code)
	}
	var count int64
	db.Model(&models.CartItem{}).Where("product_id = ?", product.ID).Count(&count)
	if count != 0 {
		t.Error("expected zero-quantity update to remove the item")
	}
}

func TestCartTotalUsesBasePriceEvenWhenDiscounted(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "shopper@example.com")
	product := seedProduct(t, db, "Dry Fruit Mix", 100, 80)
	r := newCartRouter(db, user)

	postForm(t, r, "/api/add_to_cart/", url.Values{"product_id": {fmt.Sprint(product.ID)}, "quantity": {"2"}})

	w := postForm(t, r, "/api/get_cart/", url.Values{})
	var resp struct {
		Cart struct {
			TotalPrice float64 `json:"total_price"`
		} `json:"cart"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	if resp.Cart.TotalPrice != 200 {
		t.Errorf("got total %v, want 200 (base price)", resp.Cart.TotalPrice)
	}
}

func TestClearCartKeepsCartRow(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "shopper@example.com")
	product := seedProduct(t, db, "Banana Chips", 3, 0)
	r := newCartRouter(db, user)

	postForm(t, r, "/api/add_to_cart/", url.Values{"product_id": {fmt.Sprint(product.ID)}})
	if w := postForm(t, r, "/api/clear_cart/", url.Values{}); w.Code != http.StatusOK {
		t.Fatalf("clear cart: got status %d", w.Code)
	}

	var cart models.Cart
	if err := db.Where("user_id = ?", user.ID).First(&cart).Error; err != nil {
		t.Fatal("expected the cart row to survive clearing")
	}
	var count int64
	db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&count)
	if count != 0 {
		t.Errorf("got %d items after clear, want 0", count)
	}
}

func TestAddToCartUnknownProduct(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "shopper@example.com")
	r := newCartRouter(db, user)

	w := postForm(t, r, "/api/add_to_cart/", url.Values{"product_id": {"999"}})
	if w.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", w.Code)
	}
}
