package cartControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/parthav15/SNACKSDABBA-BACKEND/middleware"
	"github.com/parthav15/SNACKSDABBA-BACKEND/models"
	"gorm.io/gorm"
)

// getOrCreateCart returns the caller's single cart, creating it if the
// registration-time row is missing for any reason.
func getOrCreateCart(db *gorm.DB, userID uint) (models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if err == gorm.ErrRecordNotFound {
		cart = models.Cart{UserID: userID}
		err = db.Create(&cart).Error
	}
	return cart, err
}

func cartJSON(db *gorm.DB, cart models.Cart) (gin.H, error) {
	var items []models.CartItem
	if err := db.Preload("Product").Where("cart_id = ?", cart.ID).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}

	// Totals are always quoted from the base price; discounts surface in
	// the catalog, not at checkout.
	total := 0.0
	out := make([]gin.H, 0, len(items))
	for _, item := range items {
		subtotal := item.Product.Price * float64(item.Quantity)
		total += subtotal
		out = append(out, gin.H{
			"id":             item.ID,
			"product_id":     item.ProductID,
			"product_name":   item.Product.Name,
			"price":          item.Product.Price,
			"discount_price": item.Product.DiscountPrice,
			"quantity":       item.Quantity,
			"subtotal":       subtotal,
		})
	}
	return gin.H{"id": cart.ID, "items": out, "total_price": total}, nil
}

// POST /api/get_cart/
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		cart, err := getOrCreateCart(db, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart."})
			return
		}
		payload, err := cartJSON(db, cart)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Cart fetched successfully.",
			"cart":    payload,
		})
	}
}

// POST /api/add_to_cart/. Adding an already-carted product accumulates
// its quantity.
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		productID, err := strconv.Atoi(c.PostForm("product_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A valid product_id is required."})
			return
		}
		quantity := 1
		if v := c.PostForm("quantity"); v != "" {
			quantity, err = strconv.Atoi(v)
			if err != nil || quantity < 1 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Quantity must be a positive integer."})
				return
			}
		}

		var product models.Product
		if err := db.First(&product, productID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found."})
			return
		}

		cart, err := getOrCreateCart(db, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart."})
			return
		}

		var item models.CartItem
		err = db.Where("cart_id = ? AND product_id = ?", cart.ID, product.ID).First(&item).Error
		switch {
		case err == nil:
			item.Quantity += quantity
			err = db.Save(&item).Error
		case err == gorm.ErrRecordNotFound:
			item = models.CartItem{CartID: cart.ID, ProductID: product.ID, Quantity: quantity}
			err = db.Create(&item).Error
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add to cart."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product added to cart successfully."})
	}
}

// POST /api/update_cart_item/ sets the quantity outright; zero removes
// the item.
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		productID, err := strconv.Atoi(c.PostForm("product_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A valid product_id is required."})
			return
		}
		quantity, err := strconv.Atoi(c.PostForm("quantity"))
		if err != nil || quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Quantity must be zero or a positive integer."})
			return
		}

		cart, err := getOrCreateCart(db, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart."})
			return
		}

		var item models.CartItem
		if err := db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cart item not found."})
			return
		}

		if quantity == 0 {
			if err := db.Delete(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart."})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart item removed successfully."})
			return
		}

		item.Quantity = quantity
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart item updated successfully."})
	}
}

// POST /api/remove_from_cart/
func RemoveFromCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		productID, err := strconv.Atoi(c.PostForm("product_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A valid product_id is required."})
			return
		}

		cart, err := getOrCreateCart(db, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart."})
			return
		}

		var item models.CartItem
		if err := db.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Cart item not found."})
			return
		}
		if err := db.Delete(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to remove item."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product removed from cart successfully."})
	}
}

// POST /api/clear_cart/ empties the items but keeps the cart row.
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		cart, err := getOrCreateCart(db, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart."})
			return
		}
		if err := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to clear cart."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart cleared successfully."})
	}
}
