package orderControllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/parthav15/SNACKSDABBA-BACKEND/middleware"
	"github.com/parthav15/SNACKSDABBA-BACKEND/models"
	"gorm.io/gorm"
)

// recomputeOrderTotal derives total_price from the item rows so it can
// never drift from them. Coupon discounts live in discount_amount and
// are never folded into the total.
func recomputeOrderTotal(tx *gorm.DB, order *models.Order) error {
	var sum float64
	if err := tx.Model(&models.OrderItem{}).
		Where("order_id = ?", order.ID).
		Select("COALESCE(SUM(subtotal), 0)").
		Scan(&sum).Error; err != nil {
		return err
	}
	order.TotalPrice = sum
	return tx.Model(order).Update("total_price", sum).Error
}

func orderItemsJSON(items []models.OrderItem) []gin.H {
	out := make([]gin.H, 0, len(items))
	for _, item := range items {
		out = append(out, gin.H{
			"id":                item.ID,
			"product_id":        item.ProductID,
			"product_name":      item.Product.Name,
			"quantity":          item.Quantity,
			"price_at_purchase": item.PriceAtPurchase,
			"subtotal":          item.Subtotal,
		})
	}
	return out
}

func orderJSON(order models.Order) gin.H {
	return gin.H{
		"id":                  order.ID,
		"user_id":             order.UserID,
		"items":               orderItemsJSON(order.Items),
		"total_price":         order.TotalPrice,
		"discount_amount":     order.DiscountAmount,
		"status":              order.Status,
		"payment_status":      order.PaymentStatus,
		"payment_method":      order.PaymentMethod,
		"tracking_number":     order.TrackingNumber,
		"shipping_address_id": order.ShippingAddressID,
		"billing_address_id":  order.BillingAddressID,
		"order_notes":         order.OrderNotes,
		"is_gift":             order.IsGift,
		"gift_message":        order.GiftMessage,
		"created_at":          order.CreatedAt,
	}
}

// POST /api/create_order/ turns the caller's cart into an order. Prices
// are snapshotted per item and the cart is emptied, all in one
// transaction.
func CreateOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		shippingID, err := strconv.Atoi(c.PostForm("shipping_address_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A valid shipping_address_id is required."})
			return
		}
		billingID, err := strconv.Atoi(c.PostForm("billing_address_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A valid billing_address_id is required."})
			return
		}

		var shipping models.ShippingAddress
		if err := db.Where("id = ? AND user_id = ?", shippingID, user.ID).First(&shipping).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Shipping address not found."})
			return
		}
		var billing models.BillingAddress
		if err := db.Where("id = ? AND user_id = ?", billingID, user.ID).First(&billing).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Billing address not found."})
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", user.ID).First(&cart).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cart is empty."})
			return
		}
		var cartItems []models.CartItem
		if err := db.Preload("Product").Where("cart_id = ?", cart.ID).Find(&cartItems).Error; err != nil || len(cartItems) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Cart is empty."})
			return
		}

		order := models.Order{
			UserID:            user.ID,
			Status:            models.OrderStatusPending,
			PaymentStatus:     models.OrderNotPaid,
			PaymentMethod:     c.PostForm("payment_method"),
			ShippingAddressID: &shipping.ID,
			BillingAddressID:  &billing.ID,
			OrderNotes:        c.PostForm("order_notes"),
			GiftMessage:       c.PostForm("gift_message"),
			IsGift:            c.PostForm("is_gift") == "true" || c.PostForm("is_gift") == "1",
		}

		if code := c.PostForm("coupon_code"); code != "" {
			var coupon models.Coupon
			now := time.Now()
			err := db.Where("code = ? AND is_active = ? AND valid_from <= ? AND valid_until >= ?",
				code, true, now, now).First(&coupon).Error
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid or expired coupon."})
				return
			}
			order.CouponID = &coupon.ID
			order.DiscountAmount = coupon.DiscountAmount
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			for _, item := range cartItems {
				orderItem := models.OrderItem{
					OrderID:         order.ID,
					ProductID:       item.ProductID,
					Quantity:        item.Quantity,
					PriceAtPurchase: item.Product.Price,
				}
				if err := tx.Create(&orderItem).Error; err != nil {
					return err
				}
			}
			if err := recomputeOrderTotal(tx, &order); err != nil {
				return err
			}
			return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create order."})
			return
		}

		broadcastOrderEvent(gin.H{
			"event":       "order_created",
			"order_id":    order.ID,
			"user_id":     user.ID,
			"total_price": order.TotalPrice,
		})

		c.JSON(http.StatusCreated, gin.H{
			"success":     true,
			"message":     "Order created successfully.",
			"order_id":    order.ID,
			"total_price": order.TotalPrice,
		})
	}
}

// POST /api/list_orders/
func ListOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var orders []models.Order
		if err := db.Preload("Items.Product").Where("user_id = ?", user.ID).Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders."})
			return
		}

		out := make([]gin.H, 0, len(orders))
		for _, order := range orders {
			out = append(out, orderJSON(order))
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Orders fetched successfully.",
			"orders":  out,
		})
	}
}

// POST /api/get_order_details/:order_id
func GetOrderDetails(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var order models.Order
		err := db.Preload("Items.Product").Preload("ShippingAddress").Preload("BillingAddress").
			Where("id = ? AND user_id = ?", c.Param("order_id"), user.ID).First(&order).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found."})
			return
		}

		payload := orderJSON(order)
		payload["shipping_address"] = order.ShippingAddress
		payload["billing_address"] = order.BillingAddress
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Order details fetched successfully.",
			"order":   payload,
		})
	}
}

// mutableOrder loads the caller's order and rejects edits once it has
// been paid or has moved past Pending.
func mutableOrder(db *gorm.DB, c *gin.Context, userID uint) (models.Order, bool) {
	var order models.Order
	if err := db.Where("id = ? AND user_id = ?", c.Param("order_id"), userID).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found."})
		return order, false
	}
	if order.Status != models.OrderStatusPending || order.PaymentStatus != models.OrderNotPaid {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Order can no longer be modified."})
		return order, false
	}
	return order, true
}

// POST /api/add_order_item/:order_id
func AddOrderItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		order, ok := mutableOrder(db, c, user.ID)
		if !ok {
			return
		}

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

		err = db.Transaction(func(tx *gorm.DB) error {
			var item models.OrderItem
			err := tx.Where("order_id = ? AND product_id = ?", order.ID, product.ID).First(&item).Error
			switch {
			case err == nil:
				item.Quantity += quantity
				if err := tx.Save(&item).Error; err != nil {
					return err
				}
			case err == gorm.ErrRecordNotFound:
				item = models.OrderItem{
					OrderID:         order.ID,
					ProductID:       product.ID,
					Quantity:        quantity,
					PriceAtPurchase: product.Price,
				}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			default:
				return err
			}
			return recomputeOrderTotal(tx, &order)
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add order item."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"message":     "Order item added successfully.",
			"total_price": order.TotalPrice,
		})
	}
}

// POST /api/remove_order_item/:order_id
func RemoveOrderItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		order, ok := mutableOrder(db, c, user.ID)
		if !ok {
			return
		}

		productID, err := strconv.Atoi(c.PostForm("product_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A valid product_id is required."})
			return
		}

		var item models.OrderItem
		if err := db.Where("order_id = ? AND product_id = ?", order.ID, productID).First(&item).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order item not found."})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&item).Error; err != nil {
				return err
			}
			return recomputeOrderTotal(tx, &order)
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to remove order item."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"message":     "Order item removed successfully.",
			"total_price": order.TotalPrice,
		})
	}
}

// POST /api/update_order_address/:order_id reassigns the shipping and/or
// billing address of an unpaid order.
func UpdateOrderAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		order, ok := mutableOrder(db, c, user.ID)
		if !ok {
			return
		}

		updates := map[string]interface{}{}
		if v, ok := c.GetPostForm("shipping_address_id"); ok {
			id, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid shipping_address_id."})
				return
			}
			var shipping models.ShippingAddress
			if err := db.Where("id = ? AND user_id = ?", id, user.ID).First(&shipping).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Shipping address not found."})
				return
			}
			updates["shipping_address_id"] = shipping.ID
		}
		if v, ok := c.GetPostForm("billing_address_id"); ok {
			id, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid billing_address_id."})
				return
			}
			var billing models.BillingAddress
			if err := db.Where("id = ? AND user_id = ?", id, user.ID).First(&billing).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Billing address not found."})
				return
			}
			updates["billing_address_id"] = billing.ID
		}
		if len(updates) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Nothing to update."})
			return
		}

		if err := db.Model(&order).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update order address."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order address updated successfully."})
	}
}

// POST /api/cancel_order/:order_id
func CancelOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var order models.Order
		if err := db.Where("id = ? AND user_id = ?", c.Param("order_id"), user.ID).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found."})
			return
		}
		if order.Status != models.OrderStatusPending && order.Status != models.OrderStatusProcessing {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Order can no longer be cancelled."})
			return
		}

		if err := db.Model(&order).Update("status", models.OrderStatusCancelled).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to cancel order."})
			return
		}

		broadcastOrderEvent(gin.H{"event": "order_cancelled", "order_id": order.ID})
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order cancelled successfully."})
	}
}
