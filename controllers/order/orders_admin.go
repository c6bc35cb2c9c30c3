package orderControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/parthav15/SNACKSDABBA-BACKEND/models"
	"gorm.io/gorm"
)

const adminPageSize = 20

// mapOrderStatus validates a client-supplied status string.
func mapOrderStatus(s string) (models.OrderStatus, bool) {
	switch models.OrderStatus(s) {
	case models.OrderStatusPending,
		models.OrderStatusProcessing,
		models.OrderStatusShipped,
		models.OrderStatusDelivered,
		models.OrderStatusCancelled,
		models.OrderStatusRefunded:
		return models.OrderStatus(s), true
	}
	return "", false
}

// POST /admin_panel/get_all_orders/ with optional status and page.
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Order{})
		if s := c.PostForm("status"); s != "" {
			status, ok := mapOrderStatus(s)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order status."})
				return
			}
			query = query.Where("status = ?", status)
		}

		page, err := strconv.Atoi(c.DefaultPostForm("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}

		var total int64
		if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders."})
			return
		}

		var orders []models.Order
		err = query.Session(&gorm.Session{}).Preload("Items.Product").Preload("User").
			Order("created_at DESC").
			Limit(adminPageSize).Offset((page - 1) * adminPageSize).
			Find(&orders).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch orders."})
			return
		}

		out := make([]gin.H, 0, len(orders))
		for _, order := range orders {
			payload := orderJSON(order)
			payload["customer_email"] = order.User.Email
			payload["customer_name"] = order.User.FullName()
			out = append(out, payload)
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Orders fetched successfully.",
			"orders":  out,
			"page":    page,
			"total":   total,
		})
	}
}

// POST /admin_panel/get_order_details/:order_id
func AdminOrderDetails(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		err := db.Preload("Items.Product").Preload("User").
			Preload("ShippingAddress").Preload("BillingAddress").
			First(&order, c.Param("order_id")).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found."})
			return
		}

		payload := orderJSON(order)
		payload["customer_email"] = order.User.Email
		payload["customer_name"] = order.User.FullName()
		payload["shipping_address"] = order.ShippingAddress
		payload["billing_address"] = order.BillingAddress

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Order details fetched successfully.",
			"order":   payload,
		})
	}
}

// POST /admin_panel/update_order_status/:order_id
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.First(&order, c.Param("order_id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found."})
			return
		}

		status, ok := mapOrderStatus(c.PostForm("status"))
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order status."})
			return
		}

		updates := map[string]interface{}{"status": status}
		if v, ok := c.GetPostForm("tracking_number"); ok {
			updates["tracking_number"] = v
		}

		if err := db.Model(&order).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update order status."})
			return
		}

		broadcastOrderEvent(gin.H{
			"event":    "order_status_updated",
			"order_id": order.ID,
			"status":   status,
		})

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated successfully."})
	}
}
