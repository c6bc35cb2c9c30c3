package adminControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/parthav15/SNACKSDABBA-BACKEND/auth"
	"github.com/parthav15/SNACKSDABBA-BACKEND/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const usersPageSize = 20

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /admin_panel/admin_login/. Valid credentials for a non-staff user
// are rejected with 403.
func AdminLogin(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing email or password."})
			return
		}

		var user models.User
		if err := db.Where("LOWER(email) = LOWER(?)", strings.TrimSpace(input.Email)).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid login credentials."})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(strings.TrimSpace(input.Password))); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid login credentials."})
			return
		}
		if !user.IsStaff {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "message": "You do not have admin access."})
			return
		}

		token, err := auth.EncodeToken(user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to issue token."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Admin login successful.", "token": token})
	}
}

// POST /admin_panel/users_list/ with optional search and page.
func UsersList(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.User{}).Where("is_customer = ?", true)
		if q := c.PostForm("search"); q != "" {
			pattern := "%" + strings.ToLower(q) + "%"
			query = query.Where("LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
				pattern, pattern, pattern)
		}

		page, err := strconv.Atoi(c.DefaultPostForm("page", "1"))
		if err != nil || page < 1 {
			page = 1
		}

		var total int64
		if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch users."})
			return
		}

		var users []models.User
		if err := query.Session(&gorm.Session{}).Order("id").Limit(usersPageSize).Offset((page-1)*usersPageSize).Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch users."})
			return
		}

		out := make([]gin.H, 0, len(users))
		for _, user := range users {
			out = append(out, gin.H{
				"id":           user.ID,
				"email":        user.Email,
				"full_name":    user.FullName(),
				"phone_number": user.PhoneNumber,
				"is_email":     user.IsEmail,
				"created_at":   user.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Users fetched successfully.",
			"users":   out,
			"page":    page,
			"total":   total,
		})
	}
}

// POST /admin_panel/user_detail/:user_id aggregates the customer's
// profile with order, cart and wishlist activity.
func UserDetail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, c.Param("user_id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found."})
			return
		}

		var orderCount int64
		db.Model(&models.Order{}).Where("user_id = ?", user.ID).Count(&orderCount)

		var totalSpent float64
		db.Model(&models.Order{}).
			Where("user_id = ? AND payment_status = ?", user.ID, models.OrderPaid).
			Select("COALESCE(SUM(total_price), 0)").
			Scan(&totalSpent)

		var wishlistCount int64
		db.Model(&models.Wishlist{}).Where("user_id = ?", user.ID).Count(&wishlistCount)

		var reviewCount int64
		db.Model(&models.Review{}).Where("user_id = ?", user.ID).Count(&reviewCount)

		var cartItemCount int64
		var cart models.Cart
		if err := db.Where("user_id = ?", user.ID).First(&cart).Error; err == nil {
			db.Model(&models.CartItem{}).Where("cart_id = ?", cart.ID).Count(&cartItemCount)
		}

		var shippingAddresses []models.ShippingAddress
		db.Where("user_id = ?", user.ID).Find(&shippingAddresses)
		var billingAddresses []models.BillingAddress
		db.Where("user_id = ?", user.ID).Find(&billingAddresses)

		var recentOrders []models.Order
		db.Where("user_id = ?", user.ID).Order("created_at DESC").Limit(5).Find(&recentOrders)
		orders := make([]gin.H, 0, len(recentOrders))
		for _, order := range recentOrders {
			orders = append(orders, gin.H{
				"id":             order.ID,
				"total_price":    order.TotalPrice,
				"status":         order.Status,
				"payment_status": order.PaymentStatus,
				"created_at":     order.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "User details fetched successfully.",
			"user": gin.H{
				"id":              user.ID,
				"email":           user.Email,
				"full_name":       user.FullName(),
				"phone_number":    user.PhoneNumber,
				"country":         user.Country,
				"city":            user.City,
				"is_email":        user.IsEmail,
				"profile_picture": user.ProfilePicture,
				"created_at":      user.CreatedAt,
			},
			"stats": gin.H{
				"order_count":     orderCount,
				"total_spent":     totalSpent,
				"wishlist_count":  wishlistCount,
				"review_count":    reviewCount,
				"cart_item_count": cartItemCount,
			},
			"shipping_addresses": shippingAddresses,
			"billing_addresses":  billingAddresses,
			"recent_orders":      orders,
		})
	}
}

// POST /admin_panel/user_cart/:user_id shows what a customer currently
// has carted.
func UserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, c.Param("user_id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found."})
			return
		}

		var cart models.Cart
		if err := db.Where("user_id = ?", user.ID).First(&cart).Error; err != nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart fetched successfully.", "items": []gin.H{}})
			return
		}

		var items []models.CartItem
		if err := db.Preload("Product").Where("cart_id = ?", cart.ID).Order("id").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch cart."})
			return
		}

		out := make([]gin.H, 0, len(items))
		for _, item := range items {
			out = append(out, gin.H{
				"product_id":   item.ProductID,
				"product_name": item.Product.Name,
				"price":        item.Product.Price,
				"quantity":     item.Quantity,
			})
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart fetched successfully.", "items": out})
	}
}
