package wishlistControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/parthav15/SNACKSDABBA-BACKEND/middleware"
	"github.com/parthav15/SNACKSDABBA-BACKEND/models"
	"gorm.io/gorm"
)

// POST /api/add_to_wishlist/. Re-adding a wished product is rejected.
func AddToWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		productID, err := strconv.Atoi(c.PostForm("product_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A valid product_id is required."})
			return
		}

		var product models.Product
		if err := db.First(&product, productID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found."})
			return
		}

		var existing models.Wishlist
		err = db.Where("user_id = ? AND product_id = ?", user.ID, product.ID).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product is already in the wishlist."})
			return
		}
		if err != gorm.ErrRecordNotFound {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update wishlist."})
			return
		}

		entry := models.Wishlist{UserID: user.ID, ProductID: product.ID}
		if err := db.Create(&entry).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update wishlist."})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Product added to wishlist successfully."})
	}
}

// POST /api/remove_from_wishlist/
func RemoveFromWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		productID, err := strconv.Atoi(c.PostForm("product_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A valid product_id is required."})
			return
		}

		var entry models.Wishlist
		if err := db.Where("user_id = ? AND product_id = ?", user.ID, productID).First(&entry).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product is not in the wishlist."})
			return
		}
		if err := db.Delete(&entry).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update wishlist."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product removed from wishlist successfully."})
	}
}

// POST /api/get_wishlist/
func GetWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var entries []models.Wishlist
		if err := db.Preload("Product").Where("user_id = ?", user.ID).Order("added_at DESC").Find(&entries).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch wishlist."})
			return
		}

		out := make([]gin.H, 0, len(entries))
		for _, entry := range entries {
			out = append(out, gin.H{
				"product_id":     entry.ProductID,
				"product_name":   entry.Product.Name,
				"price":          entry.Product.Price,
				"discount_price": entry.Product.DiscountPrice,
				"images":         entry.Product.Images,
				"added_at":       entry.AddedAt,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Wishlist fetched successfully.",
			"wishlist": out,
		})
	}
}
