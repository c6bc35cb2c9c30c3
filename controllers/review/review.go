package reviewControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/parthav15/SNACKSDABBA-BACKEND/middleware"
	"github.com/parthav15/SNACKSDABBA-BACKEND/models"
	"gorm.io/gorm"
)

// refreshProductRating recomputes the denormalized average rating after
// any review write.
func refreshProductRating(db *gorm.DB, productID uint) error {
	var avg float64
	err := db.Model(&models.Review{}).
		Where("product_id = ?", productID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	if err != nil {
		return err
	}
	return db.Model(&models.Product{}).Where("id = ?", productID).Update("rating", avg).Error
}

// POST /api/add_review/. A second review by the same user replaces the
// first.
func AddReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		productID, err := strconv.Atoi(c.PostForm("product_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A valid product_id is required."})
			return
		}
		rating, err := strconv.Atoi(c.PostForm("rating"))
		if err != nil || rating < 1 || rating > 5 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Rating must be between 1 and 5."})
			return
		}

		var product models.Product
		if err := db.First(&product, productID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found."})
			return
		}

		var review models.Review
		err = db.Where("user_id = ? AND product_id = ?", user.ID, product.ID).First(&review).Error
		switch {
		case err == nil:
			review.Rating = rating
			review.Comment = c.PostForm("comment")
			err = db.Save(&review).Error
		case err == gorm.ErrRecordNotFound:
			review = models.Review{
				UserID:    user.ID,
				ProductID: product.ID,
				Rating:    rating,
				Comment:   c.PostForm("comment"),
			}
			err = db.Create(&review).Error
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save review."})
			return
		}

		if err := refreshProductRating(db, product.ID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save review."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review saved successfully."})
	}
}

// POST /api/delete_review/
func DeleteReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		productID, err := strconv.Atoi(c.PostForm("product_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A valid product_id is required."})
			return
		}

		var review models.Review
		if err := db.Where("user_id = ? AND product_id = ?", user.ID, productID).First(&review).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Review not found."})
			return
		}
		if err := db.Delete(&review).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete review."})
			return
		}

		if err := refreshProductRating(db, review.ProductID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete review."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Review deleted successfully."})
	}
}

// GET /api/get_product_reviews/:product_id
func GetProductReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, c.Param("product_id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found."})
			return
		}

		var reviews []models.Review
		if err := db.Preload("User").Where("product_id = ?", product.ID).Order("created_at DESC").Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch reviews."})
			return
		}

		out := make([]gin.H, 0, len(reviews))
		for _, review := range reviews {
			out = append(out, gin.H{
				"id":         review.ID,
				"user_name":  review.User.FullName(),
				"rating":     review.Rating,
				"comment":    review.Comment,
				"created_at": review.CreatedAt,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Reviews fetched successfully.",
			"rating":  product.Rating,
			"reviews": out,
		})
	}
}
