package adminControllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/parthav15/SNACKSDABBA-BACKEND/models"
	"github.com/parthav15/SNACKSDABBA-BACKEND/utils"
	"gorm.io/gorm"
)

// GET /api/list_carousel/ is the public storefront feed, ordered by
// display_order.
func ListCarousel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var images []models.CarouselImage
		if err := db.Order("display_order, id").Find(&images).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch carousel."})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Carousel fetched successfully.",
			"carousel": images,
		})
	}
}

// POST /api/carousel_click/:carousel_id counts a storefront
// click-through atomically.
func CarouselClick(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Model(&models.CarouselImage{}).
			Where("id = ?", c.Param("carousel_id")).
			Update("click_count", gorm.Expr("click_count + 1"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to record click."})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Carousel image not found."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Click recorded successfully."})
	}
}

// POST /admin_panel/add_carousel/ (multipart)
func AddCarousel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A carousel image is required."})
			return
		}
		path, err := utils.SaveUploadedImage(c, file, "carousel_images")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save carousel image."})
			return
		}

		image := models.CarouselImage{
			Title:    c.PostForm("title"),
			ImageURL: path,
		}
		if v := c.PostForm("product_id"); v != "" {
			productID, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product_id."})
				return
			}
			var product models.Product
			if err := db.First(&product, productID).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found."})
				return
			}
			image.ProductID = &product.ID
		}
		if v := c.PostForm("display_order"); v != "" {
			order, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid display_order."})
				return
			}
			image.DisplayOrder = order
		}

		if err := db.Create(&image).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create carousel image."})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success":     true,
			"message":     "Carousel image added successfully.",
			"carousel_id": image.ID,
		})
	}
}

// POST /admin_panel/edit_carousel/:carousel_id (multipart)
func EditCarousel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var image models.CarouselImage
		if err := db.First(&image, c.Param("carousel_id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Carousel image not found."})
			return
		}

		if v, ok := c.GetPostForm("title"); ok {
			image.Title = v
		}
		if v, ok := c.GetPostForm("display_order"); ok && v != "" {
			order, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid display_order."})
				return
			}
			image.DisplayOrder = order
		}
		if v, ok := c.GetPostForm("product_id"); ok {
			if v == "" {
				image.ProductID = nil
			} else {
				productID, err := strconv.Atoi(v)
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product_id."})
					return
				}
				var product models.Product
				if err := db.First(&product, productID).Error; err != nil {
					c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found."})
					return
				}
				image.ProductID = &product.ID
			}
		}
		if file, err := c.FormFile("image"); err == nil {
			path, err := utils.SaveUploadedImage(c, file, "carousel_images")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save carousel image."})
				return
			}
			image.ImageURL = path
		}

		if err := db.Save(&image).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update carousel image."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Carousel image updated successfully."})
	}
}

// POST /admin_panel/delete_carousel/:carousel_id
func DeleteCarousel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var image models.CarouselImage
		if err := db.First(&image, c.Param("carousel_id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Carousel image not found."})
			return
		}
		if err := db.Delete(&image).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete carousel image."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Carousel image deleted successfully."})
	}
}
