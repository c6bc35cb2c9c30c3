package productControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/parthav15/SNACKSDABBA-BACKEND/models"
	"github.com/parthav15/SNACKSDABBA-BACKEND/utils"
	"gorm.io/gorm"
)

// GET /api/list_categories/
func ListCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("name").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch categories."})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"message":    "Categories fetched successfully.",
			"categories": categories,
		})
	}
}

// GET /api/get_category/:category_id
func GetCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, c.Param("category_id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found."})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Category fetched successfully.",
			"category": category,
		})
	}
}

// POST /admin_panel/add_category/ (multipart)
func AddCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.PostForm("name"))
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Category name is required."})
			return
		}

		var count int64
		db.Model(&models.Category{}).Where("LOWER(name) = LOWER(?)", name).Count(&count)
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Category already exists."})
			return
		}

		category := models.Category{
			Name:        name,
			Description: c.PostForm("description"),
		}

		if file, err := c.FormFile("image"); err == nil {
			path, err := utils.SaveUploadedImage(c, file, "category_images")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save category image."})
				return
			}
			category.Image = path
		}

		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create category."})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success":     true,
			"message":     "Category created successfully.",
			"category_id": category.ID,
		})
	}
}

// POST /admin_panel/edit_category/:category_id (multipart)
func EditCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, c.Param("category_id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found."})
			return
		}

		if v, ok := c.GetPostForm("name"); ok && strings.TrimSpace(v) != "" {
			category.Name = strings.TrimSpace(v)
		}
		if v, ok := c.GetPostForm("description"); ok {
			category.Description = v
		}
		if file, err := c.FormFile("image"); err == nil {
			path, err := utils.SaveUploadedImage(c, file, "category_images")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save category image."})
				return
			}
			category.Image = path
		}

		if err := db.Save(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update category."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category updated successfully."})
	}
}

// POST /admin_panel/delete_category/:category_id
// Products under the category are removed by the FK cascade.
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, c.Param("category_id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found."})
			return
		}
		if err := db.Delete(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete category."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted successfully."})
	}
}
