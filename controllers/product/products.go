package productControllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/parthav15/SNACKSDABBA-BACKEND/models"
	"gorm.io/gorm"
)

const pageSize = 20

func pageOffset(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	return page, (page - 1) * pageSize
}

func productJSON(p models.Product) gin.H {
	return gin.H{
		"id":               p.ID,
		"name":             p.Name,
		"description":      p.Description,
		"price":            p.Price,
		"discount_price":   p.DiscountPrice,
		"stock":            p.Stock,
		"category_id":      p.CategoryID,
		"category_name":    p.Category.Name,
		"images":           p.Images,
		"video_url":        p.VideoURL,
		"attributes":       p.Attributes,
		"is_featured":      p.IsFeatured,
		"rating":           p.Rating,
		"brand":            p.Brand,
		"meta_keywords":    p.MetaKeywords,
		"meta_description": p.MetaDescription,
		"created_at":       p.CreatedAt,
	}
}

func productListJSON(products []models.Product) []gin.H {
	out := make([]gin.H, 0, len(products))
	for _, p := range products {
		out = append(out, productJSON(p))
	}
	return out
}

func respondProductPage(c *gin.Context, query *gorm.DB) {
	page, offset := pageOffset(c)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch products."})
		return
	}

	var products []models.Product
	if err := query.Session(&gorm.Session{}).Preload("Category").Limit(pageSize).Offset(offset).Order("id").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch products."})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Products fetched successfully.",
		"products": productListJSON(products),
		"page":     page,
		"total":    total,
	})
}

// GET /api/list_products/
func ListProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondProductPage(c, db.Model(&models.Product{}))
	}
}

// GET /api/get_product/:product_id
func GetProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.Preload("Category").First(&product, c.Param("product_id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found."})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Product fetched successfully.",
			"product": productJSON(product),
		})
	}
}

// GET /api/get_products_by_category/:category_id
func GetProductsByCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, c.Param("category_id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found."})
			return
		}
		respondProductPage(c, db.Model(&models.Product{}).Where("category_id = ?", category.ID))
	}
}

// POST /api/get_products_by_brand/ with the brand in the form body.
func GetProductsByBrand(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		brand := c.PostForm("brand")
		if brand == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Brand is required."})
			return
		}
		respondProductPage(c, db.Model(&models.Product{}).Where("brand = ?", brand))
	}
}

// GET /api/get_products_by_featured/
func GetFeaturedProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondProductPage(c, db.Model(&models.Product{}).Where("is_featured = ?", true))
	}
}

// GET /api/get_products_by_latest/
func GetLatestProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, offset := pageOffset(c)

		var products []models.Product
		if err := db.Preload("Category").Order("created_at DESC").Limit(pageSize).Offset(offset).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch products."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Products fetched successfully.",
			"products": productListJSON(products),
			"page":     page,
		})
	}
}

// GET /api/get_products_by_discount/
// Only products with an actual discount price set qualify.
func GetDiscountedProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondProductPage(c, db.Model(&models.Product{}).Where("discount_price > ?", 0))
	}
}

// GET /api/search_products/?q=
func SearchProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := c.Query("q")
		if q == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Search query is required."})
			return
		}
		pattern := "%" + strings.ToLower(q) + "%"
		respondProductPage(c, db.Model(&models.Product{}).
			Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern))
	}
}
