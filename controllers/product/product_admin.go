package productControllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/parthav15/SNACKSDABBA-BACKEND/models"
	"github.com/parthav15/SNACKSDABBA-BACKEND/utils"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

func parseFloatField(c *gin.Context, name string) (float64, bool, error) {
	v, ok := c.GetPostForm(name)
	if !ok || v == "" {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s", name)
	}
	return f, true, nil
}

func parseIntField(c *gin.Context, name string) (int, bool, error) {
	v, ok := c.GetPostForm(name)
	if !ok || v == "" {
		return 0, false, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, fmt.Errorf("invalid %s", name)
	}
	return n, true, nil
}

func saveProductImages(c *gin.Context) (models.StringList, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil
	}
	files := form.File["images"]
	var paths models.StringList
	for _, file := range files {
		path, err := utils.SaveUploadedImage(c, file, "product_images")
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// POST /admin_panel/add_product/ (multipart)
func AddProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := strings.TrimSpace(c.PostForm("name"))
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Product name is required."})
			return
		}

		price, ok, err := parseFloatField(c, "price")
		if err != nil || !ok {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A valid price is required."})
			return
		}

		categoryID, err := strconv.Atoi(c.PostForm("category_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A valid category_id is required."})
			return
		}
		var category models.Category
		if err := db.First(&category, categoryID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found."})
			return
		}

		product := models.Product{
			Name:            name,
			Description:     c.PostForm("description"),
			Price:           price,
			CategoryID:      category.ID,
			VideoURL:        c.PostForm("video_url"),
			Brand:           c.PostForm("brand"),
			MetaKeywords:    c.PostForm("meta_keywords"),
			MetaDescription: c.PostForm("meta_description"),
		}

		if discount, ok, err := parseFloatField(c, "discount_price"); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		} else if ok {
			product.DiscountPrice = discount
		}
		if stock, ok, err := parseIntField(c, "stock"); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		} else if ok {
			product.Stock = stock
		}
		if v, ok := c.GetPostForm("is_featured"); ok {
			product.IsFeatured = v == "true" || v == "1"
		}
		if v, ok := c.GetPostForm("attributes"); ok && v != "" {
			var attrs models.AttributeMap
			if err := json.Unmarshal([]byte(v), &attrs); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Attributes must be a JSON object."})
				return
			}
			product.Attributes = attrs
		}

		images, err := saveProductImages(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product images."})
			return
		}
		product.Images = images

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create product."})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success":    true,
			"message":    "Product created successfully.",
			"product_id": product.ID,
		})
	}
}

// POST /admin_panel/edit_product/:product_id (multipart). Submitted
// fields overwrite, omitted fields keep their stored value.
func EditProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, c.Param("product_id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found."})
			return
		}

		if v, ok := c.GetPostForm("name"); ok {
			product.Name = strings.TrimSpace(v)
		}
		if v, ok := c.GetPostForm("description"); ok {
			product.Description = v
		}
		if price, ok, err := parseFloatField(c, "price"); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		} else if ok {
			product.Price = price
		}
		if discount, ok, err := parseFloatField(c, "discount_price"); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		} else if ok {
			product.DiscountPrice = discount
		}
		if stock, ok, err := parseIntField(c, "stock"); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		} else if ok {
			product.Stock = stock
		}
		if v, ok := c.GetPostForm("category_id"); ok {
			categoryID, err := strconv.Atoi(v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category_id."})
				return
			}
			var category models.Category
			if err := db.First(&category, categoryID).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found."})
				return
			}
			product.CategoryID = category.ID
		}
		if v, ok := c.GetPostForm("video_url"); ok {
			product.VideoURL = v
		}
		if v, ok := c.GetPostForm("brand"); ok {
			product.Brand = v
		}
		if v, ok := c.GetPostForm("is_featured"); ok {
			product.IsFeatured = v == "true" || v == "1"
		}
		if v, ok := c.GetPostForm("meta_keywords"); ok {
			product.MetaKeywords = v
		}
		if v, ok := c.GetPostForm("meta_description"); ok {
			product.MetaDescription = v
		}
		if v, ok := c.GetPostForm("attributes"); ok && v != "" {
			var attrs models.AttributeMap
			if err := json.Unmarshal([]byte(v), &attrs); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Attributes must be a JSON object."})
				return
			}
			product.Attributes = attrs
		}

		images, err := saveProductImages(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save product images."})
			return
		}
		if len(images) > 0 {
			product.Images = images
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update product."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product updated successfully."})
	}
}

// POST /admin_panel/delete_product/:product_id
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, c.Param("product_id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found."})
			return
		}
		if err := db.Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete product."})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully."})
	}
}

type BulkProductInput struct {
	Name            string              `json:"name" binding:"required"`
	Description     string              `json:"description"`
	Price           float64             `json:"price" binding:"required"`
	DiscountPrice   float64             `json:"discount_price"`
	Stock           int                 `json:"stock"`
	CategoryID      uint                `json:"category_id" binding:"required"`
	Brand           string              `json:"brand"`
	IsFeatured      bool                `json:"is_featured"`
	Attributes      models.AttributeMap `json:"attributes"`
	MetaKeywords    string              `json:"meta_keywords"`
	MetaDescription string              `json:"meta_description"`
}

// POST /admin_panel/bulk_create_products/. All rows are created in one
// transaction; one bad row rejects the whole batch.
func BulkCreateProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var inputs []BulkProductInput
		if err := c.ShouldBindJSON(&inputs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}
		if len(inputs) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "At least one product is required."})
			return
		}

		var created []uint
		err := db.Transaction(func(tx *gorm.DB) error {
			for _, in := range inputs {
				var category models.Category
				if err := tx.First(&category, in.CategoryID).Error; err != nil {
					return fmt.Errorf("category %d not found", in.CategoryID)
				}
				product := models.Product{
					Name:            in.Name,
					Description:     in.Description,
					Price:           in.Price,
					DiscountPrice:   in.DiscountPrice,
					Stock:           in.Stock,
					CategoryID:      in.CategoryID,
					Brand:           in.Brand,
					IsFeatured:      in.IsFeatured,
					Attributes:      in.Attributes,
					MetaKeywords:    in.MetaKeywords,
					MetaDescription: in.MetaDescription,
				}
				if err := tx.Create(&product).Error; err != nil {
					return err
				}
				created = append(created, product.ID)
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Bulk create failed: " + err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success":     true,
			"message":     fmt.Sprintf("%d products created successfully.", len(created)),
			"product_ids": created,
		})
	}
}

// GET /admin_panel/export_products/ streams the catalog as an xlsx download.
func ExportProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Category").Order("id").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch products."})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to build export."})
			return
		}

		header := sheet.AddRow()
		for _, title := range []string{"ID", "Name", "Category", "Brand", "Price", "Discount Price", "Stock", "Featured", "Rating"} {
			header.AddCell().Value = title
		}
		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetInt(int(p.ID))
			row.AddCell().Value = p.Name
			row.AddCell().Value = p.Category.Name
			row.AddCell().Value = p.Brand
			row.AddCell().SetFloat(p.Price)
			row.AddCell().SetFloat(p.DiscountPrice)
			row.AddCell().SetInt(p.Stock)
			row.AddCell().SetBool(p.IsFeatured)
			row.AddCell().SetFloat(p.Rating)
		}

		c.Header("Content-Disposition", `attachment; filename="products.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to write export."})
		}
	}
}
