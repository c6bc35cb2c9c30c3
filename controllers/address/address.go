package addressControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/parthav15/SNACKSDABBA-BACKEND/middleware"
	"github.com/parthav15/SNACKSDABBA-BACKEND/models"
	"gorm.io/gorm"
)

type addressForm struct {
	PhoneNumber  string
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Country      string
	PostalCode   string
}

func readAddressForm(c *gin.Context) addressForm {
	return addressForm{
		PhoneNumber:  c.PostForm("phone_number"),
		AddressLine1: c.PostForm("address_line1"),
		AddressLine2: c.PostForm("address_line2"),
		City:         c.PostForm("city"),
		State:        c.PostForm("state"),
		Country:      c.PostForm("country"),
		PostalCode:   c.PostForm("postal_code"),
	}
}

func (f addressForm) valid() bool {
	return f.AddressLine1 != "" && f.City != "" && f.Country != ""
}

// POST /api/add_shipping_address/
func AddShippingAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		form := readAddressForm(c)
		if !form.valid() {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "address_line1, city and country are required."})
			return
		}

		address := models.ShippingAddress{
			UserID:       user.ID,
			PhoneNumber:  form.PhoneNumber,
			AddressLine1: form.AddressLine1,
			AddressLine2: form.AddressLine2,
			City:         form.City,
			State:        form.State,
			Country:      form.Country,
			PostalCode:   form.PostalCode,
		}
		if err := db.Create(&address).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add shipping address."})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success":    true,
			"message":    "Shipping address added successfully.",
			"address_id": address.ID,
		})
	}
}

// POST /api/list_shipping_addresses/
func ListShippingAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var addresses []models.ShippingAddress
		if err := db.Where("user_id = ?", user.ID).Order("id").Find(&addresses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch shipping addresses."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Shipping addresses fetched successfully.",
			"addresses": addresses,
		})
	}
}

// POST /api/edit_shipping_address/:address_id
func EditShippingAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var address models.ShippingAddress
		if err := db.Where("id = ? AND user_id = ?", c.Param("address_id"), user.ID).First(&address).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Shipping address not found."})
			return
		}

		applyAddressUpdates(c,
			&address.PhoneNumber, &address.AddressLine1, &address.AddressLine2,
			&address.City, &address.State, &address.Country, &address.PostalCode)

		if err := db.Save(&address).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update shipping address."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Shipping address updated successfully."})
	}
}

// POST /api/delete_shipping_address/:address_id
func DeleteShippingAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var address models.ShippingAddress
		if err := db.Where("id = ? AND user_id = ?", c.Param("address_id"), user.ID).First(&address).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Shipping address not found."})
			return
		}
		if err := db.Delete(&address).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete shipping address."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Shipping address deleted successfully."})
	}
}

// POST /api/add_billing_address/
func AddBillingAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		form := readAddressForm(c)
		if !form.valid() {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "address_line1, city and country are required."})
			return
		}

		address := models.BillingAddress{
			UserID:       user.ID,
			PhoneNumber:  form.PhoneNumber,
			AddressLine1: form.AddressLine1,
			AddressLine2: form.AddressLine2,
			City:         form.City,
			State:        form.State,
			Country:      form.Country,
			PostalCode:   form.PostalCode,
		}
		if err := db.Create(&address).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add billing address."})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success":    true,
			"message":    "Billing address added successfully.",
			"address_id": address.ID,
		})
	}
}

// POST /api/list_billing_addresses/
func ListBillingAddresses(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var addresses []models.BillingAddress
		if err := db.Where("user_id = ?", user.ID).Order("id").Find(&addresses).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch billing addresses."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "Billing addresses fetched successfully.",
			"addresses": addresses,
		})
	}
}

// POST /api/edit_billing_address/:address_id
func EditBillingAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var address models.BillingAddress
		if err := db.Where("id = ? AND user_id = ?", c.Param("address_id"), user.ID).First(&address).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Billing address not found."})
			return
		}

		applyAddressUpdates(c,
			&address.PhoneNumber, &address.AddressLine1, &address.AddressLine2,
			&address.City, &address.State, &address.Country, &address.PostalCode)

		if err := db.Save(&address).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update billing address."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Billing address updated successfully."})
	}
}

// POST /api/delete_billing_address/:address_id
func DeleteBillingAddress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var address models.BillingAddress
		if err := db.Where("id = ? AND user_id = ?", c.Param("address_id"), user.ID).First(&address).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Billing address not found."})
			return
		}
		if err := db.Delete(&address).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete billing address."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Billing address deleted successfully."})
	}
}

// applyAddressUpdates copies submitted form fields over the stored
// values, leaving omitted fields untouched.
func applyAddressUpdates(c *gin.Context, phone, line1, line2, city, state, country, postal *string) {
	if v, ok := c.GetPostForm("phone_number"); ok {
		*phone = v
	}
	if v, ok := c.GetPostForm("address_line1"); ok {
		*line1 = v
	}
	if v, ok := c.GetPostForm("address_line2"); ok {
		*line2 = v
	}
	if v, ok := c.GetPostForm("city"); ok {
		*city = v
	}
	if v, ok := c.GetPostForm("state"); ok {
		*state = v
	}
	if v, ok := c.GetPostForm("country"); ok {
		*country = v
	}
	if v, ok := c.GetPostForm("postal_code"); ok {
		*postal = v
	}
}
