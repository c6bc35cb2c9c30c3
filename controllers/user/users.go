package userControllers

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/parthav15/SNACKSDABBA-BACKEND/auth"
	"github.com/parthav15/SNACKSDABBA-BACKEND/middleware"
	"github.com/parthav15/SNACKSDABBA-BACKEND/models"
	"github.com/parthav15/SNACKSDABBA-BACKEND/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const defaultProfilePicture = "/media/profile_pictures/default.png"

type RegisterInput struct {
	Email       string `json:"email" binding:"required,email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
	LoginBy     int    `json:"login_by"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func generateRandomPassword(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "snacksdabba"
	}
	return hex.EncodeToString(buf)[:n]
}

// POST /api/user_register/
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}

		email := strings.ToLower(strings.TrimSpace(input.Email))
		if input.LoginBy == 0 {
			input.LoginBy = models.LoginByGeneral
		}
		password := strings.TrimSpace(input.Password)
		if input.LoginBy == models.LoginByGuest {
			password = generateRandomPassword(8)
		}
		if password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Password is required."})
			return
		}

		var count int64
		db.Model(&models.User{}).Where("LOWER(email) = ?", email).Count(&count)
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "User already exists."})
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to hash password."})
			return
		}

		user := models.User{
			Email:          email,
			Username:       strings.SplitN(email, "@", 2)[0],
			FirstName:      strings.TrimSpace(input.FirstName),
			LastName:       strings.TrimSpace(input.LastName),
			PhoneNumber:    strings.TrimSpace(input.PhoneNumber),
			Password:       string(hashed),
			LoginBy:        input.LoginBy,
			IsCustomer:     true,
			ProfilePicture: defaultProfilePicture,
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			return tx.Create(&models.Cart{UserID: user.ID}).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to register user."})
			return
		}

		token, err := auth.EncodeToken(user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to issue token."})
			return
		}

		if err := utils.SendVerificationEmail(user.Email, user.FullName(), token); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Failed to send verification email."})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success": true,
			"message": "A confirmation email has been sent. Please verify the email to complete registration.",
			"token":   token,
		})
	}
}

// GET /api/activate_email/?token=
func ActivateEmail(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Token is required."})
			return
		}

		email, err := auth.DecodeEmail(token)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid token data."})
			return
		}

		var user models.User
		if err := db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found."})
			return
		}

		if err := db.Model(&user).Update("is_email", true).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to activate email."})
			return
		}

		if err := utils.SendWelcomeEmail(user.Email, user.FullName()); err != nil {
			log.Printf("welcome email to %s failed: %v", user.Email, err)
		}

		if frontend := os.Getenv("FRONTEND_URL"); frontend != "" {
			c.Redirect(http.StatusFound, frontend)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email verified successfully."})
	}
}

// POST /api/user_login/
func Login(db *gorm.DB) gin.HandlerFunc {
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

		if !user.IsCustomer {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User is not a customer."})
			return
		}

		token, err := auth.EncodeToken(user.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to issue token."})
			return
		}

		if err := utils.SendWelcomeEmail(user.Email, user.FullName()); err != nil {
			log.Printf("welcome-back email to %s failed: %v", user.Email, err)
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Login successful.", "token": token})
	}
}

func userDetailsJSON(user models.User) gin.H {
	var dob interface{}
	if user.DOB != nil {
		dob = user.DOB.Format("2006-01-02")
	}
	return gin.H{
		"id":              user.ID,
		"email":           user.Email,
		"first_name":      user.FirstName,
		"last_name":       user.LastName,
		"username":        user.Username,
		"phone_number":    user.PhoneNumber,
		"dob":             dob,
		"marital_status":  user.MaritalStatus,
		"nationality":     user.Nationality,
		"gender":          user.Gender,
		"country":         user.Country,
		"city":            user.City,
		"address":         user.Address,
		"zip_code":        user.ZipCode,
		"profile_picture": user.ProfilePicture,
		"two_factor":      user.TwoFactor,
	}
}

// POST /api/user_get_details/
func GetDetails(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"message":      "User details fetched successfully.",
			"user_details": userDetailsJSON(user),
		})
	}
}

// POST /api/user_edit/ (multipart). Absent fields keep their old value.
func Edit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		if v, ok := c.GetPostForm("first_name"); ok {
			user.FirstName = strings.TrimSpace(v)
		}
		if v, ok := c.GetPostForm("last_name"); ok {
			user.LastName = strings.TrimSpace(v)
		}
		if v, ok := c.GetPostForm("username"); ok {
			user.Username = strings.TrimSpace(v)
		}
		if v, ok := c.GetPostForm("phone_number"); ok {
			user.PhoneNumber = strings.TrimSpace(v)
		}
		if v, ok := c.GetPostForm("dob"); ok && v != "" {
			dob, err := time.Parse("2006-01-02", v)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid dob, expected YYYY-MM-DD."})
				return
			}
			user.DOB = &dob
		}
		if v, ok := c.GetPostForm("marital_status"); ok {
			user.MaritalStatus = strings.TrimSpace(v)
		}
		if v, ok := c.GetPostForm("nationality"); ok {
			user.Nationality = strings.TrimSpace(v)
		}
		if v, ok := c.GetPostForm("gender"); ok {
			user.Gender = strings.TrimSpace(v)
		}
		if v, ok := c.GetPostForm("country"); ok {
			user.Country = strings.TrimSpace(v)
		}
		if v, ok := c.GetPostForm("city"); ok {
			user.City = strings.TrimSpace(v)
		}
		if v, ok := c.GetPostForm("address"); ok {
			user.Address = strings.TrimSpace(v)
		}
		if v, ok := c.GetPostForm("zip_code"); ok {
			user.ZipCode = strings.TrimSpace(v)
		}

		if file, err := c.FormFile("profile_picture"); err == nil {
			path, err := utils.SaveUploadedImage(c, file, "profile_pictures")
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to save profile picture."})
				return
			}
			user.ProfilePicture = path
		}

		if err := db.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update user."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "User updated successfully."})
	}
}

// POST /api/user_change_password/
func ChangePassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		oldPassword := c.PostForm("old_password")
		newPassword := c.PostForm("new_password")
		if oldPassword == "" || newPassword == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Old and new passwords are required."})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Incorrect old password."})
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to hash password."})
			return
		}
		if err := db.Model(&user).Update("password", string(hashed)).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to change password."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed successfully."})
	}
}
