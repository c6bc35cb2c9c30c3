package routes

import (
	"github.com/gin-gonic/gin"
	paymentControllers "github.com/parthav15/SNACKSDABBA-BACKEND/controllers/payment"
	"gorm.io/gorm"
)

// SetupRoutes wires every route group onto the engine. The gateway
// client is shared so tests can swap its endpoint via the environment.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	gateway := paymentControllers.NewRazorpayClient()

	registerAPIRoutes(r, db)
	registerAdminRoutes(r, db)
	registerPaymentRoutes(r, db, gateway)
}
