package routes

import (
	"github.com/gin-gonic/gin"
	paymentControllers "github.com/parthav15/SNACKSDABBA-BACKEND/controllers/payment"
	"github.com/parthav15/SNACKSDABBA-BACKEND/middleware"
	"gorm.io/gorm"
)

func registerPaymentRoutes(r *gin.Engine, db *gorm.DB, gateway *paymentControllers.RazorpayClient) {
	payments := r.Group("/payments")

	customer := payments.Group("", middleware.AuthCustomer(db))
	{
		customer.POST("/create_payment/", paymentControllers.CreatePayment(db, gateway))
		customer.POST("/verify_payment/", paymentControllers.VerifyPayment(db, gateway))
		customer.GET("/get_payment_status/:order_id", paymentControllers.GetPaymentStatus(db))
	}

	staff := payments.Group("", middleware.AuthAdmin(db))
	{
		staff.POST("/refund_payment/:order_id", paymentControllers.RefundPayment(db, gateway))
		staff.GET("/get_refund_status/:order_id", paymentControllers.GetRefundStatus(db, gateway))
	}
}
