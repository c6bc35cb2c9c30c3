package paymentControllers

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/parthav15/SNACKSDABBA-BACKEND/middleware"
	"github.com/parthav15/SNACKSDABBA-BACKEND/models"
	"gorm.io/gorm"
)

func toPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// POST /payments/create_payment/ registers the order with the gateway
// and records a Pending payment row carrying the gateway order id.
func CreatePayment(db *gorm.DB, gateway *RazorpayClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		orderID, err := strconv.Atoi(c.PostForm("order_id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "A valid order_id is required."})
			return
		}

		var order models.Order
		if err := db.Where("id = ? AND user_id = ?", orderID, user.ID).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found."})
			return
		}
		if order.PaymentStatus == models.OrderPaid {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Order is already paid."})
			return
		}
		if order.TotalPrice <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Order total must be positive."})
			return
		}

		receipt := fmt.Sprintf("snacks_dabba_order_%d-%s", order.ID, uuid.NewString()[:8])
		gatewayOrder, err := gateway.CreateOrder(toPaise(order.TotalPrice), "INR", receipt)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Payment gateway is unreachable."})
			return
		}

		payment := models.Payment{
			OrderID:         order.ID,
			UserID:          user.ID,
			Amount:          order.TotalPrice,
			Status:          models.PaymentPending,
			RazorpayOrderID: gatewayOrder.ID,
		}
		if err := db.Create(&payment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to record payment."})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"success":           true,
			"message":           "Payment initiated successfully.",
			"payment_id":        payment.ID,
			"razorpay_order_id": gatewayOrder.ID,
			"amount":            gatewayOrder.Amount,
			"currency":          gatewayOrder.Currency,
			"razorpay_key_id":   gateway.KeyID,
		})
	}
}

// POST /payments/verify_payment/ validates the checkout callback
// signature. A bad signature marks the payment Failed and leaves the
// order untouched.
func VerifyPayment(db *gorm.DB, gateway *RazorpayClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		razorpayOrderID := c.PostForm("razorpay_order_id")
		razorpayPaymentID := c.PostForm("razorpay_payment_id")
		signature := c.PostForm("razorpay_signature")
		if razorpayOrderID == "" || razorpayPaymentID == "" || signature == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "razorpay_order_id, razorpay_payment_id and razorpay_signature are required."})
			return
		}

		var payment models.Payment
		if err := db.Where("razorpay_order_id = ? AND user_id = ?", razorpayOrderID, user.ID).First(&payment).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Payment not found."})
			return
		}
		if payment.Status != models.PaymentPending {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Payment is not awaiting verification."})
			return
		}

		if !VerifySignature(razorpayOrderID, razorpayPaymentID, signature, gateway.KeySecret) {
			db.Model(&payment).Updates(map[string]interface{}{
				"status":              models.PaymentFailed,
				"razorpay_payment_id": razorpayPaymentID,
			})
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Payment verification failed."})
			return
		}

		// Best effort: record how the customer actually paid.
		method := ""
		if gatewayPayment, err := gateway.FetchPayment(razorpayPaymentID); err == nil {
			method = gatewayPayment.Method
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			updates := map[string]interface{}{
				"status":              models.PaymentPaid,
				"razorpay_payment_id": razorpayPaymentID,
				"razorpay_signature":  signature,
			}
			if err := tx.Model(&payment).Updates(updates).Error; err != nil {
				return err
			}
			orderUpdates := map[string]interface{}{
				"payment_status": models.OrderPaid,
				"status":         models.OrderStatusProcessing,
			}
			if method != "" {
				orderUpdates["payment_method"] = method
			}
			return tx.Model(&models.Order{}).Where("id = ?", payment.OrderID).Updates(orderUpdates).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to record payment."})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment verified successfully."})
	}
}

// GET /payments/get_payment_status/:order_id returns the latest payment
// attempt for the caller's order.
func GetPaymentStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var order models.Order
		if err := db.Where("id = ? AND user_id = ?", c.Param("order_id"), user.ID).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found."})
			return
		}

		var payment models.Payment
		if err := db.Where("order_id = ?", order.ID).Order("id DESC").First(&payment).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No payment found for this order."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Payment status fetched successfully.",
			"payment": gin.H{
				"id":                  payment.ID,
				"order_id":            payment.OrderID,
				"amount":              payment.Amount,
				"status":              payment.Status,
				"razorpay_order_id":   payment.RazorpayOrderID,
				"razorpay_payment_id": payment.RazorpayPaymentID,
				"refund_id":           payment.RefundID,
				"refund_amount":       payment.RefundAmount,
				"created_at":          payment.CreatedAt,
			},
		})
	}
}

// POST /payments/refund_payment/:order_id (admin). An omitted amount
// refunds in full; a partial amount leaves the payment PartialRefunded.
func RefundPayment(db *gorm.DB, gateway *RazorpayClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.First(&order, c.Param("order_id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Order not found."})
			return
		}

		var payment models.Payment
		if err := db.Where("order_id = ? AND status = ?", order.ID, models.PaymentPaid).Order("id DESC").First(&payment).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "No paid payment found for this order."})
			return
		}

		refundAmount := payment.Amount
		if v, ok := c.GetPostForm("amount"); ok && v != "" {
			amount, err := strconv.ParseFloat(v, 64)
			if err != nil || amount <= 0 || amount > payment.Amount {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Refund amount must be positive and within the paid amount."})
				return
			}
			refundAmount = amount
		}

		refund, err := gateway.CreateRefund(payment.RazorpayPaymentID, toPaise(refundAmount))
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Payment gateway is unreachable."})
			return
		}

		newState := models.PaymentRefunded
		if refundAmount < payment.Amount {
			newState = models.PaymentPartRefunded
		}
		refundResponse, _ := json.Marshal(refund)

		err = db.Transaction(func(tx *gorm.DB) error {
			updates := map[string]interface{}{
				"status":          newState,
				"refund_id":       refund.ID,
				"refund_amount":   refundAmount,
				"refund_response": string(refundResponse),
			}
			if err := tx.Model(&payment).Updates(updates).Error; err != nil {
				return err
			}
			if newState == models.PaymentRefunded {
				return tx.Model(&order).Updates(map[string]interface{}{
					"payment_status": models.OrderPaymentsBack,
					"status":         models.OrderStatusRefunded,
				}).Error
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to record refund."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"message":       "Refund initiated successfully.",
			"refund_id":     refund.ID,
			"refund_amount": refundAmount,
		})
	}
}

// GET /payments/get_refund_status/:order_id (admin) re-fetches the
// refund from the gateway.
func GetRefundStatus(db *gorm.DB, gateway *RazorpayClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payment models.Payment
		err := db.Where("order_id = ? AND refund_id <> ''", c.Param("order_id")).Order("id DESC").First(&payment).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "No refund found for this order."})
			return
		}

		refund, err := gateway.FetchRefund(payment.RefundID)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": "Payment gateway is unreachable."})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Refund status fetched successfully.",
			"refund": gin.H{
				"id":            refund.ID,
				"payment_id":    refund.PaymentID,
				"amount":        refund.Amount,
				"status":        refund.Status,
				"local_status":  payment.Status,
				"refund_amount": payment.RefundAmount,
			},
		})
	}
}
