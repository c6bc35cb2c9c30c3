package models

import "time"

type PaymentState string

const (
	PaymentPending      PaymentState = "Pending"
	PaymentPaid         PaymentState = "Paid"
	PaymentFailed       PaymentState = "Failed"
	PaymentRefunded     PaymentState = "Refunded"
	PaymentPartRefunded PaymentState = "PartialRefunded"
)

type Payment struct {
	ID                uint         `gorm:"primaryKey" json:"id"`
	OrderID           uint         `gorm:"not null;index" json:"order_id"`
	Order             Order        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	UserID            uint         `gorm:"index" json:"user_id"`
	Amount            float64      `json:"amount"`
	Status            PaymentState `gorm:"type:VARCHAR(20);default:'Pending'" json:"status"`
	RazorpayOrderID   string       `gorm:"uniqueIndex" json:"razorpay_order_id"`
	RazorpayPaymentID string       `json:"razorpay_payment_id"`
	RazorpaySignature string       `json:"-"`
	RefundID          string       `json:"refund_id"`
	RefundResponse    string       `gorm:"type:text" json:"-"`
	RefundAmount      float64      `json:"refund_amount"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}
