package models

import (
	"time"

	"gorm.io/gorm"
)

type OrderStatus string
type OrderPaymentStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
	OrderStatusRefunded   OrderStatus = "Refunded"

	OrderNotPaid      OrderPaymentStatus = "Not Paid"
	OrderPaid         OrderPaymentStatus = "Paid"
	OrderPaymentsBack OrderPaymentStatus = "Refunded"
)

type Order struct {
	ID                uint               `gorm:"primaryKey" json:"id"`
	UserID            uint               `gorm:"not null;index" json:"user_id"`
	User              User               `gorm:"foreignKey:UserID" json:"-"`
	Items             []OrderItem        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalPrice        float64            `json:"total_price"`
	DiscountAmount    float64            `json:"discount_amount"`
	Status            OrderStatus        `gorm:"type:VARCHAR(20);default:'Pending'" json:"status"`
	PaymentStatus     OrderPaymentStatus `gorm:"type:VARCHAR(20);default:'Not Paid'" json:"payment_status"`
	PaymentMethod     string             `json:"payment_method"`
	TrackingNumber    string             `json:"tracking_number"`
	CouponID          *uint              `json:"coupon_id"`
	Coupon            *Coupon            `gorm:"foreignKey:CouponID;constraint:OnDelete:SET NULL" json:"coupon,omitempty"`
	ShippingAddressID *uint              `json:"shipping_address_id"`
	ShippingAddress   *ShippingAddress   `gorm:"foreignKey:ShippingAddressID;constraint:OnDelete:SET NULL" json:"shipping_address,omitempty"`
	BillingAddressID  *uint              `json:"billing_address_id"`
	BillingAddress    *BillingAddress    `gorm:"foreignKey:BillingAddressID;constraint:OnDelete:SET NULL" json:"billing_address,omitempty"`
	OrderNotes        string             `json:"order_notes"`
	IsGift            bool               `json:"is_gift"`
	GiftMessage       string             `json:"gift_message"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

type OrderItem struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	OrderID         uint      `gorm:"index" json:"order_id"`
	ProductID       uint      `gorm:"not null" json:"product_id"`
	Product         Product   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"product"`
	Quantity        int       `gorm:"default:1" json:"quantity"`
	PriceAtPurchase float64   `json:"price_at_purchase"`
	Subtotal        float64   `json:"subtotal"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BeforeSave keeps subtotal consistent with price and quantity on every
// persistence, not just creation.
func (i *OrderItem) BeforeSave(tx *gorm.DB) error {
	i.Subtotal = i.PriceAtPurchase * float64(i.Quantity)
	return nil
}
