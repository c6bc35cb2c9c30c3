package routes

import (
	"github.com/gin-gonic/gin"
	addressControllers "github.com/parthav15/SNACKSDABBA-BACKEND/controllers/address"
	adminControllers "github.com/parthav15/SNACKSDABBA-BACKEND/controllers/admin"
	cartControllers "github.com/parthav15/SNACKSDABBA-BACKEND/controllers/cart"
	orderControllers "github.com/parthav15/SNACKSDABBA-BACKEND/controllers/order"
	productControllers "github.com/parthav15/SNACKSDABBA-BACKEND/controllers/product"
	reviewControllers "github.com/parthav15/SNACKSDABBA-BACKEND/controllers/review"
	userControllers "github.com/parthav15/SNACKSDABBA-BACKEND/controllers/user"
	wishlistControllers "github.com/parthav15/SNACKSDABBA-BACKEND/controllers/wishlist"
	"github.com/parthav15/SNACKSDABBA-BACKEND/middleware"
	"gorm.io/gorm"
)

func registerAPIRoutes(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")

	// Public auth endpoints, throttled per client IP.
	api.POST("/user_register/", middleware.RateLimiter(), userControllers.Register(db))
	api.POST("/user_login/", middleware.RateLimiter(), userControllers.Login(db))
	api.GET("/activate_email/", userControllers.ActivateEmail(db))

	// Public catalog.
	api.GET("/list_products/", productControllers.ListProducts(db))
	api.GET("/get_product/:product_id", productControllers.GetProduct(db))
	api.GET("/get_products_by_category/:category_id", productControllers.GetProductsByCategory(db))
	api.POST("/get_products_by_brand/", productControllers.GetProductsByBrand(db))
	api.GET("/get_products_by_featured/", productControllers.GetFeaturedProducts(db))
	api.GET("/get_products_by_latest/", productControllers.GetLatestProducts(db))
	api.GET("/get_products_by_discount/", productControllers.GetDiscountedProducts(db))
	api.GET("/search_products/", productControllers.SearchProducts(db))
	api.GET("/list_categories/", productControllers.ListCategories(db))
	api.GET("/get_category/:category_id", productControllers.GetCategory(db))
	api.GET("/get_product_reviews/:product_id", reviewControllers.GetProductReviews(db))
	api.GET("/list_carousel/", adminControllers.ListCarousel(db))
	api.POST("/carousel_click/:carousel_id", adminControllers.CarouselClick(db))

	// Everything below needs a customer token.
	customer := api.Group("", middleware.AuthCustomer(db))
	{
		customer.POST("/user_get_details/", userControllers.GetDetails(db))
		customer.POST("/user_edit/", userControllers.Edit(db))
		customer.POST("/user_change_password/", userControllers.ChangePassword(db))

		customer.POST("/get_cart/", cartControllers.GetCart(db))
		customer.POST("/add_to_cart/", cartControllers.AddToCart(db))
		customer.POST("/update_cart_item/", cartControllers.UpdateCartItem(db))
		customer.POST("/remove_from_cart/", cartControllers.RemoveFromCart(db))
		customer.POST("/clear_cart/", cartControllers.ClearCart(db))

		customer.POST("/create_order/", orderControllers.CreateOrder(db))
		customer.POST("/list_orders/", orderControllers.ListOrders(db))
		customer.POST("/get_order_details/:order_id", orderControllers.GetOrderDetails(db))
		customer.POST("/add_order_item/:order_id", orderControllers.AddOrderItem(db))
		customer.POST("/remove_order_item/:order_id", orderControllers.RemoveOrderItem(db))
		customer.POST("/update_order_address/:order_id", orderControllers.UpdateOrderAddress(db))
		customer.POST("/cancel_order/:order_id", orderControllers.CancelOrder(db))

		customer.POST("/add_shipping_address/", addressControllers.AddShippingAddress(db))
		customer.POST("/list_shipping_addresses/", addressControllers.ListShippingAddresses(db))
		customer.POST("/edit_shipping_address/:address_id", addressControllers.EditShippingAddress(db))
		customer.POST("/delete_shipping_address/:address_id", addressControllers.DeleteShippingAddress(db))
		customer.POST("/add_billing_address/", addressControllers.AddBillingAddress(db))
		customer.POST("/list_billing_addresses/", addressControllers.ListBillingAddresses(db))
		customer.POST("/edit_billing_address/:address_id", addressControllers.EditBillingAddress(db))
		customer.POST("/delete_billing_address/:address_id", addressControllers.DeleteBillingAddress(db))

		customer.POST("/add_to_wishlist/", wishlistControllers.AddToWishlist(db))
		customer.POST("/remove_from_wishlist/", wishlistControllers.RemoveFromWishlist(db))
		customer.POST("/get_wishlist/", wishlistControllers.GetWishlist(db))

		customer.POST("/add_review/", reviewControllers.AddReview(db))
		customer.POST("/delete_review/", reviewControllers.DeleteReview(db))
	}
}
