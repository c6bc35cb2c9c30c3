package routes

import (
	"github.com/gin-gonic/gin"
	adminControllers "github.com/parthav15/SNACKSDABBA-BACKEND/controllers/admin"
	orderControllers "github.com/parthav15/SNACKSDABBA-BACKEND/controllers/order"
	productControllers "github.com/parthav15/SNACKSDABBA-BACKEND/controllers/product"
	"github.com/parthav15/SNACKSDABBA-BACKEND/middleware"
	"gorm.io/gorm"
)

func registerAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminPanel := r.Group("/admin_panel")

	adminPanel.POST("/admin_login/", middleware.RateLimiter(), adminControllers.AdminLogin(db))

	staff := adminPanel.Group("", middleware.AuthAdmin(db))
	{
		staff.POST("/users_list/", adminControllers.UsersList(db))
		staff.POST("/user_detail/:user_id", adminControllers.UserDetail(db))
		staff.POST("/user_cart/:user_id", adminControllers.UserCart(db))

		staff.POST("/add_category/", productControllers.AddCategory(db))
		staff.POST("/edit_category/:category_id", productControllers.EditCategory(db))
		staff.POST("/delete_category/:category_id", productControllers.DeleteCategory(db))

		staff.POST("/add_product/", productControllers.AddProduct(db))
		staff.POST("/edit_product/:product_id", productControllers.EditProduct(db))
		staff.POST("/delete_product/:product_id", productControllers.DeleteProduct(db))
		staff.POST("/bulk_create_products/", productControllers.BulkCreateProducts(db))
		staff.GET("/export_products/", productControllers.ExportProducts(db))

		staff.POST("/get_all_orders/", orderControllers.GetAllOrders(db))
		staff.POST("/get_order_details/:order_id", orderControllers.AdminOrderDetails(db))
		staff.POST("/update_order_status/:order_id", orderControllers.UpdateOrderStatus(db))
		staff.GET("/ws/orders", orderControllers.OrderFeed())

		staff.POST("/add_carousel/", adminControllers.AddCarousel(db))
		staff.POST("/edit_carousel/:carousel_id", adminControllers.EditCarousel(db))
		staff.POST("/delete_carousel/:carousel_id", adminControllers.DeleteCarousel(db))
	}
}
