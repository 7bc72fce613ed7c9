package router

import (
	"canteen_manager/handler"
	"canteen_manager/middleware"
	"canteen_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/signup", validate.Signup(), handler.Signup)
	auth.Post("/login", validate.Login(), handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Post("/forgot-password", validate.ForgotPassword(), handler.ForgotPassword)
	auth.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)
	auth.Get("/me", middleware.Protected(), handler.Me)

	canteen := v1.Group("/canteen", logger.New())
	canteen.Post("/request", middleware.Protected(), validate.CreateCanteenRequest(), handler.SubmitCanteenRequest)
	canteen.Get("/request/me", middleware.Protected(), handler.GetMyCanteenRequest)
	canteen.Get("/status/:requestId", validate.GetById("requestId"), handler.GetRequestStatus)
	canteen.Get("/approved", handler.GetApprovedCanteens)
	canteen.Get("/details/:slug", handler.GetCanteenDetail)

	menu := v1.Group("/menu", logger.New())
	menu.Post("/", middleware.Protected(), validate.CreateMenu(), handler.AddMenuItem)
	menu.Put("/:menuId", middleware.Protected(), validate.GetById("menuId"), validate.EditMenu(), handler.EditMenuItem)
	menu.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteMenuItems)
	menu.Patch("/:menuId/availability", middleware.Protected(), validate.GetById("menuId"), handler.ToggleAvailability)
	menu.Get("/mine", middleware.Protected(), handler.GetMyMenu)
	menu.Get("/canteen/:canteenId", validate.GetById("canteenId"), handler.GetCanteenMenu)
	menu.Get("/item/:menuId", validate.GetById("menuId"), handler.GetMenuItem)
	menu.Post("/:menuId/rate", validate.GetById("menuId"), validate.RateMenu(), handler.RateMenuItem)
	menu.Get("/categories/:canteenId", validate.GetById("canteenId"), handler.GetMenuCategories)

	v1.Post("/cloudinary-signature", middleware.Protected(), handler.GenerateSignature)
	v1.Post("/cloudinary-delete", middleware.Protected(), handler.DeleteUploadedImage)

	orders := v1.Group("/orders", logger.New())
	orders.Post("/", middleware.OptionalJWT(), validate.PlaceOrder(), handler.PlaceOrder)
	orders.Get("/", middleware.Protected(), handler.GetOrders)
	orders.Get("/customer/:phone", handler.GetOrdersByPhone)
	orders.Get("/:orderId", handler.GetOrderDetail)
	orders.Patch("/:orderId/status", middleware.Protected(), validate.UpdateOrderStatus(), handler.UpdateOrderStatus)
	orders.Post("/:orderId/cancel", handler.CancelOrder)

	admin := v1.Group("/admin", logger.New())
	admin.Get("/requests", middleware.Protected(), handler.GetCanteenRequests)
	admin.Get("/requests/:requestId", middleware.Protected(), validate.GetById("requestId"), handler.GetCanteenRequestById)
	admin.Put("/approve/:requestId", middleware.Protected(), validate.GetById("requestId"), handler.ApproveRequest)
	admin.Put("/reject/:requestId", middleware.Protected(), validate.GetById("requestId"), validate.RejectRequest(), handler.RejectRequest)
	admin.Put("/requests/:requestId/status", middleware.Protected(), validate.GetById("requestId"), validate.UpdateRequestStatus(), handler.UpdateRequestStatus)
	admin.Put("/bulk-action", middleware.Protected(), validate.BulkRequestAction(), handler.BulkRequestAction)
	admin.Delete("/requests/:requestId", middleware.Protected(), validate.GetById("requestId"), handler.DeleteRequest)
	admin.Get("/menu-items", middleware.Protected(), handler.GetAllMenuItems)
	admin.Delete("/menu-item/:menuId", middleware.Protected(), validate.GetById("menuId"), handler.DeleteMenuItemByAdmin)
	admin.Get("/dashboard/stats", middleware.Protected(), handler.GetAdminStats)
	admin.Get("/accounts", middleware.Protected(), handler.GetAccounts)
	admin.Delete("/accounts/:accountId", middleware.Protected(), validate.GetById("accountId"), handler.DeleteAccount)

	browse := v1.Group("/browse", logger.New())
	browse.Get("/canteens-with-menu", handler.GetCanteensWithMenu)
	browse.Get("/featured-items", handler.GetFeaturedItems)
	browse.Get("/filters", handler.GetBrowseFilters)
	browse.Get("/search", handler.SearchMenuItems)

	app.Get("/ws/orders/:canteenId", websocket.New(handler.OrderFeedWebsocket))
}
