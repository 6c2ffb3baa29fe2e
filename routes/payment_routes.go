package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Alice-Yoon/Katachii-Back--sample/controllers/payments"
	"github.com/Alice-Yoon/Katachii-Back--sample/middlewares"
)

func PaymentRoutes(app *fiber.App, auth *middlewares.Auth, ctrl *payments.Controller) {
	g := app.Group("/api/payments", auth.Handle)

	g.Post("/paymentToBank", ctrl.PaymentToBank)

	// Admin order board
	g.Get("/manageOrders", middlewares.AdminOnly, ctrl.ManageOrders)
	g.Post("/updateOrderStatus", middlewares.AdminOnly, ctrl.UpdateOrderStatus)
	g.Post("/updateDeliveryNumber", middlewares.AdminOnly, ctrl.UpdateDeliveryNumber)
	g.Post("/cancelThisOrder", middlewares.AdminOnly, ctrl.CancelThisOrder)
	g.Delete("/removeOrderRecord", middlewares.AdminOnly, ctrl.RemoveOrderRecord)
}
