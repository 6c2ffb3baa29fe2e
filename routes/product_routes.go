package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Alice-Yoon/Katachii-Back--sample/controllers/products"
	"github.com/Alice-Yoon/Katachii-Back--sample/middlewares"
)

func ProductRoutes(app *fiber.App, auth *middlewares.Auth, ctrl *products.Controller) {
	g := app.Group("/api/products", auth.Handle, middlewares.AdminOnly)

	g.Post("/uploadProduct", ctrl.UploadProduct)
	g.Delete("/deleteProduct", ctrl.DeleteProduct)
}
