package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Alice-Yoon/Katachii-Back--sample/controllers/cart"
	"github.com/Alice-Yoon/Katachii-Back--sample/middlewares"
)

func UserRoutes(app *fiber.App, auth *middlewares.Auth, ctrl *cart.Controller) {
	g := app.Group("/api/users", auth.Handle)

	g.Get("/getCartItems", ctrl.GetCartItems)
	g.Post("/addToCart", ctrl.AddToCart)
	g.Delete("/deleteCartItem", ctrl.DeleteCartItem)

	g.Get("/getUsersInfo", ctrl.GetUsersInfo)
	g.Post("/getItemsById", ctrl.GetItemsByID)
	g.Get("/getHistoryItems", ctrl.GetHistoryItems)
}
