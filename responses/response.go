// Package responses renders the uniform JSON envelope every endpoint uses:
// HTTP 200 with {"success": true, ...} on logical success, HTTP 400 with
// {"success": false, "msg": ...} (or "err") on any failure.
package responses

import "github.com/gofiber/fiber/v2"

// OK writes a 200 response, merging the extra payload keys into the envelope.
func OK(c *fiber.Ctx, payload fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.Status(fiber.StatusOK).JSON(body)
}

// Fail writes a 400 response with a user-facing message.
func Fail(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"msg":     msg,
	})
}

// FailErr writes a 400 response carrying the raw error payload.
func FailErr(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"err":     err.Error(),
	})
}

// Unauthorized writes a 401 response; used only by the auth middleware.
func Unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"msg":     msg,
	})
}
