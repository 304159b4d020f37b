package response

import "github.com/gofiber/fiber/v3"

// Messages match the wire contract the frontend already depends on.
const (
	MessageUnauthorized   = "unAuthorized access"
	MessageInternalServer = "Internal Server Error"
	MessageDuplicateBid   = "you have already placed a bid on this job!"
)

// Message writes a JSON body of the form {"message": ...}.
func Message(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}

// Success writes the {"success":true} acknowledgment used by the credential
// endpoints.
func Success(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true})
}
