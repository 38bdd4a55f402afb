package lib

import "github.com/gofiber/fiber/v2"

// MessageResponse returns the success envelope used by all handlers.
func MessageResponse(message string) fiber.Map {
	return fiber.Map{
		"success": true,
		"message": message,
	}
}

func DataResponse(message string, data fiber.Map) fiber.Map {
	return fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	}
}

func ErrorResponse(message string) fiber.Map {
	return fiber.Map{
		"success": false,
		"message": message,
	}
}
