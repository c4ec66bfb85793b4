package handler

import (
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
)

// NewApp builds the Fiber app with the standardized error handler and go-json as its codec.
// A bodyLimit of zero keeps Fiber's default.
func NewApp(bodyLimit int) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "relatosapi",
		ErrorHandler: ErrorHandler(),
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		BodyLimit:    bodyLimit,
	})
}
