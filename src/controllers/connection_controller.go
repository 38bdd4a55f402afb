package controllers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campusmatch/Backend-Study-Match/src/lib"
	"github.com/campusmatch/Backend-Study-Match/src/middleware"
	"github.com/campusmatch/Backend-Study-Match/src/services"
)

type ConnectionController struct {
	connections *services.ConnectionService
	validate    *validator.Validate
}

func NewConnectionController(connections *services.ConnectionService, validate *validator.Validate) *ConnectionController {
	return &ConnectionController{connections: connections, validate: validate}
}

type sendRequestBody struct {
	TargetUserId string `json:"targetUserId" validate:"required,len=24,hexadecimal"`
}

// SendRequest sends a connection request from the authenticated user to the
// target user.
func (ct *ConnectionController) SendRequest(c *fiber.Ctx) error {
	var req sendRequestBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.ErrorResponse("Invalid request body"))
	}
	if err := ct.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	targetID, err := primitive.ObjectIDFromHex(req.TargetUserId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.ErrorResponse("Invalid user ID format"))
	}

	user := middleware.CurrentUser(c)
	if err := ct.connections.SendRequest(c.Context(), user.Id, targetID); err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(lib.MessageResponse("Connection request sent successfully"))
}

type respondRequestBody struct {
	ConnectionId string `json:"connectionId" validate:"required,len=24,hexadecimal"`
	Status       string `json:"status" validate:"required,oneof=accept reject"`
}

// Respond accepts or rejects a pending connection request addressed to the
// authenticated user.
func (ct *ConnectionController) Respond(c *fiber.Ctx) error {
	var req respondRequestBody
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.ErrorResponse("Invalid request body"))
	}
	if err := ct.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	requesterID, err := primitive.ObjectIDFromHex(req.ConnectionId)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.ErrorResponse("Invalid user ID format"))
	}

	user := middleware.CurrentUser(c)
	if err := ct.connections.Respond(c.Context(), user.Id, requesterID, req.Status); err != nil {
		return serviceError(c, err)
	}

	message := "Connection request accepted successfully"
	if req.Status == services.DecisionReject {
		message = "Connection request rejected successfully"
	}
	return c.Status(fiber.StatusOK).JSON(lib.MessageResponse(message))
}

// GetConnections lists the authenticated user's connections.
func (ct *ConnectionController) GetConnections(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	users, err := ct.connections.ConnectionsOf(c.Context(), user.Id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(lib.DataResponse("Connections retrieved successfully", fiber.Map{
		"connections": users,
		"count":       len(users),
	}))
}

// GetPending lists users with an undecided request to the authenticated
// user.
func (ct *ConnectionController) GetPending(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	users, err := ct.connections.PendingRequesters(c.Context(), user.Id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(lib.DataResponse("Pending requests retrieved successfully", fiber.Map{
		"requests": users,
		"count":    len(users),
	}))
}
