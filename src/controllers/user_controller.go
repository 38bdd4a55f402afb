package controllers

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/campusmatch/Backend-Study-Match/src/lib"
	"github.com/campusmatch/Backend-Study-Match/src/middleware"
	"github.com/campusmatch/Backend-Study-Match/src/services"
)

type UserController struct {
	users    *services.UserService
	matches  *services.MatchService
	jwt      *lib.JWTManager
	validate *validator.Validate
}

func NewUserController(users *services.UserService, matches *services.MatchService, jwt *lib.JWTManager, validate *validator.Validate) *UserController {
	return &UserController{users: users, matches: matches, jwt: jwt, validate: validate}
}

type registerRequest struct {
	Name             string    `json:"name" validate:"required,min=2,max=100"`
	Email            string    `json:"email" validate:"required,email"`
	ProgramOfStudy   string    `json:"programOfStudy" validate:"required,min=2,max=100"`
	Interest         string    `json:"interest" validate:"required,min=2,max=500"`
	Skills           []string  `json:"skills" validate:"required,min=1,dive,min=1,max=50"`
	ProjectIdea      string    `json:"projectIdea" validate:"required,min=10,max=1000"`
	AvailabilityDate time.Time `json:"availabilityDate" validate:"required"`
	Password         string    `json:"password" validate:"required,min=6,max=128"`
}

// Register creates a new student profile and returns it with a token.
func (ct *UserController) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.ErrorResponse("Invalid request body"))
	}
	if err := ct.validate.Struct(req); err != nil {
		return validationError(c, err)
	}
	if !req.AvailabilityDate.After(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  fiber.Map{"availabilityDate": "Availability date must be in the future"},
		})
	}

	user, err := ct.users.Register(c.Context(), services.RegisterInput{
		Name:             req.Name,
		Email:            req.Email,
		ProgramOfStudy:   req.ProgramOfStudy,
		Interest:         req.Interest,
		Skills:           req.Skills,
		ProjectIdea:      req.ProjectIdea,
		AvailabilityDate: req.AvailabilityDate,
		Password:         req.Password,
	})
	if err != nil {
		return serviceError(c, err)
	}

	token, err := ct.jwt.Generate(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(lib.ErrorResponse("Failed to generate token"))
	}

	return c.Status(fiber.StatusCreated).JSON(lib.DataResponse("User registered successfully", fiber.Map{
		"user":  user,
		"token": token,
	}))
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates by email and password and returns a fresh token.
func (ct *UserController) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.ErrorResponse("Invalid request body"))
	}
	if err := ct.validate.Struct(req); err != nil {
		return validationError(c, err)
	}

	user, err := ct.users.Authenticate(c.Context(), req.Email, req.Password)
	if err != nil {
		return serviceError(c, err)
	}

	token, err := ct.jwt.Generate(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(lib.ErrorResponse("Failed to generate token"))
	}

	return c.Status(fiber.StatusOK).JSON(lib.DataResponse("Login successful", fiber.Map{
		"user":  user,
		"token": token,
	}))
}

// GetProfile returns the authenticated user's own profile.
func (ct *UserController) GetProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return c.Status(fiber.StatusOK).JSON(lib.DataResponse("Profile retrieved successfully", fiber.Map{
		"user": user,
	}))
}

type updateProfileRequest struct {
	Name             *string    `json:"name" validate:"omitempty,min=2,max=100"`
	Email            *string    `json:"email" validate:"omitempty,email"`
	ProgramOfStudy   *string    `json:"programOfStudy" validate:"omitempty,min=2,max=100"`
	Interest         *string    `json:"interest" validate:"omitempty,min=2,max=500"`
	Skills           []string   `json:"skills" validate:"omitempty,min=1,dive,min=1,max=50"`
	ProjectIdea      *string    `json:"projectIdea" validate:"omitempty,min=10,max=1000"`
	AvailabilityDate *time.Time `json:"availabilityDate"`
}

// UpdateProfile partially updates the authenticated user's profile.
func (ct *UserController) UpdateProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.ErrorResponse("Invalid request body"))
	}
	if err := ct.validate.Struct(req); err != nil {
		return validationError(c, err)
	}
	if req.AvailabilityDate != nil && !req.AvailabilityDate.After(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation failed",
			"errors":  fiber.Map{"availabilityDate": "Availability date must be in the future"},
		})
	}

	user := middleware.CurrentUser(c)
	updated, err := ct.users.UpdateProfile(c.Context(), user.Id, services.UpdateProfileInput{
		Name:             req.Name,
		Email:            req.Email,
		ProgramOfStudy:   req.ProgramOfStudy,
		Interest:         req.Interest,
		Skills:           req.Skills,
		ProjectIdea:      req.ProjectIdea,
		AvailabilityDate: req.AvailabilityDate,
	})
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(lib.DataResponse("Profile updated successfully", fiber.Map{
		"user": updated,
	}))
}

// GetMatches returns ranked collaboration suggestions for the
// authenticated user.
func (ct *UserController) GetMatches(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	matches, err := ct.matches.FindMatches(c.Context(), user.Id)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(lib.DataResponse("Matches retrieved successfully", fiber.Map{
		"matches": matches,
		"count":   len(matches),
	}))
}

// ListUsers returns all active users. Admin only.
func (ct *UserController) ListUsers(c *fiber.Ctx) error {
	users, err := ct.users.ListActive(c.Context())
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(lib.DataResponse("Users retrieved successfully", fiber.Map{
		"users": users,
		"count": len(users),
	}))
}

// DeactivateUser soft-deletes a user by id. Admin only.
func (ct *UserController) DeactivateUser(c *fiber.Ctx) error {
	userID, err := primitive.ObjectIDFromHex(c.Params("userId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(lib.ErrorResponse("Invalid user ID format"))
	}

	if err := ct.users.Deactivate(c.Context(), userID); err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(lib.MessageResponse("User deleted successfully"))
}
