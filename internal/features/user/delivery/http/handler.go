package http

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"secret-santa-backend/internal/common/errors"
	"secret-santa-backend/internal/common/middleware"
	"secret-santa-backend/internal/features/user/models"
	"secret-santa-backend/internal/features/user/service"
)

type UserHandler struct {
	service service.UserService
	wrap    func(gin.HandlerFunc) gin.HandlerFunc
}

func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		wrap:    middleware.HandleErrorWrapper(logger),
	}
}

// RegisterRoutes mounts /users. auth authenticates every route; admin guards writes.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup, auth, admin gin.HandlerFunc) {
	users := router.Group("/users", auth)
	{
		users.GET("", h.wrap(h.ListUsers))
		users.GET("/me", h.wrap(h.GetMe))
		users.POST("/me", h.wrap(h.RegisterMe))
		users.PUT("/me", h.wrap(h.UpdateMe))
		users.GET("/:id", h.wrap(h.GetUser))
	}

	adminUsers := router.Group("/users", auth, admin)
	{
		adminUsers.POST("", h.wrap(h.RegisterUser))
		adminUsers.DELETE("/:id", h.wrap(h.DeleteUser))
	}
}

func toAppError(err error, id string) *errors.AppError {
	switch {
	case stderrors.Is(err, service.ErrUserNotFound):
		return errors.New(errors.ErrCodeUserNotFound, "User not found").WithDetail("id", id)
	case stderrors.Is(err, service.ErrUserExists):
		return errors.New(errors.ErrCodeUserExists, "User already exists").WithDetail("id", id)
	case stderrors.Is(err, service.ErrInvalidUser):
		return errors.Wrap(err, errors.ErrCodeValidation, err.Error())
	default:
		return errors.NewStorageError("users", err)
	}
}

// @Summary Register participant
// @Description Register a participant under their Telegram user id (admin only)
// @Tags users
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param user body models.UserCreate true "Participant"
// @Success 201 {object} models.UserResponse "Registered participant"
// @Failure 400 {object} middleware.ErrorResponse "Invalid payload"
// @Failure 403 {object} middleware.ErrorResponse "Not an admin"
// @Failure 409 {object} middleware.ErrorResponse "User already exists"
// @Router /users [post]
func (h *UserHandler) RegisterUser(c *gin.Context) {
	var input models.UserCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		_ = c.Error(errors.Wrap(err, errors.ErrCodeValidation, "Invalid request body"))
		return
	}

	user, err := h.service.Register(c.Request.Context(), &input)
	if err != nil {
		_ = c.Error(toAppError(err, input.ID))
		return
	}

	c.JSON(http.StatusCreated, user)
}

// @Summary Join the exchange
// @Description Register the caller under their Telegram id. Name defaults to the Telegram profile name.
// @Tags users
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param user body models.SelfRegistration true "Registration"
// @Success 201 {object} models.UserResponse "Registered participant"
// @Failure 400 {object} middleware.ErrorResponse "Invalid payload"
// @Failure 409 {object} middleware.ErrorResponse "Already registered"
// @Router /users/me [post]
func (h *UserHandler) RegisterMe(c *gin.Context) {
	tgUser, ok := middleware.TelegramUser(c)
	if !ok {
		_ = c.Error(errors.NewUnauthorizedError("Telegram init data required"))
		return
	}

	var input models.SelfRegistration
	if err := c.ShouldBindJSON(&input); err != nil {
		_ = c.Error(errors.Wrap(err, errors.ErrCodeValidation, "Invalid request body"))
		return
	}

	id, _ := middleware.ParticipantID(c)
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = strings.TrimSpace(tgUser.FirstName + " " + tgUser.LastName)
	}
	picture := input.ProfilePictureURL
	if picture == "" {
		picture = tgUser.PhotoURL
	}

	user, err := h.service.Register(c.Request.Context(), &models.UserCreate{
		ID:                id,
		Name:              name,
		Email:             input.Email,
		ProfilePictureURL: picture,
		Interests:         input.Interests,
		Role:              models.RoleUser,
	})
	if err != nil {
		_ = c.Error(toAppError(err, id))
		return
	}
	c.JSON(http.StatusCreated, user)
}

// @Summary Update my profile
// @Tags users
// @Accept json
// @Produce json
// @Security TelegramInitData
// @Param user body models.UserUpdate true "Changed fields"
// @Success 200 {object} models.UserResponse "Updated participant"
// @Failure 400 {object} middleware.ErrorResponse "Invalid payload"
// @Failure 404 {object} middleware.ErrorResponse "Caller is not registered"
// @Router /users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	id, ok := middleware.ParticipantID(c)
	if !ok {
		_ = c.Error(errors.NewUnauthorizedError("Telegram init data required"))
		return
	}

	var input models.UserUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		_ = c.Error(errors.Wrap(err, errors.ErrCodeValidation, "Invalid request body"))
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), id, &input)
	if err != nil {
		_ = c.Error(toAppError(err, id))
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary List participants
// @Tags users
// @Produce json
// @Security TelegramInitData
// @Success 200 {object} models.UsersResponse "Participants"
// @Failure 401 {object} middleware.ErrorResponse "Unauthorized"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		_ = c.Error(toAppError(err, ""))
		return
	}
	c.JSON(http.StatusOK, users)
}

// @Summary Get current participant
// @Description Registration of the caller, whose participant id is their Telegram id
// @Tags users
// @Produce json
// @Security TelegramInitData
// @Success 200 {object} models.UserResponse "Participant"
// @Failure 404 {object} middleware.ErrorResponse "Caller is not registered"
// @Router /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	id, ok := middleware.ParticipantID(c)
	if !ok {
		_ = c.Error(errors.NewUnauthorizedError("Telegram init data required"))
		return
	}
	h.respondUser(c, id)
}

// @Summary Get participant
// @Tags users
// @Produce json
// @Security TelegramInitData
// @Param id path string true "User ID"
// @Success 200 {object} models.UserResponse "Participant"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	h.respondUser(c, c.Param("id"))
}

func (h *UserHandler) respondUser(c *gin.Context, id string) {
	user, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(toAppError(err, id))
		return
	}
	c.JSON(http.StatusOK, user)
}

// @Summary Remove participant
// @Description Remove a participant (admin only). Existing assignments are kept until the next draw or reset.
// @Tags users
// @Security TelegramInitData
// @Param id path string true "User ID"
// @Success 204 "Removed"
// @Failure 404 {object} middleware.ErrorResponse "User not found"
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.DeleteUser(c.Request.Context(), id); err != nil {
		_ = c.Error(toAppError(err, id))
		return
	}
	c.Status(http.StatusNoContent)
}
