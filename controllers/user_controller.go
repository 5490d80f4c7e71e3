package controllers

import (
	"net/http"

	"blogapi/middleware"
	"blogapi/models"
	"blogapi/permissions"
	"blogapi/serializers"
	"blogapi/services"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UserController struct {
	userService *services.UserService
	policy      permissions.Policy
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		userService: services.NewUserService(db),
		policy:      permissions.StaffOrReadOnly{},
	}
}

// GetUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {array} serializers.UserResponse
// @Router /users [get]
func (uc *UserController) GetUsers(c *gin.Context) {
	if err := permissions.Check(uc.policy, c.Request.Method, middleware.CurrentIdentity(c)); err != nil {
		fail(c, err)
		return
	}

	users, err := uc.userService.GetAllUsers(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, serializers.Users(users))
}

// GetUser godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} serializers.UserResponse
// @Failure 404 {object} map[string]string
// @Router /users/{id} [get]
func (uc *UserController) GetUser(c *gin.Context) {
	user, ok := uc.loadForObject(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, serializers.User(user))
}

// CreateUser godoc
// @Summary Create a user (staff only)
// @Tags users
// @Accept json
// @Produce json
// @Param user body models.CreateUserRequest true "User"
// @Success 201 {object} serializers.UserResponse
// @Failure 400 {object} map[string][]string
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /users [post]
func (uc *UserController) CreateUser(c *gin.Context) {
	if err := permissions.Check(uc.policy, c.Request.Method, middleware.CurrentIdentity(c)); err != nil {
		fail(c, err)
		return
	}

	var req models.CreateUserRequest
	if err := utils.BindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	user, err := uc.userService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializers.User(user))
}

// UpdateUser godoc
// @Summary Update a user (staff only; PUT requires username, PATCH is partial)
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param user body models.UpdateUserRequest true "Fields to change"
// @Success 200 {object} serializers.UserResponse
// @Failure 400 {object} map[string][]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /users/{id} [put]
// @Router /users/{id} [patch]
func (uc *UserController) UpdateUser(c *gin.Context) {
	user, ok := uc.loadForObject(c)
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	verr, err := bindError(utils.BindJSON(c, &req))
	if err != nil {
		fail(c, err)
		return
	}
	if c.Request.Method == http.MethodPut {
		requireFields(verr, map[string]bool{"username": req.Username != nil})
	}
	if !verr.Empty() {
		fail(c, verr)
		return
	}

	user, err = uc.userService.UpdateUser(c.Request.Context(), user, &req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, serializers.User(user))
}

// DeleteUser godoc
// @Summary Delete a user and their posts (staff only)
// @Tags users
// @Param id path int true "User ID"
// @Success 204
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /users/{id} [delete]
func (uc *UserController) DeleteUser(c *gin.Context) {
	user, ok := uc.loadForObject(c)
	if !ok {
		return
	}

	if err := uc.userService.DeleteUser(c.Request.Context(), user.ID); err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (uc *UserController) loadForObject(c *gin.Context) (*models.User, bool) {
	identity := middleware.CurrentIdentity(c)
	if err := permissions.Check(uc.policy, c.Request.Method, identity); err != nil {
		fail(c, err)
		return nil, false
	}

	id, err := parseID(c)
	if err != nil {
		fail(c, err)
		return nil, false
	}

	user, err := uc.userService.GetUserByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return nil, false
	}

	if err := permissions.CheckObject(uc.policy, c.Request.Method, identity, user); err != nil {
		fail(c, err)
		return nil, false
	}

	return user, true
}
