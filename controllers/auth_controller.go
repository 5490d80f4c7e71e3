package controllers

import (
	"net/http"
	"time"

	"blogapi/middleware"
	"blogapi/models"
	"blogapi/serializers"
	"blogapi/services"
	"blogapi/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AuthController struct {
	userService *services.UserService
	jwtSecret   string
	jwtTTL      time.Duration
}

func NewAuthController(db *gorm.DB, jwtSecret string, jwtTTL time.Duration) *AuthController {
	return &AuthController{
		userService: services.NewUserService(db),
		jwtSecret:   jwtSecret,
		jwtTTL:      jwtTTL,
	}
}

type LoginResponse struct {
	Token string                   `json:"token"`
	User  serializers.UserResponse `json:"user"`
}

// Login godoc
// @Summary Exchange username and password for a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body models.LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} map[string][]string
// @Failure 403 {object} map[string]string
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := utils.BindJSON(c, &req); err != nil {
		fail(c, err)
		return
	}

	user, err := ac.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	token, err := utils.GenerateJWT(user.ID, ac.jwtSecret, ac.jwtTTL)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, User: serializers.User(user)})
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Success 200 {object} serializers.UserResponse
// @Failure 403 {object} map[string]string
// @Security BearerAuth
// @Router /auth/me [get]
func (ac *AuthController) Me(c *gin.Context) {
	identity := middleware.CurrentIdentity(c)

	user, err := ac.userService.GetUserByID(c.Request.Context(), identity.UserID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, serializers.User(user))
}
