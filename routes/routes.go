package routes

import (
	"net/http"

	"blogapi/config"
	"blogapi/controllers"
	"blogapi/handlers"
	"blogapi/middleware"
	"blogapi/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "blogapi/docs"
)

// NewRouter wires middleware, controllers and routes into a gin engine.
func NewRouter(db *gorm.DB, cfg *config.Config, hubService *services.HubService) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.ErrorHandler())
	r.NoRoute(middleware.NotFound())

	userController := controllers.NewUserController(db)
	postController := controllers.NewPostController(db, hubService)
	authController := controllers.NewAuthController(db, cfg.JWTSecret, cfg.JWTTTL)
	wsHandler := handlers.NewWebSocketHandler(hubService, cfg.AllowedOrigins)
	authenticate := middleware.Authenticate(cfg.JWTSecret, services.NewUserService(db))

	SetupRoutes(r, authenticate, userController, postController, authController, wsHandler)
	return r
}

func SetupRoutes(r *gin.Engine, authenticate gin.HandlerFunc, userController *controllers.UserController, postController *controllers.PostController, authController *controllers.AuthController, w *handlers.WebSocketHandler) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(authenticate)
	{
		auth := api.Group("/auth")
		{
			handle(auth, http.MethodPost, "/login", authController.Login)
			handle(auth, http.MethodGet, "/me", middleware.AuthRequired(), authController.Me)
		}

		posts := api.Group("/posts")
		{
			handle(posts, http.MethodGet, "", postController.GetPosts)
			handle(posts, http.MethodPost, "", postController.CreatePost)
			handle(posts, http.MethodGet, "/:id", postController.GetPost)
			handle(posts, http.MethodPut, "/:id", postController.UpdatePost)
			handle(posts, http.MethodPatch, "/:id", postController.UpdatePost)
			handle(posts, http.MethodDelete, "/:id", postController.DeletePost)
		}

		users := api.Group("/users")
		{
			handle(users, http.MethodGet, "", userController.GetUsers)
			handle(users, http.MethodPost, "", userController.CreateUser)
			handle(users, http.MethodGet, "/:id", userController.GetUser)
			handle(users, http.MethodPut, "/:id", userController.UpdateUser)
			handle(users, http.MethodPatch, "/:id", userController.UpdateUser)
			handle(users, http.MethodDelete, "/:id", userController.DeleteUser)
		}

		api.GET("/feed/ws", w.HandleFeed)
	}
}

// handle registers path both with and without a trailing slash so that
// "/posts" and "/posts/" reach the same handler without a redirect.
func handle(g *gin.RouterGroup, method, path string, h ...gin.HandlerFunc) {
	g.Handle(method, path, h...)
	g.Handle(method, path+"/", h...)
}
