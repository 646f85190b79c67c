package router

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/skku-gallery/gallery/go-web-server/internal/artwork"
	"github.com/skku-gallery/gallery/go-web-server/internal/auth"
	"github.com/skku-gallery/gallery/go-web-server/internal/comment"
	"github.com/skku-gallery/gallery/go-web-server/internal/config"
	"github.com/skku-gallery/gallery/go-web-server/internal/dashboard"
	"github.com/skku-gallery/gallery/go-web-server/internal/exhibition"
	"github.com/skku-gallery/gallery/go-web-server/internal/home"
	"github.com/skku-gallery/gallery/go-web-server/internal/meta"
	"github.com/skku-gallery/gallery/go-web-server/internal/model"
	"github.com/skku-gallery/gallery/go-web-server/internal/notice"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/container"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/database"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/event"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/imagestore"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/mail"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/middleware"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/token"
	"github.com/skku-gallery/gallery/go-web-server/internal/shared/tokenstore"
	"github.com/skku-gallery/gallery/go-web-server/internal/user"
)

// Container keys
const (
	UserRepository       = "userRepository"
	ArtworkRepository    = "artworkRepository"
	ExhibitionRepository = "exhibitionRepository"
	NoticeRepository     = "noticeRepository"
	CommentRepository    = "commentRepository"
	DashboardRepository  = "dashboardRepository"

	AuthService       = "authService"
	UserService       = "userService"
	ArtworkService    = "artworkService"
	ExhibitionService = "exhibitionService"
	NoticeService     = "noticeService"
	CommentService    = "commentService"
	DashboardService  = "dashboardService"

	MetaHandler       = "metaHandler"
	HomeHandler       = "homeHandler"
	AuthHandler       = "authHandler"
	UserHandler       = "userHandler"
	ArtworkHandler    = "artworkHandler"
	ExhibitionHandler = "exhibitionHandler"
	NoticeHandler     = "noticeHandler"
	CommentHandler    = "commentHandler"
	DashboardHandler  = "dashboardHandler"
)

// Dependencies are the infrastructure handles built in main
type Dependencies struct {
	Config       *config.Config
	DB           *database.DB
	Storage      imagestore.Storage
	Tokens       tokenstore.Store
	Mailer       mail.Sender
	Publisher    event.Publisher
	TokenManager token.Manager // defaults to the JWT manager
	Static       fs.FS         // css/, js/ and images/ served at the site root
}

// Setup registers every repository, service and handler in a container and binds the routes
func Setup(router *gin.Engine, deps Dependencies) *container.Container {
	cfg := deps.Config
	db := deps.DB.DB
	if deps.TokenManager == nil {
		deps.TokenManager = token.NewJWTManager(cfg)
	}

	c := container.New()

	// repository
	c.Register(UserRepository, user.NewUserRepository())
	c.Register(ArtworkRepository, artwork.NewArtworkRepository())
	c.Register(ExhibitionRepository, exhibition.NewExhibitionRepository())
	c.Register(NoticeRepository, notice.NewNoticeRepository())
	c.Register(CommentRepository, comment.NewCommentRepository())
	c.Register(DashboardRepository, dashboard.NewDashboardRepository())

	// service
	userRepository := container.MustResolve[*user.UserRepository](c, UserRepository)
	c.Register(AuthService, auth.NewAuthService(db, cfg, userRepository, deps.TokenManager, deps.Tokens, deps.Mailer, deps.Publisher))
	c.Register(UserService, user.NewUserService(db, cfg, userRepository, deps.Mailer, deps.Publisher))
	c.Register(ArtworkService, artwork.NewArtworkService(db, cfg,
		container.MustResolve[*artwork.ArtworkRepository](c, ArtworkRepository), deps.Storage, deps.Publisher))
	c.Register(ExhibitionService, exhibition.NewExhibitionService(db, cfg,
		container.MustResolve[*exhibition.ExhibitionRepository](c, ExhibitionRepository), deps.Storage, deps.Publisher))
	c.Register(NoticeService, notice.NewNoticeService(db, cfg,
		container.MustResolve[*notice.NoticeRepository](c, NoticeRepository), deps.Publisher))
	c.Register(CommentService, comment.NewCommentService(db, cfg,
		container.MustResolve[*comment.CommentRepository](c, CommentRepository)))
	c.Register(DashboardService, dashboard.NewDashboardService(db,
		container.MustResolve[*dashboard.DashboardRepository](c, DashboardRepository)))

	// handler
	artworkService := container.MustResolve[*artwork.ArtworkService](c, ArtworkService)
	exhibitionService := container.MustResolve[*exhibition.ExhibitionService](c, ExhibitionService)
	noticeService := container.MustResolve[*notice.NoticeService](c, NoticeService)
	commentService := container.MustResolve[*comment.CommentService](c, CommentService)

	c.Register(MetaHandler, meta.NewHandler(cfg, deps.DB))
	c.Register(HomeHandler, home.NewHomeHandler(artworkService, exhibitionService, noticeService))
	c.Register(AuthHandler, auth.NewAuthHandler(cfg, container.MustResolve[*auth.AuthService](c, AuthService)))
	c.Register(UserHandler, user.NewUserHandler(cfg, container.MustResolve[*user.UserService](c, UserService)))
	c.Register(ArtworkHandler, artwork.NewArtworkHandler(cfg, artworkService, commentService))
	c.Register(ExhibitionHandler, exhibition.NewExhibitionHandler(cfg, exhibitionService))
	c.Register(NoticeHandler, notice.NewNoticeHandler(cfg, noticeService))
	c.Register(CommentHandler, comment.NewCommentHandler(commentService))
	c.Register(DashboardHandler, dashboard.NewDashboardHandler(container.MustResolve[*dashboard.DashboardService](c, DashboardService)))

	mountStatic(router, cfg, deps.Static)
	router.Use(middleware.Session(cfg, deps.TokenManager))
	bindRoutes(router, c)
	router.NoRoute(middleware.NotFound())

	return c
}

func bindRoutes(router *gin.Engine, c *container.Container) {
	metaHandler := container.MustResolve[*meta.Handler](c, MetaHandler)
	homeHandler := container.MustResolve[*home.HomeHandler](c, HomeHandler)
	authHandler := container.MustResolve[*auth.AuthHandler](c, AuthHandler)
	userHandler := container.MustResolve[*user.UserHandler](c, UserHandler)
	artworkHandler := container.MustResolve[*artwork.ArtworkHandler](c, ArtworkHandler)
	exhibitionHandler := container.MustResolve[*exhibition.ExhibitionHandler](c, ExhibitionHandler)
	noticeHandler := container.MustResolve[*notice.NoticeHandler](c, NoticeHandler)
	commentHandler := container.MustResolve[*comment.CommentHandler](c, CommentHandler)
	dashboardHandler := container.MustResolve[*dashboard.DashboardHandler](c, DashboardHandler)

	router.GET("/health", metaHandler.Health)
	router.GET("/", homeHandler.Index)

	userGroup := router.Group("/user")
	{
		userGroup.GET("/login", authHandler.LoginPage)
		userGroup.POST("/login", authHandler.Login)
		userGroup.GET("/signup", authHandler.SignupPage)
		userGroup.POST("/signup", authHandler.Signup)
		userGroup.POST("/logout", authHandler.Logout)
		userGroup.GET("/verify-email", authHandler.VerifyEmail)
		userGroup.POST("/verify-email/resend", authHandler.ResendVerification)
		userGroup.GET("/password/forgot", authHandler.ForgotPasswordPage)
		userGroup.POST("/password/forgot", authHandler.ForgotPassword)
		userGroup.GET("/password/reset", authHandler.ResetPasswordPage)
		userGroup.POST("/password/reset", authHandler.ResetPassword)

		me := userGroup.Group("/me", middleware.IsAuthenticated())
		me.GET("", userHandler.GetProfile)
		me.PUT("", userHandler.UpdateProfile)
		me.DELETE("", userHandler.DeleteAccount)
	}

	artworkGroup := router.Group("/artwork")
	{
		artworkGroup.GET("", artworkHandler.List)
		artworkGroup.GET("/featured", artworkHandler.Featured)
		artworkGroup.GET("/:id", artworkHandler.Detail)
		artworkGroup.GET("/:id/comments", commentHandler.List)

		artworkGroup.POST("", middleware.IsAuthenticated(), middleware.HasRole(model.RoleAdmin, model.RoleSkkuMember), artworkHandler.Create)
		artworkGroup.PUT("/:id", middleware.IsAuthenticated(), artworkHandler.Update)
		artworkGroup.DELETE("/:id", middleware.IsAuthenticated(), artworkHandler.Delete)
		artworkGroup.POST("/:id/comments", middleware.IsAuthenticated(), commentHandler.Create)
	}

	commentGroup := router.Group("/comment", middleware.IsAuthenticated())
	{
		commentGroup.PUT("/:id", commentHandler.Update)
		commentGroup.DELETE("/:id", commentHandler.Delete)
	}

	exhibitionGroup := router.Group("/exhibition")
	{
		exhibitionGroup.GET("", exhibitionHandler.List)
		exhibitionGroup.GET("/:id", exhibitionHandler.Detail)
	}

	noticeGroup := router.Group("/notice")
	{
		noticeGroup.GET("", noticeHandler.List)
		noticeGroup.GET("/:id", noticeHandler.Detail)
	}

	admin := router.Group("/admin", middleware.IsAuthenticated(), middleware.IsAdmin())
	admin.GET("", dashboardHandler.Index)

	management := admin.Group("/management")
	{
		users := management.Group("/user")
		users.GET("", userHandler.AdminList)
		users.GET("/:id", userHandler.AdminDetail)
		users.PUT("/:id", userHandler.AdminUpdate)
		users.DELETE("/:id", userHandler.AdminDelete)
		users.POST("/:id/reset-password", userHandler.AdminResetPassword)

		artworks := management.Group("/artwork")
		artworks.GET("", artworkHandler.AdminList)
		artworks.GET("/new", artworkHandler.AdminNew)
		artworks.GET("/:id", artworkHandler.AdminDetail)
		artworks.POST("", artworkHandler.Create)
		artworks.PUT("/:id", artworkHandler.Update)
		artworks.DELETE("/:id", artworkHandler.Delete)
		artworks.PATCH("/:id/featured", artworkHandler.SetFeatured)

		exhibitions := management.Group("/exhibition")
		exhibitions.GET("", exhibitionHandler.AdminList)
		exhibitions.GET("/new", exhibitionHandler.AdminNew)
		exhibitions.GET("/:id", exhibitionHandler.AdminDetail)
		exhibitions.POST("", exhibitionHandler.Create)
		exhibitions.PUT("/:id", exhibitionHandler.Update)
		exhibitions.DELETE("/:id", exhibitionHandler.Delete)

		notices := management.Group("/notice")
		notices.GET("", noticeHandler.AdminList)
		notices.GET("/new", noticeHandler.AdminNew)
		notices.GET("/:id", noticeHandler.AdminDetail)
		notices.POST("", noticeHandler.Create)
		notices.PUT("/:id", noticeHandler.Update)
		notices.DELETE("/:id", noticeHandler.Delete)
	}
}

// mountStatic serves the embedded assets and, for local storage, the uploaded images
func mountStatic(router *gin.Engine, cfg *config.Config, static fs.FS) {
	if static != nil {
		for _, dir := range []string{"css", "js", "images"} {
			sub, err := fs.Sub(static, dir)
			if err != nil {
				continue
			}
			router.StaticFS("/"+dir, http.FS(sub))
		}
	}

	if cfg.Storage.Driver == config.StorageLocal && cfg.Storage.LocalPath != "" {
		router.Static(cfg.Storage.LocalURL, cfg.Storage.LocalPath)
	}
}

// StaticPrefixes are the URL prefixes the request logger skips on success
func StaticPrefixes(cfg *config.Config) []string {
	prefixes := []string{"/css", "/js", "/images"}
	if cfg.Storage.Driver == config.StorageLocal {
		prefixes = append(prefixes, cfg.Storage.LocalURL)
	}
	return prefixes
}
