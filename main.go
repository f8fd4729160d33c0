// main.go
package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"zeroun-site/controllers"
	"zeroun-site/logger"
	"zeroun-site/middleware"
	"zeroun-site/services"
	"zeroun-site/store"
	"zeroun-site/websocket"
)

func main() {
	// Local development reads .env; deployed environments set real env vars.
	if err := godotenv.Load(); err != nil {
		logger.Debug.Println("No .env file found, relying on environment")
	}
	logger.SetLogLevel(os.Getenv("APP_ENV"))

	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	// Read configuration from environment variables
	siteURL := envOr("SITE_URL", "http://localhost:8080")
	dbPath := envOr("SITE_DB", "./data/site.db")
	exportDir := envOr("EXPORT_DIR", ".")
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "dev-secret-change-me"
		logger.Warn.Println("JWT_SECRET not set, using development secret")
	}

	// Open storage and seed the default site data on first start.
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()
	if err := st.Seed(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	auth := services.NewAuthService(jwtSecret)
	mail := services.NewMailService(
		os.Getenv("MAILJET_SENDER"),
		os.Getenv("MAILJET_PUBLIC_KEY"),
		os.Getenv("MAILJET_PRIVATE_KEY"),
	)

	controllers.SetStore(st)
	controllers.SetServices(auth, mail)
	controllers.SetConfig(siteURL, exportDir)

	// Health checks
	router.GET("/health", controllers.Health)

	// Push channel
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(c.Writer, c.Request)
	})

	// Public API routes
	api := router.Group("/api")
	{
		api.GET("/", controllers.APIRoot)
		api.GET("/events", controllers.ListEvents)
		api.GET("/events/:id/qrcode", controllers.EventQRCode)
		api.GET("/team", controllers.ListTeam)
		api.GET("/gallery", controllers.ListGallery)
		api.GET("/videos", controllers.ListVideos)
		api.GET("/site-content", controllers.GetSiteContent)
		api.POST("/admin/login", controllers.Login)
		api.POST("/admin/forgot-password", controllers.ForgotPassword)
		api.POST("/admin/reset-password", controllers.ResetPassword)
	}

	// Admin routes, bearer token required
	protected := api.Group("", middleware.TokenRequired(auth))
	{
		protected.POST("/events", controllers.CreateEvent)
		protected.PUT("/events/:id", controllers.UpdateEvent)
		protected.DELETE("/events/:id", controllers.DeleteEvent)
		protected.POST("/team", controllers.CreateTeamMember)
		protected.PUT("/team/:id", controllers.UpdateTeamMember)
		protected.DELETE("/team/:id", controllers.DeleteTeamMember)
		protected.POST("/gallery", controllers.CreateGalleryItem)
		protected.PUT("/gallery/:id", controllers.UpdateGalleryItem)
		protected.DELETE("/gallery/:id", controllers.DeleteGalleryItem)
		protected.POST("/videos", controllers.CreateVideo)
		protected.PUT("/videos/:id", controllers.UpdateVideo)
		protected.DELETE("/videos/:id", controllers.DeleteVideo)
		protected.PUT("/site-content", controllers.UpdateSiteContent)
		protected.GET("/admin/verify", controllers.Verify)
		protected.PUT("/admin/update", controllers.UpdateAccount)
		protected.PUT("/admin/change-password", controllers.ChangePassword)
		protected.GET("/admin/download-website", controllers.DownloadWebsite)
	}

	// Serve the built frontend assets under /static
	router.Static("/static", "./static")

	// Start the WebSocket broadcast loop
	go websocket.HandleMessages()

	addr := envOr("LISTEN_ADDR", ":8080")
	logger.Info.Printf("Starting server on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

// envOr returns the environment variable's value, or fallback when unset or
// empty.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
