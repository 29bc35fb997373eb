package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/nansabi/BLOG-WEBSITE/internal/images"
	"github.com/nansabi/BLOG-WEBSITE/internal/realtime"
	"github.com/nansabi/BLOG-WEBSITE/internal/repository"
	mysqlRepo "github.com/nansabi/BLOG-WEBSITE/internal/repository/mysql"
	redisCache "github.com/nansabi/BLOG-WEBSITE/internal/repository/redis"
	"github.com/nansabi/BLOG-WEBSITE/internal/workers"

	"github.com/joho/godotenv"
	"github.com/nansabi/BLOG-WEBSITE/internal/rest"
	"github.com/nansabi/BLOG-WEBSITE/internal/rest/middleware"
	"github.com/nansabi/BLOG-WEBSITE/internal/usecase/comment"
	"github.com/nansabi/BLOG-WEBSITE/internal/usecase/notification"
	"github.com/nansabi/BLOG-WEBSITE/internal/usecase/post"
	"github.com/nansabi/BLOG-WEBSITE/internal/usecase/user"
)

const (
	defaultTimeout     = 30
	defaultAddress     = ":9090"
	defaultCacheDB     = 0
	dbMaxRetry         = 10
	dbRetryIntervalSec = 2
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
}

func main() {
	//prepare database
	dbHost := os.Getenv("DATABASE_HOST")
	dbPort := os.Getenv("DATABASE_PORT")
	dbUser := os.Getenv("DATABASE_USER")
	dbPass := os.Getenv("DATABASE_PASS")
	dbName := os.Getenv("DATABASE_NAME")
	connection := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s", dbUser, dbPass, dbHost, dbPort, dbName)
	val := url.Values{}
	val.Add("parseTime", "1")
	val.Add("loc", "Asia/Jakarta")
	dsn := fmt.Sprintf("%s?%s", connection, val.Encode())

	var (
		db  *gorm.DB
		err error
	)

	for i := range dbMaxRetry {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err != nil {
			log.Printf("failed to open connection to database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
		} else {
			sqlDB, err := db.DB()
			if err != nil {
				log.Printf("failed to get sql.DB from gorm.DB (attempt %d/%d): %v", i+1, dbMaxRetry, err)
				continue
			}
			err = sqlDB.Ping()
			if err == nil {
				break
			}
			log.Printf("failed to ping database (attempt %d/%d): %v", i+1, dbMaxRetry, err)
			_ = sqlDB.Close()
		}

		time.Sleep(dbRetryIntervalSec * time.Second)
	}

	if err != nil {
		log.Fatal("could not connect to database after retries:", err)
	}

	defer func() {
		sqlDB, err := db.DB()
		if err != nil {
			log.Fatal("got error when getting sql.DB from gorm.DB", err)
		}
		if err := sqlDB.Close(); err != nil {
			log.Fatal("got error when closing the DB connection", err)
		}
	}()

	// prepare cache
	cacheHost := os.Getenv("CACHE_HOST")
	cachePort := os.Getenv("CACHE_PORT")
	cachePass := os.Getenv("CACHE_PASS")
	cacheDBStr := os.Getenv("CACHE_DB")
	cacheDB, err := strconv.Atoi(cacheDBStr)
	if err != nil {
		log.Println("failed to parse cacheDB, using default cacheDB")
		cacheDB = defaultCacheDB
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cacheHost + ":" + cachePort,
		Password: cachePass,
		DB:       cacheDB,
	})
	defer func() {
		err = client.Close()
		if err != nil {
			log.Fatal("got error when closing the cache connection", err)
		}
	}()

	_, err = client.Ping(context.Background()).Result()
	if err != nil {
		log.Fatal("failed to open connection to cache", err)
		return
	}

	// prepare image storage
	imageStore, err := images.NewCloudinaryStore(os.Getenv("CLOUDINARY_URL"))
	if err != nil {
		log.Fatal("failed to prepare image storage: ", err)
	}

	// prepare gin
	route := gin.Default()
	route.Use(middleware.CORS())
	timeoutStr := os.Getenv("CONTEXT_TIMEOUT")
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil {
		log.Println("failed to parse timeout, using default timeout")
		timeout = defaultTimeout
	}
	timeoutContext := time.Duration(timeout) * time.Second

	// Prepare Repository
	userRepo := mysqlRepo.NewUserRepository(db)
	commentRepo := mysqlRepo.NewCommentRepository(db)
	notificationRepo := mysqlRepo.NewNotificationRepository(db)

	// Post storage has three layers:
	// 1. DB layer
	postDBRepo := mysqlRepo.NewPostDBRepository(db)
	// 2. Cache layer
	postCache := redisCache.NewPostCache(client)
	// 3. Coordinating repository
	postRepo := repository.NewPostRepository(postDBRepo, postCache, userRepo)

	// Presence and delivery
	presence := realtime.NewRegistry()
	dispatcher := realtime.NewDispatcher(notificationRepo, presence, nil)

	// Start worker
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	viewsSyncer := workers.NewSyncViewsWorker(postDBRepo, postCache)
	go viewsSyncer.Start(ctx)

	// Build service Layer
	jwtSecret := []byte(os.Getenv("JWT_SECRET"))
	jwtTTLStr := os.Getenv("JWT_EXPIRE_HOURS")
	jwtTTL, err := strconv.Atoi(jwtTTLStr)
	if err != nil {
		log.Println("failed to parse JWT TTL, using default 24 hours")
		jwtTTL = 24
	}
	postSvc := post.NewService(postRepo, postCache, dispatcher, imageStore)
	userSvc := user.NewService(userRepo, jwtSecret, time.Duration(jwtTTL)*time.Hour)
	commentSvc := comment.NewService(commentRepo, postRepo, dispatcher)
	notificationSvc := notification.NewService(notificationRepo)

	postHandler := rest.NewPostHandler(postSvc)
	userHandler := rest.NewUserHandler(userSvc)
	commentHandler := rest.NewCommentHandler(commentSvc)
	notificationHandler := rest.NewNotificationHandler(notificationSvc)
	adminHandler := rest.NewAdminHandler(userSvc, postSvc)
	wsHandler := rest.NewWSHandler(presence)

	authMiddleware := middleware.AuthMiddleware(string(jwtSecret))
	withTimeout := middleware.SetRequestContextWithTimeout(timeoutContext)

	// Register routes
	route.POST("/register", withTimeout, userHandler.Register)
	route.POST("/login", withTimeout, userHandler.Login)

	route.GET("/posts", withTimeout, postHandler.Fetch)
	route.GET("/posts/trending", withTimeout, postHandler.FetchTrending)
	route.GET("/posts/:id", withTimeout, postHandler.GetByID)
	route.GET("/posts/:id/comments", withTimeout, commentHandler.FetchCommentsByPost)

	// the websocket route stays outside the timeout middleware
	route.GET("/ws", authMiddleware, wsHandler.Serve)

	authorized := route.Group("/")
	authorized.Use(authMiddleware, withTimeout)
	{
		authorized.POST("/posts", postHandler.Store)
		authorized.PUT("/posts/:id", postHandler.Update)
		authorized.DELETE("/posts/:id", postHandler.Delete)
		authorized.POST("/posts/:id/like", postHandler.Like)
		authorized.POST("/posts/:id/unlike", postHandler.Unlike)
		authorized.POST("/posts/:id/comments", commentHandler.CreateComment)
		authorized.DELETE("/comments/:id", commentHandler.DeleteComment)

		authorized.GET("/notifications", notificationHandler.FetchUnread)
		authorized.GET("/notifications/count", notificationHandler.CountUnread)
		authorized.PUT("/notifications/:id/read", notificationHandler.MarkRead)

		authorized.PUT("/users/password", userHandler.EditPassword)
	}

	admin := route.Group("/admin")
	admin.Use(authMiddleware, middleware.AdminOnly(), withTimeout)
	{
		admin.GET("/users", adminHandler.ListUsers)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)
		admin.DELETE("/posts/:id", adminHandler.DeletePost)
	}

	// Start Server
	address := os.Getenv("SERVER_ADDRESS")
	if address == "" {
		address = defaultAddress
	}
	srv := &http.Server{
		Addr:    address,
		Handler: route,
	}
	go func() {
		log.Printf("Server is running on %s\n", address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err) // nolint
		}
	}()

	// shutdown
	<-ctx.Done()
	log.Println("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Println("Waiting for worker to cleanup...")
	time.Sleep(2 * time.Second)

	log.Println("Server exiting")
}
