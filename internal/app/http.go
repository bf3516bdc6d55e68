package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/CGECHAGA/week-8-assignment/internal/config"
	"github.com/CGECHAGA/week-8-assignment/internal/delivery/http/v1"
	"github.com/CGECHAGA/week-8-assignment/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     httpCfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout of 5 seconds.
	quit := make(chan os.Signal, 1)
	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter) {
	userService := services.NewUserService(globalLogger, globalPostgresPool)
	taskService := services.NewTaskService(globalLogger, globalPostgresPool)

	v1Handler := v1.New(globalLogger, globalPostgresPool, userService, taskService)
	router.Use(v1Handler.HandleRequestIDMiddleware)

	router.GET("/health", v1Handler.HandleHealthCheck)

	usersRouter := router.Group("/users")
	usersRouter.POST("/", v1Handler.HandleCreateUser)
	usersRouter.GET("/", v1Handler.HandleGetUsers)
	usersRouter.GET("/:user_id", v1Handler.HandleGetUser)
	usersRouter.PUT("/:user_id", v1Handler.HandleUpdateUser)
	usersRouter.DELETE("/:user_id", v1Handler.HandleDeleteUser)

	tasksRouter := router.Group("/tasks")
	tasksRouter.POST("/", v1Handler.HandleCreateTask)
	tasksRouter.GET("/", v1Handler.HandleGetTasks)
	tasksRouter.GET("/:task_id", v1Handler.HandleGetTask)
	tasksRouter.PUT("/:task_id", v1Handler.HandleUpdateTask)
	tasksRouter.DELETE("/:task_id", v1Handler.HandleDeleteTask)
}
