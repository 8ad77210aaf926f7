package cmd

import (
	"attendance/config"
	"attendance/db"
	"attendance/handlers"
	"attendance/logging"
	"attendance/processing"
	"attendance/push"
	"attendance/storage"
	"attendance/utils"
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	sessionCookieName = "token"
	shutdownTimeout   = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the attendance HTTP server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&config.BIND_ADDRESS, "bind", config.BIND_ADDRESS, "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logging.L()
	if err := openDB(); err != nil {
		return err
	}
	recognizer, err := loadRecognizer()
	if err != nil {
		return err
	}
	pool := processing.NewPool(recognizer, config.RECOGNITION_WORKERS, config.RECOGNITION_TIMEOUT)
	defer pool.Close()

	snapshots, err := storage.Init()
	if err != nil {
		return err
	}
	events := &push.Dispatcher{}
	hub := push.NewHub()
	events.Add(hub)
	if config.MQTT_HOST != "" {
		publisher, err := push.NewMQTTPublisher(push.MQTTConfigFromEnv())
		if err != nil {
			return err
		}
		defer publisher.Close()
		events.Add(publisher)
	}
	services := &handlers.Services{
		Recognition: pool,
		Snapshots:   snapshots,
		Events:      events,
		Hub:         hub,
	}

	router := newRouter(services)
	log.Info("server starting",
		zap.String("bind", config.BIND_ADDRESS),
		zap.String("tls_domains", config.TLS_DOMAINS),
		zap.Int("recognition_workers", pool.Workers()),
		zap.Bool("snapshots", snapshots != nil),
		zap.Bool("mqtt", config.MQTT_HOST != ""))

	ctx := cmd.Context()
	if config.TLS_DOMAINS != "" {
		err = autotls.RunWithContext(ctx, router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = listenAndServe(ctx, router)
	}
	log.Info("server stopped", zap.Error(err))
	return err
}

func newRouter(services *handlers.Services) *gin.Engine {
	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), utils.RequestLogger)
	_ = router.SetTrustedProxies([]string{})
	router.MaxMultipartMemory = int64(config.MAX_UPLOAD_MB) << 20
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	origins := config.CorsOrigins()
	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", utils.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 1 && origins[0] == "*" {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	} else {
		corsConfig.AllowOrigins = origins
	}
	router.Use(cors.New(corsConfig))

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(config.SESSION_KEY))
	cookieStore.Options(sessions.Options{Path: "/", MaxAge: config.SESSION_MAX_AGE, HttpOnly: true})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPathsRegexs([]string{`/pdf$`, `/feed$`})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler())

	handlers.Register(router, services)
	return router
}

func listenAndServe(ctx context.Context, handler http.Handler) error {
	srv := &http.Server{
		Addr:              config.BIND_ADDRESS,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()
	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
