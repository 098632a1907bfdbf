package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/promissoria/backend/internal/auth"
	"github.com/promissoria/backend/internal/config"
	v1 "github.com/promissoria/backend/internal/controllers/v1"
	"github.com/promissoria/backend/internal/jobs"
	"github.com/promissoria/backend/internal/models"
	"github.com/promissoria/backend/internal/router"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

//	@title			Promissória
//	@version		1.0
//	@description	The backend for promissory notes and carnês
//	@license.name	AGPL-3.0-or-later
//	@license.url	https://www.gnu.org/licenses/agpl-3.0.en.html

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization

//	@BasePath	/
func main() {
	// gin uses debug as the default mode, we use release for
	// security reasons
	ginMode, ok := os.LookupEnv("GIN_MODE")
	if !ok {
		gin.SetMode("release")
	} else {
		gin.SetMode(ginMode)
	}

	// Log format can be explicitly set.
	// If it is not set, it defaults to human readable for development
	// and JSON for release
	logFormat, ok := os.LookupEnv("LOG_FORMAT")
	output := io.Writer(os.Stdout)
	if (!ok && gin.IsDebugging()) || (ok && logFormat == "human") {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if gin.IsDebugging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(output).With().Timestamp().Logger()

	cfg, err := config.New()
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	// Connect to the database
	if cfg.DBHost != "" {
		err = models.ConnectPostgres(cfg.PostgresDSN())
	} else {
		err = os.MkdirAll(filepath.Dir(cfg.DBPath), os.ModePerm)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}

		err = models.Connect(cfg.DBPath)
	}
	if err != nil {
		log.Fatal().Msg(err.Error())
	}

	if cfg.AdminEmail != "" {
		err = models.EnsureAdmin(models.DB, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
	}

	stopJobs, err := jobs.Start(models.DB, cfg.PlanExpirySchedule)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer stopJobs()

	r, teardown, err := router.Config(cfg.APIURL)
	if err != nil {
		log.Fatal().Msg(err.Error())
	}
	defer teardown()

	co := v1.Controller{
		Issuer: auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Defaults: models.Settings{
			FreeClientLimit: cfg.Limits.Free,
			ProClientLimit:  cfg.Limits.Pro,
			SupportPhone:    cfg.SupportPhone,
		},
	}
	router.AttachRoutes(co, r.Group("/"))

	port, ok := os.LookupEnv("PORT")
	if !ok {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("address", srv.Addr).Msg("Listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msg(err.Error())
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Msgf("Server forced to shutdown: %s", err.Error())
	}
}
