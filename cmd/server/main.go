// @title           AgriGuru Crop Advisory API
// @version         1.0
// @description     REST API рекомендательной системы культур. Рекомендации строятся по культурам района, параметрам почвы и климата, бюджету за тонну и прогнозу погоды.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.email  akozadaev@inbox.ru
// @contact.url    https://github.com/akozadaev/agriguru

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @schemes   http https
package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	_ "github.com/akozadaev/agriguru/docs" // swagger docs
	"github.com/akozadaev/agriguru/internal/advisor"
	"github.com/akozadaev/agriguru/internal/config"
	"github.com/akozadaev/agriguru/internal/handlers"
	"github.com/akozadaev/agriguru/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogJSON)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Загрузка данных и обучение модели выполняются один раз при старте
	bootCtx, cancelBoot := context.WithTimeout(context.Background(), 5*time.Minute)
	svc, err := advisor.Bootstrap(bootCtx, cfg, logger)
	cancelBoot()
	if err != nil {
		if errors.Is(err, advisor.ErrDataUnavailable) {
			logger.Fatal("dataset unavailable, please upload the data files", zap.Error(err))
		}
		logger.Fatal("error initializing advisor", zap.Error(err))
	}
	defer svc.Close()

	h := handlers.NewHandlers(svc, logger)
	router := handlers.NewRouter(h)

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	))

	// Настройка сервера
	srv := &http.Server{
		Addr:         ":" + cfg.AppPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var redirect *http.Server
	if cfg.DevMode {
		go func() {
			logger.Info("server starting", zap.String("port", cfg.AppPort))
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Fatal("server failed to start", zap.Error(err))
			}
		}()
	} else {
		// Production режим: HTTPS с сертификатом ACME
		certManager := autocert.Manager{
			Prompt:     autocert.AcceptTOS,
			HostPolicy: autocert.HostWhitelist(cfg.Domain),
			Cache:      autocert.DirCache(cfg.CertDir),
		}
		srv.Addr = ":443"
		srv.TLSConfig = &tls.Config{
			GetCertificate: certManager.GetCertificate,
			MinVersion:     tls.VersionTLS12,
		}

		// HTTP редирект на HTTPS и ответ на ACME challenge
		redirect = &http.Server{
			Addr:              ":80",
			Handler:           certManager.HTTPHandler(nil),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logger.Info("HTTP redirect server starting", zap.String("addr", redirect.Addr))
			if err := redirect.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("HTTP redirect server error", zap.Error(err))
			}
		}()
		go func() {
			logger.Info("HTTPS server starting", zap.String("domain", cfg.Domain))
			if err := srv.ListenAndServeTLS("", ""); err != nil && err != http.ErrServerClosed {
				logger.Fatal("server failed to start", zap.Error(err))
			}
		}()
	}

	// Ожидание сигнала для graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if redirect != nil {
		if err := redirect.Shutdown(ctx); err != nil {
			logger.Error("redirect server forced to shutdown", zap.Error(err))
		}
	}
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited")
}
