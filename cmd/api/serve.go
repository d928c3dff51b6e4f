package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/cache"
	dbpkg "github.com/BruksfildServices01/clinic-scheduler/internal/db"
	"github.com/BruksfildServices01/clinic-scheduler/internal/handlers"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notification"
	"github.com/BruksfildServices01/clinic-scheduler/internal/payment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/routes"
	"github.com/BruksfildServices01/clinic-scheduler/internal/storage"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	log := a.log
	cfg := a.cfg

	store, err := a.registry(ctx)
	if err != nil {
		return err
	}

	// ------------------------------
	// Cache (opcional)
	// ------------------------------
	var doctors *cache.DoctorCache
	if rdb, err := dbpkg.NewRedis(ctx, cfg); err != nil {
		log.Warn("redis unavailable, doctor cache disabled", zap.Error(err))
	} else {
		a.onClose(func() { _ = rdb.Close() })
		doctors = cache.NewDoctorCache(rdb)
	}

	// ------------------------------
	// Notificações
	// ------------------------------
	queueClient := asynq.NewClient(a.queueRedis())
	a.onClose(func() { _ = queueClient.Close() })
	notifier := notification.NewQueue(queueClient)

	// ------------------------------
	// Imagens
	// ------------------------------
	images, err := storage.New(cfg)
	if err != nil {
		return err
	}

	// ------------------------------
	// Pagamentos
	// ------------------------------
	var (
		gateways []payment.Gateway
		webhook  handlers.WebhookParser
	)
	if cfg.StripeSecretKey != "" {
		s := payment.NewStripe(cfg.StripeSecretKey, cfg.StripeWebhookSecret)
		gateways = append(gateways, s)
		if cfg.StripeWebhookSecret != "" {
			webhook = s
		}
	}
	if cfg.MercadoPagoAccessToken != "" {
		mp, err := payment.NewMercadoPago(cfg.MercadoPagoAccessToken)
		if err != nil {
			return err
		}
		gateways = append(gateways, mp)
	}
	paymentGateways := payment.NewRegistry(gateways...)
	log.Info("payment gateways", zap.Strings("enabled", paymentGateways.Names()))

	// ------------------------------
	// Auditoria
	// ------------------------------
	auditDispatcher := audit.NewDispatcher(audit.New(a.db), log)
	a.onClose(auditDispatcher.Close)

	// ------------------------------
	// HTTP
	// ------------------------------
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:       a.db,
		Config:   cfg,
		Clock:    a.clock,
		Log:      log,
		Registry: store,
		Doctors:  doctors,
		Notifier: notifier,
		Images:   images,
		Gateways: paymentGateways,
		Stripe:   webhook,
		Audit:    auditDispatcher,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server running",
			zap.String("addr", cfg.Addr()),
			zap.String("registry", cfg.RegistryBackend),
			zap.String("timezone", cfg.Timezone),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}
