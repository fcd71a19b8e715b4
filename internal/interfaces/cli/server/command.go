// Package server implements the serve command: wiring, HTTP server
// lifecycle, and graceful shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	billingusecases "quokkalist/internal/application/billing/usecases"
	listingusecases "quokkalist/internal/application/listing/usecases"
	promotionusecases "quokkalist/internal/application/promotion/usecases"
	voteusecases "quokkalist/internal/application/vote/usecases"
	"quokkalist/internal/domain/vote"
	"quokkalist/internal/infrastructure/checkout"
	"quokkalist/internal/infrastructure/config"
	"quokkalist/internal/infrastructure/database"
	"quokkalist/internal/infrastructure/email"
	"quokkalist/internal/infrastructure/persistence/migrations"
	"quokkalist/internal/infrastructure/ratelimit"
	"quokkalist/internal/infrastructure/repository"
	"quokkalist/internal/infrastructure/scheduler"
	"quokkalist/internal/interfaces/http/handlers"
	"quokkalist/internal/interfaces/http/routes"
	"quokkalist/internal/shared/db"
	"quokkalist/internal/shared/logger"
)

func NewCommand() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(configFile)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "path to config file")
	return cmd
}

func run(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	log := logger.NewLogger()

	gormDB, err := database.Connect(&cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close(gormDB)

	if err := migrations.Migrate(gormDB); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	txManager := db.NewTransactionManager(gormDB)

	orderRepo := repository.NewOrderRepository(gormDB)
	promoRepo := repository.NewPromoCodeRepository(gormDB)
	windowRepo := repository.NewWindowRepository(gormDB)
	serverRepo := repository.NewServerRepository(gormDB)
	statsRepo := repository.NewStatsRepository(gormDB)
	voteRepo := repository.NewVoteRepository(gormDB)
	stateRepo := repository.NewVoteSystemStateRepository(gormDB)

	gateway := checkout.NewHostedGateway(&cfg.Checkout, log)
	receipts := email.NewSMTPReceiptSender(&cfg.Email, log)
	limiter := ratelimit.NewRedisRateLimiter(redisClient, log)

	successURL := cfg.Server.FrontendOrigin + "/billing/success?session_id={CHECKOUT_SESSION_ID}"
	cancelURL := cfg.Server.FrontendOrigin + "/billing/cancel"

	createCheckout := billingusecases.NewCreateCheckoutUseCase(
		orderRepo, promoRepo, windowRepo, serverRepo, gateway, txManager,
		receipts, cfg.Checkout.Currency, successURL, cancelURL, log)
	previewPromo := billingusecases.NewPreviewPromoCodeUseCase(promoRepo, log)
	settleCheckout := billingusecases.NewSettleCheckoutUseCase(
		orderRepo, windowRepo, promoRepo, gateway, txManager, receipts, log)
	listOrders := billingusecases.NewListOrdersUseCase(orderRepo, log)
	getOrderSummary := billingusecases.NewGetOrderSummaryUseCase(orderRepo, log)
	createPromoCode := billingusecases.NewCreatePromoCodeUseCase(promoRepo, log)
	setPromoActive := billingusecases.NewSetPromoCodeActiveUseCase(promoRepo, log)
	listPromoCodes := billingusecases.NewListPromoCodesUseCase(promoRepo, log)
	giftWindow := billingusecases.NewGiftWindowUseCase(
		orderRepo, windowRepo, serverRepo, txManager, cfg.Checkout.Currency, log)
	listAllOrders := billingusecases.NewListAllOrdersUseCase(orderRepo, log)

	getActiveWindow := promotionusecases.NewGetActiveWindowUseCase(windowRepo, log)
	listWindows := promotionusecases.NewListWindowsUseCase(windowRepo, log)

	trackStat := listingusecases.NewTrackStatUseCase(serverRepo, statsRepo, log)
	getStats := listingusecases.NewGetServerStatsUseCase(serverRepo, statsRepo, log)

	ensureReset := voteusecases.NewEnsureMonthlyResetUseCase(stateRepo, voteRepo, statsRepo, txManager, log)
	voteRules := vote.Rules{
		DailyLimit: cfg.Vote.DailyLimit,
		Cooldown:   time.Duration(cfg.Vote.CooldownMinutes) * time.Minute,
	}
	voteForServer := voteusecases.NewVoteForServerUseCase(
		serverRepo, statsRepo, voteRepo, ensureReset, txManager, voteRules, log)

	resetScheduler := scheduler.NewResetScheduler(
		ensureReset, time.Duration(cfg.Vote.ResetSweepHours)*time.Hour, log)
	resetScheduler.Start()
	defer resetScheduler.Stop()

	router := routes.Setup(&cfg.Server, cfg.Auth.JWT.Secret, limiter, routes.Handlers{
		Billing: handlers.NewBillingHandler(createCheckout, previewPromo, settleCheckout, listOrders, getOrderSummary),
		Vote:    handlers.NewVoteHandler(voteForServer),
		Listing: handlers.NewListingHandler(trackStat, getStats, getActiveWindow, listWindows),
		Admin:   handlers.NewAdminHandler(createPromoCode, setPromoActive, listPromoCodes, giftWindow, listAllOrders, listWindows),
	}, log)

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		log.Infow("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Infow("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Infow("server stopped")
	return nil
}
