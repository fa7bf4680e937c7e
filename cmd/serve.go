package main

import (
	"artisan/internal/account"
	"artisan/internal/api"
	"artisan/internal/api/handler/v1handler"
	"artisan/internal/artisan"
	"artisan/internal/chat"
	"artisan/internal/config"
	"artisan/internal/delivery"
	"artisan/internal/notification"
	"artisan/internal/portfolio"
	"artisan/internal/profile"
	"artisan/internal/ranking"
	"artisan/internal/worker"
	"artisan/pkg/broadcast"
	"artisan/pkg/broadcast/kafka"
	"artisan/pkg/logger"
	"artisan/pkg/media"
	"artisan/pkg/media/local"
	"artisan/pkg/messaging/sendchamp"
	"artisan/pkg/messaging/smtpmail"
	"artisan/pkg/messaging/twilio"
	"artisan/pkg/storage/postgres"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/riverqueue/river"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"riverqueue.com/riverui"
)

const providerTimeout = 15 * time.Second

func getPublisher(ctx context.Context, cfg *config.Config) broadcast.Publisher {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Info(ctx, "no kafka brokers configured, chat events will not be published")

		return broadcast.Noop{}
	}

	return kafka.New(cfg.Kafka.Brokers, cfg.Kafka.Topic)
}

func setupServices(cfg *config.Config, pgsql *postgres.PgSQL, publisher broadcast.Publisher) v1handler.Deps {
	store := local.New(cfg.Media.Root)
	resolver := media.NewResolver(cfg.Media.BaseURL)
	deliveryOpts := delivery.Options{
		MaxAttempts:       cfg.Worker.MaxAttempts,
		OTPResendInterval: cfg.OTP.ResendInterval,
	}

	tokens, err := account.NewTokenIssuer(cfg.JWT.PrivateKey, cfg.JWT.TTL)
	if err != nil {
		logger.Fatal(context.Background(), "could not create token issuer", zap.Error(err))
	}

	return v1handler.Deps{
		Account: account.New(pgsql, tokens, account.Options{
			AppName:    cfg.AppName,
			AdminEmail: cfg.SMTP.AdminEmail,
			OTPTTL:     cfg.OTP.TTL,
			Delivery:   deliveryOpts,
		}),
		Profile: profile.New(pgsql, store, profile.Options{
			MaxDimension: cfg.Media.MaxDimension,
			MaxBytes:     cfg.Media.MaxBytes,
			JPEGQuality:  cfg.Media.ProfileQuality,
		}),
		Portfolio: portfolio.New(pgsql, store, portfolio.Options{
			MaxDimension: cfg.Media.MaxDimension,
			MaxBytes:     cfg.Media.MaxBytes,
			JPEGQuality:  cfg.Media.PortfolioQuality,
			Resolver:     resolver,
		}),
		Notification: notification.New(pgsql, notification.Options{Delivery: deliveryOpts}),
		Discovery:    artisan.New(pgsql, ranking.NewProjector(resolver, cfg.Media.DefaultAvatar)),
		Chat:         chat.New(pgsql, publisher, chat.Options{Resolver: resolver}),
		Resolver:     resolver,
	}
}

func setupWorkers(ctx context.Context, cfg *config.Config, pgsql *postgres.PgSQL) *river.Client[pgx.Tx] {
	httpClient := &http.Client{Timeout: providerTimeout}

	whatsapp := twilio.New(httpClient, twilio.Options{
		AccountSID:       cfg.Twilio.AccountSID,
		AuthToken:        cfg.Twilio.AuthToken,
		WhatsAppFrom:     cfg.Twilio.WhatsAppFrom,
		ContentSID:       cfg.Twilio.ContentSID,
		VerifyServiceSID: cfg.Twilio.VerifyServiceSID,
	})
	mailer, err := smtpmail.New(smtpmail.Options{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		AppName:  cfg.AppName,
		SiteURL:  cfg.AppURL,
	})
	if err != nil {
		logger.Fatal(ctx, "could not create mailer", zap.Error(err))
	}

	client, err := worker.Start(ctx, pgsql.Pool, worker.Dependencies{
		WhatsApp: whatsapp,
		SMS:      sendchamp.New(httpClient, cfg.SendChamp.APIKey, cfg.SendChamp.SenderName, ""),
		Verifier: whatsapp,
		Mailer:   mailer,
	}, worker.Options{
		MaxWorkers:    cfg.Worker.MaxWorkers,
		RatePerSecond: cfg.Worker.RatePerSecond,
		AppName:       cfg.AppName,
	})
	if err != nil {
		logger.Fatal(ctx, "could not start workers", zap.Error(err))
	}

	return client
}

func setupRiverUI(ctx context.Context, client *river.Client[pgx.Tx]) http.Handler {
	ui, err := riverui.NewHandler(&riverui.HandlerOpts{
		Endpoints: riverui.NewEndpoints(client, nil),
		Logger:    slog.New(zapslog.NewHandler(logger.Get(ctx).Core())),
		Prefix:    "/riverui",
	})
	if err != nil {
		logger.Fatal(ctx, "could not create river ui", zap.Error(err))
	}
	if err := ui.Start(ctx); err != nil {
		logger.Fatal(ctx, "could not start river ui", zap.Error(err))
	}

	return ui
}

func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) func(ctx context.Context) {
	server, err := api.NewServer(deps, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and background delivery workers",
		Run: func(cmd *cobra.Command, args []string) {
			// cancelled on SIGINT and SIGTERM
			ctx := cmd.Context()

			pgsql, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			publisher := getPublisher(ctx, cfg)
			defer func() {
				if err := publisher.Close(); err != nil {
					logger.Warn(ctx, "could not close chat publisher", zap.Error(err))
				}
			}()

			deps := api.Deps{Deps: setupServices(cfg, pgsql, publisher)}

			var riverClient *river.Client[pgx.Tx]
			if cfg.Worker.Enabled {
				riverClient = setupWorkers(ctx, cfg, pgsql)
				deps.RiverUI = setupRiverUI(ctx, riverClient)
			}

			stopWebserver := setupServer(ctx, cfg, deps)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)

			if riverClient != nil {
				logger.Info(shutdownCtx, "stopping workers...")
				if err := riverClient.Stop(shutdownCtx); err != nil {
					logger.Error(shutdownCtx, "could not stop workers", zap.Error(err))
				}
			}
		},
	}

	return cmd
}
