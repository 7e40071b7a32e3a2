package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/breachalert/breachalert/pkg/cli/config"
	controller "github.com/breachalert/breachalert/pkg/controller/http"
	"github.com/breachalert/breachalert/pkg/repository"
	"github.com/breachalert/breachalert/pkg/service/advisor"
	"github.com/breachalert/breachalert/pkg/usecase"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg  config.Server
		breachCfg  config.BreachDirectory
		catalogCfg config.Catalog
		slackCfg   config.Slack
		geminiCfg  config.Gemini
	)

	flags := joinFlags(
		serverCfg.Flags(),
		breachCfg.Flags(),
		catalogCfg.Flags(),
		slackCfg.Flags(),
		geminiCfg.Flags(),
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Start HTTP server",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting breachalert server",
				slog.String("addr", serverCfg.Addr),
				slog.Any("breachdirectory", breachCfg),
				slog.Any("slack", slackCfg),
				slog.Any("gemini", geminiCfg),
			)

			// All state is in-process; nothing survives a restart
			repo := repository.NewMemory()
			defer repo.Close()

			catalog, err := catalogCfg.Configure()
			if err != nil {
				return err
			}

			source := breachCfg.Configure(catalog, logger)
			notifier := slackCfg.ConfigureOptional(logger)

			scanOpts := []usecase.ScanOption{}
			if notifier != nil {
				scanOpts = append(scanOpts, usecase.WithNotifier(notifier))
			}
			if llmClient := geminiCfg.ConfigureOptional(ctx, logger); llmClient != nil {
				scanOpts = append(scanOpts, usecase.WithAdvisor(advisor.New(llmClient)))
			}

			authUC := usecase.NewAuth(repo)
			emailsUC := usecase.NewEmails(repo)
			scanUC := usecase.NewScan(repo, source, scanOpts...)

			server, err := controller.NewServer(
				ctx,
				serverCfg.Addr,
				authUC,
				emailsUC,
				scanUC,
				breachCfg.IsConfigured(),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}
