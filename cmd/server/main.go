package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"jo3qma.com/listify/internal/config"
	"jo3qma.com/listify/internal/handler"
	"jo3qma.com/listify/internal/infrastructure/ebay"
	"jo3qma.com/listify/internal/logger"
	"jo3qma.com/listify/internal/usecase"
)

func main() {
	startedAt := time.Now()
	log := logger.New("listify")

	cfg, err := config.Load()
	if err != nil {
		log.Error("❌ failed to load config", slog.Any("err", err))
		os.Exit(1)
	}

	// 依存関係の組み立て（依存性注入）
	// DBの代わりにScraperを注入することで、腐敗防止層のパターンを実現
	salesScraper := ebay.NewEbaySoldScraper(ebay.Options{
		BaseURL: cfg.EbayBaseURL,
		Timeout: cfg.RequestTimeout,
		Proxy: ebay.ProxyOptions{
			URL:      cfg.ProxyURL,
			User:     cfg.ProxyUser,
			Password: cfg.ProxyPassword,
		},
		MaxRetries:       cfg.MaxRetries,
		RetryDelay:       cfg.RetryDelay,
		HeadlessFallback: cfg.HeadlessFallback,
		ChromeBin:        cfg.ChromeBin,
	}, log) // repository.SoldListingRepository

	uc := usecase.NewSalesUsecase(salesScraper)
	h := handler.NewSellerSalesHandler(uc, log)

	// Connectハンドラーの登録
	path, salesHandler := handler.NewSellerSalesServiceHandler(h,
		connect.WithInterceptors(handler.NewAuthInterceptor(cfg.APISecret)),
	)
	router := handler.NewRouter(log, path, salesHandler, startedAt)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// スクレイピングの再試行を含めて応答できるよう長めに取る
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("🚀 listify listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("❌ server failed to start", slog.Any("err", err))
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	log.Info("🛑 shutting down server...")

	// グレースフルシャットダウン
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("❌ server forced to shutdown", slog.Any("err", err))
		os.Exit(1)
	}

	log.Info("✅ server exited")
}
