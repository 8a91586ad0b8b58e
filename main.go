package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rental-admin/config"
	"rental-admin/controllers"
	"rental-admin/routes"
	"rental-admin/services"
	"rental-admin/utils"
	"rental-admin/views"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile string
	root := &cobra.Command{
		Use:           "rental-admin",
		Short:         "Administration console for the rental management backend",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional .env file to load")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the console HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := setup(envFile)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update the client storage tables",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := setup(envFile)
			if err != nil {
				return err
			}
			db, err := config.ConnectStorage(cfg.Storage)
			if err != nil {
				return err
			}
			defer config.Close(db)
			if err := config.Migrate(db); err != nil {
				return err
			}
			utils.Logger.Info("✅ client storage migrated")
			return nil
		},
	})
	return root
}

func setup(envFile string) (*config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}
	utils.InitLogger("rental-admin", cfg.LogLevel)
	gin.SetMode(cfg.GinMode)
	return cfg, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	db, err := config.ConnectStorage(cfg.Storage)
	if err != nil {
		return err
	}
	defer config.Close(db)
	if err := config.Migrate(db); err != nil {
		return err
	}
	utils.Logger.Info("✅ client storage ready")

	pages, err := views.Load()
	if err != nil {
		return err
	}

	app := &controllers.Console{
		Client:        services.NewRestClient(cfg.APIBaseURL, cfg.RequestTimeout),
		Views:         pages,
		ToastPolicy:   services.ToastPolicy(cfg.Toast.Policy),
		ToastDuration: cfg.Toast.Duration,
		Now:           time.Now,
	}
	router := routes.SetupRouter(cfg, db, app)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.Logger.Infof("🚀 Console listening on %s (backend %s)", addr, cfg.APIBaseURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	case <-ctx.Done():
	}
	utils.Logger.Warn("⚠️  Shutdown signal received, shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	utils.Logger.Info("✅ Server stopped gracefully")
	return nil
}
