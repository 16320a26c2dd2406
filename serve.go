package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estate-site/pkg/config"
	"estate-site/pkg/handlers"
	"estate-site/pkg/services"
	"estate-site/web"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the website",
	RunE:  runServe,
}

func newSanityClient() *services.SanityClient {
	return services.NewSanityClient(services.SanityOptions{
		ProjectID:  config.SanityProjectID,
		Dataset:    config.SanityDataset,
		APIVersion: config.SanityAPIVersion,
		Token:      config.SanityToken,
		UseCDN:     config.SanityUseCDN,
	})
}

func runServe(cmd *cobra.Command, args []string) error {
	if config.SanityProjectID == "" {
		return errors.New("SANITY_PROJECT_ID is not set")
	}
	if !verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	info, err := config.LoadSite(config.SiteFile)
	if err != nil {
		return err
	}

	client := newSanityClient()
	content := services.NewContentService(client, services.NewQueryCache(config.CacheTTL), logger)
	images := services.NewImageBuilder(client.ProjectID(), client.Dataset())
	pages := services.NewPageStore(config.ContentPath)
	legal, err := pages.List()
	if err != nil {
		return fmt.Errorf("load legal pages: %w", err)
	}
	logger.Info("legal pages loaded", zap.Int("count", len(legal)))

	mailer := services.NewEmailRelay(services.EmailRelayOptions{
		ServiceID:  config.EmailServiceID,
		TemplateID: config.EmailTemplateID,
		PublicKey:  config.EmailPublicKey,
		PrivateKey: config.EmailPrivateKey,
	})
	if !mailer.Enabled() {
		logger.Warn("email relay is not configured; contact and viewing forms will fail")
	}
	forms := services.NewFormsBackend(config.FormsEndpoint, nil)
	if config.SanityToken == "" {
		logger.Warn("SANITY_TOKEN is not set; sell requests and comments cannot be stored")
	}

	leads := services.NewLeadService(services.LeadOptions{
		Mailer:  mailer,
		Forms:   forms,
		Store:   client,
		Inbox:   config.LeadInbox,
		Workers: config.NotifyWorkers,
		Logger:  logger,
	})
	defer leads.Close()

	tmpl, err := handlers.ParseTemplates(web.FS, handlers.TemplateFuncs(images, services.NewRichText(images)))
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}

	site := &handlers.Site{
		Content:       content,
		Leads:         leads,
		Pages:         pages,
		Info:          info,
		Logger:        logger,
		BaseURL:       config.GetAppURL(),
		WebhookSecret: config.WebhookSecret,
	}

	var admin *handlers.Admin
	if config.OauthConf.ClientID != "" {
		admin = &handlers.Admin{
			OAuth:   config.OauthConf,
			IsAdmin: config.IsAdmin,
			Leads:   content,
			Site:    site,
		}
	} else {
		logger.Info("GITHUB_CLIENT_ID is not set; admin dashboard disabled")
	}

	secret := config.SessionSecret
	if secret == "" {
		secret = uuid.NewString()
		logger.Warn("SESSION_SECRET is not set; admin sessions will not survive a restart")
	}

	router := handlers.NewRouter(handlers.RouterOptions{
		Site:          site,
		Admin:         admin,
		Templates:     tmpl,
		Static:        web.Static(),
		SessionSecret: secret,
	})

	srv := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("dataset", client.Dataset()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logger.Info("shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
