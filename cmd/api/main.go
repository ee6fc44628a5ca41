package main

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/nycbookings/api/internal/config"
	"github.com/nycbookings/api/internal/logging"
	"github.com/nycbookings/api/internal/repository/postgres"
	"github.com/nycbookings/api/internal/service"
	transporthttp "github.com/nycbookings/api/internal/transport/http"
	"github.com/nycbookings/api/internal/transport/mail"
	"github.com/nycbookings/api/internal/util"
)

func main() {
	cfg := config.Load()

	if cfg.LogstashTCPAddr != "" {
		writer, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err != nil {
			log.Printf("logstash mirror disabled: %v", err)
		} else {
			defer writer.Close()
			log.SetOutput(io.MultiWriter(os.Stdout, writer))
		}
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer db.Close()

	tokens, err := util.NewJWTManager(cfg.JWTSecret, util.SessionTTL)
	if err != nil {
		log.Fatalf("configure jwt: %v", err)
	}

	userRepo := postgres.NewUserRepo(db)
	propertyRepo := postgres.NewPropertyRepo(db)
	wishlistRepo := postgres.NewWishlistRepo(db)
	referralRepo := postgres.NewReferralRepo(db)
	viewStatsRepo := postgres.NewPropertyViewStatsRepo(db)

	mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	if !mailer.Configured() {
		log.Println("smtp not configured, outgoing mail will fail")
	}
	var referralNotifier service.ReferralMailer
	if cfg.ReferralNotifyTo != "" {
		referralNotifier = mail.NewReferralNotifier(mailer, cfg.ReferralNotifyTo)
	} else {
		log.Println("REFERRAL_NOTIFY_EMAIL unset, referral notifications disabled")
	}

	var esClient *elasticsearch.Client
	if cfg.ElasticsearchURL != "" {
		esClient, err = elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{cfg.ElasticsearchURL},
		})
		if err != nil {
			log.Printf("elasticsearch disabled: %v", err)
			esClient = nil
		}
	}

	authService := service.NewAuthService(userRepo, tokens, mailer, cfg.FrontendBaseURL)
	propertyService := service.NewPropertyService(propertyRepo)
	wishlistService := service.NewWishlistService(wishlistRepo)
	referralService := service.NewReferralService(referralRepo, referralNotifier)
	viewStatsService := service.NewPropertyViewStatsService(viewStatsRepo, propertyRepo, esClient, service.PropertyViewStatsConfig{
		LogIndex:       cfg.ViewStatsLogIndex,
		CacheTTL:       cfg.ViewStatsCacheTTL,
		RequestTimeout: cfg.ViewStatsESTimeout,
	})

	if viewStatsService.Enabled() {
		rollupCtx, cancelRollup := context.WithCancel(context.Background())
		defer cancelRollup()
		go viewStatsService.RunRollup(rollupCtx, cfg.ViewStatsCacheTTL)
	}

	e := transporthttp.NewRouter(cfg.AllowOrigins)
	transporthttp.RegisterSwagger(e)
	transporthttp.RegisterAuth(e, authService)
	transporthttp.RegisterProperties(e, propertyService)
	transporthttp.RegisterAdminProperties(e, propertyService, authService)
	transporthttp.RegisterWishlist(e, wishlistService, authService)
	transporthttp.RegisterReferral(e, referralService)
	transporthttp.RegisterViewStats(e, viewStatsService, propertyService, authService)

	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
