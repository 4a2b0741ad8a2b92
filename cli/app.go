package cli

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"rentals/config"
	"rentals/controllers"
	"rentals/jobs"
	"rentals/repository"
	"rentals/routes"
	"rentals/services"
	"rentals/services/logger"
	"rentals/services/notification"

	"github.com/olahol/melody"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// runtime gom các kết nối dùng chung của một lệnh
type runtime struct {
	cfg     *config.AppConfig
	log     logger.Logger
	db      *gorm.DB
	cleanup []func()
}

func (r *runtime) close() {
	for i := len(r.cleanup) - 1; i >= 0; i-- {
		r.cleanup[i]()
	}
}

// bootstrap nạp cấu hình, dựng logger và kết nối database
func bootstrap(envFile string) (*runtime, error) {
	var (
		cfg *config.AppConfig
		err error
	)
	if envFile != "" {
		cfg, err = config.LoadConfig(envFile)
	} else {
		cfg, err = config.LoadConfig()
	}
	if err != nil {
		return nil, err
	}

	log, closeLog, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg, log: log, cleanup: []func(){closeLog}}
	services.SetMapsLogger(log)

	db, err := config.ConnectDB(cfg.Database, log)
	if err != nil {
		rt.close()
		return nil, err
	}
	rt.db = db
	rt.cleanup = append(rt.cleanup, func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return rt, nil
}

func (r *runtime) authService() *services.AuthService {
	return services.NewAuthService(services.AuthServiceOptions{
		Users:          repository.NewUserRepository(r.db),
		Tokens:         services.NewTokenService(r.cfg.Auth.JWTSecret, r.cfg.Auth.SessionTTL),
		GoogleClientID: r.cfg.Auth.GoogleClientID,
		Logger:         r.log,
	})
}

// mailService chọn sender/publisher theo MAIL_DELIVERY
func (r *runtime) mailService(conn *amqp.Connection) (*services.MailService, error) {
	opts := services.MailServiceOptions{Config: r.cfg.Mail, Logger: r.log}
	if r.cfg.Mail.SMTPHost != "" {
		opts.Sender = services.NewSMTPSender(r.cfg.Mail)
	}
	if conn != nil {
		publisher, err := services.NewAMQPMailPublisher(conn, r.cfg.AMQP.Queue)
		if err != nil {
			return nil, err
		}
		r.cleanup = append(r.cleanup, func() { _ = publisher.Close() })
		opts.Publisher = publisher
	}
	return services.NewMailService(opts), nil
}

// serve dựng toàn bộ ứng dụng HTTP, cron và mail worker rồi chạy tới khi nhận tín hiệu dừng
func serve(ctx context.Context, rt *runtime) error {
	cfg, log := rt.cfg, rt.log

	rdb, err := config.ConnectRedis(ctx, cfg.Redis, log)
	if err != nil {
		log.Warn("Không kết nối được Redis, tắt cache: %v", err)
		rdb = nil
	}
	if rdb != nil {
		rt.cleanup = append(rt.cleanup, func() { _ = rdb.Close() })
	}
	cache := services.NewCache(rdb)

	cld, err := config.ConnectCloudinary(cfg.Cloudinary, log)
	if err != nil {
		return err
	}

	conn, err := config.ConnectAMQP(cfg.AMQP, log)
	if err != nil {
		return fmt.Errorf("connect rabbitmq: %w", err)
	}
	if conn != nil {
		rt.cleanup = append(rt.cleanup, func() { _ = conn.Close() })
	}

	apartments := repository.NewApartmentRepository(rt.db)
	bookings := repository.NewBookingRepository(rt.db)
	overrides := repository.NewAvailabilityRepository(rt.db)

	mailer, err := rt.mailService(conn)
	if err != nil {
		return err
	}

	m := melody.New()
	notifier := notification.NewMelodyService(m)

	resolver := services.NewAvailabilityResolver(services.AvailabilityResolverOptions{
		Apartments: apartments,
		Bookings:   bookings,
		Overrides:  overrides,
		Logger:     log,
	})
	searchService := services.NewSearchService(resolver, cache, log)
	apartmentService := services.NewApartmentService(services.ApartmentServiceOptions{
		Apartments: apartments,
		Bookings:   bookings,
		Overrides:  overrides,
		Cache:      cache,
		Logger:     log,
	})
	bookingService := services.NewBookingService(services.BookingServiceOptions{
		Bookings:   bookings,
		Apartments: apartments,
		Mailer:     mailer,
		Notifier:   notifier,
		Cache:      cache,
		Logger:     log,
	})
	var storage services.ImageStorage = services.NewCloudinaryStorage(cld, cfg.Cloudinary.Folder)
	imageService := services.NewImageService(apartments, storage, cache, log)
	overrideService := services.NewOverrideService(overrides, apartments, cache, log)
	authService := rt.authService()

	router := config.InitApp(cfg)
	routes.SetupRoutes(router, routes.Controllers{
		Apartments: controllers.NewApartmentController(controllers.ApartmentControllerOptions{
			Search:     searchService,
			Apartments: apartmentService,
			Logger:     log,
		}),
		AdminApartments: controllers.NewAdminApartmentController(controllers.AdminApartmentControllerOptions{
			Apartments: apartmentService,
			Images:     imageService,
			Overrides:  overrideService,
			Logger:     log,
		}),
		Bookings:      controllers.NewBookingController(bookingService, log),
		Auth:          controllers.NewAuthController(authService, searchService, cfg.Auth.SecureCookies, log),
		Locale:        controllers.NewLocaleController(log),
		Notifications: controllers.NewNotificationController(m, notifier, log),
	}, authService, log)

	c := cron.New()
	if err := jobs.InitCronJobs(c, cfg.Mail.DigestSpec, bookingService, mailer, log); err != nil {
		return fmt.Errorf("failed to initialize cron jobs: %w", err)
	}
	defer c.Stop()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if conn != nil && cfg.Mail.SMTPHost != "" {
		worker := jobs.NewMailWorker(conn, cfg.AMQP.Queue, services.NewSMTPSender(cfg.Mail), log)
		go func() {
			if err := worker.Run(ctx); err != nil {
				log.Error("Mail worker dừng: %v", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTP.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Info("Server starting on port %s...", cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = m.Close()
	log.Info("Đang tắt server")
	return srv.Shutdown(shutdownCtx)
}
