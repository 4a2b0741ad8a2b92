package jobs

import (
	"context"
	"time"

	"rentals/dto"
	"rentals/models"
	"rentals/services/logger"

	"github.com/robfig/cron/v3"
)

// PendingSource trả về các booking đang chờ admin xử lý
type PendingSource interface {
	PendingBookings(ctx context.Context) ([]models.Booking, error)
}

// DigestMailer gửi email tổng hợp cho admin
type DigestMailer interface {
	PendingDigest(ctx context.Context, bookings []models.Booking) (dto.DeliveryResult, error)
}

// InitCronJobs khởi tạo các cron jobs
func InitCronJobs(c *cron.Cron, digestSpec string, source PendingSource, mailer DigestMailer, log logger.Logger) error {
	// Mặc định chạy lúc 8h mỗi ngày
	_, err := c.AddFunc(digestSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := RunPendingDigest(ctx, source, mailer, log); err != nil {
			log.Error("Email tổng hợp booking pending thất bại: %v", err)
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	log.Info("Cron jobs initialized successfully (digest: %s)", digestSpec)
	return nil
}

// RunPendingDigest gửi danh sách booking pending; không gửi gì khi danh sách rỗng
func RunPendingDigest(ctx context.Context, source PendingSource, mailer DigestMailer, log logger.Logger) error {
	bookings, err := source.PendingBookings(ctx)
	if err != nil {
		return err
	}
	if len(bookings) == 0 {
		log.Debug("Không có booking pending, bỏ qua email tổng hợp")
		return nil
	}

	result, err := mailer.PendingDigest(ctx, bookings)
	if err != nil {
		return err
	}
	log.Info("Email tổng hợp %d booking pending: %s", len(bookings), result.Status)
	return nil
}
