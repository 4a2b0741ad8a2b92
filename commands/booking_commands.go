package commands

import (
	"context"

	"rentals/models"
)

// BookingCommand định nghĩa interface cho các command
type BookingCommand interface {
	Execute(ctx context.Context) error
}

// BookingWriter là phần lưu trữ mà các command cần
type BookingWriter interface {
	Create(ctx context.Context, booking *models.Booking) error
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) (models.BookingStatus, *models.Booking, error)
	Delete(ctx context.Context, id string) (*models.Booking, error)
}

// CreateBookingCommand command để tạo booking mới
type CreateBookingCommand struct {
	booking *models.Booking
	store   BookingWriter
}

func NewCreateBookingCommand(booking *models.Booking, store BookingWriter) *CreateBookingCommand {
	return &CreateBookingCommand{
		booking: booking,
		store:   store,
	}
}

func (c *CreateBookingCommand) Execute(ctx context.Context) error {
	return c.store.Create(ctx, c.booking)
}

// UpdateBookingStatusCommand command để đổi trạng thái; Transition có sau khi Execute
type UpdateBookingStatusCommand struct {
	id         string
	status     models.BookingStatus
	store      BookingWriter
	Transition models.Transition
	Booking    *models.Booking
}

func NewUpdateBookingStatusCommand(id string, status models.BookingStatus, store BookingWriter) *UpdateBookingStatusCommand {
	return &UpdateBookingStatusCommand{
		id:     id,
		status: status,
		store:  store,
	}
}

func (c *UpdateBookingStatusCommand) Execute(ctx context.Context) error {
	before, updated, err := c.store.UpdateStatus(ctx, c.id, c.status)
	if err != nil {
		return err
	}
	c.Transition = models.Transition{From: before, To: c.status}
	c.Booking = updated
	return nil
}

// DeleteBookingCommand command để xóa booking
type DeleteBookingCommand struct {
	id      string
	store   BookingWriter
	Deleted *models.Booking
}

func NewDeleteBookingCommand(id string, store BookingWriter) *DeleteBookingCommand {
	return &DeleteBookingCommand{
		id:    id,
		store: store,
	}
}

func (c *DeleteBookingCommand) Execute(ctx context.Context) error {
	deleted, err := c.store.Delete(ctx, c.id)
	if err != nil {
		return err
	}
	c.Deleted = deleted
	return nil
}
