package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	apperrors "rentals/errors"
	"rentals/models"
	"rentals/testutil"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMissingTable(t *testing.T) {
	assert.True(t, isMissingTable(&pgconn.PgError{Code: "42P01", Message: `relation "apartment_availability" does not exist`}))
	assert.False(t, isMissingTable(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isMissingTable(errors.New("no such table: apartment_availability")))
	assert.False(t, isMissingTable(errors.New("connection refused")))
}

func TestTranslateMalformedID(t *testing.T) {
	malformed := fmt.Errorf("find apartment: %w", &pgconn.PgError{Code: "22P02", Message: `invalid input syntax for type uuid: "abc"`})

	assert.ErrorIs(t, translate(malformed, apperrors.ErrApartmentNotFound), apperrors.ErrApartmentNotFound)
	assert.ErrorIs(t, translate(malformed, apperrors.ErrBookingNotFound), apperrors.ErrBookingNotFound)
	assert.Equal(t, malformed, translate(malformed, nil))
	assert.True(t, isMalformedID(malformed))
	assert.False(t, isMalformedID(&pgconn.PgError{Code: "42P01"}))
	assert.False(t, isMalformedID(errors.New("invalid input")))
}

func TestListBookableFiltersCapacityAndActive(t *testing.T) {
	db := testutil.NewDB(t, testutil.AllModels()...)
	repo := NewApartmentRepository(db)
	now := time.Now()

	older := testutil.SeedApartment(t, db, testutil.WithGuests(4), testutil.CreatedAt(now.Add(-2*time.Hour)))
	newer := testutil.SeedApartment(t, db, testutil.WithGuests(6), testutil.CreatedAt(now.Add(-time.Hour)))
	testutil.SeedApartment(t, db, testutil.WithGuests(2))
	testutil.SeedApartment(t, db, testutil.WithGuests(8), testutil.Inactive())

	got, err := repo.ListBookable(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, newer.ID, got[0].ID)
	assert.Equal(t, older.ID, got[1].ID)
}

func TestApartmentRoundTripKeepsCharacteristicsAndImages(t *testing.T) {
	db := testutil.NewDB(t, testutil.AllModels()...)
	repo := NewApartmentRepository(db)

	a := testutil.NewApartment(testutil.WithAmenities(map[models.Amenity]bool{
		models.AmenityWiFi: true,
		models.AmenityPool: false,
	}))
	a.Images = []string{"https://img/1.jpg", "https://img/2.jpg"}
	a.PrincipalImageIndex = 1
	require.NoError(t, repo.Create(context.Background(), a))

	got, err := repo.FindByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.True(t, got.HasAmenity(models.AmenityWiFi))
	assert.False(t, got.HasAmenity(models.AmenityPool))
	assert.False(t, got.HasAmenity(models.AmenityParking))
	assert.Equal(t, "https://img/2.jpg", got.PrincipalImage())
}

func TestApartmentNotFoundAndSetActive(t *testing.T) {
	db := testutil.NewDB(t, testutil.AllModels()...)
	repo := NewApartmentRepository(db)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrApartmentNotFound)
	assert.ErrorIs(t, repo.SetActive(ctx, "missing", true), apperrors.ErrApartmentNotFound)

	a := testutil.SeedApartment(t, db)
	require.NoError(t, repo.SetActive(ctx, a.ID, false))
	active, inactive, err := repo.CountByActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), active)
	assert.Equal(t, int64(1), inactive)
}

func TestApartmentDeleteRemovesDependents(t *testing.T) {
	db := testutil.NewDB(t, testutil.AllModels()...)
	repo := NewApartmentRepository(db)
	ctx := context.Background()

	a := testutil.SeedApartment(t, db)
	testutil.SeedBooking(t, db, a.ID, models.BookingPending, testutil.D("2025-01-01"), testutil.D("2025-01-03"))
	testutil.SeedOverride(t, db, a.ID, false, testutil.D("2025-02-01"), testutil.D("2025-02-03"))

	require.NoError(t, repo.Delete(ctx, a.ID))

	var bookings, overrides int64
	db.Model(&models.Booking{}).Count(&bookings)
	db.Model(&models.ApartmentAvailability{}).Count(&overrides)
	assert.Zero(t, bookings)
	assert.Zero(t, overrides)
	assert.ErrorIs(t, repo.Delete(ctx, a.ID), apperrors.ErrApartmentNotFound)
}

func TestConfirmedApartmentIDsIgnoresPending(t *testing.T) {
	db := testutil.NewDB(t, testutil.AllModels()...)
	repo := NewBookingRepository(db)

	confirmed := testutil.SeedApartment(t, db)
	pending := testutil.SeedApartment(t, db)
	testutil.SeedBooking(t, db, confirmed.ID, models.BookingConfirmed, testutil.D("2025-03-10"), testutil.D("2025-03-15"))
	testutil.SeedBooking(t, db, pending.ID, models.BookingPending, testutil.D("2025-03-10"), testutil.D("2025-03-15"))

	ids, err := repo.ConfirmedApartmentIDs(context.Background(), testutil.D("2025-03-10"), testutil.D("2025-03-15"))
	require.NoError(t, err)
	assert.Equal(t, []string{confirmed.ID}, ids)
}

func TestConfirmedApartmentIDsOverlapBoundaries(t *testing.T) {
	db := testutil.NewDB(t, testutil.AllModels()...)
	repo := NewBookingRepository(db)
	a := testutil.SeedApartment(t, db)
	testutil.SeedBooking(t, db, a.ID, models.BookingConfirmed, testutil.D("2025-03-10"), testutil.D("2025-03-15"))

	cases := []struct {
		name     string
		from, to string
		want     bool
	}{
		{"ends on check in", "2025-03-05", "2025-03-10", true},
		{"starts on check out", "2025-03-15", "2025-03-20", true},
		{"inside", "2025-03-11", "2025-03-12", true},
		{"before", "2025-03-01", "2025-03-09", false},
		{"after", "2025-03-16", "2025-03-20", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ids, err := repo.ConfirmedApartmentIDs(context.Background(), testutil.D(tc.from), testutil.D(tc.to))
			require.NoError(t, err)
			assert.Equal(t, tc.want, len(ids) == 1)
		})
	}
}

func TestUnavailableApartmentIDs(t *testing.T) {
	db := testutil.NewDB(t, testutil.AllModels()...)
	repo := NewAvailabilityRepository(db)

	blocked := testutil.SeedApartment(t, db)
	open := testutil.SeedApartment(t, db)
	testutil.SeedOverride(t, db, blocked.ID, false, testutil.D("2025-04-01"), testutil.D("2025-04-05"))
	testutil.SeedOverride(t, db, open.ID, true, testutil.D("2025-04-01"), testutil.D("2025-04-05"))

	ids, err := repo.UnavailableApartmentIDs(context.Background(), testutil.D("2025-04-04"), testutil.D("2025-04-08"))
	require.NoError(t, err)
	assert.Equal(t, []string{blocked.ID}, ids)
}

func TestUnavailableApartmentIDsMissingTable(t *testing.T) {
	db := testutil.NewDB(t, &models.Apartment{}, &models.Booking{})
	repo := NewAvailabilityRepository(db)

	_, err := repo.UnavailableApartmentIDs(context.Background(), testutil.D("2025-04-04"), testutil.D("2025-04-08"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTableMissing)
}

func TestBookingUpdateStatusAndCounts(t *testing.T) {
	db := testutil.NewDB(t, testutil.AllModels()...)
	repo := NewBookingRepository(db)
	ctx := context.Background()

	a := testutil.SeedApartment(t, db)
	b := testutil.SeedBooking(t, db, a.ID, models.BookingPending, testutil.D("2025-05-01"), testutil.D("2025-05-04"))

	before, updated, err := repo.UpdateStatus(ctx, b.ID, models.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPending, before)
	assert.Equal(t, models.BookingConfirmed, updated.Status)
	require.NotNil(t, updated.Apartment)
	assert.Equal(t, a.ID, updated.Apartment.ID)

	_, _, err = repo.UpdateStatus(ctx, "missing", models.BookingConfirmed)
	assert.ErrorIs(t, err, apperrors.ErrBookingNotFound)

	counts, err := repo.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), counts[models.BookingConfirmed])
	assert.Equal(t, int64(0), counts[models.BookingPending])
}

func TestBookingListFilters(t *testing.T) {
	db := testutil.NewDB(t, testutil.AllModels()...)
	repo := NewBookingRepository(db)

	a := testutil.SeedApartment(t, db)
	other := testutil.SeedApartment(t, db)
	testutil.SeedBooking(t, db, a.ID, models.BookingPending, testutil.D("2025-06-01"), testutil.D("2025-06-02"))
	testutil.SeedBooking(t, db, a.ID, models.BookingCancelled, testutil.D("2025-06-03"), testutil.D("2025-06-04"))
	testutil.SeedBooking(t, db, other.ID, models.BookingPending, testutil.D("2025-06-01"), testutil.D("2025-06-02"))

	got, total, err := repo.List(context.Background(), BookingFilter{
		Status:      models.BookingPending,
		ApartmentID: a.ID,
		Page:        Page{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, got, 1)
	assert.Equal(t, a.ID, got[0].ApartmentID)
}

func TestUserRepositoryNormalizesEmail(t *testing.T) {
	db := testutil.NewDB(t, testutil.AllModels()...)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Email: " Admin@Example.com ", Role: 1}))
	u, err := repo.FindByEmail(ctx, "ADMIN@example.com")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", u.Email)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}
