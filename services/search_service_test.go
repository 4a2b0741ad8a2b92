package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"rentals/dto"
	"rentals/models"
	"rentals/services/logger"
	"rentals/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	result SearchResult
	err    error
	calls  int
	last   dto.SearchFilters
}

func (r *stubResolver) Resolve(_ context.Context, filters dto.SearchFilters) (SearchResult, error) {
	r.calls++
	r.last = filters
	return r.result, r.err
}

func apartmentsN(n int) []models.Apartment {
	out := make([]models.Apartment, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, *testutil.NewApartment(testutil.Titled(fmt.Sprintf("Depto %d", i))))
	}
	return out
}

func TestSearchPaginates(t *testing.T) {
	resolver := &stubResolver{result: SearchResult{Apartments: apartmentsN(5)}}
	svc := NewSearchService(resolver, nil, logger.Nop{})

	resp, err := svc.Search(context.Background(), "sess", &dto.SearchFilters{Page: 2, Limit: 2})
	require.NoError(t, err)
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "Depto 2", resp.Data[0].Title)
	assert.Equal(t, int64(5), resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.Page)
	assert.Equal(t, 1, resolver.last.Guests)

	resp, err = svc.Search(context.Background(), "sess", &dto.SearchFilters{Page: 9, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
	assert.NotNil(t, resp.Data)
}

func TestSearchPassesDegradedAndErrors(t *testing.T) {
	resolver := &stubResolver{result: SearchResult{Apartments: apartmentsN(1), Degraded: true, Suggestion: "Probá con menos huéspedes"}}
	svc := NewSearchService(resolver, nil, logger.Nop{})

	resp, err := svc.Search(context.Background(), "sess", &dto.SearchFilters{Guests: 2})
	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	assert.Equal(t, "Probá con menos huéspedes", resp.Suggestion)

	_, err = svc.Search(context.Background(), "sess", &dto.SearchFilters{Guests: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, resolver.calls)

	resolver.err = errors.New("db down")
	_, err = svc.Search(context.Background(), "sess", &dto.SearchFilters{})
	assert.EqualError(t, err, "db down")
}

func TestSearchWithoutCacheHasNoLastFilters(t *testing.T) {
	svc := NewSearchService(&stubResolver{}, nil, logger.Nop{})
	_, err := svc.Search(context.Background(), "sess", &dto.SearchFilters{Guests: 3})
	require.NoError(t, err)

	last, err := svc.LastFilters(context.Background(), "sess")
	require.NoError(t, err)
	assert.Nil(t, last)
}
