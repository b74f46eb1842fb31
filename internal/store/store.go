// Package store persists scraped listings and their flood flags.
package store

import (
	"context"

	"github.com/mwesthelle/sinking-real-estate/internal/listing"
)

// Filter specifies criteria for listing queries.
type Filter struct {
	Neighborhood string
	Flooded      *bool
	Limit        int
	Offset       int
}

// Store defines the persistence interface for listings.
type Store interface {
	UpsertListings(ctx context.Context, listings []listing.Listing) (int, error)
	ListListings(ctx context.Context, filter Filter) ([]listing.Listing, error)
	SetFlooded(ctx context.Context, ids []string, flooded []bool) error

	Migrate(ctx context.Context) error
	Close() error
}
