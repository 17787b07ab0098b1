package ports

import (
	"context"
	"storefront/internal/models"
	"storefront/pkg/pkgports"
)

// OrderSource port describes where order aggregates are read from, e.g. the remote storefront API
//
// implementations return customerrors.ErrOrderNotFound, ErrUnexpectedStatus or ErrMalformedResponse (wrapped)
type OrderSource interface {
	GetOrder(ctx context.Context, orderID string) (models.Order, error)
}

// SponsorSource port describes the sponsor directory provider
type SponsorSource interface {
	ListSponsors(ctx context.Context) ([]models.Sponsor, error)
}

// SponsorCache describes a cache of single sponsors keyed by ID
type SponsorCache pkgports.Cache[string, models.Sponsor]

// SponsorDirectoryCache keeps the last successfully fetched directory
type SponsorDirectoryCache pkgports.Cache[string, []models.Sponsor]

// ContactPublisher port describes a message queue producer for contact form messages, e.g. kafka
type ContactPublisher pkgports.Publisher[models.ContactMessage]
