package repository

import (
	"context"

	"github.com/fastygo/apiresponse/domain"
)

// CatalogSource supplies user API codes to register at startup.
type CatalogSource interface {
	Name() string
	LoadCodes(ctx context.Context) (map[domain.ApiCode]string, error)
}
