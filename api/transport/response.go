package transport

import "github.com/fastygo/apiresponse/domain"

// CatalogView is the payload of GET /api/v1/codes.
type CatalogView struct {
	MinUserCode domain.ApiCode       `json:"min_user_code"`
	MaxCode     domain.ApiCode       `json:"max_code"`
	Codes       []domain.CodeMessage `json:"codes"`
}

// HealthView is the payload of GET /health.
type HealthView struct {
	Status     string `json:"status"`
	Registered int    `json:"registered_codes"`
	Uptime     string `json:"uptime"`
}
