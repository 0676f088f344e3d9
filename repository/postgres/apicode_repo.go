package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fastygo/apiresponse/domain"
	"github.com/fastygo/apiresponse/repository"
)

type apiCodeRepository struct {
	pool *pgxpool.Pool
}

// NewApiCodeRepository reads user API codes from the api_codes table.
func NewApiCodeRepository(pool *pgxpool.Pool) repository.CatalogSource {
	return &apiCodeRepository{pool: pool}
}

func (r *apiCodeRepository) Name() string { return "postgres" }

func (r *apiCodeRepository) LoadCodes(ctx context.Context) (map[domain.ApiCode]string, error) {
	const query = `
		SELECT code, message
		FROM api_codes
		WHERE enabled
		ORDER BY code
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query api_codes: %w", err)
	}

	type row struct {
		Code    int32
		Message string
	}
	records, err := pgx.CollectRows(rows, pgx.RowToStructByPos[row])
	if err != nil {
		return nil, fmt.Errorf("scan api_codes: %w", err)
	}

	codes := make(map[domain.ApiCode]string, len(records))
	for _, rec := range records {
		codes[domain.ApiCode(rec.Code)] = rec.Message
	}
	return codes, nil
}
