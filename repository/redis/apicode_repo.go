package redis

import (
	"context"
	"fmt"
	"strconv"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/apiresponse/domain"
	"github.com/fastygo/apiresponse/repository"
)

type apiCodeRepository struct {
	client redislib.Cmdable
	key    string
}

// NewApiCodeRepository reads user API codes from a Redis hash whose fields
// are codes and values are message templates.
func NewApiCodeRepository(client redislib.Cmdable, key string) repository.CatalogSource {
	if key == "" {
		key = "api_codes"
	}
	return &apiCodeRepository{client: client, key: key}
}

func (r *apiCodeRepository) Name() string { return "redis" }

func (r *apiCodeRepository) LoadCodes(ctx context.Context) (map[domain.ApiCode]string, error) {
	fields, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", r.key, err)
	}
	return parseFields(fields)
}

func parseFields(fields map[string]string) (map[domain.ApiCode]string, error) {
	codes := make(map[domain.ApiCode]string, len(fields))
	for field, msg := range fields {
		code, err := strconv.Atoi(field)
		if err != nil {
			return nil, domain.WrapError(domain.ErrCodeInvalid, fmt.Sprintf("hash field %q is not an api code", field), err)
		}
		codes[domain.ApiCode(code)] = msg
	}
	return codes, nil
}
