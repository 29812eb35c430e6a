package store

import (
	"context"
	"fmt"
	"strconv"

	"catalog-api/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	fieldID          = "id"
	fieldProductName = "productName"
	fieldCode        = "code"
	fieldPrice       = "price"
	fieldModel       = "model"
	fieldProductURL  = "productUrl"
)

// updateScript applies field changes only when the record exists and returns
// the full updated record, keeping the existence check and the write atomic.
var updateScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return 0
end
for i = 1, #ARGV, 2 do
	redis.call('HSET', KEYS[1], ARGV[i], ARGV[i + 1])
end
return redis.call('HGETALL', KEYS[1])
`)

// deleteScript removes the record and its index entry only when the record
// exists, returning the record as it was immediately before removal.
var deleteScript = redis.NewScript(`
local fields = redis.call('HGETALL', KEYS[1])
if #fields == 0 then
	return 0
end
redis.call('DEL', KEYS[1])
redis.call('SREM', KEYS[2], ARGV[1])
return fields
`)

// RedisStore persists product records in Redis, one hash per record under
// <table>:<id> plus an id index set under <table>:ids.
type RedisStore struct {
	client *redis.Client
	table  string
}

// NewRedisStore creates a Store backed by the given Redis client. The table
// identifier namespaces all keys written by this store.
func NewRedisStore(client *redis.Client, table string) *RedisStore {
	return &RedisStore{client: client, table: table}
}

func (s *RedisStore) recordKey(id string) string {
	return fmt.Sprintf("%s:%s", s.table, id)
}

func (s *RedisStore) indexKey() string {
	return fmt.Sprintf("%s:ids", s.table)
}

func (s *RedisStore) Get(ctx context.Context, id string) (*domain.Product, error) {
	fields, err := s.client.HGetAll(ctx, s.recordKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	return productFromFields(fields)
}

func (s *RedisStore) Put(ctx context.Context, product *domain.Product) error {
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.recordKey(product.ID.String()), map[string]interface{}{
		fieldID:          product.ID.String(),
		fieldProductName: product.ProductName,
		fieldCode:        product.Code,
		fieldPrice:       strconv.FormatFloat(product.Price, 'f', -1, 64),
		fieldModel:       product.Model,
		fieldProductURL:  product.ProductURL,
	})
	pipe.SAdd(ctx, s.indexKey(), product.ID.String())

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to put product: %w", err)
	}

	return nil
}

func (s *RedisStore) UpdateConditional(ctx context.Context, id string, req *domain.ProductRequest) (*domain.Product, error) {
	args := []interface{}{
		fieldProductName, req.ProductName,
		fieldCode, req.Code,
		fieldPrice, strconv.FormatFloat(req.Price, 'f', -1, 64),
		fieldModel, req.Model,
		fieldProductURL, req.ProductURL,
	}

	result, err := updateScript.Run(ctx, s.client, []string{s.recordKey(id)}, args...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return productFromScriptResult(result)
}

func (s *RedisStore) DeleteConditional(ctx context.Context, id string) (*domain.Product, error) {
	keys := []string{s.recordKey(id), s.indexKey()}

	result, err := deleteScript.Run(ctx, s.client, keys, id).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	return productFromScriptResult(result)
}

func (s *RedisStore) Scan(ctx context.Context) ([]*domain.Product, error) {
	ids, err := s.client.SMembers(ctx, s.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to scan product index: %w", err)
	}

	products := []*domain.Product{}
	for _, id := range ids {
		fields, err := s.client.HGetAll(ctx, s.recordKey(id)).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan product %s: %w", id, err)
		}
		// Index entries may outlive their record for a moment when another
		// caller deletes concurrently.
		if len(fields) == 0 {
			continue
		}

		product, err := productFromFields(fields)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}

	return products, nil
}

func (s *RedisStore) QueryByCode(ctx context.Context, code string) ([]*domain.Product, error) {
	all, err := s.Scan(ctx)
	if err != nil {
		return nil, err
	}

	products := []*domain.Product{}
	for _, product := range all {
		if product.Code == code {
			products = append(products, product)
		}
	}

	return products, nil
}

// productFromScriptResult decodes the reply of a conditional script: the
// integer 0 when the record did not exist, a flat field-value array
// otherwise.
func productFromScriptResult(result interface{}) (*domain.Product, error) {
	if missing, ok := result.(int64); ok && missing == 0 {
		return nil, ErrNotFound
	}

	pairs, ok := result.([]interface{})
	if !ok || len(pairs)%2 != 0 {
		return nil, fmt.Errorf("unexpected script reply of type %T", result)
	}

	fields := make(map[string]string, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		field, fok := pairs[i].(string)
		value, vok := pairs[i+1].(string)
		if !fok || !vok {
			return nil, fmt.Errorf("unexpected script reply element of type %T", pairs[i])
		}
		fields[field] = value
	}

	return productFromFields(fields)
}

func productFromFields(fields map[string]string) (*domain.Product, error) {
	id, err := uuid.Parse(fields[fieldID])
	if err != nil {
		return nil, fmt.Errorf("failed to parse product id %q: %w", fields[fieldID], err)
	}

	price, err := strconv.ParseFloat(fields[fieldPrice], 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse product price %q: %w", fields[fieldPrice], err)
	}

	return &domain.Product{
		ID:          id,
		ProductName: fields[fieldProductName],
		Code:        fields[fieldCode],
		Price:       price,
		Model:       fields[fieldModel],
		ProductURL:  fields[fieldProductURL],
	}, nil
}
