package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/treebornwood/voicedeskk/internal/model"
)

// PublicCache 公开商家页查询缓存(Redis)。
// 缓存未命中或出错时调用方直接回源数据库,缓存故障不影响功能。
type PublicCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPublicCache 创建公开页查询缓存
func NewPublicCache(addr, password string, db int, ttl time.Duration) (*PublicCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &PublicCache{
		client: client,
		ttl:    ttl,
	}, nil
}

// slugKey 按 slug 缓存的键
func slugKey(slug string) string {
	return fmt.Sprintf("public:business:%s", slug)
}

// GetBusiness 按 slug 读取缓存的商家
func (p *PublicCache) GetBusiness(ctx context.Context, slug string) (*model.Business, bool) {
	data, err := p.client.Get(ctx, slugKey(slug)).Bytes()
	if err != nil {
		return nil, false
	}

	var business model.Business
	if err := json.Unmarshal(data, &business); err != nil {
		return nil, false
	}
	return &business, true
}

// SetBusiness 缓存商家公开信息
func (p *PublicCache) SetBusiness(ctx context.Context, business *model.Business) error {
	data, err := json.Marshal(business)
	if err != nil {
		return err
	}
	return p.client.Set(ctx, slugKey(business.Slug), data, p.ttl).Err()
}

// Invalidate 商家信息变更后清除缓存
func (p *PublicCache) Invalidate(ctx context.Context, slug string) error {
	return p.client.Del(ctx, slugKey(slug)).Err()
}

// Close 关闭 Redis 连接
func (p *PublicCache) Close() error {
	return p.client.Close()
}
