package realtime

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Event 推送信封，客户端按 event 字段分发
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Notifier 变更通知的发布端口。发布失败由调用方决定如何处理，
// 评分主流程只记日志不回滚
type Notifier interface {
	Publish(ctx context.Context, channel, event string, payload interface{}) error
}

type RedisNotifier struct {
	rdb *redis.Client
}

func NewRedisNotifier(rdb *redis.Client) Notifier {
	return &RedisNotifier{rdb: rdb}
}

func (s *RedisNotifier) Publish(ctx context.Context, channel, event string, payload interface{}) error {
	data, err := json.Marshal(Event{Event: event, Data: payload})
	if err != nil {
		return err
	}
	return s.rdb.Publish(ctx, channel, data).Err()
}
