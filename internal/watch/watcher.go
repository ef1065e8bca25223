package watch

import (
	"context"

	"github.com/omertagame/omerta/internal/dao"
	"github.com/omertagame/omerta/pkg/database/redis"
	"github.com/omertagame/omerta/pkg/logger"
)

// Watcher 订阅玩家档案变更的快照流
// 每次成功写档案都会向 profile:<id> 频道发布完整快照,
// 这里把频道消息转成 Go channel 交给传输层
type Watcher struct {
	redis  *redis.Client
	logger logger.Logger
}

// NewWatcher 创建档案变更订阅器
func NewWatcher(rdb *redis.Client, l logger.Logger) *Watcher {
	return &Watcher{
		redis:  rdb,
		logger: l.Named("watch"),
	}
}

// Watch 订阅指定玩家的档案快照
// 返回的 channel 在 ctx 取消或订阅断开后关闭
func (w *Watcher) Watch(ctx context.Context, profileID string) <-chan []byte {
	out := make(chan []byte, 8)

	sub := w.redis.Subscribe(ctx, dao.ProfileChannel(profileID))

	go func() {
		defer close(out)
		defer func() {
			if err := sub.Close(); err != nil {
				w.logger.Warn("failed to close subscription",
					"profile_id", profileID,
					"error", err,
				)
			}
		}()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- []byte(msg.Payload):
				case <-ctx.Done():
					return
				default:
					// 消费者跟不上时丢弃旧快照,
					// 下一条完整快照会覆盖全部状态
					w.logger.Warn("watch channel full, dropping snapshot",
						"profile_id", profileID,
					)
				}
			}
		}
	}()

	return out
}
