package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/petopia/petopia/utils"
)

// Notifier publishes reward and level-up events on a redis Pub/Sub channel.
// Delivery is strictly best-effort: every failure is swallowed with a warning
// so a redis outage never affects the operation that produced the event.
type Notifier struct {
	rdb     *redis.Client
	channel string
}

// NewNotifier creates a notifier. A nil client disables publishing.
func NewNotifier(rdb *redis.Client, channel string) *Notifier {
	return &Notifier{rdb: rdb, channel: channel}
}

// Publish sends one JSON event. Never returns an error.
func (n *Notifier) Publish(event string, userID uint, payload any) {
	if n == nil || n.rdb == nil {
		return
	}

	body, err := json.Marshal(map[string]any{
		"event":   event,
		"user_id": userID,
		"payload": payload,
		"at":      time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		utils.Sugar.Warnf("notify marshal failed event=%s user=%d err=%v", event, userID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := n.rdb.Publish(ctx, n.channel, body).Err(); err != nil {
		utils.Sugar.Warnf("notify publish failed event=%s user=%d err=%v", event, userID, err)
	}
}
