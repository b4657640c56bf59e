// Package push fans persisted events out to a recipient's live connections
// and keeps badge counts flowing. Persistence always commits first; delivery
// here is best-effort and a recipient with no connections is the normal
// offline case, surfaced on their next pull instead.
package push

import (
	"go.uber.org/zap"

	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/infrastructure/realtime"
	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/wire"
)

// Broadcaster delivers serialized frames to every live connection of a
// recipient. Delivery is at-most-once per connection: a failed write marks
// that connection dead and removes it, and never blocks delivery to the
// recipient's other connections or to other recipients.
type Broadcaster struct {
	registry *realtime.Registry
	log      *zap.Logger
}

func NewBroadcaster(registry *realtime.Registry, log *zap.Logger) *Broadcaster {
	return &Broadcaster{registry: registry, log: log}
}

// DeliverMessage pushes a just-persisted message to the recipient.
func (b *Broadcaster) DeliverMessage(recipientID int64, msg messaging.Message, sender messaging.User) {
	payload, err := wire.NewMessage(msg, sender)
	if err != nil {
		b.log.Error("encode new_message frame", zap.Int64("messageId", msg.ID), zap.Error(err))
		return
	}
	b.deliver(recipientID, payload)
}

// DeliverNotification pushes a just-persisted notification to the recipient.
func (b *Broadcaster) DeliverNotification(recipientID int64, n messaging.Notification) {
	payload, err := wire.NewNotification(n)
	if err != nil {
		b.log.Error("encode notification frame", zap.Int64("notificationId", n.ID), zap.Error(err))
		return
	}
	b.deliver(recipientID, payload)
}

// Deliver pushes an already-encoded frame to every live connection of the
// recipient. Zero connections is not an error.
func (b *Broadcaster) Deliver(recipientID int64, payload []byte) {
	b.deliver(recipientID, payload)
}

func (b *Broadcaster) deliver(recipientID int64, payload []byte) {
	conns := b.registry.ConnectionsFor(recipientID)
	for _, conn := range conns {
		if err := conn.Send(payload); err != nil {
			// Dead connection: drop it and keep going with the rest.
			b.registry.Unregister(recipientID, conn)
			conn.Close(1011, "write failed")
			b.log.Info("dropped dead connection",
				zap.Int64("userId", recipientID),
				zap.String("connId", conn.ID()),
				zap.Error(err))
		}
	}
}
