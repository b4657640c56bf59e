package usecase

import (
	"context"
	"sync"
	"time"

	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
)

// memConversationRepo mimics the store's uniqueness constraint on the
// normalized pair, including the duplicate-insert race the resolver must
// recover from.
type memConversationRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[[2]int64]messaging.Conversation

	findErr   error
	createErr error
}

func newMemConversationRepo() *memConversationRepo {
	return &memConversationRepo{nextID: 1, rows: make(map[[2]int64]messaging.Conversation)}
}

func (r *memConversationRepo) Find(ctx context.Context, userA, userB int64) (messaging.Conversation, error) {
	if r.findErr != nil {
		return messaging.Conversation{}, r.findErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	userA, userB = messaging.NormalizePair(userA, userB)
	c, ok := r.rows[[2]int64{userA, userB}]
	if !ok {
		return messaging.Conversation{}, messaging.ErrNotFound
	}
	return c, nil
}

func (r *memConversationRepo) Create(ctx context.Context, userA, userB int64) (messaging.Conversation, error) {
	if r.createErr != nil {
		return messaging.Conversation{}, r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	userA, userB = messaging.NormalizePair(userA, userB)
	key := [2]int64{userA, userB}
	if _, ok := r.rows[key]; ok {
		return messaging.Conversation{}, messaging.ErrConversationExists
	}
	c := messaging.Conversation{ID: r.nextID, UserA: userA, UserB: userB, CreatedAt: time.Now().UTC()}
	r.nextID++
	r.rows[key] = c
	return c, nil
}

func (r *memConversationRepo) Get(ctx context.Context, id int64) (messaging.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.rows {
		if c.ID == id {
			return c, nil
		}
	}
	return messaging.Conversation{}, messaging.ErrNotFound
}

func (r *memConversationRepo) ListForUser(ctx context.Context, userID int64) ([]messaging.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []messaging.Conversation
	for _, c := range r.rows {
		if c.HasParticipant(userID) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memConversationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type memMessageRepo struct {
	mu      sync.Mutex
	nextID  int64
	rows    []messaging.Message
	saveErr error
}

func newMemMessageRepo() *memMessageRepo {
	return &memMessageRepo{nextID: 1}
}

func (r *memMessageRepo) Save(ctx context.Context, m messaging.Message) (messaging.Message, error) {
	if r.saveErr != nil {
		return messaging.Message{}, r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.nextID
	r.nextID++
	m.Read = false
	r.rows = append(r.rows, m)
	return m, nil
}

func (r *memMessageRepo) ListByConversation(ctx context.Context, conversationID int64, limit, offset int) ([]messaging.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []messaging.Message
	for _, m := range r.rows {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMessageRepo) MarkConversationRead(ctx context.Context, conversationID, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var changed int64
	for i, m := range r.rows {
		if m.ConversationID == conversationID && m.SenderID != userID && !m.Read {
			r.rows[i].Read = true
			changed++
		}
	}
	return changed, nil
}

func (r *memMessageRepo) UnreadCount(ctx context.Context, userID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Every stored row whose sender is someone else counts; the fakes keep
	// conversations implicit.
	count := 0
	for _, m := range r.rows {
		if m.SenderID != userID && !m.Read {
			count++
		}
	}
	return count, nil
}

type memUserRepo struct {
	users map[int64]messaging.User
	err   error
}

func (r *memUserRepo) Get(ctx context.Context, id int64) (messaging.User, error) {
	if r.err != nil {
		return messaging.User{}, r.err
	}
	u, ok := r.users[id]
	if !ok {
		return messaging.User{}, messaging.ErrNotFound
	}
	return u, nil
}

type memNotificationRepo struct {
	mu      sync.Mutex
	nextID  int64
	rows    map[int64]messaging.Notification
	saveErr error
}

func newMemNotificationRepo() *memNotificationRepo {
	return &memNotificationRepo{nextID: 1, rows: make(map[int64]messaging.Notification)}
}

func (r *memNotificationRepo) Save(ctx context.Context, n messaging.Notification) (messaging.Notification, error) {
	if r.saveErr != nil {
		return messaging.Notification{}, r.saveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n.ID = r.nextID
	r.nextID++
	n.Read = false
	r.rows[n.ID] = n
	return n, nil
}

func (r *memNotificationRepo) ListForRecipient(ctx context.Context, recipientID int64, limit, offset int) ([]messaging.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []messaging.Notification
	for _, n := range r.rows {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memNotificationRepo) MarkRead(ctx context.Context, id, recipientID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.rows[id]
	if !ok || n.RecipientID != recipientID {
		return messaging.ErrNotFound
	}
	n.Read = true
	r.rows[id] = n
	return nil
}

func (r *memNotificationRepo) Delete(ctx context.Context, id, recipientID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.rows[id]
	if !ok || n.RecipientID != recipientID {
		return messaging.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memNotificationRepo) UnreadCountsByCategory(ctx context.Context, recipientID int64) (messaging.BadgeCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := messaging.BadgeCounts{}
	for _, n := range r.rows {
		if n.RecipientID == recipientID && !n.Read {
			counts[n.Type.Category()]++
		}
	}
	return counts, nil
}
