package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/infrastructure/realtime"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/authz"
	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/push"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/usecase"
)

// ---- in-memory collaborators ----

type fakeConn struct {
	id       string
	mu       sync.Mutex
	sent     [][]byte
	failSend bool
	closed   bool
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSend || c.closed {
		return errors.New("write failed")
	}
	c.sent = append(c.sent, payload)
	return nil
}

func (c *fakeConn) Close(code int, reason string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *fakeConn) frames(t *testing.T) []map[string]any {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]map[string]any, 0, len(c.sent))
	for _, raw := range c.sent {
		var m map[string]any
		require.NoError(t, json.Unmarshal(raw, &m))
		out = append(out, m)
	}
	return out
}

func frameTypes(t *testing.T, c *fakeConn) []string {
	t.Helper()
	var types []string
	for _, f := range c.frames(t) {
		types = append(types, f["type"].(string))
	}
	return types
}

type memMessageRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   []messaging.Message
}

func (r *memMessageRepo) Save(ctx context.Context, m messaging.Message) (messaging.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	m.ID = r.nextID
	m.Read = false
	r.rows = append(r.rows, m)
	return m, nil
}

func (r *memMessageRepo) ListByConversation(ctx context.Context, conversationID int64, limit, offset int) ([]messaging.Message, error) {
	return nil, nil
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
	count := 0
	for _, m := range r.rows {
		if m.SenderID != userID && !m.Read {
			count++
		}
	}
	return count, nil
}

type memConversationRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[[2]int64]messaging.Conversation
}

func newMemConversationRepo() *memConversationRepo {
	return &memConversationRepo{rows: make(map[[2]int64]messaging.Conversation)}
}

func (r *memConversationRepo) Find(ctx context.Context, userA, userB int64) (messaging.Conversation, error) {
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
	r.mu.Lock()
	defer r.mu.Unlock()
	userA, userB = messaging.NormalizePair(userA, userB)
	key := [2]int64{userA, userB}
	if _, ok := r.rows[key]; ok {
		return messaging.Conversation{}, messaging.ErrConversationExists
	}
	r.nextID++
	c := messaging.Conversation{ID: r.nextID, UserA: userA, UserB: userB, CreatedAt: time.Now().UTC()}
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
	return nil, nil
}

type memNotificationRepo struct{}

func (memNotificationRepo) Save(ctx context.Context, n messaging.Notification) (messaging.Notification, error) {
	return n, nil
}

func (memNotificationRepo) ListForRecipient(ctx context.Context, recipientID int64, limit, offset int) ([]messaging.Notification, error) {
	return nil, nil
}

func (memNotificationRepo) MarkRead(ctx context.Context, id, recipientID int64) error { return nil }

func (memNotificationRepo) Delete(ctx context.Context, id, recipientID int64) error { return nil }

func (memNotificationRepo) UnreadCountsByCategory(ctx context.Context, recipientID int64) (messaging.BadgeCounts, error) {
	return messaging.BadgeCounts{}, nil
}

type memUserRepo struct {
	users map[int64]messaging.User
}

func (r *memUserRepo) Get(ctx context.Context, id int64) (messaging.User, error) {
	u, ok := r.users[id]
	if !ok {
		return messaging.User{}, messaging.ErrNotFound
	}
	return u, nil
}

type fixture struct {
	registry *realtime.Registry
	messages *memMessageRepo
	newSess  func(conn realtime.Conn) *session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := zaptest.NewLogger(t)
	registry := realtime.NewRegistry()
	messages := &memMessageRepo{}
	conversations := newMemConversationRepo()
	users := &memUserRepo{users: map[int64]messaging.User{
		1: {ID: 1, Name: "Ana"},
		2: {ID: 2, Name: "Bo"},
		5: {ID: 5, Name: "Cy"},
	}}

	broadcaster := push.NewBroadcaster(registry, log)
	badges := push.NewBadgeAggregator(messages, memNotificationRepo{}, registry, broadcaster, log)
	sendMessage := usecase.NewSendMessageUseCase(messages, conversations, users, authz.NewAuthorizer(users))

	return &fixture{
		registry: registry,
		messages: messages,
		newSess: func(conn realtime.Conn) *session {
			return newSession(conn, registry, sendMessage, badges, broadcaster, log)
		},
	}
}

var connSeq atomic.Int64

func (f *fixture) authedSession(t *testing.T, userID int64) (*session, *fakeConn) {
	t.Helper()
	conn := &fakeConn{id: fmt.Sprintf("conn-%d", connSeq.Add(1))}
	sess := f.newSess(conn)
	sess.HandleRaw(context.Background(), authFrame(userID))
	require.Equal(t, stateAuthenticated, sess.state)
	// Drop the handshake badge sync so scenario assertions start clean.
	conn.mu.Lock()
	conn.sent = nil
	conn.mu.Unlock()
	return sess, conn
}

func authFrame(userID int64) []byte {
	raw, _ := json.Marshal(map[string]any{"type": "authenticate", "userId": userID})
	return raw
}

func messageFrame(recipientID int64, content string) []byte {
	raw, _ := json.Marshal(map[string]any{"type": "message", "recipientId": recipientID, "content": content})
	return raw
}

// ---- handshake state machine ----

func TestSession_UnauthenticatedNeverRegistered(t *testing.T) {
	f := newFixture(t)
	conn := &fakeConn{id: "c1"}
	sess := f.newSess(conn)

	// Application frame before authenticate: rejected with an error frame.
	sess.HandleRaw(context.Background(), messageFrame(2, "hi"))

	assert.Empty(t, f.registry.ConnectionsFor(1))
	assert.Empty(t, f.registry.ConnectionsFor(2))
	types := frameTypes(t, conn)
	require.Len(t, types, 1)
	assert.Equal(t, "error", types[0])
	assert.Empty(t, f.messages.rows, "pre-auth sends must not persist")
}

func TestSession_MalformedAuthenticateIgnored(t *testing.T) {
	f := newFixture(t)
	conn := &fakeConn{id: "c1"}
	sess := f.newSess(conn)
	ctx := context.Background()

	sess.HandleRaw(ctx, []byte(`{"type":"authenticate"}`))
	sess.HandleRaw(ctx, []byte(`{"type":"authenticate","userId":-1}`))

	// Ignored, not fatal, no error frame: the client may retry.
	assert.Empty(t, conn.frames(t))
	assert.Equal(t, stateUnauthenticated, sess.state)

	// A later well-formed handshake still succeeds.
	sess.HandleRaw(ctx, authFrame(5))
	assert.Equal(t, stateAuthenticated, sess.state)
	require.Len(t, f.registry.ConnectionsFor(5), 1)
}

func TestSession_MalformedJSONGetsErrorFrame(t *testing.T) {
	f := newFixture(t)
	conn := &fakeConn{id: "c1"}
	sess := f.newSess(conn)
	ctx := context.Background()

	sess.HandleRaw(ctx, []byte(`{{{`))
	sess.HandleRaw(ctx, []byte(`{"type":"subscribe"}`))

	types := frameTypes(t, conn)
	assert.Equal(t, []string{"error", "error"}, types)
	// Connection is still usable.
	sess.HandleRaw(ctx, authFrame(5))
	assert.Equal(t, stateAuthenticated, sess.state)
}

func TestSession_AuthenticateBindsOnce(t *testing.T) {
	f := newFixture(t)
	conn := &fakeConn{id: "c1"}
	sess := f.newSess(conn)
	ctx := context.Background()

	sess.HandleRaw(ctx, authFrame(5))
	require.Len(t, f.registry.ConnectionsFor(5), 1)

	// Second authenticate is rejected and does not rebind.
	sess.HandleRaw(ctx, authFrame(2))
	assert.Equal(t, int64(5), sess.userID)
	assert.Len(t, f.registry.ConnectionsFor(5), 1)
	assert.Empty(t, f.registry.ConnectionsFor(2))

	types := frameTypes(t, conn)
	assert.Equal(t, "badge_counts_update", types[0], "handshake pushes an initial badge sync")
	assert.Equal(t, "error", types[len(types)-1])
}

func TestSession_ClosedUnregistersSynchronously(t *testing.T) {
	f := newFixture(t)
	sess, _ := f.authedSession(t, 5)

	sess.Closed()

	assert.Empty(t, f.registry.ConnectionsFor(5))
	assert.Equal(t, stateClosed, sess.state)

	// Frames after close are dropped silently.
	sess.HandleRaw(context.Background(), messageFrame(2, "hi"))
	assert.Empty(t, f.messages.rows)
}

// ---- delivery scenarios ----

func TestSession_OnlineDelivery(t *testing.T) {
	f := newFixture(t)
	senderSess, senderConn := f.authedSession(t, 1)
	_, recipientConn := f.authedSession(t, 2)

	senderSess.HandleRaw(context.Background(), messageFrame(2, "hi"))

	// Sender gets a durable ack with the persisted message.
	senderFrames := senderConn.frames(t)
	require.Len(t, senderFrames, 1)
	assert.Equal(t, "message_sent", senderFrames[0]["type"])
	ack := senderFrames[0]["message"].(map[string]any)
	assert.Equal(t, float64(1), ack["id"])
	assert.Equal(t, "hi", ack["content"])

	// Recipient gets the push with sender info, then the badge update.
	recipientFrames := recipientConn.frames(t)
	require.Len(t, recipientFrames, 2)
	assert.Equal(t, "new_message", recipientFrames[0]["type"])
	pushMsg := recipientFrames[0]["message"].(map[string]any)
	assert.Equal(t, ack["id"], pushMsg["id"])
	sender := recipientFrames[0]["sender"].(map[string]any)
	assert.Equal(t, "Ana", sender["name"])

	assert.Equal(t, "badge_counts_update", recipientFrames[1]["type"])
	counts := recipientFrames[1]["counts"].(map[string]any)
	assert.Equal(t, float64(1), counts["messages"])
}

func TestSession_OfflineDelivery(t *testing.T) {
	f := newFixture(t)
	senderSess, senderConn := f.authedSession(t, 1)
	// User 2 has no connections.

	senderSess.HandleRaw(context.Background(), messageFrame(2, "hi"))

	// Persisted regardless.
	require.Len(t, f.messages.rows, 1)
	assert.Equal(t, "hi", f.messages.rows[0].Content)

	// Sender still acked; nobody else got anything.
	assert.Equal(t, []string{"message_sent"}, frameTypes(t, senderConn))

	// Unread count reflects the row on next query.
	unread, err := f.messages.UnreadCount(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
}

func TestSession_DeadConnectionCleanupDuringDelivery(t *testing.T) {
	f := newFixture(t)
	senderSess, _ := f.authedSession(t, 1)

	// User 5 holds two connections; c1 dies mid-broadcast.
	_, c1 := f.authedSession(t, 5)
	_, c2 := f.authedSession(t, 5)
	require.Len(t, f.registry.ConnectionsFor(5), 2)
	c1.failSend = true

	senderSess.HandleRaw(context.Background(), messageFrame(5, "hi"))

	// c1 was dropped; c2 still received the broadcast.
	remaining := f.registry.ConnectionsFor(5)
	require.Len(t, remaining, 1)
	assert.Equal(t, c2.id, remaining[0].ID())
	assert.Contains(t, frameTypes(t, c2), "new_message")
	assert.True(t, c1.closed)
}

func TestSession_SelfMessageRejected(t *testing.T) {
	f := newFixture(t)
	sess, conn := f.authedSession(t, 1)

	sess.HandleRaw(context.Background(), messageFrame(1, "hi me"))

	assert.Equal(t, []string{"error"}, frameTypes(t, conn))
	assert.Empty(t, f.messages.rows)
}
