package controller

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/infrastructure/realtime"
	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/push"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/usecase"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/wire"
)

// sessionState is the per-connection handshake state.
//
//	unauthenticated --authenticate(userId)--> authenticated
//	any state --transport close/error--> closed
type sessionState int

const (
	stateUnauthenticated sessionState = iota
	stateAuthenticated
	stateClosed
)

// session drives one realtime connection through the handshake and routes its
// frames. Application frames received before authentication are rejected with
// an error frame; that policy is applied uniformly.
type session struct {
	conn     realtime.Conn
	registry *realtime.Registry

	sendMessage *usecase.SendMessageUseCase
	badges      *push.BadgeAggregator
	broadcaster *push.Broadcaster
	log         *zap.Logger

	state  sessionState
	userID int64
}

func newSession(
	conn realtime.Conn,
	registry *realtime.Registry,
	sendMessage *usecase.SendMessageUseCase,
	badges *push.BadgeAggregator,
	broadcaster *push.Broadcaster,
	log *zap.Logger,
) *session {
	return &session{
		conn:        conn,
		registry:    registry,
		sendMessage: sendMessage,
		badges:      badges,
		broadcaster: broadcaster,
		log:         log,
		state:       stateUnauthenticated,
	}
}

// HandleRaw decodes and dispatches one inbound frame.
func (s *session) HandleRaw(ctx context.Context, data []byte) {
	if s.state == stateClosed {
		return
	}

	frame, err := wire.DecodeInbound(data)
	if err != nil {
		if errors.Is(err, wire.ErrBadAuthenticate) {
			// Non-fatal handshake failure: the client may retry.
			s.log.Info("ignoring malformed authenticate frame",
				zap.String("connId", s.conn.ID()), zap.Error(err))
			return
		}
		s.replyError("invalid frame")
		return
	}

	switch f := frame.(type) {
	case wire.Authenticate:
		s.handleAuthenticate(ctx, f)
	case wire.SendMessage:
		s.handleSendMessage(ctx, f)
	}
}

// handleAuthenticate binds the connection to a user identity. A connection
// authenticates at most once; repeat attempts are rejected without changing
// the existing binding.
func (s *session) handleAuthenticate(ctx context.Context, f wire.Authenticate) {
	if s.state == stateAuthenticated {
		s.replyError("already authenticated")
		return
	}

	s.userID = f.UserID
	s.state = stateAuthenticated
	s.registry.Register(f.UserID, s.conn)
	s.log.Info("connection authenticated",
		zap.Int64("userId", f.UserID), zap.String("connId", s.conn.ID()))

	// Initial badge sync so a fresh tab shows current totals immediately.
	s.badges.RecomputeAndPush(ctx, f.UserID)
}

func (s *session) handleSendMessage(ctx context.Context, f wire.SendMessage) {
	if s.state != stateAuthenticated {
		s.replyError("not authenticated")
		return
	}

	result, err := s.sendMessage.Execute(ctx, usecase.SendMessageInput{
		SenderID:    s.userID,
		RecipientID: f.RecipientID,
		Content:     f.Content,
	})
	if err != nil {
		s.replySendError(err)
		return
	}

	// Durable ack back to the sending connection first.
	if ack, err := wire.MessageSent(result.Message); err == nil {
		_ = s.conn.Send(ack)
	}

	s.broadcaster.DeliverMessage(f.RecipientID, result.Message, result.Sender)
	s.badges.RecomputeAndPush(ctx, f.RecipientID)
}

// Closed transitions the session to its terminal state and synchronously
// removes the connection from the registry. Called from the read loop on
// transport close or error.
func (s *session) Closed() {
	if s.state == stateAuthenticated {
		s.registry.Unregister(s.userID, s.conn)
	}
	s.state = stateClosed
}

func (s *session) replySendError(err error) {
	var denied usecase.ErrDenied
	switch {
	case errors.As(err, &denied):
		s.replyError(denied.Reason)
	case errors.Is(err, messaging.ErrEmptyMessage):
		s.replyError("message content is required")
	case errors.Is(err, messaging.ErrSelfConversation):
		s.replyError("cannot message yourself")
	case errors.Is(err, usecase.ErrPersistence):
		s.log.Error("send message persistence failure",
			zap.Int64("userId", s.userID), zap.Error(err))
		s.replyError("message could not be saved")
	default:
		s.replyError("unable to send message")
	}
}

func (s *session) replyError(message string) {
	_ = s.conn.Send(wire.Error(message))
}
