package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	messaging "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/domain"
)

func TestDecodeInbound(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    Inbound
		wantErr error
	}{
		{
			name: "valid authenticate",
			data: `{"type":"authenticate","userId":42}`,
			want: Authenticate{UserID: 42},
		},
		{
			name: "valid message",
			data: `{"type":"message","recipientId":7,"content":"hi"}`,
			want: SendMessage{RecipientID: 7, Content: "hi"},
		},
		{
			name:    "authenticate missing userId",
			data:    `{"type":"authenticate"}`,
			wantErr: ErrBadAuthenticate,
		},
		{
			name:    "authenticate zero userId",
			data:    `{"type":"authenticate","userId":0}`,
			wantErr: ErrBadAuthenticate,
		},
		{
			name:    "authenticate negative userId",
			data:    `{"type":"authenticate","userId":-3}`,
			wantErr: ErrBadAuthenticate,
		},
		{
			name:    "message missing recipient",
			data:    `{"type":"message","content":"hi"}`,
			wantErr: ErrMalformed,
		},
		{
			name:    "message empty content",
			data:    `{"type":"message","recipientId":7,"content":""}`,
			wantErr: ErrMalformed,
		},
		{
			name:    "not json",
			data:    `{{{`,
			wantErr: ErrMalformed,
		},
		{
			name:    "missing type",
			data:    `{"userId":5}`,
			wantErr: ErrMalformed,
		},
		{
			name:    "unknown type",
			data:    `{"type":"subscribe"}`,
			wantErr: ErrUnknownType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeInbound([]byte(tt.data))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBadAuthenticateIsAlsoMalformed(t *testing.T) {
	_, err := DecodeInbound([]byte(`{"type":"authenticate","userId":0}`))
	require.ErrorIs(t, err, ErrBadAuthenticate)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestOutboundFrameTags(t *testing.T) {
	msg := messaging.Message{ID: 1, ConversationID: 2, SenderID: 3, Content: "hello"}
	sender := messaging.User{ID: 3, Name: "Ana"}

	decodeType := func(t *testing.T, payload []byte) string {
		t.Helper()
		var envelope struct {
			Type string `json:"type"`
		}
		require.NoError(t, json.Unmarshal(payload, &envelope))
		return envelope.Type
	}

	sent, err := MessageSent(msg)
	require.NoError(t, err)
	assert.Equal(t, TypeMessageSent, decodeType(t, sent))

	push, err := NewMessage(msg, sender)
	require.NoError(t, err)
	assert.Equal(t, TypeNewMessage, decodeType(t, push))

	notif, err := NewNotification(messaging.Notification{ID: 4, RecipientID: 3, Title: "hi"})
	require.NoError(t, err)
	assert.Equal(t, TypeNewNotification, decodeType(t, notif))

	badge, err := BadgeCounts(messaging.BadgeCounts{"messages": 2})
	require.NoError(t, err)
	assert.Equal(t, TypeBadgeCounts, decodeType(t, badge))

	assert.Equal(t, TypeError, decodeType(t, Error("boom")))
}

func TestNewMessageFrameCarriesSender(t *testing.T) {
	payload, err := NewMessage(
		messaging.Message{ID: 9, ConversationID: 4, SenderID: 3, Content: "hi"},
		messaging.User{ID: 3, Name: "Ana", Role: messaging.UserRoleFreelancer},
	)
	require.NoError(t, err)

	var frame struct {
		Message messaging.Message `json:"message"`
		Sender  messaging.User    `json:"sender"`
	}
	require.NoError(t, json.Unmarshal(payload, &frame))
	assert.Equal(t, int64(9), frame.Message.ID)
	assert.Equal(t, "Ana", frame.Sender.Name)
}
