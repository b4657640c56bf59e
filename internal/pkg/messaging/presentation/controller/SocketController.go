package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/infrastructure/realtime"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/push"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/usecase"
)

const defaultReadTimeout = 60 * time.Second

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for now; plug a proper checker when the frontend
		// domains are settled.
		return true
	},
}

// SocketController handles the websocket endpoint for realtime traffic.
// Identity is not taken from the HTTP request: every connection starts
// unauthenticated and must complete the authenticate handshake before any
// application frame is processed.
type SocketController struct {
	registry    *realtime.Registry
	sendMessage *usecase.SendMessageUseCase
	badges      *push.BadgeAggregator
	broadcaster *push.Broadcaster
	log         *zap.Logger
}

func NewSocketController(
	registry *realtime.Registry,
	sendMessage *usecase.SendMessageUseCase,
	badges *push.BadgeAggregator,
	broadcaster *push.Broadcaster,
	log *zap.Logger,
) *SocketController {
	return &SocketController{
		registry:    registry,
		sendMessage: sendMessage,
		badges:      badges,
		broadcaster: broadcaster,
		log:         log,
	}
}

// Handle upgrades the HTTP connection and processes frames until the client
// disconnects.
func (ctl *SocketController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			// Upgrade already wrote the response; just log and return.
			ctl.log.Info("websocket upgrade failed", zap.Error(err))
			return
		}

		conn := realtime.NewConnection(ws)
		conn.Start()

		sess := newSession(conn, ctl.registry, ctl.sendMessage, ctl.badges, ctl.broadcaster, ctl.log)
		defer func() {
			sess.Closed()
			conn.Close(websocket.CloseNormalClosure, "session closed")
		}()

		ws.SetReadLimit(1 << 20) // 1MB payload cap
		_ = ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(defaultReadTimeout))
		})

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if !isExpectedClose(err) {
					ctl.log.Info("websocket read error",
						zap.String("connId", conn.ID()), zap.Error(err))
				}
				return
			}
			sess.HandleRaw(c.Request.Context(), data)
		}
	}
}

func isExpectedClose(err error) bool {
	return websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived,
	) || errors.Is(err, websocket.ErrCloseSent)
}
