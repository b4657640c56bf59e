package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/infrastructure/realtime"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/authz"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/push"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/usecase"
	msgAdapter "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/persistence/repository/adapter"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/presentation/controller"
	userport "github.com/LorisBarbisan/gig-event-connect-sub002/internal/repository/port"
)

// Deps bundles the shared realtime collaborators the messaging endpoints
// need beyond their repositories.
type Deps struct {
	Pool        *pgxpool.Pool
	Users       userport.UserRepository
	Registry    *realtime.Registry
	Broadcaster *push.Broadcaster
	Badges      *push.BadgeAggregator
	Log         *zap.Logger
}

// RegisterRoutes registers the realtime messaging endpoints under the given
// router group. It constructs per-endpoint controllers and binds them
// directly to routes.
func RegisterRoutes(g *gin.RouterGroup, d Deps) {
	messages := msgAdapter.NewPgMessageRepository(d.Pool)
	conversations := msgAdapter.NewPgConversationRepository(d.Pool)
	notifications := msgAdapter.NewPgNotificationRepository(d.Pool)
	authorizer := authz.NewAuthorizer(d.Users)

	sendMessageUC := usecase.NewSendMessageUseCase(messages, conversations, d.Users, authorizer)
	getMessagesUC := usecase.NewGetMessagesUseCase(messages, conversations, authorizer)
	markConvReadUC := usecase.NewMarkConversationReadUseCase(messages, conversations, authorizer)
	listNotifsUC := usecase.NewListNotificationsUseCase(notifications)
	createNotifUC := usecase.NewCreateNotificationUseCase(notifications)
	markNotifReadUC := usecase.NewMarkNotificationReadUseCase(notifications)
	deleteNotifUC := usecase.NewDeleteNotificationUseCase(notifications)

	socketCtl := controller.NewSocketController(d.Registry, sendMessageUC, d.Badges, d.Broadcaster, d.Log)

	// GET /api/v1/realtime/ws -> persistent bidirectional connection
	g.GET("/realtime/ws", socketCtl.Handle())

	// Conversations
	g.GET("/conversations/:conversationId/messages", controller.NewGetMessagesController(getMessagesUC).Handle())
	g.POST("/conversations/:conversationId/read", controller.NewMarkConversationReadController(markConvReadUC, d.Badges).Handle())

	// Notifications
	g.GET("/notifications", controller.NewListNotificationsController(listNotifsUC, d.Badges).Handle())
	g.POST("/notifications", controller.NewCreateNotificationController(createNotifUC, d.Broadcaster, d.Badges).Handle())
	g.POST("/notifications/:notificationId/read", controller.NewMarkNotificationReadController(markNotifReadUC, d.Badges).Handle())
	g.DELETE("/notifications/:notificationId", controller.NewDeleteNotificationController(deleteNotifUC, d.Badges).Handle())
}
