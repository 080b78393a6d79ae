// Package services implements the business operations of the platform.
// Services take the request-scoped *gorm.DB from the handler layer, return
// *apperrors.AppError on domain failures and keep notification side effects
// strictly best-effort.
package services

import (
	"gorm.io/gorm"

	"safetyconnect_backend/internal/email"
	"safetyconnect_backend/internal/repositories"
	"safetyconnect_backend/internal/storage"
)

// RepoFactory builds the repository bundle over a database handle. Tests
// substitute a factory returning fakes.
type RepoFactory func(db *gorm.DB) *repositories.Repositories

// RoomBroadcaster pushes chat events to connected websocket clients.
// Satisfied by ws.Manager; nil disables live push.
type RoomBroadcaster interface {
	BroadcastToRoom(roomID string, event interface{})
}

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	AuthService     AuthService
	RequestService  RequestService
	PartnerService  PartnerService
	QuoteService    QuoteService
	ChatService     ChatService
	AdminService    AdminService
	DocumentService DocumentService
}

// NewServiceContainer wires the services with their shared collaborators.
func NewServiceContainer(templates *email.TemplateManager, store storage.Storage, broadcaster RoomBroadcaster) *ServiceContainer {
	repos := RepoFactory(repositories.New)
	notify := newNotifier(templates)

	return &ServiceContainer{
		AuthService:     NewAuthService(repos, notify),
		RequestService:  NewRequestService(repos, notify),
		PartnerService:  NewPartnerService(repos, notify),
		QuoteService:    NewQuoteService(repos, notify),
		ChatService:     NewChatService(repos, store, broadcaster),
		AdminService:    NewAdminService(repos),
		DocumentService: NewDocumentService(repos, store),
	}
}
