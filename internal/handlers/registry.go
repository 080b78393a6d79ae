package handlers

import (
	"safetyconnect_backend/internal/services"
	"safetyconnect_backend/internal/storage"
	"safetyconnect_backend/internal/validator"
)

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler     *AuthHandler
	RequestHandler  *RequestHandler
	PartnerHandler  *PartnerHandler
	QuoteHandler    *QuoteHandler
	ChatHandler     *ChatHandler
	AdminHandler    *AdminHandler
	DocumentHandler *DocumentHandler
	FileHandler     *FileHandler
}

// NewAppHandlers wires the handlers over a shared base handler.
func NewAppHandlers(svcs *services.ServiceContainer, v *validator.Validator, store storage.Storage) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:     NewAuthHandler(base, svcs.AuthService),
		RequestHandler:  NewRequestHandler(base, svcs.RequestService, svcs.QuoteService),
		PartnerHandler:  NewPartnerHandler(base, svcs.PartnerService),
		QuoteHandler:    NewQuoteHandler(base, svcs.QuoteService),
		ChatHandler:     NewChatHandler(base, svcs.ChatService),
		AdminHandler:    NewAdminHandler(base, svcs.AdminService),
		DocumentHandler: NewDocumentHandler(base, svcs.DocumentService),
		FileHandler:     NewFileHandler(base, store),
	}
}
