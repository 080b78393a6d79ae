// Package repositories is the gorm data access layer. Each repository is
// an interface over a *gorm.DB so services can be tested against fakes.
package repositories

import "gorm.io/gorm"

// Repositories bundles every repository over one database handle. Services
// receive a factory of this bundle, so the same request-scoped handle (or
// transaction) backs all data access of a call.
type Repositories struct {
	Users     UserRepository
	Partners  PartnerRepository
	Requests  RequestRepository
	Quotes    QuoteRepository
	Chats     ChatRepository
	MailJobs  MailJobRepository
	Documents DocumentRepository
}

func New(db *gorm.DB) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(db),
		Partners:  NewPartnerRepository(db),
		Requests:  NewRequestRepository(db),
		Quotes:    NewQuoteRepository(db),
		Chats:     NewChatRepository(db),
		MailJobs:  NewMailJobRepository(db),
		Documents: NewDocumentRepository(db),
	}
}
