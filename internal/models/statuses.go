package models

type UserRole string
type UserStatus string
type PartnerStatus string
type Membership string
type QuoteStatus string
type MailJobStatus string

const (
	UserRoleClient  UserRole = "client"
	UserRolePartner UserRole = "partner"
	UserRoleAdmin   UserRole = "admin"

	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	// Partner approval is monotonic: pending -> approved or
	// pending -> rejected, never back.
	PartnerStatusPending  PartnerStatus = "pending"
	PartnerStatusApproved PartnerStatus = "approved"
	PartnerStatusRejected PartnerStatus = "rejected"

	MembershipFree    Membership = "free"
	MembershipPremium Membership = "premium"

	QuoteStatusPending  QuoteStatus = "pending"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"

	MailJobStatusQueued MailJobStatus = "queued"
	MailJobStatusSent   MailJobStatus = "sent"
	MailJobStatusFailed MailJobStatus = "failed"
)
