// Package constants holds shared values used across the application.
package constants

// Gin context keys for the authenticated user.
const (
	ContextKeyUserID   = "user_id"
	ContextKeyUsername = "username"
	ContextKeyRoles    = "roles"
)

// ContextKeyAuditEntityID carries the id of an entity created during the
// request, for the audit trail.
const ContextKeyAuditEntityID = "audit_entity_id"

// Pagination bounds.
const (
	MinPage         = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// MaxUploadSize caps uploaded files at 10 MB.
const MaxUploadSize = 10 << 20
