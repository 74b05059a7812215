package domain

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// maxSubdomainLength caps derived subdomains so they remain usable as DNS
// labels. Collision suffixes ("-123") may push an allocated subdomain past
// this, which is why validation allows a little headroom.
const maxSubdomainLength = 30

// subdomainRegex validates tenant subdomains (lowercase alphanumerics and
// inner hyphens only).
var subdomainRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// nonAlphanumericRuns matches every run of characters that cannot appear in
// a subdomain; each run collapses to a single hyphen.
var nonAlphanumericRuns = regexp.MustCompile(`[^a-z0-9]+`)

// TenantRecord is one provisioned organization in the relational store. The
// subdomain is globally unique; the store enforces this with a UNIQUE
// constraint in addition to the allocator's pre-check.
type TenantRecord struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Subdomain  string    `json:"subdomain"`
	AdminEmail string    `json:"admin_email"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewTenantRecord creates a tenant record with validation.
func NewTenantRecord(name, subdomain, adminEmail string) (*TenantRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("tenant name is required")
	}

	if subdomain == "" {
		return nil, fmt.Errorf("subdomain is required")
	}
	if len(subdomain) > maxSubdomainLength+4 {
		return nil, fmt.Errorf("subdomain must be %d characters or less", maxSubdomainLength+4)
	}
	if !subdomainRegex.MatchString(subdomain) {
		return nil, fmt.Errorf("subdomain must contain only lowercase letters, numbers, and inner hyphens")
	}

	if _, err := mail.ParseAddress(adminEmail); err != nil {
		return nil, fmt.Errorf("invalid admin email: %w", err)
	}

	return &TenantRecord{
		ID:         uuid.New(),
		Name:       name,
		Subdomain:  subdomain,
		AdminEmail: adminEmail,
		CreatedAt:  time.Now(),
	}, nil
}

// DeriveSubdomain turns a human-readable organization name into a URL-safe
// slug: lowercase, every run of non-alphanumeric characters replaced with a
// single hyphen, leading/trailing hyphens trimmed, truncated to
// maxSubdomainLength. The result can be empty when the name contains no
// alphanumeric characters at all.
func DeriveSubdomain(name string) string {
	slug := strings.ToLower(name)
	slug = nonAlphanumericRuns.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > maxSubdomainLength {
		slug = strings.TrimRight(slug[:maxSubdomainLength], "-")
	}
	return slug
}
