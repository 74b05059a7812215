package kratos

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	kratosclient "github.com/ory/kratos-client-go"

	"provisioning-service/app/domain"
	"provisioning-service/app/port"
)

// IdentityAdapter implements port.IdentityProvider on top of the Kratos
// admin API. Identity writes in Kratos are not read-your-writes; a GET right
// after a create can 404, which this adapter reports as a transient
// visibility error so callers can poll.
type IdentityAdapter struct {
	client   *Client
	schemaID string
	logger   *slog.Logger
}

// NewIdentityAdapter creates a new adapter
func NewIdentityAdapter(client *Client, schemaID string, logger *slog.Logger) port.IdentityProvider {
	return &IdentityAdapter{
		client:   client,
		schemaID: schemaID,
		logger:   logger.With("component", "kratos_identity_adapter"),
	}
}

// CreateIdentity creates an identity through the admin API with password
// credentials attached, mirroring what a self-service signup would produce.
func (a *IdentityAdapter) CreateIdentity(ctx context.Context, email, password string, profile domain.IdentityProfile) (*domain.Identity, error) {
	body := kratosclient.CreateIdentityBody{
		SchemaId: a.schemaID,
		Traits: map[string]interface{}{
			"email": email,
			"name": map[string]interface{}{
				"first": profile.FirstName,
				"last":  profile.LastName,
			},
		},
	}
	if password != "" {
		body.Credentials = &kratosclient.IdentityWithCredentials{
			Password: &kratosclient.IdentityWithCredentialsPassword{
				Config: &kratosclient.IdentityWithCredentialsPasswordConfig{
					Password: &password,
				},
			},
		}
	}

	resp, httpResp, err := a.client.AdminAPI().IdentityAPI.
		CreateIdentity(ctx).
		CreateIdentityBody(body).
		Execute()
	if err != nil {
		a.logger.Error("kratos identity creation failed",
			"email", email,
			"error", err,
			"http_status", getHTTPStatus(httpResp))
		if getHTTPStatus(httpResp) == http.StatusConflict {
			return nil, fmt.Errorf("identity for %s already exists: %w", email, err)
		}
		return nil, fmt.Errorf("kratos create identity: %w", err)
	}

	identity, err := a.toDomainIdentity(resp)
	if err != nil {
		return nil, err
	}

	a.logger.Info("kratos identity created", "identity_id", identity.ID, "email", email)
	return identity, nil
}

// GetIdentity reads one identity by id. A 404 maps to a transient
// visibility error; the identity may exist and not be readable yet.
func (a *IdentityAdapter) GetIdentity(ctx context.Context, identityID uuid.UUID) (*domain.Identity, error) {
	resp, httpResp, err := a.client.AdminAPI().IdentityAPI.
		GetIdentity(ctx, identityID.String()).
		Execute()
	if err != nil {
		if getHTTPStatus(httpResp) == http.StatusNotFound {
			return nil, &domain.TransientVisibilityError{IdentityID: identityID, Cause: err}
		}
		a.logger.Error("kratos identity lookup failed",
			"identity_id", identityID,
			"error", err,
			"http_status", getHTTPStatus(httpResp))
		return nil, fmt.Errorf("kratos get identity %s: %w", identityID, err)
	}

	return a.toDomainIdentity(resp)
}

// GetIdentityByEmail resolves an identity through its credentials
// identifier. Kratos matching is exact, so the first hit is the identity.
func (a *IdentityAdapter) GetIdentityByEmail(ctx context.Context, email string) (*domain.Identity, error) {
	identities, httpResp, err := a.client.AdminAPI().IdentityAPI.
		ListIdentities(ctx).
		CredentialsIdentifier(email).
		Execute()
	if err != nil {
		a.logger.Error("kratos identity search failed",
			"email", email,
			"error", err,
			"http_status", getHTTPStatus(httpResp))
		return nil, fmt.Errorf("kratos list identities for %s: %w", email, err)
	}

	if len(identities) == 0 {
		return nil, &domain.NoIdentityError{Email: email}
	}

	return a.toDomainIdentity(&identities[0])
}

// DeleteIdentity removes the identity. A 404 means it is already gone,
// which keeps the recover repair idempotent.
func (a *IdentityAdapter) DeleteIdentity(ctx context.Context, identityID uuid.UUID) error {
	httpResp, err := a.client.AdminAPI().IdentityAPI.
		DeleteIdentity(ctx, identityID.String()).
		Execute()
	if err != nil {
		if getHTTPStatus(httpResp) == http.StatusNotFound {
			a.logger.Info("identity already deleted", "identity_id", identityID)
			return nil
		}
		a.logger.Error("kratos identity delete failed",
			"identity_id", identityID,
			"error", err,
			"http_status", getHTTPStatus(httpResp))
		return fmt.Errorf("kratos delete identity %s: %w", identityID, err)
	}

	return nil
}

// toDomainIdentity maps a Kratos identity onto the domain type.
func (a *IdentityAdapter) toDomainIdentity(resp *kratosclient.Identity) (*domain.Identity, error) {
	id, err := uuid.Parse(resp.Id)
	if err != nil {
		return nil, fmt.Errorf("kratos returned a non-uuid identity id %q: %w", resp.Id, err)
	}

	identity := &domain.Identity{ID: id, Email: extractEmailTrait(resp)}
	if createdAt, ok := resp.GetCreatedAtOk(); ok && createdAt != nil {
		identity.CreatedAt = *createdAt
	}
	return identity, nil
}

// extractEmailTrait pulls the email out of the schema-shaped traits blob.
func extractEmailTrait(resp *kratosclient.Identity) string {
	traits, ok := resp.GetTraits().(map[string]interface{})
	if !ok {
		return ""
	}
	email, _ := traits["email"].(string)
	return email
}
