package domain

// ConsistencyReport is the side-by-side view produced by the inspector for
// one email: the provider identity, the user row joined by its identity
// reference, and every user row matching the email. The report carries raw
// lookup errors instead of interpreting them; it is a diagnostic primitive,
// not a decision-maker.
type ConsistencyReport struct {
	Identity       *Identity     `json:"identity"`
	UserByIdentity *UserRecord   `json:"user_by_identity"`
	UsersByEmail   []*UserRecord `json:"users_by_email"`

	// Raw store error strings, empty when the lookup succeeded. A missing
	// row is reported through the nil/empty fields above, not here.
	LinkLookupError  string `json:"link_lookup_error,omitempty"`
	EmailLookupError string `json:"email_lookup_error,omitempty"`
}
