package directory

import "context"

// CredentialKind is the category of authentication factor.
type CredentialKind string

// CredentialPassword is the only credential kind the external store holds.
const CredentialPassword CredentialKind = "password"

// CredentialInput carries one supplied credential to validate or store.
type CredentialInput struct {
	Kind   CredentialKind
	Secret string
}

// The provider's capabilities are split so a host integration can depend
// only on the ones it needs. Provider implements all four.

// UserLookup resolves single identities.
type UserLookup interface {
	// LookupByUsername returns the identity for the exact username, or nil
	// when no row matches or the store is unreachable.
	LookupByUsername(ctx context.Context, username string) *Identity

	// LookupByID resolves a composite "<providerID>:<username>" identifier.
	// It returns common.ErrMalformedID when the id cannot be decomposed.
	LookupByID(ctx context.Context, id string) (*Identity, error)
}

// UserQuery enumerates and searches identities.
type UserQuery interface {
	// Count returns the store's row count, or 0 when the store call fails.
	Count(ctx context.Context) int64

	// ListUsers returns every identity in store order.
	ListUsers(ctx context.Context) []*Identity

	// ListUsersPage returns the [first, first+max) view of ListUsers.
	ListUsersPage(ctx context.Context, first, max int) []*Identity

	// Search returns identities whose username contains term,
	// case-insensitively. An empty term lists all users.
	Search(ctx context.Context, term string) []*Identity

	// SearchPage applies ListUsersPage paging semantics to Search.
	SearchPage(ctx context.Context, term string, first, max int) []*Identity
}

// CredentialValidator checks supplied credentials against stored hashes.
type CredentialValidator interface {
	SupportsCredentialType(kind CredentialKind) bool

	// IsValid reports whether the supplied credential matches the identity's
	// stored hash. It never returns an error: unknown identities, unsupported
	// kinds, malformed stored hashes and store failures all read as invalid.
	IsValid(ctx context.Context, identity *Identity, input CredentialInput) bool
}

// CredentialUpdater rotates stored credentials.
type CredentialUpdater interface {
	// UpdateCredential derives a fresh hash for the secret and writes it
	// through to the store. The boolean reports whether exactly one row was
	// updated; the error is reserved for hasher misconfiguration, which must
	// surface rather than read as a failed update.
	UpdateCredential(ctx context.Context, identity *Identity, input CredentialInput) (bool, error)

	// DisableCredential is unsupported by the external store; it logs a
	// warning and does nothing.
	DisableCredential(ctx context.Context, identity *Identity, kind CredentialKind)
}
