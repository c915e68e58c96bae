// Package directory implements the user-directory provider: lookup, search,
// pagination and credential validate/update against the external user store,
// with a per-unit-of-work identity cache in front of it.
package directory

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/userfed/internal/common"
	"github.com/dmitrijs2005/userfed/internal/logging"
	"github.com/dmitrijs2005/userfed/internal/server/credentials"
	"github.com/dmitrijs2005/userfed/internal/server/users"
)

// Provider serves one unit of work (one request or transaction). Construct a
// fresh instance per unit of work and discard it afterwards; the embedded
// cache guarantees at most one store query per username for the provider's
// lifetime and must never be shared between concurrent units.
type Provider struct {
	providerID string
	repo       users.Repository
	cache      *Cache
	logger     logging.Logger
}

var (
	_ UserLookup          = (*Provider)(nil)
	_ UserQuery           = (*Provider)(nil)
	_ CredentialValidator = (*Provider)(nil)
	_ CredentialUpdater   = (*Provider)(nil)
)

func NewProvider(providerID string, repo users.Repository, logger logging.Logger) *Provider {
	return &Provider{
		providerID: providerID,
		repo:       repo,
		cache:      NewCache(),
		logger:     logger,
	}
}

// LookupByUsername consults the cache first; on a miss it queries the store
// and caches a hit under the requested name. Negative results are not
// cached, so repeated misses re-query the store.
func (p *Provider) LookupByUsername(ctx context.Context, username string) *Identity {
	if cached := p.cache.Get(username); cached != nil {
		return cached
	}

	record, err := p.repo.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			p.logger.Error(ctx, "user lookup failed", "username", username, "error", err)
		}
		return nil
	}

	identity := p.wrap(record)
	p.cache.Put(username, identity)

	return identity
}

// LookupByID decomposes the composite identifier and delegates to
// LookupByUsername.
func (p *Provider) LookupByID(ctx context.Context, id string) (*Identity, error) {
	username, err := UsernameFromID(id)
	if err != nil {
		return nil, err
	}
	return p.LookupByUsername(ctx, username), nil
}

// Count returns the store's row count, or 0 after logging when the store
// call fails.
func (p *Provider) Count(ctx context.Context) int64 {
	count, err := p.repo.Count(ctx)
	if err != nil {
		p.logger.Error(ctx, "user count failed", "error", err)
		return 0
	}
	return count
}

// ListUsers materializes every row in store order.
func (p *Provider) ListUsers(ctx context.Context) []*Identity {
	records, err := p.repo.ListAll(ctx)
	if err != nil {
		p.logger.Error(ctx, "user list failed", "error", err)
		return nil
	}
	return p.wrapAll(records)
}

// ListUsersPage applies first/max as a view over the full result: skip
// first items, take up to max. Negative values clamp to 0 and an offset
// beyond the result size yields an empty page.
func (p *Provider) ListUsersPage(ctx context.Context, first, max int) []*Identity {
	return page(p.ListUsers(ctx), first, max)
}

// Search returns identities whose username contains term, preserving store
// order. An empty term mirrors the host's "no filter" convention and lists
// all users.
func (p *Provider) Search(ctx context.Context, term string) []*Identity {
	if term == "" {
		return p.ListUsers(ctx)
	}

	records, err := p.repo.SearchByUsername(ctx, term)
	if err != nil {
		p.logger.Error(ctx, "user search failed", "term", term, "error", err)
		return nil
	}
	return p.wrapAll(records)
}

// SearchPage pages Search the same way ListUsersPage pages ListUsers.
func (p *Provider) SearchPage(ctx context.Context, term string, first, max int) []*Identity {
	return page(p.Search(ctx, term), first, max)
}

// SupportsCredentialType is true only for password credentials.
func (p *Provider) SupportsCredentialType(kind CredentialKind) bool {
	return kind == CredentialPassword
}

// IsValid recomputes the hash of the supplied secret using the salt and
// iteration count embedded in the stored credential and compares in constant
// time. Every failure mode reads as "not valid"; nothing escapes as an
// error.
func (p *Provider) IsValid(ctx context.Context, identity *Identity, input CredentialInput) bool {
	if !p.SupportsCredentialType(input.Kind) || identity == nil {
		return false
	}

	cred, err := credentials.Parse(identity.record.PasswordHash)
	if err != nil {
		p.logger.Error(ctx, "stored credential unreadable", "username", identity.Username(), "error", err)
		return false
	}

	ok, err := cred.Verify(input.Secret)
	if err != nil {
		p.logger.Error(ctx, "credential verification failed", "username", identity.Username(), "error", err)
		return false
	}

	return ok
}

// UpdateCredential derives a fresh salted hash at the current defaults,
// writes it through the repository and, only once the store confirms a
// single-row update, replaces the cached record's hash in place so later
// reads in this unit of work see the new value without a re-query.
func (p *Provider) UpdateCredential(ctx context.Context, identity *Identity, input CredentialInput) (bool, error) {
	if !p.SupportsCredentialType(input.Kind) || identity == nil {
		return false, nil
	}

	cred, err := credentials.New(input.Secret)
	if err != nil {
		// Hasher misconfiguration is fatal, not a failed update.
		return false, err
	}

	encoded := cred.String()

	affected, err := p.repo.UpdatePasswordHash(ctx, identity.record.UserID, encoded)
	if err != nil {
		p.logger.Error(ctx, "credential update failed", "username", identity.Username(), "error", err)
		return false, nil
	}

	if affected != 1 {
		if affected > 1 {
			p.logger.Warn(ctx, "credential update matched multiple rows",
				"username", identity.Username(), "rows", affected)
		}
		return false, nil
	}

	identity.record.PasswordHash = encoded

	return true, nil
}

// DisableCredential is a no-op: the external store has no disabled state for
// passwords.
func (p *Provider) DisableCredential(ctx context.Context, identity *Identity, kind CredentialKind) {
	p.logger.Warn(ctx, "disabling credentials is not supported", "kind", string(kind))
}

func (p *Provider) wrap(record *users.User) *Identity {
	return &Identity{providerID: p.providerID, record: record}
}

func (p *Provider) wrapAll(records []*users.User) []*Identity {
	identities := make([]*Identity, 0, len(records))
	for _, record := range records {
		identities = append(identities, p.wrap(record))
	}
	return identities
}

func page(identities []*Identity, first, max int) []*Identity {
	if first < 0 {
		first = 0
	}
	if max < 0 {
		max = 0
	}

	if first >= len(identities) {
		return nil
	}

	// Computed this way so a huge max cannot overflow first+max.
	end := len(identities)
	if max < end-first {
		end = first + max
	}

	return identities[first:end]
}
