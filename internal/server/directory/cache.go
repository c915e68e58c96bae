package directory

// Cache memoizes identities resolved during one unit of work, keyed by the
// username the caller asked for. Entries are never evicted; the cache simply
// dies with its provider when the unit of work ends. It is owned by exactly
// one provider instance and is never shared between concurrent units of
// work, so it needs no locking.
type Cache struct {
	entries map[string]*Identity
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]*Identity)}
}

// Get returns the cached identity for the username, or nil.
func (c *Cache) Get(username string) *Identity {
	return c.entries[username]
}

// Put stores the identity under the username. At most one entry exists per
// username; a second Put overwrites the first.
func (c *Cache) Put(username string, identity *Identity) {
	c.entries[username] = identity
}
