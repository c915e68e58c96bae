package users

// User is the canonical in-memory form of one row in the external user
// store. It is constructed only by a Repository; after that the only field
// ever mutated is PasswordHash, replaced in place by the directory provider
// once a credential update has been confirmed.
type User struct {
	// UserID is the store's numeric identifier, immutable after creation.
	UserID int64

	// Username is unique within the store and doubles as the federation's
	// external identifier.
	Username string

	// PasswordHash is the stored credential in its three-segment text form,
	// "<hashBase64>.<saltBase64>.<iterations>". Empty when the row has no
	// password set.
	PasswordHash string

	// Optional display fields.
	FirstName  string
	LastName   string
	Department string
}
