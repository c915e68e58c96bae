package directory

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/userfed/internal/common"
	"github.com/dmitrijs2005/userfed/internal/server/users"
)

// Attribute names surfaced through Identity.Attributes.
const (
	AttrFirstName  = "firstName"
	AttrLastName   = "lastName"
	AttrDepartment = "department"
)

// Identity is the externally visible representation of one user record. The
// host platform addresses it by the composite id "<providerID>:<username>".
type Identity struct {
	providerID string
	record     *users.User
}

// ID returns the composite external identifier.
func (i *Identity) ID() string {
	return i.providerID + ":" + i.record.Username
}

func (i *Identity) Username() string { return i.record.Username }

func (i *Identity) FirstName() string { return i.record.FirstName }

func (i *Identity) LastName() string { return i.record.LastName }

func (i *Identity) Department() string { return i.record.Department }

// Attributes exposes display fields, including the store-specific department
// column, as a generic attribute map.
func (i *Identity) Attributes() map[string][]string {
	attrs := make(map[string][]string, 3)

	if i.record.FirstName != "" {
		attrs[AttrFirstName] = []string{i.record.FirstName}
	}
	if i.record.LastName != "" {
		attrs[AttrLastName] = []string{i.record.LastName}
	}
	if i.record.Department != "" {
		attrs[AttrDepartment] = []string{i.record.Department}
	}

	return attrs
}

// UsernameFromID extracts the username portion of a composite identifier.
// The id is split at the first separator; anything without one is malformed.
func UsernameFromID(id string) (string, error) {
	_, username, ok := strings.Cut(id, ":")
	if !ok {
		return "", fmt.Errorf("%w: %q", common.ErrMalformedID, id)
	}
	return username, nil
}
