// Package domain holds typed identifiers and small domain primitives shared
// across modules. Wrapping uuid.UUID in distinct types keeps a PersonID from
// being passed where a TributeID is expected.
package domain

import "github.com/google/uuid"

// PersonID identifies a deceased person record in the registry.
type PersonID uuid.UUID

// NewPersonID returns a fresh random PersonID.
func NewPersonID() PersonID {
	return PersonID(uuid.New())
}

// ParsePersonID parses the canonical string form of a PersonID.
func ParsePersonID(s string) (PersonID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return PersonID{}, err
	}
	return PersonID(u), nil
}

func (id PersonID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id PersonID) String() string {
	return uuid.UUID(id).String()
}

// TributeID identifies a condolence record in the tribute store.
type TributeID uuid.UUID

// NewTributeID returns a fresh random TributeID.
func NewTributeID() TributeID {
	return TributeID(uuid.New())
}

// ParseTributeID parses the canonical string form of a TributeID.
func ParseTributeID(s string) (TributeID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return TributeID{}, err
	}
	return TributeID(u), nil
}

func (id TributeID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id TributeID) String() string {
	return uuid.UUID(id).String()
}

// MemorialID references a memorial page entity owned by the surrounding
// platform. The registry only stores the link; it never dereferences it.
type MemorialID uuid.UUID

func (id MemorialID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func (id MemorialID) String() string {
	return uuid.UUID(id).String()
}
