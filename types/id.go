package types

// ID identifies a stored record. Depending on the configured store it holds a
// MongoDB ObjectID in hex form or a UUID string. IDs are compared as values;
// two IDs are the same record only if they are equal.
type ID string

// String returns the raw identifier.
func (id ID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is empty.
func (id ID) IsZero() bool {
	return id == ""
}
