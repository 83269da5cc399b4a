package kv

// Flags is a bitset of database open options, passed to Open and down to
// the selected Driver's Connect.
type Flags uint32

const (
	// FlagNone requests default behavior: fail if the database does not
	// already exist, read-write, fsync on commit.
	FlagNone Flags = 0
	// FlagCreateIfNotExists creates the backing store if it is absent.
	FlagCreateIfNotExists Flags = 1
	// FlagReadOnly opens the database for read-only transactions only.
	FlagReadOnly Flags = 2
	// FlagDisableSync permits (but does not require) a driver to skip
	// fsync on commit for higher throughput at the cost of durability.
	FlagDisableSync Flags = 4
)

// Has reports whether all bits in want are set in f.
func (f Flags) Has(want Flags) bool { return f&want == want }
