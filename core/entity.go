package core

// Entity is a unique identifier for an entity.
// IDs are allocated by the world as a dense monotonic counter; zero is never
// a valid entity and can be used as a sentinel.
type Entity uint64

// NoEntity is the zero sentinel returned by lookups that find nothing.
const NoEntity Entity = 0
