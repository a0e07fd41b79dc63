package enum

// ActorType distinguishes the two kinds of authenticated callers
type ActorType string

const (
	ActorTypeAdmin ActorType = "admin"
	ActorTypeStore ActorType = "store"
)

func (t ActorType) String() string {
	return string(t)
}

// Valid reports whether t is a known actor type
func (t ActorType) Valid() bool {
	return t == ActorTypeAdmin || t == ActorTypeStore
}
