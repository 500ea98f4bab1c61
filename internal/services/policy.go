package services

// Actor is the colonist performing an operation.
type Actor struct {
	ID         uint64
	Privileged bool
}

// Policy decides whether actor may modify a record owned by ownerID. An
// ownerID of zero means the record has no owner.
type Policy interface {
	Allow(actor Actor, ownerID uint64) bool
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(actor Actor, ownerID uint64) bool

// Allow implements Policy.
func (f PolicyFunc) Allow(actor Actor, ownerID uint64) bool {
	return f(actor, ownerID)
}

var (
	// OwnerOrPrivileged lets the owner or any privileged actor through.
	OwnerOrPrivileged Policy = PolicyFunc(func(actor Actor, ownerID uint64) bool {
		return actor.Privileged || (ownerID != 0 && actor.ID == ownerID)
	})

	// PrivilegedOnly lets only privileged actors through.
	PrivilegedOnly Policy = PolicyFunc(func(actor Actor, _ uint64) bool {
		return actor.Privileged
	})
)

// Privileges resolves actors from colonist ids.
type Privileges struct {
	ids map[uint64]struct{}
}

// NewPrivileges returns a checker treating ids as privileged.
func NewPrivileges(ids []uint64) *Privileges {
	p := &Privileges{ids: make(map[uint64]struct{}, len(ids))}
	for _, id := range ids {
		p.ids[id] = struct{}{}
	}
	return p
}

// IsPrivileged reports whether id is privileged.
func (p *Privileges) IsPrivileged(id uint64) bool {
	if p == nil {
		return false
	}
	_, ok := p.ids[id]
	return ok
}

// Actor returns the actor for colonist id.
func (p *Privileges) Actor(id uint64) Actor {
	return Actor{ID: id, Privileged: p.IsPrivileged(id)}
}

// SystemActor is the privileged actor of local maintenance tools that work
// on the store directly.
var SystemActor = Actor{Privileged: true}
