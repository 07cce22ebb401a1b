package core

import "fmt"

// InvalidID is never handed out by Identifiers.
const InvalidID uint32 = 0

// Identifiers hands out small integer ids that are reused once released.
// Backends use it to name the resources they own.
type Identifiers struct {
	owners []interface{}
}

func NewIdentifiers(capacity int) *Identifiers {
	// slot 0 backs InvalidID
	owners := make([]interface{}, 1, capacity+1)
	owners[0] = struct{}{}
	return &Identifiers{owners: owners}
}

// Acquire returns the lowest free id and records owner against it.
func (ids *Identifiers) Acquire(owner interface{}) uint32 {
	length := uint32(len(ids.owners))
	for i := uint32(1); i < length; i++ {
		// Existing free spot. Take it.
		if ids.owners[i] == nil {
			ids.owners[i] = owner
			return i
		}
	}

	// If here, no existing free slots. Need a new id, so push one.
	ids.owners = append(ids.owners, owner)
	return length
}

func (ids *Identifiers) Release(id uint32) error {
	if id == InvalidID || id >= uint32(len(ids.owners)) {
		return fmt.Errorf("identifier release: id '%d' out of range (max=%d). Nothing was done", id, len(ids.owners)-1)
	}
	if ids.owners[id] == nil {
		return fmt.Errorf("identifier release: id '%d' is not in use", id)
	}
	// Just zero out the entry, making it available for use.
	ids.owners[id] = nil
	return nil
}

// Owner returns what id was acquired for, nil when the id is free.
func (ids *Identifiers) Owner(id uint32) interface{} {
	if id == InvalidID || id >= uint32(len(ids.owners)) {
		return nil
	}
	return ids.owners[id]
}

// InUse counts the ids currently held.
func (ids *Identifiers) InUse() int {
	n := 0
	for _, o := range ids.owners[1:] {
		if o != nil {
			n++
		}
	}
	return n
}
