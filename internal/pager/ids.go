package pager

import (
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces unique control identifiers
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator generates random UUID identifiers
type UUIDGenerator struct{}

// NewID returns a new random UUID string
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// SequenceGenerator generates predictable identifiers ("prefix-1", "prefix-2", ...)
type SequenceGenerator struct {
	Prefix string
	n      atomic.Int64
}

// NewID returns the next identifier in the sequence
func (g *SequenceGenerator) NewID() string {
	return fmt.Sprintf("%s-%d", g.Prefix, g.n.Add(1))
}

func newControlIDs(gen IDGenerator) (ControlIDs, error) {
	ids := ControlIDs{
		Back:    gen.NewID(),
		Label:   gen.NewID(),
		Forward: gen.NewID(),
	}
	if ids.Back == ids.Label || ids.Back == ids.Forward || ids.Label == ids.Forward {
		return ControlIDs{}, fmt.Errorf("%w: navigation ids are not distinct: %+v", ErrInvalidControlID, ids)
	}
	for _, id := range []string{ids.Back, ids.Label, ids.Forward} {
		if err := checkID(id); err != nil {
			return ControlIDs{}, err
		}
	}
	return ids, nil
}
