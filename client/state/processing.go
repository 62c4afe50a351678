package state

import (
	"errors"
	"sync"

	"github.com/yogesh1825/CareerConnect-Job-Portal/types"
)

// ErrBusy is returned when an action is already running for the same row.
var ErrBusy = errors.New("already processing")

// Processing tracks rows with an action in flight, so repeated clicks on a
// status change or delete are ignored until the first one finishes.
type Processing struct {
	mu   sync.Mutex
	rows map[types.ID]struct{}
}

func NewProcessing() *Processing {
	return &Processing{rows: make(map[types.ID]struct{})}
}

// Begin marks id as busy. It returns false when id already is.
func (p *Processing) Begin(id types.ID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, busy := p.rows[id]; busy {
		return false
	}
	p.rows[id] = struct{}{}
	return true
}

func (p *Processing) End(id types.ID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.rows, id)
}

func (p *Processing) Active(id types.ID) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, busy := p.rows[id]
	return busy
}
