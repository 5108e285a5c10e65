package level

import (
	"fmt"
	"sync"
)

// TransitionKind is the reason a level hands control back.
type TransitionKind int

const (
	Advance TransitionKind = iota // won, continue with Transition.To
	Victory                       // won the last level
	Defeat                        // player destroyed
	Restart                       // replay the current level
)

func (k TransitionKind) String() string {
	switch k {
	case Advance:
		return "advance"
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	case Restart:
		return "restart"
	}
	return fmt.Sprintf("transition(%d)", int(k))
}

// Transition is delivered to progression listeners.
type Transition struct {
	Kind  TransitionKind
	From  string
	To    string
	Score int
}

// Listener receives level transitions. Listeners run on the notifying
// goroutine (usually the level loop) and must not block.
type Listener func(Transition)

// Progression fans level transitions out to listeners. Listeners may
// subscribe or unsubscribe at any time, including from inside a callback;
// each notification goes to the listeners registered when it started.
type Progression struct {
	mu        sync.Mutex
	nextID    int
	ids       []int
	listeners map[int]Listener
}

func NewProgression() *Progression {
	return &Progression{listeners: make(map[int]Listener)}
}

// Subscribe registers l and returns an id for Unsubscribe.
func (p *Progression) Subscribe(l Listener) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextID++
	p.ids = append(p.ids, p.nextID)
	p.listeners[p.nextID] = l
	return p.nextID
}

// Unsubscribe removes a listener. Unknown ids are ignored.
func (p *Progression) Unsubscribe(id int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.listeners[id]; !ok {
		return
	}
	delete(p.listeners, id)
	for i, v := range p.ids {
		if v == id {
			p.ids = append(p.ids[:i], p.ids[i+1:]...)
			break
		}
	}
}

// Notify delivers t to a snapshot of the current listeners, in subscription order.
func (p *Progression) Notify(t Transition) {
	p.mu.Lock()
	snapshot := make([]Listener, 0, len(p.ids))
	for _, id := range p.ids {
		snapshot = append(snapshot, p.listeners[id])
	}
	p.mu.Unlock()

	for _, l := range snapshot {
		l(t)
	}
}
