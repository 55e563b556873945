// Package store holds the per-domain reactive caches. Each store owns the
// latest full snapshot of its domain, replaced wholesale after every
// successful fetch; mutations write through the database and end with a
// re-fetch of the whole domain, so published state is always a snapshot
// taken after the last completed write.
//
// Every fetch and mutation reports failure through its returned error.
// A failed fetch leaves the previous snapshot in place and records the
// message for callers that poll state instead of awaiting calls.
package store

import "sync"

// fetchGate issues sequence tokens so a fetch that was overtaken by a
// newer one can discard its result instead of publishing stale state.
// Callers must hold the owning store's lock around begin and stale.
type fetchGate struct {
	seq uint64
}

func (g *fetchGate) begin() uint64 {
	g.seq++
	return g.seq
}

func (g *fetchGate) stale(token uint64) bool {
	return token != g.seq
}

// notifier fans out change notifications to subscribers
type notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

// subscribe registers fn to run after every snapshot replacement and
// returns a function that removes the subscription.
func (n *notifier) subscribe(fn func()) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]func())
	}
	id := n.next
	n.next++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

func (n *notifier) notify() {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// RoleRequirement describes a role slot when creating or updating a
// template or shift: the role and how many people it needs.
type RoleRequirement struct {
	RoleID        string
	RequiredCount int
}

// ShiftSlot is a role slot supplied when creating or updating a shift,
// optionally carrying initial assignments.
type ShiftSlot struct {
	RoleID            string
	RequiredCount     int
	AssignedPersonIDs []string
}

// requiredOrDefault applies the default headcount of 1
func requiredOrDefault(count int) int {
	if count <= 0 {
		return 1
	}
	return count
}
