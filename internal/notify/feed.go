package notify

import "sync"

// Feed fans row-change pings out to in-process subscribers. A ping carries no
// payload: it means only "something in this table changed, re-fetch". Delivery
// is best-effort; a subscriber that has not drained its pending ping does not
// get another one queued, which is harmless because one re-fetch picks up
// every change made so far.
type Feed struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]chan struct{}
}

// Subscription is one view's handle on the feed. Receive pings from C; call
// Feed.Unsubscribe when the view goes away.
type Subscription struct {
	C     <-chan struct{}
	table string
	id    int
	ch    chan struct{}
}

func NewFeed() *Feed {
	return &Feed{subs: make(map[string]map[int]chan struct{})}
}

func (f *Feed) Subscribe(table string) *Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	ch := make(chan struct{}, 1)
	if f.subs[table] == nil {
		f.subs[table] = make(map[int]chan struct{})
	}
	f.subs[table][f.nextID] = ch

	return &Subscription{C: ch, table: table, id: f.nextID, ch: ch}
}

func (f *Feed) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if subs, ok := f.subs[sub.table]; ok {
		delete(subs, sub.id)
	}
}

// Publish pings every subscriber of the table without blocking.
func (f *Feed) Publish(table string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, ch := range f.subs[table] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func (f *Feed) SubscriberCount(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs[table])
}
