package backend

import "sync"

// Notifier fans session events out to subscribers. Handlers run on the
// publishing goroutine, in subscription order.
type Notifier struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]func(Event)
	order    []int
}

func NewNotifier() *Notifier {
	return &Notifier{
		handlers: make(map[int]func(Event)),
	}
}

func (n *Notifier) Subscribe(fn func(Event)) Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	id := n.nextID
	n.handlers[id] = fn
	n.order = append(n.order, id)

	return &subscription{notifier: n, id: id}
}

func (n *Notifier) Publish(event Event) {
	n.mu.RLock()
	handlers := make([]func(Event), 0, len(n.order))
	for _, id := range n.order {
		handlers = append(handlers, n.handlers[id])
	}
	n.mu.RUnlock()

	for _, fn := range handlers {
		fn(event)
	}
}

func (n *Notifier) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()

	return len(n.handlers)
}

func (n *Notifier) remove(id int) {
	n.mu.Lock()
	defer n.mu.Unlock()

	delete(n.handlers, id)
	for i, v := range n.order {
		if v == id {
			n.order = append(n.order[:i], n.order[i+1:]...)
			break
		}
	}
}

type subscription struct {
	once     sync.Once
	notifier *Notifier
	id       int
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.notifier.remove(s.id)
	})
}
