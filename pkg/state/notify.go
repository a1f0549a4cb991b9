// Package state holds the shared change-notification plumbing used by the
// booking form state containers.
package state

// Listener receives the snapshot produced by a mutation.
type Listener[T any] func(T)

// Notifier fans snapshots out to subscribed listeners. It is not safe for
// concurrent use; each state container is owned by a single UI surface.
type Notifier[T any] struct {
	next      int
	listeners map[int]Listener[T]
	order     []int
}

// Subscribe registers fn and returns a function that removes it again.
// Listeners run in subscription order.
func (n *Notifier[T]) Subscribe(fn Listener[T]) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	if n.listeners == nil {
		n.listeners = make(map[int]Listener[T])
	}
	id := n.next
	n.next++
	n.listeners[id] = fn
	n.order = append(n.order, id)
	return func() {
		if _, ok := n.listeners[id]; !ok {
			return
		}
		delete(n.listeners, id)
		for i, v := range n.order {
			if v == id {
				n.order = append(n.order[:i], n.order[i+1:]...)
				break
			}
		}
	}
}

// Notify calls every listener with snap.
func (n *Notifier[T]) Notify(snap T) {
	if len(n.order) == 0 {
		return
	}
	ids := append([]int(nil), n.order...)
	for _, id := range ids {
		if fn, ok := n.listeners[id]; ok {
			fn(snap)
		}
	}
}

// Len returns the number of subscribed listeners.
func (n *Notifier[T]) Len() int {
	return len(n.order)
}
