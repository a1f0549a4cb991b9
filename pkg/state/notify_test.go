package state

import "testing"

func TestNotifierOrderAndCancel(t *testing.T) {
	var n Notifier[int]
	var got []string

	cancelA := n.Subscribe(func(v int) { got = append(got, "a") })
	n.Subscribe(func(v int) { got = append(got, "b") })

	n.Notify(1)
	cancelA()
	cancelA()
	n.Notify(2)

	want := []string{"a", "b", "b"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if n.Len() != 1 {
		t.Fatalf("expected one listener left, got %d", n.Len())
	}
}

func TestNotifierCancelDuringNotify(t *testing.T) {
	var n Notifier[int]
	calls := 0
	var cancel func()
	cancel = n.Subscribe(func(int) {
		calls++
		cancel()
	})
	n.Notify(1)
	n.Notify(2)
	if calls != 1 {
		t.Fatalf("expected single call, got %d", calls)
	}
}

func TestNotifierNilListener(t *testing.T) {
	var n Notifier[string]
	n.Subscribe(nil)()
	n.Notify("x")
	if n.Len() != 0 {
		t.Fatalf("nil listener should not be registered")
	}
}
