package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// touch bumps a file's mtime so Watch sees a change even on filesystems
// with coarse timestamp resolution.
func touch(path string, at time.Time) error {
	return os.Chtimes(path, at, at)
}

func TestStore_Current(t *testing.T) {
	initial := Preference{Zone: "WLY01", District: "Kuala Lumpur", Theme: "day"}
	s := NewStore(initial)
	if got := s.Current(); got != initial {
		t.Errorf("Current() = %+v, want %+v", got, initial)
	}
}

func TestStore_SetNotifiesSubscribers(t *testing.T) {
	s := NewStore(Preference{Zone: "WLY01"})
	sub := s.Subscribe()

	next := Preference{Zone: "SGR01", District: "Gombak"}
	s.Set(next)

	select {
	case got := <-sub:
		if got != next {
			t.Errorf("received %+v, want %+v", got, next)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber not notified")
	}

	if s.Current() != next {
		t.Errorf("Current() = %+v after Set", s.Current())
	}
}

func TestStore_SetUnchangedIsNoOp(t *testing.T) {
	p := Preference{Zone: "WLY01"}
	s := NewStore(p)
	sub := s.Subscribe()

	s.Set(p)

	select {
	case got := <-sub:
		t.Errorf("unexpected notification for unchanged value: %+v", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestStore_SlowSubscriberGetsLatest(t *testing.T) {
	s := NewStore(Preference{Zone: "WLY01"})
	sub := s.Subscribe()

	// Two rapid updates without the subscriber reading: latest wins.
	s.Set(Preference{Zone: "SGR01"})
	s.Set(Preference{Zone: "PNG01"})

	select {
	case got := <-sub:
		if got.Zone != "PNG01" {
			t.Errorf("received %+v, want latest (PNG01)", got)
		}
	case <-time.After(time.Second):
		t.Fatal("subscriber not notified")
	}
}

func TestStore_Close(t *testing.T) {
	s := NewStore(Preference{Zone: "WLY01"})
	sub := s.Subscribe()

	s.Close()

	if _, ok := <-sub; ok {
		t.Error("subscriber channel not closed")
	}

	// Set after close is a no-op, and a late Subscribe gets a closed channel.
	s.Set(Preference{Zone: "SGR01"})
	if _, ok := <-s.Subscribe(); ok {
		t.Error("late subscriber channel not closed")
	}

	s.Close() // idempotent
}

func TestStore_WatchPicksUpFileChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := (&Config{Zone: "WLY01", District: "Kuala Lumpur"}).SaveTo(path); err != nil {
		t.Fatal(err)
	}

	s := NewStore(Preference{Zone: "WLY01", District: "Kuala Lumpur"})
	sub := s.Subscribe()

	stop := make(chan struct{})
	defer close(stop)
	go s.Watch(path, 10*time.Millisecond, stop)

	// Ensure the mtime moves forward on filesystems with coarse timestamps.
	time.Sleep(20 * time.Millisecond)
	if err := (&Config{Zone: "SGR01", District: "Gombak"}).SaveTo(path); err != nil {
		t.Fatal(err)
	}
	now := time.Now().Add(time.Second)
	if err := touch(path, now); err != nil {
		t.Fatal(err)
	}

	select {
	case got := <-sub:
		if got.Zone != "SGR01" || got.District != "Gombak" {
			t.Errorf("watch delivered %+v, want SGR01/Gombak", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not pick up the file change")
	}
}
