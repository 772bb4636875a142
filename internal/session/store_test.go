package session

import (
	"testing"
	"time"
)

func TestStore_CreateOverwritesDraft(t *testing.T) {
	store := NewStore(0)

	store.Create(1, "pfa1")
	if !store.Update(1, func(s *Session) {
		s.Draft.Name = "Lunch"
		s.State = StateAwaitingAmount
	}) {
		t.Fatal("Update returned false for live session")
	}

	// Starting over discards the in-progress draft.
	store.Create(1, "pfa2")

	sess, ok := store.Get(1)
	if !ok {
		t.Fatal("Get returned absent after Create")
	}
	if sess.Cabinet != "pfa2" {
		t.Errorf("Cabinet = %q, want pfa2", sess.Cabinet)
	}
	if sess.State != StateAwaitingName {
		t.Errorf("State = %v, want StateAwaitingName", sess.State)
	}
	if sess.Draft != (Draft{}) {
		t.Errorf("Draft = %+v, want empty", sess.Draft)
	}
}

func TestStore_GetAbsent(t *testing.T) {
	store := NewStore(0)
	if _, ok := store.Get(42); ok {
		t.Fatal("Get reported a session that was never created")
	}
}

func TestStore_UpdateAbsent(t *testing.T) {
	store := NewStore(0)
	if store.Update(42, func(s *Session) { s.Draft.Name = "x" }) {
		t.Fatal("Update reported success for absent session")
	}
}

func TestStore_Delete(t *testing.T) {
	store := NewStore(0)
	store.Create(1, "pfa1")
	store.Delete(1)

	if _, ok := store.Get(1); ok {
		t.Fatal("Get reported a deleted session")
	}
	if store.Len() != 0 {
		t.Errorf("Len = %d, want 0", store.Len())
	}
}

func TestStore_TTLExpiry(t *testing.T) {
	store := NewStore(time.Minute)
	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.Create(1, "pfa1")

	// Still live just inside the TTL.
	current = current.Add(59 * time.Second)
	if _, ok := store.Get(1); !ok {
		t.Fatal("session expired before TTL elapsed")
	}

	// Get refreshes nothing; past the TTL the session is gone.
	current = current.Add(2 * time.Minute)
	if _, ok := store.Get(1); ok {
		t.Fatal("session survived past TTL")
	}
	if store.Len() != 0 {
		t.Errorf("Len = %d after lazy expiry, want 0", store.Len())
	}
}

func TestStore_UpdateRefreshesTTL(t *testing.T) {
	store := NewStore(time.Minute)
	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.Create(1, "pfa1")

	current = current.Add(50 * time.Second)
	if !store.Update(1, func(s *Session) { s.Draft.Name = "Lunch" }) {
		t.Fatal("Update failed inside TTL")
	}

	// The mutation pushed the deadline forward.
	current = current.Add(50 * time.Second)
	sess, ok := store.Get(1)
	if !ok {
		t.Fatal("session expired despite refresh on Update")
	}
	if sess.Draft.Name != "Lunch" {
		t.Errorf("Draft.Name = %q, want Lunch", sess.Draft.Name)
	}
}

func TestStore_PurgeExpired(t *testing.T) {
	store := NewStore(time.Minute)
	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.Create(1, "pfa1")
	current = current.Add(30 * time.Second)
	store.Create(2, "pfa2")

	current = current.Add(45 * time.Second)
	if removed := store.PurgeExpired(); removed != 1 {
		t.Fatalf("PurgeExpired removed %d sessions, want 1", removed)
	}
	if _, ok := store.Get(2); !ok {
		t.Error("fresh session was purged")
	}
}

func TestStore_ZeroTTLNeverExpires(t *testing.T) {
	store := NewStore(0)
	current := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	store.Create(1, "pfa1")
	current = current.Add(1000 * time.Hour)

	if _, ok := store.Get(1); !ok {
		t.Fatal("session expired with TTL disabled")
	}
	if removed := store.PurgeExpired(); removed != 0 {
		t.Errorf("PurgeExpired removed %d, want 0", removed)
	}
}
