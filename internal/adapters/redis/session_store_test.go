package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	domainauth "github.com/limnolab/limno-ui-api/internal/domain/auth"
)

func newStoreTest(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	t.Cleanup(mr.Close)

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewSessionStore(rdb), mr
}

func testSession() domainauth.Session {
	return domainauth.Session{
		ID:            "sid-1",
		UserID:        "u-1",
		Email:         "pat@example.org",
		FullName:      "Pat Vidal",
		Roles:         []domainauth.Role{domainauth.RoleAdmin},
		BackendCookie: "connect.sid=abc",
		ExpiresAt:     time.Now().Add(time.Hour),
	}
}

func TestSaveGetRoundtrip(t *testing.T) {
	store, _ := newStoreTest(t)
	ctx := context.Background()
	sess := testSession()

	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("save session: %v", err)
	}

	got, err := store.Get(ctx, sess.ID)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if got.UserID != sess.UserID || got.Email != sess.Email || got.BackendCookie != sess.BackendCookie {
		t.Errorf("got %+v, want %+v", got, sess)
	}
	if len(got.Roles) != 1 || got.Roles[0] != domainauth.RoleAdmin {
		t.Errorf("roles = %v, want [admin]", got.Roles)
	}
}

func TestSaveRejectsEmptyID(t *testing.T) {
	store, _ := newStoreTest(t)
	sess := testSession()
	sess.ID = ""
	if err := store.Save(context.Background(), sess); err == nil {
		t.Fatal("expected error for empty session ID")
	}
}

func TestSaveRejectsExpiredSession(t *testing.T) {
	store, _ := newStoreTest(t)
	sess := testSession()
	sess.ExpiresAt = time.Now().Add(-time.Minute)
	if err := store.Save(context.Background(), sess); err == nil {
		t.Fatal("expected error for expired session")
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	store, _ := newStoreTest(t)
	if _, err := store.Get(context.Background(), "no-such-session"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.Get(context.Background(), ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty id, got %v", err)
	}
}

func TestGetAfterRedisExpiry(t *testing.T) {
	store, mr := newStoreTest(t)
	ctx := context.Background()
	sess := testSession()
	sess.ExpiresAt = time.Now().Add(time.Minute)

	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("save session: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after TTL expiry, got %v", err)
	}
}

func TestGetDeletesStaleRecord(t *testing.T) {
	store, mr := newStoreTest(t)
	ctx := context.Background()

	// Seed a record whose own ExpiresAt has lapsed even though the Redis key
	// is still alive.
	stale := testSession()
	stale.ID = "sid-stale"
	stale.ExpiresAt = time.Now().Add(-time.Minute)
	data := `{"id":"sid-stale","user_id":"u-1","email":"pat@example.org","roles":["admin"],"expires_at":"` +
		stale.ExpiresAt.Format(time.RFC3339Nano) + `"}`
	if err := mr.Set("session:sid-stale", data); err != nil {
		t.Fatalf("seed stale record: %v", err)
	}

	if _, err := store.Get(ctx, "sid-stale"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for stale record, got %v", err)
	}
	if mr.Exists("session:sid-stale") {
		t.Error("stale record should have been deleted")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store, _ := newStoreTest(t)
	ctx := context.Background()
	sess := testSession()

	if err := store.Save(ctx, sess); err != nil {
		t.Fatalf("save session: %v", err)
	}
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := store.Delete(ctx, sess.ID); err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if err := store.Delete(ctx, ""); err != nil {
		t.Fatalf("empty-id delete: %v", err)
	}
	if _, err := store.Get(ctx, sess.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestCustomPrefix(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	store := NewSessionStoreWithPrefix(rdb, "limno:")
	sess := testSession()
	if err := store.Save(context.Background(), sess); err != nil {
		t.Fatalf("save session: %v", err)
	}
	if !mr.Exists("limno:" + sess.ID) {
		t.Error("expected key under the custom prefix")
	}
}
