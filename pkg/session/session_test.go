package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

var (
	testAuthKey = []byte("test-auth-key-must-be-32-bytes!!")
	testEncKey  = []byte("test-enc-key-must-be-32-bytes!!!")
)

// roundTrip adds msg in one request and pops it in the next, carrying cookies.
func roundTrip(t *testing.T, store sessions.Store, msg string) ([]string, []string) {
	t.Helper()
	f := NewFlasher(store)

	w := httptest.NewRecorder()
	if err := f.Add(w, httptest.NewRequest(http.MethodPost, "/create-point", http.NoBody), msg); err != nil {
		t.Fatalf("add: %v", err)
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie")
	}

	next := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	for _, c := range cookies {
		next.AddCookie(c)
	}
	w2 := httptest.NewRecorder()
	first, err := f.Pop(w2, next)
	if err != nil {
		t.Fatalf("pop: %v", err)
	}

	// The cleared session replaces the old cookie.
	again := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	for _, c := range w2.Result().Cookies() {
		again.AddCookie(c)
	}
	second, err := f.Pop(httptest.NewRecorder(), again)
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	return first, second
}

func TestFlash_CookieStore(t *testing.T) {
	first, second := roundTrip(t, NewCookieStore(testAuthKey, testEncKey, false), "Ponto de coleta criado!")
	if len(first) != 1 || first[0] != "Ponto de coleta criado!" {
		t.Fatalf("unexpected flashes %v", first)
	}
	if len(second) != 0 {
		t.Fatalf("flash must be shown once, got %v", second)
	}
}

func TestFlash_RedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close() //nolint:errcheck

	first, second := roundTrip(t, NewRedisStore(client, testAuthKey, testEncKey, false), "Ponto de coleta criado!")
	if len(first) != 1 || first[0] != "Ponto de coleta criado!" {
		t.Fatalf("unexpected flashes %v", first)
	}
	if len(second) != 0 {
		t.Fatalf("flash must be shown once, got %v", second)
	}

	keys := mr.Keys()
	if len(keys) != 1 || keys[0][:len(keyPrefix)] != keyPrefix {
		t.Fatalf("expected one %s key, got %v", keyPrefix, keys)
	}
	if ttl := mr.TTL(keys[0]); ttl <= 0 {
		t.Fatalf("expected a TTL on the session key, got %v", ttl)
	}
}

func TestRedisStore_TamperedCookieYieldsFreshSession(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close() //nolint:errcheck
	store := NewRedisStore(client, testAuthKey, testEncKey, false)

	r := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	r.AddCookie(&http.Cookie{Name: Name, Value: "not-a-valid-cookie"})
	s, err := store.New(r, Name)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.IsNew {
		t.Fatal("expected a fresh session")
	}
}

func TestPop_NoSession(t *testing.T) {
	msgs, err := NewFlasher(NewCookieStore(testAuthKey, testEncKey, false)).
		Pop(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))
	if err != nil || len(msgs) != 0 {
		t.Fatalf("expected nothing, got %v %v", msgs, err)
	}
}
