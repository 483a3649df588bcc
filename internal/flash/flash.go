// Package flash carries short-lived, category-tagged notices from one request
// to the next page render in a signed cookie.
package flash

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/securecookie"
)

type Category string

const (
	CategorySuccess Category = "success"
	CategoryDanger  Category = "danger"
	CategoryInfo    Category = "info"
)

type Notice struct {
	Category Category `json:"c"`
	Message  string   `json:"m"`
}

func Success(msg string) Notice { return Notice{Category: CategorySuccess, Message: msg} }
func Danger(msg string) Notice { return Notice{Category: CategoryDanger, Message: msg} }
func Info(msg string) Notice { return Notice{Category: CategoryInfo, Message: msg} }

const cookieName = "flash"

// Store reads and writes notices. It holds no per-request state.
type Store struct {
	codec *securecookie.SecureCookie
}

// NewStore returns a Store signing cookies with hashKey. An empty key gets a
// random one, which invalidates pending notices across restarts.
func NewStore(hashKey []byte) *Store {
	if len(hashKey) == 0 {
		hashKey = securecookie.GenerateRandomKey(32)
	}
	codec := securecookie.New(hashKey, nil)
	codec.SetSerializer(securecookie.JSONEncoder{})
	return &Store{codec: codec}
}

// Add queues n for the next render, keeping notices already queued on r.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, n Notice) {
	notices := append(s.read(r), n)
	encoded, err := s.codec.Encode(cookieName, notices)
	if err != nil {
		slog.Error("failed to encode flash notices", "error", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Pop returns the queued notices and clears them.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []Notice {
	notices := s.Peek(r)
	s.Clear(w, r)
	return notices
}

// Peek returns the queued notices without clearing them.
func (s *Store) Peek(r *http.Request) []Notice {
	return s.read(r)
}

// Clear drops the notices queued on r.
func (s *Store) Clear(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(cookieName); err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Store) read(r *http.Request) []Notice {
	c, err := r.Cookie(cookieName)
	if err != nil {
		return nil
	}
	var notices []Notice
	if err := s.codec.Decode(cookieName, c.Value, &notices); err != nil {
		// Tampered or signed with an old key.
		return nil
	}
	return notices
}
