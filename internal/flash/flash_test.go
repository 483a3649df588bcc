package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// carry copies cookies set on rec into a fresh request, as a browser would.
func carry(rec *httptest.ResponseRecorder) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge >= 0 {
			r.AddCookie(c)
		}
	}
	return r
}

func TestAddThenPop(t *testing.T) {
	s := NewStore([]byte("0123456789abcdef0123456789abcdef"))

	rec := httptest.NewRecorder()
	s.Add(rec, httptest.NewRequest(http.MethodPost, "/", nil), Success("Item added successfully!"))

	next := httptest.NewRecorder()
	notices := s.Pop(next, carry(rec))
	require.Len(t, notices, 1)
	assert.Equal(t, CategorySuccess, notices[0].Category)
	assert.Equal(t, "Item added successfully!", notices[0].Message)

	cleared := next.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Equal(t, cookieName, cleared[0].Name)
	assert.Less(t, cleared[0].MaxAge, 0)
}

func TestAddAccumulates(t *testing.T) {
	s := NewStore(nil)

	first := httptest.NewRecorder()
	s.Add(first, httptest.NewRequest(http.MethodPost, "/", nil), Danger("bad"))

	second := httptest.NewRecorder()
	s.Add(second, carry(first), Info("fyi"))

	notices := s.Pop(httptest.NewRecorder(), carry(second))
	assert.Equal(t, []Notice{Danger("bad"), Info("fyi")}, notices)
}

func TestPopWithoutCookie(t *testing.T) {
	s := NewStore(nil)
	rec := httptest.NewRecorder()

	assert.Empty(t, s.Pop(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Empty(t, rec.Result().Cookies())
}

func TestPopIgnoresForeignSignature(t *testing.T) {
	writer := NewStore([]byte("writer-key-writer-key-writer-key"))
	reader := NewStore([]byte("reader-key-reader-key-reader-key"))

	rec := httptest.NewRecorder()
	writer.Add(rec, httptest.NewRequest(http.MethodPost, "/", nil), Success("hi"))

	assert.Empty(t, reader.Pop(httptest.NewRecorder(), carry(rec)))
}

func TestPeekKeepsNotices(t *testing.T) {
	s := NewStore(nil)

	rec := httptest.NewRecorder()
	s.Add(rec, httptest.NewRequest(http.MethodPost, "/", nil), Info("fyi"))
	r := carry(rec)

	assert.Equal(t, []Notice{Info("fyi")}, s.Peek(r))
	assert.Equal(t, []Notice{Info("fyi")}, s.Peek(r))

	cleared := httptest.NewRecorder()
	s.Clear(cleared, r)
	cookies := cleared.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Less(t, cookies[0].MaxAge, 0)
}
