// Package notices carries operator-facing notices across the multi-step
// import workflow in the session, the way the host surfaces admin notices.
package notices

import (
	"database/sql"
	"encoding/gob"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
)

// Session data key holding the pending notice list.
const sessionKeyNotices = "notices"

type Type string

const (
	TypeSuccess Type = "success"
	TypeWarning Type = "warning"
	TypeError   Type = "error"
	TypeInfo    Type = "info"
)

type Notice struct {
	Type    Type   `json:"type"`
	Message string `json:"message"`
}

func init() {
	gob.Register([]Notice{})
}

// Manager wraps scs.SessionManager with notice-specific helpers.
type Manager struct {
	*scs.SessionManager
}

// NewManager creates a session manager backed by the given SQLite database.
func NewManager(sqlDB *sql.DB, lifetime time.Duration, secureCookies bool) (*Manager, error) {
	_, err := sqlDB.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		token TEXT PRIMARY KEY,
		data BLOB NOT NULL,
		expiry REAL NOT NULL
	);
	CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry);`)
	if err != nil {
		return nil, err
	}

	sm := scs.New()
	sm.Store = sqlite3store.New(sqlDB)
	sm.Lifetime = lifetime
	sm.Cookie.Name = "session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = secureCookies
	sm.Cookie.SameSite = http.SameSiteStrictMode
	sm.Cookie.Path = "/"

	return &Manager{SessionManager: sm}, nil
}

// Add appends a notice to the session's pending list.
func (m *Manager) Add(r *http.Request, noticeType Type, message string) {
	pending := m.pending(r)
	pending = append(pending, Notice{Type: normalizeType(noticeType), Message: message})
	m.Put(r.Context(), sessionKeyNotices, pending)
}

// Pop returns all pending notices and clears them.
func (m *Manager) Pop(r *http.Request) []Notice {
	pending := m.pending(r)
	m.Remove(r.Context(), sessionKeyNotices)
	return pending
}

func (m *Manager) pending(r *http.Request) []Notice {
	pending, _ := m.Get(r.Context(), sessionKeyNotices).([]Notice)
	if pending == nil {
		pending = []Notice{}
	}
	return pending
}

func normalizeType(t Type) Type {
	switch t {
	case TypeSuccess, TypeWarning, TypeError, TypeInfo:
		return t
	default:
		return TypeInfo
	}
}
