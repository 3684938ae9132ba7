package services

import (
	"math/rand"
	"strconv"
	"sync"
	"time"

	"checkout-backend/internal/checkout"
	"checkout-backend/internal/domain"
)

// SessionStore keeps in-flight checkout sessions. Sessions are in-memory
// only; a confirmed booking is persisted separately by ConfirmationService.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*checkout.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string]*checkout.Session{}}
}

// Create registers a fresh session under a lightweight unique id
// (time + rand, same scheme as request ids).
func (st *SessionStore) Create() *checkout.Session {
	id := "cs-" + strconv.FormatInt(time.Now().UnixNano(), 10) + "-" + strconv.Itoa(rand.Intn(1000000))

	st.mu.Lock()
	defer st.mu.Unlock()
	sess := checkout.NewSession(id)
	st.sessions[id] = sess
	return sess
}

func (st *SessionStore) Get(id string) (*checkout.Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	sess, ok := st.sessions[id]
	if !ok {
		return nil, domain.NotFoundError{Resource: "checkout session"}
	}
	return sess, nil
}

func (st *SessionStore) Delete(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}

func (st *SessionStore) Count() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
