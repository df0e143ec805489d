// Package shell holds the navigation state of the forum landing page and
// renders it as text.
//
// The signed-in user is restored from the session store on Bootstrap. The
// persisted session is trusted as is; it is not checked with the server.
package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dmitrijs2005/tpforum/internal/client/models"
	"github.com/dmitrijs2005/tpforum/internal/client/session"
	"github.com/dmitrijs2005/tpforum/internal/logging"
)

var ErrUnknownTab = errors.New("unknown tab")

// Tab is a top-level navigation entry. Alias is an ASCII name accepted by
// SetTab in addition to Name.
type Tab struct {
	Name  string
	Alias string
}

var Tabs = []Tab{
	{Name: "Главная", Alias: "home"},
	{Name: "Форум", Alias: "forum"},
	{Name: "Плагины", Alias: "plugins"},
	{Name: "Новости", Alias: "news"},
	{Name: "Профили", Alias: "profiles"},
	{Name: "Правила", Alias: "rules"},
}

// State is a snapshot of what the shell displays.
type State struct {
	ActiveTab string
	Search    string
	User      *models.User
}

func (s State) Authenticated() bool { return s.User != nil }

type Shell struct {
	store   session.Store
	log     logging.Logger
	content Content

	mu        sync.Mutex
	activeTab string
	search    string
	user      *models.User
}

func New(store session.Store, content Content, log logging.Logger) *Shell {
	if log == nil {
		log = logging.Nop{}
	}
	return &Shell{
		store:     store,
		log:       log,
		content:   content,
		activeTab: Tabs[0].Name,
	}
}

// Bootstrap restores the signed-in user from the session store. A missing or
// unreadable session leaves the shell signed out; the store is not modified.
func (s *Shell) Bootstrap(ctx context.Context) error {
	sess, err := s.store.Load(ctx)
	switch {
	case errors.Is(err, session.ErrNoSession):
		s.setUser(nil)
		return nil
	case errors.Is(err, session.ErrCorruptSession):
		s.log.Warn(ctx, "ignoring unreadable session", "error", err)
		s.setUser(nil)
		return nil
	case err != nil:
		return fmt.Errorf("load session: %w", err)
	}

	u := sess.User
	s.setUser(&u)
	return nil
}

// HandleAuthSuccess is passed to the auth dialog as its success callback.
func (s *Shell) HandleAuthSuccess(user models.User, _ string) {
	s.setUser(&user)
}

// Logout forgets the session locally. No request is sent to the server.
func (s *Shell) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.setUser(nil)
	return nil
}

func (s *Shell) setUser(u *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
}

// SetTab activates the tab whose name or alias matches name, ignoring case.
func (s *Shell) SetTab(name string) error {
	name = strings.TrimSpace(name)
	for _, t := range Tabs {
		if strings.EqualFold(t.Name, name) || strings.EqualFold(t.Alias, name) {
			s.mu.Lock()
			s.activeTab = t.Name
			s.mu.Unlock()
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownTab, name)
}

func (s *Shell) SetSearch(q string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.search = q
}

func (s *Shell) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{ActiveTab: s.activeTab, Search: s.search}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}

// VisibleTopics returns the topics whose title contains the search text.
func (s *Shell) VisibleTopics() []Topic {
	q := strings.ToLower(strings.TrimSpace(s.State().Search))
	if q == "" {
		return s.content.Topics
	}

	var out []Topic
	for _, t := range s.content.Topics {
		if strings.Contains(strings.ToLower(t.Title), q) {
			out = append(out, t)
		}
	}
	return out
}
