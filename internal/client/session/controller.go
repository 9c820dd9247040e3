// Package session owns the client's authentication state: at most one
// Identity at a time, kept in sync with the backend through the session
// events subscription.
package session

import (
	"context"
	"sync"

	"github.com/akarpov/memopad/internal/client/api"
	"github.com/akarpov/memopad/internal/client/models"
	"github.com/akarpov/memopad/internal/common"
)

// State is the controller's authentication state. Checking is transient and
// converges to one of the two terminal states after Restore.
type State int

const (
	Checking State = iota
	Unauthenticated
	Authenticated
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// API is the slice of the backend client the controller needs.
type API interface {
	CurrentIdentity(ctx context.Context) (*models.Identity, error)
	SignUp(ctx context.Context, email, password string) error
	SignIn(ctx context.Context, email, password string) (*models.Identity, error)
	SignOut(ctx context.Context) error
	SubscribeSessionChanges(handler func(api.SessionEvent)) (func(), error)
}

// Controller holds the current session. Constructed once at startup and
// closed once at shutdown; after Close no callback fires.
type Controller struct {
	api API

	mu          sync.Mutex
	state       State
	identity    *models.Identity
	unsubscribe func()

	closeOnce sync.Once

	// onSignedOut runs when the session ends without an explicit local
	// SignOut call (revoked remotely, refresh failed).
	onSignedOut func()
}

func NewController(a API) *Controller {
	return &Controller{api: a, state: Checking}
}

// SetOnSignedOut registers the callback invoked on an external sign-out.
// Must be called before Restore.
func (c *Controller) SetOnSignedOut(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onSignedOut = fn
}

// Restore resolves the transient Checking state: if the backend still knows
// this session the controller becomes Authenticated and subscribes to
// session events, otherwise it becomes Unauthenticated.
func (c *Controller) Restore(ctx context.Context) State {
	identity, err := c.api.CurrentIdentity(ctx)
	if err != nil {
		c.mu.Lock()
		c.state = Unauthenticated
		c.mu.Unlock()
		return Unauthenticated
	}

	c.establish(identity)
	return Authenticated
}

// SignIn authenticates and, on success, transitions to Authenticated. On
// failure the state stays Unauthenticated and the error is returned for the
// UI to surface.
func (c *Controller) SignIn(ctx context.Context, email, password string) (*models.Identity, error) {
	identity, err := c.api.SignIn(ctx, email, password)
	if err != nil {
		// a failed attempt still resolves the transient Checking state
		c.mu.Lock()
		if c.state != Authenticated {
			c.state = Unauthenticated
		}
		c.mu.Unlock()
		return nil, err
	}
	c.establish(identity)
	return identity, nil
}

// SignUp registers a new account. It never authenticates: the user signs in
// separately afterwards.
func (c *Controller) SignUp(ctx context.Context, email, password string) error {
	return c.api.SignUp(ctx, email, password)
}

// SignOut ends the session. The server call is best-effort: local state is
// cleared regardless of its outcome.
func (c *Controller) SignOut(ctx context.Context) error {
	err := c.api.SignOut(ctx)
	c.clear()
	return err
}

// State returns the current authentication state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Identity returns the authenticated identity, or nil.
func (c *Controller) Identity() *models.Identity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.identity
}

// Close releases the session events subscription. Safe to call more than
// once; only the first call has an effect.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		unsub := c.unsubscribe
		c.unsubscribe = nil
		c.mu.Unlock()
		if unsub != nil {
			unsub()
		}
	})
}

// establish stores identity as the current session and subscribes to
// session events. Any previous subscription is released first.
func (c *Controller) establish(identity *models.Identity) {
	unsub, err := c.api.SubscribeSessionChanges(c.handleEvent)
	if err != nil {
		unsub = nil
	}

	c.mu.Lock()
	prev := c.unsubscribe
	c.state = Authenticated
	c.identity = identity
	c.unsubscribe = unsub
	c.mu.Unlock()

	if prev != nil {
		prev()
	}
}

// handleEvent reacts to backend session events. Only signed_out is acted
// on: the local session is cleared exactly as an explicit sign-out would,
// and the registered callback is notified.
func (c *Controller) handleEvent(ev api.SessionEvent) {
	if ev.Kind != common.SessionEventSignedOut {
		return
	}

	c.mu.Lock()
	wasAuthenticated := c.state == Authenticated
	fn := c.onSignedOut
	c.mu.Unlock()

	if !wasAuthenticated {
		return
	}
	c.clear()
	if fn != nil {
		fn()
	}
}

func (c *Controller) clear() {
	c.mu.Lock()
	unsub := c.unsubscribe
	c.state = Unauthenticated
	c.identity = nil
	c.unsubscribe = nil
	c.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}
