package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"github.com/akarpov/memopad/internal/common"
	"github.com/gorilla/websocket"
)

// SessionEvent is one session change notification from the backend (or a
// synthetic one produced locally when a token refresh fails).
type SessionEvent struct {
	Kind   string `json:"event"`
	UserID string `json:"user_id,omitempty"`
}

// SubscribeSessionChanges registers handler for session events and opens a
// websocket to receive server-side ones. The returned function cancels the
// subscription; calling it more than once is safe, and after it returns the
// handler is never invoked again.
func (c *Client) SubscribeSessionChanges(handler func(SessionEvent)) (func(), error) {
	access, _ := c.tokens()
	if access == "" {
		return nil, common.ErrorUnauthorized
	}

	wsURL := strings.Replace(c.baseURL, "http", "ws", 1) + "/ws/session?token=" + access
	header := http.Header{}
	header.Set(common.ApiKeyHeaderName, c.apiKey)

	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}

	c.subMu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = handler
	c.subMu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			c.subMu.Lock()
			delete(c.subs, id)
			c.subMu.Unlock()
			conn.Close()
		})
	}

	go func() {
		defer unsubscribe()
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var ev SessionEvent
			if err := json.Unmarshal(payload, &ev); err != nil {
				continue
			}
			c.dispatch(id, ev)
		}
	}()

	return unsubscribe, nil
}

// dispatch delivers ev to the subscription with the given id, if it is
// still registered.
func (c *Client) dispatch(id int, ev SessionEvent) {
	c.subMu.Lock()
	handler, ok := c.subs[id]
	c.subMu.Unlock()
	if ok {
		handler(ev)
	}
}

// notifySubscribers delivers a locally produced event to every active
// subscription.
func (c *Client) notifySubscribers(ev SessionEvent) {
	c.subMu.Lock()
	handlers := make([]func(SessionEvent), 0, len(c.subs))
	for _, h := range c.subs {
		handlers = append(handlers, h)
	}
	c.subMu.Unlock()

	for _, h := range handlers {
		h(ev)
	}
}
