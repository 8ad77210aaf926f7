package push

import (
	"encoding/json"
	"strconv"

	cmap "github.com/orcaman/concurrent-map/v2"
)

// SendSocketFunc returns true if data was successfully sent
type SendSocketFunc func([]byte) bool

type ConnectedClient struct {
	fun SendSocketFunc
}

// ConnectedClients is needed as a session may be watched from more than one screen
type ConnectedClients []*ConnectedClient

// Hub keeps the websocket clients following each session
type Hub struct {
	clients cmap.ConcurrentMap[string, ConnectedClients]
}

func NewHub() *Hub {
	return &Hub{clients: cmap.New[ConnectedClients]()}
}

func sessionSocketID(sessionID uint64) string {
	return "session:" + strconv.FormatUint(sessionID, 10)
}

// Subscribe registers a client for the session and returns the function removing it
func (h *Hub) Subscribe(sessionID uint64, fun SendSocketFunc) (unsubscribe func()) {
	id := sessionSocketID(sessionID)
	c := &ConnectedClient{fun: fun}
	h.clients.Upsert(id, ConnectedClients{c}, func(exist bool, valueInMap, newValue ConnectedClients) ConnectedClients {
		if exist {
			return append(valueInMap, c)
		}
		return newValue
	})
	return func() { h.remove(id, c) }
}

func (h *Hub) remove(id string, c *ConnectedClient) {
	h.clients.Upsert(id, ConnectedClients{}, func(exist bool, valueInMap, newValue ConnectedClients) ConnectedClients {
		if !exist {
			return newValue
		}
		for _, oc := range valueInMap {
			if oc == c {
				continue
			}
			newValue = append(newValue, oc)
		}
		return newValue
	})
	h.clients.RemoveCb(id, func(key string, v ConnectedClients, exists bool) bool {
		return exists && len(v) == 0
	})
}

// Clients returns the number of clients following the session
func (h *Hub) Clients(sessionID uint64) int {
	clients, _ := h.clients.Get(sessionSocketID(sessionID))
	return len(clients)
}

// Send delivers the event to every client of its session
func (h *Hub) Send(ev *Event) error {
	clients, ok := h.clients.Get(sessionSocketID(ev.SessionID))
	if !ok || len(clients) == 0 {
		return nil
	}
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	for _, c := range clients {
		c.fun(data)
	}
	return nil
}
