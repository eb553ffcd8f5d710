package websockets

import (
	"sync"
)

const (
	STATUS_UNAUTHENTICATED = iota
	STATUS_AUTHENTICATED
	STATUS_CLOSED
)

type Hub struct {
	register   chan *Client
	unregister chan *Client
	clients    map[string]*Client
	mutex      sync.RWMutex
}

func (h *Hub) run(m *Manager) {
	for {
		select {
		case client := <-h.register:
			m.registerClient(client)

		case client := <-h.unregister:
			func() {
				defer func() {
					if r := recover(); r != nil {
						_ = r
					}
				}()
				close(client.send)
			}()
			m.unregisterClient(client)
		}
	}
}

func (m *Manager) registerClient(client *Client) {
	m.hub.mutex.Lock()
	defer m.hub.mutex.Unlock()
	m.hub.clients[client.ID] = client
}

func (m *Manager) unregisterClient(client *Client) {
	m.hub.mutex.Lock()
	defer m.hub.mutex.Unlock()
	delete(m.hub.clients, client.ID)
}

// clientsForUser snapshots the authenticated connections for a user.
func (m *Manager) clientsForUser(userID string) []*Client {
	m.hub.mutex.RLock()
	defer m.hub.mutex.RUnlock()

	var clients []*Client
	for _, client := range m.hub.clients {
		if client.Status == STATUS_AUTHENTICATED && client.UserID.String() == userID {
			clients = append(clients, client)
		}
	}
	return clients
}
