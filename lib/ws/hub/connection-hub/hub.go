package connectionhub

import (
	"sync"

	"github.com/gofiber/contrib/websocket"

	wsmodels "job-board-backend/models/ws"
)

// Provider fans store updates out to connected dashboard clients.
type Provider interface {
	AddClient(sessionID string, conn *websocket.Conn)
	DeleteClient(sessionID string)
	Broadcast(msg wsmodels.ServerMessage)
}

var Instance Provider

func Init() {
	Instance = &impl{
		clients: map[string]clientSession{},
	}
}

type impl struct {
	mu      sync.Mutex
	clients map[string]clientSession //map[sessionID]
}

func (i *impl) AddClient(sessionID string, conn *websocket.Conn) {
	i.mu.Lock()
	defer i.mu.Unlock()
	oldSess, ok := i.clients[sessionID]
	if ok {
		oldSess.stop()
	}
	i.clients[sessionID] = newSession(conn)
}

func (i *impl) DeleteClient(sessionID string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	sess, ok := i.clients[sessionID]
	if !ok {
		return
	}
	delete(i.clients, sessionID)
	sess.stop()
	close(sess.sendCh)
}

func (i *impl) Broadcast(msg wsmodels.ServerMessage) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, sess := range i.clients {
		select {
		case sess.sendCh <- msg:
		default:
			// slow client, this update is superseded by the next one anyway
		}
	}
}
