package orderControllers

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

var (
	wsMu      sync.Mutex
	wsClients = make(map[*websocket.Conn]bool)
)

// OrderFeed upgrades the connection and streams order events to the
// admin dashboard until the client goes away.
func OrderFeed() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Websocket upgrade failed."})
			return
		}

		wsMu.Lock()
		wsClients[conn] = true
		wsMu.Unlock()

		// Drain reads so pings and close frames are processed.
		go func() {
			defer func() {
				wsMu.Lock()
				delete(wsClients, conn)
				wsMu.Unlock()
				conn.Close()
			}()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}

// broadcastOrderEvent pushes a JSON event to every connected dashboard.
// Dead connections are dropped on write failure.
func broadcastOrderEvent(event gin.H) {
	wsMu.Lock()
	defer wsMu.Unlock()
	for conn := range wsClients {
		if err := conn.WriteJSON(event); err != nil {
			log.Printf("order feed write failed: %v", err)
			conn.Close()
			delete(wsClients, conn)
		}
	}
}
