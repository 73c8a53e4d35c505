package controllers

import (
	"net/http"
	"time"

	"github.com/rkant062/fitback/models"
	"github.com/rkant062/fitback/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var hub = services.NewRealtimeHub()

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind a proxy if needed
}

// pushActivity mirrors a record change to the user's other open sessions.
func pushActivity(userID uint, record *models.ActivityRecord) {
	hub.Broadcast(userID, gin.H{"type": "activity", "data": record})
}

// ActivityWS upgrades to a websocket that receives activity updates for
// the authenticated user.
func ActivityWS(c *gin.Context) {
	uid := currentUserID(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := &services.WSClient{UserID: uid, Conn: conn}
	hub.Register(cl)

	// ping to keep connections alive through proxies
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				hub.Unregister(cl)
				return
			}
		}
	}()

	// read loop ends on client close/error
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			hub.Unregister(cl)
			return
		}
	}
}
