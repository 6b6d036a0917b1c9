package notifier

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	jwtsvc "github.com/BukhosiMoyo/creations-Industries-sub000/internal/pkg/jwt"
	"github.com/BukhosiMoyo/creations-Industries-sub000/internal/pkg/response"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // Allow all origins (configure in prod)
}

// WSHandler upgrades staff clients onto the hub. Browsers cannot set
// headers on WebSocket dials, so the JWT arrives as a query parameter.
type WSHandler struct {
	hub *Hub
	jwt *jwtsvc.Service
}

func NewWSHandler(hub *Hub, jwt *jwtsvc.Service) *WSHandler {
	return &WSHandler{hub: hub, jwt: jwt}
}

// Serve handles GET /notifier/ws?token=...
func (h *WSHandler) Serve(c *gin.Context) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing token")
		return
	}

	claims, err := h.jwt.ValidateToken(tokenStr)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
		return
	}
	if claims.Role != "staff" && claims.Role != "admin" {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Staff only")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return // upgrader already wrote the response
	}

	h.hub.ServeWS(conn, claims.UserID)
}
