package ws

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v4"

	"github.com/fixzep/fixzep-server/redis"
)

type clientMessage struct {
	Action string `json:"action"` // "join" or "leave"
	Room   string `json:"room"`
}

// Upgrade rejects non-websocket requests and authenticates the session from
// the token query parameter before the connection is upgraded.
func Upgrade(c *fiber.Ctx) error {
	if !websocket.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	userID, err := sessionFromToken(c.Query("token"), redis.IsTokenBlacklisted)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid or expired token",
		})
	}
	c.Locals("userID", userID)
	return c.Next()
}

// Handler runs one websocket session. The session is auto-joined to the
// user's room; the client joins and leaves order rooms as it navigates.
func Handler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals("userID").(uint)

		c := &client{
			conn:  conn,
			send:  make(chan Event, 16),
			rooms: make(map[string]bool),
		}
		hub.join(c, UserRoom(userID))

		done := make(chan struct{})
		go func() {
			for ev := range c.send {
				if err := conn.WriteJSON(ev); err != nil {
					break
				}
			}
			close(done)
		}()

		for {
			var msg clientMessage
			if err := conn.ReadJSON(&msg); err != nil {
				break
			}
			switch msg.Action {
			case "join":
				hub.join(c, msg.Room)
			case "leave":
				hub.leave(c, msg.Room)
			}
		}

		hub.remove(c)
		<-done
		log.Printf("Websocket session closed for user %d", userID)
	})
}

// sessionFromToken resolves the user behind a token. Tokens revoked by
// logout are rejected the same way the HTTP middleware rejects them.
func sessionFromToken(tokenString string, revoked func(string) bool) (uint, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key"
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, jwt.ErrTokenInvalidClaims
	}
	if jti, ok := claims["jti"].(string); ok && revoked(jti) {
		return 0, jwt.ErrTokenInvalidId
	}
	id, ok := claims["id"].(float64)
	if !ok {
		return 0, jwt.ErrTokenInvalidClaims
	}
	return uint(id), nil
}
