package connection

import (
	"time"

	"github.com/gorilla/websocket"
)

// Conn is one physical message-framed connection. The manager treats it
// as disposable: a new one is dialed after every close.
type Conn interface {
	// ReadMessage blocks until the next inbound frame or a transport error.
	ReadMessage() ([]byte, error)

	// WriteMessage transmits one frame.
	WriteMessage(data []byte) error

	Close() error
}

// Dialer opens a new physical connection to the given URL.
type Dialer func(url string) (Conn, error)

// DialWebsocket is the production Dialer, wrapping a gorilla websocket
// connection with text frames.
func DialWebsocket(url string) (Conn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}
	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return &wsConn{conn: conn}, nil
}

type wsConn struct {
	conn *websocket.Conn
}

func (c *wsConn) ReadMessage() ([]byte, error) {
	_, data, err := c.conn.ReadMessage()
	return data, err
}

func (c *wsConn) WriteMessage(data []byte) error {
	c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}
