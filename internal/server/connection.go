package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/chipflow/internal/chips"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 8192
)

var ErrConnectionClosed = websocket.ErrCloseSent

// Connection is one websocket planning session. Requests and results use
// the same payloads as the HTTP endpoints, wrapped in the Message envelope.
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	logger    *log.Logger
	server    *Server
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection creates a connection wrapper around an upgraded socket.
func NewConnection(conn *websocket.Conn, logger *log.Logger, server *Server) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:   conn,
		send:   make(chan *Message, 256),
		logger: logger.WithPrefix("conn"),
		server: server,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start begins handling the connection.
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage queues a message for the client.
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Send channel closed during shutdown.
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// readPump handles incoming messages from the client.
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client.
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage dispatches one incoming message.
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type)

	switch msg.Type {
	case MessageTypeDistribute:
		var req DistributeRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			c.sendError(msg, "invalid_message", "Failed to parse distribute request")
			return
		}
		c.handleDistribute(msg, &req)

	case MessageTypeCustom:
		var req CustomRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			c.sendError(msg, "invalid_message", "Failed to parse custom distribution request")
			return
		}
		c.handleCustom(msg, &req)

	case MessageTypeInventory:
		c.handleInventory(msg)

	default:
		c.sendError(msg, "unknown_message_type", "Unknown message type: "+string(msg.Type))
	}
}

func (c *Connection) handleDistribute(msg *Message, req *DistributeRequest) {
	if err := req.Validate(); err != nil {
		c.sendError(msg, "invalid_request", err.Error())
		return
	}

	resp, err := c.server.distribute(req)
	if err != nil {
		c.sendError(msg, engineErrorCode(err), err.Error())
		return
	}

	c.reply(msg, MessageTypeDistributionResult, resp)
}

func (c *Connection) handleCustom(msg *Message, req *CustomRequest) {
	if err := req.Validate(); err != nil {
		c.sendError(msg, "invalid_request", err.Error())
		return
	}

	result, err := c.server.evaluateCustom(req)
	if err != nil {
		c.sendError(msg, engineErrorCode(err), err.Error())
		return
	}

	c.reply(msg, MessageTypeCustomResult, result)
}

func (c *Connection) handleInventory(msg *Message) {
	snapshot := c.server.store.Snapshot()
	c.reply(msg, MessageTypeInventoryState, InventoryResponse{
		Inventory:  snapshot,
		TotalValue: snapshot.TotalValue(),
	})
}

// reply sends a typed response correlated with the incoming request.
func (c *Connection) reply(incoming *Message, messageType MessageType, data interface{}) {
	response, err := NewMessage(messageType, data)
	if err != nil {
		c.logger.Error("Failed to create response message", "error", err)
		return
	}
	response.RequestID = incoming.RequestID
	_ = c.SendMessage(response)
}

// sendError sends an error message to the client.
func (c *Connection) sendError(incoming *Message, code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}
	errorMsg.RequestID = incoming.RequestID
	_ = c.SendMessage(errorMsg)
}

func engineErrorCode(err error) string {
	var mismatch *chips.InputMismatchError
	var invalid *chips.InvalidParameterError
	if errors.As(err, &mismatch) || errors.As(err, &invalid) {
		return "invalid_request"
	}
	return "internal_error"
}
