package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/chipflow/internal/chips"
	"github.com/lox/chipflow/internal/inventory"
)

func dialTestServer(t *testing.T) *websocket.Conn {
	t.Helper()
	srv := NewServer(testLogger(), inventory.NewStore(inventory.Default()))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func sendMessage(t *testing.T, conn *websocket.Conn, messageType MessageType, requestID string, data interface{}) {
	t.Helper()
	msg, err := NewMessage(messageType, data)
	require.NoError(t, err)
	msg.RequestID = requestID
	require.NoError(t, conn.WriteJSON(msg))
}

func readMessage(t *testing.T, conn *websocket.Conn) *Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return &msg
}

func TestWebSocketDistribute(t *testing.T) {
	t.Parallel()
	conn := dialTestServer(t)

	sendMessage(t, conn, MessageTypeDistribute, "req-1", DistributeRequest{
		NumPlayers: 6,
		BuyIns:     []float64{100, 100, 100, 100, 100, 100},
		SmallBlind: fptr(1),
		BigBlind:   fptr(2),
	})

	msg := readMessage(t, conn)
	require.Equal(t, MessageTypeDistributionResult, msg.Type)
	assert.Equal(t, "req-1", msg.RequestID)

	var resp DistributeResponse
	require.NoError(t, json.Unmarshal(msg.Data, &resp))
	require.NotNil(t, resp.Optimal)
	assert.Equal(t, 0.02, resp.Optimal.Multiplier)
}

func TestWebSocketCustomDistribution(t *testing.T) {
	t.Parallel()
	conn := dialTestServer(t)

	sendMessage(t, conn, MessageTypeCustom, "req-2", CustomRequest{
		NumPlayers:     6,
		BuyIns:         []float64{10, 10, 10, 10, 10, 10},
		Multiplier:     0.01,
		ChipsPerPlayer: chips.ChipSet{1: 10, 5: 18, 25: 12, 100: 6},
	})

	msg := readMessage(t, conn)
	require.Equal(t, MessageTypeCustomResult, msg.Type)
	assert.Equal(t, "req-2", msg.RequestID)

	var result chips.Result
	require.NoError(t, json.Unmarshal(msg.Data, &result))
	require.NotNil(t, result.Info.ActualValuePerPlayer)
	assert.Equal(t, 10.0, *result.Info.ActualValuePerPlayer)
}

func TestWebSocketInventory(t *testing.T) {
	t.Parallel()
	conn := dialTestServer(t)

	sendMessage(t, conn, MessageTypeInventory, "req-3", nil)

	msg := readMessage(t, conn)
	require.Equal(t, MessageTypeInventoryState, msg.Type)
	assert.Equal(t, "req-3", msg.RequestID)

	var resp InventoryResponse
	require.NoError(t, json.Unmarshal(msg.Data, &resp))
	assert.Equal(t, inventory.Default(), resp.Inventory)
	assert.Equal(t, 45900, resp.TotalValue)
}

func TestWebSocketInvalidRequest(t *testing.T) {
	t.Parallel()
	conn := dialTestServer(t)

	sendMessage(t, conn, MessageTypeDistribute, "req-4", DistributeRequest{
		NumPlayers: 3,
		BuyIns:     []float64{100, 100},
	})

	msg := readMessage(t, conn)
	require.Equal(t, MessageTypeError, msg.Type)
	assert.Equal(t, "req-4", msg.RequestID)

	var errData ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &errData))
	assert.Equal(t, "invalid_request", errData.Code)
}

func TestWebSocketUnknownMessageType(t *testing.T) {
	t.Parallel()
	conn := dialTestServer(t)

	sendMessage(t, conn, MessageType("shuffle"), "req-5", nil)

	msg := readMessage(t, conn)
	require.Equal(t, MessageTypeError, msg.Type)
	assert.Equal(t, "req-5", msg.RequestID)

	var errData ErrorData
	require.NoError(t, json.Unmarshal(msg.Data, &errData))
	assert.Equal(t, "unknown_message_type", errData.Code)
}
