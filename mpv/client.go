package mpv

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// commandTimeout bounds how long a command waits for its reply.
	commandTimeout = 2 * time.Second
	// eventBuffer is the capacity of the event channel.
	eventBuffer = 256
)

var (
	// ErrNotConnected is returned when attempting operations on a disconnected client.
	ErrNotConnected = errors.New("mpv: not connected")
	// ErrSocketNotFound is returned when the socket file doesn't exist.
	ErrSocketNotFound = errors.New("mpv: socket not found - is mpv running with --input-ipc-server?")
	// ErrTimeout is returned when mpv does not answer a command in time.
	ErrTimeout = errors.New("mpv: command timed out")
	// requestID is a global counter for generating unique request IDs.
	requestID uint64
)

// ipcRequest represents a JSON IPC request to mpv.
type ipcRequest struct {
	Command   []interface{} `json:"command"`
	RequestID uint64        `json:"request_id"`
}

// ipcMessage is any line mpv writes to the socket: either a reply carrying
// our request_id, or an asynchronous event.
type ipcMessage struct {
	Event     string      `json:"event"`
	Name      string      `json:"name"`
	Data      interface{} `json:"data"`
	RequestID uint64      `json:"request_id"`
	Error     string      `json:"error"`
	Reason    string      `json:"reason"`
	FileError string      `json:"file_error"`
}

// ipcResponse is a reply routed back to a waiting command.
type ipcResponse struct {
	Data  interface{}
	Error string
}

// Event is an asynchronous notification from mpv.
type Event struct {
	// Name is the event name, e.g. "property-change" or "end-file".
	Name string
	// Property is the observed property name for property-change events.
	Property string
	// Data is the property value; nil when mpv reports it as unavailable.
	Data interface{}
	// Reason is set on end-file events ("eof", "error", "quit", ...).
	Reason string
	// FileError describes why a file failed to load.
	FileError string
}

// Client is an mpv IPC client that communicates via Unix socket.
// A single reader goroutine owns the socket's read side; replies are routed
// to waiting commands by request_id and events are forwarded on Events().
type Client struct {
	socketPath string
	logger     *slog.Logger

	mu      sync.Mutex
	conn    net.Conn
	ended   bool
	pending map[uint64]chan ipcResponse
	events  chan Event
}

// NewClient creates a new mpv IPC client for socketPath.
func NewClient(socketPath string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		socketPath: socketPath,
		logger:     logger,
		pending:    make(map[uint64]chan ipcResponse),
		events:     make(chan Event, eventBuffer),
	}
}

// Connect establishes a connection to the mpv IPC socket and starts the reader.
// Returns ErrSocketNotFound if the socket doesn't exist or refuses connections.
func (c *Client) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return nil // Already connected
	}
	if c.ended {
		// Events() is already closed; a client is good for one connection.
		return ErrNotConnected
	}

	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSocketNotFound, err)
	}

	c.conn = conn
	go c.readLoop(conn)
	return nil
}

// Close closes the connection to mpv. The events channel is closed once the
// reader goroutine notices.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// IsConnected returns true if the client is connected to mpv.
func (c *Client) IsConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Events returns the channel of asynchronous mpv events. It is closed when
// the connection ends.
func (c *Client) Events() <-chan Event {
	return c.events
}

// readLoop decodes newline-delimited JSON from mpv until the connection ends.
func (c *Client) readLoop(conn net.Conn) {
	reader := bufio.NewReader(conn)
	defer c.shutdown(conn)

	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			c.logger.Debug("mpv connection closed", "error", err)
			return
		}

		var msg ipcMessage
		if err := json.Unmarshal(line, &msg); err != nil {
			c.logger.Debug("skipping malformed mpv line", "error", err)
			continue
		}

		if msg.Event != "" {
			c.events <- Event{
				Name:      msg.Event,
				Property:  msg.Name,
				Data:      msg.Data,
				Reason:    msg.Reason,
				FileError: msg.FileError,
			}
			continue
		}

		c.mu.Lock()
		ch, ok := c.pending[msg.RequestID]
		delete(c.pending, msg.RequestID)
		c.mu.Unlock()
		if ok {
			ch <- ipcResponse{Data: msg.Data, Error: msg.Error}
		}
	}
}

// shutdown fails every waiting command and closes the event channel.
func (c *Client) shutdown(conn net.Conn) {
	c.mu.Lock()
	if c.conn == conn {
		c.conn = nil
	}
	c.ended = true
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
	c.mu.Unlock()

	conn.Close()
	close(c.events)
}

// GetProperty retrieves the value of an mpv property.
// The property name should be the mpv property name (e.g., "time-pos", "duration", "pause").
func (c *Client) GetProperty(name string) (interface{}, error) {
	return c.sendCommand("get_property", name)
}

// SetProperty sets the value of an mpv property.
// The property name should be the mpv property name (e.g., "pause", "speed").
func (c *Client) SetProperty(name string, value interface{}) error {
	_, err := c.sendCommand("set_property", name, value)
	return err
}

// ObserveProperty asks mpv to emit property-change events for name.
// mpv immediately sends one event with the current value.
func (c *Client) ObserveProperty(id int, name string) error {
	_, err := c.sendCommand("observe_property", id, name)
	return err
}

// GetDuration returns the total duration of the media in seconds.
func (c *Client) GetDuration() (float64, error) {
	result, err := c.GetProperty("duration")
	if err != nil {
		return 0, err
	}
	return toFloat64(result)
}

// TogglePause flips the pause flag.
func (c *Client) TogglePause() error {
	_, err := c.sendCommand("cycle", "pause")
	return err
}

// SetPause sets the pause flag.
func (c *Client) SetPause(paused bool) error {
	return c.SetProperty("pause", paused)
}

// SeekRelative moves the playback position by seconds (negative seeks back).
func (c *Client) SeekRelative(seconds float64) error {
	_, err := c.sendCommand("seek", seconds, "relative+exact")
	return err
}

// SeekAbsolute moves the playback position to seconds from the start.
func (c *Client) SeekAbsolute(seconds float64) error {
	_, err := c.sendCommand("seek", seconds, "absolute+exact")
	return err
}

// SeekPercent moves the playback position to percent of the duration.
func (c *Client) SeekPercent(percent float64) error {
	_, err := c.sendCommand("seek", percent, "absolute-percent+exact")
	return err
}

// AddSpeed adjusts the playback speed by delta.
func (c *Client) AddSpeed(delta float64) error {
	_, err := c.sendCommand("add", "speed", delta)
	return err
}

// AddVolume adjusts the volume by delta.
func (c *Client) AddVolume(delta float64) error {
	_, err := c.sendCommand("add", "volume", delta)
	return err
}

// Quit asks mpv to exit.
func (c *Client) Quit() error {
	_, err := c.sendCommand("quit")
	return err
}

// toFloat64 converts an interface{} to float64.
// JSON numbers from mpv are typically decoded as float64.
func toFloat64(v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("mpv: unexpected numeric value type: %T", v)
	}
}

// sendCommand sends a JSON IPC command to mpv and waits for its reply.
// The command is formatted as {"command": [command, args...], "request_id": <id>}
// and sent as newline-terminated JSON over the socket.
func (c *Client) sendCommand(command string, args ...interface{}) (interface{}, error) {
	cmdArray := make([]interface{}, 0, len(args)+1)
	cmdArray = append(cmdArray, command)
	cmdArray = append(cmdArray, args...)

	reqID := atomic.AddUint64(&requestID, 1)
	data, err := json.Marshal(ipcRequest{Command: cmdArray, RequestID: reqID})
	if err != nil {
		return nil, fmt.Errorf("mpv: failed to marshal command: %w", err)
	}
	data = append(data, '\n')

	reply := make(chan ipcResponse, 1)

	c.mu.Lock()
	if c.conn == nil {
		c.mu.Unlock()
		return nil, ErrNotConnected
	}
	c.pending[reqID] = reply
	_, err = c.conn.Write(data)
	if err != nil {
		delete(c.pending, reqID)
	}
	c.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("mpv: failed to send command: %w", err)
	}

	timer := time.NewTimer(commandTimeout)
	defer timer.Stop()

	select {
	case resp, ok := <-reply:
		if !ok {
			return nil, ErrNotConnected
		}
		if resp.Error != "" && resp.Error != "success" {
			return nil, fmt.Errorf("mpv: %s: %s", command, resp.Error)
		}
		return resp.Data, nil
	case <-timer.C:
		c.mu.Lock()
		delete(c.pending, reqID)
		c.mu.Unlock()
		return nil, ErrTimeout
	}
}
