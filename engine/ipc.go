package engine

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync/atomic"
	"time"
)

// ipcCommand is the JSON structure sent to mpv's IPC socket.
type ipcCommand struct {
	Command   []interface{} `json:"command"`
	RequestID int64         `json:"request_id"`
}

// ipcResponse is the JSON structure received from mpv's IPC socket.
// Event lines carry Event instead of RequestID.
type ipcResponse struct {
	Data      interface{} `json:"data"`
	Error     string      `json:"error"`
	RequestID *int64      `json:"request_id"`
	Event     string      `json:"event"`
}

const (
	maxRetries   = 3
	retryDelay   = 100 * time.Millisecond
	readDeadline = 1 * time.Second
)

var requestIDs atomic.Int64

// sendCommand sends a JSON-IPC command to mpv, retrying transient connection errors.
func (m *MPV) sendCommand(command ...interface{}) (interface{}, error) {
	m.ipcMu.Lock()
	defer m.ipcMu.Unlock()

	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}

		result, err := doSendCommand(m.socketPath, command)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}

	return nil, fmt.Errorf("ipc command %v failed after %d attempts: %w", command[0], maxRetries, lastErr)
}

// doSendCommand performs a single IPC round trip and waits for the response tagged with its request id.
func doSendCommand(socketPath string, command []interface{}) (interface{}, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	id := requestIDs.Add(1)
	payload, err := json.Marshal(ipcCommand{Command: command, RequestID: id})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	// mpv requires newline-delimited JSON
	if _, err = conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		resp, ok := parseResponse(scanner.Bytes(), id)
		if !ok {
			continue
		}
		if resp.Error != "" && resp.Error != "success" {
			return nil, fmt.Errorf("mpv error: %s", resp.Error)
		}
		return resp.Data, nil
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return nil, fmt.Errorf("read: connection closed before response %d", id)
}

// parseResponse decodes line and reports whether it answers request id.
// Broadcast events share the connection and are skipped.
func parseResponse(line []byte, id int64) (ipcResponse, bool) {
	var resp ipcResponse
	if err := json.Unmarshal(line, &resp); err != nil {
		return resp, false
	}
	if resp.Event != "" || resp.RequestID == nil || *resp.RequestID != id {
		return resp, false
	}
	return resp, true
}
