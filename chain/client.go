package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"sync"
	"time"
)

const (
	DefaultRPCURL = "http://127.0.0.1:9944"

	// Per-call budgets. Reads are cheap; extrinsic submission gets longer.
	readTimeout   = 3 * time.Second
	submitTimeout = 5 * time.Second
)

// ErrDecodeUnsupported is reported by Unsupported_Decoder for every payload.
var ErrDecodeUnsupported = errors.New("state decoding not supported")

// StateDecoder turns raw node payloads into state records. The node returns
// SCALE-encoded bytes this client does not yet decode; callers that implement
// the codec can plug in their own decoder, everyone else gets the simulator.
type StateDecoder interface {
	Decode_Photonic(raw json.RawMessage) (Photonic_State, error)
	Decode_Quantum(raw json.RawMessage) (Quantum_State, error)
	Decode_Temporal(raw json.RawMessage) (Temporal_Wave, error)
	Decode_Heartbeat(raw json.RawMessage) (Heartbeat, error)
}

// Unsupported_Decoder is the default decoder. It rejects every payload so that
// reads fall through to the simulated state even when the node answers. This
// mirrors the current node deployment, where read payloads are SCALE-encoded
// and no Go codec exists yet.
type Unsupported_Decoder struct{}

func (Unsupported_Decoder) Decode_Photonic(json.RawMessage) (Photonic_State, error) {
	return Photonic_State{}, ErrDecodeUnsupported
}
func (Unsupported_Decoder) Decode_Quantum(json.RawMessage) (Quantum_State, error) {
	return Quantum_State{}, ErrDecodeUnsupported
}
func (Unsupported_Decoder) Decode_Temporal(json.RawMessage) (Temporal_Wave, error) {
	return Temporal_Wave{}, ErrDecodeUnsupported
}
func (Unsupported_Decoder) Decode_Heartbeat(json.RawMessage) (Heartbeat, error) {
	return Heartbeat{}, ErrDecodeUnsupported
}

// Client reads world-state signals from a LUXBIN node over JSON-RPC. All
// configuration is read-only after construction; the zero value of every
// optional field falls back to a sane default.
type Client struct {
	RPC_URL string
	Decoder StateDecoder
	Now     func() time.Time // injectable clock for the simulators
	Logger  *log.Logger

	transport *http.Client
}

func NewClient(rpcURL string) *Client {
	if rpcURL == "" {
		rpcURL = DefaultRPCURL
	}
	return &Client{
		RPC_URL:   rpcURL,
		Decoder:   Unsupported_Decoder{},
		Now:       time.Now,
		Logger:    log.New(os.Stdout, "[CHAIN] ", log.LstdFlags),
		transport: &http.Client{},
	}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
	ID      int           `json:"id"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// call performs one JSON-RPC request under its own timeout. The timeout is
// independent per call and never extends a sibling call's budget.
func (c *Client) call(ctx context.Context, timeout time.Duration, method string, params []interface{}) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rpc request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.RPC_URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("rpc request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read rpc response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rpc status %d: %s", resp.StatusCode, string(respBody))
	}

	var rpcResp rpcResponse
	if err := json.Unmarshal(respBody, &rpcResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rpc response: %w", err)
	}
	if rpcResp.Error != nil {
		return nil, rpcResp.Error
	}

	return rpcResp.Result, nil
}

func (c *Client) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *Client) decoder() StateDecoder {
	if c.Decoder != nil {
		return c.Decoder
	}
	return Unsupported_Decoder{}
}

func (c *Client) httpClient() *http.Client {
	if c.transport != nil {
		return c.transport
	}
	return http.DefaultClient
}

var defaultLogger = log.New(os.Stdout, "[CHAIN] ", log.LstdFlags)

func (c *Client) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return defaultLogger
}

// Photonic_State reads the current photonic state, substituting the simulator
// on any failure.
func (c *Client) Photonic_State(ctx context.Context) Photonic_State {
	raw, err := c.call(ctx, readTimeout, "state_call", []interface{}{"TemporalCryptoApi_get_photonic_state", "0x"})
	if err == nil {
		state, decodeErr := c.decoder().Decode_Photonic(raw)
		if decodeErr == nil {
			return state
		}
		err = decodeErr
	}
	c.logger().Printf("Photonic state unavailable, using simulated state: %v", err)
	return Simulate_Photonic_State(c.now())
}

// Quantum_State reads the NV center state from the diamond computer.
func (c *Client) Quantum_State(ctx context.Context, nvCenterID int) Quantum_State {
	key := fmt.Sprintf("0x%016x", nvCenterID)
	raw, err := c.call(ctx, readTimeout, "state_getStorage", []interface{}{key})
	if err == nil {
		state, decodeErr := c.decoder().Decode_Quantum(raw)
		if decodeErr == nil {
			return state
		}
		err = decodeErr
	}
	c.logger().Printf("Quantum state unavailable, using simulated state: %v", err)
	return Simulate_Quantum_State(c.now())
}

// Temporal_Wave reads the Bitcoin-synchronized acoustic wave.
func (c *Client) Temporal_Wave(ctx context.Context) Temporal_Wave {
	raw, err := c.call(ctx, readTimeout, "state_call", []interface{}{"BitcoinBridgeApi_get_acoustic_wave", "0x"})
	if err == nil {
		wave, decodeErr := c.decoder().Decode_Temporal(raw)
		if decodeErr == nil {
			return wave
		}
		err = decodeErr
	}
	c.logger().Printf("Temporal wave unavailable, using simulated state: %v", err)
	return Simulate_Temporal_Wave(c.now())
}

// Heartbeat reads the diamond computer's proof of life.
func (c *Client) Heartbeat(ctx context.Context) Heartbeat {
	raw, err := c.call(ctx, readTimeout, "state_call", []interface{}{"QuantumDiamondApi_get_heartbeat", "0x"})
	if err == nil {
		hb, decodeErr := c.decoder().Decode_Heartbeat(raw)
		if decodeErr == nil {
			return hb
		}
		err = decodeErr
	}
	c.logger().Printf("Heartbeat unavailable, using simulated state: %v", err)
	return Simulate_Heartbeat(c.now())
}

// AI_State aggregates all four signals into one snapshot. The reads run
// concurrently, each under its own timeout; a failed read is replaced by its
// simulator and never aborts the others. The fan-in waits for every read to
// finish, so the snapshot is always complete.
func (c *Client) AI_State(ctx context.Context) AI_State {
	var state AI_State
	var wg sync.WaitGroup

	wg.Add(4)
	go func() {
		defer wg.Done()
		state.Photonic = c.Photonic_State(ctx)
	}()
	go func() {
		defer wg.Done()
		state.Quantum = c.Quantum_State(ctx, 0)
	}()
	go func() {
		defer wg.Done()
		state.Temporal = c.Temporal_Wave(ctx)
	}()
	go func() {
		defer wg.Done()
		state.Heartbeat = c.Heartbeat(ctx)
	}()
	wg.Wait()

	state.Consciousness = Color_To_Consciousness(state.Photonic.Color)
	return state
}
