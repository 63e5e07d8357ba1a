package chain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func fixedClock(ts int64) func() time.Time {
	return func() time.Time { return time.Unix(ts, 0) }
}

func TestAIState_UnreachableNode(t *testing.T) {
	// Nothing listens here; every read must fall back to the simulator.
	client := NewClient("http://127.0.0.1:1")
	client.Now = fixedClock(1_700_000_000)

	state := client.AI_State(context.Background())

	if state.Photonic.Color == "" {
		t.Error("Photonic state missing after fallback")
	}
	if state.Quantum.State == "" {
		t.Error("Quantum state missing after fallback")
	}
	if state.Temporal.Frequency == 0 {
		t.Error("Temporal wave missing after fallback")
	}
	if !state.Heartbeat.Is_Alive {
		t.Error("Simulated heartbeat should be alive")
	}
	if state.Consciousness == "" {
		t.Error("Consciousness missing after fallback")
	}
	if want := Color_To_Consciousness(state.Photonic.Color); state.Consciousness != want {
		t.Errorf("Consciousness %q does not match photonic color %s (want %q)",
			state.Consciousness, state.Photonic.Color, want)
	}
}

func TestAIState_ZeroValueClient(t *testing.T) {
	// A struct-literal client has no http client, decoder, clock, or
	// logger; every optional field must default instead of panicking.
	client := &Client{RPC_URL: "http://127.0.0.1:1"}

	state := client.AI_State(context.Background())

	if state.Photonic.Color == "" {
		t.Error("Photonic state missing after fallback")
	}
	if state.Quantum.State == "" {
		t.Error("Quantum state missing after fallback")
	}
	if !state.Heartbeat.Is_Alive {
		t.Error("Simulated heartbeat should be alive")
	}
	if state.Consciousness == "" {
		t.Error("Consciousness missing after fallback")
	}
}

func TestAIState_DeterministicUnderFixedClock(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	client.Now = fixedClock(1_700_000_042)

	first := client.AI_State(context.Background())
	second := client.AI_State(context.Background())

	if first.Photonic != second.Photonic {
		t.Errorf("Photonic state not stable: %+v vs %+v", first.Photonic, second.Photonic)
	}
	if first.Consciousness != second.Consciousness {
		t.Errorf("Consciousness not stable: %s vs %s", first.Consciousness, second.Consciousness)
	}
}

func TestPhotonicState_UnsupportedDecoderFallsBack(t *testing.T) {
	// The node answers, but the default decoder rejects the payload, so
	// the simulator result must come back anyway.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      1,
			"result":  "0xdeadbeef",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	client.Now = fixedClock(1_700_000_000)

	state := client.Photonic_State(context.Background())
	if state != Simulate_Photonic_State(time.Unix(1_700_000_000, 0)) {
		t.Errorf("Expected simulated state under unsupported decoder, got %+v", state)
	}
}

func TestCall_RPCError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      1,
			"error":   map[string]interface{}{"code": -32601, "message": "Method not found"},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.call(context.Background(), readTimeout, "state_call", nil)
	if err == nil {
		t.Fatal("Expected rpc error")
	}
}

func TestSubmitQuantumOperation_NoNode(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	if client.Submit_Quantum_Operation(context.Background(), "Hadamard", 1) {
		t.Error("Submission must report failure with no node")
	}
}

func TestHashMessage(t *testing.T) {
	hash := Hash_Message("hello")
	if len(hash) != 64 {
		t.Errorf("Expected 64 hex chars, got %d", len(hash))
	}
	if hash != Hash_Message("hello") {
		t.Error("Hashing must be deterministic")
	}
	if hash == Hash_Message("hello ") {
		t.Error("Different messages must not collide trivially")
	}
}

func TestRecordConversationThread_SubmitsTwoRecords(t *testing.T) {
	var received []rpcRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req rpcRequest
		json.NewDecoder(r.Body).Decode(&req)
		received = append(received, req)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      1,
			"result":  "0xabc123",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	meta := Thread_Metadata{Emotion: "excited", Model: "gpt-4o-mini"}
	meta.State.Photonic.Color = "Blue"
	meta.State.Consciousness = "Flowing"

	err := client.Record_Conversation_Thread(context.Background(), "conv_1", "hi there", "hello!", meta)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(received) != 2 {
		t.Fatalf("Expected 2 extrinsic submissions (user + assistant), got %d", len(received))
	}
	for _, req := range received {
		if req.Method != "author_submitExtrinsic" {
			t.Errorf("Expected author_submitExtrinsic, got %s", req.Method)
		}
	}
}
