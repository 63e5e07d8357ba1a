package aurora

import (
	"strings"
	"testing"
)

func TestMockResponse_Templates(t *testing.T) {
	cases := []struct {
		input    string
		fragment string
	}{
		{"How do I buy LUX?", "Coinbase Pay"},
		{"I want to purchase tokens", "Coinbase Pay"},
		{"Tell me about the quantum system", "Grover's Algorithm"},
		{"Is there an AI threat detector?", "Grover's Algorithm"},
		{"How does mirroring earn money?", "Hermetic Mirrors"},
		{"hello there", "👋"},
	}

	for _, tc := range cases {
		reply := Mock_Response(tc.input)
		if !strings.Contains(reply, tc.fragment) {
			t.Errorf("Mock_Response(%q) missing %q:\n%s", tc.input, tc.fragment, reply)
		}
	}
}

func TestMockResponse_CatchAllEchoesInput(t *testing.T) {
	reply := Mock_Response("tokenomics roadmap")
	if !strings.Contains(reply, `"tokenomics roadmap"`) {
		t.Errorf("Catch-all should echo the input:\n%s", reply)
	}
	if !strings.Contains(reply, "gasless Layer 1") {
		t.Errorf("Catch-all should describe the network:\n%s", reply)
	}
}

func TestMockResponse_Deterministic(t *testing.T) {
	if Mock_Response("some question") != Mock_Response("some question") {
		t.Error("Mock_Response must be deterministic")
	}
}
