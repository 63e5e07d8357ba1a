package aurora

import (
	"fmt"
	"strings"
)

// Mock_Response produces a canned reply when every provider is
// unavailable. It is a pure function of the user's message so the chat
// endpoint stays deterministic under total provider outage.
func Mock_Response(input string) string {
	lowerInput := strings.ToLower(input)

	if strings.Contains(lowerInput, "buy") || strings.Contains(lowerInput, "purchase") {
		return "You can buy LUX tokens in 3 ways:\n\n" +
			"1. **Coinbase Pay** (Easiest) - Buy directly with credit card\n" +
			"2. **Uniswap DEX** - Swap ETH for LUX on Base\n" +
			"3. **In-App Swap** - Use our built-in swap feature\n\n" +
			"Would you like me to open the Coinbase Pay widget?"
	}

	if strings.Contains(lowerInput, "quantum") || strings.Contains(lowerInput, "ai") || strings.Contains(lowerInput, "threat") {
		return "LUXBIN's Quantum AI system uses:\n\n" +
			"• **Grover's Algorithm** - Quantum search for threat patterns\n" +
			"• **Neural Analyzer** - Federated learning across Base, Ethereum, Arbitrum, and Polygon\n" +
			"• **Energy Grid** - Tesla Fleet integration for efficient compute\n" +
			"• **Quantum Eyes** - Photonic transaction visualization\n\n" +
			"Visit /quantum-ai to see it in action!"
	}

	if strings.Contains(lowerInput, "mirror") || strings.Contains(lowerInput, "earn") {
		return "LUXBIN's blockchain mirroring system:\n\n" +
			"• **Hermetic Mirrors** act as immune cells\n" +
			"• Detect and neutralize threats\n" +
			"• Earn USDC rewards for securing the network\n" +
			"• Real-time monitoring on /mirror page\n\n" +
			"Connected users can start earning immediately!"
	}

	if strings.Contains(lowerInput, "hello") || strings.Contains(lowerInput, "hi") || strings.Contains(lowerInput, "hey") {
		return "Hello! 👋\n\n" +
			"I'm here to help with:\n" +
			"• Buying LUX tokens\n" +
			"• Understanding Quantum AI features\n" +
			"• Blockchain mirroring & earning\n" +
			"• Transaction analysis\n" +
			"• Developer documentation\n\n" +
			"What would you like to know?"
	}

	return fmt.Sprintf("I understand you're asking about %q. Let me help you with that!\n\n"+
		"LUXBIN is a gasless Layer 1 blockchain with quantum security. You can:\n"+
		"• Buy LUX tokens on Base network\n"+
		"• Analyze transactions with Quantum AI\n"+
		"• Earn USDC through blockchain mirroring\n"+
		"• Build with our developer API\n\n"+
		"What specific information are you looking for?", input)
}
