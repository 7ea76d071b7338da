package domain

const (
	RoleUser  = "user"
	RoleAgent = "agent"
)

// ChatMessage is a single chat bubble exchanged between the user and the
// trading agent. TxHash is set on agent replies that submitted a trade.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	TxHash  string `json:"txHash,omitempty"`
}

// Session carries the wallet identity for one request. The wallet-connect
// collaborator owns sign-in; this service only sees the resulting address.
type Session struct {
	Address string
}
