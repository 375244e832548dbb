package ws

// ClientMsg representa uma mensagem recebida do cliente WebSocket
// Type: subscribe | unsubscribe | ping
// Topic: nome do grupo, "tournament", "wagers" ou "*" (tudo)
type ClientMsg struct {
	Type  string `json:"type"`
	Topic string `json:"topic"`
}

// TopicAll recebe todos os updates
const TopicAll = "*"
