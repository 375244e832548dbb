package dto

type ErrorResponse struct {
	Error string `json:"error"`
}

// PartialResponse acompanha um 503: a operação valeu em memória, mas o save falhou
type PartialResponse struct {
	Error  string `json:"error"`
	Result any    `json:"result"`
}

type AdvanceResponse struct {
	Phase      string   `json:"phase"`
	Qualifiers []string `json:"qualifiers"`
}

type ResetResponse struct {
	Status string `json:"status"`
}
