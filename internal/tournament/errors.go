package tournament

import "errors"

// Erros de domínio. Todos são retornados (com %w) pelas operações do engine e
// comparados com errors.Is na borda HTTP.
var (
	ErrDuplicateParticipant   = errors.New("participant already registered")
	ErrUnknownParticipant     = errors.New("unknown participant")
	ErrInvalidParticipant     = errors.New("participant name cannot be empty")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrInvalidAmount          = errors.New("amount must be positive")
	ErrUnknownFixture         = errors.New("unknown fixture")
	ErrUnknownGroup           = errors.New("unknown group")
	ErrFixtureAlreadyDecided  = errors.New("fixture already decided")
	ErrInvalidPrediction      = errors.New("prediction must be home, draw or away")
	ErrInvalidStake           = errors.New("stake must be a positive integer")
	ErrInvalidScore           = errors.New("goals must be non-negative")
	ErrInsufficientQualifiers = errors.New("not enough qualified teams")
	ErrTransitionNotSupported = errors.New("phase transition not supported")
	ErrTerminalPhase          = errors.New("tournament already in its last phase")

	// ErrPersistenceFailure acompanha um resultado válido: a mutação em memória
	// foi aplicada, só o save falhou.
	ErrPersistenceFailure = errors.New("persistence failure")
)
