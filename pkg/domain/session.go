package domain

// Phase は Session Controller の状態です。
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseGenerating Phase = "generating"
	PhaseSucceeded  Phase = "succeeded"
	PhaseFailed     Phase = "failed"
)

// SessionState は画面1つ分の状態です。永続化はしません。
type SessionState struct {
	Phase          Phase  `json:"phase"`
	Mode           Mode   `json:"mode"`
	Prompt         string `json:"prompt"`
	FunctionID     string `json:"function_id,omitempty"`
	PrimaryImage   string `json:"primary_image,omitempty"`
	SecondaryImage string `json:"secondary_image,omitempty"`
	ResultImage    string `json:"result_image,omitempty"`
	InFlight       bool   `json:"in_flight"`
	LastError      string `json:"last_error,omitempty"`

	// CredentialPrompt はAPIキー入力フォームを開くべきかどうかです。
	CredentialPrompt bool `json:"credential_prompt"`
	HasCredential    bool `json:"has_credential"`
}

// NewSessionState はセッション開始時の初期状態を返します。
func NewSessionState() SessionState {
	return SessionState{
		Phase: PhaseIdle,
		Mode:  ModeCreate,
	}
}
