// Package domain defines core types and interfaces (ports) for the SFTP
// endpoint lifecycle workflows
package domain

// ServerState is the closed set of lifecycle states a transfer server reports.
// Unknown covers states the provider may add later
type ServerState string

// Server lifecycle states
const (
	StateStarting    ServerState = "STARTING"
	StateOnline      ServerState = "ONLINE"
	StateStopping    ServerState = "STOPPING"
	StateOffline     ServerState = "OFFLINE"
	StateStartFailed ServerState = "START_FAILED"
	StateStopFailed  ServerState = "STOP_FAILED"
	StateUnknown     ServerState = "UNKNOWN"
)

// ParseState maps a provider state string onto the closed set
func ParseState(s string) ServerState {
	switch ServerState(s) {
	case StateStarting, StateOnline, StateStopping, StateOffline, StateStartFailed, StateStopFailed:
		return ServerState(s)
	default:
		return StateUnknown
	}
}

// Fatal reports whether the state is an explicit provider failure state
func (s ServerState) Fatal() bool {
	return s == StateStartFailed || s == StateStopFailed
}

// Server is the observed description of a transfer server. The Endpoint field
// is only populated for servers with a provider-reported hostname; public
// endpoints derive theirs (see the hostname resolver)
type Server struct {
	ID       string
	ARN      string
	State    ServerState
	Endpoint string
}

// ServerSummary is one entry from a server listing
type ServerSummary struct {
	ID  string
	ARN string
}

// UserSpec describes one SFTP user to create, as configured by the operator
type UserSpec struct {
	Username  string `json:"username"   validate:"required"`
	HomeDir   string `json:"home_dir"   validate:"required,startswith=/"`
	PublicKey string `json:"public_key"`
}

// CreatedUser is one successfully provisioned user
type CreatedUser struct {
	Username      string `json:"username"`
	HomeDirectory string `json:"home_directory"`
}

// StepStatus records the outcome of a best-effort workflow step so callers
// can assert on partial failures without parsing logs
type StepStatus string

// Best-effort step outcomes
const (
	StepOK      StepStatus = "ok"
	StepSkipped StepStatus = "skipped"
	StepFailed  StepStatus = "failed"
)

// ProvisionResult is the terminal output of the bring-up workflow
type ProvisionResult struct {
	Message            string        `json:"message"`
	ServerID           string        `json:"server_id"`
	Hostname           string        `json:"aws_hostname"`
	AliasHostname      string        `json:"alias_hostname,omitempty"`
	ConnectionHostname string        `json:"connection_hostname"`
	Users              []CreatedUser `json:"users"`
	Bucket             string        `json:"s3_bucket"`
	CreatedAt          string        `json:"created_at"`
	DNSUpdated         bool          `json:"dns_updated"`
	DNSStep            StepStatus    `json:"dns_step"`
	ConnectionExamples []string      `json:"connection_examples"`
}

// TeardownAction says what the tear-down workflow did
type TeardownAction string

// Tear-down actions
const (
	ActionNoneRequired TeardownAction = "none_required"
	ActionDeleted      TeardownAction = "deleted"
)

// TeardownResult is the terminal output of the tear-down workflow
type TeardownResult struct {
	Message       string         `json:"message"`
	ServerID      string         `json:"server_id,omitempty"`
	PreviousState ServerState    `json:"previous_state,omitempty"`
	Action        TeardownAction `json:"action"`
}
