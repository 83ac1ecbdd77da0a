package domain

import "context"

// CreateServerArgs carries everything needed to provision a new server
type CreateServerArgs struct {
	LoggingRole string
	Tags        map[string]string
}

// CreateUserArgs carries everything needed to provision one user
type CreateUserArgs struct {
	ServerID      string
	Username      string
	Role          string
	HomeDirectory string
	PublicKey     string
	Tags          map[string]string
}

// TransferPort is the narrow view of the file-transfer provisioning API the
// workflows need. Adapters normalize "resource missing" results to the
// platform NotFound code
type TransferPort interface {
	CreateServer(ctx context.Context, args CreateServerArgs) (string, error)
	DescribeServer(ctx context.Context, serverID string) (Server, error)
	StopServer(ctx context.Context, serverID string) error
	DeleteServer(ctx context.Context, serverID string) error
	ListServers(ctx context.Context) ([]ServerSummary, error)
	ListTags(ctx context.Context, arn string) (map[string]string, error)
	CreateUser(ctx context.Context, args CreateUserArgs) error
	DeleteUser(ctx context.Context, serverID, username string) error
	ListUsernames(ctx context.Context, serverID string) ([]string, error)
}

// CNAMEChange is one create-or-replace alias update
type CNAMEChange struct {
	ZoneID  string
	Name    string
	Target  string
	TTL     int64
	Comment string
}

// DNSRecord is one resource record set entry as listed by the zone
type DNSRecord struct {
	Name  string
	Type  string
	Value string
}

// DNSPort is the narrow view of the DNS zone API the workflows need
type DNSPort interface {
	// UpsertCNAME submits the change and returns the zone's change id
	UpsertCNAME(ctx context.Context, ch CNAMEChange) (string, error)
	// ChangeSynced reports whether the change has fully propagated
	ChangeSynced(ctx context.Context, changeID string) (bool, error)
	// ListRecords lists record sets at/after name in the zone's ordering
	ListRecords(ctx context.Context, zoneID, name string) ([]DNSRecord, error)
}

// ProvisionPort runs the bring-up workflow for the given user specs
type ProvisionPort interface {
	Provision(ctx context.Context, users []UserSpec) (ProvisionResult, error)
}

// DecommissionPort runs the tear-down workflow
type DecommissionPort interface {
	Decommission(ctx context.Context) (TeardownResult, error)
}
