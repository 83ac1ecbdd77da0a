package service

import (
	"context"
	"time"

	"sftpcycle/internal/modkit"
	"sftpcycle/internal/platform/config"
	"sftpcycle/internal/platform/convergence"
	perr "sftpcycle/internal/platform/errors"
	"sftpcycle/internal/platform/logger"
	"sftpcycle/internal/services/endpoint/domain"
)

// fakeTransfer is a scriptable TransferPort. Unset hooks return benign zero
// values so each test only scripts what it asserts on
type fakeTransfer struct {
	createServer   func(ctx context.Context, args domain.CreateServerArgs) (string, error)
	describeServer func(ctx context.Context, serverID string) (domain.Server, error)
	stopServer     func(ctx context.Context, serverID string) error
	deleteServer   func(ctx context.Context, serverID string) error
	listServers    func(ctx context.Context) ([]domain.ServerSummary, error)
	listTags       func(ctx context.Context, arn string) (map[string]string, error)
	createUser     func(ctx context.Context, args domain.CreateUserArgs) error
	deleteUser     func(ctx context.Context, serverID, username string) error
	listUsernames  func(ctx context.Context, serverID string) ([]string, error)
}

func (f *fakeTransfer) CreateServer(ctx context.Context, args domain.CreateServerArgs) (string, error) {
	if f.createServer != nil {
		return f.createServer(ctx, args)
	}
	return "s-fake", nil
}

func (f *fakeTransfer) DescribeServer(ctx context.Context, serverID string) (domain.Server, error) {
	if f.describeServer != nil {
		return f.describeServer(ctx, serverID)
	}
	return domain.Server{ID: serverID, State: domain.StateOnline}, nil
}

func (f *fakeTransfer) StopServer(ctx context.Context, serverID string) error {
	if f.stopServer != nil {
		return f.stopServer(ctx, serverID)
	}
	return nil
}

func (f *fakeTransfer) DeleteServer(ctx context.Context, serverID string) error {
	if f.deleteServer != nil {
		return f.deleteServer(ctx, serverID)
	}
	return nil
}

func (f *fakeTransfer) ListServers(ctx context.Context) ([]domain.ServerSummary, error) {
	if f.listServers != nil {
		return f.listServers(ctx)
	}
	return nil, nil
}

func (f *fakeTransfer) ListTags(ctx context.Context, arn string) (map[string]string, error) {
	if f.listTags != nil {
		return f.listTags(ctx, arn)
	}
	return nil, nil
}

func (f *fakeTransfer) CreateUser(ctx context.Context, args domain.CreateUserArgs) error {
	if f.createUser != nil {
		return f.createUser(ctx, args)
	}
	return nil
}

func (f *fakeTransfer) DeleteUser(ctx context.Context, serverID, username string) error {
	if f.deleteUser != nil {
		return f.deleteUser(ctx, serverID, username)
	}
	return nil
}

func (f *fakeTransfer) ListUsernames(ctx context.Context, serverID string) ([]string, error) {
	if f.listUsernames != nil {
		return f.listUsernames(ctx, serverID)
	}
	return nil, nil
}

// fakeDNS is a scriptable DNSPort that syncs immediately unless scripted
type fakeDNS struct {
	upsert      func(ctx context.Context, ch domain.CNAMEChange) (string, error)
	synced      func(ctx context.Context, changeID string) (bool, error)
	listRecords func(ctx context.Context, zoneID, name string) ([]domain.DNSRecord, error)
}

func (f *fakeDNS) UpsertCNAME(ctx context.Context, ch domain.CNAMEChange) (string, error) {
	if f.upsert != nil {
		return f.upsert(ctx, ch)
	}
	return "C-fake", nil
}

func (f *fakeDNS) ChangeSynced(ctx context.Context, changeID string) (bool, error) {
	if f.synced != nil {
		return f.synced(ctx, changeID)
	}
	return true, nil
}

func (f *fakeDNS) ListRecords(ctx context.Context, zoneID, name string) ([]domain.DNSRecord, error) {
	if f.listRecords != nil {
		return f.listRecords(ctx, zoneID, name)
	}
	return nil, nil
}

// fakeClock advances only on sleep so waits run instantly and deterministically
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time        { return c.t }
func (c *fakeClock) Sleep(d time.Duration) { c.t = c.t.Add(d) }

var errProvider = perr.Providerf("AWS Error: simulated failure")

func baseConfig() Config {
	return Config{
		ServerName:     "weekly-sftp",
		LoggingRoleARN: "arn:aws:iam::123456789012:role/logging",
		UserRoleARN:    "arn:aws:iam::123456789012:role/users",
		Bucket:         "drop-bucket",
		DomainName:     "example.com",
		Subdomain:      "server",
		HostedZoneID:   "Z123",
		Region:         "us-west-2",
	}
}

// newTestSvc builds the service on fakes with an instant clock
func newTestSvc(cfg Config, tr domain.TransferPort, dns domain.DNSPort) (*Svc, *fakeClock) {
	deps := modkit.Deps{Cfg: config.New(), Log: *logger.Get()}
	s := New(deps, cfg, tr, dns)
	clk := &fakeClock{t: time.Unix(1700000000, 0)}
	s.waiter = convergence.New().WithClock(clk.Now, clk.Sleep)
	s.now = clk.Now
	s.sleep = clk.Sleep
	return s, clk
}
