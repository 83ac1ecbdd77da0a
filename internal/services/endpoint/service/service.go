// Package service implements the SFTP endpoint bring-up and tear-down workflows
package service

import (
	"time"

	"sftpcycle/internal/modkit"
	"sftpcycle/internal/platform/convergence"
	"sftpcycle/internal/services/endpoint/domain"
)

// Service implements both workflow ports
type Service interface {
	domain.ProvisionPort
	domain.DecommissionPort
}

// Config controls the workflows. Zero durations and counts are replaced with
// the defaults the upstream APIs were measured against
type Config struct {
	ServerName     string
	LoggingRoleARN string
	UserRoleARN    string
	Bucket         string

	// DNS alias; the alias step only runs when DomainName and HostedZoneID
	// are both set
	DomainName   string
	Subdomain    string
	HostedZoneID string

	// Region used when a hostname has to be constructed and the server ARN
	// carries no usable region
	Region string

	// ScheduleTag documents the cron cadence on the server's tags
	ScheduleTag string

	OnlineInterval   time.Duration
	OnlineWait       time.Duration
	StopInterval     time.Duration
	StopWait         time.Duration
	HostnameAttempts int
	HostnamePause    time.Duration
	DNSSyncInterval  time.Duration
	DNSSyncWait      time.Duration
	VerifyPause      time.Duration
}

func (c *Config) applyDefaults() {
	if c.Subdomain == "" {
		c.Subdomain = "server"
	}
	if c.Region == "" {
		c.Region = "us-east-1"
	}
	if c.OnlineInterval <= 0 {
		c.OnlineInterval = 10 * time.Second
	}
	if c.OnlineWait <= 0 {
		c.OnlineWait = 5 * time.Minute
	}
	if c.StopInterval <= 0 {
		c.StopInterval = 10 * time.Second
	}
	if c.StopWait <= 0 {
		c.StopWait = 5 * time.Minute
	}
	if c.HostnameAttempts <= 0 {
		c.HostnameAttempts = 5
	}
	if c.HostnamePause <= 0 {
		c.HostnamePause = 30 * time.Second
	}
	if c.DNSSyncInterval <= 0 {
		c.DNSSyncInterval = 5 * time.Second
	}
	if c.DNSSyncWait <= 0 {
		c.DNSSyncWait = time.Minute
	}
	if c.VerifyPause <= 0 {
		c.VerifyPause = 5 * time.Second
	}
}

// Svc implements the bring-up and tear-down workflows against the two ports
type Svc struct {
	transfer domain.TransferPort
	dns      domain.DNSPort

	cfg    Config
	deps   modkit.Deps
	waiter *convergence.Waiter
	now    func() time.Time
	sleep  func(time.Duration)
}

// New constructs the service
func New(deps modkit.Deps, cfg Config, transfer domain.TransferPort, dns domain.DNSPort) *Svc {
	cfg.applyDefaults()
	return &Svc{
		transfer: transfer,
		dns:      dns,
		cfg:      cfg,
		deps:     deps,
		waiter:   convergence.New(),
		now:      time.Now,
		sleep:    time.Sleep,
	}
}
