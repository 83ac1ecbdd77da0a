// Package module wires the endpoint lifecycle service and exposes its ports
package module

import (
	"sftpcycle/internal/modkit"
	"sftpcycle/internal/services/endpoint/domain"
	"sftpcycle/internal/services/endpoint/service"
)

// Ports exposes the workflow ports for cross wiring
type Ports struct {
	Provisioner    domain.ProvisionPort
	Decommissioner domain.DecommissionPort
}

// Module defines the endpoint lifecycle module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs the module from shared deps, env-derived options, and the
// two cloud ports
func New(deps modkit.Deps, opts Options, transfer domain.TransferPort, dns domain.DNSPort) *Module {
	svc := service.New(deps, service.Config{
		ServerName:     opts.ServerName,
		LoggingRoleARN: opts.LoggingRoleARN,
		UserRoleARN:    opts.UserRoleARN,
		Bucket:         opts.Bucket,

		DomainName:   opts.DomainName,
		Subdomain:    opts.Subdomain,
		HostedZoneID: opts.HostedZoneID,
		Region:       opts.Region,
		ScheduleTag:  opts.ScheduleTag,

		OnlineInterval:   opts.OnlineInterval,
		OnlineWait:       opts.OnlineWait,
		StopInterval:     opts.StopInterval,
		StopWait:         opts.StopWait,
		HostnameAttempts: opts.HostnameAttempts,
		HostnamePause:    opts.HostnamePause,
		DNSSyncInterval:  opts.DNSSyncInterval,
		DNSSyncWait:      opts.DNSSyncWait,
		VerifyPause:      opts.VerifyPause,
	}, transfer, dns)

	m := &Module{deps: deps}
	m.ports = Ports{
		Provisioner:    svc,
		Decommissioner: svc,
	}
	return m
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return "endpoint" }
