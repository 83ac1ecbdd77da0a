package service

import (
	"context"
	"fmt"
	"strconv"

	"sftpcycle/internal/platform/convergence"
	"sftpcycle/internal/platform/logger"
	"sftpcycle/internal/services/endpoint/domain"
)

// Provision runs the bring-up workflow: create a brand-new server, wait for
// it to come online, resolve its hostname, point the DNS alias at it, then
// create the configured users. A fresh server is created on every run by
// design; adoption of an existing one is out of scope.
//
// Server creation and the online wait are workflow-critical and propagate.
// The DNS step and individual user creations are best-effort: working SFTP
// access outweighs the alias, so their failures log and the workflow keeps
// going
func (s *Svc) Provision(ctx context.Context, users []domain.UserSpec) (domain.ProvisionResult, error) {
	log := logger.C(ctx)
	log.Info().Str("server_name", s.cfg.ServerName).Int("users", len(users)).Msg("starting bring-up")

	tags := map[string]string{
		nameTag:       s.cfg.ServerName,
		"AutoManaged": "true",
		"CreatedAt":   strconv.FormatInt(s.now().Unix(), 10),
	}
	if s.cfg.ScheduleTag != "" {
		tags["Schedule"] = s.cfg.ScheduleTag
	}
	serverID, err := s.transfer.CreateServer(ctx, domain.CreateServerArgs{
		LoggingRole: s.cfg.LoggingRoleARN,
		Tags:        tags,
	})
	if err != nil {
		return domain.ProvisionResult{}, err
	}
	log.Info().Str("server_id", serverID).Msg("created server")

	if err := s.waitOnline(ctx, serverID); err != nil {
		return domain.ProvisionResult{}, err
	}

	hostname := s.resolveHostname(ctx, serverID)

	alias := ""
	dnsStep := domain.StepSkipped
	if s.cfg.DomainName != "" && s.cfg.HostedZoneID != "" {
		alias = s.cfg.Subdomain + "." + s.cfg.DomainName
		if err := s.updateAlias(ctx, alias, hostname); err != nil {
			log.Error().Err(err).Str("alias", alias).Msg("dns update failed; continuing without alias")
			alias = ""
			dnsStep = domain.StepFailed
		} else {
			dnsStep = domain.StepOK
			s.verifyAlias(ctx, alias, hostname)
		}
	} else {
		log.Warn().Msg("dns update skipped - missing domain configuration")
	}

	created := s.createUsers(ctx, serverID, users)

	connection := hostname
	if alias != "" {
		connection = alias
	}
	examples := make([]string, 0, len(created))
	for _, u := range created {
		examples = append(examples, fmt.Sprintf("sftp %s@%s", u.Username, connection))
	}

	log.Info().Str("server_id", serverID).Str("connection_hostname", connection).Int("created_users", len(created)).Msg("bring-up complete")

	return domain.ProvisionResult{
		Message:            fmt.Sprintf("Successfully created SFTP server with %d users", len(created)),
		ServerID:           serverID,
		Hostname:           hostname,
		AliasHostname:      alias,
		ConnectionHostname: connection,
		Users:              created,
		Bucket:             s.cfg.Bucket,
		CreatedAt:          strconv.FormatInt(s.now().Unix(), 10),
		DNSUpdated:         alias != "",
		DNSStep:            dnsStep,
		ConnectionExamples: examples,
	}, nil
}

// waitOnline blocks until the new server reports ONLINE. An explicit failure
// state aborts immediately rather than waiting out the deadline
func (s *Svc) waitOnline(ctx context.Context, serverID string) error {
	return s.waiter.Wait(ctx, convergence.Spec{
		Name: "server " + serverID,
		Fetch: func(ctx context.Context) (string, error) {
			srv, err := s.transfer.DescribeServer(ctx, serverID)
			if err != nil {
				return "", err
			}
			return string(srv.State), nil
		},
		Ready:    func(state string) bool { return domain.ParseState(state) == domain.StateOnline },
		Fatal:    func(state string) bool { return domain.ParseState(state).Fatal() },
		Interval: s.cfg.OnlineInterval,
		MaxWait:  s.cfg.OnlineWait,
	})
}
