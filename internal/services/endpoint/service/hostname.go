package service

import (
	"context"
	"fmt"
	"strings"

	"sftpcycle/internal/platform/logger"
	"sftpcycle/internal/services/endpoint/domain"
)

// placeholderHostname is the value some describe paths report before the
// endpoint is populated
const placeholderHostname = "None"

// reportedHostname returns the description's endpoint when it is
// authoritative, else ""
func reportedHostname(srv domain.Server) string {
	if srv.Endpoint != "" && srv.Endpoint != placeholderHostname {
		return srv.Endpoint
	}
	return ""
}

// hostnameFor returns the authoritative endpoint when the description carries
// one, else a hostname constructed from the server id and region. The
// endpoint field is populated asynchronously after creation, so callers retry
// (see resolveHostname) instead of trusting a single read
func (s *Svc) hostnameFor(srv domain.Server) string {
	if h := reportedHostname(srv); h != "" {
		return h
	}
	return s.constructedHostname(srv.ID, srv.ARN)
}

// constructedHostname builds the public endpoint name deterministically.
// Region comes from the server ARN (arn:aws:transfer:<region>:...) when
// parseable, else the configured ambient region
func (s *Svc) constructedHostname(serverID, arn string) string {
	region := s.cfg.Region
	if parts := strings.Split(arn, ":"); len(parts) >= 4 && parts[3] != "" {
		region = parts[3]
	}
	return fmt.Sprintf("%s.server.transfer.%s.amazonaws.com", serverID, region)
}

// resolveHostname polls the server description until an authoritative
// endpoint shows up, pausing between attempts. Exhausting the attempts falls
// back to the constructed name; hostname resolution is never fatal
func (s *Svc) resolveHostname(ctx context.Context, serverID string) string {
	log := logger.C(ctx)

	last := domain.Server{ID: serverID}
	for attempt := 1; attempt <= s.cfg.HostnameAttempts; attempt++ {
		srv, err := s.transfer.DescribeServer(ctx, serverID)
		if err != nil {
			log.Warn().Err(err).Int("attempt", attempt).Msg("describe for hostname failed")
		} else {
			last = srv
			if h := reportedHostname(srv); h != "" {
				log.Info().Str("hostname", h).Msg("server hostname obtained")
				return h
			}
		}
		if attempt < s.cfg.HostnameAttempts {
			log.Info().Int("attempt", attempt).Dur("pause", s.cfg.HostnamePause).Msg("hostname not yet available")
			s.sleep(s.cfg.HostnamePause)
		}
	}

	hostname := s.hostnameFor(last)
	log.Warn().Str("hostname", hostname).Msg("endpoint never reported; using constructed hostname")
	return hostname
}
