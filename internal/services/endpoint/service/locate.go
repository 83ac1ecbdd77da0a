package service

import (
	"context"

	perr "sftpcycle/internal/platform/errors"
	"sftpcycle/internal/platform/logger"
)

// nameTag is the tag key used to mark servers managed by this system
const nameTag = "Name"

// findServerByName scans all servers and matches the Name tag against name.
// First listing match wins. Servers whose tags cannot be read are skipped so
// one unreadable server never hides the rest. No match is a NotFound error,
// which callers treat as "nothing to do"
func (s *Svc) findServerByName(ctx context.Context, name string) (string, error) {
	log := logger.C(ctx)

	servers, err := s.transfer.ListServers(ctx)
	if err != nil {
		return "", err
	}
	for _, srv := range servers {
		tags, err := s.transfer.ListTags(ctx, srv.ARN)
		if err != nil {
			log.Warn().Err(err).Str("server_id", srv.ID).Msg("skipping server with unreadable tags")
			continue
		}
		if tags[nameTag] == name {
			return srv.ID, nil
		}
	}
	return "", perr.NotFoundf("no server found with name %s", name)
}
