package service

import (
	"context"
	"fmt"

	"sftpcycle/internal/platform/convergence"
	perr "sftpcycle/internal/platform/errors"
	"sftpcycle/internal/platform/logger"
	"sftpcycle/internal/services/endpoint/domain"
)

// Decommission runs the tear-down workflow: locate the server by name, clear
// its users, stop it if needed, delete it, and confirm the deletion took.
//
// Everything between locating and the final delete is best-effort: a user
// sweep failure, a stop failure, or a stop-wait timeout never blocks the
// delete. Only the delete itself (and the initial describe) propagate
func (s *Svc) Decommission(ctx context.Context) (domain.TeardownResult, error) {
	log := logger.C(ctx)
	log.Info().Str("server_name", s.cfg.ServerName).Msg("starting tear-down")

	serverID, err := s.findServerByName(ctx, s.cfg.ServerName)
	if perr.IsNotFound(err) {
		log.Info().Str("server_name", s.cfg.ServerName).Msg("no server found; nothing to do")
		return domain.TeardownResult{
			Message: fmt.Sprintf("No server found with name %s", s.cfg.ServerName),
			Action:  domain.ActionNoneRequired,
		}, nil
	}
	if err != nil {
		return domain.TeardownResult{}, err
	}

	srv, err := s.transfer.DescribeServer(ctx, serverID)
	if err != nil {
		return domain.TeardownResult{}, err
	}
	previous := srv.State
	log.Info().Str("server_id", serverID).Str("state", string(previous)).Msg("found server")

	if n, err := s.deleteAllUsers(ctx, serverID); err != nil {
		log.Warn().Err(err).Msg("user cleanup failed; continuing with server deletion")
	} else {
		log.Info().Int("deleted", n).Msg("user cleanup complete")
	}

	switch previous {
	case domain.StateOnline:
		if err := s.transfer.StopServer(ctx, serverID); err != nil {
			log.Warn().Err(err).Msg("stop request failed; continuing with deletion")
		} else {
			s.waitStopped(ctx, serverID)
		}
	case domain.StateStopping:
		s.waitStopped(ctx, serverID)
	default:
		log.Info().Str("state", string(previous)).Msg("server not running; skipping stop")
	}

	if err := s.transfer.DeleteServer(ctx, serverID); err != nil {
		return domain.TeardownResult{}, err
	}
	log.Info().Str("server_id", serverID).Msg("delete issued")

	s.confirmGone(ctx, serverID)

	return domain.TeardownResult{
		Message:       fmt.Sprintf("Successfully deleted SFTP server %s", serverID),
		ServerID:      serverID,
		PreviousState: previous,
		Action:        domain.ActionDeleted,
	}, nil
}

// waitStopped waits for OFFLINE. A STOP_FAILED state or a vanished server is
// ready enough to proceed with deletion, and a timeout only logs; stopping is
// a courtesy to the provider, not a gate
func (s *Svc) waitStopped(ctx context.Context, serverID string) {
	log := logger.C(ctx)

	err := s.waiter.Wait(ctx, convergence.Spec{
		Name: "server " + serverID,
		Fetch: func(ctx context.Context) (string, error) {
			srv, err := s.transfer.DescribeServer(ctx, serverID)
			if perr.IsNotFound(err) {
				return "GONE", nil
			}
			if err != nil {
				return "", err
			}
			return string(srv.State), nil
		},
		Ready: func(state string) bool {
			switch domain.ParseState(state) {
			case domain.StateOffline, domain.StateStopFailed:
				return true
			}
			return state == "GONE"
		},
		Interval: s.cfg.StopInterval,
		MaxWait:  s.cfg.StopWait,
	})
	if err != nil {
		log.Warn().Err(err).Str("server_id", serverID).Msg("stop wait did not complete; proceeding with deletion")
	}
}

// confirmGone makes one read after a short pause. A not found result confirms
// the deletion; anything else only logs, since deletion is fire-and-forget
func (s *Svc) confirmGone(ctx context.Context, serverID string) {
	log := logger.C(ctx)

	s.sleep(s.cfg.VerifyPause)
	_, err := s.transfer.DescribeServer(ctx, serverID)
	switch {
	case perr.IsNotFound(err):
		log.Info().Str("server_id", serverID).Msg("server successfully deleted")
	case err != nil:
		log.Warn().Err(err).Str("server_id", serverID).Msg("unexpected error checking server deletion")
	default:
		log.Info().Str("server_id", serverID).Msg("deletion initiated but may still be processing")
	}
}
