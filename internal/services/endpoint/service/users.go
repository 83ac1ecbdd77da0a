package service

import (
	"context"

	"sftpcycle/internal/platform/logger"
	"sftpcycle/internal/services/endpoint/domain"
)

// createUsers provisions the configured users on serverID in input order.
// Each user's home directory is the bucket root joined with the spec's path.
// A bad spec or a provider rejection skips that user and never aborts the
// batch; the returned slice holds only successes, in processing order
func (s *Svc) createUsers(ctx context.Context, serverID string, specs []domain.UserSpec) []domain.CreatedUser {
	log := logger.C(ctx)

	created := make([]domain.CreatedUser, 0, len(specs))
	for _, spec := range specs {
		if err := validSpec(spec); err != nil {
			log.Error().Err(err).Str("username", spec.Username).Msg("skipping invalid user spec")
			continue
		}
		home := "/" + s.cfg.Bucket + spec.HomeDir
		err := s.transfer.CreateUser(ctx, domain.CreateUserArgs{
			ServerID:      serverID,
			Username:      spec.Username,
			Role:          s.cfg.UserRoleARN,
			HomeDirectory: home,
			PublicKey:     spec.PublicKey,
			Tags: map[string]string{
				"Name":       spec.Username,
				"ServerName": s.cfg.ServerName,
			},
		})
		if err != nil {
			log.Error().Err(err).Str("username", spec.Username).Msg("failed to create user")
			continue
		}
		log.Info().Str("username", spec.Username).Str("home_directory", home).Msg("created user")
		created = append(created, domain.CreatedUser{Username: spec.Username, HomeDirectory: home})
	}
	return created
}

// deleteAllUsers removes every user bound to serverID. A listing failure
// propagates so the caller can decide how much to care; individual delete
// failures are logged and the sweep continues
func (s *Svc) deleteAllUsers(ctx context.Context, serverID string) (int, error) {
	log := logger.C(ctx)

	usernames, err := s.transfer.ListUsernames(ctx, serverID)
	if err != nil {
		return 0, err
	}
	deleted := 0
	for _, username := range usernames {
		if err := s.transfer.DeleteUser(ctx, serverID, username); err != nil {
			log.Warn().Err(err).Str("username", username).Msg("failed to delete user")
			continue
		}
		log.Info().Str("username", username).Msg("deleted user")
		deleted++
	}
	return deleted, nil
}
