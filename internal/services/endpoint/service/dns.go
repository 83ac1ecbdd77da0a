package service

import (
	"context"
	"fmt"
	"strings"

	"sftpcycle/internal/platform/convergence"
	"sftpcycle/internal/platform/logger"
	"sftpcycle/internal/services/endpoint/domain"
)

const aliasTTL = 60

// updateAlias points the alias CNAME at target and blocks until the zone
// reports the change as fully propagated. The short wait keeps user-visible
// latency low while still confirming propagation before reporting success
func (s *Svc) updateAlias(ctx context.Context, alias, target string) error {
	log := logger.C(ctx)

	changeID, err := s.dns.UpsertCNAME(ctx, domain.CNAMEChange{
		ZoneID:  s.cfg.HostedZoneID,
		Name:    alias,
		Target:  target,
		TTL:     aliasTTL,
		Comment: fmt.Sprintf("sftpcycle alias update - %d", s.now().Unix()),
	})
	if err != nil {
		return err
	}
	log.Info().Str("change_id", changeID).Str("alias", alias).Str("target", target).Msg("dns change submitted")

	return s.waiter.Wait(ctx, convergence.Spec{
		Name: "dns change " + changeID,
		Fetch: func(ctx context.Context) (string, error) {
			synced, err := s.dns.ChangeSynced(ctx, changeID)
			if err != nil {
				return "", err
			}
			if synced {
				return "INSYNC", nil
			}
			return "PENDING", nil
		},
		Ready:    func(state string) bool { return state == "INSYNC" },
		Interval: s.cfg.DNSSyncInterval,
		MaxWait:  s.cfg.DNSSyncWait,
	})
}

// verifyAlias reads the record back and compares it to the expected target.
// Absence and mismatch are both false, never an error; verification is
// observational only. Name comparison is trailing-dot-insensitive because the
// zone lists fully-qualified names
func (s *Svc) verifyAlias(ctx context.Context, alias, expected string) bool {
	log := logger.C(ctx)

	records, err := s.dns.ListRecords(ctx, s.cfg.HostedZoneID, alias)
	if err != nil {
		log.Warn().Err(err).Str("alias", alias).Msg("dns verification failed")
		return false
	}
	for _, rec := range records {
		if rec.Type != "CNAME" || trimDot(rec.Name) != trimDot(alias) {
			continue
		}
		if trimDot(rec.Value) != trimDot(expected) {
			log.Warn().Str("alias", alias).Str("expected", expected).Str("got", rec.Value).Msg("alias value mismatch")
			return false
		}
		log.Info().Str("alias", alias).Str("value", rec.Value).Msg("dns verification successful")
		return true
	}
	log.Warn().Str("alias", alias).Msg("alias record not found")
	return false
}

func trimDot(name string) string { return strings.TrimSuffix(name, ".") }
