// Package handler exposes the two workflows as Lambda entrypoints
package handler

import (
	"context"

	"sftpcycle/internal/modkit/lambdakit"
	"sftpcycle/internal/platform/logger"
	"sftpcycle/internal/services/endpoint/domain"
	endpointmod "sftpcycle/internal/services/endpoint/module"
	"sftpcycle/internal/services/endpoint/service"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
)

// Up returns the bring-up handler. Input problems (missing configuration,
// malformed user configs) surface as 400 before any provider call; workflow
// failures carry the provider's code at 500
func Up(prov domain.ProvisionPort, opts endpointmod.Options) lambdakit.Handler {
	return func(ctx context.Context) (lambdakit.Response, error) {
		ctx = logger.WithInvocation(ctx, invocationID(ctx))

		if err := opts.ValidateUp(); err != nil {
			return lambdakit.Err(err), nil
		}
		users, err := service.ParseUserSpecs(opts.RawUserConfigs)
		if err != nil {
			logger.C(ctx).Error().Err(err).Msg("rejecting invalid user configs")
			return lambdakit.Err(err), nil
		}

		res, err := prov.Provision(ctx, users)
		if err != nil {
			logger.C(ctx).Error().Err(err).Msg("bring-up failed")
			return lambdakit.Err(err), nil
		}
		return lambdakit.OK(res), nil
	}
}

// Down returns the tear-down handler
func Down(dec domain.DecommissionPort, opts endpointmod.Options) lambdakit.Handler {
	return func(ctx context.Context) (lambdakit.Response, error) {
		ctx = logger.WithInvocation(ctx, invocationID(ctx))

		if err := opts.ValidateDown(); err != nil {
			return lambdakit.Err(err), nil
		}

		res, err := dec.Decommission(ctx)
		if err != nil {
			logger.C(ctx).Error().Err(err).Msg("tear-down failed")
			return lambdakit.Err(err), nil
		}
		return lambdakit.OK(res), nil
	}
}

// invocationID prefers the runtime's request id and falls back to a fresh
// uuid so local runs still get correlated logs
func invocationID(ctx context.Context) string {
	if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
		return lc.AwsRequestID
	}
	return uuid.NewString()
}
