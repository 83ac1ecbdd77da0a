package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/route53"
	"github.com/aws/aws-sdk-go-v2/service/transfer"

	"sftpcycle/internal/adapters/awsroute53"
	"sftpcycle/internal/adapters/awstransfer"
	"sftpcycle/internal/modkit"
	"sftpcycle/internal/modkit/lambdakit"
	"sftpcycle/internal/modkit/module"
	"sftpcycle/internal/platform/config"
	"sftpcycle/internal/platform/logger"
	"sftpcycle/internal/services/endpoint/handler"
	endpointmod "sftpcycle/internal/services/endpoint/module"
)

func main() {
	root := config.New()
	l := logger.Get()

	awscfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		l.Fatal().Err(err).Msg("aws config load failed")
	}

	deps := modkit.Deps{
		Cfg: root,
		Log: *l,
	}

	opts := endpointmod.FromConfig(root)
	if opts.Region == "" {
		opts.Region = awscfg.Region
	}

	mod := endpointmod.New(deps, opts,
		awstransfer.New(transfer.NewFromConfig(awscfg)),
		awsroute53.New(route53.NewFromConfig(awscfg)),
	)
	module.Register(mod.Name(), mod.Ports())

	ports := module.MustPortsOf[endpointmod.Ports](mod)

	lambda.Start(lambdakit.Recover(handler.Up(ports.Provisioner, opts)))
}
