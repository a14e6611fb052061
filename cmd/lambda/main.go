// Package main is the entry point for the single-invocation deployment
// variant of the marketplace proxy.
package main

import (
	awslambda "github.com/aws/aws-lambda-go/lambda"

	"github.com/sellerbridge/marketplace-proxy/internal/config"
	"github.com/sellerbridge/marketplace-proxy/internal/lambda"
	"github.com/sellerbridge/marketplace-proxy/internal/marketplace"
)

func main() {
	cfg := config.FromEnv()

	forwarder := marketplace.New(
		cfg.Marketplace.BaseURL(),
		marketplace.WithTimeout(cfg.Marketplace.Timeout),
	)

	h := lambda.New(forwarder, cfg.Environment)
	awslambda.Start(h.Handle)
}
