//go:build lambda
// +build lambda

package main

import (
	"context"
	"log"

	"github.com/ledgerline/filing-api/apps/api/server"
	"github.com/ledgerline/filing-api/libs/go/logger"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"
)

var ginLambda *ginadapter.GinLambda

func init() {
	srv, err := server.Initialize(context.Background())
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}
	ginLambda = ginadapter.New(srv.Router)
}

func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.Debug("Received Lambda request",
		zap.String("path", req.Path),
		zap.String("request", spew.Sdump(req)),
	)

	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	defer logger.Sync()
	lambda.Start(Handler)
}
