package aws

import (
	"context"
	"encoding/json"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/ledgerline/filing-api/libs/go/interfaces"
	"github.com/ledgerline/filing-api/libs/go/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrSecretNotFound is returned when neither Secrets Manager nor the fallback
// environment variable yields a value
var ErrSecretNotFound = errors.New("secret not found")

type secretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerClient resolves gateway credentials from AWS Secrets Manager,
// falling back to plain environment variables for local runs.
type SecretsManagerClient struct {
	svc    secretsAPI
	getenv func(string) string
	log    *zap.Logger
}

var _ interfaces.SecretsProvider = (*SecretsManagerClient)(nil)

// NewSecretsManagerClient creates a client from the default AWS configuration
// chain (environment variables, shared config, IAM role).
func NewSecretsManagerClient(ctx context.Context) (*SecretsManagerClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load AWS SDK config")
	}
	return newSecretsManagerClient(secretsmanager.NewFromConfig(cfg), os.Getenv), nil
}

// NewEnvOnlySecretsClient returns a client that only reads environment
// variables. Used where no AWS credentials are available.
func NewEnvOnlySecretsClient() *SecretsManagerClient {
	return newSecretsManagerClient(nil, os.Getenv)
}

func newSecretsManagerClient(svc secretsAPI, getenv func(string) string) *SecretsManagerClient {
	return &SecretsManagerClient{
		svc:    svc,
		getenv: getenv,
		log:    logger.L().With(zap.String("component", "secrets")),
	}
}

// GetSecretString returns the secret named by the ARN in secretIDEnvVar, or
// the value of fallbackEnvVar when no ARN is set or the fetch fails. A secret
// stored as single-key JSON yields that key's value. Secret values are never
// logged.
func (c *SecretsManagerClient) GetSecretString(ctx context.Context, secretIDEnvVar, fallbackEnvVar string) (string, error) {
	if raw, ok := c.fetch(ctx, secretIDEnvVar); ok {
		var single map[string]string
		if err := json.Unmarshal([]byte(raw), &single); err == nil && len(single) == 1 {
			for _, v := range single {
				return v, nil
			}
		}
		return raw, nil
	}

	if v := c.getenv(fallbackEnvVar); v != "" {
		c.log.Debug("Using secret from environment variable", zap.String("env_var", fallbackEnvVar))
		return v, nil
	}
	return "", errors.Wrapf(ErrSecretNotFound, "ARN env var %s, direct env var %s", secretIDEnvVar, fallbackEnvVar)
}

// GetSecretJSON unmarshals a JSON secret named by the ARN in secretIDEnvVar
// into target. It reports false when no ARN is configured.
func (c *SecretsManagerClient) GetSecretJSON(ctx context.Context, secretIDEnvVar string, target any) (bool, error) {
	raw, ok := c.fetch(ctx, secretIDEnvVar)
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return true, errors.Wrapf(err, "secret referenced by %s is not valid JSON", secretIDEnvVar)
	}
	return true, nil
}

func (c *SecretsManagerClient) fetch(ctx context.Context, secretIDEnvVar string) (string, bool) {
	secretID := c.getenv(secretIDEnvVar)
	if secretID == "" || c.svc == nil {
		return "", false
	}

	out, err := c.svc.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: aws.String(secretID)})
	if err != nil || out == nil || out.SecretString == nil || *out.SecretString == "" {
		c.log.Warn("Failed to retrieve secret from Secrets Manager, falling back",
			zap.String("arn_env_var", secretIDEnvVar),
			zap.Error(err))
		return "", false
	}
	c.log.Debug("Fetched secret from Secrets Manager", zap.String("arn_env_var", secretIDEnvVar))
	return *out.SecretString, true
}
