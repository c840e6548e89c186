// Package main is a command line front end to the filing service. It reads
// JSON inputs from files (or stdin) and prints JSON results.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ledgerline/filing-api/apps/api/server"
	awsclient "github.com/ledgerline/filing-api/libs/go/client/aws"
	"github.com/ledgerline/filing-api/libs/go/helpers"
	"github.com/ledgerline/filing-api/libs/go/interfaces"
	"github.com/ledgerline/filing-api/libs/go/logger"
	"github.com/ledgerline/filing-api/libs/go/types/business"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	exitOK       = 0
	exitFailure  = 1
	exitUsage    = 2
	exitRejected = 3
)

// taxReturnInput is the file format read by submit-ct
type taxReturnInput struct {
	FinancialData business.FinancialData `json:"financial_data"`
	Company       business.CompanyInfo   `json:"company"`
}

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	// newService is swapped out in tests
	newService func(ctx context.Context) (interfaces.FilingService, error)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.InitLogger(os.Getenv("STAGE"))
	defer logger.Sync()

	c := &cli{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr, newService: serviceFromEnv}
	os.Exit(c.run(ctx, os.Args[1:]))
}

// serviceFromEnv builds a filing service from the same environment the API
// reads. Credentials come from plain environment variables.
func serviceFromEnv(ctx context.Context) (interfaces.FilingService, error) {
	if err := server.LoadDotEnv(); err != nil {
		return nil, err
	}
	cfg, err := server.LoadConfig(os.Getenv)
	if err != nil {
		return nil, err
	}
	return server.BuildFilingService(ctx, cfg, awsclient.NewEnvOnlySecretsClient(), nil)
}

func (c *cli) run(ctx context.Context, args []string) int {
	if len(args) < 1 {
		c.usage()
		return exitUsage
	}

	switch args[0] {
	case "compute":
		fs := flag.NewFlagSet("compute", flag.ContinueOnError)
		fs.SetOutput(c.stderr)
		file := fs.String("file", "", "FinancialData JSON file (or use stdin)")
		if err := fs.Parse(args[1:]); err != nil {
			return exitUsage
		}
		return c.compute(ctx, *file)

	case "submit-ct":
		fs := flag.NewFlagSet("submit-ct", flag.ContinueOnError)
		fs.SetOutput(c.stderr)
		file := fs.String("file", "", "JSON file with financial_data and company (or use stdin)")
		wait := fs.Bool("wait", true, "Poll until the return is accepted or rejected")
		if err := fs.Parse(args[1:]); err != nil {
			return exitUsage
		}
		return c.submitTaxReturn(ctx, *file, *wait)

	case "prepare-accounts":
		fs := flag.NewFlagSet("prepare-accounts", flag.ContinueOnError)
		fs.SetOutput(c.stderr)
		file := fs.String("file", "", "AccountsInput JSON file (or use stdin)")
		out := fs.String("out", "", "Write the iXBRL document here instead of stdout")
		if err := fs.Parse(args[1:]); err != nil {
			return exitUsage
		}
		return c.prepareAccounts(ctx, *file, *out)

	case "help", "-h", "--help":
		c.usage()
		return exitOK

	default:
		fmt.Fprintf(c.stderr, "Unknown command %q\n\n", args[0])
		c.usage()
		return exitUsage
	}
}

func (c *cli) usage() {
	fmt.Fprintln(c.stderr, "filer - corporation tax and statutory accounts filing")
	fmt.Fprintln(c.stderr)
	fmt.Fprintln(c.stderr, "Usage:")
	fmt.Fprintln(c.stderr, "  filer compute [-file data.json]")
	fmt.Fprintln(c.stderr, "  filer submit-ct [-file return.json] [-wait=false]")
	fmt.Fprintln(c.stderr, "  filer prepare-accounts [-file accounts.json] [-out accounts.xhtml]")
}

func (c *cli) compute(ctx context.Context, path string) int {
	var data business.FinancialData
	if err := c.readJSON(path, &data); err != nil {
		return c.fail(err)
	}

	svc, err := c.newService(ctx)
	if err != nil {
		return c.fail(err)
	}
	computation, err := svc.ComputeTax(ctx, data)
	if err != nil {
		return c.fail(err)
	}
	return c.printJSON(computation)
}

func (c *cli) submitTaxReturn(ctx context.Context, path string, wait bool) int {
	var input taxReturnInput
	if err := c.readJSON(path, &input); err != nil {
		return c.fail(err)
	}

	svc, err := c.newService(ctx)
	if err != nil {
		return c.fail(err)
	}

	result, err := helpers.RetryTransient(ctx, helpers.DefaultRetryPolicy(), func(ctx context.Context) (*business.SubmissionResult, error) {
		return svc.SubmitTaxReturn(ctx, input.FinancialData, input.Company)
	})
	if err != nil && !business.IsBusinessRejection(err) {
		return c.fail(err)
	}

	if err == nil && wait && result.Status.IsInFlight() {
		logger.Info("Return acknowledged, polling for outcome",
			zap.String("correlation_id", result.CorrelationID),
			zap.Duration("poll_interval", result.PollInterval))

		correlationID, endpoint := result.CorrelationID, result.PollURL
		result, err = helpers.PollUntilDecided(ctx, pollPolicy(result), func(ctx context.Context) (*business.SubmissionResult, error) {
			return svc.PollTaxReturn(ctx, correlationID, endpoint)
		})
		if err != nil && !business.IsBusinessRejection(err) && !errors.Is(err, helpers.ErrStillProcessing) {
			return c.fail(err)
		}
	}

	if code := c.printJSON(result); code != exitOK {
		return code
	}
	if result != nil && result.Status == business.SubmissionStatusRejected {
		return exitRejected
	}
	return exitOK
}

// pollPolicy honours the interval the gateway asked for in its acknowledgement
func pollPolicy(ack *business.SubmissionResult) helpers.RetryPolicy {
	policy := helpers.DefaultPollPolicy()
	if ack != nil && ack.PollInterval > policy.InitialInterval {
		policy.InitialInterval = ack.PollInterval
	}
	return policy
}

func (c *cli) prepareAccounts(ctx context.Context, path, out string) int {
	var input business.AccountsInput
	if err := c.readJSON(path, &input); err != nil {
		return c.fail(err)
	}

	svc, err := c.newService(ctx)
	if err != nil {
		return c.fail(err)
	}
	prepared, err := svc.PrepareAccounts(ctx, input)
	if err != nil {
		var structural *business.StructuralValidationError
		if errors.As(err, &structural) {
			c.printJSON(structural.Result)
		}
		return c.fail(err)
	}

	if out == "" {
		if _, err := c.stdout.Write(prepared.XHTML); err != nil {
			return c.fail(err)
		}
		return exitOK
	}
	if err := os.WriteFile(out, prepared.XHTML, 0o644); err != nil {
		return c.fail(errors.Wrap(err, "failed to write accounts document"))
	}
	fmt.Fprintf(c.stderr, "Wrote %s accounts with %d facts to %s\n", prepared.EntitySize, prepared.FactCount, out)
	return exitOK
}

func (c *cli) readJSON(path string, target interface{}) error {
	var (
		raw []byte
		err error
	)
	if path != "" {
		raw, err = os.ReadFile(path)
	} else {
		raw, err = io.ReadAll(c.stdin)
	}
	if err != nil {
		return errors.Wrap(err, "failed to read input")
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return errors.Wrap(err, "failed to parse input")
	}
	return nil
}

func (c *cli) printJSON(v interface{}) int {
	enc := json.NewEncoder(c.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return c.fail(errors.Wrap(err, "failed to encode output"))
	}
	return exitOK
}

func (c *cli) fail(err error) int {
	fmt.Fprintf(c.stderr, "Error: %v\n", err)
	return exitFailure
}
