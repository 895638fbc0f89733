// Package bedrock is the language model client backed by Anthropic models on
// AWS Bedrock.
package bedrock

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/smithy-go"
	"github.com/goccy/go-json"

	"github.com/haguru/kakashi/config"
	"github.com/haguru/kakashi/internal/interfaces"
	"github.com/haguru/kakashi/internal/providers"
)

const (
	ProviderName = "bedrock"
	contentType  = "application/json"
)

// authErrorCodes are the AWS error codes that mean the caller's credentials
// were rejected.
var authErrorCodes = []string{"AccessDenied", "UnrecognizedClient", "ExpiredToken", "InvalidSignature"}

// Invoker is the part of the Bedrock runtime client used here.
type Invoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type invokeRequest struct {
	AnthropicVersion string    `json:"anthropic_version"`
	MaxTokens        int       `json:"max_tokens"`
	Temperature      float64   `json:"temperature"`
	Messages         []message `json:"messages"`
}

type invokeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type Client struct {
	invoker Invoker
	cfg     config.BedrockConfig
	timeout time.Duration
	breaker *providers.Breaker
	// credErr is set when no AWS credentials could be resolved at startup.
	credErr error
}

func New(invoker Invoker, cfg config.BedrockConfig, timeout time.Duration, breaker *providers.Breaker) *Client {
	return &Client{invoker: invoker, cfg: cfg, timeout: timeout, breaker: breaker}
}

// NewFromConfig builds a client from the AWS default credential chain. A
// missing or broken chain does not fail startup; every Complete call then
// returns an AuthFailure.
func NewFromConfig(ctx context.Context, cfg config.BedrockConfig, timeout time.Duration, breaker *providers.Breaker, logger interfaces.Logger) *Client {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		logger.Warn("failed to load AWS configuration, language model actions are disabled", "error", err)
		c := New(nil, cfg, timeout, breaker)
		c.credErr = err
		return c
	}

	c := New(bedrockruntime.NewFromConfig(awsCfg), cfg, timeout, breaker)
	if awsCfg.Credentials == nil {
		c.credErr = errors.New("no AWS credential provider")
	} else if _, err := awsCfg.Credentials.Retrieve(ctx); err != nil {
		c.credErr = err
	}
	if c.credErr != nil {
		logger.Warn("AWS credentials are not available, language model actions are disabled", "error", c.credErr)
	}
	return c
}

// Complete sends prompt as a single user message and returns the trimmed
// text of the first content block.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.credErr != nil || c.invoker == nil {
		cause := c.credErr
		if cause == nil {
			cause = errors.New("no Bedrock client")
		}
		return "", providers.NewError(ProviderName, providers.KindAuthFailure,
			fmt.Errorf("%w: %v", providers.ErrMissingCredential, cause))
	}

	body, err := json.Marshal(invokeRequest{
		AnthropicVersion: c.cfg.AnthropicVersion,
		MaxTokens:        c.cfg.MaxTokens,
		Temperature:      c.cfg.Temperature,
		Messages:         []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", providers.NewError(ProviderName, providers.KindUpstreamError, fmt.Errorf("failed to encode request: %w", err))
	}

	return providers.Call(ctx, c.breaker, func(ctx context.Context) (string, error) {
		if c.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}

		out, err := c.invoker.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
			ModelId:     aws.String(c.cfg.ModelID),
			ContentType: aws.String(contentType),
			Accept:      aws.String(contentType),
			Body:        body,
		})
		if err != nil {
			return "", classify(err)
		}

		var resp invokeResponse
		if err := json.Unmarshal(out.Body, &resp); err != nil {
			return "", providers.NewError(ProviderName, providers.KindUpstreamError, fmt.Errorf("failed to decode response: %w", err))
		}
		if len(resp.Content) == 0 {
			return "", providers.NewError(ProviderName, providers.KindUpstreamError, errors.New("response has no content"))
		}
		return strings.TrimSpace(resp.Content[0].Text), nil
	})
}

func classify(err error) *providers.Error {
	if errors.Is(err, context.DeadlineExceeded) {
		return providers.NewError(ProviderName, providers.KindTimeout, err)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		for _, c := range authErrorCodes {
			if strings.Contains(code, c) {
				return providers.NewError(ProviderName, providers.KindAuthFailure, err)
			}
		}
		return providers.NewError(ProviderName, providers.KindUpstreamError, err)
	}
	return providers.NewError(ProviderName, providers.KindNetworkFailure, err)
}
