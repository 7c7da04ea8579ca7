package config

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// ParameterLister is the part of the SSM client used to read secrets
type ParameterLister interface {
	GetParametersByPath(ctx context.Context, params *ssm.GetParametersByPathInput, optFns ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error)
}

// NewSSMClient builds an SSM client from the default AWS credential chain
func NewSSMClient(ctx context.Context, region string) (*ssm.Client, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return ssm.NewFromConfig(awsCfg), nil
}

// LoadSSM reads every parameter under prefix and returns them keyed by the
// last path element, upper-cased: /site/prod/resend_api_key -> RESEND_API_KEY
func LoadSSM(ctx context.Context, client ParameterLister, prefix string) (map[string]string, error) {
	values := make(map[string]string)

	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(prefix),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read SSM parameters under %s: %w", prefix, err)
		}
		for _, p := range page.Parameters {
			name := aws.ToString(p.Name)
			key := strings.ToUpper(strings.ReplaceAll(path.Base(name), "-", "_"))
			values[key] = aws.ToString(p.Value)
		}
	}

	log.Debug().Str("prefix", prefix).Int("count", len(values)).Msg("Loaded SSM parameters")
	return values, nil
}

// ApplySSM overlays SSM parameters onto config when SSM_PARAMETER_PATH is set.
// Values already present in the environment win.
func ApplySSM(ctx context.Context, c map[string]string) error {
	prefix := GetString(c, "SSM_PARAMETER_PATH", "")
	if prefix == "" {
		return nil
	}

	client, err := NewSSMClient(ctx, GetString(c, "AWS_REGION", ""))
	if err != nil {
		return err
	}

	values, err := LoadSSM(ctx, client, prefix)
	if err != nil {
		return err
	}
	Merge(c, values, true)
	return nil
}
