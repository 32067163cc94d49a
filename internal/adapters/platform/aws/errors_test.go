package aws

import (
	"context"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"

	"github.com/driftline/driftline/internal/errors"
)

func TestClassifyAuthErrors(t *testing.T) {
	for _, code := range []string{"AuthFailure", "UnauthorizedOperation", "AccessDenied", "ExpiredToken"} {
		err := classifyAWSError(context.Background(), "s3 list-buckets", &smithy.GenericAPIError{Code: code})
		assert.True(t, errors.Is(err, errors.CodePlatformAuthError), "code %s", code)
	}
}

func TestClassifyGenericAPIError(t *testing.T) {
	err := classifyAWSError(context.Background(), "ec2 describe-vpcs",
		&smithy.GenericAPIError{Code: "Throttling"})
	assert.True(t, errors.Is(err, errors.CodePlatformAPIError))
}

func TestClassifyCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := classifyAWSError(ctx, "lambda list-functions", context.Canceled)
	assert.True(t, errors.Is(err, errors.CodePlatformAPIError))
}

func TestArnSuffix(t *testing.T) {
	assert.Equal(t, "acme-api", arnSuffix("arn:aws:ecs:us-east-1:123:service/acme-cluster/acme-api"))
	assert.Equal(t, "plain", arnSuffix("plain"))
}

func TestParseLambdaTimestamp(t *testing.T) {
	assert.Equal(t, 2024, parseLambdaTimestamp("2024-05-01T10:00:00.000+0000").Year())
	assert.True(t, parseLambdaTimestamp("").IsZero())
	assert.True(t, parseLambdaTimestamp("garbage").IsZero())
}
