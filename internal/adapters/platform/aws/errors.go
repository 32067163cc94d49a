package aws

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"

	"github.com/driftline/driftline/internal/errors"
)

// classifyAWSError maps SDK failures onto application error codes so the
// engine can distinguish auth problems from plain API failures.
func classifyAWSError(ctx context.Context, operation string, err error) error {
	if err == nil {
		return errors.New(errors.CodeInternal,
			fmt.Sprintf("unexpected nil error classifying AWS %s failure", operation))
	}

	if ctx.Err() != nil || err == context.Canceled || err == context.DeadlineExceeded {
		return errors.Wrap(err, errors.CodePlatformAPIError,
			fmt.Sprintf("context canceled during AWS %s call", operation))
	}

	if isAuthError(err) {
		return errors.Wrap(err, errors.CodePlatformAuthError,
			fmt.Sprintf("AWS authentication error during %s", operation))
	}

	return errors.Wrap(err, errors.CodePlatformAPIError,
		fmt.Sprintf("AWS %s failed", operation))
}

func isAuthError(err error) bool {
	var apiErr smithy.APIError
	if stderrs.As(err, &apiErr) && apiErr != nil {
		switch apiErr.ErrorCode() {
		case "AuthFailure", "UnauthorizedOperation", "AccessDenied", "AccessDeniedException",
			"ExpiredToken", "InvalidClientTokenId":
			return true
		}
	}
	msg := err.Error()
	return strings.Contains(msg, "AuthFailure") ||
		strings.Contains(msg, "UnauthorizedOperation") ||
		strings.Contains(msg, "AccessDenied")
}
