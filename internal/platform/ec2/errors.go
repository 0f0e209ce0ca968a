package ec2

import (
	"errors"

	"github.com/aws/smithy-go"
)

// isRetryable checks if an error is worth retrying within the same run.
// IncorrectInstanceState is not: the instance is mid-transition and the
// next run sees its settled state.
func isRetryable(err error) bool {
	return IsThrottled(err) || isAPIErrorCode(err,
		"InternalError",
		"ServiceUnavailable",
		"Unavailable",
	)
}

// isAPIErrorCode checks if the error is an AWS API error with one of the given codes.
func isAPIErrorCode(err error, codes ...string) bool {
	if err == nil {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		for _, code := range codes {
			if apiErr.ErrorCode() == code {
				return true
			}
		}
	}
	return false
}

// IsNotFound checks if an error indicates the instance does not exist.
func IsNotFound(err error) bool {
	return isAPIErrorCode(err, "InvalidInstanceID.NotFound", "InvalidInstanceID.Malformed")
}

// IsThrottled checks if an error indicates request throttling.
func IsThrottled(err error) bool {
	return isAPIErrorCode(err, "RequestLimitExceeded", "Throttling", "ThrottlingException")
}
