package hcloud

import (
	"errors"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// isRetryable checks if an error is worth retrying within the same run.
// Locked servers typically have another action (backup, snapshot) running.
func isRetryable(err error) bool {
	return IsRateLimited(err) || isHCloudErrorCode(err,
		hcloud.ErrorCodeLocked,         // Item is locked (action running)
		hcloud.ErrorCodeConflict,       // Resource changed during request
		hcloud.ErrorCodeResourceLocked, // Resource locked (contact support)
		hcloud.ErrorCodeResourceUnavailable,
	)
}

// isHCloudErrorCode checks if the error is an hcloud API error with one of the given codes.
func isHCloudErrorCode(err error, codes ...hcloud.ErrorCode) bool {
	if err == nil {
		return false
	}

	var hcloudErr hcloud.Error
	if errors.As(err, &hcloudErr) {
		for _, code := range codes {
			if hcloudErr.Code == code {
				return true
			}
		}
	}
	return false
}

// IsNotFound checks if an error indicates a resource was not found.
func IsNotFound(err error) bool {
	return isHCloudErrorCode(err, hcloud.ErrorCodeNotFound)
}

// IsRateLimited checks if an error indicates rate limiting.
func IsRateLimited(err error) bool {
	return isHCloudErrorCode(err, hcloud.ErrorCodeRateLimitExceeded)
}
