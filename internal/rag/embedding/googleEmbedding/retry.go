package googleEmbedding

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// isRateLimited recognizes quota exhaustion so the caller's retry loop can
// back off instead of giving up.
func isRateLimited(err error) bool {
	if s, ok := status.FromError(err); ok {
		if s.Code() == codes.ResourceExhausted {
			logger.Error("Rate limit hit! ", "error", err)
			return true
		}
	}
	return false
}
