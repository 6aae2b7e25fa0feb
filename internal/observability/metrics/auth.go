package metrics

import (
	"time"

	apperrors "github.com/superaisp/acceso-api/internal/errors"
	"github.com/superaisp/acceso-api/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// ResultForError maps an operation outcome to a result tag value.
func ResultForError(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultSuccess
}

// LoginMetric captures details about a sign-in attempt for metric emission.
type LoginMetric struct {
	Result   string
	Duration time.Duration
	Err      error
}

// EmitLogin emits standardised sign-in metrics. Failures are tagged with the
// application error code so rejection reasons can be graphed separately.
func EmitLogin(sink statsd.Sink, in LoginMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"result": in.Result,
	}
	if in.Err != nil && in.Result == ResultError {
		tags["reason"] = string(apperrors.GetCode(in.Err))
	}

	sink.Count("auth.login", 1, tags)

	if in.Duration > 0 {
		sink.Timing("auth.login.duration", in.Duration, CloneTags(tags))
	}
}

// CloneTags creates a shallow copy of a tag map, filtering out empty keys.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := make(map[string]string, len(src))
	for k, v := range src {
		if k == "" {
			continue
		}
		out[k] = v
	}
	return out
}
