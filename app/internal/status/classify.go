package status

import "strings"

// DefaultDegradedThresholdMs is the response time at which an accepted
// check is classified degraded instead of operational.
const DefaultDegradedThresholdMs = 4000

// Interstitial challenge pages return an accepted status code while the
// real service is unreachable behind them. Matched case-insensitively.
var challengePhrases = []string{
	"checking your browser",
	"just a moment",
	"cf-challenge",
}

// IsChallengeBody reports whether a response body looks like an
// interstitial challenge page rather than real service output.
func IsChallengeBody(body string) bool {
	b := strings.ToLower(body)
	for _, phrase := range challengePhrases {
		if strings.Contains(b, phrase) {
			return true
		}
	}
	return strings.Contains(b, "ray_id") && strings.Contains(b, "cloudflare")
}

// Classify turns one raw probe outcome into a status.
//
// A non-accepted check is down, unconditionally. An accepted check is
// degraded when the body is a challenge page or the response time is at
// or above the threshold, otherwise operational. Pass thresholdMs <= 0
// for the default. The body may be empty; callers only capture it for
// text content types.
func Classify(accepted bool, responseTimeMs int, body string, thresholdMs int) Status {
	if !accepted {
		return Down
	}
	if body != "" && IsChallengeBody(body) {
		return Degraded
	}
	if thresholdMs <= 0 {
		thresholdMs = DefaultDegradedThresholdMs
	}
	if responseTimeMs >= thresholdMs {
		return Degraded
	}
	return Operational
}
