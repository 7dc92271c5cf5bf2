package status

import "testing"

// --- Classify ---

func TestClassify_NotAccepted(t *testing.T) {
	// Not accepted is terminal, regardless of timing or body.
	if got := Classify(false, 10, "", 0); got != Down {
		t.Errorf("got %s, want down", got)
	}
	if got := Classify(false, 10, "Just a moment...", 0); got != Down {
		t.Errorf("challenge body should not rescue a rejected check, got %s", got)
	}
}

func TestClassify_SlowResponse(t *testing.T) {
	if got := Classify(true, 5000, "", 0); got != Degraded {
		t.Errorf("got %s, want degraded", got)
	}
	// Threshold is inclusive.
	if got := Classify(true, DefaultDegradedThresholdMs, "", 0); got != Degraded {
		t.Errorf("got %s, want degraded at exactly the threshold", got)
	}
	if got := Classify(true, DefaultDegradedThresholdMs-1, "", 0); got != Operational {
		t.Errorf("got %s, want operational just under the threshold", got)
	}
}

func TestClassify_CustomThreshold(t *testing.T) {
	if got := Classify(true, 300, "", 200); got != Degraded {
		t.Errorf("got %s, want degraded with 200ms threshold", got)
	}
}

func TestClassify_ChallengeBody(t *testing.T) {
	if got := Classify(true, 100, "Just a moment...", 0); got != Degraded {
		t.Errorf("got %s, want degraded", got)
	}
}

func TestClassify_Operational(t *testing.T) {
	if got := Classify(true, 100, "hello", 0); got != Operational {
		t.Errorf("got %s, want operational", got)
	}
	if got := Classify(true, 100, "", 0); got != Operational {
		t.Errorf("absent body should classify operational, got %s", got)
	}
}

// --- IsChallengeBody ---

func TestIsChallengeBody_Phrases(t *testing.T) {
	bodies := []string{
		"<html>Checking your browser before accessing</html>",
		"JUST A MOMENT",
		"<div id=\"cf-challenge\"></div>",
	}
	for _, b := range bodies {
		if !IsChallengeBody(b) {
			t.Errorf("%q should be detected", b)
		}
	}
}

func TestIsChallengeBody_RayIDNeedsCloudflare(t *testing.T) {
	if IsChallengeBody("ray_id: 123") {
		t.Error("ray_id alone should not be a challenge")
	}
	if !IsChallengeBody("ray_id: 123 served by Cloudflare") {
		t.Error("ray_id plus cloudflare should be a challenge")
	}
}

func TestIsChallengeBody_Normal(t *testing.T) {
	if IsChallengeBody("<html>welcome</html>") {
		t.Error("normal body misdetected")
	}
}
