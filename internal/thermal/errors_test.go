package thermal

import "testing"

func TestErrorMessages(t *testing.T) {
	if got := (&FrameInvalidError{Reason: "shape"}).Error(); got == "" {
		t.Fatalf("expected a non-empty error message")
	}
	if got := (&ConfigInvalidError{Reason: "bad"}).Error(); got == "" {
		t.Fatalf("expected a non-empty error message")
	}
	if got := (&SensorStalledError{Grace: "2s"}).Error(); got == "" {
		t.Fatalf("expected a non-empty error message")
	}
}
