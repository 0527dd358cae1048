package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	err := NewError(KindTokenExpired, "the token is expired")
	if KindOf(err) != KindTokenExpired {
		t.Errorf("KindOf = %q, want %q", KindOf(err), KindTokenExpired)
	}
	wrapped := fmt.Errorf("init: %w", err)
	if KindOf(wrapped) != KindTokenExpired {
		t.Errorf("KindOf(wrapped) = %q, want %q", KindOf(wrapped), KindTokenExpired)
	}
	if KindOf(errors.New("plain")) != "" {
		t.Error("KindOf(plain error) should be empty")
	}
	if KindOf(nil) != "" {
		t.Error("KindOf(nil) should be empty")
	}
}

func TestParseAudioDirection(t *testing.T) {
	if dir, err := ParseAudioDirection("input"); err != nil || dir != AudioInput {
		t.Errorf("ParseAudioDirection(input) = %v, %v", dir, err)
	}
	if dir, err := ParseAudioDirection("output"); err != nil || dir != AudioOutput {
		t.Errorf("ParseAudioDirection(output) = %v, %v", dir, err)
	}
	if _, err := ParseAudioDirection("sideways"); KindOf(err) != KindInput {
		t.Errorf("ParseAudioDirection(sideways) err = %v, want kind %q", err, KindInput)
	}
}
