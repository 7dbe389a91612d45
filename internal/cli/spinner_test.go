package cli

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestSpinnerModelAdvancesFrame(t *testing.T) {
	m := spinnerModel{message: "working"}

	updated, cmd := m.Update(spinnerTickMsg(time.Now()))
	got := updated.(spinnerModel)
	if got.frame != 1 {
		t.Errorf("frame = %d, want 1", got.frame)
	}
	if cmd == nil {
		t.Error("tick did not schedule a follow-up tick")
	}
	if !strings.Contains(got.View(), "working") {
		t.Errorf("View() = %q, want the message in it", got.View())
	}
}

func TestSpinnerModelDone(t *testing.T) {
	m := spinnerModel{message: "working"}

	updated, cmd := m.Update(spinnerDoneMsg{})
	got := updated.(spinnerModel)
	if !got.done {
		t.Error("done = false after done message")
	}
	if got.View() != "" {
		t.Errorf("View() after done = %q, want empty", got.View())
	}
	if cmd == nil {
		t.Error("done message did not quit the program")
	}
}

func TestSpinnerStartStop(t *testing.T) {
	s := NewSpinner(context.Background(), "working")
	s.Start()
	time.Sleep(150 * time.Millisecond)
	s.Stop()
}

func TestSpinnerStopIdempotent(t *testing.T) {
	s := NewSpinner(context.Background(), "working")
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewSpinner(ctx, "working")
	s.Start()
	cancel()
	s.Stop()

	if !s.Cancelled() {
		t.Error("Cancelled() = false after context cancel")
	}
}

func TestSpinnerNotCancelled(t *testing.T) {
	s := NewSpinner(context.Background(), "working")
	s.Start()
	s.Stop()

	if s.Cancelled() {
		t.Error("Cancelled() = true without context cancel")
	}
}
