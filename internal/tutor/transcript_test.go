package tutor

import "testing"

func TestTranscriptAppendOrder(t *testing.T) {
	tr := NewTranscript()
	tr.AppendUser("one")
	tr.AppendAssistant("two")
	tr.AppendUser("three")
	tr.AppendUser("three") // duplicates are kept

	msgs := tr.Messages()
	if len(msgs) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(msgs))
	}

	want := []Entry{
		{AuthorUser, "one"},
		{AuthorAssistant, "two"},
		{AuthorUser, "three"},
		{AuthorUser, "three"},
	}
	for i, w := range want {
		if msgs[i] != w {
			t.Errorf("entry %d: got %+v, want %+v", i, msgs[i], w)
		}
	}
}

func TestTranscriptSnapshotStableAcrossAppends(t *testing.T) {
	tr := NewTranscript()
	tr.AppendUser("first")

	snap := tr.Messages()
	tr.AppendAssistant("second")

	if len(snap) != 1 {
		t.Errorf("snapshot grew after append: len %d", len(snap))
	}
	if snap[0].Text != "first" {
		t.Errorf("snapshot mutated: %q", snap[0].Text)
	}
}

func TestTranscriptBusyFlag(t *testing.T) {
	tr := NewTranscript()
	if tr.Busy() {
		t.Error("new transcript should not be busy")
	}
	tr.SetBusy(true)
	if !tr.Busy() {
		t.Error("expected busy")
	}
	if tr.Len() != 0 {
		t.Error("busy indicator must not create entries")
	}
}
