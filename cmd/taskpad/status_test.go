package main

import (
	"testing"

	"github.com/taskpad-dev/taskpad/internal/task"
)

func TestUnknownStatuses(t *testing.T) {
	counts := map[task.Status]int{
		task.StatusPending:     2,
		task.StatusCompleted:   1,
		task.Status("zzz"):     1,
		task.Status("blocked"): 3,
		task.Status("haywire"): 2,
	}
	want := []task.Status{"blocked", "haywire", "zzz"}

	// Map iteration order varies, so make sure the result does not.
	for i := 0; i < 10; i++ {
		got := unknownStatuses(counts)
		if len(got) != len(want) {
			t.Fatalf("unknownStatuses returned %v, want %v", got, want)
		}
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("unknownStatuses returned %v, want %v", got, want)
			}
		}
	}
}

func TestUnknownStatuses_AllValid(t *testing.T) {
	counts := map[task.Status]int{
		task.StatusPending:    1,
		task.StatusInProgress: 1,
		task.StatusCompleted:  1,
	}
	if got := unknownStatuses(counts); len(got) != 0 {
		t.Errorf("unknownStatuses = %v, want empty", got)
	}
}
