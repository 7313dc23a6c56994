package playback

import "testing"

func TestAdvance(t *testing.T) {
	s := State{Len: 3}
	var seen []int
	for k := 0; k < 10; k++ {
		next, step := Advance(s)
		if step.Done {
			if next != s {
				t.Fatalf("done step changed state: %+v -> %+v", s, next)
			}
			break
		}
		if next.Cursor != s.Cursor+1 {
			t.Fatalf("cursor %d -> %d", s.Cursor, next.Cursor)
		}
		if next.Cursor > next.Len {
			t.Fatalf("cursor %d past len %d", next.Cursor, next.Len)
		}
		seen = append(seen, step.Index)
		s = next
	}
	if len(seen) != 3 || seen[0] != 0 || seen[1] != 1 || seen[2] != 2 {
		t.Fatalf("frames = %v", seen)
	}
	if !s.Finished() {
		t.Fatalf("state %+v not finished", s)
	}
}

func TestAdvanceEmpty(t *testing.T) {
	_, step := Advance(State{})
	if !step.Done {
		t.Fatalf("empty sequence produced a frame: %+v", step)
	}
}
