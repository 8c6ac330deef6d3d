package nodeset

import "testing"

func TestInsertContainsRemove(t *testing.T) {
	s := New()
	if s.Contains(5) {
		t.Fatal("empty set contains 5")
	}

	s.Insert(5)
	if !s.Contains(5) {
		t.Fatal("set does not contain 5 after Insert")
	}

	s.Remove(5)
	if s.Contains(5) {
		t.Fatal("set still contains 5 after Remove")
	}
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	s := New()
	s.Remove(100) // must not panic or grow unexpectedly
	if s.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", s.Len())
	}
}

func TestOnesAscendingAcrossWords(t *testing.T) {
	s := FromSlice([]int{130, 0, 64, 63, 1})

	got := s.Ones()
	want := []int{0, 1, 63, 64, 130}
	if len(got) != len(want) {
		t.Fatalf("Ones() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Ones() = %v, want %v", got, want)
		}
	}
}

func TestCloneFromIsIndependent(t *testing.T) {
	a := FromSlice([]int{1, 2, 3})
	b := New()
	b.CloneFrom(a)

	b.Insert(4)
	if a.Contains(4) {
		t.Fatal("mutating the clone affected the original set")
	}
}

func TestClear(t *testing.T) {
	s := FromSlice([]int{1, 2, 3})
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("Len() = %d after Clear, want 0", s.Len())
	}
	if s.Contains(1) {
		t.Fatal("set still contains 1 after Clear")
	}
}

func TestExtend(t *testing.T) {
	s := New()
	s.Extend([]int{3, 1, 4, 1, 5})

	if s.Len() != 4 {
		t.Fatalf("Len() = %d, want 4 (duplicates collapse)", s.Len())
	}
	for _, id := range []int{1, 3, 4, 5} {
		if !s.Contains(id) {
			t.Errorf("set does not contain %d after Extend", id)
		}
	}
}
