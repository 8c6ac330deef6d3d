package cflow

import "testing"

func TestRoleString(t *testing.T) {
	cases := map[Role]string{
		RoleDestination: "Destination",
		RoleRepetition:  "Repetition",
		RoleBranch:      "Branch",
	}
	for role, want := range cases {
		if got := role.String(); got != want {
			t.Errorf("Role(%d).String() = %q, want %q", role, got, want)
		}
	}
}

func TestFailPanicsWithPreconditionError(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Fail did not panic")
		}
		err, ok := r.(*PreconditionError)
		if !ok {
			t.Fatalf("panic value is %T, want *PreconditionError", r)
		}
		if err.Kind != NotBranchHead {
			t.Errorf("Kind = %v, want NotBranchHead", err.Kind)
		}
		if err.Error() == "" {
			t.Error("Error() returned an empty string")
		}
	}()

	Fail(NotBranchHead, "node %d has %d successors", 3, 1)
}

func TestPreconditionErrorWithoutDetail(t *testing.T) {
	err := &PreconditionError{Kind: InvalidSet}
	if got := err.Error(); got != "InvalidSet" {
		t.Errorf("Error() = %q, want %q", got, "InvalidSet")
	}
}
