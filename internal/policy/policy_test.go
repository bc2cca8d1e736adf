package policy

import (
	"testing"

	"github.com/notehive/notehive-backend/internal/types"
)

func TestAllowed(t *testing.T) {
	t.Parallel()

	levels := []Level{LevelStream, LevelSemester, LevelSubject, LevelNote, LevelFile}

	cases := []struct {
		role types.Role
		op   Operation
		want bool
	}{
		{types.RoleUser, OpRead, true},
		{types.RoleUser, OpList, true},
		{types.RoleUser, OpCreate, false},
		{types.RoleUser, OpDelete, false},
		{types.RoleAdmin, OpRead, true},
		{types.RoleAdmin, OpList, true},
		{types.RoleAdmin, OpCreate, true},
		{types.RoleAdmin, OpDelete, true},
	}
	for _, tc := range cases {
		for _, level := range levels {
			if got := Allowed(tc.role, tc.op, level); got != tc.want {
				t.Errorf("Allowed(%s, %s, %s): got=%v want=%v", tc.role, tc.op, level, got, tc.want)
			}
		}
	}
}

func TestAllowedUnknownRoleOrOp(t *testing.T) {
	t.Parallel()

	if Allowed(types.Role("SUPERUSER"), OpDelete, LevelStream) {
		t.Fatalf("unknown role should never be allowed")
	}
	if Allowed(types.RoleAdmin, Operation("drop"), LevelStream) {
		t.Fatalf("unknown operation should never be allowed")
	}
	if Allowed(types.Role(""), OpRead, LevelStream) {
		t.Fatalf("empty role should never be allowed")
	}
	if Allowed(types.RoleAdmin, OpRead, Level("bucket")) {
		t.Fatalf("unknown level should never be allowed")
	}
}
