package policy

import (
	"github.com/notehive/notehive-backend/internal/types"
)

type Operation string

const (
	OpRead   Operation = "read"
	OpList   Operation = "list"
	OpCreate Operation = "create"
	OpDelete Operation = "delete"
)

type Level string

const (
	LevelStream   Level = "stream"
	LevelSemester Level = "semester"
	LevelSubject  Level = "subject"
	LevelNote     Level = "note"
	LevelFile     Level = "file"
)

type rule struct {
	Op    Operation
	Level Level
}

var (
	anyPrincipal = map[types.Role]bool{types.RoleUser: true, types.RoleAdmin: true}
	adminsOnly   = map[types.Role]bool{types.RoleAdmin: true}
)

// table maps (operation, level) -> roles allowed. Reads are open to any
// authenticated principal, mutations are admin-only, at every level.
var table = map[rule]map[types.Role]bool{
	{OpRead, LevelStream}:     anyPrincipal,
	{OpList, LevelStream}:     anyPrincipal,
	{OpCreate, LevelStream}:   adminsOnly,
	{OpDelete, LevelStream}:   adminsOnly,
	{OpRead, LevelSemester}:   anyPrincipal,
	{OpList, LevelSemester}:   anyPrincipal,
	{OpCreate, LevelSemester}: adminsOnly,
	{OpDelete, LevelSemester}: adminsOnly,
	{OpRead, LevelSubject}:    anyPrincipal,
	{OpList, LevelSubject}:    anyPrincipal,
	{OpCreate, LevelSubject}:  adminsOnly,
	{OpDelete, LevelSubject}:  adminsOnly,
	{OpRead, LevelNote}:       anyPrincipal,
	{OpList, LevelNote}:       anyPrincipal,
	{OpCreate, LevelNote}:     adminsOnly,
	{OpDelete, LevelNote}:     adminsOnly,
	{OpRead, LevelFile}:       anyPrincipal,
	{OpList, LevelFile}:       anyPrincipal,
	{OpCreate, LevelFile}:     adminsOnly,
	{OpDelete, LevelFile}:     adminsOnly,
}

// Allowed evaluates the static access table. Pure; no I/O.
func Allowed(role types.Role, op Operation, level Level) bool {
	roles, ok := table[rule{Op: op, Level: level}]
	if !ok {
		return false
	}
	return roles[role]
}
