// Package permissions decides whether a requester may go on with a request.
//
// Every policy answers twice: once before any record is known (collection
// level) and once against the resolved record (object level). The checks are
// pure functions of the request method, the identity and the record.
package permissions

import (
	"net/http"

	"blogapi/apperrors"
)

// Identity is the authenticated requester. A nil *Identity is an anonymous
// request.
type Identity struct {
	UserID   uint
	Username string
	IsStaff  bool
}

func (i *Identity) Authenticated() bool {
	return i != nil && i.UserID != 0
}

// Authored is implemented by records that have a single owning user.
type Authored interface {
	AuthorKey() uint
}

type Policy interface {
	HasPermission(method string, id *Identity) bool
	HasObjectPermission(method string, id *Identity, obj any) bool
}

// IsSafeMethod reports whether method only reads state.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// AuthorOrReadOnly lets anyone read and any authenticated user create, but
// only the author may change or remove an existing record. Staff get no
// exemption.
type AuthorOrReadOnly struct{}

func (AuthorOrReadOnly) HasPermission(method string, id *Identity) bool {
	return IsSafeMethod(method) || id.Authenticated()
}

func (AuthorOrReadOnly) HasObjectPermission(method string, id *Identity, obj any) bool {
	if IsSafeMethod(method) {
		return true
	}
	owned, ok := obj.(Authored)
	if !ok || !id.Authenticated() {
		return false
	}
	return owned.AuthorKey() == id.UserID
}

// StaffOrReadOnly lets anyone read; writes need an authenticated staff
// identity at both levels.
type StaffOrReadOnly struct{}

func (StaffOrReadOnly) HasPermission(method string, id *Identity) bool {
	if IsSafeMethod(method) {
		return true
	}
	return id.Authenticated() && id.IsStaff
}

func (p StaffOrReadOnly) HasObjectPermission(method string, id *Identity, _ any) bool {
	return p.HasPermission(method, id)
}

// Check runs the collection-level check. A refusal is NotAuthenticated when
// no credential came with the request and PermissionDenied otherwise.
func Check(p Policy, method string, id *Identity) error {
	if p.HasPermission(method, id) {
		return nil
	}
	if !id.Authenticated() {
		return apperrors.ErrNotAuthenticated
	}
	return apperrors.ErrPermissionDenied
}

// CheckObject runs the object-level check. The record is already known to
// exist, so a refusal is always PermissionDenied.
func CheckObject(p Policy, method string, id *Identity, obj any) error {
	if p.HasObjectPermission(method, id, obj) {
		return nil
	}
	return apperrors.ErrPermissionDenied
}
