// Package sharing holds the selection state behind the share dialogs.
//
// A document selection keeps three invariants after every operation:
//   - write ⊆ read
//   - delete ⊆ read
//   - read ⊆ selected users
package sharing

import (
	"errors"
	"fmt"

	"docshare/internal/domain/models"
)

// ErrNotSelected is returned when a permission is set for a user who is not shared with
var ErrNotSelected = errors.New("user is not selected for sharing")

// orderedSet is a string set that remembers insertion order
type orderedSet struct {
	ids   []string
	index map[string]struct{}
}

func newOrderedSet() *orderedSet {
	return &orderedSet{index: make(map[string]struct{})}
}

func (s *orderedSet) add(id string) {
	if _, ok := s.index[id]; ok {
		return
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
}

func (s *orderedSet) remove(id string) {
	if _, ok := s.index[id]; !ok {
		return
	}
	delete(s.index, id)
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return
		}
	}
}

func (s *orderedSet) has(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s *orderedSet) list() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Dedupe collapses repeated ids, keeping the first occurrence. Empty ids are dropped.
func Dedupe(ids []string) []string {
	s := newOrderedSet()
	for _, id := range ids {
		if id != "" {
			s.add(id)
		}
	}
	return s.list()
}

// DocumentSelection is the state of the document share dialog
type DocumentSelection struct {
	selected *orderedSet
	read     *orderedSet
	write    *orderedSet
	del      *orderedSet
}

// NewDocumentSelection returns an empty selection
func NewDocumentSelection() *DocumentSelection {
	return &DocumentSelection{
		selected: newOrderedSet(),
		read:     newOrderedSet(),
		write:    newOrderedSet(),
		del:      newOrderedSet(),
	}
}

// Select shares with userID and grants read
func (s *DocumentSelection) Select(userID string) {
	s.selected.add(userID)
	s.read.add(userID)
}

// Deselect stops sharing with userID and revokes every permission at once
func (s *DocumentSelection) Deselect(userID string) {
	s.selected.remove(userID)
	s.read.remove(userID)
	s.write.remove(userID)
	s.del.remove(userID)
}

// Toggle selects or deselects userID
func (s *DocumentSelection) Toggle(userID string) {
	if s.selected.has(userID) {
		s.Deselect(userID)
		return
	}
	s.Select(userID)
}

// SetPermission grants or revokes one permission for a selected user.
// Granting write or delete also grants read; revoking read revokes write and delete.
func (s *DocumentSelection) SetPermission(userID string, perm models.Permission, on bool) error {
	if !s.selected.has(userID) {
		return fmt.Errorf("%w: %s", ErrNotSelected, userID)
	}

	switch perm {
	case models.PermissionRead:
		if on {
			s.read.add(userID)
			return nil
		}
		s.read.remove(userID)
		s.write.remove(userID)
		s.del.remove(userID)
	case models.PermissionWrite:
		if on {
			s.read.add(userID)
			s.write.add(userID)
			return nil
		}
		s.write.remove(userID)
	case models.PermissionDelete:
		if on {
			s.read.add(userID)
			s.del.add(userID)
			return nil
		}
		s.del.remove(userID)
	default:
		return fmt.Errorf("unknown permission %q", perm)
	}
	return nil
}

// IsSelected reports whether userID is shared with
func (s *DocumentSelection) IsSelected(userID string) bool {
	return s.selected.has(userID)
}

// Has reports whether userID holds perm
func (s *DocumentSelection) Has(userID string, perm models.Permission) bool {
	switch perm {
	case models.PermissionRead:
		return s.read.has(userID)
	case models.PermissionWrite:
		return s.write.has(userID)
	case models.PermissionDelete:
		return s.del.has(userID)
	}
	return false
}

// UserIDs returns the selected users in selection order
func (s *DocumentSelection) UserIDs() []string {
	return s.selected.list()
}

// Permissions returns the permission triple
func (s *DocumentSelection) Permissions() models.Permissions {
	return models.Permissions{
		Read:   s.read.list(),
		Write:  s.write.list(),
		Delete: s.del.list(),
	}
}

// Snapshot returns the selection in wire form
func (s *DocumentSelection) Snapshot() DocumentShare {
	return DocumentShare{UserIDs: s.UserIDs(), Permissions: s.Permissions()}
}

// DocumentShare is the payload of a document share operation
type DocumentShare struct {
	UserIDs     []string           `json:"userIds"`
	Permissions models.Permissions `json:"permissions"`
}

// FromDocument rebuilds the dialog state from a stored document.
// The backend keeps sharedWith and permissions separately, so stored data may
// disagree with the invariants; replaying it through the operations repairs
// it. Being in sharedWith does not imply read: read is taken exactly as
// stored, minus users who are not shared with. The number of dropped entries
// is returned.
func FromDocument(doc *models.Document) (*DocumentSelection, int) {
	s := NewDocumentSelection()
	for _, id := range Dedupe(doc.SharedWith) {
		s.selected.add(id)
	}

	dropped := 0
	readers := newOrderedSet()
	for _, id := range doc.Permissions.Read {
		if !s.selected.has(id) {
			dropped++
			continue
		}
		readers.add(id)
	}
	for _, id := range s.selected.list() {
		if readers.has(id) {
			s.read.add(id)
		}
	}

	for _, grant := range []struct {
		ids  []string
		perm models.Permission
	}{
		{doc.Permissions.Write, models.PermissionWrite},
		{doc.Permissions.Delete, models.PermissionDelete},
	} {
		for _, id := range grant.ids {
			if !s.selected.has(id) || !s.read.has(id) {
				dropped++
				continue
			}
			_ = s.SetPermission(id, grant.perm, true)
		}
	}

	return s, dropped
}

// FromRequest builds a selection from a share request, rejecting permissions
// granted to users outside the selection or write/delete without read.
func FromRequest(req DocumentShare) (*DocumentSelection, error) {
	s := NewDocumentSelection()
	for _, id := range Dedupe(req.UserIDs) {
		s.selected.add(id)
	}

	for _, id := range Dedupe(req.Permissions.Read) {
		if err := s.SetPermission(id, models.PermissionRead, true); err != nil {
			return nil, err
		}
	}
	for _, grant := range []struct {
		ids  []string
		perm models.Permission
	}{
		{req.Permissions.Write, models.PermissionWrite},
		{req.Permissions.Delete, models.PermissionDelete},
	} {
		for _, id := range Dedupe(grant.ids) {
			if !s.selected.has(id) {
				return nil, fmt.Errorf("%w: %s", ErrNotSelected, id)
			}
			if !s.read.has(id) {
				return nil, fmt.Errorf("%s permission for %s requires read", grant.perm, id)
			}
			_ = s.SetPermission(id, grant.perm, true)
		}
	}

	return s, nil
}
