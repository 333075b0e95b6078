package domain

import "strings"

type MemberID string
type Handle string

type Member struct {
	ID     MemberID
	Handle Handle
}

// Snapshot maps member ids to handles as seen at one poll tick. It keeps the
// thread's member order so iteration is stable.
type Snapshot struct {
	order   []MemberID
	handles map[MemberID]Handle
}

func NewSnapshot(members []Member) Snapshot {
	s := Snapshot{
		order:   make([]MemberID, 0, len(members)),
		handles: make(map[MemberID]Handle, len(members)),
	}

	for _, member := range members {
		id := MemberID(strings.TrimSpace(string(member.ID)))
		if id == "" {
			continue
		}
		if _, ok := s.handles[id]; ok {
			continue
		}
		s.order = append(s.order, id)
		s.handles[id] = member.Handle
	}

	return s
}

func (s Snapshot) Len() int {
	return len(s.order)
}

func (s Snapshot) Has(id MemberID) bool {
	_, ok := s.handles[id]
	return ok
}

func (s Snapshot) Handle(id MemberID) (Handle, bool) {
	handle, ok := s.handles[id]
	return handle, ok
}

func (s Snapshot) Members() []Member {
	members := make([]Member, 0, len(s.order))
	for _, id := range s.order {
		members = append(members, Member{ID: id, Handle: s.handles[id]})
	}
	return members
}

// Joined returns the members of s whose ids are absent from previous.
func (s Snapshot) Joined(previous Snapshot) []Member {
	joined := make([]Member, 0)
	for _, id := range s.order {
		if previous.Has(id) {
			continue
		}
		joined = append(joined, Member{ID: id, Handle: s.handles[id]})
	}
	return joined
}
