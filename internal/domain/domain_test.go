package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotJoinedReturnsOnlyNewMembers(t *testing.T) {
	previous := NewSnapshot([]Member{{ID: "1", Handle: "a"}, {ID: "2", Handle: "b"}})
	current := NewSnapshot([]Member{{ID: "1", Handle: "a"}, {ID: "2", Handle: "b"}, {ID: "3", Handle: "c"}})

	assert.Equal(t, []Member{{ID: "3", Handle: "c"}}, current.Joined(previous))
}

func TestSnapshotJoinedIgnoresDepartures(t *testing.T) {
	previous := NewSnapshot([]Member{{ID: "1", Handle: "a"}, {ID: "2", Handle: "b"}})
	current := NewSnapshot([]Member{{ID: "2", Handle: "b"}, {ID: "4", Handle: "d"}})

	assert.Equal(t, []Member{{ID: "4", Handle: "d"}}, current.Joined(previous))
	assert.Empty(t, NewSnapshot(nil).Joined(previous))
}

func TestSnapshotJoinedMatchesKeyDifference(t *testing.T) {
	tests := []struct {
		name     string
		previous []Member
		current  []Member
		want     []MemberID
	}{
		{name: "empty previous welcomes everyone", current: []Member{{ID: "1"}, {ID: "2"}}, want: []MemberID{"1", "2"}},
		{name: "identical snapshots", previous: []Member{{ID: "1"}}, current: []Member{{ID: "1"}}, want: []MemberID{}},
		{name: "handle change is not a join", previous: []Member{{ID: "1", Handle: "old"}}, current: []Member{{ID: "1", Handle: "new"}}, want: []MemberID{}},
		{name: "mixed", previous: []Member{{ID: "1"}, {ID: "5"}}, current: []Member{{ID: "7"}, {ID: "1"}, {ID: "9"}}, want: []MemberID{"7", "9"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			joined := NewSnapshot(tt.current).Joined(NewSnapshot(tt.previous))
			assert.Equal(t, tt.want, MemberIDs(joined))
		})
	}
}

func TestNewSnapshotDeduplicatesAndSkipsEmptyIDs(t *testing.T) {
	s := NewSnapshot([]Member{
		{ID: "1", Handle: "first"},
		{ID: " ", Handle: "blank"},
		{ID: "1", Handle: "second"},
		{ID: "2", Handle: "b"},
	})

	require.Equal(t, 2, s.Len())
	handle, ok := s.Handle("1")
	require.True(t, ok)
	assert.Equal(t, Handle("first"), handle)
	assert.Equal(t, []Member{{ID: "1", Handle: "first"}, {ID: "2", Handle: "b"}}, s.Members())
}

func TestBatchPartitionsMembers(t *testing.T) {
	for _, n := range []int{0, 1, 4, 5, 6, 10, 11, 23} {
		members := make([]Member, 0, n)
		for i := range n {
			members = append(members, Member{ID: MemberID(strings.Repeat("x", i+1)), Handle: Handle(strings.Repeat("h", i+1))})
		}

		batches := Batch(members, 5)
		assert.Len(t, batches, (n+4)/5, "n=%d", n)

		seen := map[MemberID]struct{}{}
		for _, batch := range batches {
			assert.LessOrEqual(t, len(batch), 5)
			assert.NotEmpty(t, batch)
			for _, member := range batch {
				_, dup := seen[member.ID]
				assert.False(t, dup)
				seen[member.ID] = struct{}{}
			}
		}
		assert.Len(t, seen, n)
	}
}

func TestBatchNonPositiveSizeUsesDefault(t *testing.T) {
	members := make([]Member, 7)
	assert.Len(t, Batch(members, 0), 2)
	assert.Len(t, Batch(members, -3), 2)
}

func TestMentionText(t *testing.T) {
	assert.Equal(t, "@a @b @c", MentionText([]Member{{ID: "1", Handle: "a"}, {ID: "2", Handle: "b"}, {ID: "3", Handle: "c"}}))
	assert.Equal(t, "", MentionText(nil))
}

func TestIsTrigger(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "exact", text: "mention all", want: true},
		{name: "mixed case", text: "Mention All", want: true},
		{name: "surrounding whitespace", text: "  MENTION ALL \n", want: true},
		{name: "extra words", text: "mention all please", want: false},
		{name: "empty", text: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTrigger(tt.text, DefaultMentionTrigger))
		})
	}

	assert.False(t, IsTrigger("anything", " "))
}

func TestRenderWelcomeSubstitutesHandle(t *testing.T) {
	for _, template := range WelcomeTemplates {
		rendered := RenderWelcome(template, "newbie")
		assert.Contains(t, rendered, "@newbie")
		assert.NotContains(t, rendered, HandlePlaceholder)
	}
}

func TestSessionValid(t *testing.T) {
	assert.True(t, Session{Username: "bot", UserID: "42", Authorization: "Bearer IGT:2:abc"}.Valid())
	assert.False(t, Session{Username: "bot", UserID: "42"}.Valid())
	assert.False(t, Session{}.Valid())
}
