package domain

import "strings"

const DefaultMentionBatchSize = 5

func Batch(members []Member, size int) [][]Member {
	if size <= 0 {
		size = DefaultMentionBatchSize
	}

	batches := make([][]Member, 0, (len(members)+size-1)/size)
	for start := 0; start < len(members); start += size {
		end := min(start+size, len(members))
		batches = append(batches, members[start:end])
	}

	return batches
}

func MentionText(batch []Member) string {
	mentions := make([]string, 0, len(batch))
	for _, member := range batch {
		mentions = append(mentions, "@"+string(member.Handle))
	}
	return strings.Join(mentions, " ")
}

func MemberIDs(batch []Member) []MemberID {
	ids := make([]MemberID, 0, len(batch))
	for _, member := range batch {
		ids = append(ids, member.ID)
	}
	return ids
}
