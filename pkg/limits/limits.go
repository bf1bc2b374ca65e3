// Package limits holds the pure plan-limit predicates. All checks run
// pre-mutation: a count equal to the limit already blocks the next
// addition.
package limits

// Unlimited is the sentinel for plans without a ceiling.
const Unlimited = -1

// Allowed reports whether one more item may be added given the plan
// limit and the current count.
func Allowed(limit, count int) bool {
	if limit == Unlimited {
		return true
	}
	return count < limit
}

func CanCreateFolder(maxFolders, currentFolderCount int) bool {
	return Allowed(maxFolders, currentFolderCount)
}

func CanAddConversation(maxPerFolder, currentCountInFolder int) bool {
	return Allowed(maxPerFolder, currentCountInFolder)
}
