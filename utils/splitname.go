package utils

import "fmt"

// GenerateSplitName builds a friendly default name from member names:
//   - "Alice's Split"
//   - "Alice & Bob's Split"
//   - "Alice, Bob & Charlie's Split"
//   - "Alice, Bob & 2 others' Split"
func GenerateSplitName(memberNames []string) string {
	names := make([]string, 0, len(memberNames))
	for _, n := range memberNames {
		if n != "" {
			names = append(names, n)
		}
	}

	switch len(names) {
	case 0:
		return "Untitled Split"
	case 1:
		return fmt.Sprintf("%s's Split", names[0])
	case 2:
		return fmt.Sprintf("%s & %s's Split", names[0], names[1])
	case 3:
		return fmt.Sprintf("%s, %s & %s's Split", names[0], names[1], names[2])
	}

	// Four or more names, so at least two are collapsed.
	remaining := len(names) - 2
	return fmt.Sprintf("%s, %s & %d others' Split", names[0], names[1], remaining)
}
