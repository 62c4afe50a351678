package services

import "strings"

// SplitRequirements splits a comma-joined requirement string into trimmed,
// non-empty entries.
func SplitRequirements(raw string) []string {
	parts := strings.Split(raw, ",")
	requirements := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			requirements = append(requirements, item)
		}
	}
	return requirements
}

// SplitSkills parses the comma-separated skills field of a profile update.
func SplitSkills(raw string) []string {
	return SplitRequirements(raw)
}
