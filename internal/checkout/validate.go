package checkout

import "fmt"

// ValidateActivityAssignments checks that every activity entry has at least
// its required headcount assigned. Activity entries occupy indices
// [0, len(activityMeta)) of the concatenated metadata.
func ValidateActivityAssignments(members []MemberDetails, activityMeta []ItemMetadata) AssignmentResult {
	return validateSlice(members, activityMeta, 0)
}

// ValidateFerryAssignments checks ferry entries, which occupy the
// ferry-offset slice [activityCount, activityCount+len(ferryMeta)).
func ValidateFerryAssignments(members []MemberDetails, activityCount int, ferryMeta []ItemMetadata) AssignmentResult {
	return validateSlice(members, ferryMeta, activityCount)
}

func validateSlice(members []MemberDetails, meta []ItemMetadata, offset int) AssignmentResult {
	tally := make([]int, len(meta))
	for _, m := range members {
		for _, idx := range m.SelectedActivities {
			local := idx - offset
			if local >= 0 && local < len(tally) {
				tally[local]++
			}
		}
	}

	errs := []string{}
	for i, m := range meta {
		if tally[i] < m.TotalRequired {
			errs = append(errs, fmt.Sprintf("%s needs %d more passengers", m.Title, m.TotalRequired-tally[i]))
		}
	}
	return AssignmentResult{Valid: len(errs) == 0, Errors: errs}
}
