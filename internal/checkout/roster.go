package checkout

import "fmt"

const (
	defaultNationality = "Indian"
	defaultPrimaryAge  = 25
	defaultMemberAge   = 12
)

// DefaultRoster generates one member per required passenger across the
// concatenated metadata. Member 0 is the primary contact; every member starts
// assigned to every item so validation passes right after generation and the
// user only redistributes.
func DefaultRoster(meta []ItemMetadata) []MemberDetails {
	needed := MinimumMembersNeeded(meta)

	allIndices := make([]int, len(meta))
	for i := range meta {
		allIndices[i] = i
	}

	members := make([]MemberDetails, 0, needed)
	for i := 0; i < needed; i++ {
		m := MemberDetails{
			ID:                 fmt.Sprintf("member-%d", i+1),
			Age:                defaultMemberAge,
			Nationality:        defaultNationality,
			SelectedActivities: append([]int(nil), allIndices...),
		}
		if i == 0 {
			m.IsPrimary = true
			m.Age = defaultPrimaryAge
			// contact fields live on the primary only; empty until edited
			m.WhatsappNumber = ""
			m.Email = ""
		}
		members = append(members, m)
	}
	return members
}
