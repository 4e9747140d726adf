package debates

import (
	"fmt"

	types "github.com/nukigor/ai-voxarena/internal/domain"
	"github.com/nukigor/ai-voxarena/internal/platform/apierr"
)

func validateRoles(parts []participantInput) error {
	for _, p := range parts {
		if !types.IsParticipantRole(p.Role) {
			return apierr.BadRequest("invalid_role", fmt.Sprintf("unknown participant role %q", p.Role))
		}
	}
	return nil
}

// validateComposition checks the minimum role mix for a format.
func validateComposition(format string, parts []participantInput) error {
	counts := map[string]int{}
	for _, p := range parts {
		counts[p.Role]++
	}
	switch format {
	case types.DebateFormatStructured:
		if counts[types.RoleModerator] < 1 || counts[types.RoleDebater] < 2 {
			return apierr.BadRequest("invalid_participants", "structured debate requires 1 moderator and at least 2 debaters")
		}
	case types.DebateFormatPodcast:
		if counts[types.RoleHost] < 1 || counts[types.RoleGuest] < 1 {
			return apierr.BadRequest("invalid_participants", "podcast debate requires 1 host and at least 1 guest")
		}
	}
	return nil
}

// validateTransition allows staying put or moving forward along DRAFT, ACTIVE, COMPLETED, ARCHIVED.
func validateTransition(from, to string) error {
	if from == to {
		return nil
	}
	if types.DebateStatusOrder[to] < types.DebateStatusOrder[from] {
		return apierr.BadRequest("invalid_status_transition", fmt.Sprintf("cannot move debate from %s back to %s", from, to))
	}
	return nil
}
