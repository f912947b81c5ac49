// Package policy holds the role → capability matrix. Every gated route asks
// Can(role, capability) through the auth middleware instead of listing roles inline.
package policy

import "africrea_backend/internals/constants"

type Capability string

const (
	// self-service
	ReservationRequest Capability = "reservation:request"
	ReservationCancel  Capability = "reservation:cancel-own"
	EventRegister      Capability = "event:register"
	ProjectApply       Capability = "project:apply"
	SubmissionCreate   Capability = "submission:create"
	PortfolioRead      Capability = "portfolio:read"

	// trainer and admin
	ReservationReadAll    Capability = "reservation:read-all"
	ReservationDecide     Capability = "reservation:decide"
	ReservationTransition Capability = "reservation:transition"
	EventManage           Capability = "event:manage"
	ChallengeCreate       Capability = "challenge:create"
	SubmissionReview      Capability = "submission:review"
	ProjectCreate         Capability = "project:create"
	VideoCreate           Capability = "video:create"
	StatsRead             Capability = "stats:read"

	// admin only
	EquipmentManage Capability = "equipment:manage"
	UserManage      Capability = "user:manage"
)

var matrix = map[Capability][]string{
	ReservationRequest: constants.AllRoles,
	ReservationCancel:  constants.AllRoles,
	EventRegister:      constants.AllRoles,
	ProjectApply:       constants.AllRoles,
	PortfolioRead:      constants.AllRoles,
	SubmissionCreate:   constants.StudentOnly,

	ReservationReadAll:    constants.TrainerAndAbove,
	ReservationDecide:     constants.TrainerAndAbove,
	ReservationTransition: constants.TrainerAndAbove,
	EventManage:           constants.TrainerAndAbove,
	ChallengeCreate:       constants.TrainerAndAbove,
	SubmissionReview:      constants.TrainerAndAbove,
	ProjectCreate:         constants.TrainerAndAbove,
	VideoCreate:           constants.TrainerAndAbove,
	StatsRead:             constants.TrainerAndAbove,

	EquipmentManage: constants.AdminOnly,
	UserManage:      constants.AdminOnly,
}

// Can reports whether role holds capability. Unknown capabilities are denied.
func Can(role string, c Capability) bool {
	for _, r := range matrix[c] {
		if r == role {
			return true
		}
	}
	return false
}

// DenyMessage is the 403 message for a capability.
func DenyMessage(c Capability) string {
	roles := matrix[c]
	switch {
	case len(roles) == 1 && roles[0] == constants.RoleAdmin:
		return constants.RoleErrorAdmin(string(c))
	case len(roles) == 1 && roles[0] == constants.RoleStudent:
		return constants.RoleErrorStudent(string(c))
	default:
		return constants.RoleErrorTrainer(string(c))
	}
}
