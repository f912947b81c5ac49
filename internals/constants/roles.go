package constants

import "fmt"

const (
	RoleAdmin   = "ADMIN"
	RoleTrainer = "TRAINER"
	RoleStudent = "STUDENT"
)

// Role error message templates
const (
	ErrOnlyTrainersCanAccess = "only trainers or admins may access %s"
	ErrOnlyAdminsCanAccess   = "only admins may access %s"
	ErrOnlyStudentsCanAccess = "only students may access %s"
)

func RoleErrorTrainer(feature string) string {
	return fmt.Sprintf(ErrOnlyTrainersCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func RoleErrorStudent(feature string) string {
	return fmt.Sprintf(ErrOnlyStudentsCanAccess, feature)
}

// ==========================
// Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleAdmin,
		RoleTrainer,
		RoleStudent,
	}

	TrainerAndAbove = []string{
		RoleTrainer,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}

	StudentOnly = []string{
		RoleStudent,
	}
)

func IsValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
