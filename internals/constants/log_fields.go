package constants

// Log field names shared by structured log entries.
const (
	FldRequestID   = "reqid"
	FldUser        = "user"
	FldRole        = "role"
	FldEquipment   = "equipment"
	FldReservation = "reservation"
	FldEvent       = "event"
	FldStatus      = "status"
	FldChallenge   = "challenge"
	FldSubmission  = "submission"
	FldProject     = "project"
)
