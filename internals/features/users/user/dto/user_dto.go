package dto

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Optional marks whether a key was sent at all; Optional[*string] with a nil
// Value means an explicit null.
type Optional[T any] struct {
	Present bool
	Value   T
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Present = true
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	o.Value = v
	return nil
}

/* ===================== ADMIN ===================== */

// UserListItem is scanned straight from the admin listing query.
type UserListItem struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Role      string    `json:"role"`
	Pole      *string   `json:"pole"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`

	SubmissionsCount        int64 `json:"submissions_count"`
	ReservationsCount       int64 `json:"reservations_count"`
	EventRegistrationsCount int64 `json:"event_registrations_count"`
}

// AdminUpdateUserRequest: every key is optional; "pole": null clears the pole.
type AdminUpdateUserRequest struct {
	Role     *string           `json:"role"`
	Pole     Optional[*string] `json:"pole"`
	IsActive *bool             `json:"is_active"`
}

// Changes returns the column updates, or per-field errors for unknown enums.
func (r AdminUpdateUserRequest) Changes(validRole, validPole func(string) bool) (map[string]interface{}, map[string][]string) {
	upd := map[string]interface{}{}
	errs := map[string][]string{}

	if r.Role != nil {
		role := strings.ToUpper(strings.TrimSpace(*r.Role))
		if validRole(role) {
			upd["role"] = role
		} else {
			errs["role"] = append(errs["role"], "must be one of ADMIN TRAINER STUDENT")
		}
	}
	if r.Pole.Present {
		switch {
		case r.Pole.Value == nil || strings.TrimSpace(*r.Pole.Value) == "":
			upd["pole"] = nil
		case validPole(strings.ToUpper(strings.TrimSpace(*r.Pole.Value))):
			upd["pole"] = strings.ToUpper(strings.TrimSpace(*r.Pole.Value))
		default:
			errs["pole"] = append(errs["pole"], "must be one of GRAPHISME AUDIOVISUEL ANIMATION_3D")
		}
	}
	if r.IsActive != nil {
		upd["is_active"] = *r.IsActive
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return upd, nil
}

/* ===================== SELF ===================== */

type UpdateMeRequest struct {
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=80"`
	LastName  *string `json:"last_name"  validate:"omitempty,min=1,max=80"`
	Bio       *string `json:"bio"        validate:"omitempty,max=2000"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url,max=255"`
}

func (r UpdateMeRequest) Changes() map[string]interface{} {
	upd := map[string]interface{}{}
	set := func(col string, v *string) {
		if v != nil {
			upd[col] = strings.TrimSpace(*v)
		}
	}
	set("first_name", r.FirstName)
	set("last_name", r.LastName)
	set("bio", r.Bio)
	set("avatar_url", r.AvatarURL)
	return upd
}
