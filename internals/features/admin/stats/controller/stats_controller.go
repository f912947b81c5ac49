package controller

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"africrea_backend/internals/constants"
	"africrea_backend/internals/features/admin/stats/dto"
	helper "africrea_backend/internals/helpers"
)

type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

const totalsSQL = `
SELECT
	(SELECT COUNT(*) FROM users)                                   AS total_users,
	(SELECT COUNT(*) FROM users WHERE role = @student)             AS total_students,
	(SELECT COUNT(*) FROM users WHERE role = @trainer)             AS total_trainers,
	(SELECT COUNT(*) FROM challenges)                              AS total_challenges,
	(SELECT COUNT(*) FROM submissions)                             AS total_submissions,
	(SELECT COUNT(*) FROM equipment_reservations
	  WHERE reservation_status = 'PENDING')                        AS pending_reservations,
	(SELECT COUNT(*) FROM events WHERE event_date >= NOW())        AS upcoming_events`

// GET /api/admin/stats
func (ctl *StatsController) Get(c *fiber.Ctx) error {
	db := ctl.DB.WithContext(c.UserContext())

	var totals dto.Totals
	err := db.Raw(totalsSQL, map[string]interface{}{
		"student": constants.RoleStudent,
		"trainer": constants.RoleTrainer,
	}).Scan(&totals).Error
	if err != nil {
		log.WithError(err).Error("load stats totals failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load stats")
	}

	byPole := []dto.PoleCount{}
	err = db.Table("users").
		Select("pole, COUNT(*) AS count").
		Where("role = ? AND pole IS NOT NULL", constants.RoleStudent).
		Group("pole").
		Order("pole").
		Scan(&byPole).Error
	if err != nil {
		log.WithError(err).Error("load users by pole failed")
		return helper.JsonError(c, fiber.StatusInternalServerError, "failed to load stats")
	}

	return helper.JsonOK(c, "ok", dto.StatsResponse{Totals: totals, UsersByPole: byPole})
}
