package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"petfinder-backend/models"
	"petfinder-backend/notify"
	"petfinder-backend/stores"

	"github.com/apex/log"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// AlertController owns the public found-report pipeline: resolve the scan
// token, append the report to the ledger, then fan out notifications.
type AlertController struct {
	pets       stores.PetStore
	alerts     stores.AlertLedger
	users      stores.UserStore
	dispatcher *notify.Dispatcher

	// now is the ledger's time source; overridable in tests.
	now func() time.Time
}

func NewAlertController(pets stores.PetStore, alerts stores.AlertLedger, users stores.UserStore, dispatcher *notify.Dispatcher) *AlertController {
	return &AlertController{
		pets:       pets,
		alerts:     alerts,
		users:      users,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

type foundReportDTO struct {
	Location json.RawMessage `json:"location"`
}

// MarkAsFound handles POST /api/alerts/:scanToken/found. The finder's
// request succeeds once the report is durably recorded; notification
// delivery happens after the fact and never affects the response.
func (ac *AlertController) MarkAsFound(c *fiber.Ctx) error {
	token := c.Params("scanToken")

	var dto foundReportDTO
	if err := c.BodyParser(&dto); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	pet, err := ac.pets.FindByScanToken(c.UserContext(), token)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "no pet registered for this tag")
		}
		return err
	}

	// Resolution confirmed the pet exists; only now touch the ledger.
	alert, err := ac.alerts.Create(c.UserContext(), pet.Id, datatypes.JSON(dto.Location), ac.now())
	if err != nil {
		return err
	}

	owner, err := ac.users.FindByID(c.UserContext(), pet.OwnerId)
	if err != nil {
		return err
	}

	// Fire-and-forget on a detached context: an aborted client connection
	// must not cancel delivery of an already-recorded report.
	msg := notify.Message{
		PetID:      pet.Id,
		PetName:    pet.Name,
		Location:   dto.Location,
		ReportedAt: alert.ReportedAt,
	}
	go func() {
		outcomes := ac.dispatcher.NotifyOwner(context.Background(), owner, msg)
		failed := 0
		for _, o := range outcomes {
			if !o.Success() {
				failed++
			}
		}
		log.WithFields(log.Fields{
			"alert_id": alert.Id,
			"channels": len(outcomes),
			"failed":   failed,
		}).Info("found-report dispatch complete")
	}()

	return c.JSON(fiber.Map{
		"ownerContact": fiber.Map{
			"email": owner.Email,
		},
	})
}

// GetAlerts lists the found-reports for all of the authenticated owner's
// pets, newest first.
func (ac *AlertController) GetAlerts(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	alerts, err := ac.alerts.ListByOwner(c.UserContext(), userID)
	if err != nil {
		return err
	}
	if alerts == nil {
		alerts = []models.Alert{}
	}
	return c.JSON(fiber.Map{
		"alerts":  alerts,
		"message": "success",
	})
}
