package controllers

import (
	"errors"

	"petfinder-backend/middlewares"
	"petfinder-backend/models"
	"petfinder-backend/storage"
	"petfinder-backend/stores"
	"petfinder-backend/utils"

	"github.com/apex/log"
	"github.com/gofiber/fiber/v2"
)

type PetController struct {
	pets  stores.PetStore
	users stores.UserStore
	blobs storage.BlobStore
}

func NewPetController(pets stores.PetStore, users stores.UserStore, blobs storage.BlobStore) *PetController {
	return &PetController{pets: pets, users: users, blobs: blobs}
}

type createPetDTO struct {
	Name        string `json:"name" form:"name" validate:"required"`
	Category    string `json:"category" form:"category" validate:"required"`
	Description string `json:"description" form:"description"`
}

// CreatePet registers a pet for the authenticated owner. An optional
// multipart "photo" part is stored through the blob store; the pet row keeps
// only the returned URL.
func (pc *PetController) CreatePet(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var dto createPetDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}
	utils.NormalizeDTO(&dto)

	var photoURL string
	if fh, err := c.FormFile("photo"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not read photo upload")
		}
		defer f.Close()

		photoURL, err = pc.blobs.Put(c.UserContext(), f, fh.Filename, utils.ContentTypeFor(fh.Filename))
		if err != nil {
			// Blob faults are fatal to the upload, unlike notification faults.
			log.WithError(err).Error("photo upload failed")
			return fiber.NewError(fiber.StatusInternalServerError, "could not store photo")
		}
	}

	pet := models.Pet{
		OwnerId:     userID,
		Name:        dto.Name,
		Category:    dto.Category,
		Description: dto.Description,
		PhotoURL:    photoURL,
	}
	if err := pc.pets.Create(c.UserContext(), &pet); err != nil {
		// Clean up the orphaned blob; delete is idempotent.
		if photoURL != "" {
			_ = pc.blobs.Delete(c.UserContext(), photoURL)
		}
		return err
	}

	c.Status(fiber.StatusCreated)
	return c.JSON(pet)
}

func (pc *PetController) GetPets(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	pets, err := pc.pets.ListByOwner(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"pets":    pets,
		"message": "success",
	})
}

// DeletePet removes one of the owner's pets. Its alerts go with it (FK
// cascade) and its photo blob is deleted best-effort.
func (pc *PetController) DeletePet(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)
	id := c.Params("id")

	pet, err := pc.pets.FindByID(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "pet not found")
		}
		return err
	}
	if pet.OwnerId != userID {
		// Do not reveal whether the pet exists.
		return fiber.NewError(fiber.StatusNotFound, "pet not found")
	}

	if err := pc.pets.Delete(c.UserContext(), id); err != nil {
		return err
	}

	if pet.PhotoURL != "" {
		if err := pc.blobs.Delete(c.UserContext(), pet.PhotoURL); err != nil {
			log.WithError(err).WithField("pet_id", id).Warn("photo cleanup failed")
		}
	}

	return c.SendStatus(fiber.StatusNoContent)
}

type pushTokenDTO struct {
	PushToken string `json:"push_token"`
}

// SetPushToken registers (or, with an empty value, clears) the owner's
// device token for the push channel.
func (pc *PetController) SetPushToken(c *fiber.Ctx) error {
	userID, _ := c.Locals("userID").(string)

	var dto pushTokenDTO
	if err := c.BodyParser(&dto); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := pc.users.SetPushToken(c.UserContext(), userID, dto.PushToken); err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}
	return c.JSON(fiber.Map{"message": "success"})
}
