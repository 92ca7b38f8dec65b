package controllers

import (
	"errors"
	"time"

	"petfinder-backend/middlewares"
	"petfinder-backend/models"
	"petfinder-backend/stores"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	users stores.UserStore
	auth  *middlewares.Auth
}

func NewAuthController(users stores.UserStore, auth *middlewares.Auth) *AuthController {
	return &AuthController{users: users, auth: auth}
}

type registerDTO struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required"`
}

func (ac *AuthController) Register(c *fiber.Ctx) error {
	var dto registerDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	if dto.Password != dto.PasswordConfirm {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "passwords do not match",
		})
	}

	if _, err := ac.users.FindByEmail(c.UserContext(), dto.Email); err == nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "email already exists",
		})
	} else if !errors.Is(err, stores.ErrNotFound) {
		return err
	}

	user := models.User{Email: dto.Email}
	user.SetPassword(dto.Password)
	if err := ac.users.Create(c.UserContext(), &user); err != nil {
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "could not create user",
		})
	}

	token, err := ac.auth.GenerateJWT(user.Id)
	if err != nil {
		return err
	}

	c.Status(fiber.StatusCreated)
	return c.JSON(fiber.Map{
		"id":    user.Id,
		"email": user.Email,
		"token": token,
	})
}

type loginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (ac *AuthController) Login(c *fiber.Ctx) error {
	var dto loginDTO
	if err := middlewares.BindAndValidate(c, &dto); err != nil {
		return err
	}

	user, err := ac.users.FindByEmail(c.UserContext(), dto.Email)
	if err != nil {
		if errors.Is(err, stores.ErrNotFound) {
			c.Status(fiber.StatusUnauthorized)
			return c.JSON(fiber.Map{
				"message": "invalid credentials",
			})
		}
		return err
	}

	if err := user.ComparePassword(dto.Password); err != nil {
		c.Status(fiber.StatusUnauthorized)
		return c.JSON(fiber.Map{
			"message": "invalid credentials",
		})
	}

	token, err := ac.auth.GenerateJWT(user.Id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user": fiber.Map{
			"id":    user.Id,
			"email": user.Email,
		},
	})
}

func (ac *AuthController) Logout(c *fiber.Ctx) error {
	cookie := fiber.Cookie{
		Name:     "jwt",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	}
	c.Cookie(&cookie)
	return c.JSON(fiber.Map{
		"message": "success",
	})
}
