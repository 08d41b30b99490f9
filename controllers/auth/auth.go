package authController

import (
	"eduapi/config"
	"eduapi/database"
	"eduapi/middleware"
	"eduapi/models"
	authValidator "eduapi/validators/auth"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// loginVO is the response shape shared by login and register
func loginVO(user models.User, token string) fiber.Map {
	return fiber.Map{
		"id":       user.ID,
		"username": user.Username,
		"nickname": user.Nickname,
		"role":     user.Role,
		"avatar":   user.Avatar,
		"token":    token,
	}
}

func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*authValidator.RegisterRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check nickname and phone duplicates up front for friendly messages
	if err := db.Where("nickname = ?", reqData.Nickname).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, "Nickname is already registered!", nil)
	}
	if err := db.Where("phone = ?", reqData.Phone).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, "Phone number is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Username: reqData.Username,
		Password: string(hashedPassword),
		Phone:    reqData.Phone,
		Nickname: reqData.Nickname,
		Avatar:   reqData.Avatar,
		Role:     reqData.Role,
		Status:   models.StatusEnabled,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&newUser).Error; err != nil {
			return err
		}
		// Role-specific profile row
		switch newUser.Role {
		case models.RoleStudent:
			return tx.Create(&models.Student{UserID: newUser.ID, RealName: newUser.Username}).Error
		case models.RoleTeacher:
			return tx.Create(&models.Teacher{UserID: newUser.ID, RealName: newUser.Username}).Error
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, "User already exists!", nil)
		}
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to register user!", nil)
	}

	token, err := middleware.GenerateJWT(newUser.ID, newUser.Role, newUser.Username)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to generate token!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, "User registered successfully.", loginVO(newUser, token))
}

func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", reqData.ID).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, "User does not exist!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, "Wrong password!", nil)
	}

	if user.Status == models.StatusDisabled {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, "Account is locked, please contact the administrator!", nil)
	}

	token, err := middleware.GenerateJWT(user.ID, user.Role, user.Username)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to generate token!", nil)
	}

	log.Printf("User %d logged in, role=%s", user.ID, user.Role)
	return middleware.JsonResponse(c, fiber.StatusOK, "Login successful.", loginVO(user, token))
}

func GetCurrentUser(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ?", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, "User not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Current user fetched.", loginVO(user, ""))
}

func UpdateUserInfo(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedUserUpdate").(*authValidator.UpdateUserRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, "User not found!", nil)
	}

	if reqData.Nickname != "" {
		user.Nickname = reqData.Nickname
	}
	if reqData.Avatar != "" {
		user.Avatar = reqData.Avatar
	}
	if reqData.Email != "" {
		user.Email = reqData.Email
	}

	if err := db.Save(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return middleware.JsonResponse(c, fiber.StatusConflict, "Nickname is already taken!", nil)
		}
		log.Printf("Error updating user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to update user!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "User updated successfully.", loginVO(user, ""))
}

func UpdatePassword(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedPasswordUpdate").(*authValidator.UpdatePasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, "User not found!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.OldPassword)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, "Old password is incorrect!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to hash password!", nil)
	}

	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		log.Printf("Error updating password for user %d: %v", userId, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to update password!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Password changed successfully.", nil)
}

// UpdateStatus enables or disables an account. Admin only (route-gated).
func UpdateStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid user id!", nil)
	}
	status := c.Params("status")
	if status != models.StatusEnabled && status != models.StatusDisabled {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid status!", nil)
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ?", id).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, "User not found!", nil)
	}

	if err := db.Model(&user).Update("status", status).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to update status!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Status updated successfully.", nil)
}

// UserPage lists users with pagination. Admin only (route-gated).
func UserPage(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUserPage").(*authValidator.PageRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, "Invalid request data!", nil)
	}

	offset := (reqData.Page - 1) * reqData.Limit

	var users []models.User
	var total int64

	db := database.Database.Db.Model(&models.User{})
	db.Count(&total)

	if err := db.Offset(offset).Limit(reqData.Limit).Order("created_at desc").Find(&users).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, "Failed to fetch users!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Users fetched successfully.", fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"total": total,
			"page":  reqData.Page,
			"limit": reqData.Limit,
		},
	})
}
