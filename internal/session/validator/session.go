package validator

import (
	"errors"
	"fmt"
	"strings"

	"studiodesk/pkg/logger"
	"studiodesk/pkg/model"

	"github.com/go-playground/validator/v10"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type SessionValidator struct {
	validate *validator.Validate
}

func NewSessionValidator(log *logger.Logger) *SessionValidator {
	v := validator.New()

	if err := v.RegisterValidation("staff_role", validateStaffRole); err != nil {
		log.Fatal("Failed to register 'staff_role' validator", "error", err)
	}

	return &SessionValidator{validate: v}
}

func validateStaffRole(fl validator.FieldLevel) bool {
	_, err := model.ParseStaffRole(strings.TrimSpace(fl.Field().String()))
	return err == nil
}

func (v *SessionValidator) ValidateLogin(req *model.LoginRequest) error {
	return v.validateStruct(req)
}

func (v *SessionValidator) ValidateSelectCompany(req *model.SelectCompanyRequest) error {
	return v.validateStruct(req)
}

func (v *SessionValidator) validateStruct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}
	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "email":
			message = "email must be a valid email address"
		case "staff_role":
			message = "role must be one of Manager, ReceptionEmployee, Trainer (or 0, 1, 2)"
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
