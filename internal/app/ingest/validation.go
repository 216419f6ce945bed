package ingest

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	apperrors "twi-speech/internal/app/errors"
	"twi-speech/internal/app/registry"
)

// NewValidator returns a validator with the participant_code rule registered
func NewValidator(participantPrefix string) *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("participant_code", func(fl validator.FieldLevel) bool {
		return registry.ValidateParticipantCode(participantPrefix, fl.Field().String()) == nil
	})
	return v
}

// translateValidation converts validator errors into a classified validation error
func translateValidation(err error, participantPrefix string) error {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return apperrors.Validation(err.Error())
	}

	var messages []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "participant_code":
			return apperrors.Wrapf(apperrors.ErrInvalidParticipantCode,
				"participant_code must start with %q", participantPrefix)
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", fieldName(fe)))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", fieldName(fe), fe.Param()))
		case "gte":
			messages = append(messages, fmt.Sprintf("%s must be at least %s", fieldName(fe), fe.Param()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", fieldName(fe)))
		}
	}
	return apperrors.Validation(strings.Join(messages, "; "))
}

var fieldNames = map[string]string{
	"ParticipantCode":   "participant_code",
	"PromptID":          "prompt_id",
	"PromptText":        "prompt_text",
	"Filename":          "filename",
	"RecordingDuration": "recording_duration",
}

func fieldName(fe validator.FieldError) string {
	if name, ok := fieldNames[fe.StructField()]; ok {
		return name
	}
	return strings.ToLower(fe.Field())
}
