package handlers

import (
	"fmt"

	"github.com/SscSPs/queue_mood_board/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerMoodValidation makes the `mood` binding tag accept the emoji or the
// label of a configured option.
func registerMoodValidation(moods domain.MoodSet) error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("mood", func(fl validator.FieldLevel) bool {
		_, ok := moods.Resolve(fl.Field().String())
		return ok
	})
}

// bindingErrorMessage turns a binding failure into text fit for the page.
func bindingErrorMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return "Invalid request format: " + err.Error()
	}
	for _, fe := range verrs {
		switch {
		case fe.Field() == "Mood" && fe.Tag() == "required":
			return "Please pick a mood before submitting."
		case fe.Field() == "Mood":
			return fmt.Sprintf("%q is not one of the board's moods.", fe.Value())
		case fe.Tag() == "datetime":
			return fmt.Sprintf("%s must be a date in YYYY-MM-DD format.", fe.Field())
		}
	}
	return verrs.Error()
}
