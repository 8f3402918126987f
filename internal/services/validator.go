package services

import (
	"context"
	"fmt"
	"html"
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sbilibin2017/syncify/internal/apperrors"
	"github.com/sbilibin2017/syncify/internal/models"
)

// Validation errors, one per rule. They match apperrors.ErrConflict or
// apperrors.ErrValidation with errors.Is.
var (
	ErrEmailAlreadyExists       = apperrors.Conflict("email", "Email already registered")
	ErrDisplayNameAlreadyExists = apperrors.Conflict("display_name", "Display name already registered")
	ErrSpotifyIDAlreadyLinked   = apperrors.Conflict("spotify_id", "Spotify account already linked to another user")
	ErrPasswordNotStrongEnough  = apperrors.ValidationFailed("password", "Password must contain at least one uppercase letter, one lowercase letter and one digit")
)

// MaxFreeTextLen is the column width of display_name and currently_playing.
const MaxFreeTextLen = 255

var strictPolicy = bluemonday.StrictPolicy()

// AllowedEmailTLDs lists the top-level domains accepted for registration.
var AllowedEmailTLDs = []string{".com", ".fr", ".net"}

// UserValidator checks user payloads before they reach the repository.
// Uniqueness checks here are advisory: two concurrent requests can both pass
// them, and the database UNIQUE constraints reject the second writer.
type UserValidator struct {
	users    UserReader
	validate *validator.Validate
}

// NewUserValidator creates a new UserValidator.
func NewUserValidator(users UserReader) *UserValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterValidation("email_domain", validateEmailDomain)

	return &UserValidator{
		users:    users,
		validate: v,
	}
}

// Validate sanitizes in and checks it in order: field shapes, email not
// taken, display name not taken, password strength. The first failure wins.
func (v *UserValidator) Validate(ctx context.Context, in *models.UserCreate) error {
	in.DisplayName = SanitizeText(in.DisplayName)
	in.Email = normalizeEmail(in.Email)
	if in.CurrentlyPlaying != nil {
		s := SanitizeText(*in.CurrentlyPlaying)
		in.CurrentlyPlaying = &s
	}

	if err := v.validate.StructCtx(ctx, in); err != nil {
		return v.toAppError(err)
	}

	existing, err := v.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmailAlreadyExists
	}

	existing, err = v.users.GetByDisplayName(ctx, in.DisplayName)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDisplayNameAlreadyExists
	}

	if !IsStrongPassword(in.Password) {
		return ErrPasswordNotStrongEnough
	}
	return nil
}

// ValidateUpdate checks a partial update of user id. Collisions are only
// reported against other users.
func (v *UserValidator) ValidateUpdate(ctx context.Context, id uuid.UUID, upd *models.UserUpdate) error {
	if upd.DisplayName != nil {
		s := SanitizeText(*upd.DisplayName)
		upd.DisplayName = &s
	}
	if upd.Email != nil {
		s := normalizeEmail(*upd.Email)
		upd.Email = &s
	}
	if upd.CurrentlyPlaying != nil {
		s := SanitizeText(*upd.CurrentlyPlaying)
		upd.CurrentlyPlaying = &s
	}

	if err := v.validate.StructCtx(ctx, upd); err != nil {
		return v.toAppError(err)
	}

	if upd.Email != nil {
		existing, err := v.users.GetByEmail(ctx, *upd.Email)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != id {
			return ErrEmailAlreadyExists
		}
	}

	if upd.DisplayName != nil {
		existing, err := v.users.GetByDisplayName(ctx, *upd.DisplayName)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != id {
			return ErrDisplayNameAlreadyExists
		}
	}

	if upd.SpotifyID != nil {
		existing, err := v.users.GetBySpotifyID(ctx, *upd.SpotifyID)
		if err != nil {
			return err
		}
		if existing != nil && existing.ID != id {
			return ErrSpotifyIDAlreadyLinked
		}
	}

	if upd.Password != nil && !IsStrongPassword(*upd.Password) {
		return ErrPasswordNotStrongEnough
	}
	return nil
}

// IsStrongPassword reports whether s has an uppercase letter, a lowercase letter and a digit.
func IsStrongPassword(s string) bool {
	var upper, lower, digit bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}

// SanitizeText strips markup and surrounding whitespace from free text.
// Entities are decoded before each pass, so encoded tags are stripped too.
func SanitizeText(s string) string {
	for i := 0; i < 8; i++ {
		next := html.UnescapeString(strictPolicy.Sanitize(html.UnescapeString(s)))
		if next == s {
			break
		}
		s = next
	}
	return strings.TrimSpace(s)
}

// TruncateRunes cuts s to at most n runes.
func TruncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validateEmailDomain(fl validator.FieldLevel) bool {
	email := strings.ToLower(fl.Field().String())
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return false
	}
	domain := email[at+1:]
	for _, tld := range AllowedEmailTLDs {
		if strings.HasSuffix(domain, tld) {
			return true
		}
	}
	return false
}

func (v *UserValidator) toAppError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return apperrors.ValidationFailed("", err.Error())
	}

	fe := verrs[0]
	field := fe.Field()
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("%s is required", field)
	case "min":
		msg = fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		msg = fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "email":
		msg = "Invalid email address"
	case "email_domain":
		msg = fmt.Sprintf("Email domain must end with one of %s", strings.Join(AllowedEmailTLDs, ", "))
	case "url":
		msg = fmt.Sprintf("%s must be a valid URL", field)
	default:
		msg = fmt.Sprintf("%s is invalid", field)
	}
	return apperrors.ValidationFailed(field, msg)
}
