package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/weblinkcreator/siteapi/internal/domain/entities"
)

// Validator checks caller-supplied records before they reach the store.
// It also satisfies echo.Validator.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the site-specific rules registered
func NewValidator() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterValidation("order_status", func(fl validator.FieldLevel) bool {
		return entities.OrderStatus(fl.Field().String()).IsValid()
	})
	v.RegisterValidation("image_ref", func(fl validator.FieldLevel) bool {
		return entities.IsImageReference(fl.Field().String())
	})
	v.RegisterValidation("social_platform", func(fl validator.FieldLevel) bool {
		return entities.SocialPlatform(fl.Field().String()).IsValid()
	})

	return &Validator{validate: v}
}

// Validate returns entities.ValidationErrors describing every rejected field
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(entities.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, entities.FieldError{
			Field:  fieldPath(fe.Namespace()),
			Reason: reason(fe),
		})
	}
	return out
}

// fieldPath drops the root struct name from a namespace like "Document.orders[0].status"
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "image_ref":
		return "must be an http(s) URL or a data:image payload"
	case "social_platform":
		return "unknown social platform; expected one of " + socialPlatformList()
	case "order_status":
		return "must be one of pending, completed, cancelled"
	case "gte":
		return "must be at least " + fe.Param()
	case "min":
		return "must not be empty"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return fmt.Sprintf("failed %q validation", fe.Tag())
	}
}

func socialPlatformList() string {
	names := make([]string, len(entities.SocialPlatforms))
	for i, p := range entities.SocialPlatforms {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

// checkUniqueIDs reports repeated ids inside each collection
func checkUniqueIDs(doc *entities.Document) entities.ValidationErrors {
	var errs entities.ValidationErrors

	seenOrders := make(map[entities.ID]bool, len(doc.Orders))
	for i, order := range doc.Orders {
		if seenOrders[order.ID] {
			errs = append(errs, entities.FieldError{Field: fmt.Sprintf("orders[%d].id", i), Reason: "duplicate id " + order.ID.String()})
		}
		seenOrders[order.ID] = true
	}

	seenMembers := make(map[entities.ID]bool, len(doc.Team))
	for i, member := range doc.Team {
		if seenMembers[member.ID] {
			errs = append(errs, entities.FieldError{Field: fmt.Sprintf("team[%d].id", i), Reason: "duplicate id " + member.ID.String()})
		}
		seenMembers[member.ID] = true
	}

	return errs
}
