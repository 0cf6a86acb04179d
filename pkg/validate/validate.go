package validate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	apperrors "dept-service/pkg/errors"
)

const (
	msgInvalidID = "id must be a valid uuid"

	tagMsgRequired = "is required"
	tagMsgEmail    = "must be a valid email address"
	tagMsgUUID     = "must be a valid uuid"
	tagMsgMinFmt   = "must be at least %s characters"
	tagMsgMaxFmt   = "must be at most %s"
	tagMsgGteFmt   = "must be greater than or equal to %s"
	tagMsgLteFmt   = "must be less than or equal to %s"
	tagMsgOneofFmt = "must be one of [%s]"
	tagMsgDefault  = "is invalid"
)

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New(validator.WithRequiredStructEnabled())

	// Report violations against JSON field names so clients see the paths
	// they actually sent.
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	return val
}

// Violation is one schema failure, addressed by JSON field path.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Struct checks a request payload against its validate tags. On failure it
// returns a BadRequest carrying every violation in declaration order.
func Struct(payload any) error {
	err := v.Struct(payload)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.InternalServer(err.Error(), err)
	}

	violations := make([]Violation, 0, len(verrs))
	for _, fe := range verrs {
		violations = append(violations, Violation{
			Field:   fieldPath(fe),
			Message: messageFor(fe),
		})
	}

	return apperrors.BadRequest(joinViolations(violations))
}

// Each checks every element of a batch payload, prefixing violations with
// the element index.
func Each(payloads any) error {
	rv := reflect.ValueOf(payloads)
	if rv.Kind() != reflect.Slice {
		return Struct(payloads)
	}

	for i := 0; i < rv.Len(); i++ {
		if err := Struct(rv.Index(i).Interface()); err != nil {
			return apperrors.BadRequest(fmt.Sprintf("[%d] %s", i, err.Error()))
		}
	}

	return nil
}

// UUID parses a path or body identifier, rejecting anything that is not a
// syntactically valid uuid before it reaches a repository.
func UUID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.BadRequest(msgInvalidID)
	}
	return id, nil
}

func fieldPath(fe validator.FieldError) string {
	// Namespace looks like "CreateCollegeRequest.name"; drop the root struct.
	parts := strings.SplitN(fe.Namespace(), ".", 2)
	if len(parts) == 2 {
		return parts[1]
	}
	return fe.Field()
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return tagMsgRequired
	case "email":
		return tagMsgEmail
	case "uuid", "uuid4":
		return tagMsgUUID
	case "min":
		return fmt.Sprintf(tagMsgMinFmt, fe.Param())
	case "max":
		return fmt.Sprintf(tagMsgMaxFmt, fe.Param())
	case "gte":
		return fmt.Sprintf(tagMsgGteFmt, fe.Param())
	case "lte":
		return fmt.Sprintf(tagMsgLteFmt, fe.Param())
	case "oneof":
		return fmt.Sprintf(tagMsgOneofFmt, fe.Param())
	default:
		return tagMsgDefault
	}
}

func joinViolations(violations []Violation) string {
	parts := make([]string, len(violations))
	for i, viol := range violations {
		parts[i] = fmt.Sprintf("%s: %s", viol.Field, viol.Message)
	}
	return strings.Join(parts, "; ")
}
