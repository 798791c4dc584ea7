package selection

import (
	stderrors "errors"

	"github.com/go-playground/validator/v10"

	"github.com/cabeard21/ao-bin-dumps/internal/engine"
	"github.com/cabeard21/ao-bin-dumps/internal/errors"
)

func newValidator(eng engine.Engine) (*validator.Validate, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := registerValidations(v, map[string]validator.Func{
		"itemid": itemRefValidator(eng),
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

func registerValidations(v *validator.Validate, funcs map[string]validator.Func) error {
	for tag, fn := range funcs {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return errors.Wrapf(err, "failed to register %s validation", tag)
		}
	}
	return nil
}

// itemRefValidator accepts identifiers of the form T<tier>_<suffix>[@<enchant>]
// and localized names the catalog knows
func itemRefValidator(eng engine.Engine) validator.Func {
	return func(fl validator.FieldLevel) bool {
		_, err := eng.ResolveItem(&engine.ResolveItemInput{Name: fl.Field().String()})
		return err == nil
	}
}

// validationError converts validator output into an InvalidArgument error
// with one entry per failing field
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid request")
	}

	vb := errors.NewValidationBuilder()
	for _, fe := range fieldErrs {
		switch fe.Tag() {
		case "required":
			vb.RequiredField(fe.Namespace())
		case "itemid":
			vb.Fieldf(fe.Namespace(), "%q is not an item id or item name", fe.Value())
		case "min", "gte":
			vb.Fieldf(fe.Namespace(), "must be at least %s", fe.Param())
		case "max":
			vb.Fieldf(fe.Namespace(), "must be at most %s", fe.Param())
		case "oneof":
			vb.Fieldf(fe.Namespace(), "must be one of: %s", fe.Param())
		default:
			vb.Fieldf(fe.Namespace(), "failed %s check", fe.Tag())
		}
	}
	return vb.Build()
}
