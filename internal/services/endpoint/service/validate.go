package service

import (
	"encoding/json"
	"reflect"
	"strings"
	"sync"

	perr "sftpcycle/internal/platform/errors"
	"sftpcycle/internal/services/endpoint/domain"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	vOnce  sync.Once
	vInst  *validator.Validate
	vTrans ut.Translator
)

// vget returns the singleton validator with english translations and json tag names
func vget() (*validator.Validate, ut.Translator) {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// prefer json tag names in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			tag := fld.Tag.Get("json")
			if tag == "-" || tag == "" {
				return fld.Name
			}
			if idx := strings.Index(tag, ","); idx >= 0 {
				tag = tag[:idx]
			}
			return tag
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		vInst = v
		vTrans = trans
	})
	return vInst, vTrans
}

// ParseUserSpecs decodes and validates the operator-supplied user config JSON.
// All problems are reported before any provider call: a decode failure or any
// invalid spec yields one input error carrying every field message
func ParseUserSpecs(raw string) ([]domain.UserSpec, error) {
	var specs []domain.UserSpec
	if err := json.Unmarshal([]byte(raw), &specs); err != nil {
		return nil, perr.JSONErrf("invalid user configs: must be a valid JSON array")
	}

	v, trans := vget()
	var problems []string
	for i := range specs {
		if err := v.Struct(&specs[i]); err != nil {
			if verrs, ok := err.(validator.ValidationErrors); ok {
				for _, fe := range verrs {
					problems = append(problems, "user "+specs[i].Username+": "+fe.Translate(trans))
				}
				continue
			}
			return nil, perr.Wrap(err, perr.ErrorCodeValidation, "user config validation failed")
		}
	}
	if len(problems) > 0 {
		return nil, perr.Validationf("invalid user configs: %s", strings.Join(problems, "; "))
	}
	return specs, nil
}

// validSpec checks one spec in isolation, used on the per-user create path
// where a bad spec is skipped rather than fatal
func validSpec(spec domain.UserSpec) error {
	v, trans := vget()
	if err := v.Struct(&spec); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			return perr.Validationf("%s", verrs[0].Translate(trans))
		}
		return perr.Wrap(err, perr.ErrorCodeValidation, "user spec validation failed")
	}
	return nil
}
