package account

import (
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/matokeo/core"
)

func newTestValidator() *validator.Validate {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")

	validate := validator.New()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)
	return validate
}

func Test_validatePassword(t *testing.T) {
	validate := newTestValidator()

	newTeacher := func(pwd string) NewTeacher {
		return NewTeacher{
			Username:   "mwalimu",
			Password:   pwd,
			FullName:   "John Smith",
			Email:      "jsmith@test.cd",
			Department: "Science",
		}
	}

	tests := []struct {
		name    string
		pwd     string
		wantTag string
	}{
		{name: "too short", pwd: "lol", wantTag: "pwdminlen"},
		{name: "whitespace", pwd: "pass word 123", wantTag: "pwdnospace"},
		{name: "all numeric", pwd: "4815162342", wantTag: "pwdnotallnum"},
		{name: "similar to username", pwd: "mwalimu1", wantTag: "pwdtoosim"},
		{name: "similar to email", pwd: "jsmith@test.cd1", wantTag: "pwdtoosim"},
		{name: "valid", pwd: "v3ryS3cr3t!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(newTeacher(tt.pwd))
			if tt.wantTag == "" {
				if err != nil {
					t.Errorf("Struct() error = %v, want nil", err)
				}
				return
			}

			vErrs, ok := err.(validator.ValidationErrors)
			if !ok {
				t.Fatalf("Struct() error = %v, want ValidationErrors", err)
			}
			for _, vErr := range vErrs {
				if vErr.Tag() == tt.wantTag {
					return
				}
			}
			t.Errorf("Struct() errors = %v, want tag %q", vErrs, tt.wantTag)
		})
	}
}
