package validator

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	sharedError "github.com/skku-gallery/gallery/go-web-server/internal/shared/error"
)

// fieldLabels maps struct field names to the Korean labels shown to users
var fieldLabels = map[string]string{
	"Username":        "아이디",
	"Email":           "이메일",
	"Password":        "비밀번호",
	"ConfirmPassword": "비밀번호 확인",
	"Name":            "이름",
	"Role":            "회원 유형",
	"Department":      "학과",
	"StudentYear":     "학번",
	"Affiliation":     "소속",
	"Title":           "제목",
	"Content":         "내용",
	"StartDate":       "시작일",
	"EndDate":         "종료일",
	"Status":          "상태",
	"ExhibitionType":  "전시 유형",
	"Year":            "제작 연도",
	"Token":           "인증 토큰",
	"Identifier":      "아이디 또는 이메일",
	"Location":        "장소",
	"Artist":          "작가",
	"Description":     "설명",
}

// ToErrorResponse converts gin binding/validator errors into a standardized response.
func ToErrorResponse(err error) (*sharedError.ErrorResponse, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil, false
	}

	if len(validationErrors) == 0 {
		return nil, false
	}

	// 첫 번째 validation error만 반환 (사용자 친화적)
	fieldErr := validationErrors[0]
	message := getErrorMessage(fieldErr)

	resp := sharedError.ValidationFailed
	resp.Message = message
	return &resp, true
}

func label(fe validator.FieldError) string {
	if l, ok := fieldLabels[fe.StructField()]; ok {
		return l
	}
	return fe.Field()
}

// getErrorMessage returns user-friendly error message for validation error
func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "required_without", "notblank":
		return fmt.Sprintf("%s을(를) 입력해 주세요.", label(fe))
	case "email":
		return "이메일 형식이 올바르지 않습니다."
	case "min":
		return fmt.Sprintf("%s은(는) 최소 %s자 이상이어야 합니다.", label(fe), fe.Param())
	case "max":
		return fmt.Sprintf("%s은(는) 최대 %s자까지 입력 가능합니다.", label(fe), fe.Param())
	case "gte", "lte":
		return fmt.Sprintf("%s 값이 허용 범위를 벗어났습니다.", label(fe))
	case "oneof":
		return fmt.Sprintf("%s 값이 올바르지 않습니다.", label(fe))
	case "eqfield":
		return "비밀번호가 일치하지 않습니다."
	case "username":
		return "아이디는 3~20자의 영문, 숫자, 밑줄(_)만 사용할 수 있습니다."
	case "password":
		return "비밀번호는 영문과 숫자를 모두 포함해야 합니다."
	case "datetime":
		return fmt.Sprintf("%s 날짜 형식이 올바르지 않습니다. (YYYY-MM-DD)", label(fe))
	default:
		return fmt.Sprintf("'%s' 필드가 올바르지 않습니다.", label(fe))
	}
}
