package dto_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Rental-api/internal/application/dto"
)

func validateTag(v any, field string) string {
	f, ok := reflect.TypeOf(v).FieldByName(field)
	if !ok {
		return ""
	}
	return f.Tag.Get("validate")
}

func TestRequestDTOs_ValidateTags(t *testing.T) {
	cases := []struct {
		v     any
		field string
		want  string
	}{
		{dto.PageRequest{}, "Limit", "min=1,max=100"},
		{dto.PageRequest{}, "Offset", "min=0"},
		{dto.RegisterRequest{}, "Email", "required,email"},
		{dto.RegisterRequest{}, "Password", "required,min=8"},
		{dto.RegisterRequest{}, "Role", "omitempty,oneof=admin operator"},
		{dto.LoginRequest{}, "Password", "required"},
		{dto.ChangePasswordRequest{}, "NewPassword", "required,min=8"},
		{dto.CreateRoomRequest{}, "Type", "required,oneof=studio single double suite"},
		{dto.UpdateRoomStatusRequest{}, "Status", "required,oneof=available occupied maintenance"},
		{dto.CreateContractRequest{}, "RoomID", "required"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, validateTag(tc.v, tc.field), "%T.%s", tc.v, tc.field)
	}
}
