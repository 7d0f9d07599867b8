package profile

import (
	"github.com/danielgtaylor/huma/v2"
)

// ProfileCreateInput for POST /profile
type ProfileCreateInput struct {
	Body struct {
		FullName string `json:"fullName"        required:"true" maxLength:"200" doc:"Full name"                                   example:"Aino Virtanen"`
		Email    string `json:"email,omitempty"                 maxLength:"254" doc:"Email address; defaults to the token's email" example:"aino@example.com"`
	}
}

// ProfileGetInput for GET /profile (no body needed)
type ProfileGetInput struct{}

// PersonalInfoUpdateInput for PUT /profile/personal-info
type PersonalInfoUpdateInput struct {
	Body PersonalInfo
}

// AvatarForm is the multipart form of the avatar upload.
type AvatarForm struct {
	Avatar huma.FormFile `form:"avatar" required:"true" doc:"JPEG, PNG, GIF or WebP image, at most 5 MB"`
}

// AvatarUploadInput for PUT /profile/avatar
type AvatarUploadInput struct {
	RawBody huma.MultipartFormFiles[AvatarForm]
}

// OverviewGetInput for GET /profile/overview (no body needed)
type OverviewGetInput struct{}
