package profile

// ProfileCreateOutput for POST /profile (201 Created)
type ProfileCreateOutput struct {
	Location string `header:"Location" doc:"URL of created profile"`
	Body     Profile
}

// ProfileGetOutput for GET /profile
type ProfileGetOutput struct {
	Body Profile
}

// PersonalInfoUpdateOutput for PUT /profile/personal-info
type PersonalInfoUpdateOutput struct {
	Body Profile
}

// AvatarUploadOutput for PUT /profile/avatar
type AvatarUploadOutput struct {
	Body AvatarUpload
}

// OverviewGetOutput for GET /profile/overview
type OverviewGetOutput struct {
	Body Overview
}
