package profile

import (
	"github.com/janisto/intern-portal/internal/platform/timeutil"
	profilesvc "github.com/janisto/intern-portal/internal/service/profile"
)

// Profile represents a user profile response.
type Profile struct {
	ID             string         `json:"id"                       doc:"Unique identifier"            example:"user-123"`
	Email          string         `json:"email"                    doc:"Email address"                example:"aino@example.com"`
	FullName       string         `json:"fullName"                 doc:"Full name"                    example:"Aino Virtanen"`
	Initials       string         `json:"initials"                 doc:"Initials derived from name"   example:"AV"`
	Role           string         `json:"role"                     doc:"Portal role"                  example:"student"              enum:"student,advisor,company-admin,dean"`
	Phone          string         `json:"phone,omitempty"          doc:"Phone number"                 example:"+358401234567"`
	Address        string         `json:"address,omitempty"        doc:"Postal address"               example:"Otakaari 1, Espoo"`
	Bio            string         `json:"bio,omitempty"            doc:"Short biography"              example:"Third-year CS student."`
	Avatar         string         `json:"avatar,omitempty"         doc:"Avatar URL"                   example:"https://storage.googleapis.com/bucket/avatars/user-123/a.png"`
	University     string         `json:"university,omitempty"     doc:"University (students)"        example:"Aalto University"`
	Department     string         `json:"department,omitempty"     doc:"Department"                   example:"Computer Science"`
	GraduationYear *int           `json:"graduationYear,omitempty" doc:"Expected graduation year"     example:"2028"`
	CreatedAt      timeutil.Time  `json:"createdAt"                doc:"Creation timestamp"           example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt      timeutil.Time  `json:"updatedAt"                doc:"Last update timestamp"        example:"2024-01-15T10:30:00.000Z"`
	LastLogin      *timeutil.Time `json:"lastLogin,omitempty"      doc:"Last login timestamp"         example:"2024-01-15T10:30:00.000Z"`
}

// PersonalInfo is the full editable field set.
type PersonalInfo struct {
	FullName       string `json:"fullName"                 required:"true" maxLength:"200" doc:"Full name"                example:"Aino Virtanen"`
	Email          string `json:"email"                    required:"true" maxLength:"254" doc:"Email address"            example:"aino@example.com"`
	Phone          string `json:"phone,omitempty"                          maxLength:"40"  doc:"Phone number"             example:"+358401234567"`
	University     string `json:"university,omitempty"                     maxLength:"200" doc:"University (students)"    example:"Aalto University"`
	Department     string `json:"department,omitempty"                     maxLength:"200" doc:"Department"               example:"Computer Science"`
	GraduationYear *int   `json:"graduationYear,omitempty"                                 doc:"Expected graduation year" example:"2028"`
	Bio            string `json:"bio,omitempty"                                            doc:"Short biography, at most 500 characters"`
	Address        string `json:"address,omitempty"                        maxLength:"500" doc:"Postal address"           example:"Otakaari 1, Espoo"`
}

// AvatarUpload is the response of the avatar upload.
type AvatarUpload struct {
	AvatarRef string `json:"avatarRef" doc:"URL of the stored avatar" example:"https://storage.googleapis.com/bucket/avatars/user-123/a.png"`
}

// ChecklistItem is one profile completeness item.
type ChecklistItem struct {
	Key   string `json:"key"   doc:"Checklist key"  example:"phone"`
	Label string `json:"label" doc:"Display label"  example:"Add phone number"`
	Done  bool   `json:"done"  doc:"Whether filled" example:"true"`
}

// Completion is the profile completeness summary.
type Completion struct {
	Percent int             `json:"percent" doc:"Completion percentage" example:"50"`
	Label   string          `json:"label"   doc:"Fraction label"        example:"2 of 4 completed"`
	Items   []ChecklistItem `json:"items"   doc:"Checklist"`
}

// Stats are the overview stat tiles.
type Stats struct {
	Applications     int `json:"applications"     doc:"Submitted applications" example:"3"`
	ReportsSubmitted int `json:"reportsSubmitted" doc:"Submitted reports"      example:"4"`
	ReportsTotal     int `json:"reportsTotal"     doc:"Required reports"       example:"12"`
	Progress         int `json:"progress"         doc:"Progress percentage"    example:"33"`
}

// RecentActivity is an activity entry with a relative-time label.
type RecentActivity struct {
	ID          string        `json:"id"                    doc:"Activity ID"            example:"01J9ZQ6W4M9C1V2E8X5R7T3K0A"`
	Type        string        `json:"type"                  doc:"Activity type"          example:"report" enum:"application,report,feedback,other"`
	Title       string        `json:"title"                 doc:"Title"                  example:"Weekly report 3"`
	Description string        `json:"description,omitempty" doc:"Optional description"`
	CreatedAt   timeutil.Time `json:"createdAt"             doc:"Creation timestamp"     example:"2024-01-15T10:30:00.000Z"`
	When        string        `json:"when"                  doc:"Relative time label"    example:"2 hours ago"`
}

// Overview is the profile overview panel.
type Overview struct {
	Stats        Stats            `json:"stats"`
	Recent       []RecentActivity `json:"recent"                 doc:"Up to five newest entries"`
	EmptyMessage string           `json:"emptyMessage,omitempty" doc:"Shown when there is no activity" example:"No recent activity yet"`
	Completion   Completion       `json:"completion"`
	LastLogin    string           `json:"lastLogin,omitempty"    doc:"Relative last login label" example:"3 hours ago"`
}

func toHTTPProfile(p *profilesvc.Profile) Profile {
	return Profile{
		ID:             p.ID,
		Email:          p.Email,
		FullName:       p.FullName,
		Initials:       p.Initials(),
		Role:           p.Role.String(),
		Phone:          p.Phone,
		Address:        p.Address,
		Bio:            p.Bio,
		Avatar:         p.Avatar,
		University:     p.University,
		Department:     p.Department,
		GraduationYear: p.GraduationYear,
		CreatedAt:      timeutil.NewTime(p.CreatedAt),
		UpdatedAt:      timeutil.NewTime(p.UpdatedAt),
		LastLogin:      timeutil.NewNullable(p.LastLogin),
	}
}

func (pi PersonalInfo) toService() profilesvc.PersonalInfo {
	return profilesvc.PersonalInfo{
		FullName:       pi.FullName,
		Email:          pi.Email,
		Phone:          pi.Phone,
		University:     pi.University,
		Department:     pi.Department,
		GraduationYear: pi.GraduationYear,
		Bio:            pi.Bio,
		Address:        pi.Address,
	}
}
