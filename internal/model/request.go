package model

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SetupUsernameRequest struct {
	Username string `json:"username"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AdminSetPasswordRequest struct {
	NewPassword string `json:"new_password"`
}

type UpdateUserRequest struct {
	Username *string `json:"username"`
	Img      *string `json:"img"`
	Bio      *string `json:"bio"`
	Gender   *string `json:"gender"`
	Course   *string `json:"course"`
	Phone    *string `json:"phone"`
}

type CreateProjectRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Img           string `json:"img"`
	Category      string `json:"category"`
	Problem       string `json:"problem"`
	Collaborators string `json:"collaborators"`
	Duration      string `json:"duration"`
	Goals         string `json:"goals"`
	Resources     string `json:"resources"`
	Budget        string `json:"budget"`
	Scope         string `json:"scope"`
	Plan          string `json:"plan"`
	Challenges    string `json:"challenges"`
}

type CreateNewsRequest struct {
	Header      string `json:"header"`
	Img         string `json:"img"`
	Description string `json:"description"`
}

type CreateEventRequest struct {
	Header      string `json:"header"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Img         string `json:"img"`
	Description string `json:"description"`
}

type CreateDemoRequestRequest struct {
	FullName        string `json:"full_name"`
	Email           string `json:"email"`
	InstituteName   string `json:"institute_name"`
	Phone           string `json:"phone"`
	Designation     string `json:"designation"`
	StudentStrength string `json:"student_strength"`
	Message         string `json:"message"`
}

type UpdateDemoRequestRequest struct {
	Status      *string `json:"status"`
	RespondedBy *string `json:"responded_by"`
}
