package resource

// RoomForm is the admin create/update payload for a room.
type RoomForm struct {
	RoomNumber       string  `json:"room_number"        yaml:"room_number"        validate:"required"`
	RoomType         string  `json:"room_type"          yaml:"room_type"          validate:"required"`
	OccupancyLimit   int     `json:"occupancy_limit"    yaml:"occupancy_limit"    validate:"gte=1"`
	PricePerSemester float64 `json:"price_per_semester" yaml:"price_per_semester" validate:"gte=0"`
	Description      string  `json:"description"        yaml:"description"`
	ImageURL         string  `json:"image_url"          yaml:"image_url"          validate:"omitempty,url"`
}

// ComplaintForm is submitted by students.
type ComplaintForm struct {
	Type        string `json:"type"        yaml:"type"        validate:"required"`
	Severity    string `json:"severity"    yaml:"severity"    validate:"required,oneof=low medium high"`
	Description string `json:"description" yaml:"description" validate:"required"`
	Location    string `json:"location"    yaml:"location"`
	Anonymous   bool   `json:"anonymous"   yaml:"anonymous"`
}

// MaintenanceForm is submitted by students.
type MaintenanceForm struct {
	Type          string `json:"type"          yaml:"type"          validate:"required"`
	Priority      string `json:"priority"      yaml:"priority"      validate:"required,oneof=low medium high urgent"`
	Description   string `json:"description"   yaml:"description"   validate:"required"`
	PreferredTime string `json:"preferredTime" yaml:"preferredTime"`
}

// ApplicationForm asks for a room for one semester.
type ApplicationForm struct {
	RoomID          int64  `json:"room_id"          yaml:"room_id"          validate:"required,gt=0"`
	SpecialNeeds    string `json:"special_needs"    yaml:"special_needs"`
	AdditionalNotes string `json:"additional_notes" yaml:"additional_notes"`
	AcademicYear    int    `json:"academic_year"    yaml:"academic_year"    validate:"required,gte=2000"`
	Semester        string `json:"semester"         yaml:"semester"         validate:"required,oneof=fall spring summer"`
}

// ReviewForm approves or rejects an application. Approving needs a room.
type ReviewForm struct {
	Status string `json:"status"            validate:"required,oneof=approved rejected"`
	RoomID int64  `json:"room_id,omitempty" validate:"required_if=Status approved"`
}

// StatusForm moves a complaint or maintenance request through its workflow.
type StatusForm struct {
	Status string `json:"status" yaml:"status" validate:"required"`
}
