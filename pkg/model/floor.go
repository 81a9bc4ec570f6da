package model

// TimeSlot is an operating window on one weekday (0 = Sunday). Times are
// stored as zero-padded HH:MM:SS so string comparison orders them.
type TimeSlot struct {
	ID        string `json:"id" bson:"_id"`
	DayOfWeek int    `json:"day_of_week" bson:"day_of_week"`
	Name      string `json:"name,omitempty" bson:"name,omitempty"`
	StartTime string `json:"start_time" bson:"start_time"`
	EndTime   string `json:"end_time" bson:"end_time"`
	IsActive  bool   `json:"is_active" bson:"is_active"`
}

type FloorSection struct {
	ID        string `json:"id" bson:"_id"`
	Name      string `json:"name" bson:"name"`
	SortOrder int    `json:"sort_order" bson:"sort_order"`
	IsActive  bool   `json:"is_active" bson:"is_active"`
}

type Table struct {
	ID          string `json:"id" bson:"_id"`
	TableNumber int    `json:"table_number" bson:"table_number"`
	SectionID   string `json:"section_id,omitempty" bson:"section_id,omitempty"`
	Capacity    int    `json:"capacity" bson:"capacity"`
	IsActive    bool   `json:"is_active" bson:"is_active"`
}
