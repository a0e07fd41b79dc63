package entity

// Counter is a named monotonic sequence used for document numbers
type Counter struct {
	Name string `gorm:"primaryKey;size:50" json:"name"`
	Seq  int64  `gorm:"not null;default:0" json:"seq"`
}

// TableName returns the table name for the Counter model
func (Counter) TableName() string {
	return "counters"
}
