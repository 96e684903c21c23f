package models

type Subtask struct {
	ID        uint64 `gorm:"primarykey" json:"id"`
	TaskID    uint64 `gorm:"not null;index" json:"task_id"`
	Title     string `gorm:"type:varchar(255);not null" json:"title"`
	Completed bool   `gorm:"not null;default:false" json:"completed"`
	Order     int    `gorm:"column:order;not null;default:0" json:"order"`

	// Relations
	Task Task `gorm:"foreignKey:TaskID" json:"-"`
}
