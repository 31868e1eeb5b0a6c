package Models

import (
	"log"
	"time"

	"gorm.io/gorm"
)

// Seed inserts a demo admin, operator and one task of each kind so a
// fresh database is immediately usable. No-op when an admin exists.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := Admin{
		Number:      "ADM001",
		Name:        "Admin",
		Email:       "admin@example.com",
		Gender:      "Male",
		PhoneNumber: "9876543210",
	}
	if err := admin.SetPassword("adminpass"); err != nil {
		return err
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	operator := OperationTeamMember{
		Name:        "Operator One",
		Email:       "operator1@example.com",
		PhoneNumber: "9123456789",
	}
	if err := operator.SetPassword("operatorpass"); err != nil {
		return err
	}
	if err := db.Create(&operator).Error; err != nil {
		return err
	}

	defaultTask := DefaultTask{
		Title:       "Check inventory",
		Description: "Make sure all shelves are stocked",
		AdminID:     admin.ID,
	}
	if err := db.Create(&defaultTask).Error; err != nil {
		return err
	}

	daily := DailyTaskInstance{
		TaskDate:      time.Now(),
		Priority:      PriorityLow,
		Status:        StatusPending,
		DefaultTaskID: defaultTask.ID,
		Operators:     []OperationTeamMember{operator},
	}
	if err := db.Create(&daily).Error; err != nil {
		return err
	}

	due := time.Now().Add(24 * time.Hour)
	newTask := NewTask{
		Title:        "Urgent package delivery",
		Description:  "Deliver package to client X",
		DueDate:      &due,
		Priority:     PriorityHigh,
		Status:       StatusInProgress,
		AdminID:      admin.ID,
		AssignedDate: time.Now(),
		Operators:    []OperationTeamMember{operator},
	}
	if err := db.Create(&newTask).Error; err != nil {
		return err
	}

	log.Println("Database seeded")
	return nil
}
