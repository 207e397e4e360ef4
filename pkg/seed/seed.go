package seed

import (
	"log"

	"gorm.io/gorm"

	"hoamanager_backend/internal/model"
)

// SeedEmailTemplates inserts the stock templates an HOA starts out with.
// Existing templates with the same name are left untouched.
func SeedEmailTemplates(db *gorm.DB) {
	templates := []model.EmailTemplate{
		{
			Name:    "Monthly Statement",
			Type:    model.TemplateMonthlyStatement,
			Subject: "Monthly HOA Statement - {{property_address}}",
			Body: "Dear {{resident_name}},\n\n" +
				"Please find your monthly HOA statement for {{property_address}}.\n\n" +
				"Current Balance: ${{current_balance}}\n" +
				"Monthly HOA Fee: ${{monthly_fee}}\n" +
				"Due Date: {{due_date}}\n\n" +
				"Best regards,\nHOA Management Team",
			IsActive: true,
		},
		{
			Name:    "Maintenance Update",
			Type:    model.TemplateMaintenanceNotice,
			Subject: "Maintenance Update - {{request_title}}",
			Body: "Dear {{resident_name}},\n\n" +
				"Here is an update on the maintenance request for {{property_address}}.\n\n" +
				"Request: {{request_title}}\n" +
				"Status: {{status}}\n" +
				"Notes: {{notes}}\n\n" +
				"Best regards,\nHOA Management Team",
			IsActive: true,
		},
		{
			Name:    "Assessment Notice",
			Type:    model.TemplateAssessmentNotice,
			Subject: "HOA Assessment Notice - {{property_address}}",
			Body: "Dear {{resident_name}},\n\n" +
				"A new assessment has been posted for {{property_address}}.\n\n" +
				"Amount Due: ${{current_balance}}\n" +
				"Due Date: {{due_date}}\n\n" +
				"Best regards,\nHOA Management Team",
			IsActive: true,
		},
	}

	for _, tpl := range templates {
		result := db.FirstOrCreate(&tpl, model.EmailTemplate{Name: tpl.Name})
		if result.Error != nil {
			log.Printf("Error seeding template %s: %v", tpl.Name, result.Error)
		}
	}

	log.Println("Email templates seeded successfully!")
}
