package schools

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"schoolku_backend/internals/features/schools/school/model"
)

type schoolSeed struct {
	SchoolName     string          `json:"school_name"`
	Code           string          `json:"code"`
	Address        string          `json:"address"`
	Email          string          `json:"email"`
	ContactNumbers []string        `json:"contact_numbers"`
	Settings       json.RawMessage `json:"settings"`
	Status         string          `json:"status"`
	LicenseExpiry  string          `json:"license_expiry"`
}

// SeedSchoolsFromJSON inserts schools from a JSON file, skipping codes that
// already exist.
func SeedSchoolsFromJSON(db *gorm.DB, filePath string) {
	file, err := os.ReadFile(filePath)
	if err != nil {
		log.Printf("[ERROR] read seed file %s: %v", filePath, err)
		return
	}

	var entries []schoolSeed
	if err := json.Unmarshal(file, &entries); err != nil {
		log.Printf("[ERROR] decode seed file %s: %v", filePath, err)
		return
	}

	for _, e := range entries {
		var count int64
		if err := db.Model(&model.SchoolModel{}).Where("code = ?", e.Code).Count(&count).Error; err != nil {
			log.Printf("[ERROR] seed school %s: %v", e.Code, err)
			continue
		}
		if count > 0 {
			continue
		}

		status := e.Status
		if status == "" {
			status = model.SchoolStatusActive
		}

		var expiry *time.Time
		if e.LicenseExpiry != "" {
			if t, err := time.Parse("2006-01-02", e.LicenseExpiry); err == nil {
				expiry = &t
			}
		}

		school := model.SchoolModel{
			SchoolName:     e.SchoolName,
			Code:           e.Code,
			Address:        e.Address,
			Email:          e.Email,
			ContactNumbers: e.ContactNumbers,
			Settings:       datatypes.JSON(e.Settings),
			Status:         status,
			LicenseExpiry:  expiry,
		}
		if err := db.Create(&school).Error; err != nil {
			log.Printf("[ERROR] insert school %s: %v", e.Code, err)
			continue
		}
		log.Printf("[INFO] Seeded school %s (%s)", school.SchoolName, school.Code)
	}
}
