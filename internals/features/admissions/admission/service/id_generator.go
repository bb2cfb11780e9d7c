package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	aModel "schoolku_backend/internals/features/admissions/admission/model"
	sModel "schoolku_backend/internals/features/students/student/model"
)

const (
	studentIDPrefix     = "STD"
	admissionNumPrefix  = "ADM"
	maxIDAttempts       = 10
	idSuffixAlphabet    = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	idSuffixLength      = 4
	admissionNumDigits  = 6
)

// GenerateStudentID returns a collision-free student id of the form
// STD-<timestamp>-<suffix>. Each candidate is existence-checked against both
// admissions and students; after maxIDAttempts the final candidate is a pure
// high-entropy random id that is NOT existence-checked. That fallback is
// statistically unique, not guaranteed — the unique constraint on the column
// is the backstop.
func GenerateStudentID(tx *gorm.DB) (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		suffix, err := randomSuffix(idSuffixLength)
		if err != nil {
			return "", err
		}
		candidate := fmt.Sprintf("%s-%s-%s", studentIDPrefix, time.Now().Format("20060102150405"), suffix)

		taken, err := studentIDTaken(tx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	// Last resort: 128 bits of randomness, no existence check.
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return fmt.Sprintf("%s-%s", studentIDPrefix, raw), nil
}

// GenerateAdmissionNumber returns an admission number of the form
// ADM-<year>-<digits>, re-rolled until it collides with neither the
// admissions nor the students table.
func GenerateAdmissionNumber(tx *gorm.DB) (string, error) {
	year := time.Now().Year()
	seed := time.Now().Unix() % 1_000_000

	for i := 0; ; i++ {
		var digits int64
		if i == 0 {
			digits = seed
		} else {
			n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
			if err != nil {
				return "", err
			}
			digits = n.Int64()
		}
		candidate := fmt.Sprintf("%s-%d-%0*d", admissionNumPrefix, year, admissionNumDigits, digits)

		taken, err := admissionNumberTaken(tx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

func studentIDTaken(tx *gorm.DB, id string) (bool, error) {
	var count int64
	if err := tx.Model(&aModel.NewAdmissionModel{}).Where("student_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := tx.Model(&sModel.StudentModel{}).Where("student_id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func admissionNumberTaken(tx *gorm.DB, num string) (bool, error) {
	var count int64
	if err := tx.Model(&aModel.NewAdmissionModel{}).Where("admission_number = ?", num).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := tx.Model(&sModel.StudentModel{}).Where("admission_number = ?", num).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func randomSuffix(n int) (string, error) {
	out := make([]byte, n)
	max := big.NewInt(int64(len(idSuffixAlphabet)))
	for i := range out {
		v, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = idSuffixAlphabet[v.Int64()]
	}
	return string(out), nil
}
