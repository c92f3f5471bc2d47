package utils

import (
	"testing"
	"time"

	"acesped/database"
	"acesped/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newSchedulerDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&models.Applicant{}, &models.SkillApplicant{}))
	db.Exec("DELETE FROM applicants")
	db.Exec("DELETE FROM skill_applicants")

	database.Database = database.DbInstance{Db: db}
	return db
}

func newSkillApplicant(number string, age time.Duration) models.SkillApplicant {
	applicant := models.SkillApplicant{
		ApplicationNumber: number,
		FirstName:         "Bashir",
		LastName:          "Lawal",
		Email:             "bashir@example.com",
		Mobile:            "08030000002",
		SkillProgramme:    "Braille Production",
		AdmissionSession:  "2026/2027",
		Status:            models.SkillStatusAwaitingPayment,
	}
	applicant.CreatedAt = time.Now().Add(-age)
	return applicant
}

func TestRemindUnpaidApplications(t *testing.T) {
	db := newSchedulerDB(t)

	var reminded []string
	sendPaymentReminder = func(email, name, applicationNumber string) {
		reminded = append(reminded, applicationNumber)
	}
	defer func() { sendPaymentReminder = SendPaymentReminderEmail }()

	stale := newSkillApplicant("ACE/SPED/2026/AAAAAA", 5*24*time.Hour)
	require.NoError(t, db.Create(&stale).Error)
	recent := newSkillApplicant("ACE/SPED/2026/BBBBBB", time.Hour)
	require.NoError(t, db.Create(&recent).Error)

	RemindUnpaidApplications()

	assert.Equal(t, []string{"ACE/SPED/2026/AAAAAA"}, reminded)

	var fresh models.SkillApplicant
	require.NoError(t, db.First(&fresh, stale.ID).Error)
	assert.True(t, fresh.ReminderSent)

	// Second sweep sends nothing
	reminded = nil
	RemindUnpaidApplications()
	assert.Empty(t, reminded)
}

func TestExpireStaleApplications(t *testing.T) {
	db := newSchedulerDB(t)

	stale := newSkillApplicant("ACE/SPED/2026/CCCCCC", 31*24*time.Hour)
	require.NoError(t, db.Create(&stale).Error)
	recent := newSkillApplicant("ACE/SPED/2026/DDDDDD", 5*24*time.Hour)
	require.NoError(t, db.Create(&recent).Error)

	ExpireStaleApplications()

	var expired, kept models.SkillApplicant
	require.NoError(t, db.First(&expired, stale.ID).Error)
	require.NoError(t, db.First(&kept, recent.ID).Error)
	assert.Equal(t, models.SkillStatusExpired, expired.Status)
	assert.Equal(t, models.SkillStatusAwaitingPayment, kept.Status)
}

func TestRemindUnpaidAcceptance(t *testing.T) {
	db := newSchedulerDB(t)

	var reminded []string
	sendAcceptanceReminder = func(email, name, applicationNumber string) {
		reminded = append(reminded, applicationNumber)
	}
	defer func() { sendAcceptanceReminder = SendAcceptanceReminderEmail }()

	admitted := models.Applicant{
		ApplicationNumber: "ACE/SPED/2026/EEEEEE",
		FirstName:         "Adaeze",
		LastName:          "Okafor",
		Email:             "adaeze@example.com",
		Programme:         "MSc Special Education",
		AdmissionSession:  "2026/2027",
		Status:            models.ApplicantStatusAdmitted,
	}
	require.NoError(t, db.Create(&admitted).Error)
	// Decision made 5 days ago
	require.NoError(t, db.Model(&admitted).UpdateColumn("updated_at", time.Now().AddDate(0, 0, -5)).Error)

	freshDecision := models.Applicant{
		ApplicationNumber: "ACE/SPED/2026/FFFFFF",
		FirstName:         "Chika",
		LastName:          "Eze",
		Email:             "chika@example.com",
		Programme:         "MSc Special Education",
		AdmissionSession:  "2026/2027",
		Status:            models.ApplicantStatusAdmitted,
	}
	require.NoError(t, db.Create(&freshDecision).Error)

	RemindUnpaidAcceptance()

	assert.Equal(t, []string{"ACE/SPED/2026/EEEEEE"}, reminded)

	var fresh models.Applicant
	require.NoError(t, db.First(&fresh, admitted.ID).Error)
	assert.True(t, fresh.AcceptanceReminderSent)

	// Second sweep sends nothing
	reminded = nil
	RemindUnpaidAcceptance()
	assert.Empty(t, reminded)
}
