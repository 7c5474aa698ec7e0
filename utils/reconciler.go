package utils

import (
	"log"
	"time"

	"learnhub/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// InitializeReconciler sets up the nightly consistency sweep
func InitializeReconciler(db *gorm.DB) {
	log.Println("[RECONCILER] Initializing reconciliation scheduler...")

	c := cron.New()

	// Run daily at 8 AM
	c.AddFunc("0 8 * * *", func() {
		log.Println("[RECONCILER] Running daily reconciliation...")
		CheckMissingEnrollments(db)
		ExpireStalePaymentSessions(db)
	})

	c.Start()
	log.Println("[RECONCILER] Reconciliation scheduler started - runs daily at 8 AM")

	// Run once at startup so inconsistencies do not wait a day
	go func() {
		CheckMissingEnrollments(db)
		ExpireStalePaymentSessions(db)
	}()
}

// CheckMissingEnrollments flags approved applications that have no
// matching enrollment row. These users paid tokens without receiving
// access; the sweep alerts the admin rather than auto-healing.
func CheckMissingEnrollments(db *gorm.DB) {
	var orphaned []models.CourseApplication
	err := db.
		Where("status = ?", models.ApplicationStatusApproved).
		Where("NOT EXISTS (SELECT 1 FROM course_enrollments e WHERE e.user_id = course_applications.user_id AND e.course_id = course_applications.course_id AND e.is_deleted = ?)", false).
		Find(&orphaned).Error
	if err != nil {
		log.Printf("[RECONCILER] Error scanning for missing enrollments: %v", err)
		return
	}

	if len(orphaned) == 0 {
		log.Println("[RECONCILER] No approved applications without enrollments")
		return
	}

	ids := make([]uint, 0, len(orphaned))
	for _, app := range orphaned {
		log.Printf("[RECONCILER] Approved application %d (user %d, course %d) has no enrollment!", app.ID, app.UserID, app.CourseID)
		ids = append(ids, app.ID)
	}

	SendReconciliationAlert(ids)
}

// ExpireStalePaymentSessions marks checkout sessions older than 24h
// that were never verified so they stop showing up as open.
func ExpireStalePaymentSessions(db *gorm.DB) {
	cutoff := time.Now().Add(-24 * time.Hour)

	res := db.Model(&models.PaymentSession{}).
		Where("status = ? AND created_at < ?", models.PaymentSessionCreated, cutoff).
		Update("status", models.PaymentSessionExpired)
	if res.Error != nil {
		log.Printf("[RECONCILER] Error expiring stale payment sessions: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("[RECONCILER] Expired %d stale payment session(s)", res.RowsAffected)
	}
}
