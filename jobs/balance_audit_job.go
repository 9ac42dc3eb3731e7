package jobs

import (
	"errors"
	"log"

	"github.com/thihanaung/ptp_education/database"
	"github.com/thihanaung/ptp_education/models"
	"github.com/thihanaung/ptp_education/services"
	"gorm.io/gorm"
)

// AuditPlatformBalance recomputes the platform commission from the payout
// and withdrawal ledgers and checks the cached balance against it. A
// missing cache row is seeded; a drifted one is healed and logged, since
// drift means some write path skipped the ledger.
func AuditPlatformBalance() {
	log.Println("Running job: AuditPlatformBalance...")

	expected, err := services.ReconcilePlatformBalance()
	if err != nil {
		log.Printf("Balance audit failed to reconcile: %v", err)
		return
	}

	var pb models.PlatformBalance
	err = database.DB.First(&pb, "id = ?", models.PlatformBalanceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		seed := models.PlatformBalance{ID: models.PlatformBalanceID, Balance: expected}
		if err := database.DB.Create(&seed).Error; err != nil {
			log.Printf("Balance audit failed to seed cache: %v", err)
			return
		}
		log.Printf("Balance audit seeded platform balance cache at %.2f", expected)
		return
	}
	if err != nil {
		log.Printf("Balance audit failed to read cache: %v", err)
		return
	}

	if pb.Balance == expected {
		log.Println("Balance audit OK: cache matches ledger.")
		return
	}

	log.Printf("Balance audit DRIFT: cache %.2f, ledger %.2f. Healing.", pb.Balance, expected)
	if err := database.DB.Model(&pb).Update("balance", expected).Error; err != nil {
		log.Printf("Balance audit failed to heal cache: %v", err)
	}
}
