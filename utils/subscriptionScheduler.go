package utils

import (
	"log"
	"time"

	"github.com/ZuchiSpeed/jigitone/database"
	"github.com/ZuchiSpeed/jigitone/models"

	"github.com/robfig/cron/v3"
)

// InitializeSubscriptionScheduler sets up the subscription expiry scheduler
func InitializeSubscriptionScheduler() {
	log.Println("[SUBSCRIPTION-SCHEDULER] Initializing subscription scheduler...")

	c := cron.New()

	// Run daily at 9 AM to nudge subscribers whose billing period is ending
	c.AddFunc("0 9 * * *", func() {
		log.Println("[SUBSCRIPTION-SCHEDULER] Running daily subscription check...")
		ProcessExpiringSubscriptions()
	})

	c.Start()
	log.Println("[SUBSCRIPTION-SCHEDULER] Subscription scheduler started - runs daily at 9 AM")
}

// ProcessExpiringSubscriptions sends reminder emails for subscriptions whose
// current period ends within 2 days. "Active" is derived from the period end,
// so nothing is flipped here; a renewal webhook resets the reminder flag.
func ProcessExpiringSubscriptions() {
	db := database.Database.Db
	now := time.Now()
	twoDaysFromNow := now.AddDate(0, 0, 2)

	var expiringSubscriptions []models.UserSubscription
	if err := db.
		Where("reminder_sent = false").
		Where("stripe_current_period_end BETWEEN ? AND ?", now, twoDaysFromNow).
		Find(&expiringSubscriptions).Error; err != nil {
		log.Printf("[SUBSCRIPTION-SCHEDULER] Error fetching expiring subscriptions: %v", err)
		return
	}

	log.Printf("[SUBSCRIPTION-SCHEDULER] Found %d subscriptions expiring soon", len(expiringSubscriptions))

	for _, sub := range expiringSubscriptions {
		if sub.CustomerEmail == "" {
			continue
		}

		var userProgress models.UserProgress
		name := "learner"
		if err := db.Where("user_id = ?", sub.UserID).First(&userProgress).Error; err == nil {
			name = userProgress.UserName
		}

		SendSubscriptionExpiryReminder(sub.CustomerEmail, name, sub.StripeCurrentPeriodEnd)

		// Mark reminder as sent
		db.Model(&sub).Update("reminder_sent", true)
		log.Printf("[SUBSCRIPTION-SCHEDULER] Sent expiry reminder for subscription %d to %s", sub.ID, sub.CustomerEmail)
	}
}

// SendSubscriptionExpiryReminder sends an email reminder before the premium
// period ends
func SendSubscriptionExpiryReminder(email, name string, periodEnd time.Time) {
	expiryStr := periodEnd.Format("January 2, 2006")

	subject := "Your Jigitone Premium is Expiring Soon!"
	body := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Premium Expiring Soon</title>
</head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">Premium Expiring Soon</h2>
        <p>Dear ` + name + `,</p>
        <p>Your <strong>Jigitone Premium</strong> period ends on <strong>` + expiryStr + `</strong>.</p>
        <p>Unlimited hearts stop when the period lapses. If your card on file is up to date the renewal happens automatically.</p>
        <p>If you have any questions, please contact our support team.</p>
        <hr style="border: 1px solid #eee; margin: 20px 0;">
        <p style="font-size: 12px; color: #666;">This is an automated reminder from Jigitone.</p>
    </div>
</body>
</html>`

	go SendEmail([]string{email}, subject, body)
}
