package service

import (
	"fmt"

	"lapados-backend/internal/mail"
	"lapados-backend/internal/repository"
	logger "lapados-backend/pkg/logging"
	"lapados-backend/utilities"
)

// InitBadgeEventListeners wires the badge-earned notification mail onto the
// global event bus. Handlers run asynchronously after the awarding
// transaction has committed.
func InitBadgeEventListeners(mailer mail.Mailer, userRepo repository.UserRepository) {
	utilities.GlobalEventBus.Subscribe(utilities.EventBadgeEarned, func(data interface{}) {
		ev, ok := data.(BadgeEarnedEvent)
		if !ok {
			logger.Warn("badge event with unexpected payload: %T", data)
			return
		}

		user, err := userRepo.GetByEmail(ev.UserEmail)
		if err != nil {
			logger.Error("badge mail: lookup %s failed: %v", ev.UserEmail, err)
			return
		}

		subject := fmt.Sprintf("You earned the %s badge!", ev.BadgeName)
		body := fmt.Sprintf("Hi %s,\n\nYour latest activity earned you the %q badge. Keep the streak going!\n",
			user.FullName, ev.BadgeName)
		if err := mailer.Send(user.Email, subject, body); err != nil {
			logger.Error("badge mail: %v", err)
		}
	})
}
