package application

import (
	userdomain "github.com/saransh1220/circle-notify/internal/modules/user/domain"
)

// IsEligible reports whether owner wants notifications of category. A missing
// owner, a missing settings object and a missing flag all mean no.
func IsEligible(owner *userdomain.User, category userdomain.Category) bool {
	if owner == nil || owner.NotificationSettings == nil {
		return false
	}
	return owner.NotificationSettings.Allows(category)
}
