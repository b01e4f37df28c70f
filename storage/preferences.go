package storage

// NotificationDismissedKey records that the mobile banner was dismissed
const NotificationDismissedKey = "desktopNotificationDismissed"

// Preferences stores UI flags that outlive a single view
type Preferences struct {
	local *LocalStorage
}

func NewPreferences(local *LocalStorage) *Preferences {
	return &Preferences{local: local}
}

// NotificationDismissed reports whether the mobile banner was dismissed
func (p *Preferences) NotificationDismissed() (bool, error) {
	value, found, err := p.local.GetItem(NotificationDismissedKey)
	if err != nil {
		return false, err
	}
	return found && value == "true", nil
}

// DismissNotification hides the mobile banner from now on
func (p *Preferences) DismissNotification() error {
	return p.local.SetItem(NotificationDismissedKey, "true")
}
