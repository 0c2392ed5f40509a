package models

import "errors"

// AccountStatus is the approval state of an account.
type AccountStatus string

const (
	AccountStatusPending  AccountStatus = "pending"
	AccountStatusApproved AccountStatus = "approved"
	AccountStatusDenied   AccountStatus = "denied"
	AccountStatusDeleted  AccountStatus = "deleted"
)

// ErrAlreadyProcessed is returned when a pending-only transition is applied
// to an account that is approved or deleted.
var ErrAlreadyProcessed = errors.New("account already processed")

// Valid reports whether s is one of the four account states.
func (s AccountStatus) Valid() bool {
	switch s {
	case AccountStatusPending, AccountStatusApproved, AccountStatusDenied, AccountStatusDeleted:
		return true
	}
	return false
}

// AccountFlags is the isApproved/isDenied/isDeleted view of an account.
type AccountFlags struct {
	IsApproved bool `json:"isApproved"`
	IsDenied   bool `json:"isDenied"`
	IsDeleted  bool `json:"isDeleted"`
}

// FlagsFor converts a status (and, for deleted accounts, the status kept for
// restore) into the flag view.
func FlagsFor(status, restore AccountStatus) AccountFlags {
	switch status {
	case AccountStatusApproved:
		return AccountFlags{IsApproved: true}
	case AccountStatusDenied:
		return AccountFlags{IsDenied: true}
	case AccountStatusDeleted:
		flags := FlagsFor(restore, "")
		flags.IsDeleted = true
		return flags
	default:
		return AccountFlags{}
	}
}

// StatusFromFlags converts the flag view into a status. For deleted accounts
// the second value is the status the account returns to on restore.
// isDeleted wins over everything; isApproved wins over isDenied.
func StatusFromFlags(f AccountFlags) (AccountStatus, AccountStatus) {
	if f.IsDeleted {
		live, _ := StatusFromFlags(AccountFlags{IsApproved: f.IsApproved, IsDenied: f.IsDenied})
		return AccountStatusDeleted, live
	}
	switch {
	case f.IsApproved:
		return AccountStatusApproved, ""
	case f.IsDenied:
		return AccountStatusDenied, ""
	default:
		return AccountStatusPending, ""
	}
}

// Approve moves a pending or denied account to approved. A deleted account
// stays deleted but will come back approved when restored.
func (a *Account) Approve() {
	if a.Status == AccountStatusDeleted {
		a.RestoreStatus = AccountStatusApproved
		return
	}
	a.Status = AccountStatusApproved
	a.RestoreStatus = ""
}

// Deny marks an account as denied. Only accounts that are neither approved
// nor deleted can be denied.
func (a *Account) Deny() error {
	if a.Status == AccountStatusApproved || a.Status == AccountStatusDeleted {
		return ErrAlreadyProcessed
	}
	a.Status = AccountStatusDenied
	return nil
}

// SoftDelete tombstones the account, remembering its current status.
func (a *Account) SoftDelete() {
	if a.Status == AccountStatusDeleted {
		return
	}
	a.RestoreStatus = a.Status
	a.Status = AccountStatusDeleted
}

// Restore returns a deleted account to the status it had when it was
// deleted. The status is not re-derived.
func (a *Account) Restore() {
	if a.Status != AccountStatusDeleted {
		return
	}
	restored := a.RestoreStatus
	if !restored.Valid() || restored == AccountStatusDeleted {
		restored = AccountStatusPending
	}
	a.Status = restored
	a.RestoreStatus = ""
}
